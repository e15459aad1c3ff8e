// Package checksum implements the check digit arithmetic behind IBAN and
// BBAN validation: the universal ISO 7064 MOD-97-10 scheme and the national
// algorithms some countries embed in the BBAN itself.
//
// National algorithms form a closed, named set registered per country.
// Lookup is by "CC:name"; a country or bank naming an unregistered
// algorithm validates trivially, mirroring the reference data.
package checksum

import (
	"fmt"
	"strings"

	dErrors "bankident/pkg/domain-errors"
	"bankident/internal/registry"
)

// Mod97 reduces the numeric transliteration of s modulo 97 without building
// the full number: letters contribute their 10-35 value as two decimal
// digits, and the accumulator is reduced after every digit. IBANs reach ~70
// decimal digits after transliteration, far past native integer range.
func Mod97(s string) (int, error) {
	acc := 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch >= '0' && ch <= '9':
			acc = (acc*10 + int(ch-'0')) % 97
		case ch >= 'A' && ch <= 'Z':
			v := int(ch-'A') + 10
			acc = (acc*100 + v) % 97
		default:
			return 0, dErrors.Newf(dErrors.CodeInvalidStructure, "character %q is not IBAN-safe", ch)
		}
	}
	return acc, nil
}

// ComputeCheckDigits derives the 2-digit IBAN checksum for a country code
// and assembled BBAN, using the "00" placeholder rearrangement.
func ComputeCheckDigits(countryCode, bban string) (string, error) {
	r, err := Mod97(bban + countryCode + "00")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d", 98-r), nil
}

// VerifyCheckDigits reports whether a full canonical IBAN satisfies the
// MOD-97-10 invariant (rearranged transliteration ≡ 1 mod 97).
func VerifyCheckDigits(iban string) bool {
	if len(iban) < 4 {
		return false
	}
	r, err := Mod97(iban[4:] + iban[:4])
	if err != nil {
		return false
	}
	return r == 1
}

// Algorithm is one national checksum scheme. Compute derives the checksum
// string from the accepted component values, in Accepts order; verify-only
// schemes (where the check digits live inside another field) return "".
type Algorithm interface {
	Accepts() []registry.Component
	Compute(parts []string) (string, error)
	Validate(parts []string, expected string) bool
}

var algorithms = map[string]Algorithm{}

// register binds an algorithm under name for each country code.
func register(name string, algo Algorithm, countryCodes ...string) {
	for _, cc := range countryCodes {
		algorithms[cc+":"+name] = algo
	}
}

// Lookup returns the algorithm registered for the country under name, or
// nil when there is none.
func Lookup(countryCode, name string) Algorithm {
	if name == "" {
		return nil
	}
	return algorithms[strings.ToUpper(countryCode)+":"+name]
}

// weightedSum applies weights positionally to a digit string. Digit strings
// here are pre-validated by the BBAN parser, so non-digits only appear on
// misuse; they contribute nothing.
func weightedSum(digits string, weights []int) int {
	sum := 0
	for i := 0; i < len(digits) && i < len(weights); i++ {
		sum += int(digits[i]-'0') * weights[i]
	}
	return sum
}

// numerify transliterates letters to their 10-35 values, leaving digits as
// is, matching the IBAN alphabet used by the mod-97 family.
func numerify(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 2)
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch >= 'A' && ch <= 'Z' {
			fmt.Fprintf(&b, "%d", int(ch-'A')+10)
		} else {
			b.WriteByte(ch)
		}
	}
	return b.String()
}
