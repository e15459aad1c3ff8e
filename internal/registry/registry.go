// Package registry holds the static reference data the identifier engines
// are parameterized by: the per-country BBAN format table, the ISO 3166
// alpha-2 country set, and the bank directory used for bank-code to BIC
// resolution.
//
// All tables are immutable after process start and safe for unsynchronized
// concurrent reads. Adding a country is a table change, not a code change.
package registry

import (
	"strings"

	dErrors "bankident/pkg/domain-errors"
)

// Component names a slot in a country's BBAN layout.
type Component string

const (
	BankCode         Component = "bank_code"
	BranchCode       Component = "branch_code"
	AccountCode      Component = "account_code"
	NationalChecksum Component = "national_checksum_digits"
	AccountType      Component = "account_type"
	AccountID        Component = "account_id"
	AccountHolderID  Component = "account_holder_id"
	CurrencyCode     Component = "currency_code"
)

// CharClass is the character class of a BBAN field, following the SWIFT
// registry notation: n = digits, a = upper-case letters, c = alphanumeric.
type CharClass byte

const (
	Digits   CharClass = 'n'
	Letters  CharClass = 'a'
	AlphaNum CharClass = 'c'
)

// Alphabet returns the characters permitted by the class. Used both for
// matching and for random field synthesis.
func (c CharClass) Alphabet() string {
	switch c {
	case Digits:
		return "0123456789"
	case Letters:
		return "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	default:
		return "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	}
}

// Matches reports whether every character of s belongs to the class.
func (c CharClass) Matches(s string) bool {
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch c {
		case Digits:
			if ch < '0' || ch > '9' {
				return false
			}
		case Letters:
			if ch < 'A' || ch > 'Z' {
				return false
			}
		default:
			if (ch < '0' || ch > '9') && (ch < 'A' || ch > 'Z') {
				return false
			}
		}
	}
	return true
}

// Field is one fixed-width slot in a BBAN layout.
type Field struct {
	Component Component
	Length    int
	Class     CharClass
}

// CountrySpec is the structural grammar of one country's BBAN.
//
// Invariant: the fields partition the BBAN left to right without gaps, so
// BBANLength() equals the sum of field lengths.
type CountrySpec struct {
	// Code is the ISO 3166 alpha-2 country code.
	Code string
	// Fields is the ordered BBAN layout.
	Fields []Field
	// Algorithm names the country's default national checksum algorithm in
	// the checksum registry ("" when the country has none). A bank directory
	// entry may override it per bank.
	Algorithm string
	// BICLookup lists the components whose concatenation keys the bank
	// directory. Nil means just the bank code.
	BICLookup []Component
}

// BBANLength returns the total BBAN length for the country.
func (s *CountrySpec) BBANLength() int {
	n := 0
	for _, f := range s.Fields {
		n += f.Length
	}
	return n
}

// Range returns the [start, end) slice bounds of a component within the
// BBAN, with ok=false when the layout has no such slot.
func (s *CountrySpec) Range(c Component) (start, end int, ok bool) {
	pos := 0
	for _, f := range s.Fields {
		if f.Component == c {
			return pos, pos + f.Length, true
		}
		pos += f.Length
	}
	return 0, 0, false
}

// Length returns the declared width of a component, 0 when absent.
func (s *CountrySpec) Length(c Component) int {
	start, end, ok := s.Range(c)
	if !ok {
		return 0
	}
	return end - start
}

// Has reports whether the layout reserves a slot for the component.
func (s *CountrySpec) Has(c Component) bool {
	_, _, ok := s.Range(c)
	return ok
}

// LookupComponents returns the components keying the bank directory.
func (s *CountrySpec) LookupComponents() []Component {
	if len(s.BICLookup) == 0 {
		return []Component{BankCode}
	}
	return s.BICLookup
}

// SpecFor looks up the country spec for a 2-letter code. The code is
// upper-cased before lookup. Fails with CodeUnknownCountry when the country
// is not in the format table.
func SpecFor(countryCode string) (*CountrySpec, error) {
	spec, ok := countrySpecs[strings.ToUpper(countryCode)]
	if !ok {
		return nil, dErrors.Newf(dErrors.CodeUnknownCountry, "unknown country code %q", countryCode)
	}
	return spec, nil
}

// Countries returns every country code present in the format table, sorted.
func Countries() []string {
	return countryCodes
}

// IsISOCountry reports whether code is a recognized ISO 3166 alpha-2 code.
// The IBAN-specific code XK (Kosovo) is included.
func IsISOCountry(code string) bool {
	_, ok := isoCountries[strings.ToUpper(code)]
	return ok
}
