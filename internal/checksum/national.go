package checksum

import (
	"fmt"
	"strconv"
	"strings"

	dErrors "bankident/pkg/domain-errors"
	"bankident/internal/registry"
)

func init() {
	register("default", iso7064Mod97{}, "PT", "SI", "ME", "MK", "RS")
	register("default", belgium{}, "BE")
	register("default", spain{}, "ES")
	register("default", ribKey{}, "FR", "MC")
	register("default", italianCIN{}, "IT", "SM")
	register("default", norway{}, "NO")
	register("default", finland{}, "FI")
	register("default", poland{}, "PL")
	register("default", czechoslovak{}, "CZ", "SK")
	register("default", elfproef{}, "NL")
	register("00", germany00{}, "DE")
}

// bankBranchAccount is the accepted component set shared by most schemes.
var bankBranchAccount = []registry.Component{registry.BankCode, registry.BranchCode, registry.AccountCode}

// validateByCompute is the compute-and-compare validation shared by every
// scheme with a dedicated checksum slot.
func validateByCompute(a Algorithm, parts []string, expected string) bool {
	got, err := a.Compute(parts)
	if err != nil {
		return false
	}
	return got == expected
}

// iso7064Mod97 is the generic ISO 7064 mod 97-10 national scheme: two check
// digits over bank+branch+account, letters transliterated as in the IBAN
// checksum. Used by Portugal, Slovenia, Montenegro, North Macedonia and
// Serbia.
type iso7064Mod97 struct{}

func (iso7064Mod97) Accepts() []registry.Component { return bankBranchAccount }

func (iso7064Mod97) Compute(parts []string) (string, error) {
	r, err := Mod97(numerify(strings.Join(parts, "")) + "00")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d", 98-r), nil
}

func (a iso7064Mod97) Validate(parts []string, expected string) bool {
	return validateByCompute(a, parts, expected)
}

// belgium: the two closing digits equal bank+account mod 97, with 0 mapped
// to 97.
type belgium struct{}

func (belgium) Accepts() []registry.Component {
	return []registry.Component{registry.BankCode, registry.AccountCode}
}

func (belgium) Compute(parts []string) (string, error) {
	r, err := Mod97(strings.Join(parts, ""))
	if err != nil {
		return "", err
	}
	if r == 0 {
		r = 97
	}
	return fmt.Sprintf("%02d", r), nil
}

func (a belgium) Validate(parts []string, expected string) bool {
	return validateByCompute(a, parts, expected)
}

// spain: one weighted mod-11 digit over "00"+bank+branch, a second over the
// account.
type spain struct{}

var esWeights = []int{1, 2, 4, 8, 5, 10, 9, 7, 3, 6}

func esDigit(digits string) int {
	r := 11 - weightedSum(digits, esWeights)%11
	switch r {
	case 11:
		return 0
	case 10:
		return 1
	default:
		return r
	}
}

func (spain) Accepts() []registry.Component { return bankBranchAccount }

func (spain) Compute(parts []string) (string, error) {
	bank, branch, account := parts[0], parts[1], parts[2]
	return fmt.Sprintf("%d%d", esDigit("00"+bank+branch), esDigit(account)), nil
}

func (a spain) Validate(parts []string, expected string) bool {
	return validateByCompute(a, parts, expected)
}

// ribKey computes the French/Monegasque RIB key:
// 97 - (89*bank + 15*branch + 3*account) mod 97, with RIB letter folding on
// the account.
type ribKey struct{}

var ribLetters = map[byte]byte{
	'A': '1', 'J': '1',
	'B': '2', 'K': '2', 'S': '2',
	'C': '3', 'L': '3', 'T': '3',
	'D': '4', 'M': '4', 'U': '4',
	'E': '5', 'N': '5', 'V': '5',
	'F': '6', 'O': '6', 'W': '6',
	'G': '7', 'P': '7', 'X': '7',
	'H': '8', 'Q': '8', 'Y': '8',
	'I': '9', 'R': '9', 'Z': '9',
}

func ribDigits(s string) string {
	out := []byte(s)
	for i, ch := range out {
		if d, ok := ribLetters[ch]; ok {
			out[i] = d
		}
	}
	return string(out)
}

func (ribKey) Accepts() []registry.Component { return bankBranchAccount }

func (ribKey) Compute(parts []string) (string, error) {
	bank, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return "", dErrors.Wrap(dErrors.CodeInvalidBankCode, "rib bank code", err)
	}
	branch, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return "", dErrors.Wrap(dErrors.CodeInvalidBranchCode, "rib branch code", err)
	}
	account, err := strconv.ParseUint(ribDigits(parts[2]), 10, 64)
	if err != nil {
		return "", dErrors.Wrap(dErrors.CodeInvalidAccountCode, "rib account", err)
	}
	r := (89*(bank%97) + 15*(branch%97) + 3*(account%97)) % 97
	return fmt.Sprintf("%02d", 97-r), nil
}

func (a ribKey) Validate(parts []string, expected string) bool {
	return validateByCompute(a, parts, expected)
}

// italianCIN derives the single control letter over bank+branch+account.
// Characters at odd (1-based) positions map through the CIN table, even
// positions contribute their plain value; the sum mod 26 indexes A-Z.
type italianCIN struct{}

var cinOddValues = map[byte]int{
	'0': 1, '1': 0, '2': 5, '3': 7, '4': 9, '5': 13, '6': 15, '7': 17, '8': 19, '9': 21,
	'A': 1, 'B': 0, 'C': 5, 'D': 7, 'E': 9, 'F': 13, 'G': 15, 'H': 17, 'I': 19, 'J': 21,
	'K': 2, 'L': 4, 'M': 18, 'N': 20, 'O': 11, 'P': 3, 'Q': 6, 'R': 8, 'S': 12, 'T': 14,
	'U': 16, 'V': 10, 'W': 22, 'X': 25, 'Y': 24, 'Z': 23,
}

func cinEvenValue(ch byte) int {
	if ch >= '0' && ch <= '9' {
		return int(ch - '0')
	}
	return int(ch - 'A')
}

func (italianCIN) Accepts() []registry.Component { return bankBranchAccount }

func (italianCIN) Compute(parts []string) (string, error) {
	s := strings.Join(parts, "")
	sum := 0
	for i := 0; i < len(s); i++ {
		if i%2 == 0 { // 1-based odd position
			v, ok := cinOddValues[s[i]]
			if !ok {
				return "", dErrors.Newf(dErrors.CodeInvalidStructure, "character %q not valid in italian bban", s[i])
			}
			sum += v
		} else {
			sum += cinEvenValue(s[i])
		}
	}
	return string(rune('A' + sum%26)), nil
}

func (a italianCIN) Validate(parts []string, expected string) bool {
	return validateByCompute(a, parts, expected)
}

// norway: mod-11 over the 10 digits of bank+account with weights
// 5,4,3,2,7,6,5,4,3,2. A remainder of 1 admits no check digit; such account
// numbers are not issued, and Compute reports the condition so generation
// can retry.
type norway struct{}

var noWeights = []int{5, 4, 3, 2, 7, 6, 5, 4, 3, 2}

func (norway) Accepts() []registry.Component {
	return []registry.Component{registry.BankCode, registry.AccountCode}
}

func (norway) Compute(parts []string) (string, error) {
	digits := strings.Join(parts, "")
	check := (11 - weightedSum(digits, noWeights)%11) % 11
	if check == 10 {
		return "", dErrors.New(dErrors.CodeInvalidAccountCode, "account number admits no valid check digit")
	}
	return strconv.Itoa(check), nil
}

func (a norway) Validate(parts []string, expected string) bool {
	return validateByCompute(a, parts, expected)
}

// finland: Luhn (mod 10) over bank+account.
type finland struct{}

func (finland) Accepts() []registry.Component {
	return []registry.Component{registry.BankCode, registry.AccountCode}
}

func (finland) Compute(parts []string) (string, error) {
	digits := strings.Join(parts, "")
	sum := 0
	weight := 2
	for i := len(digits) - 1; i >= 0; i-- {
		v := int(digits[i]-'0') * weight
		sum += v/10 + v%10
		weight = 3 - weight
	}
	return strconv.Itoa((10 - sum%10) % 10), nil
}

func (a finland) Validate(parts []string, expected string) bool {
	return validateByCompute(a, parts, expected)
}

// poland: weighted mod-10 digit closing the 8-digit settlement number.
type poland struct{}

var plWeights = []int{3, 9, 7, 1, 3, 9, 7}

func (poland) Accepts() []registry.Component {
	return []registry.Component{registry.BankCode, registry.BranchCode}
}

func (poland) Compute(parts []string) (string, error) {
	digits := strings.Join(parts, "")
	return strconv.Itoa((10 - weightedSum(digits, plWeights)%10) % 10), nil
}

func (a poland) Validate(parts []string, expected string) bool {
	return validateByCompute(a, parts, expected)
}

// czechoslovak is verify-only: the 6-digit prefix and the 10-digit account
// each carry an embedded mod-11 check, so there is no separate slot to
// fill.
type czechoslovak struct{}

var (
	czPrefixWeights  = []int{10, 5, 8, 4, 2, 1}
	czAccountWeights = []int{6, 3, 7, 9, 10, 5, 8, 4, 2, 1}
)

func (czechoslovak) Accepts() []registry.Component {
	return []registry.Component{registry.BranchCode, registry.AccountCode}
}

func (czechoslovak) Compute([]string) (string, error) { return "", nil }

func (czechoslovak) Validate(parts []string, _ string) bool {
	prefix, account := parts[0], parts[1]
	return weightedSum(prefix, czPrefixWeights)%11 == 0 &&
		weightedSum(account, czAccountWeights)%11 == 0
}

// elfproef is the Dutch verify-only account test: sum of digit*(10-i) must
// divide by 11.
type elfproef struct{}

func (elfproef) Accepts() []registry.Component {
	return []registry.Component{registry.AccountCode}
}

func (elfproef) Compute([]string) (string, error) { return "", nil }

func (elfproef) Validate(parts []string, _ string) bool {
	account := parts[0]
	sum := 0
	for i := 0; i < len(account); i++ {
		sum += int(account[i]-'0') * (10 - i)
	}
	return sum%11 == 0
}

// germany00 is Bundesbank check-digit method 00 (doubled-digit cross sums,
// mod 10) with the check digit in the account's last position. Selected per
// bank through the directory, never as the country default.
type germany00 struct{}

func (germany00) Accepts() []registry.Component {
	return []registry.Component{registry.AccountCode}
}

func (germany00) Compute([]string) (string, error) { return "", nil }

func (germany00) Validate(parts []string, _ string) bool {
	account := parts[0]
	if len(account) != 10 {
		return false
	}
	sum := 0
	weight := 2
	for i := 8; i >= 0; i-- {
		v := int(account[i]-'0') * weight
		sum += v/10 + v%10
		weight = 3 - weight
	}
	return (10-sum%10)%10 == int(account[9]-'0')
}
