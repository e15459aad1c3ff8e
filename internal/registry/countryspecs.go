package registry

import "sort"

// f builds one layout slot; the table below stays readable that way.
func f(c Component, length int, class CharClass) Field {
	return Field{Component: c, Length: length, Class: class}
}

// countrySpecTable transcribes the SWIFT IBAN registry BBAN formats. Field
// order is the on-wire order. Countries whose BBAN embeds a national
// checksum with a published algorithm name it in Algorithm; German banks
// select their algorithm per bank through the directory instead.
var countrySpecTable = []CountrySpec{
	{Code: "AD", Fields: []Field{f(BankCode, 4, Digits), f(BranchCode, 4, Digits), f(AccountCode, 12, AlphaNum)}},
	{Code: "AE", Fields: []Field{f(BankCode, 3, Digits), f(AccountCode, 16, Digits)}},
	{Code: "AL", Fields: []Field{f(BankCode, 3, Digits), f(BranchCode, 4, Digits), f(NationalChecksum, 1, Digits), f(AccountCode, 16, AlphaNum)}},
	{Code: "AT", Fields: []Field{f(BankCode, 5, Digits), f(AccountCode, 11, Digits)}},
	{Code: "AZ", Fields: []Field{f(BankCode, 4, Letters), f(AccountCode, 20, AlphaNum)}},
	{Code: "BA", Fields: []Field{f(BankCode, 3, Digits), f(BranchCode, 3, Digits), f(AccountCode, 8, Digits), f(NationalChecksum, 2, Digits)}},
	{Code: "BE", Fields: []Field{f(BankCode, 3, Digits), f(AccountCode, 7, Digits), f(NationalChecksum, 2, Digits)}, Algorithm: "default"},
	{Code: "BG", Fields: []Field{f(BankCode, 4, Letters), f(BranchCode, 4, Digits), f(AccountType, 2, Digits), f(AccountCode, 8, AlphaNum)}},
	{Code: "BH", Fields: []Field{f(BankCode, 4, Letters), f(AccountCode, 14, AlphaNum)}},
	{Code: "BR", Fields: []Field{f(BankCode, 8, Digits), f(BranchCode, 5, Digits), f(AccountCode, 10, Digits), f(AccountType, 1, Letters), f(AccountID, 1, AlphaNum)}},
	{Code: "BY", Fields: []Field{f(BankCode, 4, AlphaNum), f(BranchCode, 4, Digits), f(AccountCode, 16, AlphaNum)}},
	{Code: "CH", Fields: []Field{f(BankCode, 5, Digits), f(AccountCode, 12, AlphaNum)}},
	{Code: "CR", Fields: []Field{f(BankCode, 4, Digits), f(AccountCode, 14, Digits)}},
	{Code: "CY", Fields: []Field{f(BankCode, 3, Digits), f(BranchCode, 5, Digits), f(AccountCode, 16, AlphaNum)}},
	{Code: "CZ", Fields: []Field{f(BankCode, 4, Digits), f(BranchCode, 6, Digits), f(AccountCode, 10, Digits)}, Algorithm: "default"},
	{Code: "DE", Fields: []Field{f(BankCode, 8, Digits), f(AccountCode, 10, Digits)}},
	{Code: "DK", Fields: []Field{f(BankCode, 4, Digits), f(AccountCode, 10, Digits)}},
	{Code: "DO", Fields: []Field{f(BankCode, 4, AlphaNum), f(AccountCode, 20, Digits)}},
	{Code: "EE", Fields: []Field{f(BankCode, 2, Digits), f(BranchCode, 2, Digits), f(AccountCode, 11, Digits), f(NationalChecksum, 1, Digits)}},
	{Code: "ES", Fields: []Field{f(BankCode, 4, Digits), f(BranchCode, 4, Digits), f(NationalChecksum, 2, Digits), f(AccountCode, 10, Digits)}, Algorithm: "default"},
	{Code: "FI", Fields: []Field{f(BankCode, 3, Digits), f(AccountCode, 10, Digits), f(NationalChecksum, 1, Digits)}, Algorithm: "default"},
	{Code: "FO", Fields: []Field{f(BankCode, 4, Digits), f(AccountCode, 10, Digits)}},
	{Code: "FR", Fields: []Field{f(BankCode, 5, Digits), f(BranchCode, 5, Digits), f(AccountCode, 11, AlphaNum), f(NationalChecksum, 2, Digits)}, Algorithm: "default"},
	{Code: "GB", Fields: []Field{f(BankCode, 4, Letters), f(BranchCode, 6, Digits), f(AccountCode, 8, Digits)}},
	{Code: "GE", Fields: []Field{f(BankCode, 2, Letters), f(AccountCode, 16, Digits)}},
	{Code: "GI", Fields: []Field{f(BankCode, 4, Letters), f(AccountCode, 15, AlphaNum)}},
	{Code: "GL", Fields: []Field{f(BankCode, 4, Digits), f(AccountCode, 10, Digits)}},
	{Code: "GR", Fields: []Field{f(BankCode, 3, Digits), f(BranchCode, 4, Digits), f(AccountCode, 16, AlphaNum)}},
	{Code: "GT", Fields: []Field{f(BankCode, 4, AlphaNum), f(CurrencyCode, 2, AlphaNum), f(AccountType, 2, AlphaNum), f(AccountCode, 16, AlphaNum)}},
	{Code: "HR", Fields: []Field{f(BankCode, 7, Digits), f(AccountCode, 10, Digits)}},
	{Code: "HU", Fields: []Field{f(BankCode, 3, Digits), f(BranchCode, 4, Digits), f(AccountCode, 17, Digits)}},
	{Code: "IE", Fields: []Field{f(BankCode, 4, Letters), f(BranchCode, 6, Digits), f(AccountCode, 8, Digits)}},
	{Code: "IL", Fields: []Field{f(BankCode, 3, Digits), f(BranchCode, 3, Digits), f(AccountCode, 13, Digits)}},
	{Code: "IQ", Fields: []Field{f(BankCode, 4, Letters), f(BranchCode, 3, Digits), f(AccountCode, 12, Digits)}},
	{Code: "IS", Fields: []Field{f(BankCode, 2, Digits), f(BranchCode, 2, Digits), f(AccountType, 2, Digits), f(AccountCode, 6, Digits), f(AccountHolderID, 10, Digits)}},
	{Code: "IT", Fields: []Field{f(NationalChecksum, 1, Letters), f(BankCode, 5, Digits), f(BranchCode, 5, Digits), f(AccountCode, 12, AlphaNum)}, Algorithm: "default"},
	{Code: "JO", Fields: []Field{f(BankCode, 4, Letters), f(BranchCode, 4, Digits), f(AccountCode, 18, AlphaNum)}},
	{Code: "KW", Fields: []Field{f(BankCode, 4, Letters), f(AccountCode, 22, AlphaNum)}},
	{Code: "KZ", Fields: []Field{f(BankCode, 3, Digits), f(AccountCode, 13, AlphaNum)}},
	{Code: "LB", Fields: []Field{f(BankCode, 4, Digits), f(AccountCode, 20, AlphaNum)}},
	{Code: "LC", Fields: []Field{f(BankCode, 4, Letters), f(AccountCode, 24, AlphaNum)}},
	{Code: "LI", Fields: []Field{f(BankCode, 5, Digits), f(AccountCode, 12, AlphaNum)}},
	{Code: "LT", Fields: []Field{f(BankCode, 5, Digits), f(AccountCode, 11, Digits)}},
	{Code: "LU", Fields: []Field{f(BankCode, 3, Digits), f(AccountCode, 13, AlphaNum)}},
	{Code: "LV", Fields: []Field{f(BankCode, 4, Letters), f(AccountCode, 13, AlphaNum)}},
	{Code: "MC", Fields: []Field{f(BankCode, 5, Digits), f(BranchCode, 5, Digits), f(AccountCode, 11, AlphaNum), f(NationalChecksum, 2, Digits)}, Algorithm: "default"},
	{Code: "MD", Fields: []Field{f(BankCode, 2, AlphaNum), f(AccountCode, 18, AlphaNum)}},
	{Code: "ME", Fields: []Field{f(BankCode, 3, Digits), f(AccountCode, 13, Digits), f(NationalChecksum, 2, Digits)}, Algorithm: "default"},
	{Code: "MK", Fields: []Field{f(BankCode, 3, Digits), f(AccountCode, 10, AlphaNum), f(NationalChecksum, 2, Digits)}, Algorithm: "default"},
	{Code: "MR", Fields: []Field{f(BankCode, 5, Digits), f(BranchCode, 5, Digits), f(AccountCode, 11, Digits), f(NationalChecksum, 2, Digits)}},
	{Code: "MT", Fields: []Field{f(BankCode, 4, Letters), f(BranchCode, 5, Digits), f(AccountCode, 18, AlphaNum)}},
	{Code: "MU", Fields: []Field{f(BankCode, 6, AlphaNum), f(BranchCode, 2, Digits), f(AccountCode, 15, Digits), f(CurrencyCode, 3, Letters)}},
	{Code: "NL", Fields: []Field{f(BankCode, 4, Letters), f(AccountCode, 10, Digits)}, Algorithm: "default"},
	{Code: "NO", Fields: []Field{f(BankCode, 4, Digits), f(AccountCode, 6, Digits), f(NationalChecksum, 1, Digits)}, Algorithm: "default"},
	{Code: "PK", Fields: []Field{f(BankCode, 4, Letters), f(AccountCode, 16, AlphaNum)}},
	{Code: "PL", Fields: []Field{f(BankCode, 3, Digits), f(BranchCode, 4, Digits), f(NationalChecksum, 1, Digits), f(AccountCode, 16, Digits)}, Algorithm: "default", BICLookup: []Component{BankCode, BranchCode, NationalChecksum}},
	{Code: "PS", Fields: []Field{f(BankCode, 4, Letters), f(AccountCode, 21, AlphaNum)}},
	{Code: "PT", Fields: []Field{f(BankCode, 4, Digits), f(BranchCode, 4, Digits), f(AccountCode, 11, Digits), f(NationalChecksum, 2, Digits)}, Algorithm: "default"},
	{Code: "QA", Fields: []Field{f(BankCode, 4, Letters), f(AccountCode, 21, AlphaNum)}},
	{Code: "RO", Fields: []Field{f(BankCode, 4, Letters), f(AccountCode, 16, AlphaNum)}},
	{Code: "RS", Fields: []Field{f(BankCode, 3, Digits), f(AccountCode, 13, Digits), f(NationalChecksum, 2, Digits)}, Algorithm: "default"},
	{Code: "SA", Fields: []Field{f(BankCode, 2, Digits), f(AccountCode, 18, AlphaNum)}},
	{Code: "SC", Fields: []Field{f(BankCode, 6, AlphaNum), f(BranchCode, 2, Digits), f(AccountCode, 16, Digits), f(CurrencyCode, 3, Letters)}},
	{Code: "SE", Fields: []Field{f(BankCode, 3, Digits), f(AccountCode, 17, Digits)}},
	{Code: "SI", Fields: []Field{f(BankCode, 5, Digits), f(AccountCode, 8, Digits), f(NationalChecksum, 2, Digits)}, Algorithm: "default"},
	{Code: "SK", Fields: []Field{f(BankCode, 4, Digits), f(BranchCode, 6, Digits), f(AccountCode, 10, Digits)}, Algorithm: "default"},
	{Code: "SM", Fields: []Field{f(NationalChecksum, 1, Letters), f(BankCode, 5, Digits), f(BranchCode, 5, Digits), f(AccountCode, 12, AlphaNum)}, Algorithm: "default"},
	{Code: "SN", Fields: []Field{f(BankCode, 5, AlphaNum), f(BranchCode, 5, Digits), f(AccountCode, 12, Digits), f(NationalChecksum, 2, Digits)}},
	{Code: "ST", Fields: []Field{f(BankCode, 4, Digits), f(BranchCode, 4, Digits), f(AccountCode, 11, Digits), f(NationalChecksum, 2, Digits)}},
	{Code: "SV", Fields: []Field{f(BankCode, 4, Letters), f(AccountCode, 20, Digits)}},
	{Code: "TL", Fields: []Field{f(BankCode, 3, Digits), f(AccountCode, 14, Digits), f(NationalChecksum, 2, Digits)}},
	{Code: "TN", Fields: []Field{f(BankCode, 2, Digits), f(BranchCode, 3, Digits), f(AccountCode, 13, Digits), f(NationalChecksum, 2, Digits)}},
	{Code: "TR", Fields: []Field{f(BankCode, 5, Digits), f(AccountCode, 17, AlphaNum)}},
	{Code: "UA", Fields: []Field{f(BankCode, 6, Digits), f(AccountCode, 19, AlphaNum)}},
	{Code: "VA", Fields: []Field{f(BankCode, 3, Digits), f(AccountCode, 15, Digits)}},
	{Code: "VG", Fields: []Field{f(BankCode, 4, Letters), f(AccountCode, 16, Digits)}},
	{Code: "XK", Fields: []Field{f(BankCode, 2, Digits), f(BranchCode, 2, Digits), f(AccountCode, 10, Digits), f(NationalChecksum, 2, Digits)}},
}

var (
	countrySpecs = make(map[string]*CountrySpec, len(countrySpecTable))
	countryCodes []string
)

func init() {
	for i := range countrySpecTable {
		spec := &countrySpecTable[i]
		countrySpecs[spec.Code] = spec
		countryCodes = append(countryCodes, spec.Code)
	}
	sort.Strings(countryCodes)
}
