// Package bic parses and validates ISO 9362 Business Identifier Codes and
// resolves them against the bank directory.
package bic

import (
	"context"
	"strings"

	"bankident/internal/registry"
	dErrors "bankident/pkg/domain-errors"
	"bankident/pkg/platform/sentinel"
	pkgstrings "bankident/pkg/platform/strings"
)

// Type classifies a BIC by the second character of its location code.
type Type string

const (
	TypeDefault        Type = "default"
	TypeTesting        Type = "testing"
	TypePassive        Type = "passive"
	TypeReverseBilling Type = "reverse_billing"
)

// BIC is an ISO 9362 Business Identifier Code in compact upper-case form,
// either 8 or 11 characters. Construct through Parse or FromBankCode.
type BIC struct {
	value string
}

type config struct {
	allowInvalid bool
	enforceSWIFT bool
}

// Option configures Parse and Validate.
type Option func(*config)

// AllowInvalid defers all validation; call Validate on the result to check
// it later.
func AllowInvalid() Option {
	return func(c *config) { c.allowInvalid = true }
}

// EnforceSWIFT applies the stricter SWIFT interpretation in which the
// institution code is purely alphabetic. The ISO 9362:2022 revision admits
// digits there, which is the default here.
func EnforceSWIFT() Option {
	return func(c *config) { c.enforceSWIFT = true }
}

func apply(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// clean strips spaces and upper-cases.
func clean(s string) string {
	return strings.ToUpper(strings.ReplaceAll(s, " ", ""))
}

// Parse normalizes and validates raw. With AllowInvalid the value is
// accepted as-is after normalization.
func Parse(raw string, opts ...Option) (*BIC, error) {
	cfg := apply(opts)
	b := &BIC{value: clean(raw)}
	if cfg.allowInvalid {
		return b, nil
	}
	if err := b.Validate(opts...); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate re-checks length, per-part character classes and the country
// code. EnforceSWIFT tightens the institution code to letters only.
func (b *BIC) Validate(opts ...Option) error {
	cfg := apply(opts)
	if len(b.value) != 8 && len(b.value) != 11 {
		return dErrors.Newf(dErrors.CodeInvalidLength, "bic must be 8 or 11 characters, got %d", len(b.value))
	}

	bankClass := registry.AlphaNum
	if cfg.enforceSWIFT {
		bankClass = registry.Letters
	}
	if !bankClass.Matches(b.value[:4]) {
		return dErrors.Newf(dErrors.CodeInvalidStructure, "institution code %q does not match class %q",
			b.value[:4], string(bankClass))
	}
	if !registry.Letters.Matches(b.value[4:6]) {
		return dErrors.Newf(dErrors.CodeInvalidStructure, "country code %q is not alphabetic", b.value[4:6])
	}
	if !registry.IsISOCountry(b.value[4:6]) {
		return dErrors.Newf(dErrors.CodeInvalidCountry, "country code %q is not an ISO 3166 code", b.value[4:6])
	}
	if !registry.AlphaNum.Matches(b.value[6:]) {
		return dErrors.New(dErrors.CodeInvalidStructure, "location or branch code is not alphanumeric")
	}
	return nil
}

// IsValid reports whether the BIC passes Validate with default options.
func (b *BIC) IsValid() bool { return b.Validate() == nil }

// FromBankCode resolves a national bank code to the institution's primary
// BIC through the bank directory. Fails with CodeInvalidBankCode when the
// directory has no row for the pair.
func FromBankCode(ctx context.Context, countryCode, bankCode string) (*BIC, error) {
	banks, err := directoryRows(ctx, countryCode, bankCode)
	if err != nil {
		return nil, err
	}
	bank, _ := registry.PrimaryBank(banks)
	if bank.BIC == "" {
		// Directory rows may carry no BIC at all. Fall back to any row
		// that has one before treating the code as unresolvable.
		for _, candidate := range banks {
			if candidate.BIC != "" {
				bank = candidate
				break
			}
		}
	}
	if bank.BIC == "" {
		return nil, dErrors.Wrap(dErrors.CodeInvalidBankCode,
			"no BIC on record for bank code "+clean(bankCode)+" in "+clean(countryCode), sentinel.ErrNotFound)
	}
	return Parse(bank.BIC)
}

// CandidatesFromBankCode resolves a national bank code to every BIC the
// directory lists for it, the primary one first. The order of the remaining
// candidates is not specified.
func CandidatesFromBankCode(ctx context.Context, countryCode, bankCode string) ([]*BIC, error) {
	banks, err := directoryRows(ctx, countryCode, bankCode)
	if err != nil {
		return nil, err
	}
	primary, _ := registry.PrimaryBank(banks)
	out := make([]*BIC, 0, len(banks))
	seen := map[string]bool{}
	add := func(raw string) error {
		parsed, err := Parse(raw)
		if err != nil {
			return err
		}
		if !seen[parsed.value] {
			seen[parsed.value] = true
			out = append(out, parsed)
		}
		return nil
	}
	if primary.BIC != "" {
		if err := add(primary.BIC); err != nil {
			return nil, err
		}
	}
	for _, bank := range banks {
		if bank.BIC == "" {
			continue
		}
		if err := add(bank.BIC); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func directoryRows(ctx context.Context, countryCode, bankCode string) ([]registry.Bank, error) {
	banks, err := registry.ActiveDirectory().FindBanks(ctx, clean(countryCode), clean(bankCode))
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "bank directory", err)
	}
	if len(banks) == 0 {
		// Carries sentinel.ErrNotFound so callers can also branch on the
		// infrastructure fact, not just the domain code.
		return nil, dErrors.Wrap(dErrors.CodeInvalidBankCode,
			"no bank registered under code "+clean(bankCode)+" in "+clean(countryCode), sentinel.ErrNotFound)
	}
	return banks, nil
}

// String returns the compact BIC.
func (b *BIC) String() string { return b.value }

// Length returns 8 or 11 for well-formed values.
func (b *BIC) Length() int { return len(b.value) }

// Formatted renders the BIC in its display grouping: institution, country,
// location, branch.
func (b *BIC) Formatted() string {
	if len(b.value) < 8 {
		return b.value
	}
	parts := []string{b.value[:4], b.value[4:6], b.value[6:8]}
	if len(b.value) > 8 {
		parts = append(parts, b.value[8:])
	}
	return strings.Join(parts, " ")
}

// BankCode returns the 4-character institution code.
func (b *BIC) BankCode() string { return b.slice(0, 4) }

// CountryCode returns the ISO 3166 country code.
func (b *BIC) CountryCode() string { return b.slice(4, 6) }

// LocationCode returns the 2-character location code.
func (b *BIC) LocationCode() string { return b.slice(6, 8) }

// BranchCode returns the branch code; 8-character BICs address the primary
// office, reported as "XXX".
func (b *BIC) BranchCode() string {
	if len(b.value) == 8 {
		return "XXX"
	}
	return b.slice(8, 11)
}

func (b *BIC) slice(start, end int) string {
	if len(b.value) < end {
		return ""
	}
	return b.value[start:end]
}

// Type classifies the BIC from the second location character: 0 marks a
// test-and-training connection, 1 a passive participant, 2 reverse billing.
func (b *BIC) Type() Type {
	switch b.slice(7, 8) {
	case "0":
		return TypeTesting
	case "1":
		return TypePassive
	case "2":
		return TypeReverseBilling
	default:
		return TypeDefault
	}
}

// Banks returns the directory rows published under this exact BIC.
func (b *BIC) Banks(ctx context.Context) ([]registry.Bank, error) {
	banks, err := registry.ActiveDirectory().BanksByBIC(ctx, b.value)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "bank directory", err)
	}
	return banks, nil
}

// Exists reports whether the bank directory knows this BIC.
func (b *BIC) Exists(ctx context.Context) (bool, error) {
	banks, err := b.Banks(ctx)
	if err != nil {
		return false, err
	}
	return len(banks) > 0, nil
}

// BankNames returns the distinct institution names published under this
// BIC.
func (b *BIC) BankNames(ctx context.Context) ([]string, error) {
	banks, err := b.Banks(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(banks))
	for _, bank := range banks {
		names = append(names, bank.Name)
	}
	return pkgstrings.DedupeAndTrim(names), nil
}

// DomesticBankCodes returns the distinct national bank codes published
// under this BIC.
func (b *BIC) DomesticBankCodes(ctx context.Context) ([]string, error) {
	banks, err := b.Banks(ctx)
	if err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(banks))
	for _, bank := range banks {
		codes = append(codes, bank.BankCode)
	}
	return pkgstrings.DedupeAndTrim(codes), nil
}
