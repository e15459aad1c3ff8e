// Package iban parses, validates and generates ISO 13616 International
// Bank Account Numbers. Structural rules come from the country format
// table; check digit arithmetic lives in internal/checksum.
package iban

import (
	"context"
	"math/rand/v2"
	"strings"

	"bankident/internal/bban"
	"bankident/internal/bic"
	"bankident/internal/checksum"
	"bankident/internal/registry"
	dErrors "bankident/pkg/domain-errors"
)

// IBAN is a parsed IBAN in compact upper-case form. Construct through
// Parse, Generate or Random; the zero value is not useful.
type IBAN struct {
	value string
	bban  *bban.BBAN
}

type config struct {
	allowInvalid bool
	validateBBAN bool
}

// Option configures Parse and Validate.
type Option func(*config)

// AllowInvalid defers all validation: Parse only normalizes, and the value
// can be checked later with Validate.
func AllowInvalid() Option {
	return func(c *config) { c.allowInvalid = true }
}

// WithBBANValidation additionally applies the country's national checksum
// scheme, where one is defined, on top of the ISO checks.
func WithBBANValidation() Option {
	return func(c *config) { c.validateBBAN = true }
}

func apply(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// clean strips all whitespace and upper-cases, accepting both compact and
// paper (space-grouped) input forms.
func clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}

// Parse normalizes raw and validates it: country code, length, per-field
// structure and the ISO 7064 check digits. With AllowInvalid it only
// normalizes; with WithBBANValidation it also runs the national checksum.
func Parse(ctx context.Context, raw string, opts ...Option) (*IBAN, error) {
	cfg := apply(opts)
	s := clean(raw)
	var countryCode, rest string
	if len(s) >= 4 {
		countryCode, rest = s[:2], s[4:]
	}
	i := &IBAN{value: s, bban: bban.Raw(countryCode, rest)}
	if cfg.allowInvalid {
		return i, nil
	}
	if err := i.Validate(ctx, opts...); err != nil {
		return nil, err
	}
	return i, nil
}

// Validate re-checks the IBAN from scratch. Checks run cheapest first:
// country, declared length, check digit format, field structure, then the
// mod-97 invariant; WithBBANValidation appends the national checksum.
func (i *IBAN) Validate(ctx context.Context, opts ...Option) error {
	cfg := apply(opts)
	if len(i.value) < 4 {
		return dErrors.Newf(dErrors.CodeInvalidLength, "iban must have at least 4 characters, got %d", len(i.value))
	}
	countryCode := i.value[:2]
	if !registry.Letters.Matches(countryCode) {
		return dErrors.Newf(dErrors.CodeInvalidCountry, "country code %q is not alphabetic", countryCode)
	}
	spec, err := registry.SpecFor(countryCode)
	if err != nil {
		return err
	}
	if want := 4 + spec.BBANLength(); len(i.value) != want {
		return dErrors.Newf(dErrors.CodeInvalidLength, "%s iban must be %d characters, got %d",
			countryCode, want, len(i.value))
	}
	if !registry.Digits.Matches(i.value[2:4]) {
		return dErrors.Newf(dErrors.CodeInvalidCheckDigits, "check digits %q are not numeric", i.value[2:4])
	}
	if err := i.bban.Validate(); err != nil {
		return err
	}
	if !checksum.VerifyCheckDigits(i.value) {
		return dErrors.Newf(dErrors.CodeInvalidCheckDigits, "invalid checksum digits")
	}
	if cfg.validateBBAN {
		return i.bban.ValidateNationalChecksum(ctx)
	}
	return nil
}

// IsValid reports whether the IBAN passes Validate with default options.
func (i *IBAN) IsValid(ctx context.Context) bool { return i.Validate(ctx) == nil }

// GenerateOption configures Generate.
type GenerateOption func(*bban.Components)

// WithBranchCode supplies a separate branch code when it is not appended to
// the bank code.
func WithBranchCode(branch string) GenerateOption {
	return func(c *bban.Components) { c.BranchCode = branch }
}

// Generate assembles an IBAN from national components: fields are
// zero-padded to their declared widths, the national checksum (where the
// country defines one) and the ISO check digits are computed.
func Generate(countryCode, bankCode, accountCode string, opts ...GenerateOption) (*IBAN, error) {
	comps := bban.Components{BankCode: bankCode, AccountCode: accountCode}
	for _, opt := range opts {
		opt(&comps)
	}
	b, err := bban.FromComponents(countryCode, comps)
	if err != nil {
		return nil, err
	}
	return fromBBAN(b)
}

type randomConfig struct {
	country      string
	comps        bban.Components
	useDirectory bool
	rng          *rand.Rand
}

// RandomOption configures Random.
type RandomOption func(*randomConfig)

// WithCountry pins the generated IBAN's country.
func WithCountry(countryCode string) RandomOption {
	return func(c *randomConfig) { c.country = countryCode }
}

// WithBankCode pins the bank code.
func WithBankCode(bankCode string) RandomOption {
	return func(c *randomConfig) { c.comps.BankCode = bankCode }
}

// WithAccountCode pins the account code.
func WithAccountCode(accountCode string) RandomOption {
	return func(c *randomConfig) { c.comps.AccountCode = accountCode }
}

// WithoutDirectory draws the bank code from the country's character classes
// instead of the bank directory, so results need not name a registered
// institution.
func WithoutDirectory() RandomOption {
	return func(c *randomConfig) { c.useDirectory = false }
}

// WithRand supplies the randomness source, for reproducible output.
func WithRand(rng *rand.Rand) RandomOption {
	return func(c *randomConfig) { c.rng = rng }
}

// Random produces a structurally and checksum-valid IBAN. By default the
// country is drawn from the format table and the bank code from the
// directory's rows for it, so the result resolves to a real institution
// when the directory covers the country.
func Random(ctx context.Context, opts ...RandomOption) (*IBAN, error) {
	cfg := randomConfig{useDirectory: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	country := cfg.country
	if country == "" {
		codes := registry.Countries()
		country = codes[cfg.rng.IntN(len(codes))]
	}
	b, err := bban.Random(ctx, country, cfg.rng, cfg.comps, cfg.useDirectory)
	if err != nil {
		return nil, err
	}
	return fromBBAN(b)
}

// fromBBAN closes over an assembled BBAN with its ISO check digits.
func fromBBAN(b *bban.BBAN) (*IBAN, error) {
	digits, err := checksum.ComputeCheckDigits(b.CountryCode(), b.String())
	if err != nil {
		return nil, err
	}
	return &IBAN{value: b.CountryCode() + digits + b.String(), bban: b}, nil
}

// String returns the compact IBAN.
func (i *IBAN) String() string { return i.value }

// Formatted renders the IBAN in its paper form, space-grouped in blocks of
// four.
func (i *IBAN) Formatted() string {
	var sb strings.Builder
	sb.Grow(len(i.value) + len(i.value)/4)
	for pos := 0; pos < len(i.value); pos += 4 {
		if pos > 0 {
			sb.WriteByte(' ')
		}
		end := pos + 4
		if end > len(i.value) {
			end = len(i.value)
		}
		sb.WriteString(i.value[pos:end])
	}
	return sb.String()
}

// Length returns the compact length.
func (i *IBAN) Length() int { return len(i.value) }

// CountryCode returns the leading ISO 3166 country code.
func (i *IBAN) CountryCode() string {
	if len(i.value) < 2 {
		return ""
	}
	return i.value[:2]
}

// CheckDigits returns the two ISO 7064 check digits.
func (i *IBAN) CheckDigits() string {
	if len(i.value) < 4 {
		return ""
	}
	return i.value[2:4]
}

// BBAN returns the country-specific part.
func (i *IBAN) BBAN() *bban.BBAN { return i.bban }

func (i *IBAN) BankCode() string               { return i.bban.BankCode() }
func (i *IBAN) BranchCode() string             { return i.bban.BranchCode() }
func (i *IBAN) AccountCode() string            { return i.bban.AccountCode() }
func (i *IBAN) NationalChecksumDigits() string { return i.bban.NationalChecksumDigits() }
func (i *IBAN) AccountType() string            { return i.bban.AccountType() }
func (i *IBAN) AccountID() string              { return i.bban.AccountID() }
func (i *IBAN) AccountHolderID() string        { return i.bban.AccountHolderID() }
func (i *IBAN) CurrencyCode() string           { return i.bban.CurrencyCode() }

// Bank returns the primary bank directory row for the IBAN's bank code,
// ok=false when the directory has none.
func (i *IBAN) Bank(ctx context.Context) (registry.Bank, bool) {
	return i.bban.Bank(ctx)
}

// BIC resolves the IBAN's bank code to the institution's primary BIC
// through the directory. Returns nil without error when the bank code is
// not registered.
func (i *IBAN) BIC(ctx context.Context) (*bic.BIC, error) {
	b, err := bic.FromBankCode(ctx, i.CountryCode(), i.bban.DirectoryKey())
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvalidBankCode) {
			return nil, nil
		}
		return nil, err
	}
	return b, nil
}

// BICCandidates resolves every BIC the directory lists for the IBAN's bank
// code, primary first. Empty without error when the bank code is not
// registered.
func (i *IBAN) BICCandidates(ctx context.Context) ([]*bic.BIC, error) {
	out, err := bic.CandidatesFromBankCode(ctx, i.CountryCode(), i.bban.DirectoryKey())
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvalidBankCode) {
			return nil, nil
		}
		return nil, err
	}
	return out, nil
}
