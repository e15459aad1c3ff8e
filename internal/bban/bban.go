// Package bban parses and assembles Basic Bank Account Numbers, the
// country-specific part of an IBAN. The layout for each country comes from
// the registry's format table; this package contains no per-country logic.
package bban

import (
	"context"
	"math/rand/v2"
	"strings"

	"bankident/internal/checksum"
	"bankident/internal/registry"
	dErrors "bankident/pkg/domain-errors"
)

// BBAN is a country-qualified BBAN value. The zero value is not useful;
// construct through Parse, FromComponents, Random or Raw.
type BBAN struct {
	countryCode string
	value       string
	spec        *registry.CountrySpec
}

// Components are the caller-suppliable parts of a BBAN. Anything left empty
// is zero-padded (generation) or randomized (Random).
type Components struct {
	BankCode    string
	BranchCode  string
	AccountCode string
}

// clean strips spaces and upper-cases, the normalization applied to every
// externally supplied value.
func clean(s string) string {
	return strings.ToUpper(strings.ReplaceAll(s, " ", ""))
}

// Parse validates raw against the country's layout and returns the BBAN.
func Parse(countryCode, raw string) (*BBAN, error) {
	b := Raw(countryCode, raw)
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Raw constructs a BBAN without validation, for the deferred-validation
// path. Accessors on a BBAN with an unknown country return "".
func Raw(countryCode, value string) *BBAN {
	countryCode = clean(countryCode)
	spec, _ := registry.SpecFor(countryCode)
	return &BBAN{countryCode: countryCode, value: clean(value), spec: spec}
}

// Validate re-checks length and per-field character classes. It is
// idempotent and does not touch checksums.
func (b *BBAN) Validate() error {
	if b.spec == nil {
		return dErrors.Newf(dErrors.CodeUnknownCountry, "unknown country code %q", b.countryCode)
	}
	if len(b.value) != b.spec.BBANLength() {
		return dErrors.Newf(dErrors.CodeInvalidBBANLength, "bban for %s must be %d characters, got %d",
			b.countryCode, b.spec.BBANLength(), len(b.value))
	}
	pos := 0
	for _, field := range b.spec.Fields {
		slice := b.value[pos : pos+field.Length]
		if !field.Class.Matches(slice) {
			return dErrors.Newf(dErrors.CodeInvalidStructure, "field %s of %s bban does not match class %q",
				field.Component, b.countryCode, string(field.Class))
		}
		pos += field.Length
	}
	return nil
}

// FromComponents assembles a BBAN from national components, zero-padding
// each supplied value to its declared width and computing the national
// checksum when the country defines one. A bank code spanning bank+branch
// (UK sort codes appended to the institution, Italian ABI+CAB, French
// bank+branch) is split automatically.
func FromComponents(countryCode string, c Components) (*BBAN, error) {
	spec, err := registry.SpecFor(countryCode)
	if err != nil {
		return nil, err
	}

	bank := clean(c.BankCode)
	branch := clean(c.BranchCode)
	account := clean(c.AccountCode)

	comps := map[registry.Component]string{}
	supplied := map[registry.Component]bool{}
	if bank != "" {
		split, err := splitForSpec(spec, bank)
		if err != nil {
			return nil, err
		}
		for comp, val := range split {
			comps[comp] = val
			supplied[comp] = true
		}
	}
	if _, fromSplit := comps[registry.BranchCode]; !fromSplit && branch != "" {
		length := spec.Length(registry.BranchCode)
		if len(branch) > length {
			return nil, dErrors.Newf(dErrors.CodeInvalidBranchCode, "branch code exceeds maximum length %d", length)
		}
		comps[registry.BranchCode] = zfill(branch, length)
		supplied[registry.BranchCode] = true
	}
	if account != "" {
		length := spec.Length(registry.AccountCode)
		if len(account) > length {
			return nil, dErrors.Newf(dErrors.CodeInvalidAccountCode, "account code exceeds maximum length %d", length)
		}
		comps[registry.AccountCode] = zfill(account, length)
		supplied[registry.AccountCode] = true
	}

	// The checksum algorithms consume the zero-padded component values, so
	// unsupplied components still need their padded width here.
	for _, comp := range []registry.Component{registry.BankCode, registry.BranchCode, registry.AccountCode} {
		if _, ok := comps[comp]; !ok && spec.Has(comp) {
			comps[comp] = zfill("", spec.Length(comp))
		}
	}

	for comp, code := range map[registry.Component]dErrors.Code{
		registry.BankCode:    dErrors.CodeInvalidBankCode,
		registry.BranchCode:  dErrors.CodeInvalidBranchCode,
		registry.AccountCode: dErrors.CodeInvalidAccountCode,
	} {
		if !supplied[comp] {
			continue
		}
		if field := fieldFor(spec, comp); field != nil && !field.Class.Matches(comps[comp]) {
			return nil, dErrors.Newf(code, "%s does not match character class %q", comp, string(field.Class))
		}
	}

	return assemble(spec, comps)
}

// Random builds a structurally valid BBAN with any unsupplied field drawn
// from rng. With useDirectory, the bank code is picked from the directory's
// rows for the country when any exist, so the result resolves to a real
// institution.
func Random(ctx context.Context, countryCode string, rng *rand.Rand, c Components, useDirectory bool) (*BBAN, error) {
	spec, err := registry.SpecFor(countryCode)
	if err != nil {
		return nil, err
	}

	bank := clean(c.BankCode)
	branch, err := pinnedValue(spec, registry.BranchCode, c.BranchCode, dErrors.CodeInvalidBranchCode)
	if err != nil {
		return nil, err
	}
	account, err := pinnedValue(spec, registry.AccountCode, c.AccountCode, dErrors.CodeInvalidAccountCode)
	if err != nil {
		return nil, err
	}
	if bank == "" && useDirectory {
		banks, err := registry.ActiveDirectory().BanksForCountry(ctx, spec.Code)
		if err != nil {
			return nil, dErrors.Wrap(dErrors.CodeInternal, "bank directory", err)
		}
		if len(banks) > 0 {
			bank = banks[rng.IntN(len(banks))].BankCode
		}
	}

	// National checksum schemes can reject particular account numbers
	// (Norway's mod-11 has a dead remainder class); retry with fresh
	// randomness rather than surfacing that to the caller.
	const maxAttempts = 100
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		comps := map[registry.Component]string{}
		for _, field := range spec.Fields {
			if field.Component == registry.NationalChecksum {
				continue
			}
			comps[field.Component] = randomValue(rng, field)
		}
		if bank != "" {
			split, err := splitForSpec(spec, bank)
			if err != nil {
				return nil, err
			}
			for comp, val := range split {
				comps[comp] = val
			}
		}
		if branch != "" {
			comps[registry.BranchCode] = branch
		}
		if account != "" {
			comps[registry.AccountCode] = account
		}

		b, err := assemble(spec, comps)
		if err != nil {
			if dErrors.HasCode(err, dErrors.CodeInvalidAccountCode) && account == "" {
				lastErr = err
				continue
			}
			return nil, err
		}
		return b, nil
	}
	return nil, lastErr
}

// assemble writes the component map into the layout (right-aligned,
// zero-filled) and fills the national checksum slot from the country's
// algorithm.
func assemble(spec *registry.CountrySpec, comps map[registry.Component]string) (*BBAN, error) {
	if algo := checksum.Lookup(spec.Code, spec.Algorithm); algo != nil && spec.Has(registry.NationalChecksum) {
		parts := make([]string, 0, len(algo.Accepts()))
		for _, comp := range algo.Accepts() {
			parts = append(parts, comps[comp])
		}
		digits, err := algo.Compute(parts)
		if err != nil {
			return nil, err
		}
		comps[registry.NationalChecksum] = digits
	}

	buf := make([]byte, spec.BBANLength())
	for i := range buf {
		buf[i] = '0'
	}
	pos := 0
	for _, field := range spec.Fields {
		val := comps[field.Component]
		if len(val) > field.Length {
			return nil, dErrors.Newf(dErrors.CodeInvalidStructure, "%s wider than its %d character slot", field.Component, field.Length)
		}
		copy(buf[pos+field.Length-len(val):], val)
		pos += field.Length
	}

	return &BBAN{countryCode: spec.Code, value: string(buf), spec: spec}, nil
}

// splitForSpec distributes a combined bank code over the layout's leading
// components, mirroring the split in FromComponents.
func splitForSpec(spec *registry.CountrySpec, bank string) (map[registry.Component]string, error) {
	bankLen := spec.Length(registry.BankCode)
	branchLen := spec.Length(registry.BranchCode)
	out := map[registry.Component]string{}
	switch {
	case len(bank) <= bankLen:
		out[registry.BankCode] = zfill(bank, bankLen)
	case len(bank) == bankLen+branchLen && branchLen > 0:
		out[registry.BankCode] = bank[:bankLen]
		out[registry.BranchCode] = bank[bankLen:]
	case len(bank) == lookupKeyLength(spec):
		pos := 0
		for _, comp := range spec.LookupComponents() {
			l := spec.Length(comp)
			out[comp] = bank[pos : pos+l]
			pos += l
		}
	default:
		return nil, dErrors.Newf(dErrors.CodeInvalidBankCode, "bank code exceeds maximum length %d", bankLen)
	}
	return out, nil
}

func lookupKeyLength(spec *registry.CountrySpec) int {
	n := 0
	for _, comp := range spec.LookupComponents() {
		n += spec.Length(comp)
	}
	return n
}

// pinnedValue validates a caller-supplied component against the layout the
// same way FromComponents does, so both entry points reject the same input
// with the same code. Returns the zero-padded value, or "" when unsupplied.
func pinnedValue(spec *registry.CountrySpec, comp registry.Component, raw string, code dErrors.Code) (string, error) {
	value := clean(raw)
	if value == "" {
		return "", nil
	}
	length := spec.Length(comp)
	if len(value) > length {
		return "", dErrors.Newf(code, "%s exceeds maximum length %d", comp, length)
	}
	value = zfill(value, length)
	if field := fieldFor(spec, comp); field != nil && !field.Class.Matches(value) {
		return "", dErrors.Newf(code, "%s does not match character class %q", comp, string(field.Class))
	}
	return value, nil
}

func fieldFor(spec *registry.CountrySpec, comp registry.Component) *registry.Field {
	for i := range spec.Fields {
		if spec.Fields[i].Component == comp {
			return &spec.Fields[i]
		}
	}
	return nil
}

func randomValue(rng *rand.Rand, field registry.Field) string {
	alphabet := field.Class.Alphabet()
	buf := make([]byte, field.Length)
	for i := range buf {
		buf[i] = alphabet[rng.IntN(len(alphabet))]
	}
	return string(buf)
}

func zfill(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return strings.Repeat("0", length-len(s)) + s
}

// String returns the raw BBAN.
func (b *BBAN) String() string { return b.value }

// CountryCode returns the owning country.
func (b *BBAN) CountryCode() string { return b.countryCode }

// Spec returns the country's layout, nil when the country is unknown.
func (b *BBAN) Spec() *registry.CountrySpec { return b.spec }

// Field returns the substring occupied by the component, or "" when the
// layout has no such slot (or the value is malformed for slicing).
func (b *BBAN) Field(comp registry.Component) string {
	if b.spec == nil {
		return ""
	}
	start, end, ok := b.spec.Range(comp)
	if !ok || end > len(b.value) {
		return ""
	}
	return b.value[start:end]
}

func (b *BBAN) BankCode() string                { return b.Field(registry.BankCode) }
func (b *BBAN) BranchCode() string              { return b.Field(registry.BranchCode) }
func (b *BBAN) AccountCode() string             { return b.Field(registry.AccountCode) }
func (b *BBAN) NationalChecksumDigits() string  { return b.Field(registry.NationalChecksum) }
func (b *BBAN) AccountType() string             { return b.Field(registry.AccountType) }
func (b *BBAN) AccountID() string               { return b.Field(registry.AccountID) }
func (b *BBAN) AccountHolderID() string         { return b.Field(registry.AccountHolderID) }
func (b *BBAN) CurrencyCode() string            { return b.Field(registry.CurrencyCode) }

// DirectoryKey is the bank directory lookup key for this BBAN: usually the
// bank code, but some countries key their directory on a longer prefix.
func (b *BBAN) DirectoryKey() string {
	if b.spec == nil {
		return ""
	}
	var sb strings.Builder
	for _, comp := range b.spec.LookupComponents() {
		sb.WriteString(b.Field(comp))
	}
	return sb.String()
}

// Banks returns the directory rows for this BBAN's bank code.
func (b *BBAN) Banks(ctx context.Context) ([]registry.Bank, error) {
	key := b.DirectoryKey()
	if key == "" {
		return nil, nil
	}
	return registry.ActiveDirectory().FindBanks(ctx, b.countryCode, key)
}

// Bank returns the primary directory row, ok=false when unregistered.
func (b *BBAN) Bank(ctx context.Context) (registry.Bank, bool) {
	banks, err := b.Banks(ctx)
	if err != nil {
		return registry.Bank{}, false
	}
	return registry.PrimaryBank(banks)
}

// ValidateNationalChecksum applies the country's national checksum scheme,
// preferring a bank-specific algorithm from the directory (German banks
// publish per-institution methods). Countries and banks without a
// registered scheme pass trivially.
func (b *BBAN) ValidateNationalChecksum(ctx context.Context) error {
	if b.spec == nil {
		return dErrors.Newf(dErrors.CodeUnknownCountry, "unknown country code %q", b.countryCode)
	}
	algoName := b.spec.Algorithm
	if bank, ok := b.Bank(ctx); ok && bank.ChecksumAlgo != "" {
		algoName = bank.ChecksumAlgo
	}
	algo := checksum.Lookup(b.countryCode, algoName)
	if algo == nil {
		return nil
	}
	parts := make([]string, 0, len(algo.Accepts()))
	for _, comp := range algo.Accepts() {
		parts = append(parts, b.Field(comp))
	}
	if !algo.Validate(parts, b.NationalChecksumDigits()) {
		return dErrors.New(dErrors.CodeInvalidBBANChecksum, "national checksum mismatch")
	}
	return nil
}
