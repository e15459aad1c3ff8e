// Package validation is the application service behind the HTTP surface. It
// composes the identifier engines with the bank directory and records
// outcome metrics; transport concerns stay in the handlers.
package validation

import (
	"context"
	"log/slog"

	"bankident/internal/bic"
	"bankident/internal/iban"
	"bankident/internal/platform/metrics"
	"bankident/internal/registry"
	dErrors "bankident/pkg/domain-errors"
)

// Service implements the identifier operations exposed over HTTP.
type Service struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New creates the validation service.
func New(logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{logger: logger, metrics: m}
}

// BankInfo is the directory row subset exposed to API clients.
type BankInfo struct {
	Name      string `json:"name"`
	ShortName string `json:"short_name,omitempty"`
	BIC       string `json:"bic,omitempty"`
}

// IBANReport is the full decomposition of a valid IBAN.
type IBANReport struct {
	IBAN                   string    `json:"iban"`
	Formatted              string    `json:"formatted"`
	CountryCode            string    `json:"country_code"`
	CheckDigits            string    `json:"check_digits"`
	BBAN                   string    `json:"bban"`
	BankCode               string    `json:"bank_code,omitempty"`
	BranchCode             string    `json:"branch_code,omitempty"`
	AccountCode            string    `json:"account_code,omitempty"`
	NationalChecksumDigits string    `json:"national_checksum_digits,omitempty"`
	AccountType            string    `json:"account_type,omitempty"`
	AccountID              string    `json:"account_id,omitempty"`
	AccountHolderID        string    `json:"account_holder_id,omitempty"`
	CurrencyCode           string    `json:"currency_code,omitempty"`
	Bank                   *BankInfo `json:"bank,omitempty"`

	// DirectoryKey is the bank directory lookup key, kept out of the JSON
	// surface; it only serves follow-up resolution calls.
	DirectoryKey string `json:"-"`
}

// BICReport is the decomposition of a valid BIC.
type BICReport struct {
	BIC          string   `json:"bic"`
	Formatted    string   `json:"formatted"`
	BankCode     string   `json:"bank_code"`
	CountryCode  string   `json:"country_code"`
	LocationCode string   `json:"location_code"`
	BranchCode   string   `json:"branch_code"`
	Type         string   `json:"type"`
	Exists       bool     `json:"exists"`
	BankNames    []string `json:"bank_names,omitempty"`
	BankCodes    []string `json:"domestic_bank_codes,omitempty"`
}

// ResolveResult is the outcome of a bank-code to BIC resolution.
type ResolveResult struct {
	BIC        string   `json:"bic"`
	Candidates []string `json:"candidates"`
}

// InspectIBAN validates raw and returns its decomposition. Validation
// failures come back as domain errors carrying the rejection code.
func (s *Service) InspectIBAN(ctx context.Context, raw string, validateBBAN bool) (*IBANReport, error) {
	opts := []iban.Option{}
	if validateBBAN {
		opts = append(opts, iban.WithBBANValidation())
	}
	parsed, err := iban.Parse(ctx, raw, opts...)
	if err != nil {
		s.metrics.RecordValidation("iban", string(dErrors.CodeOf(err)))
		return nil, err
	}
	s.metrics.RecordValidation("iban", "valid")
	return s.ibanReport(ctx, parsed), nil
}

// GenerateIBAN assembles an IBAN from national components.
func (s *Service) GenerateIBAN(ctx context.Context, countryCode, bankCode, branchCode, accountCode string) (*IBANReport, error) {
	opts := []iban.GenerateOption{}
	if branchCode != "" {
		opts = append(opts, iban.WithBranchCode(branchCode))
	}
	generated, err := iban.Generate(countryCode, bankCode, accountCode, opts...)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordGenerated("generate")
	return s.ibanReport(ctx, generated), nil
}

// RandomIBAN produces a random valid IBAN honouring any pinned components.
func (s *Service) RandomIBAN(ctx context.Context, countryCode, bankCode, accountCode string) (*IBANReport, error) {
	opts := []iban.RandomOption{}
	if countryCode != "" {
		opts = append(opts, iban.WithCountry(countryCode))
	}
	if bankCode != "" {
		opts = append(opts, iban.WithBankCode(bankCode))
	}
	if accountCode != "" {
		opts = append(opts, iban.WithAccountCode(accountCode))
	}
	generated, err := iban.Random(ctx, opts...)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordGenerated("random")
	return s.ibanReport(ctx, generated), nil
}

// InspectBIC validates raw and returns its decomposition together with the
// directory view of it.
func (s *Service) InspectBIC(ctx context.Context, raw string, enforceSWIFT bool) (*BICReport, error) {
	opts := []bic.Option{}
	if enforceSWIFT {
		opts = append(opts, bic.EnforceSWIFT())
	}
	parsed, err := bic.Parse(raw, opts...)
	if err != nil {
		s.metrics.RecordValidation("bic", string(dErrors.CodeOf(err)))
		return nil, err
	}
	s.metrics.RecordValidation("bic", "valid")

	report := &BICReport{
		BIC:          parsed.String(),
		Formatted:    parsed.Formatted(),
		BankCode:     parsed.BankCode(),
		CountryCode:  parsed.CountryCode(),
		LocationCode: parsed.LocationCode(),
		BranchCode:   parsed.BranchCode(),
		Type:         string(parsed.Type()),
	}
	exists, err := parsed.Exists(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "bic directory lookup failed",
			"bic", parsed.String(), "error", err)
		return report, nil
	}
	report.Exists = exists
	if !exists {
		return report, nil
	}
	if names, err := parsed.BankNames(ctx); err == nil {
		report.BankNames = names
	}
	if codes, err := parsed.DomesticBankCodes(ctx); err == nil {
		report.BankCodes = codes
	}
	return report, nil
}

// ResolveBIC maps a national bank code to the institution's BICs. Fails with
// CodeInvalidBankCode when the directory has no row for the pair.
func (s *Service) ResolveBIC(ctx context.Context, countryCode, bankCode string) (*ResolveResult, error) {
	candidates, err := bic.CandidatesFromBankCode(ctx, countryCode, bankCode)
	if err != nil {
		return nil, err
	}
	result := &ResolveResult{Candidates: make([]string, 0, len(candidates))}
	for _, c := range candidates {
		result.Candidates = append(result.Candidates, c.String())
	}
	if len(result.Candidates) > 0 {
		result.BIC = result.Candidates[0]
	}
	return result, nil
}

// Countries lists every country the format table covers.
func (s *Service) Countries(_ context.Context) []string {
	return registry.Countries()
}

// ibanReport builds the response decomposition, attaching the directory row
// when the bank code resolves.
func (s *Service) ibanReport(ctx context.Context, i *iban.IBAN) *IBANReport {
	report := &IBANReport{
		IBAN:                   i.String(),
		Formatted:              i.Formatted(),
		CountryCode:            i.CountryCode(),
		CheckDigits:            i.CheckDigits(),
		BBAN:                   i.BBAN().String(),
		BankCode:               i.BankCode(),
		BranchCode:             i.BranchCode(),
		AccountCode:            i.AccountCode(),
		NationalChecksumDigits: i.NationalChecksumDigits(),
		AccountType:            i.AccountType(),
		AccountID:              i.AccountID(),
		AccountHolderID:        i.AccountHolderID(),
		CurrencyCode:           i.CurrencyCode(),
		DirectoryKey:           i.BBAN().DirectoryKey(),
	}
	if bank, ok := i.Bank(ctx); ok {
		report.Bank = &BankInfo{Name: bank.Name, ShortName: bank.ShortName, BIC: bank.BIC}
	}
	return report
}
