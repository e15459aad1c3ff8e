package validation

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bankident/internal/platform/metrics"
	dErrors "bankident/pkg/domain-errors"
)

// testMetrics is shared across the package: the prometheus default registry
// rejects duplicate collector registration within a process.
var testMetrics = metrics.New()

func newTestService() *Service {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), testMetrics)
}

func TestInspectIBAN(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	t.Run("valid with directory row", func(t *testing.T) {
		report, err := svc.InspectIBAN(ctx, "DE42 4306 0967 7000 5341 00", false)
		require.NoError(t, err)
		assert.Equal(t, "DE42430609677000534100", report.IBAN)
		assert.Equal(t, "DE42 4306 0967 7000 5341 00", report.Formatted)
		assert.Equal(t, "DE", report.CountryCode)
		assert.Equal(t, "42", report.CheckDigits)
		assert.Equal(t, "430609677000534100", report.BBAN)
		assert.Equal(t, "43060967", report.BankCode)
		assert.Equal(t, "7000534100", report.AccountCode)
		assert.Equal(t, "43060967", report.DirectoryKey)
		require.NotNil(t, report.Bank)
		assert.Equal(t, "GLS Gemeinschaftsbank", report.Bank.Name)
		assert.Equal(t, "GENODEM1GLS", report.Bank.BIC)
	})

	t.Run("valid without directory row", func(t *testing.T) {
		report, err := svc.InspectIBAN(ctx, "DE61 5123 0800 2622 1965 45", false)
		require.NoError(t, err)
		assert.Nil(t, report.Bank)
	})

	t.Run("italian decomposition", func(t *testing.T) {
		report, err := svc.InspectIBAN(ctx, "IT60 X054 2811 1010 0000 0123 456", false)
		require.NoError(t, err)
		assert.Equal(t, "X", report.NationalChecksumDigits)
		assert.Equal(t, "05428", report.BankCode)
		assert.Equal(t, "11101", report.BranchCode)
		require.NotNil(t, report.Bank)
		assert.Equal(t, "BLOPIT22", report.Bank.BIC)
	})

	t.Run("invalid surfaces the rejection code", func(t *testing.T) {
		_, err := svc.InspectIBAN(ctx, "DE99 3704 0044 0532 0130 00", false)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidCheckDigits))
	})

	t.Run("bban validation is opt-in", func(t *testing.T) {
		_, err := svc.InspectIBAN(ctx, "BE41 5390 0754 7035", false)
		require.NoError(t, err)

		_, err = svc.InspectIBAN(ctx, "BE41 5390 0754 7035", true)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidBBANChecksum))
	})
}

func TestGenerateIBAN(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	report, err := svc.GenerateIBAN(ctx, "DE", "10010010", "", "12345")
	require.NoError(t, err)
	assert.Equal(t, "DE40100100100000012345", report.IBAN)
	assert.Equal(t, "0000012345", report.AccountCode)
	require.NotNil(t, report.Bank)
	assert.Equal(t, "PBNKDEFFXXX", report.Bank.BIC)

	report, err = svc.GenerateIBAN(ctx, "GB", "NWBK", "601613", "31926819")
	require.NoError(t, err)
	assert.Equal(t, "GB29NWBK60161331926819", report.IBAN)

	_, err = svc.GenerateIBAN(ctx, "DE", "012345678", "", "7000123456")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidBankCode))

	_, err = svc.GenerateIBAN(ctx, "XX", "1234", "", "1234")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnknownCountry))
}

func TestRandomIBAN(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	t.Run("pinned country", func(t *testing.T) {
		report, err := svc.RandomIBAN(ctx, "CH", "", "")
		require.NoError(t, err)
		assert.Equal(t, "CH", report.CountryCode)

		_, err = svc.InspectIBAN(ctx, report.IBAN, false)
		assert.NoError(t, err, "random output must round-trip")
	})

	t.Run("pinned bank code", func(t *testing.T) {
		report, err := svc.RandomIBAN(ctx, "DE", "43060967", "")
		require.NoError(t, err)
		assert.Equal(t, "43060967", report.BankCode)
		require.NotNil(t, report.Bank)
		assert.Equal(t, "GENODEM1GLS", report.Bank.BIC)
	})

	t.Run("free country draw", func(t *testing.T) {
		report, err := svc.RandomIBAN(ctx, "", "", "")
		require.NoError(t, err)
		assert.NotEmpty(t, report.IBAN)
	})

	t.Run("unknown country", func(t *testing.T) {
		_, err := svc.RandomIBAN(ctx, "XX", "", "")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnknownCountry))
	})
}

func TestInspectBIC(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	t.Run("registered bic", func(t *testing.T) {
		report, err := svc.InspectBIC(ctx, "GENODEM1GLS", false)
		require.NoError(t, err)
		assert.Equal(t, "GENODEM1GLS", report.BIC)
		assert.Equal(t, "GENO DE M1 GLS", report.Formatted)
		assert.Equal(t, "GENO", report.BankCode)
		assert.Equal(t, "DE", report.CountryCode)
		assert.Equal(t, "M1", report.LocationCode)
		assert.Equal(t, "GLS", report.BranchCode)
		assert.Equal(t, "passive", report.Type)
		assert.True(t, report.Exists)
		assert.Equal(t, []string{"GLS Gemeinschaftsbank"}, report.BankNames)
		assert.Equal(t, []string{"43060967"}, report.BankCodes)
	})

	t.Run("unregistered bic", func(t *testing.T) {
		report, err := svc.InspectBIC(ctx, "AAAADEFFXXX", false)
		require.NoError(t, err)
		assert.False(t, report.Exists)
		assert.Empty(t, report.BankNames)
		assert.Equal(t, "default", report.Type)
	})

	t.Run("strict swift", func(t *testing.T) {
		_, err := svc.InspectBIC(ctx, "1234DEWWXXX", false)
		require.NoError(t, err)

		_, err = svc.InspectBIC(ctx, "1234DEWWXXX", true)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidStructure))
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := svc.InspectBIC(ctx, "AAAA", false)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidLength))
	})
}

func TestResolveBIC(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	result, err := svc.ResolveBIC(ctx, "FR", "30004")
	require.NoError(t, err)
	assert.Equal(t, "BNPAFRPP", result.BIC)
	assert.Len(t, result.Candidates, 3)

	_, err = svc.ResolveBIC(ctx, "DE", "99999999")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidBankCode))
}

func TestCountries(t *testing.T) {
	svc := newTestService()
	countries := svc.Countries(context.Background())
	assert.NotEmpty(t, countries)
	assert.Contains(t, countries, "DE")
	assert.Contains(t, countries, "XK")
	assert.IsType(t, []string{}, countries)
}
