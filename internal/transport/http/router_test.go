package httptransport

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bankident/internal/platform/metrics"
	"bankident/internal/platform/token"
	"bankident/internal/validation"
	"bankident/pkg/testutil"
)

// One Metrics per test binary: collectors register on the prometheus default
// registry.
var testMetrics = metrics.New()

type testEnv struct {
	router http.Handler
	tokens *token.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := validation.New(logger, testMetrics)
	tokens := token.NewService("test-signing-key", "bankident", "bankident-api")
	router := NewRouter(
		NewIBANHandler(svc, logger),
		NewBICHandler(svc, logger),
		logger,
		testMetrics,
		tokens,
	)
	return &testEnv{router: router, tokens: tokens}
}

func (e *testEnv) authorize(t *testing.T, req *http.Request) {
	t.Helper()
	tok, err := e.tokens.Generate("user-1", "client-1", time.Hour)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+tok)
}

type ibanVerdict struct {
	Valid  bool                   `json:"valid"`
	Code   string                 `json:"code"`
	Reason string                 `json:"reason"`
	IBAN   *validation.IBANReport `json:"iban"`
}

type bicVerdict struct {
	Valid bool                  `json:"valid"`
	Code  string                `json:"code"`
	BIC   *validation.BICReport `json:"bic"`
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)
	rr := testutil.DoRequest(env.router, testutil.NewRequest(t, http.MethodGet, "/healthz"))
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestValidateIBAN(t *testing.T) {
	env := newTestEnv(t)

	t.Run("valid iban", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/v1/iban/validate",
			map[string]any{"iban": "DE42 4306 0967 7000 5341 00"})
		rr := testutil.DoRequest(env.router, req)
		testutil.AssertStatus(t, rr, http.StatusOK)

		verdict := testutil.UnmarshalResponse[ibanVerdict](t, rr)
		assert.True(t, verdict.Valid)
		require.NotNil(t, verdict.IBAN)
		assert.Equal(t, "DE42430609677000534100", verdict.IBAN.IBAN)
		require.NotNil(t, verdict.IBAN.Bank)
		assert.Equal(t, "GENODEM1GLS", verdict.IBAN.Bank.BIC)
	})

	t.Run("invalid iban keeps 200 with verdict", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/v1/iban/validate",
			map[string]any{"iban": "DE99 3704 0044 0532 0130 00"})
		rr := testutil.DoRequest(env.router, req)
		testutil.AssertStatus(t, rr, http.StatusOK)

		verdict := testutil.UnmarshalResponse[ibanVerdict](t, rr)
		assert.False(t, verdict.Valid)
		assert.Equal(t, "invalid_checksum_digits", verdict.Code)
		assert.NotEmpty(t, verdict.Reason)
		assert.Nil(t, verdict.IBAN)
	})

	t.Run("bban validation flag", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/v1/iban/validate",
			map[string]any{"iban": "BE41 5390 0754 7035", "validate_bban": true})
		rr := testutil.DoRequest(env.router, req)
		testutil.AssertStatus(t, rr, http.StatusOK)

		verdict := testutil.UnmarshalResponse[ibanVerdict](t, rr)
		assert.False(t, verdict.Valid)
		assert.Equal(t, "invalid_bban_checksum", verdict.Code)
	})

	t.Run("missing iban", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/v1/iban/validate", map[string]any{})
		rr := testutil.DoRequest(env.router, req)
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")
	})

	t.Run("malformed body", func(t *testing.T) {
		req := testutil.NewRawRequest(t, http.MethodPost, "/v1/iban/validate", "{not json")
		rr := testutil.DoRequest(env.router, req)
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")
	})

	t.Run("wrong content type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/iban/validate", strings.NewReader("iban=DE89"))
		req.Header.Set("Content-Type", "text/plain")
		rr := testutil.DoRequest(env.router, req)
		testutil.AssertStatus(t, rr, http.StatusUnsupportedMediaType)
	})
}

func TestInspectIBAN(t *testing.T) {
	env := newTestEnv(t)

	t.Run("decomposition", func(t *testing.T) {
		rr := testutil.DoRequest(env.router,
			testutil.NewRequest(t, http.MethodGet, "/v1/iban/IT60X0542811101000000123456"))
		testutil.AssertStatus(t, rr, http.StatusOK)

		report := testutil.UnmarshalResponse[validation.IBANReport](t, rr)
		assert.Equal(t, "IT60 X054 2811 1010 0000 0123 456", report.Formatted)
		assert.Equal(t, "X", report.NationalChecksumDigits)
		assert.Equal(t, "05428", report.BankCode)
	})

	t.Run("invalid iban is 422", func(t *testing.T) {
		rr := testutil.DoRequest(env.router,
			testutil.NewRequest(t, http.MethodGet, "/v1/iban/XX89370400440532013000"))
		testutil.AssertStatusAndError(t, rr, http.StatusUnprocessableEntity, "unknown_country_code")
	})
}

func TestIBANToBIC(t *testing.T) {
	env := newTestEnv(t)

	t.Run("resolves through the directory", func(t *testing.T) {
		rr := testutil.DoRequest(env.router,
			testutil.NewRequest(t, http.MethodGet, "/v1/iban/DE42430609677000534100/bic"))
		testutil.AssertStatus(t, rr, http.StatusOK)

		result := testutil.UnmarshalResponse[validation.ResolveResult](t, rr)
		assert.Equal(t, "GENODEM1GLS", result.BIC)
		assert.Equal(t, []string{"GENODEM1GLS"}, result.Candidates)
	})

	t.Run("unregistered bank code is 404", func(t *testing.T) {
		rr := testutil.DoRequest(env.router,
			testutil.NewRequest(t, http.MethodGet, "/v1/iban/DE61512308002622196545/bic"))
		testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
	})

	t.Run("invalid iban is 422", func(t *testing.T) {
		rr := testutil.DoRequest(env.router,
			testutil.NewRequest(t, http.MethodGet, "/v1/iban/DE99370400440532013000/bic"))
		testutil.AssertStatusAndError(t, rr, http.StatusUnprocessableEntity, "invalid_checksum_digits")
	})
}

func TestValidateBIC(t *testing.T) {
	env := newTestEnv(t)

	t.Run("valid bic", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/v1/bic/validate",
			map[string]any{"bic": "GENODEM1GLS"})
		rr := testutil.DoRequest(env.router, req)
		testutil.AssertStatus(t, rr, http.StatusOK)

		verdict := testutil.UnmarshalResponse[bicVerdict](t, rr)
		assert.True(t, verdict.Valid)
		require.NotNil(t, verdict.BIC)
		assert.Equal(t, "passive", verdict.BIC.Type)
		assert.True(t, verdict.BIC.Exists)
	})

	t.Run("strict swift flag", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/v1/bic/validate",
			map[string]any{"bic": "1234DEWWXXX", "enforce_swift": true})
		rr := testutil.DoRequest(env.router, req)
		testutil.AssertStatus(t, rr, http.StatusOK)

		verdict := testutil.UnmarshalResponse[bicVerdict](t, rr)
		assert.False(t, verdict.Valid)
		assert.Equal(t, "invalid_structure", verdict.Code)
	})

	t.Run("missing bic", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/v1/bic/validate", map[string]any{})
		rr := testutil.DoRequest(env.router, req)
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")
	})
}

func TestInspectBIC(t *testing.T) {
	env := newTestEnv(t)

	rr := testutil.DoRequest(env.router,
		testutil.NewRequest(t, http.MethodGet, "/v1/bic/GENODEM1GLS"))
	testutil.AssertStatus(t, rr, http.StatusOK)

	report := testutil.UnmarshalResponse[validation.BICReport](t, rr)
	assert.Equal(t, "GENO DE M1 GLS", report.Formatted)
	assert.Equal(t, []string{"43060967"}, report.BankCodes)

	rr = testutil.DoRequest(env.router,
		testutil.NewRequest(t, http.MethodGet, "/v1/bic/AAAA"))
	testutil.AssertStatusAndError(t, rr, http.StatusUnprocessableEntity, "invalid_length")
}

func TestResolveBIC(t *testing.T) {
	env := newTestEnv(t)

	t.Run("resolves candidates", func(t *testing.T) {
		rr := testutil.DoRequest(env.router,
			testutil.NewRequest(t, http.MethodGet, "/v1/bic/resolve?country_code=FR&bank_code=30004"))
		testutil.AssertStatus(t, rr, http.StatusOK)

		result := testutil.UnmarshalResponse[validation.ResolveResult](t, rr)
		assert.Equal(t, "BNPAFRPP", result.BIC)
		assert.Len(t, result.Candidates, 3)
	})

	t.Run("missing params", func(t *testing.T) {
		rr := testutil.DoRequest(env.router,
			testutil.NewRequest(t, http.MethodGet, "/v1/bic/resolve?country_code=FR"))
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")
	})

	t.Run("unknown pair", func(t *testing.T) {
		rr := testutil.DoRequest(env.router,
			testutil.NewRequest(t, http.MethodGet, "/v1/bic/resolve?country_code=DE&bank_code=99999999"))
		testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
	})
}

func TestCountries(t *testing.T) {
	env := newTestEnv(t)
	rr := testutil.DoRequest(env.router, testutil.NewRequest(t, http.MethodGet, "/v1/countries"))
	testutil.AssertStatus(t, rr, http.StatusOK)

	body := testutil.UnmarshalResponse[map[string][]string](t, rr)
	assert.Contains(t, (*body)["countries"], "DE")
	assert.Contains(t, (*body)["countries"], "XK")
}

func TestGenerateIBAN(t *testing.T) {
	env := newTestEnv(t)

	t.Run("requires a token", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/v1/iban/generate",
			map[string]any{"country_code": "DE", "bank_code": "10010010", "account_code": "12345"})
		rr := testutil.DoRequest(env.router, req)
		testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
	})

	t.Run("rejects a garbage token", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/v1/iban/generate",
			map[string]any{"country_code": "DE", "bank_code": "10010010", "account_code": "12345"})
		req.Header.Set("Authorization", "Bearer not-a-token")
		rr := testutil.DoRequest(env.router, req)
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	})

	t.Run("generates with a valid token", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/v1/iban/generate",
			map[string]any{"country_code": "DE", "bank_code": "10010010", "account_code": "12345"})
		env.authorize(t, req)
		rr := testutil.DoRequest(env.router, req)
		testutil.AssertStatus(t, rr, http.StatusCreated)

		report := testutil.UnmarshalResponse[validation.IBANReport](t, rr)
		assert.Equal(t, "DE40100100100000012345", report.IBAN)
	})

	t.Run("branch code", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/v1/iban/generate",
			map[string]any{"country_code": "GB", "bank_code": "NWBK", "branch_code": "601613", "account_code": "31926819"})
		env.authorize(t, req)
		rr := testutil.DoRequest(env.router, req)
		testutil.AssertStatus(t, rr, http.StatusCreated)

		report := testutil.UnmarshalResponse[validation.IBANReport](t, rr)
		assert.Equal(t, "GB29NWBK60161331926819", report.IBAN)
	})

	t.Run("missing country is 400", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/v1/iban/generate",
			map[string]any{"bank_code": "10010010"})
		env.authorize(t, req)
		rr := testutil.DoRequest(env.router, req)
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")
	})

	t.Run("component violation is 422", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/v1/iban/generate",
			map[string]any{"country_code": "DE", "bank_code": "012345678", "account_code": "7000123456"})
		env.authorize(t, req)
		rr := testutil.DoRequest(env.router, req)
		testutil.AssertStatusAndError(t, rr, http.StatusUnprocessableEntity, "invalid_bank_code")
	})
}

func TestRandomIBAN(t *testing.T) {
	env := newTestEnv(t)

	t.Run("empty body", func(t *testing.T) {
		req := testutil.NewRequest(t, http.MethodPost, "/v1/iban/random")
		env.authorize(t, req)
		rr := testutil.DoRequest(env.router, req)
		testutil.AssertStatus(t, rr, http.StatusCreated)

		report := testutil.UnmarshalResponse[validation.IBANReport](t, rr)
		assert.NotEmpty(t, report.IBAN)
	})

	t.Run("pinned country", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/v1/iban/random",
			map[string]any{"country_code": "NO"})
		env.authorize(t, req)
		rr := testutil.DoRequest(env.router, req)
		testutil.AssertStatus(t, rr, http.StatusCreated)

		report := testutil.UnmarshalResponse[validation.IBANReport](t, rr)
		assert.Equal(t, "NO", report.CountryCode)
		assert.Len(t, report.IBAN, 15)
	})

	t.Run("requires a token", func(t *testing.T) {
		req := testutil.NewRequest(t, http.MethodPost, "/v1/iban/random")
		rr := testutil.DoRequest(env.router, req)
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	})
}

func TestRequestIDPropagation(t *testing.T) {
	env := newTestEnv(t)

	req := testutil.NewRequest(t, http.MethodGet, "/healthz")
	req.Header.Set("X-Request-ID", "req-12345")
	rr := testutil.DoRequest(env.router, req)
	assert.Equal(t, "req-12345", rr.Header().Get("X-Request-ID"))

	rr = testutil.DoRequest(env.router, testutil.NewRequest(t, http.MethodGet, "/healthz"))
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"), "a request id is minted when absent")
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	testMetrics.RecordValidation("iban", "valid")
	rr := testutil.DoRequest(env.router, testutil.NewRequest(t, http.MethodGet, "/metrics"))
	testutil.AssertStatus(t, rr, http.StatusOK)
	assert.Contains(t, string(testutil.ReadBody(t, rr)), "bankident_validation_outcomes_total")
}
