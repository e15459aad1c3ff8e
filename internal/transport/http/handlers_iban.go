package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bankident/internal/platform/middleware"
	"bankident/internal/validation"
	dErrors "bankident/pkg/domain-errors"
	"bankident/pkg/platform/httputil"
)

// IBANService defines the IBAN operations the handler delegates to.
type IBANService interface {
	InspectIBAN(ctx context.Context, raw string, validateBBAN bool) (*validation.IBANReport, error)
	GenerateIBAN(ctx context.Context, countryCode, bankCode, branchCode, accountCode string) (*validation.IBANReport, error)
	RandomIBAN(ctx context.Context, countryCode, bankCode, accountCode string) (*validation.IBANReport, error)
	ResolveBIC(ctx context.Context, countryCode, bankCode string) (*validation.ResolveResult, error)
	Countries(ctx context.Context) []string
}

// IBANHandler handles IBAN endpoints.
type IBANHandler struct {
	logger  *slog.Logger
	service IBANService
}

// NewIBANHandler creates the IBAN handler.
func NewIBANHandler(service IBANService, logger *slog.Logger) *IBANHandler {
	return &IBANHandler{logger: logger, service: service}
}

type validateIBANRequest struct {
	IBAN         string `json:"iban"`
	ValidateBBAN bool   `json:"validate_bban"`
}

type validateIBANResponse struct {
	Valid  bool                   `json:"valid"`
	Code   string                 `json:"code,omitempty"`
	Reason string                 `json:"reason,omitempty"`
	IBAN   *validation.IBANReport `json:"iban,omitempty"`
}

// handleValidate answers 200 for every well-formed request; the verdict is
// in the body so clients need not branch on status for the common case.
func (h *IBANHandler) handleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req validateIBANRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.IBAN == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "iban is required"))
		return
	}

	report, err := h.service.InspectIBAN(ctx, req.IBAN, req.ValidateBBAN)
	if err != nil {
		code := dErrors.CodeOf(err)
		if !dErrors.IsValidation(code) {
			h.internalError(w, r, "iban validation failed", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, validateIBANResponse{
			Valid:  false,
			Code:   string(code),
			Reason: err.Error(),
		})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, validateIBANResponse{Valid: true, IBAN: report})
}

// handleInspect returns the decomposition of a valid IBAN, 422 otherwise.
func (h *IBANHandler) handleInspect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	raw := chi.URLParam(r, "iban")

	report, err := h.service.InspectIBAN(ctx, raw, false)
	if err != nil {
		if dErrors.IsValidation(dErrors.CodeOf(err)) {
			httputil.WriteError(w, err)
			return
		}
		h.internalError(w, r, "iban inspection failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, report)
}

// handleBIC resolves the IBAN's bank code through the directory.
func (h *IBANHandler) handleBIC(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	raw := chi.URLParam(r, "iban")

	report, err := h.service.InspectIBAN(ctx, raw, false)
	if err != nil {
		if dErrors.IsValidation(dErrors.CodeOf(err)) {
			httputil.WriteError(w, err)
			return
		}
		h.internalError(w, r, "iban inspection failed", err)
		return
	}

	result, err := h.service.ResolveBIC(ctx, report.CountryCode, report.DirectoryKey)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvalidBankCode) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "bank code is not in the directory"))
			return
		}
		h.internalError(w, r, "bic resolution failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

type generateIBANRequest struct {
	CountryCode string `json:"country_code"`
	BankCode    string `json:"bank_code"`
	BranchCode  string `json:"branch_code"`
	AccountCode string `json:"account_code"`
}

func (h *IBANHandler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req generateIBANRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.CountryCode == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "country_code is required"))
		return
	}

	report, err := h.service.GenerateIBAN(ctx, req.CountryCode, req.BankCode, req.BranchCode, req.AccountCode)
	if err != nil {
		if dErrors.IsValidation(dErrors.CodeOf(err)) {
			httputil.WriteError(w, err)
			return
		}
		h.internalError(w, r, "iban generation failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, report)
}

type randomIBANRequest struct {
	CountryCode string `json:"country_code"`
	BankCode    string `json:"bank_code"`
	AccountCode string `json:"account_code"`
}

func (h *IBANHandler) handleRandom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// An empty body means no pinned components.
	var req randomIBANRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
			return
		}
	}

	report, err := h.service.RandomIBAN(ctx, req.CountryCode, req.BankCode, req.AccountCode)
	if err != nil {
		if dErrors.IsValidation(dErrors.CodeOf(err)) {
			httputil.WriteError(w, err)
			return
		}
		h.internalError(w, r, "random iban failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, report)
}

func (h *IBANHandler) handleCountries(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string][]string{
		"countries": h.service.Countries(r.Context()),
	})
}

func (h *IBANHandler) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.ErrorContext(r.Context(), msg,
		"request_id", middleware.GetRequestID(r.Context()),
		"error", err.Error(),
	)
	httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, msg))
}
