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

// BICService defines the BIC operations the handler delegates to.
type BICService interface {
	InspectBIC(ctx context.Context, raw string, enforceSWIFT bool) (*validation.BICReport, error)
	ResolveBIC(ctx context.Context, countryCode, bankCode string) (*validation.ResolveResult, error)
}

// BICHandler handles BIC endpoints.
type BICHandler struct {
	logger  *slog.Logger
	service BICService
}

// NewBICHandler creates the BIC handler.
func NewBICHandler(service BICService, logger *slog.Logger) *BICHandler {
	return &BICHandler{logger: logger, service: service}
}

type validateBICRequest struct {
	BIC          string `json:"bic"`
	EnforceSWIFT bool   `json:"enforce_swift"`
}

type validateBICResponse struct {
	Valid  bool                  `json:"valid"`
	Code   string                `json:"code,omitempty"`
	Reason string                `json:"reason,omitempty"`
	BIC    *validation.BICReport `json:"bic,omitempty"`
}

func (h *BICHandler) handleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req validateBICRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.BIC == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "bic is required"))
		return
	}

	report, err := h.service.InspectBIC(ctx, req.BIC, req.EnforceSWIFT)
	if err != nil {
		code := dErrors.CodeOf(err)
		if !dErrors.IsValidation(code) {
			h.internalError(w, r, "bic validation failed", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, validateBICResponse{
			Valid:  false,
			Code:   string(code),
			Reason: err.Error(),
		})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, validateBICResponse{Valid: true, BIC: report})
}

func (h *BICHandler) handleInspect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	raw := chi.URLParam(r, "bic")

	report, err := h.service.InspectBIC(ctx, raw, false)
	if err != nil {
		if dErrors.IsValidation(dErrors.CodeOf(err)) {
			httputil.WriteError(w, err)
			return
		}
		h.internalError(w, r, "bic inspection failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, report)
}

// handleResolve maps a (country_code, bank_code) query to the institution's
// BICs.
func (h *BICHandler) handleResolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	countryCode := r.URL.Query().Get("country_code")
	bankCode := r.URL.Query().Get("bank_code")
	if countryCode == "" || bankCode == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "country_code and bank_code are required"))
		return
	}

	result, err := h.service.ResolveBIC(ctx, countryCode, bankCode)
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

func (h *BICHandler) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.ErrorContext(r.Context(), msg,
		"request_id", middleware.GetRequestID(r.Context()),
		"error", err.Error(),
	)
	httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, msg))
}
