package testutil

import (
	"context"
	"net/http"

	"bankident/internal/platform/middleware"
)

// WithAuth injects an authenticated caller into the request context,
// simulating what the auth middleware does for valid bearer tokens.
func WithAuth(req *http.Request, subject, clientID string) *http.Request {
	ctx := req.Context()
	if subject != "" {
		ctx = context.WithValue(ctx, middleware.ContextKeySubject, subject)
	}
	if clientID != "" {
		ctx = context.WithValue(ctx, middleware.ContextKeyClientID, clientID)
	}
	return req.WithContext(ctx)
}

// WithRequestID injects a request ID into the request context.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.ContextKeyRequestID, requestID)
	return req.WithContext(ctx)
}
