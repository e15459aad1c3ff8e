package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Directory backends and other
// infrastructure layers return these (optionally wrapped) so the engines can
// translate them into domain errors while callers keep the ability to branch
// with errors.Is.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: no directory row for the requested key
// - ErrUnavailable: a backend (postgres, redis) is temporarily unreachable
//
// For validation errors (bad input, malformed identifiers), use
// pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
)
