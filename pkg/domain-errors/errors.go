// Package domainerrors defines the validation failure taxonomy shared by the
// identifier engines and the HTTP transport.
//
// Every failure carries a machine-readable Code so callers can branch on the
// kind of failure without string matching, and an optional wrapped cause for
// infrastructure errors. Engines return these directly; the transport layer
// translates codes to HTTP statuses in pkg/platform/httputil.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code identifies a class of failure.
type Code string

// Identifier validation codes. These map one-to-one onto the reasons an IBAN,
// BBAN or BIC can be rejected.
const (
	CodeUnknownCountry      Code = "unknown_country_code"
	CodeInvalidCountry      Code = "invalid_country_code"
	CodeInvalidLength       Code = "invalid_length"
	CodeInvalidBBANLength   Code = "invalid_bban_length"
	CodeInvalidStructure    Code = "invalid_structure"
	CodeInvalidCheckDigits  Code = "invalid_checksum_digits"
	CodeInvalidBBANChecksum Code = "invalid_bban_checksum"
	CodeInvalidBankCode     Code = "invalid_bank_code"
	CodeInvalidBranchCode   Code = "invalid_branch_code"
	CodeInvalidAccountCode  Code = "invalid_account_code"
)

// Service-level codes used by the HTTP surface and stores.
const (
	CodeBadRequest   Code = "bad_request"
	CodeInvalidInput Code = "invalid_input"
	CodeUnauthorized Code = "unauthorized"
	CodeNotFound     Code = "not_found"
	CodeInternal     Code = "internal_error"
)

// Error is the single error type produced by the engines.
type Error struct {
	Code    Code
	Message string
	cause   error
}

// New constructs an Error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf constructs an Error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying cause. The cause remains
// reachable through errors.Is/errors.As.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is makes two Errors equivalent when their codes match, so
// errors.Is(err, domainerrors.New(code, "")) works for code checks.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// HasCode reports whether err is (or wraps) an Error with the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == code
}

// CodeOf extracts the code from err, or CodeInternal when err is not an Error.
func CodeOf(err error) Code {
	var e *Error
	if !errors.As(err, &e) {
		return CodeInternal
	}
	return e.Code
}

// IsValidation reports whether the code belongs to the identifier validation
// taxonomy (as opposed to service plumbing). Used by handlers to decide
// between 422 and other statuses.
func IsValidation(code Code) bool {
	switch code {
	case CodeUnknownCountry, CodeInvalidCountry, CodeInvalidLength,
		CodeInvalidBBANLength, CodeInvalidStructure, CodeInvalidCheckDigits,
		CodeInvalidBBANChecksum, CodeInvalidBankCode, CodeInvalidBranchCode,
		CodeInvalidAccountCode:
		return true
	}
	return false
}
