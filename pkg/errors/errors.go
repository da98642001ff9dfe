package errors

import (
	"context"
	"errors"
	"net"
)

// Codes shared by every domain. The HTTP layer maps them to status codes.
const (
	CodeInvalidInput     = "invalid_input"
	CodeNotFound         = "not_found"
	CodeNoData           = "no_data"
	CodeUpstreamTimeout  = "upstream_timeout"
	CodeUpstreamError    = "upstream_error"
	CodeMalformedOutput  = "malformed_output"
	CodeGenerationFailed = "generation_failed"
	CodeUnconfigured     = "unconfigured"
	CodeInternal         = "internal_error"
)

// AppError encodes domain specific error details.
type AppError struct {
	Code    string
	Message string
	// Key selects a localized message template; Args are interpolated into it.
	Key     string
	Args    []any
	Details map[string]any
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail attaches an extra field rendered next to the error reason.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// Wrap produces a new AppError instance.
func Wrap(code, message string, err error) error {
	if err == nil {
		return &AppError{Code: code, Message: message}
	}
	return &AppError{Code: code, Message: message, Err: err}
}

// Localized builds an AppError whose user facing text comes from a message catalog.
// message is the operator facing fallback used by Error().
func Localized(code, key, message string, err error, args ...any) *AppError {
	return &AppError{Code: code, Message: message, Key: key, Args: args, Err: err}
}

// IsCode helps handler differentiate failures.
func IsCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// CodeOf returns the code of the first AppError in the chain or CodeInternal.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// As is a typed shorthand for errors.As on *AppError.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsTimeout reports whether err was caused by an exceeded deadline.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
