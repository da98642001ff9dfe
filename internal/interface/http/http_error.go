package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Captain-T2004/Ongaku-Backend/internal/i18n"
	apperrors "github.com/Captain-T2004/Ongaku-Backend/pkg/errors"
)

// HTTPError captures the metadata required to serialize an error response consistently.
type HTTPError struct {
	Status  int
	Code    string
	Reason  string
	Details map[string]any
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Reason
}

func (e *HTTPError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, reason string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Reason: reason, Err: err}
}

// fromDomain renders a domain error for loc.
func fromDomain(err error, loc i18n.Locale) *HTTPError {
	code := apperrors.CodeOf(err)
	httpErr := &HTTPError{
		Status: statusFor(code),
		Code:   code,
		Reason: i18n.Reason(err, loc),
		Err:    err,
	}
	if appErr, ok := apperrors.As(err); ok {
		httpErr.Details = appErr.Details
	}
	return httpErr
}

func statusFor(code string) int {
	switch code {
	case apperrors.CodeInvalidInput:
		return http.StatusBadRequest
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	case apperrors.CodeUpstreamTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return fromDomain(err, i18n.EN)
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
