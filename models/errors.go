package models

import (
	"errors"
	"net/http"
)

// ErrorKind classifies a failure for HTTP translation.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindRateLimited
	KindUpstream
)

// Public messages written to the envelope.
const (
	MsgValidation   = "Validation Error"
	MsgUnauthorized = "Unauthorized"
	MsgForbidden    = "Forbidden"
	MsgNotFound     = "Not Found"
	MsgRateLimited  = "Too Many Requests"
	MsgInternal     = "Internal Server Error"
)

// APIError carries a kind, a public message and the private cause.
type APIError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Status maps the kind to an HTTP status code.
func (e *APIError) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func ValidationError(err error) *APIError {
	return &APIError{Kind: KindValidation, Message: MsgValidation, Err: err}
}

func UnauthorizedError(err error) *APIError {
	return &APIError{Kind: KindUnauthorized, Message: MsgUnauthorized, Err: err}
}

func ForbiddenError(err error) *APIError {
	return &APIError{Kind: KindForbidden, Message: MsgForbidden, Err: err}
}

func NotFoundError(err error) *APIError {
	return &APIError{Kind: KindNotFound, Message: MsgNotFound, Err: err}
}

func RateLimitedError() *APIError {
	return &APIError{Kind: KindRateLimited, Message: MsgRateLimited}
}

// UpstreamError hides cause behind a generic message naming the failed operation.
func UpstreamError(message string, cause error) *APIError {
	return &APIError{Kind: KindUpstream, Message: message, Err: cause}
}

// AsAPIError unwraps err into an APIError. Unknown errors become internal.
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return &APIError{Kind: KindInternal, Message: MsgInternal, Err: err}
}
