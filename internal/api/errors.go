package api

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError represents a non-success HTTP response from the backend.
// Detail carries the server-provided message verbatim when the body
// held a parseable {"detail": ...}; otherwise it is a generic message
// for the status code.
type APIError struct {
	StatusCode int    `json:"status_code"`
	Detail     string `json:"detail"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("helpdesk API error (%d): %s", e.StatusCode, e.Detail)
}

// NewAPIError creates an APIError with the given status and detail.
func NewAPIError(statusCode int, detail string) *APIError {
	if detail == "" {
		detail = genericDetail(statusCode)
	}
	return &APIError{StatusCode: statusCode, Detail: detail}
}

func genericDetail(statusCode int) string {
	switch statusCode {
	case http.StatusUnauthorized:
		return "Unauthorized"
	case http.StatusForbidden:
		return "Forbidden"
	case http.StatusNotFound:
		return "Resource not found"
	case http.StatusBadRequest:
		return "Bad request"
	default:
		return http.StatusText(statusCode)
	}
}

// NetworkError represents a transport failure: the request never
// produced an HTTP response.
type NetworkError struct {
	Operation string
	URL       string
	Err       error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s %s: %v", e.Operation, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsAPIError reports whether err is a backend response error.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// IsUnauthorized reports whether err is a 401 from the backend. The
// caller treats this as an absent session.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsNetworkError reports whether err is a transport failure.
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// UserMessage renders err the way the banner would show it: the server
// detail verbatim for backend errors, a generic connectivity message
// for transport failures.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	if IsNetworkError(err) {
		return "Cannot reach the helpdesk server. Check your connection and try again."
	}
	return err.Error()
}
