package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error is a failed API call: the server's error payload plus the HTTP
// status it arrived with.
type Error struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
	Code       int    `json:"code,omitempty"`
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("api: request failed with status %d", e.StatusCode)
}

func (e *Error) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

func (e *Error) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

func parseError(statusCode int, body []byte) error {
	apiErr := &Error{StatusCode: statusCode}
	if len(body) > 0 {
		// Best effort: a non-JSON error body still yields a usable Error.
		_ = json.Unmarshal(body, apiErr)
	}
	return apiErr
}

// ServerMessage extracts the server's explanation from err, falling back to
// the given message when the error carries none.
func ServerMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// IsUnauthorized reports whether err is an authorization failure.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.IsUnauthorized()
}

// IsNotFound reports whether err is a missing-resource failure.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.IsNotFound()
}
