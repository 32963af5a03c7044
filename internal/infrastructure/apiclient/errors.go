package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error is a structured failure from the remote API: the HTTP status plus the
// server-provided message when one could be decoded.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether the error is a 404 from the remote API.
func (e *Error) IsNotFound() bool { return e.StatusCode == http.StatusNotFound }

// IsUnauthorized reports whether the error is a 401 from the remote API.
func (e *Error) IsUnauthorized() bool { return e.StatusCode == http.StatusUnauthorized }

// parseError decodes the server error envelope. The API answers either
// {"message": "..."} or {"error": "..."}; anything else falls back to a
// generic failure marker.
func parseError(statusCode int, body []byte) *Error {
	var envelope struct {
		Message string `json:"message"`
		Err     string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Message != "" {
			return &Error{StatusCode: statusCode, Message: envelope.Message}
		}
		if envelope.Err != "" {
			return &Error{StatusCode: statusCode, Message: envelope.Err}
		}
	}
	return &Error{StatusCode: statusCode, Message: "request failed"}
}

// AsError unwraps a gateway error when err came from the remote API.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// UserMessage converts any gateway failure into a displayable string: the
// server message when available, a generic marker otherwise. Views banner
// this; they never crash on it.
func UserMessage(err error) string {
	if apiErr, ok := AsError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return "something went wrong, please try again"
}
