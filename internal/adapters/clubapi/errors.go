package clubapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrDecode is returned when a 2xx body does not match the expected shape.
var ErrDecode = errors.New("malformed response body")

// APIError is a non-2xx answer from the club API.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Messages   []string // from the body's "message" field, string or array
	Body       []byte
}

// Error implements error.
func (e *APIError) Error() string {
	if len(e.Messages) > 0 {
		return fmt.Sprintf("%s %s: %d: %s", e.Method, e.Path, e.StatusCode, strings.Join(e.Messages, ", "))
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

func newAPIError(status int, method, path string, body []byte) *APIError {
	return &APIError{
		StatusCode: status,
		Method:     method,
		Path:       path,
		Messages:   parseMessages(body),
		Body:       body,
	}
}

// parseMessages reads {"message": "..."} or {"message": ["...", "..."]}.
func parseMessages(body []byte) []string {
	var envelope struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Message) == 0 {
		return nil
	}
	var one string
	if err := json.Unmarshal(envelope.Message, &one); err == nil {
		if one == "" {
			return nil
		}
		return []string{one}
	}
	var many []string
	if err := json.Unmarshal(envelope.Message, &many); err == nil && len(many) > 0 {
		return many
	}
	return nil
}

// ErrorMessage is the user-facing text for a failed call: the server's
// message verbatim, several messages joined with ", ", or fallback.
// PRE: none
// POST: Never returns an empty string when fallback is non-empty
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && len(apiErr.Messages) > 0 {
		return strings.Join(apiErr.Messages, ", ")
	}
	return fallback
}

// IsNotFound reports whether err is a 404 from the club API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsUnauthorized reports whether err is a 401 from the club API.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}
