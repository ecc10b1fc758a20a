package flowoapi

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StatusError is a non-2xx response from the remote API. Its Error() string
// is the message shown to the shopper: the server's JSON message or error
// field when present, the raw body otherwise, "HTTP <status>" when the body
// is empty.
type StatusError struct {
	status  int
	body    string
	message string
}

func newStatusError(status int, raw []byte) *StatusError {
	body := strings.TrimSpace(string(raw))
	return &StatusError{
		status:  status,
		body:    body,
		message: extractMessage(status, body),
	}
}

func extractMessage(status int, body string) string {
	if body != "" {
		var parsed struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if err := json.Unmarshal([]byte(body), &parsed); err == nil {
			if parsed.Message != "" {
				return parsed.Message
			}
			if parsed.Error != "" {
				return parsed.Error
			}
		}
		return body
	}
	return fmt.Sprintf("HTTP %d", status)
}

func (e *StatusError) Error() string {
	return e.message
}

func (e *StatusError) StatusCode() int {
	return e.status
}

func (e *StatusError) Body() string {
	return e.body
}

// IsNotFound reports whether the upstream replied 404.
func (e *StatusError) IsNotFound() bool {
	return e.status == 404
}
