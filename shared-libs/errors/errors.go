package errors

import (
	"net/http"
	"strings"
)

// ErrorResponse represents the canonical error envelope returned by AI Connect APIs.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

// CodeForStatus derives the envelope code from an HTTP status, e.g. 409 -> "conflict".
func CodeForStatus(status int) string {
	return strings.ToLower(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}
