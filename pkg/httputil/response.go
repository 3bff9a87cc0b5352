// Package httputil provides shared HTTP utilities for consistent response handling.
package httputil

import (
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
)

// ContentTypeJSON is the media type used for error bodies and JSON bodies
// that were declared without one.
const ContentTypeJSON = "application/json"

// ErrorBody is the JSON shape of every error the mock server produces itself.
type ErrorBody struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
	Details   any    `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
// It sets the Content-Type header to application/json.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteError writes a JSON error response with the given status code.
// The error response includes an error code and a human-readable message.
func WriteError(w http.ResponseWriter, status int, errCode, message string) {
	WriteJSON(w, status, ErrorBody{
		Error:     errCode,
		Message:   message,
		RequestID: w.Header().Get("X-Request-Id"),
	})
}

// WriteErrorWithDetails writes a JSON error response with additional details.
// Useful for validation errors that need to include field-specific information.
func WriteErrorWithDetails(w http.ResponseWriter, status int, errCode, message string, details any) {
	WriteJSON(w, status, ErrorBody{
		Error:     errCode,
		Message:   message,
		RequestID: w.Header().Get("X-Request-Id"),
		Details:   details,
	})
}

// IsJSON reports whether a media type carries JSON: application/json or any
// structured "+json" type such as application/problem+json.
func IsJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mt = strings.ToLower(strings.TrimSpace(contentType))
	}
	return mt == ContentTypeJSON || strings.HasSuffix(mt, "+json")
}

// EncodeBody serializes a generated value for the given media type. JSON
// media types always get JSON. For any other type a string is written as-is
// and everything else falls back to JSON.
func EncodeBody(contentType string, v any) ([]byte, error) {
	if s, ok := v.(string); ok && !IsJSON(contentType) {
		return []byte(s), nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %s body: %w", contentType, err)
	}
	return b, nil
}

// WriteBody writes a generated value with an explicit media type.
func WriteBody(w http.ResponseWriter, status int, contentType string, v any) error {
	body, err := EncodeBody(contentType, v)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, err = w.Write(body)
	return err
}

// HeaderValue renders a generated value as a header string. Strings and
// numbers print plainly; objects and arrays are written as compact JSON.
func HeaderValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]any, []any:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	default:
		return fmt.Sprint(v)
	}
}

// WriteNoContent writes a status-only response.
func WriteNoContent(w http.ResponseWriter, status int) {
	w.WriteHeader(status)
}
