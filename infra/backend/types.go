// Package backend implements the managed-backend client the storefront
// consumes: auth, document and object-storage sub-clients sharing one HTTP
// core. The wire surface is a Supabase-style REST API (GoTrue auth,
// PostgREST documents, object storage).
package backend

import (
	"encoding/json"
	"fmt"
	"time"
)

// Config holds backend client configuration.
type Config struct {
	// ProjectURL is the backend project URL (e.g. https://xxx.example.co).
	ProjectURL string

	// APIKey is the anonymous API key sent with every request.
	APIKey string

	// AllowedHosts restricts outbound requests (derived from ProjectURL
	// when empty).
	AllowedHosts []string

	// Timeout for HTTP requests. Defaults to 30s.
	Timeout time.Duration

	// RequestsPerSecond throttles outbound requests. Zero disables the
	// limiter.
	RequestsPerSecond float64
}

// Error is a typed backend error parsed from an HTTP error response.
type Error struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details"`
	StatusCode int    `json:"status_code"`
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// parseError parses an error response body into a typed *Error.
func parseError(body []byte, statusCode int) error {
	var errResp struct {
		Code             string `json:"code"`
		Message          string `json:"message"`
		Details          string `json:"details"`
		Msg              string `json:"msg"`
		ErrorField       string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(body, &errResp); err != nil {
		return &Error{Code: "unknown", Message: string(body), StatusCode: statusCode}
	}

	msg := errResp.Message
	if msg == "" {
		msg = errResp.Msg
	}
	if msg == "" {
		msg = errResp.ErrorField
	}
	if msg == "" {
		msg = errResp.ErrorDescription
	}
	return &Error{
		Code:       errResp.Code,
		Message:    msg,
		Details:    errResp.Details,
		StatusCode: statusCode,
	}
}
