package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		statusCode int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "structured error",
			body:       `{"code":"23505","message":"duplicate key","details":"Key (id) already exists"}`,
			statusCode: 409,
			wantCode:   "23505",
			wantMsg:    "duplicate key",
		},
		{
			name:       "auth msg field",
			body:       `{"msg":"User already registered"}`,
			statusCode: 422,
			wantMsg:    "User already registered",
		},
		{
			name:       "oauth error description",
			body:       `{"error":"invalid_grant","error_description":"Invalid login credentials"}`,
			statusCode: 400,
			wantMsg:    "invalid_grant",
		},
		{
			name:       "unparseable body",
			body:       `<html>bad gateway</html>`,
			statusCode: 502,
			wantCode:   "unknown",
			wantMsg:    `<html>bad gateway</html>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseError([]byte(tt.body), tt.statusCode)
			be, ok := err.(*Error)
			assert.True(t, ok, "expected *Error")
			assert.Equal(t, tt.wantCode, be.Code)
			assert.Equal(t, tt.wantMsg, be.Message)
			assert.Equal(t, tt.statusCode, be.StatusCode)
		})
	}
}
