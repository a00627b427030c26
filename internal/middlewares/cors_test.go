package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORSMiddleware(t *testing.T) {
	allowed := []string{"http://localhost:5500", "https://stocktrack.example.com"}

	tests := []struct {
		name             string
		method           string
		origin           string
		expectedStatus   int
		expectNextCalled bool
		expectAllow      string
	}{
		{
			name:             "no origin passes untouched",
			method:           http.MethodGet,
			origin:           "",
			expectedStatus:   http.StatusOK,
			expectNextCalled: true,
		},
		{
			name:             "allowed origin",
			method:           http.MethodGet,
			origin:           "http://localhost:5500",
			expectedStatus:   http.StatusOK,
			expectNextCalled: true,
			expectAllow:      "http://localhost:5500",
		},
		{
			name:             "disallowed origin rejected",
			method:           http.MethodGet,
			origin:           "http://evil.example.com",
			expectedStatus:   http.StatusForbidden,
			expectNextCalled: false,
		},
		{
			name:             "preflight answered without reaching handler",
			method:           http.MethodOptions,
			origin:           "https://stocktrack.example.com",
			expectedStatus:   http.StatusNoContent,
			expectNextCalled: false,
			expectAllow:      "https://stocktrack.example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})

			handler := CORSMiddleware(allowed)(next)

			req := httptest.NewRequest(tt.method, "/api/products", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectNextCalled, nextCalled)
			assert.Equal(t, tt.expectAllow, rr.Header().Get("Access-Control-Allow-Origin"))

			if tt.expectedStatus == http.StatusForbidden {
				assert.JSONEq(t, `{"error":"CORS: Origin not allowed"}`, rr.Body.String())
			}
		})
	}
}
