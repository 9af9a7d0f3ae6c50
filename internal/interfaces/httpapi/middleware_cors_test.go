package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name          string
		allowed       []string
		method        string
		origin        string
		requestMethod string
		wantStatus    int
		wantOrigin    string
		wantMethods   bool
	}{
		{
			name:       "configured origin",
			allowed:    []string{"https://madness.example.com"},
			method:     http.MethodGet,
			origin:     "https://madness.example.com",
			wantStatus: http.StatusOK,
			wantOrigin: "https://madness.example.com",
		},
		{
			name:       "unconfigured origin",
			allowed:    []string{"https://allowed.example.com"},
			method:     http.MethodGet,
			origin:     "https://not-allowed.example.com",
			wantStatus: http.StatusOK,
		},
		{
			name:          "wildcard preflight",
			allowed:       []string{"*"},
			method:        http.MethodOptions,
			origin:        "https://madness.example.com",
			requestMethod: http.MethodPost,
			wantStatus:    http.StatusNoContent,
			wantOrigin:    "*",
			wantMethods:   true,
		},
		{
			name:          "preflight from unconfigured origin",
			allowed:       []string{"https://allowed.example.com"},
			method:        http.MethodOptions,
			origin:        "https://not-allowed.example.com",
			requestMethod: http.MethodPost,
			wantStatus:    http.StatusNoContent,
		},
		{
			name:       "options without preflight header reaches handler",
			allowed:    []string{"*"},
			method:     http.MethodOptions,
			origin:     "https://madness.example.com",
			wantStatus: http.StatusOK,
			wantOrigin: "*",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/v1/leagues", nil)
			req.Header.Set("Origin", tt.origin)
			if tt.requestMethod != "" {
				req.Header.Set("Access-Control-Request-Method", tt.requestMethod)
			}
			rec := httptest.NewRecorder()

			CORS(tt.allowed, next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Fatalf("Access-Control-Allow-Origin=%q want %q", got, tt.wantOrigin)
			}
			if got := rec.Header().Get("Access-Control-Allow-Methods") != ""; got != tt.wantMethods {
				t.Fatalf("Access-Control-Allow-Methods present=%v want %v", got, tt.wantMethods)
			}
		})
	}
}
