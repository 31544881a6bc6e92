package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ferdiebergado/devconnector/internal/middleware"
)

func TestMiddleware_CORS(t *testing.T) {
	t.Parallel()

	const allowedOrigin = "http://localhost:5173"
	origins := []string{allowedOrigin, "http://localhost:3000"}

	tests := []struct {
		name, method, origin string
		code                 int
		headers              map[string]string
	}{
		{
			name:   "GET from an allowed origin",
			method: http.MethodGet,
			origin: allowedOrigin,
			code:   http.StatusOK,
			headers: map[string]string{
				middleware.HeaderAllowOrigin:  allowedOrigin,
				middleware.HeaderAllowCreds:   "true",
				middleware.HeaderAllowHeaders: "Content-Type, x-auth-token",
				middleware.HeaderAllowMethods: middleware.AllowedMethods,
			},
		},
		{
			name:   "preflight from an allowed origin",
			method: http.MethodOptions,
			origin: allowedOrigin,
			code:   http.StatusNoContent,
			headers: map[string]string{
				middleware.HeaderAllowOrigin: allowedOrigin,
			},
		},
		{
			name:   "GET from an unknown origin",
			method: http.MethodGet,
			origin: "http://evil.example",
			code:   http.StatusOK,
			headers: map[string]string{
				middleware.HeaderAllowOrigin: "",
				middleware.HeaderAllowCreds:  "",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(tt.method, "/", http.NoBody)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()

			middleware.CORS(origins, "x-auth-token")(handler).ServeHTTP(rec, req)

			if rec.Code != tt.code {
				t.Errorf("rec.Code = %d, want: %d", rec.Code, tt.code)
			}

			for header, want := range tt.headers {
				if got := rec.Header().Get(header); got != want {
					t.Errorf("rec.Header().Get(%q) = %q, want: %q", header, got, want)
				}
			}
		})
	}
}
