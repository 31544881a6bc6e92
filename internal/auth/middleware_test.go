package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ferdiebergado/devconnector/internal/auth"
	"github.com/ferdiebergado/devconnector/internal/pkg/clock"
	"github.com/ferdiebergado/devconnector/internal/pkg/message"
	"github.com/ferdiebergado/devconnector/internal/pkg/web"
	"github.com/ferdiebergado/devconnector/internal/platform/jwt"
)

func TestMiddleware_RequireToken(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 10, 18, 8, 0, 0, 0, time.UTC)
	const key = "guard-test-key"

	mustSign := func(t *testing.T, signKey string, at time.Time, ttl time.Duration) string {
		t.Helper()
		token, err := jwt.Encode("u1", []byte(signKey), ttl, at)
		if err != nil {
			t.Fatal(err)
		}
		return token
	}

	tests := []struct {
		name        string
		header      string
		token       func(t *testing.T) string
		wantCode    int
		wantReached bool
	}{
		{
			name:        "valid token reaches the handler",
			header:      auth.DefaultHeader,
			token:       func(t *testing.T) string { return mustSign(t, key, start, time.Hour) },
			wantCode:    http.StatusOK,
			wantReached: true,
		},
		{
			name:     "missing header",
			header:   auth.DefaultHeader,
			token:    func(_ *testing.T) string { return "" },
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "token under the wrong header",
			header:   "Authorization",
			token:    func(t *testing.T) string { return mustSign(t, key, start, time.Hour) },
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "malformed token",
			header:   auth.DefaultHeader,
			token:    func(_ *testing.T) string { return "not-a-token" },
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "token signed with another key",
			header:   auth.DefaultHeader,
			token:    func(t *testing.T) string { return mustSign(t, "other-key", start, time.Hour) },
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "expired token",
			header:   auth.DefaultHeader,
			token:    func(t *testing.T) string { return mustSign(t, key, start.Add(-2*time.Hour), time.Hour) },
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			signer, err := jwt.NewGolangJWTSigner(key, clock.NewFake(start))
			if err != nil {
				t.Fatal(err)
			}

			var reached bool
			var gotUserID string
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
				gotUserID, _ = auth.UserFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", http.NoBody)
			if token := tt.token(t); token != "" {
				req.Header.Set(tt.header, token)
			}
			rec := httptest.NewRecorder()

			auth.RequireToken(signer, auth.DefaultHeader)(handler).ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("rec.Code = %d, want: %d", rec.Code, tt.wantCode)
			}

			if reached != tt.wantReached {
				t.Fatalf("reached = %v, want: %v", reached, tt.wantReached)
			}

			if tt.wantReached {
				if gotUserID != "u1" {
					t.Errorf("gotUserID = %q, want: %q", gotUserID, "u1")
				}
				return
			}

			var res web.ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if res.Message != message.NotAuthorized {
				t.Errorf("res.Message = %q, want: %q", res.Message, message.NotAuthorized)
			}
		})
	}
}

func TestMiddleware_RequireTokenCustomHeader(t *testing.T) {
	t.Parallel()

	signer := &jwt.StubSigner{
		VerifyFunc: func(tokenString string) (*jwt.Claims, error) {
			if tokenString != "good" {
				return nil, jwt.ErrMalformed
			}
			return &jwt.Claims{Subject: "u9"}, nil
		},
	}

	var gotUserID string
	handler := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		gotUserID, _ = auth.UserFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.Header.Set("X-Session", "good")
	rec := httptest.NewRecorder()

	auth.RequireToken(signer, "X-Session")(handler).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("rec.Code = %d, want: %d", rec.Code, http.StatusOK)
	}
	if gotUserID != "u9" {
		t.Errorf("gotUserID = %q, want: %q", gotUserID, "u9")
	}
}
