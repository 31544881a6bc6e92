package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/ferdiebergado/devconnector/internal/middleware"
	"github.com/ferdiebergado/devconnector/internal/pkg/web"
)

func TestMiddleware_LogRequest(t *testing.T) {
	t.Parallel()

	existing := uuid.NewString()

	tests := []struct {
		name     string
		incoming string
		wantSame bool
	}{
		{name: "assigns a new request id", incoming: ""},
		{name: "keeps a valid incoming request id", incoming: existing, wantSame: true},
		{name: "replaces a garbage request id", incoming: "not-a-uuid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var ctxID string
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctxID = web.RequestIDFromContext(r.Context())
				w.WriteHeader(http.StatusTeapot)
			})

			req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			if tt.incoming != "" {
				req.Header.Set(web.HeaderRequestID, tt.incoming)
			}
			rec := httptest.NewRecorder()

			middleware.InjectWriter(middleware.LogRequest(handler)).ServeHTTP(rec, req)

			got := rec.Header().Get(web.HeaderRequestID)
			if _, err := uuid.Parse(got); err != nil {
				t.Fatalf("response request id %q is not a uuid: %v", got, err)
			}
			if got != ctxID {
				t.Errorf("context request id = %q, want: %q", ctxID, got)
			}
			if tt.wantSame && got != tt.incoming {
				t.Errorf("request id = %q, want: %q", got, tt.incoming)
			}
			if rec.Code != http.StatusTeapot {
				t.Errorf("rec.Code = %d, want: %d", rec.Code, http.StatusTeapot)
			}
		})
	}
}

func TestSafeResponseWriter(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	w := middleware.NewSafeResponseWriter(context.Background(), rec)

	w.WriteHeader(http.StatusCreated)
	w.WriteHeader(http.StatusInternalServerError)
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatal(err)
	}

	if w.Status() != http.StatusCreated || rec.Code != http.StatusCreated {
		t.Errorf("status = %d (recorded %d), want: %d", w.Status(), rec.Code, http.StatusCreated)
	}
	if w.BytesWritten() != len("hello") {
		t.Errorf("w.BytesWritten() = %d, want: %d", w.BytesWritten(), len("hello"))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	canceled := middleware.NewSafeResponseWriter(ctx, httptest.NewRecorder())
	if n, err := canceled.Write([]byte("late")); n != 0 || err == nil {
		t.Errorf("canceled.Write() = (%d, %v), want: (0, error)", n, err)
	}
}
