package auth

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ferdiebergado/devconnector/internal/pkg/message"
	"github.com/ferdiebergado/devconnector/internal/pkg/web"
	"github.com/ferdiebergado/devconnector/internal/platform/jwt"
)

// DefaultHeader is the request header that carries the credential.
const DefaultHeader = "x-auth-token"

// RequireToken rejects requests whose credential header is missing or does
// not verify. Accepted requests continue with the subject attached through
// ContextWithUser. The guard never looks the user up.
func RequireToken(signer jwt.Signer, header string) func(http.Handler) http.Handler {
	if header == "" {
		header = DefaultHeader
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimSpace(r.Header.Get(header))
			if token == "" {
				slog.Warn("Auth guard rejected request.", "kind", "no_token", "path", r.URL.Path)
				web.RespondUnauthorized(w, ErrNoToken, message.NotAuthorized, nil)
				return
			}

			claims, err := signer.Verify(token)
			if err != nil {
				slog.Warn("Auth guard rejected request.", "kind", jwt.Kind(err), "path", r.URL.Path)
				web.RespondUnauthorized(w, fmt.Errorf("%w: %w", ErrInvalidToken, err), message.NotAuthorized, nil)
				return
			}

			ctx := ContextWithUser(r.Context(), claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
