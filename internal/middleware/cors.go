package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/ferdiebergado/devconnector/internal/pkg/web"
)

const (
	HeaderAllowOrigin   = "Access-Control-Allow-Origin"
	HeaderAllowMethods  = "Access-Control-Allow-Methods"
	HeaderAllowHeaders  = "Access-Control-Allow-Headers"
	HeaderAllowCreds    = "Access-Control-Allow-Credentials"
	HeaderExposeHeaders = "Access-Control-Expose-Headers"
	HeaderVary          = "Vary"

	AllowedMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
)

// CORS allows credentialed cross-origin requests from the listed origins.
// extraHeaders are added to the allowed request headers, so the credential
// header can be sent from the browser.
func CORS(origins []string, extraHeaders ...string) func(http.Handler) http.Handler {
	allowedHeaders := strings.Join(append([]string{web.HeaderContentType}, extraHeaders...), ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			w.Header().Add(HeaderVary, "Origin")

			if origin != "" && slices.Contains(origins, origin) {
				w.Header().Set(HeaderAllowOrigin, origin)
				w.Header().Set(HeaderAllowCreds, "true")
				w.Header().Set(HeaderAllowMethods, AllowedMethods)
				w.Header().Set(HeaderAllowHeaders, allowedHeaders)
				w.Header().Set(HeaderExposeHeaders, web.HeaderRequestID)
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
