package middleware

import (
	"fmt"
	"mime"
	"net/http"

	"github.com/ferdiebergado/devconnector/internal/pkg/message"
	"github.com/ferdiebergado/devconnector/internal/pkg/web"
)

// CheckContentType rejects request bodies that are not JSON. Requests
// without a body pass through.
func CheckContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 && r.Header.Get(web.HeaderContentType) == "" {
			next.ServeHTTP(w, r)
			return
		}

		contentType := r.Header.Get(web.HeaderContentType)
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil || mediaType != web.MimeJSON {
			web.RespondUnsupportedMediaType(w, fmt.Errorf("invalid content-type: %q", contentType), message.InvalidInput, nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}
