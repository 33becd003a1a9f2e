package middleware

import (
	"net/http"

	"github.com/cscruggs10/autointel/internal/auth"
	"github.com/cscruggs10/autointel/internal/db/repositories"
)

// AuthMiddleware validates the X-API-Key header against the keys table
// and stamps uploader claims onto the request context
func AuthMiddleware(keysRepo *repositories.KeysRepo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			apiKey := r.Header.Get("X-API-Key")
			if apiKey == "" {
				http.Error(w, "Unauthorized. Missing API Key", http.StatusUnauthorized)
				return
			}

			keyRes, err := keysRepo.GetStatus(r.Context(), apiKey)
			if err != nil {
				http.Error(w, "Unauthorized. Invalid API Key", http.StatusUnauthorized)
				return
			}

			if !keyRes.Status {
				http.Error(w, "Unauthorized. Inactive API Key", http.StatusUnauthorized)
				return
			}

			claims := &auth.UploaderClaims{
				ApiKey:     keyRes.ApiKey,
				UploaderID: keyRes.UploaderID,
			}

			ctx := auth.SetUploaderClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
