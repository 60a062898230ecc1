package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wcontent-api/internal/domain"
)

// RequireSelf allows the request only when the authenticated account id equals
// the named URL parameter. It must run after Auth.
func RequireSelf(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", domain.KindInvalidCredentials)
				return
			}
			if claims.AccountID == "" || claims.AccountID != chi.URLParam(r, param) {
				writeJSONError(w, http.StatusForbidden, "cannot act on another user's account", domain.KindForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
