package middleware

import (
	"net/http"

	"github.com/presenz/presenz-backend-go/internal/domain/auth"
	"github.com/presenz/presenz-backend-go/internal/domain/user"
	"github.com/presenz/presenz-backend-go/internal/handler/http/response"
)

// AdminOnly requires the Admin role claim on the verified access token.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := auth.IdentityFromContext(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}

		if !identity.IsAdmin() {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
