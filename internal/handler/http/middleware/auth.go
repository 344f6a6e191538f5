package middleware

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/presenz/presenz-backend-go/internal/domain/auth"
	"github.com/presenz/presenz-backend-go/internal/handler/http/response"
	"github.com/presenz/presenz-backend-go/internal/pkg/jwt"
)

// AuthRequired admits requests whose verified token is an access token that
// carries an identity. Refresh and stream tokens are rejected here; they are
// only accepted by their own endpoints.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			slog.Debug("rejected unauthenticated request", "path", r.URL.Path, "error", err)
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		if kind, _ := claims["type"].(string); kind != jwt.TokenTypeAccess {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		if _, err := auth.IdentityFromContext(r.Context()); err != nil {
			response.HandleError(w, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}
