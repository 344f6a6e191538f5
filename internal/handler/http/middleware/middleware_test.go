package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presenz/presenz-backend-go/internal/domain/auth"
	"github.com/presenz/presenz-backend-go/internal/domain/user"
	"github.com/presenz/presenz-backend-go/internal/pkg/jwt"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func serve(t *testing.T, h http.Handler, ctx context.Context) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestAdminOnly(t *testing.T) {
	admin := auth.ContextWithIdentity(context.Background(), auth.Identity{UID: "a", Role: user.RoleAdmin})
	employee := auth.ContextWithIdentity(context.Background(), auth.Identity{UID: "e", Role: user.RoleEmployee})

	assert.Equal(t, http.StatusNoContent, serve(t, AdminOnly(ok), admin))
	assert.Equal(t, http.StatusForbidden, serve(t, AdminOnly(ok), employee))
	assert.Equal(t, http.StatusUnauthorized, serve(t, AdminOnly(ok), context.Background()))
}

func TestAuthRequired(t *testing.T) {
	svc, err := jwt.NewJWTService("test-secret", "1h", "24h", false)
	require.NoError(t, err)
	ja := svc.JWTAuth()
	chain := jwtauth.Verifier(ja)(AuthRequired(ok))

	call := func(token string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		chain.ServeHTTP(rec, req)
		return rec.Code
	}

	access, _, err := svc.GenerateAccessToken("uid-1", "a@example.com", "A", nil, user.RoleEmployee)
	require.NoError(t, err)
	refresh, _, err := svc.GenerateRefreshToken("uid-1")
	require.NoError(t, err)
	stream, _, err := svc.GenerateStreamToken("uid-1", user.RoleEmployee)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, call(access))
	assert.Equal(t, http.StatusUnauthorized, call(refresh))
	assert.Equal(t, http.StatusUnauthorized, call(stream))
	assert.Equal(t, http.StatusUnauthorized, call(""))
}
