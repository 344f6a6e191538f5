package jwt

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/presenz/presenz-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewJWTService("test-secret-key-for-jwt", "1h", "24h", false)
	require.NoError(t, err)
	return svc
}

func TestNewJWTService_InvalidDuration(t *testing.T) {
	_, err := NewJWTService("secret", "soon", "24h", false)
	assert.Error(t, err)
}

func TestGenerateAccessToken_Claims(t *testing.T) {
	svc := newTestService(t)
	empID := "0190c2a4-0000-7000-8000-000000000001"

	token, exp, err := svc.GenerateAccessToken("uid-1", "asha@demo.com", "Asha", &empID, user.RoleEmployee)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Greater(t, exp, int64(0))

	parsed, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)
	claims, err := parsed.AsMap(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "uid-1", claims["uid"])
	assert.Equal(t, "asha@demo.com", claims["email"])
	assert.Equal(t, "Asha", claims["name"])
	assert.Equal(t, empID, claims["employee_id"])
	assert.Equal(t, string(user.RoleEmployee), claims["role"])
	assert.Equal(t, TokenTypeAccess, claims["type"])
}

func TestGenerateRefreshToken_Type(t *testing.T) {
	svc := newTestService(t)
	token, _, err := svc.GenerateRefreshToken("uid-1")
	require.NoError(t, err)

	parsed, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)
	tokenType, ok := parsed.Get("type")
	require.True(t, ok)
	assert.Equal(t, TokenTypeRefresh, tokenType)
}

func TestStreamToken_RoundTrip(t *testing.T) {
	svc := newTestService(t)
	token, expiresIn, err := svc.GenerateStreamToken("uid-9", user.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	uid, role, err := svc.ValidateStreamToken(token)
	require.NoError(t, err)
	assert.Equal(t, "uid-9", uid)
	assert.Equal(t, user.RoleAdmin, role)
}

func TestValidateStreamToken_RejectsOtherTypes(t *testing.T) {
	svc := newTestService(t)
	access, _, err := svc.GenerateAccessToken("uid-1", "a@b.cd", "A", nil, user.RoleAdmin)
	require.NoError(t, err)

	_, _, err = svc.ValidateStreamToken(access)
	assert.Error(t, err)

	_, _, err = svc.ValidateStreamToken("not-a-token")
	assert.Error(t, err)
}

func TestRefreshTokenCookie(t *testing.T) {
	svc := newTestService(t)
	c := svc.RefreshTokenCookie("tok", 1700000000)
	assert.Equal(t, "refresh_token", c.Name)
	assert.Equal(t, "/api/v1/auth", c.Path)
	assert.True(t, c.HttpOnly)
	assert.False(t, c.Secure)
}
