package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/presenz/presenz-backend-go/internal/domain/auth"
	"github.com/presenz/presenz-backend-go/internal/domain/employee"
	"github.com/presenz/presenz-backend-go/internal/domain/user"
	"github.com/presenz/presenz-backend-go/internal/pkg/identity"
	"github.com/presenz/presenz-backend-go/internal/pkg/jwt"
	"github.com/presenz/presenz-backend-go/internal/pkg/metrics"
	"github.com/presenz/presenz-backend-go/internal/repository/memory"
)

const testSecret = "test-secret-key-for-jwt"

type fakeProvider struct {
	tokens map[string]identity.Token
}

func (f *fakeProvider) VerifyIDToken(ctx context.Context, idToken string) (identity.Token, error) {
	tok, ok := f.tokens[idToken]
	if !ok {
		return identity.Token{}, identity.ErrInvalidIDToken
	}
	return tok, nil
}

func (f *fakeProvider) CreateUser(ctx context.Context, email, password, name string) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeProvider) DeleteUser(ctx context.Context, uid string) error { return nil }

type fixture struct {
	store   *memory.Store
	jwt     jwt.Service
	service auth.AuthService
}

func newFixture(t *testing.T, provider identity.Provider) fixture {
	t.Helper()
	store := memory.NewStore()
	jwtService, err := jwt.NewJWTService(testSecret, "1h", "24h", false)
	require.NoError(t, err)
	svc := NewAuthService(store.Transactor(), store.Users(), store.RefreshTokens(), jwtService, provider, metrics.New(prometheus.NewRegistry()))
	return fixture{store: store, jwt: jwtService, service: svc}
}

func (f fixture) createUser(t *testing.T, uid, email, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	h := string(hash)
	_, err = f.store.Users().Create(context.Background(), user.User{
		UID:          uid,
		Email:        email,
		Role:         user.RoleEmployee,
		PasswordHash: &h,
	})
	require.NoError(t, err)
}

// authedContext returns a context carrying verified claims for access.
func (f fixture) authedContext(t *testing.T, access string) context.Context {
	t.Helper()
	token, err := jwtauth.VerifyToken(f.jwt.JWTAuth(), access)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestLogin(t *testing.T) {
	f := newFixture(t, nil)
	f.createUser(t, "uid-1", "asha@example.com", "password123")

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := f.service.Login(context.Background(), auth.LoginRequest{Email: "asha@example.com", Password: "password123"}, auth.SessionTrackingRequest{})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, "uid-1", resp.User.UID)
		assert.Equal(t, "asha", resp.User.Name)
		assert.Equal(t, user.RoleEmployee, resp.User.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := f.service.Login(context.Background(), auth.LoginRequest{Email: "asha@example.com", Password: "nope"}, auth.SessionTrackingRequest{})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := f.service.Login(context.Background(), auth.LoginRequest{Email: "ghost@example.com", Password: "password123"}, auth.SessionTrackingRequest{})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestLogin_AdminEmailIsPromoted(t *testing.T) {
	f := newFixture(t, nil)
	f.createUser(t, "uid-admin", "admin@example.com", "password123")

	resp, err := f.service.Login(context.Background(), auth.LoginRequest{Email: "admin@example.com", Password: "password123"}, auth.SessionTrackingRequest{})
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, resp.User.Role)

	me, err := f.service.Me(f.authedContext(t, resp.AccessToken))
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, me.Role)
}

func TestMe_IncludesLinkedEmployee(t *testing.T) {
	f := newFixture(t, nil)
	f.createUser(t, "uid-1", "asha@example.com", "password123")
	uid := "uid-1"
	emp, err := f.store.Staff().Create(context.Background(), employee.Employee{UID: &uid, Name: "Asha"})
	require.NoError(t, err)

	resp, err := f.service.Login(context.Background(), auth.LoginRequest{Email: "asha@example.com", Password: "password123"}, auth.SessionTrackingRequest{})
	require.NoError(t, err)
	require.NotNil(t, resp.User.EmployeeID)
	assert.Equal(t, emp.ID, *resp.User.EmployeeID)

	me, err := f.service.Me(f.authedContext(t, resp.AccessToken))
	require.NoError(t, err)
	require.NotNil(t, me.EmployeeID)
	assert.Equal(t, emp.ID, *me.EmployeeID)
}

func TestRefreshAndLogout(t *testing.T) {
	f := newFixture(t, nil)
	f.createUser(t, "uid-1", "asha@example.com", "password123")
	ctx := context.Background()

	resp, err := f.service.Login(ctx, auth.LoginRequest{Email: "asha@example.com", Password: "password123"}, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	refreshed, err := f.service.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = f.service.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: resp.AccessToken})
	assert.ErrorIs(t, err, auth.ErrInvalidToken, "access tokens cannot be used to refresh")

	require.NoError(t, f.service.Logout(ctx, resp.RefreshToken))
	_, err = f.service.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)

	_, err = f.service.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: "garbage"})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t, nil)
	f.createUser(t, "uid-1", "asha@example.com", "password123")

	resp, err := f.service.Login(context.Background(), auth.LoginRequest{Email: "asha@example.com", Password: "password123"}, auth.SessionTrackingRequest{})
	require.NoError(t, err)
	ctx := f.authedContext(t, resp.AccessToken)

	err = f.service.ChangePassword(ctx, auth.ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "newpass1"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	require.NoError(t, f.service.ChangePassword(ctx, auth.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "newpass1"}))

	_, err = f.service.Login(context.Background(), auth.LoginRequest{Email: "asha@example.com", Password: "newpass1"}, auth.SessionTrackingRequest{})
	assert.NoError(t, err)
}

func TestLoginWithFirebase(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		f := newFixture(t, nil)
		_, err := f.service.LoginWithFirebase(context.Background(), auth.FirebaseLoginRequest{IDToken: "x"}, auth.SessionTrackingRequest{})
		assert.ErrorIs(t, err, auth.ErrIdentityProviderDisabled)
	})

	provider := &fakeProvider{tokens: map[string]identity.Token{
		"good":    {UID: "fb-1", Email: "ravi@example.com"},
		"unknown": {UID: "fb-404", Email: "nobody@example.com"},
	}}
	f := newFixture(t, provider)
	f.createUser(t, "fb-1", "ravi@example.com", "irrelevant")

	t.Run("registered uid", func(t *testing.T) {
		resp, err := f.service.LoginWithFirebase(context.Background(), auth.FirebaseLoginRequest{IDToken: "good"}, auth.SessionTrackingRequest{})
		require.NoError(t, err)
		assert.Equal(t, "fb-1", resp.User.UID)
	})

	t.Run("unregistered uid", func(t *testing.T) {
		_, err := f.service.LoginWithFirebase(context.Background(), auth.FirebaseLoginRequest{IDToken: "unknown"}, auth.SessionTrackingRequest{})
		assert.ErrorIs(t, err, auth.ErrUnknownIdentity)
	})

	t.Run("invalid token", func(t *testing.T) {
		_, err := f.service.LoginWithFirebase(context.Background(), auth.FirebaseLoginRequest{IDToken: "forged"}, auth.SessionTrackingRequest{})
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestStreamToken(t *testing.T) {
	f := newFixture(t, nil)
	f.createUser(t, "uid-1", "asha@example.com", "password123")

	resp, err := f.service.Login(context.Background(), auth.LoginRequest{Email: "asha@example.com", Password: "password123"}, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	stream, err := f.service.StreamToken(f.authedContext(t, resp.AccessToken))
	require.NoError(t, err)

	uid, role, err := f.jwt.ValidateStreamToken(stream.Token)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", uid)
	assert.Equal(t, user.RoleEmployee, role)
}
