package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/presenz/presenz-backend-go/internal/domain/auth"
	"github.com/presenz/presenz-backend-go/internal/domain/user"
	"github.com/presenz/presenz-backend-go/internal/pkg/database"
	"github.com/presenz/presenz-backend-go/internal/pkg/identity"
	"github.com/presenz/presenz-backend-go/internal/pkg/jwt"
	"github.com/presenz/presenz-backend-go/internal/pkg/metrics"
)

const (
	methodPassword = "password"
	methodFirebase = "firebase"
)

type AuthServiceImpl struct {
	tx       database.Transactor
	users    user.UserRepository
	tokens   auth.RefreshTokenRepository
	jwt      jwt.Service
	provider identity.Provider
	metrics  *metrics.Metrics
}

// NewAuthService builds the auth service. provider may be nil when no
// external identity provider is configured.
func NewAuthService(tx database.Transactor, users user.UserRepository, tokens auth.RefreshTokenRepository, jwtService jwt.Service, provider identity.Provider, m *metrics.Metrics) auth.AuthService {
	return &AuthServiceImpl{
		tx:       tx,
		users:    users,
		tokens:   tokens,
		jwt:      jwtService,
		provider: provider,
		metrics:  m,
	}
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func toIdentity(u user.User) auth.Identity {
	return auth.Identity{
		UID:        u.UID,
		Email:      u.Email,
		Name:       u.DisplayName(),
		Role:       u.EffectiveRole(),
		EmployeeID: u.EmployeeID,
	}
}

// issueTokens creates an access/refresh pair for u and stores the refresh token.
func (a *AuthServiceImpl) issueTokens(ctx context.Context, u user.User, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	id := toIdentity(u)
	resp := auth.TokenResponse{User: id}

	err := a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		resp.AccessToken, resp.AccessTokenExpiresIn, err = a.jwt.GenerateAccessToken(id.UID, id.Email, id.Name, id.EmployeeID, id.Role)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}
		resp.RefreshToken, resp.RefreshTokenExpiresIn, err = a.jwt.GenerateRefreshToken(id.UID)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}
		if err := a.tokens.CreateRefreshToken(ctx, id.UID, resp.RefreshToken, resp.RefreshTokenExpiresIn, session); err != nil {
			return fmt.Errorf("failed to save refresh token to database: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}
	return resp, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest, session auth.SessionTrackingRequest) (resp auth.TokenResponse, err error) {
	defer func() { a.metrics.Login(methodPassword, err) }()

	u, err := a.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if u.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueTokens(ctx, u, session)
}

// LoginWithFirebase implements auth.AuthService.
func (a *AuthServiceImpl) LoginWithFirebase(ctx context.Context, req auth.FirebaseLoginRequest, session auth.SessionTrackingRequest) (resp auth.TokenResponse, err error) {
	defer func() { a.metrics.Login(methodFirebase, err) }()

	if a.provider == nil {
		return auth.TokenResponse{}, auth.ErrIdentityProviderDisabled
	}

	tok, err := a.provider.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		slog.Warn("firebase token rejected", "error", err)
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	u, err := a.users.GetByUID(ctx, tok.UID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrUnknownIdentity
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by uid: %w", err)
	}

	return a.issueTokens(ctx, u, session)
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	token, err := jwtauth.VerifyToken(a.jwt.JWTAuth(), req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	if tokenType, _ := token.Get("type"); tokenType != jwt.TokenTypeRefresh {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	uid, revoked, err := a.tokens.IsRefreshTokenRevoked(ctx, req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if revoked {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	u, err := a.users.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.AccessTokenResponse{}, auth.ErrUserNotFound
		}
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	id := toIdentity(u)
	access, expiresIn, err := a.jwt.GenerateAccessToken(id.UID, id.Email, id.Name, id.EmployeeID, id.Role)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	return auth.AccessTokenResponse{AccessToken: access, AccessTokenExpiresIn: expiresIn}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := a.tokens.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// Me implements auth.AuthService. The stored account wins over the token
// claims so role and staff link changes show up before the token expires.
func (a *AuthServiceImpl) Me(ctx context.Context) (auth.Identity, error) {
	claims, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return auth.Identity{}, err
	}

	u, err := a.users.GetByUID(ctx, claims.UID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.Identity{}, auth.ErrUserNotFound
		}
		return auth.Identity{}, fmt.Errorf("failed to get user: %w", err)
	}
	return toIdentity(u), nil
}

// ChangePassword implements auth.AuthService.
func (a *AuthServiceImpl) ChangePassword(ctx context.Context, req auth.ChangePasswordRequest) error {
	claims, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return err
	}

	u, err := a.users.GetByUID(ctx, claims.UID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if u.PasswordHash == nil {
		return auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return auth.ErrInvalidCredentials
	}

	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := a.users.UpdatePassword(ctx, u.UID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	slog.Info("password changed", "uid", u.UID)
	return nil
}

// StreamToken implements auth.AuthService.
func (a *AuthServiceImpl) StreamToken(ctx context.Context) (auth.StreamTokenResponse, error) {
	claims, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return auth.StreamTokenResponse{}, err
	}

	token, expiresIn, err := a.jwt.GenerateStreamToken(claims.UID, claims.Role)
	if err != nil {
		return auth.StreamTokenResponse{}, fmt.Errorf("failed to create stream token: %w", err)
	}
	return auth.StreamTokenResponse{Token: token, ExpiresIn: expiresIn}, nil
}
