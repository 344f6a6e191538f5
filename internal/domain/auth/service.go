package auth

import (
	"context"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest, session SessionTrackingRequest) (TokenResponse, error)
	LoginWithFirebase(ctx context.Context, req FirebaseLoginRequest, session SessionTrackingRequest) (TokenResponse, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	Me(ctx context.Context) (Identity, error)
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
	StreamToken(ctx context.Context) (StreamTokenResponse, error)
}

// RefreshTokenRepository persists hashed refresh tokens so they can be revoked.
type RefreshTokenRepository interface {
	CreateRefreshToken(ctx context.Context, uid string, token string, expiresAt int64, session SessionTrackingRequest) error
	IsRefreshTokenRevoked(ctx context.Context, token string) (uid string, revoked bool, err error)
	RevokeRefreshToken(ctx context.Context, token string) error
}
