package auth

import "errors"

var (
	ErrInvalidCredentials       = errors.New("invalid email or password")
	ErrInvalidToken             = errors.New("invalid or expired token")
	ErrRefreshTokenRevoked      = errors.New("refresh token has been revoked")
	ErrUserNotFound             = errors.New("user not found")
	ErrIdentityProviderDisabled = errors.New("external identity provider is not configured")
	ErrUnknownIdentity          = errors.New("identity is not registered with this workspace")
)
