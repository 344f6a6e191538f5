// Package identity wraps an external identity provider (Firebase Auth).
package identity

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

var (
	ErrInvalidIDToken = errors.New("identity token is invalid")
	ErrEmailExists    = errors.New("identity account with this email already exists")
)

// Token is the verified subject of an ID token.
type Token struct {
	UID   string
	Email string
	Name  string
}

// Provider verifies ID tokens and provisions accounts.
type Provider interface {
	VerifyIDToken(ctx context.Context, idToken string) (Token, error)
	CreateUser(ctx context.Context, email, password, name string) (string, error)
	DeleteUser(ctx context.Context, uid string) error
}

type Config struct {
	ProjectID       string
	CredentialsFile string
	CredentialsJSON string
}

type firebaseProvider struct {
	client *auth.Client
}

// NewFirebaseProvider initialises the Firebase app and its Auth client.
func NewFirebaseProvider(ctx context.Context, cfg Config) (Provider, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, clientOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("failed to init firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to init firebase auth: %w", err)
	}
	return &firebaseProvider{client: client}, nil
}

func (p *firebaseProvider) VerifyIDToken(ctx context.Context, idToken string) (Token, error) {
	tok, err := p.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return Token{}, fmt.Errorf("%w: %v", ErrInvalidIDToken, err)
	}
	email, _ := tok.Claims["email"].(string)
	name, _ := tok.Claims["name"].(string)
	return Token{UID: tok.UID, Email: email, Name: name}, nil
}

func (p *firebaseProvider) CreateUser(ctx context.Context, email, password, name string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(name)

	rec, err := p.client.CreateUser(ctx, params)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return "", ErrEmailExists
		}
		return "", fmt.Errorf("failed to create identity account: %w", err)
	}
	return rec.UID, nil
}

func (p *firebaseProvider) DeleteUser(ctx context.Context, uid string) error {
	if err := p.client.DeleteUser(ctx, uid); err != nil && !auth.IsUserNotFound(err) {
		return fmt.Errorf("failed to delete identity account: %w", err)
	}
	return nil
}

// clientOptions accepts credentials as a file path, inline JSON or base64 JSON.
func clientOptions(cfg Config) []option.ClientOption {
	if cred := strings.TrimSpace(cfg.CredentialsJSON); cred != "" {
		if strings.HasPrefix(cred, "{") {
			return []option.ClientOption{option.WithCredentialsJSON([]byte(cred))}
		}
		if decoded, err := base64.StdEncoding.DecodeString(cred); err == nil {
			return []option.ClientOption{option.WithCredentialsJSON(decoded)}
		}
	}
	if cfg.CredentialsFile != "" {
		return []option.ClientOption{option.WithCredentialsFile(cfg.CredentialsFile)}
	}
	return nil
}
