package user

import (
	"context"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByUID(ctx context.Context, uid string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	Upsert(ctx context.Context, u User) error
	UpdateProfile(ctx context.Context, uid, email, name string, role Role) error
	UpdatePassword(ctx context.Context, uid, passwordHash string) error
	Delete(ctx context.Context, uid string) error
}
