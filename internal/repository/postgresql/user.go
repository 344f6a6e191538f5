package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/presenz/presenz-backend-go/internal/domain/user"
	"github.com/presenz/presenz-backend-go/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `u.uid, u.email, u.name, u.role, u.password_hash, u.created_at, u.updated_at, s.id`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	var role string
	err := row.Scan(
		&u.UID,
		&u.Email,
		&u.Name,
		&role,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.EmployeeID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	u.Role = user.ParseRole(role)
	return u, nil
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN staff s ON s.uid = u.uid AND s.status <> 'removed'
		WHERE LOWER(u.email) = LOWER($1)
	`
	return scanUser(q.QueryRow(ctx, query, email))
}

// GetByUID implements user.UserRepository.
func (r *userRepositoryImpl) GetByUID(ctx context.Context, uid string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN staff s ON s.uid = u.uid AND s.status <> 'removed'
		WHERE u.uid = $1
	`
	return scanUser(q.QueryRow(ctx, query, uid))
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (uid, email, name, role, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`
	created := newUser
	err := q.QueryRow(ctx, query,
		newUser.UID,
		newUser.Email,
		newUser.Name,
		string(newUser.Role),
		newUser.PasswordHash,
	).Scan(&created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return user.User{}, user.ErrUserEmailExists
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

// Upsert implements user.UserRepository. An existing password hash is kept
// when u carries none.
func (r *userRepositoryImpl) Upsert(ctx context.Context, u user.User) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (uid, email, name, role, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (uid) DO UPDATE
		SET email = EXCLUDED.email,
			name = EXCLUDED.name,
			role = EXCLUDED.role,
			password_hash = COALESCE(EXCLUDED.password_hash, users.password_hash),
			updated_at = NOW()
	`
	_, err := q.Exec(ctx, query, u.UID, u.Email, u.Name, string(u.Role), u.PasswordHash)
	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return user.ErrUserEmailExists
		}
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

// UpdateProfile implements user.UserRepository.
func (r *userRepositoryImpl) UpdateProfile(ctx context.Context, uid, email, name string, role user.Role) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET email = $1, name = $2, role = $3, updated_at = NOW()
		WHERE uid = $4
	`
	tag, err := q.Exec(ctx, query, email, name, string(role), uid)
	if err != nil {
		if isUniqueViolation(err, "") {
			return user.ErrUserEmailExists
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// UpdatePassword implements user.UserRepository.
func (r *userRepositoryImpl) UpdatePassword(ctx context.Context, uid, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET password_hash = $1, updated_at = NOW()
		WHERE uid = $2
	`
	tag, err := q.Exec(ctx, query, passwordHash, uid)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// Delete implements user.UserRepository.
func (r *userRepositoryImpl) Delete(ctx context.Context, uid string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM users WHERE uid = $1`, uid)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
