package memory

import (
	"context"
	"strings"
	"time"

	"github.com/presenz/presenz-backend-go/internal/domain/auth"
	"github.com/presenz/presenz-backend-go/internal/domain/employee"
	"github.com/presenz/presenz-backend-go/internal/domain/user"
)

type userRepository struct{ s *Store }

func (s *Store) Users() user.UserRepository {
	return &userRepository{s: s}
}

// linked fills EmployeeID from the active staff record sharing the uid.
func (r *userRepository) linked(u user.User) user.User {
	u.EmployeeID = nil
	for _, e := range r.s.staff {
		if e.UID != nil && *e.UID == u.UID && e.Status != employee.StatusRemoved {
			id := e.ID
			u.EmployeeID = &id
			break
		}
	}
	return u
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return r.linked(u), nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *userRepository) GetByUID(ctx context.Context, uid string) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[uid]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return r.linked(u), nil
}

func (r *userRepository) emailTaken(email, exceptUID string) bool {
	for uid, u := range r.s.users {
		if uid != exceptUID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func (r *userRepository) Create(ctx context.Context, newUser user.User) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[newUser.UID]; ok || r.emailTaken(newUser.Email, "") {
		return user.User{}, user.ErrUserEmailExists
	}
	now := r.s.Now()
	newUser.CreatedAt, newUser.UpdatedAt = now, now
	r.s.users[newUser.UID] = newUser
	return newUser, nil
}

func (r *userRepository) Upsert(ctx context.Context, u user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.emailTaken(u.Email, u.UID) {
		return user.ErrUserEmailExists
	}
	now := r.s.Now()
	if existing, ok := r.s.users[u.UID]; ok {
		if u.PasswordHash == nil {
			u.PasswordHash = existing.PasswordHash
		}
		u.CreatedAt = existing.CreatedAt
	} else {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	r.s.users[u.UID] = u
	return nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, uid, email, name string, role user.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[uid]
	if !ok {
		return user.ErrUserNotFound
	}
	if r.emailTaken(email, uid) {
		return user.ErrUserEmailExists
	}
	u.Email, u.Name, u.Role, u.UpdatedAt = email, name, role, r.s.Now()
	r.s.users[uid] = u
	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, uid, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[uid]
	if !ok {
		return user.ErrUserNotFound
	}
	u.PasswordHash = &passwordHash
	u.UpdatedAt = r.s.Now()
	r.s.users[uid] = u
	return nil
}

func (r *userRepository) Delete(ctx context.Context, uid string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[uid]; !ok {
		return user.ErrUserNotFound
	}
	delete(r.s.users, uid)
	return nil
}

type refreshTokenRepository struct{ s *Store }

func (s *Store) RefreshTokens() auth.RefreshTokenRepository {
	return &refreshTokenRepository{s: s}
}

func (r *refreshTokenRepository) CreateRefreshToken(ctx context.Context, uid string, token string, expiresAt int64, session auth.SessionTrackingRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.tokens[token] = refreshToken{uid: uid, expiresAt: time.Unix(expiresAt, 0)}
	return nil
}

func (r *refreshTokenRepository) IsRefreshTokenRevoked(ctx context.Context, token string) (string, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tokens[token]
	if !ok {
		return "", true, nil
	}
	return t.uid, t.revoked || !t.expiresAt.After(r.s.Now()), nil
}

func (r *refreshTokenRepository) RevokeRefreshToken(ctx context.Context, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t, ok := r.s.tokens[token]; ok {
		t.revoked = true
		r.s.tokens[token] = t
	}
	return nil
}
