package user

import (
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin    Role = "Admin"    // Manages staff, settings and approvals
	RoleEmployee Role = "Employee" // Punches and files requests for themselves
)

// ParseRole maps stored role strings onto a Role; unknown values are employees.
func ParseRole(s string) Role {
	if strings.EqualFold(s, string(RoleAdmin)) {
		return RoleAdmin
	}
	return RoleEmployee
}

type User struct {
	UID          string
	Email        string
	Name         string
	Role         Role
	PasswordHash *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Join
	EmployeeID *string
}

// IsAdmin checks if user may manage staff, settings and approvals
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// EffectiveRole promotes any account whose email contains "admin" to Admin.
func (u *User) EffectiveRole() Role {
	if strings.Contains(strings.ToLower(u.Email), "admin") {
		return RoleAdmin
	}
	return u.Role
}

// DisplayName returns Name or, when empty, the local part of Email.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	if i := strings.Index(u.Email, "@"); i > 0 {
		return u.Email[:i]
	}
	return u.Email
}
