package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole("Admin"))
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.Equal(t, RoleEmployee, ParseRole("Staff"))
	assert.Equal(t, RoleEmployee, ParseRole(""))
}

func TestUser_EffectiveRole(t *testing.T) {
	u := User{Email: "office.Admin@presenz.app", Role: RoleEmployee}
	assert.Equal(t, RoleAdmin, u.EffectiveRole())

	u = User{Email: "priya@demo.com", Role: RoleEmployee}
	assert.Equal(t, RoleEmployee, u.EffectiveRole())
	assert.False(t, u.IsAdmin())
}

func TestUser_DisplayName(t *testing.T) {
	assert.Equal(t, "Priya", (&User{Name: "Priya", Email: "p@demo.com"}).DisplayName())
	assert.Equal(t, "priya.sharma", (&User{Email: "priya.sharma@demo.com"}).DisplayName())
}
