package auth

import (
	"context"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/presenz/presenz-backend-go/internal/domain/approval"
	"github.com/presenz/presenz-backend-go/internal/domain/user"
)

// IdentityFromContext reads the verified access-token claims placed in ctx by jwtauth.Verifier.
func IdentityFromContext(ctx context.Context) (Identity, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	uid, ok := claims["uid"].(string)
	if !ok || uid == "" {
		return Identity{}, ErrInvalidToken
	}

	id := Identity{UID: uid}
	id.Email, _ = claims["email"].(string)
	id.Name, _ = claims["name"].(string)
	role, _ := claims["role"].(string)
	id.Role = user.ParseRole(role)
	if employeeID, ok := claims["employee_id"].(string); ok && employeeID != "" {
		id.EmployeeID = &employeeID
	}
	return id, nil
}

// ContextWithIdentity stores id in ctx the way jwtauth.Verifier would after
// verifying an access token carrying the same claims.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	tok := jwt.New()
	_ = tok.Set("uid", id.UID)
	_ = tok.Set("email", id.Email)
	_ = tok.Set("name", id.Name)
	_ = tok.Set("role", string(id.Role))
	if id.EmployeeID != nil {
		_ = tok.Set("employee_id", *id.EmployeeID)
	}
	return jwtauth.NewContext(ctx, tok, nil)
}

// IsAdmin checks if the identity carries the Admin role
func (i Identity) IsAdmin() bool {
	return i.Role == user.RoleAdmin
}

// Approver returns the decision stamp for requests processed by this identity.
func (i Identity) Approver() approval.Approver {
	name := i.Name
	if name == "" {
		name = i.Email
	}
	return approval.Approver{UID: i.UID, Name: name}
}
