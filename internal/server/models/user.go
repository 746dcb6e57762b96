// Package models defines the server-side domain types persisted in, or
// derived from, the documents and catalog stores.
package models

import "fmt"

// Role is the closed set of participant roles. Roles are carried for future
// policy rules; no access decision consults them today.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleAgent  Role = "agent"
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleLegal  Role = "legal"
	RoleNotary Role = "notary"
)

var roles = map[Role]struct{}{
	RoleAdmin:  {},
	RoleAgent:  {},
	RoleBuyer:  {},
	RoleSeller: {},
	RoleLegal:  {},
	RoleNotary: {},
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roles[r]
	return ok
}

// ParseRole converts s into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// User is the acting identity resolved from the access token.
type User struct {
	ID   string
	Role Role
}
