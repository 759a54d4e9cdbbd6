package user

import "strings"

// Role gates management operations; the core never authenticates,
// it only authorizes using the role the identity service resolved.
type Role string

const (
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// Principal is the opaque identity attached to every authorized command.
type Principal struct {
	UserID string
	Role   Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func ParseRole(raw string) Role {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(RoleAdmin):
		return RoleAdmin
	default:
		return RoleManager
	}
}
