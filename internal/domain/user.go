package domain

import "time"

// Role enumerates the three account roles. The numeric values are part of
// the wire contract: registration and role-update requests carry them as
// integers, while outbound user representations carry the role name.
type Role int

const (
	RoleAdmin    Role = 0
	RoleReporter Role = 1
	RoleResolver Role = 2
)

// Valid reports whether the role is one of the three defined values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleReporter, RoleResolver:
		return true
	}
	return false
}

// String returns the API-facing role name.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleReporter:
		return "UserReport"
	case RoleResolver:
		return "UserResolve"
	}
	return "Unknown"
}

// CanResolve reports whether the role is eligible to hold ticket assignments.
func (r Role) CanResolve() bool {
	return r == RoleResolver || r == RoleAdmin
}

// User is the domain model for ticket reporters, resolvers and admins.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
