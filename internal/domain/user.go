package domain

import "errors"

// User is the authenticated caller. Accounts are managed outside this service.
type User struct {
	ID    string
	Email string
	Name  string
	Role  Role
}

// Role represents a user's access level
type Role string

const (
	// RoleAdmin manages banks and settings and can see every user's statements
	RoleAdmin Role = "admin"

	// RoleMember manages only their own statements
	RoleMember Role = "member"
)

// IsValid checks if the role is a valid role
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleMember
}

// IsAdmin checks if the role has admin access
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// Authentication errors
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInsufficientRole = errors.New("insufficient role for this operation")
)
