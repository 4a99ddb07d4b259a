package domain

import (
	"errors"
	"time"
)

// Role is the closed set of roles a subject can hold. Exactly one per user.
type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

var ErrInvalidRole = errors.New("invalid role")

// ParseRole validates a raw role string against the closed set. Roles are
// never trusted as free-form strings; every boundary that receives one
// (registration payloads, token claims) goes through here.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return Role(s), nil
	}
	return "", ErrInvalidRole
}

// User models a registered account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the verified claim set extracted from a credential.
// Derived per request, never persisted.
type Identity struct {
	SubjectID string
	Email     string
	Role      Role
}
