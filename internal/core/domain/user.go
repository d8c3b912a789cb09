package domain

import (
	"fmt"
	"time"
)

// Role is the flat authorization role attached to a user and carried in
// issued tokens. Keeping it a dedicated type (rather than a free-form
// string) forces call sites through ParseRole, so an unknown role is
// rejected at the boundary instead of compared as a bare string at runtime.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole converts a raw string into a known Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleUser:
		return RoleUser, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// User models a registered credential holder.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
