package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ValidRole reports whether role is one of the known role names.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

var ErrValidation = errors.New("invalid input")
var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid email/password combination")
var ErrNotAuthenticated = errors.New("not authenticated")
var ErrForbidden = errors.New("access forbidden")
var ErrSessionExpired = errors.New("session expired")

// ErrAmbiguousUser signals that a lookup on a unique field matched more than
// one document. The unique index makes this unreachable in a healthy store,
// so it is treated as corruption, not as a normal miss.
var ErrAmbiguousUser = errors.New("ambiguous user lookup")

// User models a registered account. PasswordHash is the bcrypt digest and is
// never serialized toward a client.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
