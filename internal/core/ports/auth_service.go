package ports

import (
	"context"

	"github.com/kstrand/members-portal/internal/core/domain"
)

// AuthService covers credential registration and verification. Both success
// paths issue a fresh session and return its token for the cookie.
type AuthService interface {
	Signup(ctx context.Context, username, email, password string) (*domain.Session, error)
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	Logout(ctx context.Context, token string) error
}
