package ports

import (
	"context"

	"github.com/kstrand/members-portal/internal/core/domain"
)

// UserService exposes the account operations available past the auth flows:
// validated lookups and admin role management.
type UserService interface {
	// Lookup finds a user by username. The username must already be validated.
	Lookup(ctx context.Context, username string) (*domain.User, error)

	// List returns every account for the admin view.
	List(ctx context.Context) ([]domain.User, error)

	// SetRole promotes or demotes the named user. Open sessions keep their
	// role snapshot until the user authenticates again.
	SetRole(ctx context.Context, username, role string) error
}
