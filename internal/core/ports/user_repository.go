package ports

import (
	"context"

	"github.com/kstrand/members-portal/internal/core/domain"
)

// UserRepository is the persistence contract for the user collection. Every
// value passed as a filter must already have passed input validation; the
// repository only ever builds scalar equality filters from these arguments.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrUserExists when the
	// username or email collides with an existing document.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// FindByUsername returns the single user with the given username, or
	// domain.ErrUserNotFound. More than one match is domain.ErrAmbiguousUser.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindByEmail behaves like FindByUsername keyed on email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdateRole sets only the role field of the named user, leaving the rest
	// of the document untouched. Returns domain.ErrUserNotFound when no user
	// matches.
	UpdateRole(ctx context.Context, username, role string) error

	// List returns all users ordered by username, password hashes omitted.
	List(ctx context.Context) ([]domain.User, error)
}
