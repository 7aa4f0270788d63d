package ports

import (
	"context"

	"github.com/kstrand/members-portal/internal/core/domain"
)

// Identity is the snapshot captured into a session at authentication time.
type Identity struct {
	Username string
	Role     string
}

// SessionManager drives the per-client session state machine:
// Anonymous → Authenticated → (Expired | LoggedOut) → Anonymous.
type SessionManager interface {
	// Start issues a new authenticated session for identity and returns it,
	// token populated. Re-authentication always mints a fresh token.
	Start(ctx context.Context, identity Identity) (*domain.Session, error)

	// Read resolves token to its current state. A missing, tampered, or empty
	// token yields domain.ErrNotAuthenticated; an elapsed one yields
	// domain.ErrSessionExpired. Neither ever grants access.
	Read(ctx context.Context, token string) (*domain.Session, error)

	// Destroy ends the session. Idempotent: destroying an absent or already
	// destroyed session is a successful no-op.
	Destroy(ctx context.Context, token string) error
}
