package ports

import (
	"context"
	"time"

	"github.com/kstrand/members-portal/internal/core/domain"
)

// SessionStore persists session records keyed by their opaque token. The
// backing store is durable, so issued sessions survive a process restart.
type SessionStore interface {
	// Save writes the record under its token, overwriting any previous state
	// for that token. ttl bounds how long the store keeps the record.
	Save(ctx context.Context, session *domain.Session, ttl time.Duration) error

	// Load returns the record for token, or (nil, nil) when the token is
	// unknown. Tampered tokens are indistinguishable from never-issued ones.
	Load(ctx context.Context, token string) (*domain.Session, error)

	// Delete removes the record. Deleting an absent token is a no-op.
	Delete(ctx context.Context, token string) error
}
