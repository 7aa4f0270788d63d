package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kstrand/members-portal/internal/core/domain"
	"github.com/kstrand/members-portal/internal/core/ports"
)

const defaultSessionTTL = time.Hour

// storeSlack keeps the persisted record alive a little past ExpiresAt so the
// lazy expiry check in Read, not key eviction, is what decides the outcome.
const storeSlack = time.Minute

// SessionManager implements ports.SessionManager over a durable SessionStore.
type SessionManager struct {
	store ports.SessionStore
	ttl   time.Duration
	now   func() time.Time
	log   zerolog.Logger
}

func NewSessionManager(store ports.SessionStore, ttl time.Duration, log zerolog.Logger) *SessionManager {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionManager{store: store, ttl: ttl, now: time.Now, log: log}
}

func (m *SessionManager) Start(ctx context.Context, identity ports.Identity) (*domain.Session, error) {
	if identity.Username == "" || !domain.ValidRole(identity.Role) {
		return nil, domain.ErrValidation
	}

	now := m.now().UTC()
	session := &domain.Session{
		Token:         uuid.NewString(),
		Authenticated: true,
		Username:      identity.Username,
		Role:          identity.Role,
		CreatedAt:     now,
		ExpiresAt:     now.Add(m.ttl),
	}

	if err := m.store.Save(ctx, session, m.ttl+storeSlack); err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}

	m.log.Info().Str("username", identity.Username).Str("role", identity.Role).
		Time("expires_at", session.ExpiresAt).Msg("session started")
	return session, nil
}

func (m *SessionManager) Read(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrNotAuthenticated
	}

	session, err := m.store.Load(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if session == nil || !session.Authenticated {
		return nil, domain.ErrNotAuthenticated
	}

	if session.Expired(m.now().UTC()) {
		// Lazy expiry: drop the stale record and report Expired, never
		// Authenticated, regardless of the stored flag.
		if err := m.store.Delete(ctx, token); err != nil {
			m.log.Warn().Err(err).Msg("failed to drop expired session")
		}
		return nil, domain.ErrSessionExpired
	}

	session.Token = token
	return session, nil
}

func (m *SessionManager) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := m.store.Delete(ctx, token); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}
