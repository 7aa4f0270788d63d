package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kstrand/members-portal/internal/core/domain"
)

const sessionKeyPrefix = "session:"

// SessionStore persists session records in Redis, keyed by the opaque token.
// Records are JSON blobs with a key TTL; the Session Manager's own ExpiresAt
// check is authoritative and the TTL only bounds storage of abandoned tokens.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) Save(ctx context.Context, session *domain.Session, ttl time.Duration) error {
	blob, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(session.Token), blob, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Load(ctx context.Context, token string) (*domain.Session, error) {
	blob, err := s.client.Get(ctx, s.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(blob, &session); err != nil {
		// A record that does not decode is treated like a tampered token:
		// drop it and report anonymous rather than fail the request.
		_ = s.client.Del(ctx, s.key(token)).Err()
		return nil, nil
	}

	session.Token = token
	return &session, nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) key(token string) string {
	return sessionKeyPrefix + token
}
