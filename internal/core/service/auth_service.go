package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/kstrand/members-portal/internal/core/domain"
	"github.com/kstrand/members-portal/internal/core/ports"
)

// AuthService implements signup, login, and logout. Credential failures are
// collapsed into domain.ErrInvalidCredentials before they leave this layer so
// callers cannot distinguish an unknown email from a wrong password.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionManager
	hasher   *PasswordHasher
	audit    ports.AuditSink
	log      zerolog.Logger
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionManager, hasher *PasswordHasher, audit ports.AuditSink, log zerolog.Logger) *AuthService {
	if audit == nil {
		audit = ports.NopAuditSink{}
	}
	return &AuthService{users: users, sessions: sessions, hasher: hasher, audit: audit, log: log}
}

func (s *AuthService) Signup(ctx context.Context, username, email, password string) (*domain.Session, error) {
	// The handlers validate shape and length; this guards direct callers.
	if username == "" || email == "" || password == "" {
		return nil, domain.ErrValidation
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		s.audit.Emit(domain.AuditEvent{Timestamp: now, EventType: domain.AuditSignup, Username: username, Detail: "create failed"})
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Msg("user registered")
	s.audit.Emit(domain.AuditEvent{Timestamp: now, EventType: domain.AuditSignup, Username: created.Username, Success: true})

	return s.sessions.Start(ctx, ports.Identity{Username: created.Username, Role: created.Role})
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Debug().Msg("login attempt for unknown email")
			s.audit.Emit(domain.AuditEvent{Timestamp: now, EventType: domain.AuditLogin, Detail: "unknown email"})
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.log.Debug().Str("username", user.Username).Msg("login attempt with wrong password")
		s.audit.Emit(domain.AuditEvent{Timestamp: now, EventType: domain.AuditLogin, Username: user.Username, Detail: "wrong password"})
		return nil, domain.ErrInvalidCredentials
	}

	s.audit.Emit(domain.AuditEvent{Timestamp: now, EventType: domain.AuditLogin, Username: user.Username, Success: true})
	return s.sessions.Start(ctx, ports.Identity{Username: user.Username, Role: user.Role})
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Destroy(ctx, token); err != nil {
		return err
	}
	s.audit.Emit(domain.AuditEvent{Timestamp: time.Now().UTC(), EventType: domain.AuditLogout, Success: true})
	return nil
}
