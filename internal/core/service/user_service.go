package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/kstrand/members-portal/internal/core/domain"
	"github.com/kstrand/members-portal/internal/core/ports"
)

// UserService implements account lookups and admin role management.
type UserService struct {
	users ports.UserRepository
	audit ports.AuditSink
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, audit ports.AuditSink, log zerolog.Logger) *UserService {
	if audit == nil {
		audit = ports.NopAuditSink{}
	}
	return &UserService{users: users, audit: audit, log: log}
}

func (s *UserService) Lookup(ctx context.Context, username string) (*domain.User, error) {
	if username == "" {
		return nil, domain.ErrValidation
	}
	return s.users.FindByUsername(ctx, username)
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) SetRole(ctx context.Context, username, role string) error {
	if username == "" || !domain.ValidRole(role) {
		return domain.ErrValidation
	}

	if err := s.users.UpdateRole(ctx, username, role); err != nil {
		return err
	}

	eventType := domain.AuditDemote
	if role == domain.RoleAdmin {
		eventType = domain.AuditPromote
	}
	s.log.Info().Str("username", username).Str("role", role).Msg("role updated")
	s.audit.Emit(domain.AuditEvent{Timestamp: time.Now().UTC(), EventType: eventType, Username: username, Success: true})
	return nil
}
