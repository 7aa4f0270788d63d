package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/kstrand/members-portal/internal/core/domain"
)

func TestUserService_SetRole(t *testing.T) {
	repo := newStubUserRepo()
	repo.users["bob"] = &domain.User{Username: "bob", Email: "bob@example.com", Role: domain.RoleUser}
	svc := NewUserService(repo, nil, zerolog.Nop())

	if err := svc.SetRole(context.Background(), "bob", domain.RoleAdmin); err != nil {
		t.Fatalf("SetRole returned error: %v", err)
	}
	if repo.users["bob"].Role != domain.RoleAdmin {
		t.Fatalf("role not updated: %s", repo.users["bob"].Role)
	}

	if err := svc.SetRole(context.Background(), "bob", "owner"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown role, got %v", err)
	}
	if err := svc.SetRole(context.Background(), "ghost", domain.RoleAdmin); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_PromotionDoesNotTouchOpenSessions(t *testing.T) {
	repo := newStubUserRepo()
	sessions := NewSessionManager(newStubSessionStore(), time.Hour, zerolog.Nop())
	auth := NewAuthService(repo, sessions, NewPasswordHasher(bcrypt.MinCost), nil, zerolog.Nop())
	users := NewUserService(repo, nil, zerolog.Nop())

	bobSession, err := auth.Signup(context.Background(), "bob", "bob@example.com", "secret")
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}

	if err := users.SetRole(context.Background(), "bob", domain.RoleAdmin); err != nil {
		t.Fatalf("SetRole returned error: %v", err)
	}

	// The open session keeps its snapshot until bob re-authenticates.
	got, err := sessions.Read(context.Background(), bobSession.Token)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if got.Role != domain.RoleUser {
		t.Fatalf("open session role changed without re-authentication: %s", got.Role)
	}

	relogged, err := auth.Login(context.Background(), "bob@example.com", "secret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if relogged.Role != domain.RoleAdmin {
		t.Fatalf("re-authenticated session missing new role: %s", relogged.Role)
	}
}

func TestUserService_Lookup(t *testing.T) {
	repo := newStubUserRepo()
	repo.users["bob"] = &domain.User{Username: "bob", Email: "bob@example.com", Role: domain.RoleUser}
	svc := NewUserService(repo, nil, zerolog.Nop())

	user, err := svc.Lookup(context.Background(), "bob")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if user.Username != "bob" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := svc.Lookup(context.Background(), ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty username, got %v", err)
	}
	if _, err := svc.Lookup(context.Background(), "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
