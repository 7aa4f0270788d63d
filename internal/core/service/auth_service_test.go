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

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = user.Username
	}
	r.users[copy.Username] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if u, ok := r.users[username]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdateRole(_ context.Context, username, role string) error {
	u, ok := r.users[username]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func newAuthFixture(t *testing.T) (*AuthService, *stubUserRepo, *SessionManager) {
	t.Helper()
	repo := newStubUserRepo()
	sessions := NewSessionManager(newStubSessionStore(), time.Hour, zerolog.Nop())
	svc := NewAuthService(repo, sessions, NewPasswordHasher(bcrypt.MinCost), nil, zerolog.Nop())
	return svc, repo, sessions
}

func TestPasswordHasher_RoundTrip(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	for _, plaintext := range []string{"a", "correct horse", "20-chars-xxxxxxxxxxx"} {
		record, err := hasher.Hash(plaintext)
		if err != nil {
			t.Fatalf("Hash(%q) returned error: %v", plaintext, err)
		}
		if record == plaintext {
			t.Fatalf("record must not equal plaintext")
		}
		if !hasher.Verify(plaintext, record) {
			t.Fatalf("Verify rejected its own hash for %q", plaintext)
		}
		if hasher.Verify(plaintext+"x", record) {
			t.Fatalf("Verify accepted a different plaintext")
		}
	}
}

func TestPasswordHasher_EnforcesCostFloor(t *testing.T) {
	hasher := NewPasswordHasher(4)
	if hasher.cost != MinBcryptCost {
		t.Fatalf("expected cost raised to %d, got %d", MinBcryptCost, hasher.cost)
	}
}

func TestAuthService_Signup_Success(t *testing.T) {
	svc, repo, mgr := newAuthFixture(t)

	session, err := svc.Signup(context.Background(), "alice", "alice@example.com", "secret")
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if !session.Authenticated || session.Username != "alice" || session.Role != domain.RoleUser {
		t.Fatalf("unexpected session: %+v", session)
	}

	stored := repo.users["alice"]
	if stored == nil {
		t.Fatalf("user not persisted")
	}
	if stored.PasswordHash == "secret" {
		t.Fatalf("plaintext persisted as hash")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	if _, err := mgr.Read(context.Background(), session.Token); err != nil {
		t.Fatalf("issued session not readable: %v", err)
	}
}

func TestAuthService_Signup_Duplicate(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	if _, err := svc.Signup(context.Background(), "alice", "alice@example.com", "secret"); err != nil {
		t.Fatalf("first Signup returned error: %v", err)
	}
	if _, err := svc.Signup(context.Background(), "alice", "other@example.com", "secret"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	if _, err := svc.Signup(context.Background(), "alice", "alice@example.com", "secret"); err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}

	session, err := svc.Login(context.Background(), "alice@example.com", "secret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if session.Username != "alice" {
		t.Fatalf("unexpected session identity: %+v", session)
	}
}

func TestAuthService_Login_FailureIsUniform(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	if _, err := svc.Signup(context.Background(), "alice", "alice@example.com", "secret"); err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}

	// Unknown email and wrong password must be the same error, and repeated
	// attempts must not change the outcome or create a session.
	attempts := []struct{ email, password string }{
		{"nobody@example.com", "secret"},
		{"alice@example.com", "wrong"},
		{"alice@example.com", "wrong"},
		{"alice@example.com", "wrong"},
	}
	for i, a := range attempts {
		session, err := svc.Login(context.Background(), a.email, a.password)
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i, err)
		}
		if session != nil {
			t.Fatalf("attempt %d: session issued on failed login", i)
		}
	}
}

func TestAuthService_Logout_DestroysSession(t *testing.T) {
	svc, _, mgr := newAuthFixture(t)

	session, err := svc.Signup(context.Background(), "alice", "alice@example.com", "secret")
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if err := svc.Logout(context.Background(), session.Token); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if _, err := mgr.Read(context.Background(), session.Token); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected anonymous after logout, got %v", err)
	}
	// Logging out again is a no-op.
	if err := svc.Logout(context.Background(), session.Token); err != nil {
		t.Fatalf("repeated Logout returned error: %v", err)
	}
}
