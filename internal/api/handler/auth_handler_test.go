package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/kstrand/members-portal/internal/api/middleware"
	"github.com/kstrand/members-portal/internal/core/domain"
)

type stubAuthService struct {
	signupFn func(ctx context.Context, username, email, password string) (*domain.Session, error)
	loginFn  func(ctx context.Context, email, password string) (*domain.Session, error)
	logoutFn func(ctx context.Context, token string) error
}

func (s *stubAuthService) Signup(ctx context.Context, username, email, password string) (*domain.Session, error) {
	return s.signupFn(ctx, username, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error {
	return s.logoutFn(ctx, token)
}

func issuedSession() *domain.Session {
	now := time.Now().UTC()
	return &domain.Session{
		Token:         "tok-1",
		Authenticated: true,
		Username:      "alice",
		Role:          domain.RoleUser,
		CreatedAt:     now,
		ExpiresAt:     now.Add(time.Hour),
	}
}

func formContext(t *testing.T, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func testAuthHandler(svc *stubAuthService) *AuthHandler {
	return NewAuthHandler(svc, middleware.CookieConfig{Name: "portal_session"}, zerolog.Nop())
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	svc := &stubAuthService{
		signupFn: func(_ context.Context, username, email, password string) (*domain.Session, error) {
			if username != "alice" || email != "a@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s %s", username, email, password)
			}
			return issuedSession(), nil
		},
	}
	c, rec := formContext(t, "/signupSubmit", "username=alice&email=a@example.com&password=secret")

	if err := testAuthHandler(svc).Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/members" {
		t.Fatalf("expected redirect to /members, got %s", loc)
	}

	var sessionCookie *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "portal_session" {
			sessionCookie = cookie
		}
	}
	if sessionCookie == nil || sessionCookie.Value != "tok-1" {
		t.Fatalf("session cookie not set: %+v", sessionCookie)
	}
	if !sessionCookie.HttpOnly {
		t.Fatalf("session cookie must be HttpOnly")
	}
}

func TestAuthHandler_Signup_RejectsInjectionShapedUsername(t *testing.T) {
	svc := &stubAuthService{
		signupFn: func(context.Context, string, string, string) (*domain.Session, error) {
			t.Fatalf("service must not be reached with invalid input")
			return nil, nil
		},
	}
	// "ab$ne" fails the alphanumeric whitelist before any store access.
	c, rec := formContext(t, "/signupSubmit", "username=ab%24ne&email=a@example.com&password=secret")

	if err := testAuthHandler(svc).Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "letters and digits") {
		t.Fatalf("expected validation reason in body, got %q", rec.Body.String())
	}
}

func TestAuthHandler_Signup_MissingFieldIsRejected(t *testing.T) {
	svc := &stubAuthService{
		signupFn: func(context.Context, string, string, string) (*domain.Session, error) {
			t.Fatalf("service must not be reached with missing fields")
			return nil, nil
		},
	}
	c, rec := formContext(t, "/signupSubmit", "username=alice&password=secret")

	if err := testAuthHandler(svc).Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Signup_Duplicate(t *testing.T) {
	svc := &stubAuthService{
		signupFn: func(context.Context, string, string, string) (*domain.Session, error) {
			return nil, domain.ErrUserExists
		},
	}
	c, rec := formContext(t, "/signupSubmit", "username=alice&email=a@example.com&password=secret")

	if err := testAuthHandler(svc).Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (*domain.Session, error) {
			if email != "a@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return issuedSession(), nil
		},
	}
	c, rec := formContext(t, "/loggingin", "email=a@example.com&password=secret")

	if err := testAuthHandler(svc).Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_GenericFailureMessage(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(context.Context, string, string) (*domain.Session, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}

	// Repeated failed attempts always render the identical message, with no
	// session cookie issued.
	var bodies []string
	for i := 0; i < 3; i++ {
		c, rec := formContext(t, "/loggingin", "email=a@example.com&password=wrong")
		if err := testAuthHandler(svc).Login(c); err != nil {
			t.Fatalf("attempt %d handler error: %v", i, err)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), invalidCombination) {
			t.Fatalf("attempt %d: missing generic message: %q", i, rec.Body.String())
		}
		if len(rec.Result().Cookies()) != 0 {
			t.Fatalf("attempt %d: cookie issued on failed login", i)
		}
		bodies = append(bodies, rec.Body.String())
	}
	if bodies[0] != bodies[1] || bodies[1] != bodies[2] {
		t.Fatalf("failure responses differ between attempts")
	}
}

func TestAuthHandler_Login_ValidationFailureUsesSameMessage(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(context.Context, string, string) (*domain.Session, error) {
			t.Fatalf("service must not be reached with invalid input")
			return nil, nil
		},
	}
	// 21-character email exceeds the whitelist.
	c, rec := formContext(t, "/loggingin", "email=aaaaaaaaaaaa@long.example&password=x")

	if err := testAuthHandler(svc).Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), invalidCombination) {
		t.Fatalf("expected generic message, got %q", rec.Body.String())
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	destroyed := ""
	svc := &stubAuthService{
		logoutFn: func(_ context.Context, token string) error {
			destroyed = token
			return nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: "portal_session", Value: "tok-1"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := testAuthHandler(svc).Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if destroyed != "tok-1" {
		t.Fatalf("expected session tok-1 destroyed, got %q", destroyed)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}

	cleared := false
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "portal_session" && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("expected cookie cleared on logout")
	}
}

func TestAuthHandler_Logout_WithoutSessionIsNoop(t *testing.T) {
	svc := &stubAuthService{
		logoutFn: func(context.Context, string) error {
			t.Fatalf("logout must not hit the store without a token")
			return nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := testAuthHandler(svc).Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
}
