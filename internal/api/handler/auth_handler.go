package handler

import (
	"errors"
	"html"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/kstrand/members-portal/internal/api/metrics"
	"github.com/kstrand/members-portal/internal/api/middleware"
	"github.com/kstrand/members-portal/internal/core/domain"
	"github.com/kstrand/members-portal/internal/core/ports"
)

// invalidCombination is the single message rendered for every failed login.
// It must never vary with the cause: unknown email and wrong password read
// identically to the client.
const invalidCombination = "Invalid email/password combination."

type AuthHandler struct {
	auth   ports.AuthService
	cookie middleware.CookieConfig
	log    zerolog.Logger
}

func NewAuthHandler(auth ports.AuthService, cookie middleware.CookieConfig, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, cookie: cookie, log: log}
}

// SignupForm renders the registration form.
func (h *AuthHandler) SignupForm(c echo.Context) error {
	return c.HTML(http.StatusOK, `<h1>Create account</h1>
<form action='/signupSubmit' method='post'>
<input name='username' type='text' placeholder='username'>
<br><input name='email' type='email' placeholder='email'>
<br><input name='password' type='password' placeholder='password'>
<br><button>Submit</button>
</form>`)
}

// Signup validates the form, registers the user, and starts a session.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return c.HTML(http.StatusBadRequest, retryPage("invalid input", "/signup"))
	}
	if err := c.Validate(&req); err != nil {
		// Detailed reason to the log, human-readable summary to the form.
		h.log.Info().Err(err).Msg("signup input rejected")
		metrics.SignupsTotal.WithLabelValues("invalid").Inc()
		metrics.ValidationRejectionsTotal.WithLabelValues("signup").Inc()
		return c.HTML(http.StatusBadRequest, retryPage(err.Error(), "/signup"))
	}

	session, err := h.auth.Signup(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			metrics.SignupsTotal.WithLabelValues("duplicate").Inc()
			return c.HTML(http.StatusConflict, retryPage("username or email already in use", "/signup"))
		}
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.SignupsTotal.WithLabelValues("created").Inc()
	h.cookie.Set(c, session.Token, session.ExpiresAt)
	return c.Redirect(http.StatusSeeOther, "/members")
}

// LoginForm renders the login form.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.HTML(http.StatusOK, `<h1>Log in</h1>
<form action='/loggingin' method='post'>
<input name='email' type='email' placeholder='email'>
<br><input name='password' type='password' placeholder='password'>
<br><button>Submit</button>
</form>`)
}

// Login verifies credentials and starts a session. Every failure renders the
// same generic message.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.HTML(http.StatusBadRequest, retryPage(invalidCombination, "/login"))
	}
	if err := c.Validate(&req); err != nil {
		h.log.Info().Err(err).Msg("login input rejected")
		metrics.ValidationRejectionsTotal.WithLabelValues("login").Inc()
		return c.HTML(http.StatusBadRequest, retryPage(invalidCombination, "/login"))
	}

	session, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return c.HTML(http.StatusUnauthorized, retryPage(invalidCombination, "/login"))
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.cookie.Set(c, session.Token, session.ExpiresAt)
	return c.Redirect(http.StatusSeeOther, "/members")
}

// Logout destroys the session and clears the cookie. Always redirects home,
// also for requests that never had a session.
func (h *AuthHandler) Logout(c echo.Context) error {
	if token := h.cookie.Token(c); token != "" {
		if err := h.auth.Logout(c.Request().Context(), token); err != nil {
			return err
		}
	}
	h.cookie.Clear(c)
	return c.Redirect(http.StatusSeeOther, "/")
}

func retryPage(message, retryPath string) string {
	return "<p>" + html.EscapeString(message) + "</p>\n<a href='" + retryPath + "'>Try Again</a>"
}
