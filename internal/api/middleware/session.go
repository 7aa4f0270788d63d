package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kstrand/members-portal/internal/api/metrics"
	"github.com/kstrand/members-portal/internal/core/domain"
	"github.com/kstrand/members-portal/internal/core/ports"
)

// sessionContextKey is where LoadSession stashes the resolved session.
const sessionContextKey = "portal_session"

// CookieConfig describes the client-held session cookie. The cookie carries
// only the opaque token; all state lives server-side.
type CookieConfig struct {
	Name   string
	Secure bool
}

// Token reads the raw token from the request cookie. Missing cookie yields "".
func (cc CookieConfig) Token(c echo.Context) string {
	cookie, err := c.Cookie(cc.Name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Set writes the session cookie. HttpOnly keeps it away from scripts.
func (cc CookieConfig) Set(c echo.Context, token string, expires time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     cc.Name,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   cc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the session cookie on the client.
func (cc CookieConfig) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     cc.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// LoadSession resolves the cookie token to a session record and stores it in
// the request context. Any resolution failure (missing cookie, unknown or
// tampered token, expiry) leaves the request anonymous; it never fails the
// request and never grants anything.
func LoadSession(cc CookieConfig, sessions ports.SessionManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := cc.Token(c)
			if token != "" {
				session, err := sessions.Read(c.Request().Context(), token)
				switch {
				case err == nil:
					c.Set(sessionContextKey, session)
				case errors.Is(err, domain.ErrSessionExpired):
					metrics.SessionsExpiredTotal.Inc()
					cc.Clear(c)
				case errors.Is(err, domain.ErrNotAuthenticated):
					// Unknown or tampered token: anonymous.
				default:
					// Store failure. The request proceeds anonymously; the
					// guards decide whether that matters for this route.
					c.Logger().Error(err)
				}
			}
			return next(c)
		}
	}
}

// SessionFromContext returns the authenticated session loaded by LoadSession,
// or nil when the request is anonymous.
func SessionFromContext(c echo.Context) *domain.Session {
	session, _ := c.Get(sessionContextKey).(*domain.Session)
	return session
}
