package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kstrand/members-portal/internal/api/metrics"
	"github.com/kstrand/members-portal/internal/core/domain"
)

// RequireRole is the role guard. It assumes RequireAuth ran first; if it is
// ever reached with an anonymous session it short-circuits to the
// not-authenticated outcome (login redirect), never to forbidden, so guard
// ordering mistakes cannot leak the distinction.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := SessionFromContext(c)
			if session == nil {
				metrics.AccessDeniedTotal.WithLabelValues("unauthenticated").Inc()
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			if _, ok := allowed[session.Role]; !ok {
				metrics.AccessDeniedTotal.WithLabelValues("forbidden").Inc()
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
