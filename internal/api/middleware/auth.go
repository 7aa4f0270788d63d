package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kstrand/members-portal/internal/api/metrics"
)

// RequireAuth is the authentication guard. It permits the request only when
// LoadSession resolved an authenticated session; anything else is sent to the
// login page. No partial access is ever granted.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if SessionFromContext(c) == nil {
				metrics.AccessDeniedTotal.WithLabelValues("unauthenticated").Inc()
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			return next(c)
		}
	}
}
