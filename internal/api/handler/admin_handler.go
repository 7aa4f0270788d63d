package handler

import (
	"html"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/kstrand/members-portal/internal/api/metrics"
	"github.com/kstrand/members-portal/internal/core/domain"
	"github.com/kstrand/members-portal/internal/core/ports"
)

// AdminHandler serves the admin-only user list and role mutations. Both
// guards (auth, then role) run before any of these handlers.
type AdminHandler struct {
	users ports.UserService
	log   zerolog.Logger
}

func NewAdminHandler(users ports.UserService, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{users: users, log: log}
}

// Users renders the account table with promote/demote controls.
func (h *AdminHandler) Users(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("<h1>Admin</h1>\n<table border='1'>\n<tr><th>username</th><th>role</th><th></th></tr>\n")
	for _, u := range users {
		name := html.EscapeString(u.Username)
		b.WriteString("<tr><td>" + name + "</td><td>" + html.EscapeString(u.Role) + "</td><td>")
		if u.Role == domain.RoleAdmin {
			b.WriteString(roleForm("/demoteUser", name, "Demote"))
		} else {
			b.WriteString(roleForm("/promoteUser", name, "Promote"))
		}
		b.WriteString("</td></tr>\n")
	}
	b.WriteString("</table>")
	return c.HTML(http.StatusOK, b.String())
}

// Promote grants the admin role to the target user.
func (h *AdminHandler) Promote(c echo.Context) error {
	return h.setRole(c, domain.RoleAdmin)
}

// Demote strips the admin role from the target user.
func (h *AdminHandler) Demote(c echo.Context) error {
	return h.setRole(c, domain.RoleUser)
}

func (h *AdminHandler) setRole(c echo.Context, role string) error {
	var req roleChangeRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrValidation
	}
	if err := c.Validate(&req); err != nil {
		h.log.Info().Err(err).Msg("role change target rejected")
		metrics.ValidationRejectionsTotal.WithLabelValues("username").Inc()
		return err
	}

	if err := h.users.SetRole(c.Request().Context(), req.Username, role); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin")
}

func roleForm(action, username, label string) string {
	return "<form action='" + action + "' method='post' style='display:inline'>" +
		"<input type='hidden' name='username' value='" + username + "'>" +
		"<button>" + label + "</button></form>"
}
