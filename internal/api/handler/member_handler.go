package handler

import (
	"html"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kstrand/members-portal/internal/api/middleware"
)

// MemberHandler serves the landing page and the authenticated member pages.
type MemberHandler struct{}

func NewMemberHandler() *MemberHandler {
	return &MemberHandler{}
}

// Landing renders the root page: signup/login entry points for anonymous
// visitors, a greeting for authenticated ones.
func (h *MemberHandler) Landing(c echo.Context) error {
	session := middleware.SessionFromContext(c)
	if session == nil {
		return c.HTML(http.StatusOK, `<button onclick="window.location.href='/signup'">Sign Up</button>
<br><button onclick="window.location.href='/login'">Log in</button>`)
	}
	return c.HTML(http.StatusOK, `<h1>Hello, `+html.EscapeString(session.Username)+`!</h1>
<button onclick="window.location.href='/members'">Go to Members Area</button>
<br><button onclick="window.location.href='/logout'">Logout</button>`)
}

// Members renders the members-only page. The auth guard runs before this
// handler; the session is always present here.
func (h *MemberHandler) Members(c echo.Context) error {
	session := middleware.SessionFromContext(c)
	return c.HTML(http.StatusOK, `<h1>Hello, `+html.EscapeString(session.Username)+`</h1>
<br><button onclick="window.location.href='/logout'">Logout</button>`)
}
