package handler

import (
	"errors"
	"html"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/kstrand/members-portal/internal/api/metrics"
	"github.com/kstrand/members-portal/internal/core/domain"
	"github.com/kstrand/members-portal/internal/core/ports"
)

// LookupHandler serves the validated username-lookup endpoint. It exists to
// demonstrate the validation discipline: the store is only ever queried with
// a value the whitelist has accepted as a plain scalar.
type LookupHandler struct {
	users     ports.UserService
	validator *echoValidator
	log       zerolog.Logger
}

func NewLookupHandler(users ports.UserService, validator *echoValidator, log zerolog.Logger) *LookupHandler {
	return &LookupHandler{users: users, validator: validator, log: log}
}

// Lookup echoes the validated username back after a lookup.
//
// A query string like user[$ne]=name arrives here as a parameter named
// "user[$ne]", so QueryParam("user") is empty and the required rule rejects
// it before any query is built. The same happens to any other operator-shaped
// payload: it either loses the expected parameter name or fails the
// alphanumeric whitelist.
func (h *LookupHandler) Lookup(c echo.Context) error {
	username := c.QueryParam("user")
	if username == "" && len(c.QueryParams()) == 0 {
		return c.HTML(http.StatusOK, `<h3>no user provided - try /nosql-injection?user=name</h3>
<h3>or /nosql-injection?user[$ne]=name</h3>`)
	}

	if err := h.validator.ValidateUsernameParam(username); err != nil {
		h.log.Warn().Err(err).Str("raw_query", c.QueryString()).Msg("lookup input rejected")
		metrics.ValidationRejectionsTotal.WithLabelValues("user").Inc()
		return c.HTML(http.StatusBadRequest, "<h1 style='color:darkred;'>A NoSQL injection attack was detected!!</h1>")
	}

	user, err := h.users.Lookup(c.Request().Context(), username)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	if user != nil {
		h.log.Debug().Str("username", user.Username).Msg("lookup hit")
	}

	return c.HTML(http.StatusOK, "<h1>Hello "+html.EscapeString(username)+"</h1>")
}
