package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kstrand/members-portal/internal/api/handler"
	"github.com/kstrand/members-portal/internal/api/middleware"
	"github.com/kstrand/members-portal/internal/core/domain"
	"github.com/kstrand/members-portal/internal/core/ports"
)

// Deps carries the constructed services the router wires into handlers.
// Everything is injected; the router holds no globals.
type Deps struct {
	Auth     ports.AuthService
	Users    ports.UserService
	Sessions ports.SessionManager
	Cookie   middleware.CookieConfig
	Mongo    *mongo.Database
	Redis    *redis.Client
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portal"))
	e.Use(middleware.LoadSession(d.Cookie, d.Sessions))

	// Guards, in pipeline order: authentication first, then role.
	requireAuth := middleware.RequireAuth()
	requireAdmin := middleware.RequireRole(domain.RoleAdmin)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Cookie, d.Log)
	memberHandler := handler.NewMemberHandler()
	adminHandler := handler.NewAdminHandler(d.Users, d.Log)
	lookupHandler := handler.NewLookupHandler(d.Users, handler.NewValidator(), d.Log)

	// --- Public routes ---
	e.GET("/", memberHandler.Landing)
	e.GET("/signup", authHandler.SignupForm)
	e.POST("/signupSubmit", authHandler.Signup)
	e.GET("/login", authHandler.LoginForm)
	e.POST("/loggingin", authHandler.Login)
	e.GET("/logout", authHandler.Logout)
	e.GET("/nosql-injection", lookupHandler.Lookup)

	// --- Authenticated routes ---
	e.GET("/members", memberHandler.Members, requireAuth)
	e.GET("/loggedin", memberHandler.Members, requireAuth)

	// --- Admin routes (auth, then role) ---
	e.GET("/admin", adminHandler.Users, requireAuth, requireAdmin)
	e.POST("/promoteUser", adminHandler.Promote, requireAuth, requireAdmin)
	e.POST("/demoteUser", adminHandler.Demote, requireAuth, requireAdmin)

	// --- Health probes and metrics (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(d.Mongo, d.Redis).Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// Catch-all 404 page.
	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.HTML(http.StatusNotFound, "<h1>Page not found - 404</h1>")
	})

	return e
}
