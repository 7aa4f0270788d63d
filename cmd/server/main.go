package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/kstrand/members-portal/internal/api"
	"github.com/kstrand/members-portal/internal/api/middleware"
	"github.com/kstrand/members-portal/internal/core/service"
	"github.com/kstrand/members-portal/internal/infrastructure/config"
	mongodb "github.com/kstrand/members-portal/internal/infrastructure/db/mongo"
	redisdb "github.com/kstrand/members-portal/internal/infrastructure/db/redis"
	"github.com/kstrand/members-portal/internal/infrastructure/queue"
	"github.com/kstrand/members-portal/pkg/logger"
)

func main() {
	// Local development reads secrets from .env; missing file is fine.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}

	auditRepo := mongodb.NewAuditRepository(db)
	audit := queue.NewAuditDispatcher(cfg.Session.AuditWorkers, auditRepo, log)
	audit.Start(ctx)

	sessionStore := redisdb.NewSessionStore(rdb)
	sessions := service.NewSessionManager(sessionStore, cfg.Session.TTL, log)
	hasher := service.NewPasswordHasher(cfg.Session.BcryptCost)
	authService := service.NewAuthService(userRepo, sessions, hasher, audit, log)
	userService := service.NewUserService(userRepo, audit, log)

	e := api.NewRouter(api.Deps{
		Auth:     authService,
		Users:    userService,
		Sessions: sessions,
		Cookie:   middleware.CookieConfig{Name: cfg.Session.CookieName, Secure: cfg.Session.CookieSecure},
		Mongo:    db,
		Redis:    rdb,
		Log:      log,
	})

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		_ = e.Shutdown(context.Background())
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("portal listening")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Info().Err(err).Msg("server stopped")
	}
}
