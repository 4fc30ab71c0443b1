package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gatehouse-dev/gatehouse"
	fiberadapter "github.com/gatehouse-dev/gatehouse/adapters/fiber"
	"github.com/gatehouse-dev/gatehouse/adapters/memory"
	pgxadapter "github.com/gatehouse-dev/gatehouse/adapters/pgx"
	redisadapter "github.com/gatehouse-dev/gatehouse/adapters/redis"
	"github.com/gatehouse-dev/gatehouse/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var users gatehouse.UserStore
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			return err
		}
		users = pgxadapter.New(pool)
		slog.Info("user store: postgres")
	} else {
		users = memory.NewUserStore()
		slog.Warn("DATABASE_URL not set, using in-memory user store")
	}

	var sessions gatehouse.SessionStore
	if cfg.RedisURL != "" {
		store, err := redisadapter.NewFromURL(cfg.RedisURL)
		if err != nil {
			return err
		}
		defer store.Client().Close()
		if err := store.Client().Ping(ctx).Err(); err != nil {
			return err
		}
		sessions = store
		slog.Info("session store: redis")
	} else {
		sessions = memory.NewSessionStore()
		slog.Warn("REDIS_URL not set, using in-memory session store")
	}

	app := fiber.New()
	app.Use(logger.New())

	_, err = gatehouse.New(gatehouse.Config{
		Users:               users,
		Sessions:            sessions,
		HTTP:                fiberadapter.New(app),
		SessionConfig:       &gatehouse.SessionConfig{TTL: cfg.SessionTTL},
		BasePath:            cfg.BasePath,
		DisableRegistration: !cfg.RegisterEnabled,
	})
	if err != nil {
		return err
	}

	slog.Info("listening", "addr", cfg.Addr, "base_path", cfg.BasePath,
		"registration_enabled", cfg.RegisterEnabled, "session_ttl", cfg.SessionTTL)

	return app.Listen(cfg.Addr)
}
