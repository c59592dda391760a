// server runs the salon booking HTTP API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/salon/booking-api/internal/api"
	"github.com/salon/booking-api/internal/api/handler"
	"github.com/salon/booking-api/internal/core/ports"
	"github.com/salon/booking-api/internal/core/service"
	"github.com/salon/booking-api/internal/infrastructure/db/migrate"
	"github.com/salon/booking-api/internal/infrastructure/db/postgres"
	redisstore "github.com/salon/booking-api/internal/infrastructure/db/redis"
	"github.com/salon/booking-api/internal/pkg/config"
	"github.com/salon/booking-api/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "booking-api",
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Postgres.MigrateOnStart {
		err := migrate.Run(cfg.Postgres.DSN, cfg.Postgres.Schema, migrate.DirectionUp)
		if err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
		log.Info().Msg("migrations applied")
	}

	pool, err := postgres.Connect(ctx, postgres.Config{
		DSN:      cfg.Postgres.DSN,
		Schema:   cfg.Postgres.Schema,
		MaxConns: cfg.Postgres.MaxConns,
	})
	if err != nil {
		return err
	}
	defer pool.Close()

	checks := map[string]handler.Check{
		"postgres": pool.Ping,
	}

	var sessions ports.SessionRepository = postgres.NewSessionRepository(pool)
	if cfg.Auth.SessionBackend == config.SessionBackendRedis {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()

		sessions = redisstore.NewSessionStore(rdb, cfg.Auth.RedisRetention)
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	log.Info().Str("backend", cfg.Auth.SessionBackend).Msg("session store ready")

	var hasher service.PasswordHasher = service.NewLegacyHasher()
	if cfg.Auth.PasswordHasher == config.PasswordHasherBcrypt {
		hasher = service.NewBcryptHasher(cfg.Auth.BcryptCost)
	}

	users := postgres.NewUserRepository(pool)

	e := api.NewRouter(api.Dependencies{
		Auth:       service.NewAuthService(users, sessions, hasher, cfg.Auth.SessionTTL, logger.Component("auth")),
		Bookings:   service.NewBookingService(postgres.NewBookingRepository(pool), logger.Component("bookings")),
		Reviews:    service.NewReviewService(postgres.NewReviewRepository(pool), logger.Component("reviews")),
		Feedback:   service.NewFeedbackService(postgres.NewFeedbackRepository(pool), logger.Component("feedback")),
		Catalog:    service.NewCatalogService(postgres.NewCatalogRepository(pool), logger.Component("services")),
		Users:      service.NewUserService(users, hasher, logger.Component("users")),
		Schedule:   service.NewScheduleService(postgres.NewScheduleRepository(pool), logger.Component("schedule")),
		Checks:     checks,
		Log:        log,
		PublicDocs: cfg.IsDevelopment(),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
