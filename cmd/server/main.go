package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/velocar/rental-portal/internal/api"
	"github.com/velocar/rental-portal/internal/api/metrics"
	"github.com/velocar/rental-portal/internal/core/service"
	"github.com/velocar/rental-portal/internal/infrastructure/apiclient"
	redisdb "github.com/velocar/rental-portal/internal/infrastructure/db/redis"
	"github.com/velocar/rental-portal/internal/infrastructure/relay"
	"github.com/velocar/rental-portal/internal/pkg/config"
	"github.com/velocar/rental-portal/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.SessionSecret == "" {
		log.Fatal().Msg("SESSION_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}
	defer func() { _ = rdb.Close() }()

	client := apiclient.New(cfg.APIBaseURL, log)

	sessionRelay := relay.New(rdb, log)
	sessions := service.NewSessionService(
		redisdb.NewSessionRepository(rdb),
		sessionRelay,
		client.CountUnread,
		log,
	)
	auth := service.NewAuthService(client, sessions, log)

	// Consume the cross-instance signals: badge updates fan out to every
	// admin session this process serves, session changes refresh cached
	// display data.
	sessionRelay.Listen(ctx,
		func(ctx context.Context, count int) {
			metrics.UnreadBadgeCount.Set(float64(count))
			sessions.BroadcastUnreadCount(ctx, count)
		},
		sessions.ObserveExternalChange,
	)

	e, err := api.NewRouter(api.Dependencies{
		Sessions:      sessions,
		Auth:          auth,
		Cars:          client,
		Bookings:      client,
		Messages:      client,
		Relay:         sessionRelay,
		API:           client,
		Redis:         rdb,
		SessionSecret: cfg.SessionSecret,
		Log:           log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("router build failed")
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("api", cfg.APIBaseURL).Msg("rental portal listening")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
