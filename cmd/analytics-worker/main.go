package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"armenu/internal/analytics"
	"armenu/internal/config"
	"armenu/internal/db"
	"armenu/internal/logger"
	"armenu/internal/restaurant"

	"github.com/rs/zerolog/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Setup(cfg.Env, cfg.LogLevel)

	if err := config.Require("DATABASE_URL"); err != nil {
		log.Fatal().Err(err).Msg("missing configuration")
	}

	pgDB, err := db.ConnectPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres init failed")
	}
	defer pgDB.Close()

	service := analytics.NewService(
		analytics.NewPostgresRepository(pgDB),
		restaurant.NewService(restaurant.NewPostgresRepository(pgDB)),
	)

	log.Info().Dur("interval", cfg.AnalyticsInterval).Msg("analytics worker running")

	ticker := time.NewTicker(cfg.AnalyticsInterval)
	defer ticker.Stop()

	for {
		rollup(ctx, service)

		select {
		case <-ctx.Done():
			log.Info().Msg("analytics worker stopped")
			return
		case <-ticker.C:
		}
	}
}

// rollup refreshes yesterday, which may still receive late views, and today.
func rollup(ctx context.Context, service *analytics.Service) {
	now := time.Now().UTC()
	for _, day := range []time.Time{now.AddDate(0, 0, -1), now} {
		if err := service.RollupDay(ctx, day); err != nil {
			log.Warn().Err(err).Str("day", day.Format(time.DateOnly)).Msg("rollup failed")
		}
	}
}
