package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"armenu/internal/analytics"
	"armenu/internal/cart"
	"armenu/internal/config"
	"armenu/internal/db"
	"armenu/internal/logger"
	"armenu/internal/menu"
	"armenu/internal/order"
	"armenu/internal/restaurant"
	"armenu/internal/router"
	"armenu/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ───────────────────────── ENV ─────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Setup(cfg.Env, cfg.LogLevel)

	if err := config.Require(
		"JWT_SECRET",
		"DATABASE_URL",
		"R2_ACCESS_KEY",
		"R2_SECRET_KEY",
		"R2_BUCKET_NAME",
		"R2_ENDPOINT",
		"R2_PUBLIC_BASE_URL",
	); err != nil {
		log.Fatal().Err(err).Msg("missing configuration")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB, err := db.ConnectPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres init failed")
	}
	defer pgDB.Close()

	// ───────────────────────── STORAGE ─────────────────────────
	r2Client, err := storage.NewR2Client(ctx, storage.R2Options{
		Endpoint:      cfg.R2Endpoint,
		AccessKey:     cfg.R2AccessKey,
		SecretKey:     cfg.R2SecretKey,
		Bucket:        cfg.R2Bucket,
		PublicBaseURL: cfg.R2PublicBaseURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("R2 init failed")
	}

	cartStores, closeStores, err := openCartStores(ctx, cfg, pgDB)
	if err != nil {
		log.Fatal().Err(err).Str("cart_store", cfg.CartStore).Msg("cart store init failed")
	}
	defer closeStores()

	// ───────────────────────── SERVICES (ORDER MATTERS) ─────────────────────────
	restaurantService := restaurant.NewService(restaurant.NewPostgresRepository(pgDB))

	analyticsService := analytics.NewService(
		analytics.NewPostgresRepository(pgDB),
		restaurantService,
	)

	menuService := menu.NewService(
		menu.NewPostgresRepository(pgDB),
		r2Client,
		restaurantService,
		analyticsService,
	)

	cartService := cart.NewService(cartStores, restaurantService, menuService)

	orderService := order.NewService(
		order.NewPostgresRepository(pgDB),
		cartService,
		restaurantService,
	)

	// ───────────────────────── HTTP ─────────────────────────
	r := router.NewRouter(router.Deps{
		JWTSecret:   cfg.JWTSecret,
		CORSOrigins: cfg.CORSOrigins,
		Restaurants: restaurant.NewHandler(restaurantService),
		Menu:        menu.NewHandler(menuService),
		Cart:        cart.NewHandler(cartService),
		Orders:      order.NewHandler(orderService),
		Analytics:   analytics.NewHandler(analyticsService),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("cart_store", cfg.CartStore).Msg("API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// openCartStores picks the cart backend named by CART_STORE.
func openCartStores(ctx context.Context, cfg *config.Config, pgDB *pgxpool.Pool) (cart.StoreFactory, func(), error) {
	noop := func() {}

	switch cfg.CartStore {
	case "memory":
		return cart.NewMemoryStore().For, noop, nil

	case "sqlite":
		gdb, err := db.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if err := cart.AutoMigrateSQLite(gdb); err != nil {
			return nil, nil, err
		}
		closeDB := func() {
			if sqlDB, err := gdb.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return func(ns string) cart.Store { return cart.NewSQLiteStore(gdb, ns) }, closeDB, nil

	case "mongo":
		client, err := db.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		coll := db.OpenCollection(client, cfg.MongoDatabase, cart.MongoCollection)
		disconnect := func() { _ = client.Disconnect(context.Background()) }
		return func(ns string) cart.Store { return cart.NewMongoStore(coll, ns) }, disconnect, nil

	default:
		return func(ns string) cart.Store { return cart.NewPostgresStore(pgDB, ns) }, noop, nil
	}
}
