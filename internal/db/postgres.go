package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// ConnectPostgres opens the pool, checks it answers and makes sure the schema
// exists.
func ConnectPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, errors.New("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres connection failed: %w", err)
	}

	log.Info().Msg("connected to PostgreSQL")

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return db, nil
}

// schema is applied in order on every start; each statement is idempotent.
var schema = []struct {
	name string
	sql  string
}{
	{"restaurants", `
		CREATE TABLE IF NOT EXISTS restaurants (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) NOT NULL,
			slug VARCHAR(255) NOT NULL,
			owner_id VARCHAR(255) NOT NULL,
			status VARCHAR(50) NOT NULL DEFAULT 'pending',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`},
	{"restaurants_owner_idx", `
		CREATE INDEX IF NOT EXISTS restaurants_owner_idx ON restaurants (owner_id)
	`},
	{"restaurant_pos_configs", `
		CREATE TABLE IF NOT EXISTS restaurant_pos_configs (
			restaurant_id UUID PRIMARY KEY REFERENCES restaurants(id) ON DELETE CASCADE,
			config JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`},
	{"models", `
		CREATE TABLE IF NOT EXISTS models (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			restaurant_id UUID NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			price NUMERIC(10, 2) NULL,
			thumbnail VARCHAR(500) NOT NULL DEFAULT '',
			model_url VARCHAR(500) NOT NULL,
			category VARCHAR(100) NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			ingredients TEXT[] NOT NULL DEFAULT '{}',
			allergens TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`},
	{"cart_slots", `
		CREATE TABLE IF NOT EXISTS cart_slots (
			namespace VARCHAR(64) NOT NULL,
			slot_key VARCHAR(128) NOT NULL,
			value BYTEA NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (namespace, slot_key)
		)
	`},
	{"orders", `
		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			restaurant_id UUID NOT NULL REFERENCES restaurants(id),
			session_id VARCHAR(128) NOT NULL,
			device_id VARCHAR(64) NOT NULL DEFAULT '',
			items JSONB NOT NULL,
			subtotal NUMERIC(10, 2) NOT NULL,
			delivery_fee NUMERIC(10, 2) NOT NULL,
			tax NUMERIC(10, 2) NOT NULL,
			total NUMERIC(10, 2) NOT NULL,
			currency CHAR(3) NOT NULL,
			status VARCHAR(20) NOT NULL,
			estimated_ready_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)
	`},
	{"orders_restaurant_idx", `
		CREATE INDEX IF NOT EXISTS orders_restaurant_idx ON orders (restaurant_id, created_at DESC)
	`},
	{"model_views", `
		CREATE TABLE IF NOT EXISTS model_views (
			id BIGSERIAL PRIMARY KEY,
			model_id UUID NOT NULL,
			restaurant_id UUID NOT NULL,
			device_type VARCHAR(20) NOT NULL,
			viewed_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`},
	{"model_views_restaurant_idx", `
		CREATE INDEX IF NOT EXISTS model_views_restaurant_idx ON model_views (restaurant_id, viewed_at)
	`},
	{"model_view_daily", `
		CREATE TABLE IF NOT EXISTS model_view_daily (
			restaurant_id UUID NOT NULL,
			model_id UUID NOT NULL,
			day DATE NOT NULL,
			views INTEGER NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (restaurant_id, model_id, day)
		)
	`},
}

func initSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt.sql); err != nil {
			return fmt.Errorf("%s: %w", stmt.name, err)
		}
	}

	log.Info().Int("statements", len(schema)).Msg("schema initialized")
	return nil
}
