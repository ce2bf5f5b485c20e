package restaurant

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Create a new restaurant
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, restaurant *Restaurant) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO restaurants (name, slug, owner_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`,
		restaurant.Name,
		restaurant.Slug,
		restaurant.OwnerID,
		restaurant.Status,
	).Scan(&restaurant.ID, &restaurant.CreatedAt)
}

// --------------------------------------------------
// List restaurants owned by a user
// --------------------------------------------------
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*Restaurant, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, slug, owner_id, status, created_at
		FROM restaurants
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []*Restaurant
	for rows.Next() {
		var res Restaurant
		if err := rows.Scan(
			&res.ID,
			&res.Name,
			&res.Slug,
			&res.OwnerID,
			&res.Status,
			&res.CreatedAt,
		); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, &res)
	}

	return restaurants, rows.Err()
}

// --------------------------------------------------
// Ownership check (SECURITY)
// --------------------------------------------------
func (r *PostgresRepository) IsOwner(ctx context.Context, restaurantID string, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM restaurants
			WHERE id = $1
			  AND owner_id = $2
		)
	`, restaurantID, userID).Scan(&exists)

	return exists, err
}

func (r *PostgresRepository) Exists(ctx context.Context, restaurantID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM restaurants WHERE id = $1)
	`, restaurantID).Scan(&exists)

	return exists, err
}

// --------------------------------------------------
// POS configuration (JSONB, one row per restaurant)
// --------------------------------------------------
func (r *PostgresRepository) GetPOSConfig(ctx context.Context, restaurantID string) (*POSConfig, error) {
	var raw []byte
	err := r.db.QueryRow(ctx, `
		SELECT config
		FROM restaurant_pos_configs
		WHERE restaurant_id = $1
	`, restaurantID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg POSConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *PostgresRepository) SavePOSConfig(ctx context.Context, restaurantID string, cfg POSConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO restaurant_pos_configs (restaurant_id, config, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (restaurant_id)
		DO UPDATE SET
			config = EXCLUDED.config,
			updated_at = now()
	`, restaurantID, data)

	return err
}
