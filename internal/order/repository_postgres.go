package order

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
// Persist an order
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, o *Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO orders (
			id, restaurant_id, session_id, device_id, items,
			subtotal, delivery_fee, tax, total, currency,
			status, estimated_ready_at, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`,
		o.ID,
		o.RestaurantID,
		o.SessionID,
		o.DeviceID,
		items,
		o.Subtotal,
		o.DeliveryFee,
		o.Tax,
		o.Total,
		o.Currency,
		o.Status,
		o.EstimatedReadyAt,
		o.CreatedAt,
	)
	return err
}

const orderColumns = `
	id, restaurant_id, session_id, device_id, items,
	subtotal, delivery_fee, tax, total, currency,
	status, estimated_ready_at, created_at
`

func scanOrder(row pgx.Row) (*Order, error) {
	var (
		o     Order
		items []byte
	)
	if err := row.Scan(
		&o.ID,
		&o.RestaurantID,
		&o.SessionID,
		&o.DeviceID,
		&items,
		&o.Subtotal,
		&o.DeliveryFee,
		&o.Tax,
		&o.Total,
		&o.Currency,
		&o.Status,
		&o.EstimatedReadyAt,
		&o.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, err
	}
	return &o, nil
}

// --------------------------------------------------
// Get one order
// --------------------------------------------------
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	return o, err
}

// --------------------------------------------------
// Orders of a restaurant, newest first
// --------------------------------------------------
func (r *PostgresRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]*Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE restaurant_id = $1
		ORDER BY created_at DESC
	`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, rows.Err()
}
