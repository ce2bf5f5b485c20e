package analytics

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) RecordView(ctx context.Context, v View) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO model_views (model_id, restaurant_id, device_type, viewed_at)
		VALUES ($1, $2, $3, $4)
	`,
		v.ModelID,
		v.RestaurantID,
		v.DeviceType,
		v.ViewedAt,
	)
	return err
}

func (r *PostgresRepository) ListSince(
	ctx context.Context,
	restaurantID string,
	since time.Time,
) ([]View, error) {

	rows, err := r.db.Query(ctx, `
		SELECT model_id, restaurant_id, device_type, viewed_at
		FROM model_views
		WHERE restaurant_id = $1 AND viewed_at >= $2
		ORDER BY viewed_at
	`, restaurantID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []View
	for rows.Next() {
		var v View
		if err := rows.Scan(&v.ModelID, &v.RestaurantID, &v.DeviceType, &v.ViewedAt); err != nil {
			return nil, err
		}
		views = append(views, v)
	}

	return views, rows.Err()
}

// Insert or refresh the daily counts for one UTC day
func (r *PostgresRepository) RollupDay(ctx context.Context, day time.Time) (int64, error) {
	start := day.UTC().Truncate(24 * time.Hour)

	cmd, err := r.db.Exec(ctx, `
		INSERT INTO model_view_daily (restaurant_id, model_id, day, views)
		SELECT restaurant_id, model_id, $1::date, COUNT(*)
		FROM model_views
		WHERE viewed_at >= $1 AND viewed_at < $2
		GROUP BY restaurant_id, model_id
		ON CONFLICT (restaurant_id, model_id, day)
		DO UPDATE SET
			views = EXCLUDED.views,
			updated_at = now()
	`, start, start.AddDate(0, 0, 1))
	if err != nil {
		return 0, err
	}

	return cmd.RowsAffected(), nil
}
