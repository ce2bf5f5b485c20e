package analytics

import (
	"context"
	"time"
)

type Repository interface {
	RecordView(ctx context.Context, v View) error
	ListSince(ctx context.Context, restaurantID string, since time.Time) ([]View, error)

	// RollupDay writes per-model totals for the UTC day containing day and
	// returns how many rows were written.
	RollupDay(ctx context.Context, day time.Time) (int64, error)
}
