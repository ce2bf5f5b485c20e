package menu

import "context"

// Repository defines all database operations for dish models
type Repository interface {
	Create(ctx context.Context, model *Model3D) error

	// GetByID returns ErrModelNotFound when no such dish exists
	GetByID(ctx context.Context, id string) (*Model3D, error)

	ListByRestaurant(ctx context.Context, restaurantID string) ([]*Model3D, error)

	UpdatePrice(ctx context.Context, id string, price *float64) error
}
