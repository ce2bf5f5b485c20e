package core

import (
	"context"

	"armenu/internal/restaurant"
)

// RestaurantReader is the read-only view of restaurants that other features depend on.
type RestaurantReader interface {
	IsOwner(ctx context.Context, restaurantID string, userID string) (bool, error)

	GetPOSConfig(ctx context.Context, restaurantID string) (*restaurant.POSConfig, error)
}
