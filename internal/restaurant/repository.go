package restaurant

import "context"

type Repository interface {
	// core
	Create(ctx context.Context, restaurant *Restaurant) error
	ListByOwner(ctx context.Context, ownerID string) ([]*Restaurant, error)

	// ownership
	IsOwner(ctx context.Context, restaurantID string, userID string) (bool, error)
	Exists(ctx context.Context, restaurantID string) (bool, error)

	// POS configuration; GetPOSConfig returns (nil, nil) when none is stored
	GetPOSConfig(ctx context.Context, restaurantID string) (*POSConfig, error)
	SavePOSConfig(ctx context.Context, restaurantID string, cfg POSConfig) error
}
