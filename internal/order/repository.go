package order

import "context"

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	ListByRestaurant(ctx context.Context, restaurantID string) ([]*Order, error)
}
