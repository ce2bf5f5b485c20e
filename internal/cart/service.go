package cart

import (
	"context"
	"errors"
	"fmt"

	"armenu/internal/core"
	"armenu/internal/menu"
)

var ErrMissingDevice = errors.New("device id is required")

// ModelReader resolves dishes by id.
type ModelReader interface {
	GetModel(ctx context.Context, id string) (*menu.Model3D, error)
}

// Service opens per-request engines: device store, restaurant config and the
// stored cart, wired together.
type Service struct {
	stores      StoreFactory
	restaurants core.RestaurantReader
	models      ModelReader
	opts        []EngineOption
}

func NewService(
	stores StoreFactory,
	restaurants core.RestaurantReader,
	models ModelReader,
	opts ...EngineOption,
) *Service {
	return &Service{
		stores:      stores,
		restaurants: restaurants,
		models:      models,
		opts:        opts,
	}
}

// Open loads the cart of restaurantID as seen from deviceID.
func (s *Service) Open(ctx context.Context, deviceID, restaurantID string) (*Engine, error) {
	if deviceID == "" {
		return nil, ErrMissingDevice
	}

	pos, err := s.restaurants.GetPOSConfig(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("load pos config: %w", err)
	}

	return NewEngine(ctx, s.stores(deviceID), restaurantID, pos, s.opts...)
}

// AddItem resolves modelID from the catalog and adds it to the cart.
func (s *Service) AddItem(
	ctx context.Context,
	e *Engine,
	modelID string,
	quantity int,
	options []ItemOption,
	notes string,
) error {
	model, err := s.models.GetModel(ctx, modelID)
	if err != nil {
		return err
	}
	return e.AddToCart(ctx, *model, quantity, options, notes)
}
