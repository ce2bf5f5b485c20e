package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"armenu/internal/cart"
	"armenu/internal/core"
	"armenu/internal/restaurant"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrEmptyCart     = errors.New("cart is empty")
	ErrBelowMinimum  = errors.New("order is below the minimum amount")
	ErrNotOwner      = errors.New("unauthorized")
)

// CartOpener loads the cart a device holds for a restaurant.
type CartOpener interface {
	Open(ctx context.Context, deviceID, restaurantID string) (*cart.Engine, error)
}

type Service struct {
	repo        Repository
	carts       CartOpener
	restaurants core.RestaurantReader
	now         func() time.Time
}

func NewService(repo Repository, carts CartOpener, restaurants core.RestaurantReader) *Service {
	return &Service{
		repo:        repo,
		carts:       carts,
		restaurants: restaurants,
		now:         time.Now,
	}
}

// --------------------------------------------------
// Checkout the cart held by a device
// --------------------------------------------------
func (s *Service) CheckoutDevice(ctx context.Context, deviceID, restaurantID string) (*Order, *cart.Engine, error) {
	e, err := s.carts.Open(ctx, deviceID, restaurantID)
	if err != nil {
		return nil, nil, err
	}

	o, err := s.place(ctx, e, e.POSConfig(), deviceID)
	if err != nil {
		return nil, e, err
	}
	return o, e, nil
}

// Checkout snapshots the cart into a pending order, stores it and empties the
// cart. The cart is left untouched when any check fails.
func (s *Service) Checkout(ctx context.Context, e *cart.Engine, pos *restaurant.POSConfig) (*Order, error) {
	return s.place(ctx, e, pos, "")
}

func (s *Service) place(ctx context.Context, e *cart.Engine, pos *restaurant.POSConfig, deviceID string) (*Order, error) {
	if !pos.OrderingEnabled() {
		return nil, cart.ErrOrderingDisabled
	}

	c := e.Cart()
	if len(c.Items) == 0 {
		return nil, ErrEmptyCart
	}

	minimum := decimal.NewFromFloat(pos.Settings.MinimumOrder)
	if decimal.NewFromFloat(c.Subtotal).LessThan(minimum) {
		return nil, fmt.Errorf("%w of %s %s", ErrBelowMinimum, minimum.StringFixed(2), pos.Settings.Currency)
	}

	now := s.now().UTC()
	o := &Order{
		ID:               uuid.NewString(),
		RestaurantID:     c.RestaurantID,
		SessionID:        c.SessionID,
		DeviceID:         deviceID,
		Items:            c.Items,
		Subtotal:         c.Subtotal,
		DeliveryFee:      c.DeliveryFee,
		Tax:              c.Tax,
		Total:            c.Total,
		Currency:         pos.Settings.Currency,
		Status:           StatusPending,
		EstimatedReadyAt: now.Add(time.Duration(pos.Settings.EstimatedPrepTime) * time.Minute),
		CreatedAt:        now,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := e.ClearCart(ctx); err != nil {
		log.Warn().Err(err).Str("order_id", o.ID).Msg("order placed but cart could not be cleared")
	}

	log.Info().
		Str("order_id", o.ID).
		Str("restaurant_id", o.RestaurantID).
		Float64("total", o.Total).
		Msg("order placed")

	return o, nil
}

// --------------------------------------------------
// List orders (owner only)
// --------------------------------------------------
func (s *Service) ListOrders(ctx context.Context, restaurantID, userID string) ([]*Order, error) {
	ok, err := s.restaurants.IsOwner(ctx, restaurantID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotOwner
	}
	return s.repo.ListByRestaurant(ctx, restaurantID)
}

// --------------------------------------------------
// Get one order (owner only)
// --------------------------------------------------
func (s *Service) GetOrder(ctx context.Context, id, userID string) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ok, err := s.restaurants.IsOwner(ctx, o.RestaurantID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotOwner
	}
	return o, nil
}
