package restaurant

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var (
	ErrMissingFields = errors.New("missing required fields")
	ErrNotOwner      = errors.New("unauthorized")

	ErrRestaurantNotFound = errors.New("restaurant not found")
)

var (
	validate    = validator.New()
	slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// --------------------------------------------------
// Create restaurant
// --------------------------------------------------
func (s *Service) CreateRestaurant(ctx context.Context, name, ownerID string) (*Restaurant, error) {
	name = strings.TrimSpace(name)
	if name == "" || ownerID == "" {
		return nil, ErrMissingFields
	}

	restaurant := &Restaurant{
		Name:    name,
		Slug:    Slugify(name),
		OwnerID: ownerID,
		Status:  "pending",
	}

	if err := s.repo.Create(ctx, restaurant); err != nil {
		return nil, err
	}

	return restaurant, nil
}

// --------------------------------------------------
// List restaurants owned by user
// --------------------------------------------------
func (s *Service) ListMyRestaurants(ctx context.Context, ownerID string) ([]*Restaurant, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *Service) IsOwner(ctx context.Context, restaurantID, userID string) (bool, error) {
	return s.repo.IsOwner(ctx, restaurantID, userID)
}

// --------------------------------------------------
// POS configuration
// --------------------------------------------------

// GetPOSConfig returns ErrRestaurantNotFound for an unknown restaurant. A known
// but unconfigured one falls back to DefaultPOSConfig, which has ordering disabled.
func (s *Service) GetPOSConfig(ctx context.Context, restaurantID string) (*POSConfig, error) {
	exists, err := s.repo.Exists(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrRestaurantNotFound
	}

	cfg, err := s.repo.GetPOSConfig(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		def := DefaultPOSConfig()
		return &def, nil
	}
	return cfg, nil
}

func (s *Service) UpdatePOSConfig(
	ctx context.Context,
	restaurantID string,
	userID string,
	cfg POSConfig,
) (*POSConfig, error) {

	isOwner, err := s.repo.IsOwner(ctx, restaurantID, userID)
	if err != nil {
		return nil, err
	}
	if !isOwner {
		return nil, ErrNotOwner
	}

	cfg.Settings.Currency = strings.ToUpper(cfg.Settings.Currency)
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid pos config: %w", err)
	}

	if err := s.repo.SavePOSConfig(ctx, restaurantID, cfg); err != nil {
		return nil, err
	}

	log.Info().
		Str("restaurant_id", restaurantID).
		Bool("enabled", cfg.Enabled).
		Bool("ordering", cfg.Features.Ordering).
		Float64("delivery_fee", cfg.Settings.DeliveryFee).
		Msg("pos config updated")

	return &cfg, nil
}

// Slugify turns a restaurant name into the path segment used by public menu URLs.
func Slugify(name string) string {
	slug := slugCleaner.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}
