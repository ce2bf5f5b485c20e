package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"armenu/internal/core"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrModelNotFound = errors.New("model not found")
	ErrNotOwner      = errors.New("unauthorized")
	ErrInvalidModel  = errors.New("invalid model")
)

// Storage is the object store that hosts AR assets and thumbnails.
type Storage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

// ViewRecorder receives one event per public model view.
type ViewRecorder interface {
	RecordView(ctx context.Context, modelID, restaurantID, userAgent string) error
}

// File is an uploaded asset.
type File struct {
	Name string
	Body io.Reader
}

type Service struct {
	repo        Repository
	storage     Storage
	restaurants core.RestaurantReader
	views       ViewRecorder
}

func NewService(
	repo Repository,
	storage Storage,
	restaurants core.RestaurantReader,
	views ViewRecorder,
) *Service {
	return &Service{
		repo:        repo,
		storage:     storage,
		restaurants: restaurants,
		views:       views,
	}
}

// --------------------------------------------------
// Upload a dish model (owner only)
// --------------------------------------------------
func (s *Service) UploadModel(ctx context.Context, in UploadInput) (*Model3D, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidModel)
	}
	if in.Price != nil && *in.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrInvalidModel)
	}
	if in.ModelFile.Body == nil {
		return nil, fmt.Errorf("%w: model file is required", ErrInvalidModel)
	}

	if err := s.checkOwner(ctx, in.RestaurantID, in.UserID); err != nil {
		return nil, err
	}

	modelType, err := ValidateModelExtension(in.ModelFile.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidModel, err)
	}

	var thumbType string
	if in.ThumbnailFile != nil {
		if thumbType, err = ValidateThumbnailExtension(in.ThumbnailFile.Name); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidModel, err)
		}
	}

	modelURL, err := s.storage.Upload(ctx, assetKey("models", in.RestaurantID, in.ModelFile.Name), in.ModelFile.Body, modelType)
	if err != nil {
		return nil, fmt.Errorf("upload model: %w", err)
	}

	var thumbURL string
	if in.ThumbnailFile != nil {
		thumbURL, err = s.storage.Upload(ctx, assetKey("thumbnails", in.RestaurantID, in.ThumbnailFile.Name), in.ThumbnailFile.Body, thumbType)
		if err != nil {
			return nil, fmt.Errorf("upload thumbnail: %w", err)
		}
	}

	m := &Model3D{
		RestaurantID: in.RestaurantID,
		Name:         strings.TrimSpace(in.Name),
		Price:        in.Price,
		Thumbnail:    thumbURL,
		ModelURL:     modelURL,
		Category:     in.Category,
		Description:  in.Description,
		Ingredients:  in.Ingredients,
		Allergens:    in.Allergens,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	log.Info().
		Str("restaurant_id", m.RestaurantID).
		Str("model_id", m.ID).
		Str("model_url", m.ModelURL).
		Msg("dish model uploaded")

	return m, nil
}

// GetModel is the read path used by the cart and by the public catalog.
func (s *Service) GetModel(ctx context.Context, id string) (*Model3D, error) {
	return s.repo.GetByID(ctx, id)
}

// ViewModel fetches a model for public display and records the view.
// A failed analytics write never fails the read.
func (s *Service) ViewModel(ctx context.Context, id, userAgent string) (*Model3D, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.views != nil {
		if err := s.views.RecordView(ctx, m.ID, m.RestaurantID, userAgent); err != nil {
			log.Warn().Err(err).Str("model_id", m.ID).Msg("failed to record model view")
		}
	}

	return m, nil
}

func (s *Service) ListMenu(ctx context.Context, restaurantID string) ([]*Model3D, error) {
	return s.repo.ListByRestaurant(ctx, restaurantID)
}

// UpdatePrice changes the catalog price. Carts keep the price captured when
// the dish was added.
func (s *Service) UpdatePrice(ctx context.Context, id, userID string, price *float64) (*Model3D, error) {
	if price != nil && *price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrInvalidModel)
	}

	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkOwner(ctx, m.RestaurantID, userID); err != nil {
		return nil, err
	}

	if err := s.repo.UpdatePrice(ctx, id, price); err != nil {
		return nil, err
	}

	m.Price = price
	return m, nil
}

func (s *Service) checkOwner(ctx context.Context, restaurantID, userID string) error {
	ok, err := s.restaurants.IsOwner(ctx, restaurantID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotOwner
	}
	return nil
}

func assetKey(prefix, restaurantID, filename string) string {
	return fmt.Sprintf(
		"%s/%s/%s%s",
		prefix,
		restaurantID,
		uuid.New().String(),
		strings.ToLower(filepath.Ext(filename)),
	)
}
