package analytics

import (
	"context"
	"errors"
	"time"

	"armenu/internal/core"

	"github.com/rs/zerolog/log"
)

var ErrNotOwner = errors.New("unauthorized")

type Service struct {
	repo        Repository
	restaurants core.RestaurantReader
	now         func() time.Time
}

func NewService(repo Repository, restaurants core.RestaurantReader) *Service {
	return &Service{
		repo:        repo,
		restaurants: restaurants,
		now:         time.Now,
	}
}

// RecordView stores one view, classifying the device from its User-Agent.
func (s *Service) RecordView(ctx context.Context, modelID, restaurantID, userAgent string) error {
	return s.repo.RecordView(ctx, View{
		ModelID:      modelID,
		RestaurantID: restaurantID,
		DeviceType:   DeviceType(userAgent),
		ViewedAt:     s.now().UTC(),
	})
}

// Owner-only summary over the last N days
func (s *Service) GetSummary(ctx context.Context, restaurantID, userID string, days int) (*Summary, error) {
	ok, err := s.restaurants.IsOwner(ctx, restaurantID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotOwner
	}

	now := s.now()
	days = clampDays(days)
	since := now.UTC().Truncate(24*time.Hour).AddDate(0, 0, -(days - 1))

	views, err := s.repo.ListSince(ctx, restaurantID, since)
	if err != nil {
		return nil, err
	}

	summary := Summarize(restaurantID, views, days, now)
	return &summary, nil
}

// Recompute daily counts for one day
func (s *Service) RollupDay(ctx context.Context, day time.Time) error {
	n, err := s.repo.RollupDay(ctx, day)
	if err != nil {
		return err
	}

	if n == 0 {
		log.Debug().Str("day", day.UTC().Format(time.DateOnly)).Msg("no views to roll up")
		return nil
	}

	log.Info().
		Str("day", day.UTC().Format(time.DateOnly)).
		Int64("rows", n).
		Msg("model views rolled up")
	return nil
}
