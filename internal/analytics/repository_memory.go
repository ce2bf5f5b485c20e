package analytics

import (
	"context"
	"sync"
	"time"
)

type InMemoryRepository struct {
	mu    sync.RWMutex
	views []View
	daily map[string]int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{daily: make(map[string]int)}
}

func (r *InMemoryRepository) RecordView(ctx context.Context, v View) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.views = append(r.views, v)
	return nil
}

func (r *InMemoryRepository) ListSince(ctx context.Context, restaurantID string, since time.Time) ([]View, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []View
	for _, v := range r.views {
		if v.RestaurantID == restaurantID && !v.ViewedAt.Before(since) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) RollupDay(ctx context.Context, day time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := day.UTC().Truncate(24 * time.Hour)
	end := start.AddDate(0, 0, 1)

	counts := make(map[string]int)
	for _, v := range r.views {
		at := v.ViewedAt.UTC()
		if at.Before(start) || !at.Before(end) {
			continue
		}
		counts[v.RestaurantID+"/"+v.ModelID+"/"+start.Format(time.DateOnly)]++
	}
	for k, n := range counts {
		r.daily[k] = n
	}
	return int64(len(counts)), nil
}

// Daily returns the rolled-up count for one model on one day.
func (r *InMemoryRepository) Daily(restaurantID, modelID string, day time.Time) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.daily[restaurantID+"/"+modelID+"/"+day.UTC().Format(time.DateOnly)]
}
