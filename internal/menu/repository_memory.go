package menu

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type InMemoryRepository struct {
	mu     sync.RWMutex
	models map[string]*Model3D
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		models: make(map[string]*Model3D),
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, m *Model3D) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	m.CreatedAt = time.Now()

	stored := *m
	r.models[m.ID] = &stored
	return nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Model3D, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.models[id]
	if !ok {
		return nil, ErrModelNotFound
	}
	out := *m
	return &out, nil
}

func (r *InMemoryRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]*Model3D, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Model3D
	for _, m := range r.models {
		if m.RestaurantID == restaurantID {
			cp := *m
			out = append(out, &cp)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *InMemoryRepository) UpdatePrice(ctx context.Context, id string, price *float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.models[id]
	if !ok {
		return ErrModelNotFound
	}
	m.Price = price
	return nil
}
