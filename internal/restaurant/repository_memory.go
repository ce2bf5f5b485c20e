package restaurant

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type InMemoryRepository struct {
	mu          sync.RWMutex
	restaurants map[string]*Restaurant
	configs     map[string]POSConfig
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		restaurants: make(map[string]*Restaurant),
		configs:     make(map[string]POSConfig),
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, restaurant *Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if restaurant.ID == "" {
		restaurant.ID = uuid.NewString()
	}
	restaurant.CreatedAt = time.Now()

	stored := *restaurant
	r.restaurants[restaurant.ID] = &stored
	return nil
}

func (r *InMemoryRepository) ListByOwner(ctx context.Context, ownerID string) ([]*Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Restaurant
	for _, res := range r.restaurants {
		if res.OwnerID == ownerID {
			cp := *res
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) IsOwner(ctx context.Context, restaurantID string, userID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res, ok := r.restaurants[restaurantID]
	return ok && res.OwnerID == userID, nil
}

func (r *InMemoryRepository) Exists(ctx context.Context, restaurantID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.restaurants[restaurantID]
	return ok, nil
}

func (r *InMemoryRepository) GetPOSConfig(ctx context.Context, restaurantID string) (*POSConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cfg, ok := r.configs[restaurantID]
	if !ok {
		return nil, nil
	}
	return &cfg, nil
}

func (r *InMemoryRepository) SavePOSConfig(ctx context.Context, restaurantID string, cfg POSConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.configs[restaurantID] = cfg
	return nil
}
