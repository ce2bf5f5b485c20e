package order

import (
	"context"
	"sort"
	"sync"
)

type InMemoryRepository struct {
	mu     sync.RWMutex
	orders map[string]*Order
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{orders: make(map[string]*Order)}
}

func (r *InMemoryRepository) Create(ctx context.Context, o *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *InMemoryRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Order
	for _, o := range r.orders {
		if o.RestaurantID == restaurantID {
			cp := *o
			out = append(out, &cp)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
