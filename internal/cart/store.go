package cart

import (
	"context"
	"errors"
)

// SessionKey holds the session id shared by every restaurant cart on a device.
const SessionKey = "cart_session_id"

var ErrStoreUnavailable = errors.New("cart store unavailable")

// Store is a small string-keyed blob store. Get reports found=false for a
// missing key rather than an error.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Clear(ctx context.Context, key string) error
}

// StoreFactory returns the store scoped to one device namespace.
type StoreFactory func(namespace string) Store

// CartKey is the slot holding the cart for one restaurant.
func CartKey(restaurantID string) string {
	return "cart_" + restaurantID
}
