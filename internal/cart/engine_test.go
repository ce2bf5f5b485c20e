package cart

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"armenu/internal/menu"
	"armenu/internal/restaurant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func price(v float64) *float64 { return &v }

func orderingConfig(fee float64) *restaurant.POSConfig {
	cfg := restaurant.DefaultPOSConfig()
	cfg.Enabled = true
	cfg.Features.Ordering = true
	cfg.Settings.DeliveryFee = fee
	return &cfg
}

func dish(id string, p float64) menu.Model3D {
	return menu.Model3D{ID: id, RestaurantID: "r1", Name: "Dish " + id, Price: price(p)}
}

func fixedClock() func() time.Time {
	return func() time.Time { return time.UnixMilli(1700000000000) }
}

func newTestEngine(t *testing.T, store Store, pos *restaurant.POSConfig) *Engine {
	t.Helper()
	e, err := NewEngine(context.Background(), store, "r1", pos, WithClock(fixedClock()))
	require.NoError(t, err)
	return e
}

type flakyStore struct {
	*MemoryStore
	getErr error
	setErr error
}

func (s *flakyStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s.getErr != nil {
		return nil, false, s.getErr
	}
	return s.MemoryStore.Get(ctx, key)
}

func (s *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	if s.setErr != nil {
		return s.setErr
	}
	return s.MemoryStore.Set(ctx, key, value)
}

func (s *flakyStore) Clear(ctx context.Context, key string) error {
	if s.setErr != nil {
		return s.setErr
	}
	return s.MemoryStore.Clear(ctx, key)
}

// --------------------------------------------------
// Scenario: add, add again, drop to zero
// --------------------------------------------------

func TestEngine_AddMergeDropScenario(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, NewMemoryStore(), orderingConfig(2.50))

	require.NoError(t, e.AddToCart(ctx, dish("a", 10.00), 1, nil, ""))

	c := e.Cart()
	require.Len(t, c.Items, 1)
	assert.Equal(t, 10.0, c.Subtotal)
	assert.Equal(t, 2.5, c.DeliveryFee)
	assert.Equal(t, 12.5, c.Total)
	assert.Equal(t, 0.0, c.Tax)

	require.NoError(t, e.AddToCart(ctx, dish("a", 10.00), 2, nil, ""))

	c = e.Cart()
	require.Len(t, c.Items, 1)
	assert.Equal(t, 3, c.Items[0].Quantity)
	assert.Equal(t, 30.0, c.Subtotal)
	assert.Equal(t, 32.5, c.Total)

	require.NoError(t, e.UpdateQuantity(ctx, c.Items[0].ID, 0))

	c = e.Cart()
	assert.Empty(t, c.Items)
	assert.Equal(t, 0.0, c.Subtotal)
	assert.Equal(t, 2.5, c.Total)
	assert.Equal(t, 0, e.ItemCount())
	assert.Equal(t, 0, e.ItemQuantity("a"))
}

func TestEngine_SetQuantityThenRemove(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, NewMemoryStore(), orderingConfig(2.50))
	require.NoError(t, e.AddToCart(ctx, dish("m1", 10.00), 1, nil, ""))

	itemID := e.Cart().Items[0].ID
	require.NoError(t, e.UpdateQuantity(ctx, itemID, 3))
	assert.Equal(t, 32.5, e.Cart().Total)
	assert.Equal(t, 3, e.ItemCount())

	require.NoError(t, e.RemoveFromCart(ctx, itemID))
	assert.Empty(t, e.Cart().Items)
	assert.Equal(t, 2.5, e.Cart().Total)
}

// --------------------------------------------------
// Captured prices survive catalog changes
// --------------------------------------------------

func TestEngine_PriceCapturedAtAdd(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, NewMemoryStore(), orderingConfig(0))

	m := dish("m1", 10)
	require.NoError(t, e.AddToCart(ctx, m, 1, nil, ""))

	*m.Price = 15
	require.NoError(t, e.UpdateQuantity(ctx, e.Cart().Items[0].ID, 2))

	c := e.Cart()
	assert.Equal(t, 10.0, c.Items[0].Price)
	assert.Equal(t, 20.0, c.Subtotal)
}

// --------------------------------------------------
// Merging lines
// --------------------------------------------------

func TestEngine_MergesSameDishAndOptions(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, NewMemoryStore(), orderingConfig(0))

	cheese := []ItemOption{{Name: "cheese", Price: 1}}

	require.NoError(t, e.AddToCart(ctx, dish("m1", 8), 1, cheese, "no onions"))
	require.NoError(t, e.AddToCart(ctx, dish("m1", 8), 2, []ItemOption{{Name: "cheese", Price: 1}}, ""))

	c := e.Cart()
	require.Len(t, c.Items, 1)
	assert.Equal(t, 3, c.Items[0].Quantity)
	assert.Equal(t, "no onions", c.Items[0].Notes, "empty notes keep the previous ones")

	require.NoError(t, e.AddToCart(ctx, dish("m1", 8), 1, cheese, "extra spicy"))
	assert.Equal(t, "extra spicy", e.Cart().Items[0].Notes)
	assert.Equal(t, 4, e.ItemCount())
	assert.Equal(t, 36.0, e.Cart().Subtotal)
}

func TestEngine_DifferentOptionsAreSeparateLines(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, NewMemoryStore(), orderingConfig(0))

	require.NoError(t, e.AddToCart(ctx, dish("m1", 8), 1, nil, ""))
	require.NoError(t, e.AddToCart(ctx, dish("m1", 8), 1, []ItemOption{{Name: "bacon", Price: 2}}, ""))

	c := e.Cart()
	require.Len(t, c.Items, 2)
	assert.NotEqual(t, c.Items[0].ID, c.Items[1].ID)
	assert.Equal(t, "m1-1700000000000", c.Items[0].ID)
	assert.Equal(t, "m1-1700000000000-2", c.Items[1].ID)

	assert.True(t, e.IsInCart("m1"))
	assert.Equal(t, 2, e.ItemQuantity("m1"))
	assert.Equal(t, 1, e.VariantQuantity("m1", nil))
	assert.Equal(t, 1, e.VariantQuantity("m1", []ItemOption{{Name: "bacon", Price: 2}}))
	assert.False(t, e.IsInCart("m2"))
	assert.Equal(t, 0, e.ItemQuantity("m2"))
}

func TestEngine_NilAndEmptyOptionsMerge(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, NewMemoryStore(), orderingConfig(0))

	require.NoError(t, e.AddToCart(ctx, dish("m1", 5), 1, nil, ""))
	require.NoError(t, e.AddToCart(ctx, dish("m1", 5), 1, []ItemOption{}, ""))

	require.Len(t, e.Cart().Items, 1)
	assert.Equal(t, 2, e.ItemQuantity("m1"))
}

// --------------------------------------------------
// Quantity floor
// --------------------------------------------------

func TestEngine_QuantityFloor(t *testing.T) {
	ctx := context.Background()

	for _, q := range []int{0, -3} {
		e := newTestEngine(t, NewMemoryStore(), orderingConfig(1))
		require.NoError(t, e.AddToCart(ctx, dish("m1", 5), 2, nil, ""))

		require.NoError(t, e.UpdateQuantity(ctx, e.Cart().Items[0].ID, q))
		assert.Empty(t, e.Cart().Items)
		assert.Equal(t, 1.0, e.Cart().Total)
	}

	e := newTestEngine(t, NewMemoryStore(), orderingConfig(1))
	err := e.AddToCart(ctx, dish("m1", 5), 0, nil, "")
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Empty(t, e.Cart().Items)
}

func TestEngine_QuantityCeiling(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	e := newTestEngine(t, store, orderingConfig(0))

	err := e.AddToCart(ctx, dish("m1", 10), math.MaxInt, nil, "")
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Empty(t, e.Cart().Items)

	require.NoError(t, e.AddToCart(ctx, dish("m1", 10), MaxLineQuantity, nil, ""))

	// merging past the ceiling must not wrap around
	err = e.AddToCart(ctx, dish("m1", 10), 1, nil, "")
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Equal(t, ErrInvalidQuantity.Error(), e.Error())
	assert.Equal(t, MaxLineQuantity, e.ItemCount())
	assert.Equal(t, 9990.0, e.Cart().Subtotal)

	id := e.Cart().Items[0].ID
	err = e.UpdateQuantity(ctx, id, MaxLineQuantity+1)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Equal(t, MaxLineQuantity, e.ItemQuantity("m1"))

	reloaded := newTestEngine(t, store, orderingConfig(0))
	assert.Equal(t, MaxLineQuantity, reloaded.ItemCount())
}

func TestEngine_DropsStoredLineAboveCeiling(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, CartKey("r1"), []byte(`{"items":[{"id":"x","modelId":"m1","name":"X","price":3,"quantity":5000}],"restaurantId":"r1"}`)))

	e := newTestEngine(t, store, orderingConfig(0))
	assert.Empty(t, e.Cart().Items)
}

func TestEngine_RejectsNegativeOptionPrice(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	e := newTestEngine(t, store, orderingConfig(1))

	opts := []ItemOption{{Name: "Discount", Price: -9}}
	err := e.AddToCart(ctx, dish("m1", 10), 1, opts, "")
	assert.ErrorIs(t, err, ErrInvalidOption)
	assert.True(t, IsRejection(err))
	assert.Equal(t, ErrInvalidOption.Error(), e.Error())
	assert.Empty(t, e.Cart().Items)

	_, found, err := store.Get(ctx, CartKey("r1"))
	require.NoError(t, err)
	assert.False(t, found)

	free := []ItemOption{{Name: "No onions", Price: 0}}
	require.NoError(t, e.AddToCart(ctx, dish("m1", 10), 1, free, ""))
	assert.Equal(t, 11.0, e.Cart().Total)
}

func TestEngine_UnknownItemIsNoop(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	e := newTestEngine(t, store, orderingConfig(0))
	require.NoError(t, e.AddToCart(ctx, dish("m1", 5), 1, nil, ""))

	before := e.Cart()
	require.NoError(t, e.RemoveFromCart(ctx, "missing"))
	require.NoError(t, e.UpdateQuantity(ctx, "missing", 4))
	assert.Equal(t, before, e.Cart())
}

// --------------------------------------------------
// Totals invariant
// --------------------------------------------------

func TestEngine_TotalsAlwaysConsistent(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, NewMemoryStore(), orderingConfig(1.99))

	check := func() {
		c := e.Cart()
		assert.Equal(t, Round2(c.Subtotal+c.DeliveryFee), c.Total)
		assert.Equal(t, 0.0, c.Tax)
	}

	require.NoError(t, e.AddToCart(ctx, dish("m1", 0.1), 3, []ItemOption{{Name: "dip", Price: 0.2}}, ""))
	check()
	assert.Equal(t, 0.9, e.Cart().Subtotal)

	require.NoError(t, e.AddToCart(ctx, dish("m2", 4.333), 1, nil, ""))
	check()

	require.NoError(t, e.UpdateQuantity(ctx, e.Cart().Items[1].ID, 7))
	check()

	require.NoError(t, e.ClearCart(ctx))
	check()
}

func TestEngine_SetPOSConfigReprices(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, NewMemoryStore(), orderingConfig(2))
	require.NoError(t, e.AddToCart(ctx, dish("m1", 10), 1, nil, ""))
	assert.Equal(t, 12.0, e.Cart().Total)

	require.NoError(t, e.SetPOSConfig(ctx, orderingConfig(3.5)))
	assert.Equal(t, 13.5, e.Cart().Total)

	off := orderingConfig(3.5)
	off.Enabled = false
	require.NoError(t, e.SetPOSConfig(ctx, off))
	assert.Equal(t, 0.0, e.Cart().DeliveryFee)
	assert.Equal(t, 10.0, e.Cart().Total)
}

// --------------------------------------------------
// Restaurant scoping
// --------------------------------------------------

func TestEngine_RestaurantScoping(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	r1 := newTestEngine(t, store, orderingConfig(0))
	require.NoError(t, r1.AddToCart(ctx, dish("m1", 5), 1, nil, ""))

	r2, err := NewEngine(ctx, store, "r2", orderingConfig(0))
	require.NoError(t, err)
	assert.Empty(t, r2.Cart().Items)
	assert.Equal(t, "r2", r2.Cart().RestaurantID)
	assert.Equal(t, r1.SessionID(), r2.SessionID())

	err = r2.AddToCart(ctx, dish("m1", 5), 1, nil, "")
	assert.ErrorIs(t, err, ErrWrongRestaurant)

	reopened := newTestEngine(t, store, orderingConfig(0))
	assert.Equal(t, 1, reopened.ItemCount())
}

func TestEngine_DiscardsCartStoredUnderWrongRestaurant(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, CartKey("r1"), []byte(`{"items":[{"id":"x","modelId":"m9","name":"X","price":3,"quantity":1}],"restaurantId":"r9"}`)))

	e := newTestEngine(t, store, orderingConfig(0))
	assert.Empty(t, e.Cart().Items)
}

func TestEngine_DiscardsUnreadableCart(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, CartKey("r1"), []byte("{not json")))

	e := newTestEngine(t, store, orderingConfig(1))
	assert.Empty(t, e.Cart().Items)
	assert.Equal(t, 1.0, e.Cart().Total)
}

// --------------------------------------------------
// Ordering disabled
// --------------------------------------------------

func TestEngine_RejectsWhenOrderingUnavailable(t *testing.T) {
	ctx := context.Background()

	disabled := orderingConfig(1)
	disabled.Enabled = false

	featureOff := orderingConfig(1)
	featureOff.Features.Ordering = false

	cases := map[string]*restaurant.POSConfig{
		"no config":        nil,
		"pos disabled":     disabled,
		"ordering feature": featureOff,
	}

	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			store := NewMemoryStore()

			seed := newTestEngine(t, store, orderingConfig(1))
			require.NoError(t, seed.AddToCart(ctx, dish("m1", 5), 1, nil, ""))
			storedBefore, _, _ := store.Get(ctx, CartKey("r1"))

			e := newTestEngine(t, store, cfg)
			before := e.Cart()

			err := e.AddToCart(ctx, dish("m2", 7), 1, nil, "")
			assert.ErrorIs(t, err, ErrOrderingDisabled)
			assert.Equal(t, before, e.Cart())
			assert.NotEmpty(t, e.Error())

			storedAfter, _, _ := store.Get(ctx, CartKey("r1"))
			assert.Equal(t, storedBefore, storedAfter)

			e.DismissError()
			assert.Empty(t, e.Error())
		})
	}
}

func TestEngine_RejectsUnpricedDish(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, NewMemoryStore(), orderingConfig(0))

	m := dish("m1", 0)
	err := e.AddToCart(ctx, m, 1, nil, "")
	assert.ErrorIs(t, err, ErrMissingPrice)

	m.Price = nil
	err = e.AddToCart(ctx, m, 1, nil, "")
	assert.ErrorIs(t, err, ErrMissingPrice)
	assert.Equal(t, ErrMissingPrice.Error(), e.Error())
	assert.Empty(t, e.Cart().Items)

	require.NoError(t, e.AddToCart(ctx, dish("m2", 3), 1, nil, ""))
	assert.Empty(t, e.Error(), "a successful add clears the previous error")
}

// --------------------------------------------------
// Persistence
// --------------------------------------------------

func TestEngine_PersistsAndRestores(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	e := newTestEngine(t, store, orderingConfig(2.5))
	require.NoError(t, e.AddToCart(ctx, dish("m1", 4.5), 2, []ItemOption{{Name: "sauce", Price: 0.5}}, "hot"))

	restored := newTestEngine(t, store, orderingConfig(2.5))
	assert.Equal(t, e.Cart(), restored.Cart())
	assert.Equal(t, 12.5, restored.Cart().Total)

	require.NoError(t, restored.ClearCart(ctx))
	_, found, err := store.Get(ctx, CartKey("r1"))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestEngine_PersistFailureKeepsChange(t *testing.T) {
	ctx := context.Background()
	store := &flakyStore{MemoryStore: NewMemoryStore()}
	e := newTestEngine(t, store, orderingConfig(0))

	store.setErr = errors.New("disk full")
	err := e.AddToCart(ctx, dish("m1", 5), 1, nil, "")

	assert.ErrorIs(t, err, ErrPersist)
	assert.Equal(t, 1, e.ItemCount())
	assert.Equal(t, ErrPersist.Error(), e.Error())
}

func TestEngine_StoreReadFailure(t *testing.T) {
	store := &flakyStore{MemoryStore: NewMemoryStore(), getErr: errors.New("offline")}

	_, err := NewEngine(context.Background(), store, "r1", orderingConfig(0))
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestEngine_RequiresRestaurant(t *testing.T) {
	_, err := NewEngine(context.Background(), NewMemoryStore(), " ", nil)
	assert.Error(t, err)
}
