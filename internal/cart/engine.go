package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"armenu/internal/menu"
	"armenu/internal/restaurant"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrOrderingDisabled = errors.New("online ordering is not available for this restaurant")
	ErrMissingPrice     = errors.New("this dish has no price and cannot be ordered")
	ErrInvalidQuantity  = errors.New("quantity must be between 1 and 999")
	ErrInvalidOption    = errors.New("option prices cannot be negative")
	ErrWrongRestaurant  = errors.New("this dish belongs to another restaurant")
	ErrPersist          = errors.New("failed to save cart")
)

// MaxLineQuantity bounds the quantity of a single cart line.
const MaxLineQuantity = 999

// EngineOption customises an Engine.
type EngineOption func(*Engine)

// WithClock replaces time.Now, used for item ids.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

// Engine owns the cart of one restaurant for one device.
//
// An Engine is a single-writer state container and is not safe for concurrent
// use. Every mutation recomputes totals from scratch and writes the whole cart
// back to the store.
type Engine struct {
	store        Store
	restaurantID string
	sessionID    string
	pos          *restaurant.POSConfig

	cart Cart
	err  string
	now  func() time.Time
}

// NewEngine restores the cart for restaurantID from store. A stored cart that
// cannot be decoded or belongs to another restaurant is dropped and an empty
// cart starts instead. pos may be nil, which disables ordering.
func NewEngine(
	ctx context.Context,
	store Store,
	restaurantID string,
	pos *restaurant.POSConfig,
	opts ...EngineOption,
) (*Engine, error) {
	if strings.TrimSpace(restaurantID) == "" {
		return nil, errors.New("restaurant id is required")
	}

	e := &Engine{
		store:        store,
		restaurantID: restaurantID,
		pos:          pos,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	sessionID, err := e.loadSession(ctx)
	if err != nil {
		return nil, err
	}
	e.sessionID = sessionID

	items, err := e.loadItems(ctx)
	if err != nil {
		return nil, err
	}
	e.cart = e.build(items)

	return e, nil
}

func (e *Engine) loadSession(ctx context.Context) (string, error) {
	raw, found, err := e.store.Get(ctx, SessionKey)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if found && len(raw) > 0 {
		return string(raw), nil
	}

	id := "session_" + uuid.NewString()
	if err := e.store.Set(ctx, SessionKey, []byte(id)); err != nil {
		log.Warn().Err(err).Msg("failed to persist cart session id")
	}
	return id, nil
}

func (e *Engine) loadItems(ctx context.Context) ([]Item, error) {
	raw, found, err := e.store.Get(ctx, CartKey(e.restaurantID))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if !found {
		return nil, nil
	}

	var stored Cart
	if err := json.Unmarshal(raw, &stored); err != nil {
		log.Warn().Err(err).Str("restaurant_id", e.restaurantID).Msg("discarding unreadable stored cart")
		return nil, nil
	}
	if stored.RestaurantID != e.restaurantID {
		log.Debug().
			Str("restaurant_id", e.restaurantID).
			Str("stored_restaurant_id", stored.RestaurantID).
			Msg("discarding cart stored for another restaurant")
		return nil, nil
	}

	items := make([]Item, 0, len(stored.Items))
	for _, it := range stored.Items {
		if it.Quantity < 1 || it.Quantity > MaxLineQuantity {
			continue
		}
		items = append(items, it)
	}
	return items, nil
}

// --------------------------------------------------
// Read side
// --------------------------------------------------

// Cart returns a copy of the current cart.
func (e *Engine) Cart() Cart {
	return e.cart.clone()
}

func (e *Engine) RestaurantID() string { return e.restaurantID }

func (e *Engine) SessionID() string { return e.sessionID }

// POSConfig is the configuration totals were last computed against.
func (e *Engine) POSConfig() *restaurant.POSConfig { return e.pos }

// ItemCount is the sum of quantities over all lines.
func (e *Engine) ItemCount() int {
	n := 0
	for _, it := range e.cart.Items {
		n += it.Quantity
	}
	return n
}

// IsInCart reports whether any line, with any options, holds modelID.
func (e *Engine) IsInCart(modelID string) bool {
	for _, it := range e.cart.Items {
		if it.ModelID == modelID {
			return true
		}
	}
	return false
}

// ItemQuantity sums the quantity of every line holding modelID, across
// option variants.
func (e *Engine) ItemQuantity(modelID string) int {
	n := 0
	for _, it := range e.cart.Items {
		if it.ModelID == modelID {
			n += it.Quantity
		}
	}
	return n
}

// VariantQuantity is the quantity of the single line matching modelID with
// exactly these options.
func (e *Engine) VariantQuantity(modelID string, options []ItemOption) int {
	key := mergeKey(modelID, options)
	for _, it := range e.cart.Items {
		if mergeKey(it.ModelID, it.Options) == key {
			return it.Quantity
		}
	}
	return 0
}

// Error is the last user-facing failure message, empty when there is none.
func (e *Engine) Error() string { return e.err }

func (e *Engine) DismissError() { e.err = "" }

// --------------------------------------------------
// Add to cart
// --------------------------------------------------
func (e *Engine) AddToCart(
	ctx context.Context,
	model menu.Model3D,
	quantity int,
	options []ItemOption,
	notes string,
) error {
	e.err = ""

	if !e.pos.OrderingEnabled() {
		return e.reject(ErrOrderingDisabled)
	}
	if !model.HasPrice() {
		return e.reject(ErrMissingPrice)
	}
	if quantity < 1 || quantity > MaxLineQuantity {
		return e.reject(ErrInvalidQuantity)
	}
	for _, opt := range options {
		if opt.Price < 0 {
			return e.reject(ErrInvalidOption)
		}
	}
	if model.RestaurantID != "" && model.RestaurantID != e.restaurantID {
		return e.reject(ErrWrongRestaurant)
	}

	items := e.cart.clone().Items
	key := mergeKey(model.ID, options)

	for i := range items {
		if mergeKey(items[i].ModelID, items[i].Options) != key {
			continue
		}
		if items[i].Quantity > MaxLineQuantity-quantity {
			return e.reject(ErrInvalidQuantity)
		}
		items[i].Quantity += quantity
		if notes != "" {
			items[i].Notes = notes
		}
		return e.commit(ctx, items)
	}

	items = append(items, Item{
		ID:       e.newItemID(model.ID, items),
		ModelID:  model.ID,
		Name:     model.Name,
		Price:    *model.Price,
		Quantity: quantity,
		Options:  cloneOptions(options),
		Notes:    notes,
	})

	return e.commit(ctx, items)
}

// --------------------------------------------------
// Remove a line (no-op when absent)
// --------------------------------------------------
func (e *Engine) RemoveFromCart(ctx context.Context, itemID string) error {
	e.err = ""

	idx := e.indexOf(itemID)
	if idx < 0 {
		return nil
	}

	items := e.cart.clone().Items
	items = append(items[:idx], items[idx+1:]...)
	return e.commit(ctx, items)
}

// --------------------------------------------------
// Change a line quantity; zero or less removes it
// --------------------------------------------------
func (e *Engine) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	if quantity <= 0 {
		return e.RemoveFromCart(ctx, itemID)
	}
	e.err = ""

	if quantity > MaxLineQuantity {
		return e.reject(ErrInvalidQuantity)
	}

	idx := e.indexOf(itemID)
	if idx < 0 {
		return nil
	}

	items := e.cart.clone().Items
	items[idx].Quantity = quantity
	return e.commit(ctx, items)
}

// --------------------------------------------------
// Empty the cart and erase the stored copy
// --------------------------------------------------
func (e *Engine) ClearCart(ctx context.Context) error {
	e.err = ""
	e.cart = e.build(nil)

	if err := e.store.Clear(ctx, CartKey(e.restaurantID)); err != nil {
		return e.persistFailed(err)
	}
	return nil
}

// SetPOSConfig swaps the restaurant configuration and reprices the cart.
func (e *Engine) SetPOSConfig(ctx context.Context, pos *restaurant.POSConfig) error {
	e.pos = pos
	return e.commit(ctx, e.cart.clone().Items)
}

func (e *Engine) reject(err error) error {
	e.err = err.Error()
	return err
}

func (e *Engine) commit(ctx context.Context, items []Item) error {
	e.cart = e.build(items)

	raw, err := json.Marshal(e.cart)
	if err != nil {
		return e.persistFailed(err)
	}
	if err := e.store.Set(ctx, CartKey(e.restaurantID), raw); err != nil {
		return e.persistFailed(err)
	}
	return nil
}

// persistFailed keeps the in-memory change and surfaces the failure.
func (e *Engine) persistFailed(err error) error {
	log.Warn().Err(err).Str("restaurant_id", e.restaurantID).Msg("cart persist failed")
	e.err = ErrPersist.Error()
	return fmt.Errorf("%w: %v", ErrPersist, err)
}

func (e *Engine) build(items []Item) Cart {
	if items == nil {
		items = []Item{}
	}
	t := CalculateTotals(items, e.pos)
	return Cart{
		Items:        items,
		Subtotal:     t.Subtotal,
		Total:        t.Total,
		Tax:          t.Tax,
		DeliveryFee:  t.DeliveryFee,
		RestaurantID: e.restaurantID,
		SessionID:    e.sessionID,
	}
}

func (e *Engine) indexOf(itemID string) int {
	for i, it := range e.cart.Items {
		if it.ID == itemID {
			return i
		}
	}
	return -1
}

// newItemID is "<modelId>-<unix millis>", suffixed when two lines land in the
// same millisecond.
func (e *Engine) newItemID(modelID string, items []Item) string {
	base := fmt.Sprintf("%s-%d", modelID, e.now().UnixMilli())

	taken := make(map[string]bool, len(items))
	for _, it := range items {
		taken[it.ID] = true
	}

	id := base
	for n := 2; taken[id]; n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	return id
}

// mergeKey identifies a line by dish and the exact serialized option list.
// A nil and an empty option list are the same line.
func mergeKey(modelID string, options []ItemOption) string {
	if options == nil {
		options = []ItemOption{}
	}
	raw, _ := json.Marshal(options)
	return modelID + "|" + string(raw)
}
