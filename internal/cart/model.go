package cart

import "github.com/shopspring/decimal"

// ItemOption is a named add-on chosen for a line, priced on top of the dish.
type ItemOption struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price" binding:"gte=0"`
}

// Item is one cart line. Price is the tax-inclusive unit price captured when the
// dish was added; later menu price changes do not touch it.
type Item struct {
	ID       string       `json:"id"`
	ModelID  string       `json:"modelId"`
	Name     string       `json:"name"`
	Price    float64      `json:"price"`
	Quantity int          `json:"quantity"`
	Options  []ItemOption `json:"options,omitempty"`
	Notes    string       `json:"notes,omitempty"`
}

// UnitTotal is the unit price plus every option price.
func (i Item) UnitTotal() decimal.Decimal {
	unit := decimal.NewFromFloat(i.Price)
	for _, o := range i.Options {
		unit = unit.Add(decimal.NewFromFloat(o.Price))
	}
	return unit
}

// LineTotal is UnitTotal times quantity, unrounded.
func (i Item) LineTotal() decimal.Decimal {
	return i.UnitTotal().Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is the persisted shape of one restaurant's cart. The JSON layout is the
// storage format and must stay stable.
type Cart struct {
	Items        []Item  `json:"items"`
	Subtotal     float64 `json:"subtotal"`
	Total        float64 `json:"total"`
	Tax          float64 `json:"tax"`
	DeliveryFee  float64 `json:"deliveryFee"`
	RestaurantID string  `json:"restaurantId"`
	SessionID    string  `json:"sessionId"`
}

func (c Cart) clone() Cart {
	out := c
	out.Items = make([]Item, len(c.Items))
	for i, it := range c.Items {
		it.Options = cloneOptions(it.Options)
		out.Items[i] = it
	}
	return out
}

func cloneOptions(opts []ItemOption) []ItemOption {
	if len(opts) == 0 {
		return nil
	}
	out := make([]ItemOption, len(opts))
	copy(out, opts)
	return out
}
