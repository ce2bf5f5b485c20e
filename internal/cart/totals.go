package cart

import (
	"armenu/internal/restaurant"

	"github.com/shopspring/decimal"
)

// Totals is the monetary summary of a set of lines.
type Totals struct {
	Subtotal    float64
	DeliveryFee float64
	Tax         float64
	Total       float64
}

// CalculateTotals recomputes everything from scratch:
//
//	subtotal    = round2(sum((price + option prices) * quantity))
//	deliveryFee = settings.deliveryFee, 0 when ordering is unavailable
//	total       = round2(subtotal + deliveryFee)
//
// Tax is always 0 because menu prices are tax-inclusive. The delivery fee is
// charged even when there are no lines.
func CalculateTotals(items []Item, pos *restaurant.POSConfig) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal())
	}
	subtotal = subtotal.Round(2)

	fee := decimal.Zero
	if pos.OrderingEnabled() {
		fee = decimal.NewFromFloat(pos.Settings.DeliveryFee)
	}

	total := subtotal.Add(fee).Round(2)

	return Totals{
		Subtotal:    subtotal.InexactFloat64(),
		DeliveryFee: fee.InexactFloat64(),
		Tax:         0,
		Total:       total.InexactFloat64(),
	}
}

// Round2 rounds a money amount half away from zero to two decimals.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
