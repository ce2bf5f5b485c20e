package restaurant

import "time"

type Restaurant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	OwnerID   string    `json:"owner_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// POSConfig controls whether online ordering is available for a restaurant
// and its commercial parameters.
type POSConfig struct {
	Enabled  bool        `json:"enabled"`
	Features POSFeatures `json:"features"`
	Settings POSSettings `json:"settings"`
}

type POSFeatures struct {
	Ordering     bool `json:"ordering"`
	Delivery     bool `json:"delivery"`
	Takeaway     bool `json:"takeaway"`
	TableService bool `json:"tableService"`
}

type POSSettings struct {
	Currency string `json:"currency" validate:"required,len=3,alpha"`
	// TaxRate is informational only; menu prices already include tax.
	TaxRate           float64 `json:"taxRate" validate:"gte=0,lte=100"`
	DeliveryFee       float64 `json:"deliveryFee" validate:"gte=0"`
	MinimumOrder      float64 `json:"minimumOrder" validate:"gte=0"`
	EstimatedPrepTime int     `json:"estimatedPrepTime" validate:"gte=0"`
}

// OrderingEnabled reports whether customers may add dishes to a cart.
func (c *POSConfig) OrderingEnabled() bool {
	return c != nil && c.Enabled && c.Features.Ordering
}

// DefaultPOSConfig is served for restaurants that never configured their POS.
func DefaultPOSConfig() POSConfig {
	return POSConfig{
		Enabled: false,
		Settings: POSSettings{
			Currency:          "EUR",
			EstimatedPrepTime: 20,
		},
	}
}
