package order

import (
	"time"

	"armenu/internal/cart"
)

const (
	StatusPending = "PENDING"
)

// Order is an immutable snapshot of a cart taken at checkout.
type Order struct {
	ID           string      `json:"id"`
	RestaurantID string      `json:"restaurant_id"`
	SessionID    string      `json:"session_id"`
	DeviceID     string      `json:"device_id,omitempty"`
	Items        []cart.Item `json:"items"`
	Subtotal     float64     `json:"subtotal"`
	DeliveryFee  float64     `json:"delivery_fee"`
	Tax          float64     `json:"tax"`
	Total        float64     `json:"total"`
	Currency     string      `json:"currency"`
	Status       string      `json:"status"`

	EstimatedReadyAt time.Time `json:"estimated_ready_at"`
	CreatedAt        time.Time `json:"created_at"`
}
