package menu

import "time"

// Model3D is one dish on a restaurant menu together with its AR assets.
type Model3D struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	Name         string    `json:"name"`
	Price        *float64  `json:"price,omitempty"` // tax-inclusive; nil means not orderable
	Thumbnail    string    `json:"thumbnail,omitempty"`
	ModelURL     string    `json:"model_url"`
	Category     string    `json:"category,omitempty"`
	Description  string    `json:"description,omitempty"`
	Ingredients  []string  `json:"ingredients,omitempty"`
	Allergens    []string  `json:"allergens,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// HasPrice reports whether the dish carries a positive price.
func (m *Model3D) HasPrice() bool {
	return m.Price != nil && *m.Price > 0
}

// UploadInput carries everything needed to publish a new dish model.
type UploadInput struct {
	RestaurantID string
	UserID       string

	Name        string
	Price       *float64
	Category    string
	Description string
	Ingredients []string
	Allergens   []string

	ModelFile     File
	ThumbnailFile *File
}
