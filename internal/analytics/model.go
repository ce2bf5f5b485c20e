package analytics

import "time"

const (
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceDesktop = "desktop"
)

// View is one public look at a dish model.
type View struct {
	ModelID      string    `json:"model_id"`
	RestaurantID string    `json:"restaurant_id"`
	DeviceType   string    `json:"device_type"`
	ViewedAt     time.Time `json:"viewed_at"`
}

type DayCount struct {
	Day   string `json:"day"`
	Views int    `json:"views"`
}

type ModelCount struct {
	ModelID string `json:"model_id"`
	Views   int    `json:"views"`
}

// Summary aggregates the views of a restaurant over a window of days.
type Summary struct {
	RestaurantID string         `json:"restaurant_id"`
	Days         int            `json:"days"`
	TotalViews   int            `json:"total_views"`
	ByDay        []DayCount     `json:"by_day"`
	ByDevice     map[string]int `json:"by_device"`
	TopModels    []ModelCount   `json:"top_models"`
}
