package analytics

import (
	"sort"
	"time"
)

const (
	DefaultDays = 7
	MaxDays     = 90
	topModels   = 5
)

// Summarize folds views into per-day, per-device and per-model counts for the
// days ending at now (UTC). Days without views are reported with zero.
func Summarize(restaurantID string, views []View, days int, now time.Time) Summary {
	days = clampDays(days)
	today := now.UTC().Truncate(24 * time.Hour)
	start := today.AddDate(0, 0, -(days - 1))

	perDay := make(map[string]int, days)
	perModel := make(map[string]int)
	s := Summary{
		RestaurantID: restaurantID,
		Days:         days,
		ByDevice: map[string]int{
			DeviceMobile:  0,
			DeviceTablet:  0,
			DeviceDesktop: 0,
		},
	}

	for _, v := range views {
		at := v.ViewedAt.UTC()
		if at.Before(start) || !at.Before(today.AddDate(0, 0, 1)) {
			continue
		}
		s.TotalViews++
		perDay[at.Format(time.DateOnly)]++
		perModel[v.ModelID]++
		s.ByDevice[v.DeviceType]++
	}

	for d := 0; d < days; d++ {
		key := start.AddDate(0, 0, d).Format(time.DateOnly)
		s.ByDay = append(s.ByDay, DayCount{Day: key, Views: perDay[key]})
	}

	for id, n := range perModel {
		s.TopModels = append(s.TopModels, ModelCount{ModelID: id, Views: n})
	}
	sort.Slice(s.TopModels, func(i, j int) bool {
		if s.TopModels[i].Views != s.TopModels[j].Views {
			return s.TopModels[i].Views > s.TopModels[j].Views
		}
		return s.TopModels[i].ModelID < s.TopModels[j].ModelID
	})
	if len(s.TopModels) > topModels {
		s.TopModels = s.TopModels[:topModels]
	}
	if s.TopModels == nil {
		s.TopModels = []ModelCount{}
	}

	return s
}

func clampDays(days int) int {
	if days <= 0 {
		return DefaultDays
	}
	if days > MaxDays {
		return MaxDays
	}
	return days
}
