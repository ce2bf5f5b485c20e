package analytics

import "strings"

// DeviceType buckets a User-Agent into mobile, tablet or desktop.
func DeviceType(userAgent string) string {
	ua := strings.ToLower(userAgent)

	switch {
	case strings.Contains(ua, "ipad"),
		strings.Contains(ua, "tablet"),
		strings.Contains(ua, "android") && !strings.Contains(ua, "mobile"):
		return DeviceTablet
	case strings.Contains(ua, "mobi"),
		strings.Contains(ua, "iphone"),
		strings.Contains(ua, "ipod"):
		return DeviceMobile
	default:
		return DeviceDesktop
	}
}
