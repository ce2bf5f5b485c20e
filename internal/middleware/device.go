package middleware

import (
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const DeviceHeader = "X-Device-ID"

var deviceIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{8,64}$`)

// DeviceID scopes anonymous diners. A missing or malformed header gets a fresh
// id, echoed back so the client can keep it.
func DeviceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(DeviceHeader)
		if !deviceIDPattern.MatchString(id) {
			id = uuid.NewString()
		}

		c.Set("deviceID", id)
		c.Header(DeviceHeader, id)
		c.Next()
	}
}
