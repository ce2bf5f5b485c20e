package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RequireRole lets a request through only when AuthMiddleware stored one of
// allowedRoles as "userRole". Diner routes never pass through it.
func RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("userRole")
		if role == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "role missing"})
			return
		}

		if !slices.Contains(allowedRoles, role) {
			log.Debug().
				Str("user_id", c.GetString("userID")).
				Str("role", role).
				Str("path", c.FullPath()).
				Msg("role not allowed")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		c.Next()
	}
}
