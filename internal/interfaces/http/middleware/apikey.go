package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sales/backend/internal/interfaces/http/dto"
)

const APIKeyHeader = "X-API-Key"

// APIKey guards mutating routes with a shared key. An empty configured
// key disables the check, which is how local development runs.
func APIKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.Next()
			return
		}

		provided := c.GetHeader(APIKeyHeader)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.Error(http.StatusUnauthorized, "invalid api key"))
			return
		}
		c.Next()
	}
}
