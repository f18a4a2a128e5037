package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/farmtrack/farmtrack-api/pkg/config"
	appErrors "github.com/farmtrack/farmtrack-api/pkg/errors"
	"github.com/farmtrack/farmtrack-api/pkg/response"
)

// IngestAPIKey guards the sensor gateway with a shared key presented in
// the X-API-Key header and compared against the configured bcrypt hash.
// An empty hash disables the check, which is the development default.
func IngestAPIKey(cfg config.IngestConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.APIKeyHash == "" {
			c.Next()
			return
		}

		key := c.GetHeader("X-API-Key")
		if key == "" {
			response.Error(c, appErrors.ErrInvalidAPIKey)
			c.Abort()
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(cfg.APIKeyHash), []byte(key)); err != nil {
			response.Error(c, appErrors.ErrInvalidAPIKey)
			c.Abort()
			return
		}
		c.Next()
	}
}
