package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/farmtrack/farmtrack-api/internal/middleware"
)

// resolveUserID prefers the explicit query/body value and falls back to
// the bearer token claims when a farm context was attached.
func resolveUserID(c *gin.Context, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if claims, ok := middleware.ClaimsFromContext(c); ok {
		return claims.UserID
	}
	return ""
}
