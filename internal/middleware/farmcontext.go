package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/farmtrack/farmtrack-api/internal/models"
	"github.com/farmtrack/farmtrack-api/pkg/config"
)

// ContextClaimsKey is the gin context key storing verified farm claims.
const ContextClaimsKey = "farmClaims"

// FarmContext inspects the bearer token, when present, and attaches the
// verified claims to the request. Requests without a token pass through
// untouched; token issuance belongs to the surrounding auth platform.
func FarmContext(cfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || cfg.Secret == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.Next()
			return
		}

		claims, err := parseClaims(parts[1], cfg)
		if err != nil {
			c.Next()
			return
		}

		c.Set(ContextClaimsKey, claims)
		c.Next()
	}
}

func parseClaims(token string, cfg config.JWTConfig) (*models.FarmClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256"})}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	for _, aud := range cfg.Audience {
		opts = append(opts, jwt.WithAudience(aud))
	}

	claims := &models.FarmClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.Secret), nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

// ClaimsFromContext returns the attached claims, when any.
func ClaimsFromContext(c *gin.Context) (*models.FarmClaims, bool) {
	value, ok := c.Get(ContextClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := value.(*models.FarmClaims)
	return claims, ok
}
