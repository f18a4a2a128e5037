package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmtrack/farmtrack-api/internal/models"
	"github.com/farmtrack/farmtrack-api/pkg/config"
)

func signTestToken(t *testing.T, secret string, claims *models.FarmClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestFarmContextAttachesClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.JWTConfig{Secret: "farm-secret"}
	token := signTestToken(t, cfg.Secret, &models.FarmClaims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	var captured *models.FarmClaims
	router := gin.New()
	router.Use(FarmContext(cfg))
	router.GET("/", func(c *gin.Context) {
		captured, _ = ClaimsFromContext(c)
		c.Status(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, "user-1", captured.UserID)
}

func TestFarmContextPassesThroughWithoutToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var present bool
	router := gin.New()
	router.Use(FarmContext(config.JWTConfig{Secret: "farm-secret"}))
	router.GET("/", func(c *gin.Context) {
		_, present = ClaimsFromContext(c)
		c.Status(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, present)
}

func TestFarmContextIgnoresBadToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var present bool
	router := gin.New()
	router.Use(FarmContext(config.JWTConfig{Secret: "farm-secret"}))
	router.GET("/", func(c *gin.Context) {
		_, present = ClaimsFromContext(c)
		c.Status(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, present)
}

func TestFarmContextRejectsWrongSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)
	token := signTestToken(t, "other-secret", &models.FarmClaims{UserID: "user-1"})

	var present bool
	router := gin.New()
	router.Use(FarmContext(config.JWTConfig{Secret: "farm-secret"}))
	router.GET("/", func(c *gin.Context) {
		_, present = ClaimsFromContext(c)
		c.Status(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, present)
}
