package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tumentor/tumentor-api/internal/middleware"
	"github.com/tumentor/tumentor-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// requestTime resolves the reference instant for time-dependent
// endpoints. An RFC 3339 "now" query parameter overrides the clock,
// which keeps period resolution and pricing reproducible.
func requestTime(c *gin.Context) (time.Time, error) {
	raw := c.Query("now")
	if raw == "" {
		return time.Now().UTC(), nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return parsed.UTC(), nil
}
