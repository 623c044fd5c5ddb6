//go:build unit

package api_test

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// fakeAuth stands in for the JWT middleware. Requests without an
// Authorization header pass through unauthenticated so the handlers'
// own 401 path is exercised.
func fakeAuth(tenantID uuid.UUID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		c.Set("user_id", uuid.New())
		c.Set("tenant_id", tenantID)
		c.Set("user_role", role)
		c.Next()
	}
}
