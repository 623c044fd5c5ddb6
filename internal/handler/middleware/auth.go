package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"loyalty-ledger/internal/handler/httperr"
	"loyalty-ledger/internal/pkg/errs"
	"loyalty-ledger/internal/pkg/jwt"
	"loyalty-ledger/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RoleStaff   = "staff"
	RoleManager = "manager"
	RoleAdmin   = queries.RoleAdmin
)

const (
	ctxUserIDKey   = "user_id"
	ctxTenantIDKey = "tenant_id"
	ctxUserRoleKey = "user_role"
)

var (
	errTokenRequired     = errs.New("access token required")
	errInsufficientRoles = errs.New("insufficient permissions")
)

var roleHierarchy = map[string]int{
	RoleStaff:   1,
	RoleManager: 2,
	RoleAdmin:   3,
}

type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

type AuthMiddleware struct {
	tokenValidator TokenValidator
}

func NewAuthMiddleware(tokenValidator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errTokenRequired, "Access token required", nil)
			return
		}

		claims, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
			return
		}

		c.Set(ctxUserIDKey, claims.UserID)
		c.Set(ctxTenantIDKey, claims.TenantID)
		c.Set(ctxUserRoleKey, claims.Role)
		c.Set("jwt_claims", map[string]any{
			"user_id":   claims.UserID.String(),
			"tenant_id": claims.TenantID.String(),
			"role":      claims.Role,
		})
		c.Next()
	}
}

func hasMinimumRole(userRole, minRole string) bool {
	userLevel, userExists := roleHierarchy[userRole]
	minLevel, minExists := roleHierarchy[minRole]
	return userExists && minExists && userLevel >= minLevel
}

// RequireRoleAtLeast must run after RequireAuth.
func (m *AuthMiddleware) RequireRoleAtLeast(minRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok {
			httperr.AbortWithError(c, http.StatusUnauthorized, errTokenRequired, "Unauthorized", nil)
			return
		}

		if !hasMinimumRole(role, minRole) {
			httperr.AbortWithError(c, http.StatusForbidden, errInsufficientRoles, "Insufficient permissions", nil)
			return
		}

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}

func GetTenantID(c *gin.Context) (uuid.UUID, bool) {
	tenantID, exists := c.Get(ctxTenantIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := tenantID.(uuid.UUID)
	return id, ok
}

func GetUserRole(c *gin.Context) (string, bool) {
	userRole, exists := c.Get(ctxUserRoleKey)
	if !exists {
		return "", false
	}

	role, ok := userRole.(string)
	return role, ok
}

// GetActor returns the caller as seen by the query side.
func GetActor(c *gin.Context) (queries.Actor, bool) {
	tenantID, ok := GetTenantID(c)
	if !ok {
		return queries.Actor{}, false
	}
	role, _ := GetUserRole(c)
	return queries.Actor{TenantID: tenantID, Role: role}, true
}
