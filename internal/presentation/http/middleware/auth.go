package middleware

import (
	"strings"

	"github.com/ajjawam/ajjawam-api/internal/domain/enum"
	infraRepo "github.com/ajjawam/ajjawam-api/internal/infrastructure/repository"
	"github.com/ajjawam/ajjawam-api/internal/presentation/http/dto/response"
	"github.com/ajjawam/ajjawam-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuthMiddleware validates the bearer token and stamps the tenant (and, for
// store operators, the store) onto the request context. Every repository
// query downstream is scoped through those values.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("tenant_id", claims.TenantID)
		c.Set("role", claims.Role)

		ctx := infraRepo.WithTenant(c.Request.Context(), claims.TenantID)
		if claims.StoreID != nil {
			c.Set("store_id", *claims.StoreID)
			ctx = infraRepo.WithStore(ctx, *claims.StoreID)
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireAdmin restricts a route to tenant administrators
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role != enum.UserRoleAdmin.String() {
			response.Forbidden(c, "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetTenantID returns the authenticated tenant, or uuid.Nil before auth ran
func GetTenantID(c *gin.Context) uuid.UUID {
	val, exists := c.Get("tenant_id")
	if !exists {
		return uuid.Nil
	}
	tenantID, ok := val.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return tenantID
}
