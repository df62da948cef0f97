package handler

import (
	"time"

	"github.com/ajjawam/ajjawam-api/internal/domain/enum"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetUserID extracts the authenticated user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetStoreID extracts the operator's store ID, nil for admins
func GetStoreID(c *gin.Context) *uuid.UUID {
	storeIDVal, exists := c.Get("store_id")
	if !exists {
		return nil
	}
	storeID, ok := storeIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &storeID
}

// GetRole extracts the authenticated user's role
func GetRole(c *gin.Context) string {
	role, exists := c.Get("role")
	if !exists {
		return ""
	}
	return role.(string)
}

// IsAdmin checks if the user is a tenant administrator
func IsAdmin(c *gin.Context) bool {
	return GetRole(c) == enum.UserRoleAdmin.String()
}

// parseUUID parses an optional UUID query value, returning nil on empty or
// malformed input
func parseUUID(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}

// parseDate parses an optional YYYY-MM-DD query value
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
