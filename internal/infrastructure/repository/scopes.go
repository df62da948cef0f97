package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ctxKey string

const (
	// TenantIDKey is the context key for tenant ID
	TenantIDKey ctxKey = "tenant_id"
	// StoreIDKey is the context key for the store a store-user is bound to
	StoreIDKey ctxKey = "store_id"
	// txKey is the context key for an in-flight transaction handle
	txKey ctxKey = "gorm_tx"
)

// TenantScope returns a GORM scope that filters by tenant.
// This should be applied to all queries for tenant-scoped entities.
func TenantScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		tenantID, ok := ctx.Value(TenantIDKey).(uuid.UUID)
		if !ok {
			// Fail-safe: return no results if tenant context missing
			// This prevents accidental cross-tenant data access
			return db.Where("1 = 0")
		}
		return db.Where("tenant_id = ?", tenantID)
	}
}

// WithTenant adds tenant ID to context
func WithTenant(ctx context.Context, tenantID uuid.UUID) context.Context {
	return context.WithValue(ctx, TenantIDKey, tenantID)
}

// GetTenantID extracts tenant ID from context
func GetTenantID(ctx context.Context) (uuid.UUID, bool) {
	tenantID, ok := ctx.Value(TenantIDKey).(uuid.UUID)
	return tenantID, ok
}

// WithStore adds the caller's store ID to context
func WithStore(ctx context.Context, storeID uuid.UUID) context.Context {
	return context.WithValue(ctx, StoreIDKey, storeID)
}

// GetStoreID extracts the caller's store ID from context
func GetStoreID(ctx context.Context) (uuid.UUID, bool) {
	storeID, ok := ctx.Value(StoreIDKey).(uuid.UUID)
	return storeID, ok
}
