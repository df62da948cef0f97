package entity

import (
	"time"

	"github.com/ajjawam/ajjawam-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an authenticated operator. Admin users see the whole tenant; store
// users are scoped to their store.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	StoreID   *uuid.UUID     `gorm:"type:uuid;index" json:"store_id,omitempty"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Username  string         `gorm:"size:100;unique;not null" json:"username"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      enum.UserRole  `gorm:"size:20;not null" json:"role"`
	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Tenant Tenant `gorm:"foreignKey:TenantID" json:"-"`
	Store  *Store `gorm:"foreignKey:StoreID" json:"store,omitempty"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}
