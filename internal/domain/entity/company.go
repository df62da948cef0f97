package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company is a vendor that purchases are recorded against
type Company struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	GSTNumber *string        `gorm:"size:50" json:"gst_number,omitempty"`
	State     string         `gorm:"size:100" json:"state"`
	Phone     *string        `gorm:"size:50" json:"phone,omitempty"`
	Address   *string        `gorm:"type:text" json:"address,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Tenant Tenant `gorm:"foreignKey:TenantID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new company
func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Company model
func (Company) TableName() string {
	return "companies"
}
