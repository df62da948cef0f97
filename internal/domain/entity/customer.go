package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Customer is identified by mobile number. Coins is the loyalty balance
// (1 coin per 100 paid, redeemable 1:1); PendingAmount is the signed wallet:
// negative means the customer owes the store, positive means store credit.
// Both change only through ledger operations, never by direct edit.
type Customer struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	TenantID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	Mobile        string          `gorm:"size:20;unique;not null" json:"mobile"`
	GSTNumber     *string         `gorm:"size:50" json:"gst_number,omitempty"`
	State         string          `gorm:"size:100" json:"state"`
	Coins         int64           `gorm:"not null;default:0" json:"coins"`
	PendingAmount decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"pending_amount"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Tenant Tenant `gorm:"foreignKey:TenantID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
