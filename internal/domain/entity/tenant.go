package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tenant represents one retail business using the platform. All data rows are
// scoped to a tenant; stores, users and documents belong to exactly one.
type Tenant struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Slug      string         `gorm:"size:255;unique;not null" json:"slug"`
	GSTNumber string         `gorm:"size:50" json:"gst_number"`
	State     string         `gorm:"size:100" json:"state"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new tenant
func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Tenant model
func (Tenant) TableName() string {
	return "tenants"
}

// InvoiceSequence backs sequential per-tenant invoice numbering. The value is
// advanced with a single atomic UPDATE inside the bill creation transaction.
type InvoiceSequence struct {
	TenantID uuid.UUID `gorm:"type:uuid;primary_key" json:"tenant_id"`
	Value    int64     `gorm:"not null;default:0" json:"value"`
}

// TableName returns the table name for the InvoiceSequence model
func (InvoiceSequence) TableName() string {
	return "invoice_sequences"
}

// PurchaseSequence backs sequential per-tenant purchase numbering, advanced
// the same way as InvoiceSequence
type PurchaseSequence struct {
	TenantID uuid.UUID `gorm:"type:uuid;primary_key" json:"tenant_id"`
	Value    int64     `gorm:"not null;default:0" json:"value"`
}

// TableName returns the table name for the PurchaseSequence model
func (PurchaseSequence) TableName() string {
	return "purchase_sequences"
}
