package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store represents a retail outlet. The warehouse holds stock on the Product
// row itself; store-level stock lives in StoreStock.
type Store struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Code      string         `gorm:"size:50;unique;not null" json:"code"`
	State     string         `gorm:"size:100;not null" json:"state"`
	Address   *string        `gorm:"type:text" json:"address,omitempty"`
	Phone     *string        `gorm:"size:50" json:"phone,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Tenant Tenant `gorm:"foreignKey:TenantID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new store
func (s *Store) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Store model
func (Store) TableName() string {
	return "stores"
}

// StoreStock is the per-store on-hand quantity of one product. Mutated only
// through atomic conditional updates so concurrent transfers cannot lose
// writes or drive quantity negative.
type StoreStock struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StoreID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_store_product" json:"store_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_store_product" json:"product_id"`
	Quantity  int       `gorm:"not null;default:0" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Store   Store   `gorm:"foreignKey:StoreID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new store stock row
func (s *StoreStock) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StoreStock model
func (StoreStock) TableName() string {
	return "store_stocks"
}
