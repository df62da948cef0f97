package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a catalog item. Quantity is the warehouse on-hand count; store
// counts live in StoreStock. PrintPrice is the psychologically rounded tag
// price derived from SellingPrice, never edited directly.
type Product struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	TenantID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	Code          string          `gorm:"size:100;unique;not null" json:"code"`
	HSNCode       *string         `gorm:"size:50" json:"hsn_code,omitempty"`
	GSTPercentage decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"gst_percentage"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"purchase_price"`
	AverageCost   decimal.Decimal `gorm:"type:decimal(15,4);default:0" json:"average_cost"`
	SellingPrice  decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"selling_price"`
	PrintPrice    int64           `gorm:"default:0" json:"print_price"`
	Quantity      int             `gorm:"default:0" json:"quantity"`
	QuantityAlert int             `gorm:"default:0" json:"quantity_alert"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Tenant Tenant `gorm:"foreignKey:TenantID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}
