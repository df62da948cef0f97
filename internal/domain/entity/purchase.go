package entity

import (
	"time"

	"github.com/ajjawam/ajjawam-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Purchase is an append-only record of vendor stock inflow, structurally the
// mirror of a Bill but against a Company. Creation increments warehouse stock
// and recomputes the product's weighted-average cost.
type Purchase struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TenantID   uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	PurchaseNo string    `gorm:"size:100;unique;not null" json:"purchase_no"`

	GSTType    enum.GSTType    `gorm:"size:20;not null" json:"gst_type"`
	SubTotal   decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"sub_total"`
	TotalGST   decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"total_gst"`
	GrandTotal decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"grand_total"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Company Company        `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Items   []PurchaseItem `gorm:"foreignKey:PurchaseID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new purchase
func (p *Purchase) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Purchase model
func (Purchase) TableName() string {
	return "purchases"
}

// PurchaseItem is one line of a purchase with derived fields materialized
type PurchaseItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PurchaseID uuid.UUID `gorm:"type:uuid;not null;index" json:"purchase_id"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`

	Quantity       int                 `gorm:"not null" json:"quantity"`
	PriceBeforeTax decimal.Decimal     `gorm:"type:decimal(15,2);not null" json:"price_before_tax"`
	DiscountMethod enum.DiscountMethod `gorm:"size:20" json:"discount_method"`
	DiscountValue  decimal.Decimal     `gorm:"type:decimal(15,2);default:0" json:"discount_value"`

	DiscountAmount     decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"discount_amount"`
	PriceAfterDiscount decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"price_after_discount"`
	GSTPercentage      decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"gst_percentage"`
	FinalPrice         decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"final_price"`
	LineTotal          decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"line_total"`

	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Purchase Purchase `gorm:"foreignKey:PurchaseID" json:"-"`
	Product  Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new purchase item
func (pi *PurchaseItem) BeforeCreate(tx *gorm.DB) error {
	if pi.ID == uuid.Nil {
		pi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseItem model
func (PurchaseItem) TableName() string {
	return "purchase_items"
}

// PurchaseReturn records stock sent back to a vendor
type PurchaseReturn struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	TenantID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"tenant_id"`
	CompanyID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"company_id"`
	PurchaseID  *uuid.UUID      `gorm:"type:uuid;index" json:"purchase_id,omitempty"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`

	// Relationships
	Company Company      `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Items   []ReturnItem `gorm:"foreignKey:ReturnID;references:ID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new purchase return
func (r *PurchaseReturn) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseReturn model
func (PurchaseReturn) TableName() string {
	return "purchase_returns"
}

// SaleReturn records customer stock inflow against an earlier bill
type SaleReturn struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	TenantID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"tenant_id"`
	StoreID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"store_id"`
	BillID      *uuid.UUID      `gorm:"type:uuid;index" json:"bill_id,omitempty"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`

	// Relationships
	Store Store        `gorm:"foreignKey:StoreID" json:"store,omitempty"`
	Items []ReturnItem `gorm:"foreignKey:ReturnID;references:ID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale return
func (r *SaleReturn) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleReturn model
func (SaleReturn) TableName() string {
	return "sale_returns"
}

// ReturnItem is one product+quantity line of a purchase or sale return
type ReturnItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ReturnID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"return_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	LineTotal decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"line_total"`
	CreatedAt time.Time       `json:"created_at"`

	// Relationships
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new return item
func (ri *ReturnItem) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ReturnItem model
func (ReturnItem) TableName() string {
	return "return_items"
}
