package entity

import (
	"time"

	"github.com/ajjawam/ajjawam-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Bill is an immutable invoice snapshot. Customer fields are captured at bill
// time, not live references; every derived monetary field comes from the
// pricing engine and is never mutated after creation.
type Bill struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	TenantID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"tenant_id"`
	StoreID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"store_id"`
	InvoiceNo  string     `gorm:"size:100;unique;not null" json:"invoice_no"`
	InvoiceSeq int64      `gorm:"not null" json:"invoice_seq"`
	CustomerID *uuid.UUID `gorm:"type:uuid;index" json:"customer_id,omitempty"`

	// Customer snapshot at bill time
	CustomerName      string  `gorm:"size:255" json:"customer_name"`
	CustomerMobile    *string `gorm:"size:20" json:"customer_mobile,omitempty"`
	CustomerGSTNumber *string `gorm:"size:50" json:"customer_gst_number,omitempty"`
	CustomerState     string  `gorm:"size:100" json:"customer_state"`

	DiscountMethod enum.DiscountMethod `gorm:"size:20" json:"discount_method"`
	DiscountValue  decimal.Decimal     `gorm:"type:decimal(15,2);default:0" json:"discount_value"`
	PaymentStatus  enum.PaymentStatus  `gorm:"default:0" json:"payment_status"`
	PaidAmount     decimal.Decimal     `gorm:"type:decimal(15,2);default:0" json:"paid_amount"`
	UsedCoins      int64               `gorm:"default:0" json:"used_coins"`
	GeneratedCoins int64               `gorm:"default:0" json:"generated_coins"`

	GSTType    enum.GSTType    `gorm:"size:20;not null" json:"gst_type"`
	SubTotal   decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"sub_total"`
	TotalGST   decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"total_gst"`
	CGST       decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"cgst"`
	SGST       decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"sgst"`
	IGST       decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"igst"`
	GrandTotal decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"grand_total"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Store    Store      `gorm:"foreignKey:StoreID" json:"-"`
	Customer *Customer  `gorm:"foreignKey:CustomerID" json:"-"`
	Items    []BillItem `gorm:"foreignKey:BillID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new bill
func (b *Bill) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Bill model
func (Bill) TableName() string {
	return "bills"
}

// BillItem is one line of a bill with all derived fields materialized
type BillItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BillID    uuid.UUID `gorm:"type:uuid;not null;index" json:"bill_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`

	// Product snapshot at bill time
	ProductName string  `gorm:"size:255;not null" json:"product_name"`
	ProductCode string  `gorm:"size:100" json:"product_code"`
	HSNCode     *string `gorm:"size:50" json:"hsn_code,omitempty"`

	Quantity       int                 `gorm:"not null" json:"quantity"`
	PriceBeforeTax decimal.Decimal     `gorm:"type:decimal(15,2);not null" json:"price_before_tax"`
	DiscountMethod enum.DiscountMethod `gorm:"size:20" json:"discount_method"`
	DiscountValue  decimal.Decimal     `gorm:"type:decimal(15,2);default:0" json:"discount_value"`

	// Derived by the pricing engine
	DiscountAmount     decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"discount_amount"`
	PriceAfterDiscount decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"price_after_discount"`
	GSTPercentage      decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"gst_percentage"`
	FinalPrice         decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"final_price"`
	LineTotal          decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"line_total"`

	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Bill    Bill    `gorm:"foreignKey:BillID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new bill item
func (bi *BillItem) BeforeCreate(tx *gorm.DB) error {
	if bi.ID == uuid.Nil {
		bi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BillItem model
func (BillItem) TableName() string {
	return "bill_items"
}
