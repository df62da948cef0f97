package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WalletTransaction is one ledger entry per bill or explicit payment event.
// Outstanding tracks how much of the bill amount remains unsettled; rows stay
// queryable as pending until it reaches zero. WalletBalance is the customer's
// signed wallet snapshot after this entry was applied.
type WalletTransaction struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	TenantID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"tenant_id"`
	CustomerID uuid.UUID  `gorm:"type:uuid;not null;index" json:"customer_id"`
	BillID     *uuid.UUID `gorm:"type:uuid;index" json:"bill_id,omitempty"`
	InvoiceNo  *string    `gorm:"size:100" json:"invoice_no,omitempty"`

	BillAmount     decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"bill_amount"`
	PaidAmount     decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"paid_amount"`
	Outstanding    decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"outstanding"`
	UsedCoins      int64           `gorm:"default:0" json:"used_coins"`
	GeneratedCoins int64           `gorm:"default:0" json:"generated_coins"`
	WalletBalance  decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"wallet_balance"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Customer Customer             `gorm:"foreignKey:CustomerID" json:"-"`
	Payments []TransactionPayment `gorm:"foreignKey:TransactionID" json:"payments,omitempty"`
}

// BeforeCreate generates a UUID before creating a new wallet transaction
func (t *WalletTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the WalletTransaction model
func (WalletTransaction) TableName() string {
	return "wallet_transactions"
}

// IsSettled reports whether nothing remains outstanding on this entry
func (t *WalletTransaction) IsSettled() bool {
	return !t.Outstanding.IsPositive()
}

// TransactionPayment is one method+amount pair of a transaction's payment
// breakdown (cash, card, UPI, ...)
type TransactionPayment struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;index" json:"transaction_id"`
	Method        string          `gorm:"size:50;not null" json:"method"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	CreatedAt     time.Time       `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new transaction payment
func (p *TransactionPayment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TransactionPayment model
func (TransactionPayment) TableName() string {
	return "transaction_payments"
}
