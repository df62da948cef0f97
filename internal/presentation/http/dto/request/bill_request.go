package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentRequest is one method's share of a payment split
type PaymentRequest struct {
	Method string          `json:"method" binding:"required,oneof=cash card upi"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// BillLineRequest represents one line of a bill
type BillLineRequest struct {
	ProductID      uuid.UUID       `json:"product_id" binding:"required"`
	Quantity       int             `json:"quantity" binding:"required,min=1"`
	PriceBeforeTax decimal.Decimal `json:"price_before_tax" binding:"required"`
	DiscountMethod string          `json:"discount_method" binding:"omitempty,oneof=percentage flat"`
	DiscountValue  decimal.Decimal `json:"discount_value"`
}

// CreateBillRequest represents a bill creation request
type CreateBillRequest struct {
	StoreID        uuid.UUID         `json:"store_id" binding:"required"`
	CustomerID     *uuid.UUID        `json:"customer_id"`
	CustomerName   string            `json:"customer_name" binding:"omitempty,max=255"`
	Lines          []BillLineRequest `json:"lines" binding:"required,min=1,dive"`
	DiscountMethod string            `json:"discount_method" binding:"omitempty,oneof=percentage flat"`
	DiscountValue  decimal.Decimal   `json:"discount_value"`
	UsedCoins      int64             `json:"used_coins" binding:"min=0"`
	PaidAmount     decimal.Decimal   `json:"paid_amount"`
	Payments       []PaymentRequest  `json:"payments" binding:"dive"`
}

// PayPendingRequest settles a customer's outstanding balance oldest-first
type PayPendingRequest struct {
	CustomerID uuid.UUID        `json:"customer_id" binding:"required"`
	PaidAmount decimal.Decimal  `json:"paid_amount" binding:"required"`
	Payments   []PaymentRequest `json:"payments" binding:"dive"`
}

// BillFilterRequest represents bill filter parameters
type BillFilterRequest struct {
	Search         string `form:"search"`
	StoreID        string `form:"store_id"`
	CustomerID     string `form:"customer_id"`
	CustomerMobile string `form:"customer_mobile"`
	PaymentStatus  string `form:"payment_status"`
	StartDate      string `form:"start_date"`
	EndDate        string `form:"end_date"`
	SortBy         string `form:"sort_by"`
	SortOrder      string `form:"sort_order"`
	Page           int    `form:"page"`
	PerPage        int    `form:"per_page"`
}

// TransactionFilterRequest represents wallet transaction filter parameters
type TransactionFilterRequest struct {
	CustomerID string `form:"customer_id"`
	Unsettled  bool   `form:"unsettled"`
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}
