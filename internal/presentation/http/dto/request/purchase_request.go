package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseLineRequest is one product line of a supplier purchase
type PurchaseLineRequest struct {
	ProductID      uuid.UUID       `json:"product_id" binding:"required"`
	Quantity       int             `json:"quantity" binding:"required,min=1"`
	PriceBeforeTax decimal.Decimal `json:"price_before_tax" binding:"required"`
	DiscountMethod string          `json:"discount_method" binding:"omitempty,oneof=percentage flat"`
	DiscountValue  decimal.Decimal `json:"discount_value"`
}

// CreatePurchaseRequest represents a supplier purchase creation request
type CreatePurchaseRequest struct {
	CompanyID uuid.UUID             `json:"company_id" binding:"required"`
	Lines     []PurchaseLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ReturnItemRequest is one product line of a return
type ReturnItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreatePurchaseReturnRequest sends goods back to a supplier
type CreatePurchaseReturnRequest struct {
	CompanyID  uuid.UUID           `json:"company_id" binding:"required"`
	PurchaseID *uuid.UUID          `json:"purchase_id"`
	Items      []ReturnItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreateSaleReturnRequest takes goods back from a customer into store stock
type CreateSaleReturnRequest struct {
	StoreID uuid.UUID           `json:"store_id" binding:"required"`
	BillID  *uuid.UUID          `json:"bill_id"`
	Items   []ReturnItemRequest `json:"items" binding:"required,min=1,dive"`
}

// PurchaseFilterRequest represents purchase filter parameters
type PurchaseFilterRequest struct {
	CompanyID string `form:"company_id"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
