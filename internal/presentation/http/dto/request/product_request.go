package request

import "github.com/shopspring/decimal"

// ProductRequest represents a product create/update request
type ProductRequest struct {
	Name          string          `json:"name" binding:"required,min=2,max=255"`
	Code          string          `json:"code" binding:"required,max=100"`
	HSNCode       *string         `json:"hsn_code" binding:"omitempty,max=20"`
	GSTPercentage decimal.Decimal `json:"gst_percentage"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	QuantityAlert int             `json:"quantity_alert" binding:"min=0"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search    string `form:"search"`
	LowStock  bool   `form:"low_stock"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
