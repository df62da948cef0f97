package request

import (
	"github.com/shopspring/decimal"
)

// StoreRequest represents a store create/update request
type StoreRequest struct {
	Name    string  `json:"name" binding:"required,min=2,max=255"`
	Code    string  `json:"code" binding:"required,max=50"`
	State   string  `json:"state" binding:"required,max=100"`
	Address *string `json:"address"`
	Phone   *string `json:"phone" binding:"omitempty,max=20"`
}

// ExpenseRequest represents an expense create/update request
type ExpenseRequest struct {
	StoreID     string          `json:"store_id" binding:"required"`
	Category    string          `json:"category" binding:"required,max=100"`
	Description *string         `json:"description"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Date        string          `json:"date" binding:"required"`
}

// ExpenseFilterRequest represents expense filter parameters
type ExpenseFilterRequest struct {
	StoreID   string `form:"store_id"`
	Category  string `form:"category"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}

// ReportFilterRequest represents report filter parameters
type ReportFilterRequest struct {
	StoreID   string `form:"store_id"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Export    bool   `form:"exportExcel"`
}
