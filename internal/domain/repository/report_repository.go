package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesSummaryRow is one day's aggregated billing for a store
type SalesSummaryRow struct {
	Date       time.Time       `json:"date"`
	StoreID    uuid.UUID       `json:"store_id"`
	StoreName  string          `json:"store_name"`
	BillCount  int64           `json:"bill_count"`
	SubTotal   decimal.Decimal `json:"sub_total"`
	TotalGST   decimal.Decimal `json:"total_gst"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// GSTSummaryRow aggregates tax components per GST rate
type GSTSummaryRow struct {
	GSTPercentage decimal.Decimal `json:"gst_percentage"`
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	CGST          decimal.Decimal `json:"cgst"`
	SGST          decimal.Decimal `json:"sgst"`
	IGST          decimal.Decimal `json:"igst"`
}

// ReportFilterParams bounds report queries
type ReportFilterParams struct {
	StoreID   *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

// ReportRepository aggregates stored documents for the reporting views. Reads
// may lag recent writes; callers refetch after mutations.
type ReportRepository interface {
	SalesSummary(ctx context.Context, params *ReportFilterParams) ([]SalesSummaryRow, error)
	GSTSummary(ctx context.Context, params *ReportFilterParams) ([]GSTSummaryRow, error)
	ExpenseTotal(ctx context.Context, params *ReportFilterParams) (decimal.Decimal, error)
}
