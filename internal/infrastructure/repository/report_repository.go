package repository

import (
	"context"

	domainRepo "github.com/ajjawam/ajjawam-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) domainRepo.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) SalesSummary(ctx context.Context, params *domainRepo.ReportFilterParams) ([]domainRepo.SalesSummaryRow, error) {
	tenantID, ok := GetTenantID(ctx)
	if !ok {
		return nil, nil
	}

	var rows []domainRepo.SalesSummaryRow
	query := r.db.WithContext(ctx).
		Table("bills").
		Select(`DATE(bills.created_at) AS date,
			bills.store_id AS store_id,
			stores.name AS store_name,
			COUNT(*) AS bill_count,
			COALESCE(SUM(bills.sub_total), 0) AS sub_total,
			COALESCE(SUM(bills.total_gst), 0) AS total_gst,
			COALESCE(SUM(bills.grand_total), 0) AS grand_total`).
		Joins("JOIN stores ON stores.id = bills.store_id").
		Where("bills.tenant_id = ?", tenantID)

	if params.StoreID != nil {
		query = query.Where("bills.store_id = ?", *params.StoreID)
	}
	if params.StartDate != nil {
		query = query.Where("bills.created_at >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("bills.created_at <= ?", *params.EndDate)
	}

	err := query.
		Group("DATE(bills.created_at), bills.store_id, stores.name").
		Order("date DESC").
		Scan(&rows).Error
	return rows, err
}

// GSTSummary aggregates tax per rate. Per-line amounts are recomputed from
// the materialized item fields; the intra/inter-state split follows the
// bill's gst_type.
func (r *reportRepository) GSTSummary(ctx context.Context, params *domainRepo.ReportFilterParams) ([]domainRepo.GSTSummaryRow, error) {
	tenantID, ok := GetTenantID(ctx)
	if !ok {
		return nil, nil
	}

	var rows []domainRepo.GSTSummaryRow
	query := r.db.WithContext(ctx).
		Table("bill_items").
		Select(`bill_items.gst_percentage AS gst_percentage,
			COALESCE(SUM(bill_items.price_after_discount * bill_items.quantity), 0) AS taxable_amount,
			COALESCE(SUM(CASE WHEN bills.gst_type = 'CGST_SGST'
				THEN (bill_items.final_price - bill_items.price_after_discount) * bill_items.quantity / 2
				ELSE 0 END), 0) AS cgst,
			COALESCE(SUM(CASE WHEN bills.gst_type = 'CGST_SGST'
				THEN (bill_items.final_price - bill_items.price_after_discount) * bill_items.quantity / 2
				ELSE 0 END), 0) AS sgst,
			COALESCE(SUM(CASE WHEN bills.gst_type = 'IGST'
				THEN (bill_items.final_price - bill_items.price_after_discount) * bill_items.quantity
				ELSE 0 END), 0) AS igst`).
		Joins("JOIN bills ON bills.id = bill_items.bill_id").
		Where("bills.tenant_id = ?", tenantID)

	if params.StoreID != nil {
		query = query.Where("bills.store_id = ?", *params.StoreID)
	}
	if params.StartDate != nil {
		query = query.Where("bills.created_at >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("bills.created_at <= ?", *params.EndDate)
	}

	err := query.
		Group("bill_items.gst_percentage").
		Order("gst_percentage ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) ExpenseTotal(ctx context.Context, params *domainRepo.ReportFilterParams) (decimal.Decimal, error) {
	tenantID, ok := GetTenantID(ctx)
	if !ok {
		return decimal.Zero, nil
	}

	var total decimal.Decimal
	query := r.db.WithContext(ctx).
		Table("expenses").
		Select("COALESCE(SUM(amount), 0)").
		Where("tenant_id = ? AND deleted_at IS NULL", tenantID)

	if params.StoreID != nil {
		query = query.Where("store_id = ?", *params.StoreID)
	}
	if params.StartDate != nil {
		query = query.Where("date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("date <= ?", *params.EndDate)
	}

	err := query.Scan(&total).Error
	return total, err
}
