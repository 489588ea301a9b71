package telemetry

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormLedgerMetricsProvider implements LedgerMetricsProvider with aggregate
// queries over the invoices and products tables.
type GormLedgerMetricsProvider struct {
	db *gorm.DB
}

// NewGormLedgerMetricsProvider creates a new GormLedgerMetricsProvider.
func NewGormLedgerMetricsProvider(db *gorm.DB) *GormLedgerMetricsProvider {
	return &GormLedgerMetricsProvider{db: db}
}

var openStatuses = []string{"pending", "partial"}

func (p *GormLedgerMetricsProvider) CountOpenInvoices(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("invoices").
		Where("status IN ?", openStatuses).
		Count(&count).Error
	return count, err
}

func (p *GormLedgerMetricsProvider) OutstandingBalance(ctx context.Context) (decimal.Decimal, error) {
	var rows []struct {
		Balance decimal.Decimal
	}
	err := p.db.WithContext(ctx).
		Table("invoices").
		Select("COALESCE(SUM(total - amount_paid), 0) AS balance").
		Where("status IN ? AND total > amount_paid", openStatuses).
		Scan(&rows).Error
	if err != nil || len(rows) == 0 {
		return decimal.Zero, err
	}
	return rows[0].Balance, nil
}

// CountLowStock ignores products with zero stock; those are not stock-tracked.
func (p *GormLedgerMetricsProvider) CountLowStock(ctx context.Context, threshold int) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("products").
		Where("category = ? AND is_active = ?", "product", true).
		Where("stock_qty > 0 AND stock_qty <= ?", threshold).
		Count(&count).Error
	return count, err
}

var _ LedgerMetricsProvider = (*GormLedgerMetricsProvider)(nil)
