package persistence

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/pos"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormReportRepository implements ReportRepository using GORM.
// It selects the rows a report needs; figures are computed by the pos package.
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

func revenueStatuses() []string {
	statuses := pos.RevenueStatuses()
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}

// RevenueEntries returns paid and partial invoices created in [from, to)
func (r *GormReportRepository) RevenueEntries(ctx context.Context, from, to time.Time) ([]pos.RevenueEntry, error) {
	var rows []struct {
		CreatedAt  time.Time
		AmountPaid decimal.Decimal
	}

	err := r.db.WithContext(ctx).Table("invoices").
		Select("created_at, amount_paid").
		Where("status IN ?", revenueStatuses()).
		Where("created_at >= ? AND created_at < ?", from.UTC(), to.UTC()).
		Order("created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	entries := make([]pos.RevenueEntry, len(rows))
	for i, row := range rows {
		entries[i] = pos.RevenueEntry{CreatedAt: row.CreatedAt.UTC(), AmountPaid: row.AmountPaid}
	}
	return entries, nil
}

// SoldLines returns the lines of paid and partial invoices created in [from, to)
func (r *GormReportRepository) SoldLines(ctx context.Context, from, to time.Time) ([]pos.SoldLine, error) {
	var rows []struct {
		Description string
		LineTotal   decimal.Decimal
	}

	err := r.db.WithContext(ctx).Table("invoice_items ii").
		Select("ii.description, ii.line_total").
		Joins("JOIN invoices i ON i.id = ii.invoice_id").
		Where("i.status IN ?", revenueStatuses()).
		Where("i.created_at >= ? AND i.created_at < ?", from.UTC(), to.UTC()).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	lines := make([]pos.SoldLine, len(rows))
	for i, row := range rows {
		lines[i] = pos.SoldLine{Description: row.Description, LineTotal: row.LineTotal}
	}
	return lines, nil
}

// PaymentEntries returns payments received in [from, to)
func (r *GormReportRepository) PaymentEntries(ctx context.Context, from, to time.Time) ([]pos.PaymentEntry, error) {
	var rows []struct {
		Method pos.PaymentMethod
		Amount decimal.Decimal
		PaidAt time.Time
	}

	err := r.db.WithContext(ctx).Table("payments").
		Select("method, amount, paid_at").
		Where("paid_at >= ? AND paid_at < ?", from.UTC(), to.UTC()).
		Order("paid_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	entries := make([]pos.PaymentEntry, len(rows))
	for i, row := range rows {
		entries[i] = pos.PaymentEntry{Method: row.Method, Amount: row.Amount, PaidAt: row.PaidAt.UTC()}
	}
	return entries, nil
}

// ExportRows returns every invoice created in [from, to), oldest first,
// with the distinct methods it was paid with
func (r *GormReportRepository) ExportRows(ctx context.Context, from, to time.Time) ([]pos.ExportRow, error) {
	var invoices []struct {
		ID         uuid.UUID
		InvoiceNo  string
		ClientName string
		CreatedAt  time.Time
		Total      decimal.Decimal
		AmountPaid decimal.Decimal
		Status     pos.InvoiceStatus
	}

	db := r.db.WithContext(ctx)
	err := db.Table("invoices").
		Select("id, invoice_no, client_name, created_at, total, amount_paid, status").
		Where("created_at >= ? AND created_at < ?", from.UTC(), to.UTC()).
		Order("created_at ASC, invoice_no ASC").
		Scan(&invoices).Error
	if err != nil {
		return nil, err
	}
	if len(invoices) == 0 {
		return []pos.ExportRow{}, nil
	}

	// Joined on the same bounds so the bind count stays fixed however wide the range
	var methods []struct {
		InvoiceID uuid.UUID
		Method    pos.PaymentMethod
	}
	err = db.Table("payments").
		Distinct("payments.invoice_id", "payments.method").
		Joins("JOIN invoices ON invoices.id = payments.invoice_id").
		Where("invoices.created_at >= ? AND invoices.created_at < ?", from.UTC(), to.UTC()).
		Scan(&methods).Error
	if err != nil {
		return nil, err
	}

	byInvoice := make(map[uuid.UUID][]pos.PaymentMethod)
	for _, m := range methods {
		byInvoice[m.InvoiceID] = append(byInvoice[m.InvoiceID], m.Method)
	}

	rows := make([]pos.ExportRow, len(invoices))
	for i, inv := range invoices {
		used := byInvoice[inv.ID]
		slices.Sort(used)
		rows[i] = pos.ExportRow{
			InvoiceNo:  inv.InvoiceNo,
			ClientName: inv.ClientName,
			CreatedAt:  inv.CreatedAt.UTC(),
			Total:      inv.Total,
			AmountPaid: inv.AmountPaid,
			Status:     inv.Status,
			Methods:    used,
		}
	}
	return rows, nil
}

// Ensure GormReportRepository implements ReportRepository
var _ pos.ReportRepository = (*GormReportRepository)(nil)
