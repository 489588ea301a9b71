package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/pos"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *GormInvoiceRepository) WithTx(tx *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: tx}
}

// FindByID finds an invoice by ID with its items and payments
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*pos.Invoice, error) {
	var model models.InvoiceModel
	err := r.db.WithContext(ctx).
		Preload("Items", orderItems).
		Preload("Payments", orderPayments).
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate locks the invoice row (SELECT ... FOR UPDATE) and then
// loads its items and payments. Must run inside a transaction.
func (r *GormInvoiceRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*pos.Invoice, error) {
	db := r.db.WithContext(ctx)

	var model models.InvoiceModel
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	if err := orderItems(db.Where("invoice_id = ?", id)).Find(&model.Items).Error; err != nil {
		return nil, err
	}
	if err := orderPayments(db.Where("invoice_id = ?", id)).Find(&model.Payments).Error; err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists invoices with their items and payments, newest first
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]pos.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.InvoiceModel{}), filter)
	query = query.Order(invoiceSort.clause(filter.OrderBy, filter.OrderDir))
	query = paginate(query, filter)

	if err := query.Preload("Items", orderItems).Preload("Payments", orderPayments).Find(&invoiceModels).Error; err != nil {
		return nil, err
	}

	invoices := make([]pos.Invoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = *model.ToDomain()
	}
	return invoices, nil
}

// Count counts invoices matching the filter
func (r *GormInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.InvoiceModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsForAppointment reports whether an invoice already bills the appointment
func (r *GormInvoiceRepository) ExistsForAppointment(ctx context.Context, appointmentID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Where("appointment_id = ?", appointmentID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// LatestInvoiceNo returns the number of the newest invoice, or "" when there is none
func (r *GormInvoiceRepository) LatestInvoiceNo(ctx context.Context) (string, error) {
	var numbers []string
	err := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Order("created_at DESC").
		Limit(1).
		Pluck("invoice_no", &numbers).Error
	if err != nil {
		return "", err
	}
	if len(numbers) == 0 {
		return "", nil
	}
	return numbers[0], nil
}

// Create inserts a new invoice together with any lines and payments it already holds
func (r *GormInvoiceRepository) Create(ctx context.Context, invoice *pos.Invoice) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.InvoiceModelFromDomain(invoice)
		if err := tx.Omit(clause.Associations).Create(model).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return shared.NewDomainError("ALREADY_EXISTS", "An invoice with this number or appointment already exists")
			}
			return err
		}
		return r.insertPending(tx, invoice)
	})
	if err != nil {
		return err
	}
	invoice.MarkPersisted()
	return nil
}

// Save writes totals and status with an optimistic version check, then
// inserts the lines and payments added since the invoice was loaded.
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *pos.Invoice) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.InvoiceModel{}).
			Where("id = ? AND version = ?", invoice.ID, invoice.Version).
			Updates(map[string]any{
				"client_name":  invoice.ClientName,
				"client_email": invoice.ClientEmail,
				"subtotal":     invoice.Subtotal,
				"tax_amount":   invoice.TaxAmount,
				"total":        invoice.Total,
				"amount_paid":  invoice.AmountPaid,
				"status":       invoice.Status,
				"notes":        invoice.Notes,
				"version":      invoice.Version + 1,
				"updated_at":   invoice.UpdatedAt.UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}
		return r.insertPending(tx, invoice)
	})
	if err != nil {
		return err
	}

	invoice.IncrementVersion()
	invoice.MarkPersisted()
	return nil
}

func (r *GormInvoiceRepository) insertPending(tx *gorm.DB, invoice *pos.Invoice) error {
	for _, item := range invoice.PendingItems() {
		if err := tx.Create(models.InvoiceItemModelFromDomain(&item)).Error; err != nil {
			return err
		}
	}
	for _, payment := range invoice.PendingPayments() {
		if err := tx.Create(models.PaymentModelFromDomain(&payment)).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *GormInvoiceRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if status, ok := filter.Filters["status"]; ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if search, ok := filter.Filters["search"].(string); ok && search != "" {
		like := "%" + search + "%"
		query = query.Where("invoice_no LIKE ? OR client_name LIKE ?", like, like)
	}
	return query
}

func orderItems(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

func orderPayments(db *gorm.DB) *gorm.DB {
	return db.Order("paid_at DESC")
}

// Ensure GormInvoiceRepository implements InvoiceRepository
var _ pos.InvoiceRepository = (*GormInvoiceRepository)(nil)
