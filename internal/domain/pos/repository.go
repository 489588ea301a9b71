package pos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/shared"
)

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	// FindByID loads an invoice with its items and payments
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindByIDForUpdate loads an invoice and locks its row until the
	// surrounding transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindAll lists invoices, newest first. Filters: "status".
	FindAll(ctx context.Context, filter shared.Filter) ([]Invoice, error)

	// Count counts invoices matching filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsForAppointment reports whether an invoice already bills the appointment
	ExistsForAppointment(ctx context.Context, appointmentID uuid.UUID) (bool, error)

	// LatestInvoiceNo returns the number of the most recently created invoice, or ""
	LatestInvoiceNo(ctx context.Context) (string, error)

	// Create inserts a new invoice
	Create(ctx context.Context, invoice *Invoice) error

	// Save persists totals, status and any pending items and payments.
	// It fails with CONCURRENCY_CONFLICT when the stored version moved on.
	Save(ctx context.Context, invoice *Invoice) error
}

// PaymentFilter narrows the payments listing
type PaymentFilter struct {
	InvoiceID *uuid.UUID
	Page      int
	PageSize  int
}

// PaymentRepository reads recorded payments. Writes go through the invoice.
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindAll(ctx context.Context, filter PaymentFilter) ([]Payment, error)
}

// ProductRepository defines the interface for catalog persistence
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindAll lists products ordered by name. Filters: "category", "is_active".
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	Save(ctx context.Context, product *Product) error

	// DecrementStock atomically takes quantity off the stock of a product.
	// It fails with INSUFFICIENT_STOCK when fewer units are left.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error
}

// Repositories groups the repositories bound to one unit of work
type Repositories struct {
	Invoices InvoiceRepository
	Products ProductRepository
	Sequence InvoiceSequence
}

// UnitOfWork runs fn inside a single transaction. Any error returned by fn
// rolls back everything fn did.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}

// ReportRepository reads the rows sales reports are computed from.
// All bounds are half-open [from, to).
type ReportRepository interface {
	// RevenueEntries returns paid and partial invoices created in range
	RevenueEntries(ctx context.Context, from, to time.Time) ([]RevenueEntry, error)

	// SoldLines returns lines of paid and partial invoices created in range
	SoldLines(ctx context.Context, from, to time.Time) ([]SoldLine, error)

	// PaymentEntries returns payments received in range
	PaymentEntries(ctx context.Context, from, to time.Time) ([]PaymentEntry, error)

	// ExportRows returns every invoice created in range, oldest first
	ExportRows(ctx context.Context, from, to time.Time) ([]ExportRow, error)
}
