package persistence

import (
	"context"

	"github.com/shopdesk/backend/internal/domain/pos"
	"gorm.io/gorm"
)

// GormUnitOfWork runs point-of-sale writes inside one database transaction
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewGormUnitOfWork creates a new GormUnitOfWork
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// Execute calls fn with repositories bound to a fresh transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
func (u *GormUnitOfWork) Execute(ctx context.Context, fn func(repos pos.Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(pos.Repositories{
			Invoices: NewGormInvoiceRepository(tx),
			Products: NewGormProductRepository(tx),
			Sequence: NewGormInvoiceSequence(tx),
		})
	})
}

// Ensure GormUnitOfWork implements UnitOfWork
var _ pos.UnitOfWork = (*GormUnitOfWork)(nil)
