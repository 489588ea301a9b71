package persistence

import (
	"context"
	"fmt"

	"github.com/shopdesk/backend/internal/domain/pos"
	"github.com/shopdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInvoiceSequence allocates invoice numbers from a counter row.
//
// The increment is a single UPDATE, so the row stays locked until the
// calling transaction commits or rolls back. A rollback returns the number
// to the pool, which keeps the sequence free of gaps.
type GormInvoiceSequence struct {
	db   *gorm.DB
	name string
}

// NewGormInvoiceSequence creates the sequence used for invoice numbers
func NewGormInvoiceSequence(db *gorm.DB) *GormInvoiceSequence {
	return &GormInvoiceSequence{db: db, name: pos.InvoiceSequenceName}
}

// WithTx returns a sequence bound to the given transaction
func (s *GormInvoiceSequence) WithTx(tx *gorm.DB) *GormInvoiceSequence {
	return &GormInvoiceSequence{db: tx, name: s.name}
}

// Next returns the next invoice number
func (s *GormInvoiceSequence) Next(ctx context.Context) (string, error) {
	db := s.db.WithContext(ctx)

	ok, err := s.increment(db)
	if err != nil {
		return "", err
	}
	if !ok {
		// First use: continue from the newest stored number
		if err := s.seed(ctx, db); err != nil {
			return "", err
		}
		if ok, err = s.increment(db); err != nil {
			return "", err
		}
		if !ok {
			return "", fmt.Errorf("invoice sequence %q could not be initialized", s.name)
		}
	}

	var value int64
	err = db.Model(&models.InvoiceSequenceModel{}).
		Where("name = ?", s.name).
		Select("last_value").
		Scan(&value).Error
	if err != nil {
		return "", err
	}
	return pos.FormatInvoiceNumber(value), nil
}

func (s *GormInvoiceSequence) increment(db *gorm.DB) (bool, error) {
	result := db.Model(&models.InvoiceSequenceModel{}).
		Where("name = ?", s.name).
		Update("last_value", gorm.Expr("last_value + 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *GormInvoiceSequence) seed(ctx context.Context, db *gorm.DB) error {
	latest, err := NewGormInvoiceRepository(db).LatestInvoiceNo(ctx)
	if err != nil {
		return err
	}
	start := pos.ParseInvoiceNumber(latest)

	// Concurrent first callers race here; the loser's insert is a no-op
	return db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.InvoiceSequenceModel{Name: s.name, LastValue: start}).Error
}

// Ensure GormInvoiceSequence implements InvoiceSequence
var _ pos.InvoiceSequence = (*GormInvoiceSequence)(nil)
