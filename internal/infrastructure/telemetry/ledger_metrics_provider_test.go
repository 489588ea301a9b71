package telemetry

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/pos"
	"github.com/shopdesk/backend/internal/infrastructure/persistence/models"
	"github.com/shopdesk/backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func insertInvoice(t *testing.T, db *gorm.DB, no, status, total, paid string) {
	t.Helper()

	m := models.InvoiceModel{
		InvoiceNo:  no,
		ClientName: "Jane Doe",
		Total:      decimal.RequireFromString(total),
		AmountPaid: decimal.RequireFromString(paid),
		CreatedBy:  testutil.TestUserID(),
	}
	m.ID = uuid.New()
	m.Version = 1
	m.Status = pos.InvoiceStatus(status)
	require.NoError(t, db.Omit("Items", "Payments").Create(&m).Error)
}

func insertProduct(t *testing.T, db *gorm.DB, name, category string, stock int, active bool) {
	t.Helper()

	m := models.ProductModel{
		Name:     name,
		Price:    decimal.RequireFromString("10.00"),
		Category: pos.ProductCategory(category),
		StockQty: stock,
		IsActive: true,
	}
	m.ID = uuid.New()
	require.NoError(t, db.Create(&m).Error)
	if !active {
		require.NoError(t, db.Model(&m).Update("is_active", false).Error)
	}
}

func TestGormLedgerMetricsProvider(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()

	insertInvoice(t, db, "INV-0001", "pending", "110.00", "0.00")
	insertInvoice(t, db, "INV-0002", "partial", "220.00", "50.00")
	insertInvoice(t, db, "INV-0003", "paid", "80.00", "80.00")
	insertInvoice(t, db, "INV-0004", "draft", "0.00", "0.00")
	insertInvoice(t, db, "INV-0005", "void", "40.00", "0.00")

	insertProduct(t, db, "Shampoo", "product", 3, true)
	insertProduct(t, db, "Conditioner", "product", 5, true)
	insertProduct(t, db, "Hair Gel", "product", 20, true)
	insertProduct(t, db, "Comb", "product", 0, true)
	insertProduct(t, db, "Old Wax", "product", 1, false)
	insertProduct(t, db, "Haircut", "service", 0, true)

	provider := NewGormLedgerMetricsProvider(db)

	open, err := provider.CountOpenInvoices(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), open)

	balance, err := provider.OutstandingBalance(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("280.00").Equal(balance), "got %s", balance)

	low, err := provider.CountLowStock(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(2), low)
}

func TestGormLedgerMetricsProvider_EmptyLedger(t *testing.T) {
	provider := NewGormLedgerMetricsProvider(testutil.NewSQLiteDB(t))

	balance, err := provider.OutstandingBalance(context.Background())
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}
