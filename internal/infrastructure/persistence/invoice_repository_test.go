package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/shopdesk/backend/internal/domain/pos"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormInvoiceRepository_CreateAndFind(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	haircut := seedProduct(t, db, "Haircut", "25.00", pos.ProductCategoryService, 0)

	inv := newInvoice(t, "INV-0001")
	_, err := inv.AddItem(haircut, 2)
	require.NoError(t, err)
	_, err = inv.RecordPayment(dec("20"), pos.PaymentMethodCash, "", testActor)
	require.NoError(t, err)

	require.NoError(t, repo.Create(ctx, inv))
	assert.Empty(t, inv.PendingItems())
	assert.Empty(t, inv.PendingPayments())

	found, err := repo.FindByID(ctx, inv.ID)
	require.NoError(t, err)

	assert.Equal(t, "INV-0001", found.InvoiceNo)
	assert.Equal(t, pos.InvoiceStatusPartial, found.Status)
	assert.True(t, found.Subtotal.Equal(dec("50.00")))
	assert.True(t, found.TaxAmount.Equal(dec("5.00")))
	assert.True(t, found.Total.Equal(dec("55.00")))
	assert.True(t, found.AmountPaid.Equal(dec("20.00")))
	require.Len(t, found.Items, 1)
	assert.Equal(t, "Haircut", found.Items[0].Description)
	assert.Equal(t, 2, found.Items[0].Quantity)
	require.Len(t, found.Payments, 1)
	assert.Equal(t, "Front Desk", found.Payments[0].RecordedByName)
	assert.Equal(t, 1, found.Version)
}

func TestGormInvoiceRepository_FindByID_NotFound(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewGormInvoiceRepository(db)

	_, err := repo.FindByID(context.Background(), testutil.NewTestUUID("missing"))

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormInvoiceRepository_Save(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	shampoo := seedProduct(t, db, "Shampoo", "12.50", pos.ProductCategoryProduct, 10)
	inv := newInvoice(t, "INV-0001")
	require.NoError(t, repo.Create(ctx, inv))

	t.Run("appends new lines and payments and bumps the version", func(t *testing.T) {
		loaded, err := repo.FindByIDForUpdate(ctx, inv.ID)
		require.NoError(t, err)

		_, err = loaded.AddItem(shampoo, 2)
		require.NoError(t, err)
		_, err = loaded.RecordPayment(dec("27.50"), pos.PaymentMethodCard, "AUTH-1", testActor)
		require.NoError(t, err)

		require.NoError(t, repo.Save(ctx, loaded))
		assert.Equal(t, 2, loaded.Version)

		stored, err := repo.FindByID(ctx, inv.ID)
		require.NoError(t, err)
		assert.Equal(t, pos.InvoiceStatusPaid, stored.Status)
		assert.True(t, stored.Total.Equal(dec("27.50")))
		assert.Len(t, stored.Items, 1)
		assert.Len(t, stored.Payments, 1)
		assert.Equal(t, "AUTH-1", stored.Payments[0].Reference)
		assert.Equal(t, 2, stored.Version)
	})

	t.Run("stale copy fails with a concurrency conflict", func(t *testing.T) {
		stale, err := repo.FindByID(ctx, inv.ID)
		require.NoError(t, err)
		fresh, err := repo.FindByID(ctx, inv.ID)
		require.NoError(t, err)

		fresh.SetNotes("first writer")
		require.NoError(t, repo.Save(ctx, fresh))

		_, err = stale.RecordPayment(dec("1"), pos.PaymentMethodCash, "", testActor)
		require.NoError(t, err)
		err = repo.Save(ctx, stale)

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

		stored, err := repo.FindByID(ctx, inv.ID)
		require.NoError(t, err)
		assert.Len(t, stored.Payments, 1, "payment of the rejected save must not be stored")
		assert.Equal(t, "first writer", stored.Notes)
	})
}

func TestGormInvoiceRepository_AppointmentUniqueness(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	staff := seedStaff(t, db, "Alex Smith")
	appt := seedAppointment(t, db, staff, time.Date(2026, 3, 18, 10, 0, 0, 0, time.UTC))

	exists, err := repo.ExistsForAppointment(ctx, appt.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	first := newInvoice(t, "INV-0001")
	first.LinkAppointment(appt.ID)
	require.NoError(t, repo.Create(ctx, first))

	exists, err = repo.ExistsForAppointment(ctx, appt.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	second := newInvoice(t, "INV-0002")
	second.LinkAppointment(appt.ID)
	err = repo.Create(ctx, second)

	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestGormInvoiceRepository_FindAllAndCount(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	color := seedProduct(t, db, "Color", "80.00", pos.ProductCategoryService, 0)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	seedInvoice(t, db, "INV-0001", base, []lineIn{{color, 1}}, payIn{amount: "88.00", method: pos.PaymentMethodCash})
	seedInvoice(t, db, "INV-0002", base.Add(time.Hour), []lineIn{{color, 1}})
	seedInvoice(t, db, "INV-0003", base.Add(2*time.Hour), nil)

	all, err := repo.FindAll(ctx, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "INV-0003", all[0].InvoiceNo, "newest first")

	filter := shared.DefaultFilter()
	filter.Filters["status"] = string(pos.InvoiceStatusPaid)
	paid, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, paid, 1)
	assert.Equal(t, "INV-0001", paid[0].InvoiceNo)
	assert.Len(t, paid[0].Payments, 1)

	count, err := repo.Count(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	latest, err := repo.LatestInvoiceNo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV-0003", latest)
}

func TestGormInvoiceRepository_LatestInvoiceNo_Empty(t *testing.T) {
	db := testutil.NewSQLiteDB(t)

	latest, err := NewGormInvoiceRepository(db).LatestInvoiceNo(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "", latest)
}
