package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopdesk/backend/internal/domain/pos"
	"github.com/shopdesk/backend/internal/infrastructure/persistence/models"
	"github.com/shopdesk/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormInvoiceSequence_Next(t *testing.T) {
	t.Run("starts at INV-0001 and counts up", func(t *testing.T) {
		db := testutil.NewSQLiteDB(t)
		seq := NewGormInvoiceSequence(db)
		ctx := context.Background()

		first, err := seq.Next(ctx)
		require.NoError(t, err)
		second, err := seq.Next(ctx)
		require.NoError(t, err)

		assert.Equal(t, "INV-0001", first)
		assert.Equal(t, "INV-0002", second)
	})

	t.Run("continues after the newest stored invoice", func(t *testing.T) {
		db := testutil.NewSQLiteDB(t)
		require.NoError(t, NewGormInvoiceRepository(db).Create(context.Background(), newInvoice(t, "INV-0041")))

		next, err := NewGormInvoiceSequence(db).Next(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "INV-0042", next)
	})

	t.Run("unparseable latest number restarts at one", func(t *testing.T) {
		db := testutil.NewSQLiteDB(t)
		require.NoError(t, NewGormInvoiceRepository(db).Create(context.Background(), newInvoice(t, "LEGACY-7")))

		next, err := NewGormInvoiceSequence(db).Next(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "INV-0001", next)
	})

	t.Run("numbers grow past four digits", func(t *testing.T) {
		db := testutil.NewSQLiteDB(t)
		require.NoError(t, db.Create(&models.InvoiceSequenceModel{Name: pos.InvoiceSequenceName, LastValue: 9999}).Error)

		next, err := NewGormInvoiceSequence(db).Next(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "INV-10000", next)
	})
}

func TestGormInvoiceSequence_RollbackReleasesNumber(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	uow := NewGormUnitOfWork(db)
	ctx := context.Background()
	errAbort := errors.New("abort")

	var abandoned string
	err := uow.Execute(ctx, func(repos pos.Repositories) error {
		n, err := repos.Sequence.Next(ctx)
		require.NoError(t, err)
		abandoned = n
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	var reused string
	err = uow.Execute(ctx, func(repos pos.Repositories) error {
		n, err := repos.Sequence.Next(ctx)
		reused = n
		return err
	})
	require.NoError(t, err)

	assert.Equal(t, "INV-0001", abandoned)
	assert.Equal(t, abandoned, reused)
}

func TestGormInvoiceSequence_SQL(t *testing.T) {
	t.Run("increments the counter row in place", func(t *testing.T) {
		mdb := testutil.NewMockDB(t)
		seq := NewGormInvoiceSequence(mdb.DB)

		mdb.Mock.ExpectExec(`UPDATE "invoice_sequences" SET "last_value"=last_value \+ 1 WHERE name = \$1`).
			WithArgs("invoices").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mdb.Mock.ExpectQuery(`SELECT "?last_value"? FROM "invoice_sequences" WHERE name = \$1`).
			WithArgs("invoices").
			WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(7))

		next, err := seq.Next(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "INV-0007", next)
		mdb.ExpectationsWereMet(t)
	})

	t.Run("seeds a missing counter row before incrementing", func(t *testing.T) {
		mdb := testutil.NewMockDB(t)
		seq := NewGormInvoiceSequence(mdb.DB)

		mdb.Mock.ExpectExec(`UPDATE "invoice_sequences"`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mdb.Mock.ExpectQuery(`SELECT "invoice_no" FROM "invoices" ORDER BY created_at DESC`).
			WillReturnRows(sqlmock.NewRows([]string{"invoice_no"}).AddRow("INV-0012"))
		mdb.Mock.ExpectExec(`INSERT INTO "invoice_sequences" .* ON CONFLICT DO NOTHING`).
			WithArgs("invoices", 12).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mdb.Mock.ExpectExec(`UPDATE "invoice_sequences"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mdb.Mock.ExpectQuery(`SELECT "?last_value"? FROM "invoice_sequences"`).
			WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(13))

		next, err := seq.Next(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "INV-0013", next)
		mdb.ExpectationsWereMet(t)
	})

	t.Run("propagates database errors", func(t *testing.T) {
		mdb := testutil.NewMockDB(t)
		seq := NewGormInvoiceSequence(mdb.DB)

		mdb.Mock.ExpectExec(`UPDATE "invoice_sequences"`).WillReturnError(assert.AnError)

		_, err := seq.Next(context.Background())

		assert.Error(t, err)
		mdb.ExpectationsWereMet(t)
	})
}
