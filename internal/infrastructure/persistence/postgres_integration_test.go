//go:build integration

package persistence

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shopdesk/backend/internal/domain/pos"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/testutil/containers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgres_ConcurrentInvoiceNumbering(t *testing.T) {
	db := containers.NewPostgres(t)
	uow := NewGormUnitOfWork(db)

	const creators = 20
	numbers := make([]string, creators)
	var wg sync.WaitGroup
	for i := 0; i < creators; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := uow.Execute(context.Background(), func(repos pos.Repositories) error {
				no, err := repos.Sequence.Next(context.Background())
				if err != nil {
					return err
				}
				inv, err := pos.NewInvoice(no, fmt.Sprintf("Client %d", i), "", dec("0"), testActor.UserID)
				if err != nil {
					return err
				}
				numbers[i] = no
				return repos.Invoices.Create(context.Background(), inv)
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	sort.Strings(numbers)
	for i, no := range numbers {
		assert.Equal(t, pos.FormatInvoiceNumber(int64(i+1)), no)
	}
}

func TestPostgres_SequenceContinuesLegacyNumbering(t *testing.T) {
	db := containers.NewPostgres(t)
	ctx := context.Background()

	legacy := newInvoice(t, "INV-0041")
	require.NoError(t, NewGormInvoiceRepository(db).Create(ctx, legacy))

	var next string
	err := NewGormUnitOfWork(db).Execute(ctx, func(repos pos.Repositories) error {
		var err error
		next, err = repos.Sequence.Next(ctx)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-0042", next)
}

func TestPostgres_ConcurrentStockDecrement(t *testing.T) {
	db := containers.NewPostgres(t)
	product := seedProduct(t, db, "Pomade", "12.50", pos.ProductCategoryProduct, 5)
	repo := NewGormProductRepository(db)

	var sold, rejected int
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.DecrementStock(context.Background(), product.ID, 1)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				sold++
			case errors.Is(err, shared.ErrInsufficientStock):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, sold)
	assert.Equal(t, 7, rejected)

	reloaded, err := repo.FindByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.StockQty)
}

func TestPostgres_ConcurrentPaymentsAreSerialized(t *testing.T) {
	db := containers.NewPostgres(t)
	ctx := context.Background()
	product := seedProduct(t, db, "Haircut", "100.00", pos.ProductCategoryService, 0)
	inv := seedInvoice(t, db, "INV-0001", time.Now().UTC(), []lineIn{{product, 1}})
	uow := NewGormUnitOfWork(db)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := uow.Execute(ctx, func(repos pos.Repositories) error {
				locked, err := repos.Invoices.FindByIDForUpdate(ctx, inv.ID)
				if err != nil {
					return err
				}
				if _, err := locked.RecordPayment(dec("10.00"), pos.PaymentMethodCash, "", testActor); err != nil {
					return err
				}
				return repos.Invoices.Save(ctx, locked)
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	reloaded, err := NewGormInvoiceRepository(db).FindByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Len(t, reloaded.Payments, 10)
	assert.Equal(t, "100.00", reloaded.AmountPaid.StringFixed(2))
	assert.Equal(t, pos.InvoiceStatusPartial, reloaded.Status, "110.00 total with 10% tax")
}
