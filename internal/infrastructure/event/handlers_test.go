package event

import (
	"context"
	"errors"
	"testing"

	"github.com/shopdesk/backend/internal/domain/pos"
	"github.com/shopdesk/backend/internal/infrastructure/cache"
	"github.com/shopdesk/backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func openInvoice(t *testing.T) *pos.Invoice {
	t.Helper()

	inv, err := pos.NewInvoice("INV-0001", "Jane Doe", "", decimal.NewFromInt(10), testutil.TestUserID())
	require.NoError(t, err)
	return inv
}

type failingReportCache struct {
	cache.NopReportCache
}

func (failingReportCache) Invalidate(ctx context.Context) error {
	return errors.New("redis unavailable")
}

func TestReportCacheInvalidator_DropsCachedReports(t *testing.T) {
	reports := cache.NewInMemoryReportCache()
	ctx := context.Background()
	require.NoError(t, reports.Set(ctx, "2024-01-01:2024-01-31", map[string]string{"revenue_today": "150.00"}, 0))

	bus := NewInMemoryEventBus(zap.NewNop())
	bus.Subscribe(NewReportCacheInvalidator(reports, nil))

	require.NoError(t, bus.Publish(ctx, pos.NewInvoiceVoidedEvent(openInvoice(t))))

	var cached map[string]string
	found, err := reports.Get(ctx, "2024-01-01:2024-01-31", &cached)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestReportCacheInvalidator_SubscribesToInvoiceEvents(t *testing.T) {
	h := NewReportCacheInvalidator(cache.NopReportCache{}, zap.NewNop())
	assert.ElementsMatch(t, []string{
		pos.EventTypeInvoiceCreated,
		pos.EventTypeInvoiceItemAdded,
		pos.EventTypePaymentRecorded,
		pos.EventTypeInvoiceVoided,
	}, h.EventTypes())
}

func TestReportCacheInvalidator_PropagatesCacheError(t *testing.T) {
	h := NewReportCacheInvalidator(failingReportCache{}, zap.NewNop())
	err := h.Handle(context.Background(), pos.NewInvoiceCreatedEvent(openInvoice(t)))
	assert.EqualError(t, err, "redis unavailable")
}

type recordedMetrics struct {
	created  int
	units    int
	payments map[string]decimal.Decimal
	voided   int
}

func (m *recordedMetrics) RecordInvoiceCreated(ctx context.Context) { m.created++ }

func (m *recordedMetrics) RecordItemAdded(ctx context.Context, quantity int) { m.units += quantity }

func (m *recordedMetrics) RecordPayment(ctx context.Context, method string, amount decimal.Decimal) {
	if m.payments == nil {
		m.payments = make(map[string]decimal.Decimal)
	}
	m.payments[method] = m.payments[method].Add(amount)
}

func (m *recordedMetrics) RecordInvoiceVoided(ctx context.Context) { m.voided++ }

func TestMetricsHandler_RecordsInvoiceLifecycle(t *testing.T) {
	metrics := &recordedMetrics{}
	bus := NewInMemoryEventBus(zap.NewNop())
	bus.Subscribe(NewMetricsHandler(metrics))

	inv := openInvoice(t)
	product, err := pos.NewProduct("Shampoo", "", decimal.RequireFromString("12.50"), pos.ProductCategoryProduct, 10)
	require.NoError(t, err)
	item, err := inv.AddItem(product, 3)
	require.NoError(t, err)
	payment, err := inv.RecordPayment(decimal.RequireFromString("20.00"), pos.PaymentMethodCard, "", pos.Actor{UserID: testutil.TestUserID()})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx,
		pos.NewInvoiceCreatedEvent(inv),
		pos.NewInvoiceItemAddedEvent(inv, item),
		pos.NewPaymentRecordedEvent(inv, payment),
		pos.NewInvoiceVoidedEvent(inv),
		newTestEvent("Unrelated"),
	))

	assert.Equal(t, 1, metrics.created)
	assert.Equal(t, 3, metrics.units)
	assert.True(t, decimal.RequireFromString("20.00").Equal(metrics.payments["card"]))
	assert.Equal(t, 1, metrics.voided)
}
