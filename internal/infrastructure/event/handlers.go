package event

import (
	"context"

	"github.com/shopdesk/backend/internal/domain/pos"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/infrastructure/cache"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var invoiceEventTypes = []string{
	pos.EventTypeInvoiceCreated,
	pos.EventTypeInvoiceItemAdded,
	pos.EventTypePaymentRecorded,
	pos.EventTypeInvoiceVoided,
}

// ReportCacheInvalidator drops cached sales reports whenever an invoice changes.
type ReportCacheInvalidator struct {
	cache  cache.ReportCache
	logger *zap.Logger
}

// NewReportCacheInvalidator creates a handler invalidating reportCache.
func NewReportCacheInvalidator(reportCache cache.ReportCache, logger *zap.Logger) *ReportCacheInvalidator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportCacheInvalidator{cache: reportCache, logger: logger}
}

func (h *ReportCacheInvalidator) EventTypes() []string {
	return invoiceEventTypes
}

func (h *ReportCacheInvalidator) Handle(ctx context.Context, event shared.DomainEvent) error {
	if err := h.cache.Invalidate(ctx); err != nil {
		return err
	}
	h.logger.Debug("report cache invalidated",
		zap.String("event_type", event.EventType()),
		zap.String("invoice_id", event.AggregateID().String()),
	)
	return nil
}

// POSMetricsRecorder is the subset of telemetry.POSMetrics fed from invoice events.
type POSMetricsRecorder interface {
	RecordInvoiceCreated(ctx context.Context)
	RecordItemAdded(ctx context.Context, quantity int)
	RecordPayment(ctx context.Context, method string, amount decimal.Decimal)
	RecordInvoiceVoided(ctx context.Context)
}

// MetricsHandler translates invoice events into business metrics.
type MetricsHandler struct {
	metrics POSMetricsRecorder
}

// NewMetricsHandler creates a handler recording into metrics.
func NewMetricsHandler(metrics POSMetricsRecorder) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

func (h *MetricsHandler) EventTypes() []string {
	return invoiceEventTypes
}

func (h *MetricsHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *pos.InvoiceCreatedEvent:
		h.metrics.RecordInvoiceCreated(ctx)
	case *pos.InvoiceItemAddedEvent:
		h.metrics.RecordItemAdded(ctx, e.Quantity)
	case *pos.PaymentRecordedEvent:
		h.metrics.RecordPayment(ctx, string(e.Method), e.Amount)
	case *pos.InvoiceVoidedEvent:
		h.metrics.RecordInvoiceVoided(ctx)
	}
	return nil
}

var (
	_ shared.EventHandler = (*ReportCacheInvalidator)(nil)
	_ shared.EventHandler = (*MetricsHandler)(nil)
)
