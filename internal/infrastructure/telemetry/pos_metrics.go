package telemetry

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ErrMeterNil is returned when POS metrics are built without a meter.
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// LedgerMetricsProvider supplies point-in-time ledger figures for the gauges.
type LedgerMetricsProvider interface {
	// CountOpenInvoices counts invoices that still expect money (pending or partial).
	CountOpenInvoices(ctx context.Context) (int64, error)
	// OutstandingBalance sums total - amount_paid over open invoices.
	OutstandingBalance(ctx context.Context) (decimal.Decimal, error)
	// CountLowStock counts active stock-tracked products at or below threshold units.
	CountLowStock(ctx context.Context, threshold int) (int64, error)
}

// POSMetricsConfig holds configuration for POS metrics.
type POSMetricsConfig struct {
	Meter             metric.Meter
	Logger            *zap.Logger
	Provider          LedgerMetricsProvider
	LowStockThreshold int // default 5
}

// POSMetrics records invoicing and payment activity.
type POSMetrics struct {
	logger *zap.Logger

	invoicesCreated  *Counter
	itemsAdded       *Counter
	paymentsTotal    *Counter
	paymentAmount    *Counter
	stockRejections  *Counter
	invoicesVoided   *Counter
	openInvoices     *Gauge
	outstandingCents *Gauge
	lowStockProducts *Gauge

	provider          LedgerMetricsProvider
	lowStockThreshold int
	stopChan          chan struct{}
	stopOnce          sync.Once
	collectOnce       sync.Once
}

// NewPOSMetrics creates the POS instruments.
func NewPOSMetrics(cfg POSMetricsConfig) (*POSMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	threshold := cfg.LowStockThreshold
	if threshold <= 0 {
		threshold = 5
	}

	pm := &POSMetrics{
		logger:            logger,
		provider:          cfg.Provider,
		lowStockThreshold: threshold,
		stopChan:          make(chan struct{}),
	}

	var err error
	if pm.invoicesCreated, err = NewCounter(cfg.Meter, "shopdesk_invoices_created_total", "Invoices opened", "{invoice}"); err != nil {
		return nil, err
	}
	if pm.itemsAdded, err = NewCounter(cfg.Meter, "shopdesk_invoice_items_total", "Units added to invoices", "{unit}"); err != nil {
		return nil, err
	}
	if pm.paymentsTotal, err = NewCounter(cfg.Meter, "shopdesk_payments_total", "Payments recorded by method", "{payment}"); err != nil {
		return nil, err
	}
	if pm.paymentAmount, err = NewCounter(cfg.Meter, "shopdesk_payment_amount_cents_total", "Money received by method, in cents", "{cent}"); err != nil {
		return nil, err
	}
	if pm.stockRejections, err = NewCounter(cfg.Meter, "shopdesk_stock_rejections_total", "Line items refused for insufficient stock", "{item}"); err != nil {
		return nil, err
	}
	if pm.invoicesVoided, err = NewCounter(cfg.Meter, "shopdesk_invoices_voided_total", "Invoices voided", "{invoice}"); err != nil {
		return nil, err
	}
	if pm.openInvoices, err = NewGauge(cfg.Meter, "shopdesk_open_invoices", "Invoices in pending or partial status", "{invoice}"); err != nil {
		return nil, err
	}
	if pm.outstandingCents, err = NewGauge(cfg.Meter, "shopdesk_outstanding_balance_cents", "Unpaid balance of open invoices, in cents", "{cent}"); err != nil {
		return nil, err
	}
	if pm.lowStockProducts, err = NewGauge(cfg.Meter, "shopdesk_low_stock_products", "Stock-tracked products at or below the low stock threshold", "{product}"); err != nil {
		return nil, err
	}
	return pm, nil
}

func (pm *POSMetrics) RecordInvoiceCreated(ctx context.Context) {
	pm.invoicesCreated.Inc(ctx)
}

func (pm *POSMetrics) RecordItemAdded(ctx context.Context, quantity int) {
	pm.itemsAdded.Add(ctx, int64(quantity))
}

// RecordPayment counts one payment and adds its amount in cents.
func (pm *POSMetrics) RecordPayment(ctx context.Context, method string, amount decimal.Decimal) {
	pm.paymentsTotal.Inc(ctx, AttrPaymentMethod.String(method))
	pm.paymentAmount.Add(ctx, amount.Shift(2).Round(0).IntPart(), AttrPaymentMethod.String(method))
}

func (pm *POSMetrics) RecordStockRejection(ctx context.Context) {
	pm.stockRejections.Inc(ctx)
}

func (pm *POSMetrics) RecordInvoiceVoided(ctx context.Context) {
	pm.invoicesVoided.Inc(ctx)
}

// StartPeriodicCollection samples the ledger gauges every interval
// (default 5 minutes) until Stop or ctx is done.
func (pm *POSMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	if pm.provider == nil {
		return
	}
	pm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}
		go pm.runPeriodicCollection(ctx, interval)
	})
}

func (pm *POSMetrics) runPeriodicCollection(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	pm.CollectLedgerMetrics(ctx)
	for {
		select {
		case <-pm.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			pm.CollectLedgerMetrics(ctx)
		}
	}
}

// CollectLedgerMetrics records the gauges once. Provider failures are logged
// and leave the previous gauge value in place.
func (pm *POSMetrics) CollectLedgerMetrics(ctx context.Context) {
	if pm.provider == nil {
		return
	}

	if n, err := pm.provider.CountOpenInvoices(ctx); err != nil {
		pm.logger.Warn("Failed to count open invoices", zap.Error(err))
	} else {
		pm.openInvoices.Record(ctx, n)
	}

	if balance, err := pm.provider.OutstandingBalance(ctx); err != nil {
		pm.logger.Warn("Failed to sum outstanding balance", zap.Error(err))
	} else {
		pm.outstandingCents.Record(ctx, balance.Shift(2).Round(0).IntPart())
	}

	if n, err := pm.provider.CountLowStock(ctx, pm.lowStockThreshold); err != nil {
		pm.logger.Warn("Failed to count low stock products", zap.Error(err))
	} else {
		pm.lowStockProducts.Record(ctx, n)
	}
}

// Stop stops the periodic collection.
func (pm *POSMetrics) Stop() {
	pm.stopOnce.Do(func() {
		close(pm.stopChan)
	})
}
