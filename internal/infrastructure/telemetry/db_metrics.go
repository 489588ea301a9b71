package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const metricsStartKey queryStartKey = "db_metrics_start_time"

// DBMetricsConfig holds configuration for database metrics collection.
type DBMetricsConfig struct {
	SlowQueryThreshold time.Duration // default 200ms
}

// DBMetrics is a gorm plugin counting queries by verb and timing them.
// Pool state is observed on each metric collection once ObservePool is
// called.
type DBMetrics struct {
	meter      metric.Meter
	slowAfter  time.Duration
	queries    *Counter
	latency    *Histogram
	slow       *Counter
	poolConns  metric.Int64ObservableGauge
	poolMax    metric.Int64ObservableGauge
	logger     *zap.Logger
	unregister sync.Once
	reg        metric.Registration
}

func NewDBMetrics(meter metric.Meter, cfg DBMetricsConfig, logger *zap.Logger) (*DBMetrics, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &DBMetrics{meter: meter, slowAfter: cfg.SlowQueryThreshold, logger: logger}
	if m.slowAfter <= 0 {
		m.slowAfter = 200 * time.Millisecond
	}

	var errs [5]error
	m.queries, errs[0] = NewCounter(meter, "db_query_total", "Database queries by operation", "{query}")
	m.latency, errs[1] = NewHistogram(meter, HistogramOpts{
		Name:        "db_query_duration_seconds",
		Description: "Database query latency",
		Unit:        "s",
		Boundaries:  DBDurationBuckets,
	})
	m.slow, errs[2] = NewCounter(meter, "db_slow_query_total", "Queries slower than the threshold, by table", "{query}")
	m.poolConns, errs[3] = meter.Int64ObservableGauge("db_pool_connections",
		metric.WithDescription("Connections in the pool by state"), metric.WithUnit("{connection}"))
	m.poolMax, errs[4] = meter.Int64ObservableGauge("db_pool_connections_max",
		metric.WithDescription("Maximum open connections"), metric.WithUnit("{connection}"))
	if err := errors.Join(errs[:]...); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordQuery records one completed query.
func (m *DBMetrics) RecordQuery(ctx context.Context, operation, table string, duration time.Duration) {
	if operation == "" {
		operation = "UNKNOWN"
	}
	op := AttrDBOperation.String(operation)
	m.queries.Inc(ctx, op)
	m.latency.RecordDuration(ctx, duration, op)

	if duration <= m.slowAfter {
		return
	}
	if table == "" {
		table = "unknown"
	}
	m.slow.Inc(ctx, AttrDBTable.String(table))
}

// ObservePool reports sqlDB.Stats through the pool gauges until Stop.
func (m *DBMetrics) ObservePool(sqlDB *sql.DB) error {
	reg, err := m.meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats := sqlDB.Stats()
		o.ObserveInt64(m.poolMax, int64(stats.MaxOpenConnections))
		o.ObserveInt64(m.poolConns, int64(stats.Idle), metric.WithAttributes(AttrDBState.String("idle")))
		o.ObserveInt64(m.poolConns, int64(stats.InUse), metric.WithAttributes(AttrDBState.String("in_use")))
		o.ObserveInt64(m.poolConns, int64(stats.OpenConnections), metric.WithAttributes(AttrDBState.String("open")))
		return nil
	}, m.poolConns, m.poolMax)
	if err != nil {
		return err
	}
	m.reg = reg
	return nil
}

// Stop detaches the pool callback. Safe to call more than once.
func (m *DBMetrics) Stop() {
	m.unregister.Do(func() {
		if m.reg == nil {
			return
		}
		if err := m.reg.Unregister(); err != nil {
			m.logger.Warn("unregister pool metrics", zap.Error(err))
		}
	})
}

func (m *DBMetrics) Name() string {
	return "db_metrics"
}

// Initialize implements gorm.Plugin.
func (m *DBMetrics) Initialize(db *gorm.DB) error {
	return registerCallbacks(db, "db_metrics", stampStart(metricsStartKey), func(verb string) func(*gorm.DB) {
		return func(tx *gorm.DB) {
			op := verb
			if op == "" {
				op = detectOperationType(tx.Statement.SQL.String())
			}
			ctx := tx.Statement.Context
			if ctx == nil {
				ctx = context.Background()
			}
			m.RecordQuery(ctx, op, tx.Statement.Table, elapsedSince(ctx, metricsStartKey))
		}
	})
}

// RegisterDBMetrics installs query metrics on db and observes its pool.
// It returns nil when metrics are not exported.
func RegisterDBMetrics(db *gorm.DB, o *OTel, cfg DBMetricsConfig, logger *zap.Logger) (*DBMetrics, error) {
	if o == nil || !o.MetricsEnabled() {
		return nil, nil
	}

	m, err := NewDBMetrics(o.Meter("db.client"), cfg, logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := db.Use(m); err != nil {
		return nil, err
	}
	if err := m.ObservePool(sqlDB); err != nil {
		return nil, err
	}

	m.logger.Info("Database metrics registered", zap.Duration("slow_query_threshold", m.slowAfter))
	return m, nil
}
