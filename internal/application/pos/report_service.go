package pos

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/shopdesk/backend/internal/domain/pos"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ReportCache stores rendered reports between requests
type ReportCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Generation(ctx context.Context) (int64, error)
}

// ReportServiceConfig holds the reporting settings
type ReportServiceConfig struct {
	// Location defines the calendar days reports are computed in. Default: UTC
	Location *time.Location
	// DefaultDays is the length of the range used when none is given. Default: 30
	DefaultDays int
	// CacheTTL is how long a rendered report is reused. Zero disables caching.
	CacheTTL time.Duration
}

// ReportService computes sales reports and CSV exports
type ReportService struct {
	reportRepo pos.ReportRepository
	cache      ReportCache
	config     ReportServiceConfig
	logger     *zap.Logger
	now        func() time.Time
}

// NewReportService creates a new ReportService. cache may be nil.
func NewReportService(reportRepo pos.ReportRepository, cache ReportCache, cfg ReportServiceConfig, logger *zap.Logger) *ReportService {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.DefaultDays <= 0 {
		cfg.DefaultDays = pos.DefaultReportDays
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		reportRepo: reportRepo,
		cache:      cache,
		config:     cfg,
		logger:     logger,
		now:        time.Now,
	}
}

// GetSalesReport returns revenue figures, the daily revenue series, the top
// services and the payment method breakdown
func (s *ReportService) GetSalesReport(ctx context.Context, query SalesReportQuery) (*SalesReportResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "report", "sales")
	defer span.End()

	today := pos.StartOfDay(s.now().In(s.config.Location))
	rng, err := s.resolveRange(query, today)
	if err != nil {
		return nil, err
	}

	gen, cacheable := s.cacheGeneration(ctx)
	cacheKey := fmt.Sprintf("sales:%d:%s:%s:%s", gen, rng.FromString(), rng.ToString(), today.Format(pos.DateLayout))
	if cacheable {
		if cached, ok := s.cachedReport(ctx, cacheKey); ok {
			telemetry.AddEvent(span, "cache_hit")
			return cached, nil
		}
	}

	tomorrow := today.AddDate(0, 0, 1)
	weekStart := pos.StartOfWeek(today)
	monthStart := pos.StartOfMonth(today)
	seriesStart := today.AddDate(0, 0, -(pos.DefaultReportDays - 1))
	earliest := seriesStart
	for _, t := range []time.Time{weekStart, monthStart} {
		if t.Before(earliest) {
			earliest = t
		}
	}

	revenue, err := s.reportRepo.RevenueEntries(ctx, earliest.UTC(), tomorrow.UTC())
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	from, to := rng.Bounds()
	lines, err := s.reportRepo.SoldLines(ctx, from, to)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	payments, err := s.reportRepo.PaymentEntries(ctx, from, to)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	report := &SalesReportResponse{
		From:             rng.FromString(),
		To:               rng.ToString(),
		RevenueToday:     pos.SumRevenue(revenue, today, tomorrow),
		RevenueThisWeek:  pos.SumRevenue(revenue, weekStart, tomorrow),
		RevenueThisMonth: pos.SumRevenue(revenue, monthStart, tomorrow),
		DailyRevenue:     pos.DailyRevenueSeries(revenue, today, pos.DefaultReportDays),
		TopServices:      pos.RankServices(lines, pos.TopServicesLimit),
		PaymentBreakdown: pos.BreakdownByMethod(payments),
	}

	if cacheable {
		s.storeReport(ctx, cacheKey, gen, report)
	}
	return report, nil
}

// ExportSalesCSV renders every invoice created in the range as CSV
func (s *ReportService) ExportSalesCSV(ctx context.Context, query SalesReportQuery) (*SalesExport, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "report", "export_csv")
	defer span.End()

	today := pos.StartOfDay(s.now().In(s.config.Location))
	rng, err := s.resolveRange(query, today)
	if err != nil {
		return nil, err
	}

	from, to := rng.Bounds()
	rows, err := s.reportRepo.ExportRows(ctx, from, to)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	var buf bytes.Buffer
	if err := WriteSalesCSV(&buf, rows, s.config.Location); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to render sales csv: %w", err)
	}

	s.logger.Debug("sales csv exported",
		zap.String("from", rng.FromString()),
		zap.String("to", rng.ToString()),
		zap.Int("rows", len(rows)),
	)
	return &SalesExport{
		Filename: fmt.Sprintf("sales-report-%s-to-%s.csv", rng.FromString(), rng.ToString()),
		Content:  buf.Bytes(),
	}, nil
}

// cacheGeneration reports the current cache generation, and false when
// caching is off or the generation cannot be read.
func (s *ReportService) cacheGeneration(ctx context.Context) (int64, bool) {
	if s.cache == nil || s.config.CacheTTL <= 0 {
		return 0, false
	}
	gen, err := s.cache.Generation(ctx)
	if err != nil {
		s.logger.Warn("failed to read report cache generation", zap.Error(err))
		return 0, false
	}
	return gen, true
}

// storeReport caches report unless an invoice changed while it was computed
func (s *ReportService) storeReport(ctx context.Context, key string, gen int64, report *SalesReportResponse) {
	if current, ok := s.cacheGeneration(ctx); !ok || current != gen {
		s.logger.Debug("sales report not cached, invalidated during computation", zap.String("key", key))
		return
	}
	if err := s.cache.Set(ctx, key, report, s.config.CacheTTL); err != nil {
		s.logger.Warn("failed to cache sales report", zap.String("key", key), zap.Error(err))
	}
}

func (s *ReportService) cachedReport(ctx context.Context, key string) (*SalesReportResponse, bool) {
	var report SalesReportResponse
	hit, err := s.cache.Get(ctx, key, &report)
	if err != nil {
		s.logger.Warn("failed to read cached sales report", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if !hit {
		return nil, false
	}
	return &report, true
}

// resolveRange parses the query dates in the report location. Missing dates
// default to DefaultDays ago and today.
func (s *ReportService) resolveRange(query SalesReportQuery, today time.Time) (pos.DateRange, error) {
	from := today.AddDate(0, 0, -s.config.DefaultDays)
	to := today

	if query.From != "" {
		parsed, err := time.ParseInLocation(pos.DateLayout, query.From, s.config.Location)
		if err != nil {
			return pos.DateRange{}, shared.NewDomainError("INVALID_INPUT", "Invalid 'from' date, expected YYYY-MM-DD")
		}
		from = parsed
	}
	if query.To != "" {
		parsed, err := time.ParseInLocation(pos.DateLayout, query.To, s.config.Location)
		if err != nil {
			return pos.DateRange{}, shared.NewDomainError("INVALID_INPUT", "Invalid 'to' date, expected YYYY-MM-DD")
		}
		to = parsed
	}
	return pos.NewDateRange(from, to)
}
