// Package middleware provides HTTP middleware for the ShopDesk API.
package middleware

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopdesk/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// HTTPMetricsConfig holds configuration for HTTP metrics middleware.
type HTTPMetricsConfig struct {
	Meter   metric.Meter
	Enabled bool
}

// responseSizeBuckets tops out around CSV report exports.
var responseSizeBuckets = []float64{128, 512, 1 << 10, 4 << 10, 16 << 10, 64 << 10, 256 << 10, 1 << 20}

type httpRecorder struct {
	requests *telemetry.Counter
	latency  *telemetry.Histogram
	size     *telemetry.Histogram
	inFlight metric.Int64UpDownCounter
}

func newHTTPRecorder(meter metric.Meter) (*httpRecorder, error) {
	var r httpRecorder
	var errs [4]error
	r.requests, errs[0] = telemetry.NewCounter(meter,
		"http_server_request_total", "HTTP requests served", "{request}")
	r.latency, errs[1] = telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name:        "http_server_request_duration_seconds",
		Description: "Time from first middleware to response written",
		Unit:        "s",
		Boundaries:  telemetry.HTTPDurationBuckets,
	})
	r.size, errs[2] = telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name:        "http_server_response_size_bytes",
		Description: "Response body size",
		Unit:        "By",
		Boundaries:  responseSizeBuckets,
	})
	r.inFlight, errs[3] = meter.Int64UpDownCounter("http_server_active_requests",
		metric.WithDescription("Requests currently being served"),
		metric.WithUnit("{request}"))
	if err := errors.Join(errs[:]...); err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *httpRecorder) observe(c *gin.Context, elapsed time.Duration) {
	ctx := c.Request.Context()
	route := []attribute.KeyValue{
		telemetry.AttrHTTPMethod.String(c.Request.Method),
		telemetry.AttrHTTPRoute.String(routePattern(c)),
	}

	labels := append([]attribute.KeyValue{telemetry.AttrHTTPStatusCode.Int(c.Writer.Status())}, route...)
	if role := c.GetString(JWTRoleKey); role != "" {
		labels = append(labels, telemetry.AttrRole.String(role))
	}
	r.requests.Inc(ctx, labels...)
	r.latency.RecordDuration(ctx, elapsed, route...)
	if n := c.Writer.Size(); n > 0 {
		r.size.Record(ctx, float64(n), route...)
	}
}

// HTTPMetrics counts requests by method, matched route, status and caller
// role, and records latency, response size and in-flight requests. It is a
// no-op unless enabled with a meter.
func HTTPMetrics(cfg HTTPMetricsConfig) gin.HandlerFunc {
	if cfg.Meter == nil {
		return passThrough
	}
	return HTTPMetricsWithMeter(cfg.Meter, cfg.Enabled)
}

// HTTPMetricsWithMeter is HTTPMetrics for callers that already hold a meter.
// Instrument registration failures disable the middleware.
func HTTPMetricsWithMeter(meter metric.Meter, enabled bool) gin.HandlerFunc {
	if !enabled {
		return passThrough
	}
	rec, err := newHTTPRecorder(meter)
	if err != nil {
		return passThrough
	}

	return func(c *gin.Context) {
		start := time.Now()
		rec.inFlight.Add(c.Request.Context(), 1)
		defer rec.inFlight.Add(c.Request.Context(), -1)

		c.Next()
		rec.observe(c, time.Since(start))
	}
}

func passThrough(c *gin.Context) {
	c.Next()
}

// routePattern keeps invoice ids out of label values by using the matched
// route, e.g. "/api/v1/invoices/:id".
func routePattern(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unknown"
}
