// Package telemetry wires OpenTelemetry traces, metrics and logs for the
// shopdesk backend and holds the POS business instruments.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopdesk/backend/internal/infrastructure/config"
	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ServiceVersion is reported on every exported span, metric and log record.
const ServiceVersion = "1.0.0"

const defaultMetricsInterval = time.Minute

// Pipelines selects which OTLP signals are exported and where to.
type Pipelines struct {
	Endpoint    string
	Insecure    bool
	ServiceName string

	Traces        bool
	SamplingRatio float64

	Metrics         bool
	MetricsInterval time.Duration

	Logs bool
}

// PipelinesFromSettings applies the master switch: with telemetry disabled
// no signal is exported whatever its own flag says.
func PipelinesFromSettings(cfg config.TelemetryConfig) Pipelines {
	return Pipelines{
		Endpoint:        cfg.CollectorEndpoint,
		Insecure:        cfg.Insecure,
		ServiceName:     cfg.ServiceName,
		Traces:          cfg.Enabled,
		SamplingRatio:   cfg.SamplingRatio,
		Metrics:         cfg.Enabled && cfg.MetricsEnabled,
		MetricsInterval: cfg.MetricsInterval,
		Logs:            cfg.Enabled && cfg.LogsEnabled,
	}
}

// OTel owns the SDK providers. A disabled signal has a nil provider and the
// global no-op implementation stays installed for it.
type OTel struct {
	serviceName string
	log         *zap.Logger

	traces  *sdktrace.TracerProvider
	metrics *sdkmetric.MeterProvider
	logs    *log.LoggerProvider
}

// Setup creates an OTLP/gRPC exporter per enabled signal and installs the
// providers globally. Exporters connect lazily, so an unreachable collector
// does not fail startup.
func Setup(ctx context.Context, p Pipelines, zl *zap.Logger) (*OTel, error) {
	o := &OTel{serviceName: p.ServiceName, log: zl}
	if !p.Traces && !p.Metrics && !p.Logs {
		zl.Info("Telemetry export disabled")
		return o, nil
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(p.ServiceName),
		semconv.ServiceVersion(ServiceVersion),
	))
	if err != nil {
		return nil, fmt.Errorf("otel resource: %w", err)
	}

	if p.Traces {
		opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(p.Endpoint)}
		if p.Insecure {
			opts = append(opts, otlptracegrpc.WithInsecure())
		}
		exp, err := otlptracegrpc.New(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("otlp trace exporter: %w", err)
		}
		o.traces = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exp),
			sdktrace.WithResource(res),
			sdktrace.WithSampler(samplerFor(p.SamplingRatio)),
		)
		otel.SetTracerProvider(o.traces)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{}, propagation.Baggage{},
		))
	}

	if p.Metrics {
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(p.Endpoint)}
		if p.Insecure {
			opts = append(opts, otlpmetricgrpc.WithInsecure())
		}
		exp, err := otlpmetricgrpc.New(ctx, opts...)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("otlp metric exporter: %w", err), o.Shutdown(ctx))
		}
		interval := p.MetricsInterval
		if interval <= 0 {
			interval = defaultMetricsInterval
		}
		o.metrics = sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(interval))),
		)
		otel.SetMeterProvider(o.metrics)
	}

	if p.Logs {
		opts := []otlploggrpc.Option{otlploggrpc.WithEndpoint(p.Endpoint)}
		if p.Insecure {
			opts = append(opts, otlploggrpc.WithInsecure())
		}
		exp, err := otlploggrpc.New(ctx, opts...)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("otlp log exporter: %w", err), o.Shutdown(ctx))
		}
		o.logs = log.NewLoggerProvider(
			log.WithResource(res),
			log.WithProcessor(log.NewBatchProcessor(exp)),
		)
		global.SetLoggerProvider(o.logs)
	}

	zl.Info("Telemetry export enabled",
		zap.String("collector_endpoint", p.Endpoint),
		zap.Bool("traces", p.Traces),
		zap.Float64("sampling_ratio", p.SamplingRatio),
		zap.Bool("metrics", p.Metrics),
		zap.Bool("logs", p.Logs),
	)
	return o, nil
}

// samplerFor respects the caller's sampling decision and applies ratio to
// new root traces only.
func samplerFor(ratio float64) sdktrace.Sampler {
	switch {
	case ratio >= 1:
		return sdktrace.ParentBased(sdktrace.AlwaysSample())
	case ratio <= 0:
		return sdktrace.ParentBased(sdktrace.NeverSample())
	default:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
	}
}

func (o *OTel) TracesEnabled() bool  { return o.traces != nil }
func (o *OTel) MetricsEnabled() bool { return o.metrics != nil }
func (o *OTel) LogsEnabled() bool    { return o.logs != nil }

// Meter returns a meter from the exporting provider, or the global one
// (no-op unless a test installed its own) when metrics are off.
func (o *OTel) Meter(name string, opts ...metric.MeterOption) metric.Meter {
	if o.metrics == nil {
		return otel.GetMeterProvider().Meter(name, opts...)
	}
	return o.metrics.Meter(name, opts...)
}

// ZapCore forwards entries at or above level to the OTLP log pipeline. With
// log export off it is a no-op core.
func (o *OTel) ZapCore(level zapcore.Level) zapcore.Core {
	if o.logs == nil {
		return zapcore.NewNopCore()
	}
	core := otelzap.NewCore(o.serviceName, otelzap.WithLoggerProvider(o.logs))
	return &levelFilterCore{Core: core, minLevel: level}
}

// Shutdown flushes and stops every provider, logs last so the shutdown of
// the others can still be reported. It waits at most 10s.
func (o *OTel) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var errs []error
	if o.traces != nil {
		errs = append(errs, wrapShutdown("traces", o.traces.Shutdown(ctx)))
	}
	if o.metrics != nil {
		errs = append(errs, wrapShutdown("metrics", o.metrics.Shutdown(ctx)))
	}
	if o.logs != nil {
		errs = append(errs, wrapShutdown("logs", o.logs.Shutdown(ctx)))
	}
	return errors.Join(errs...)
}

func wrapShutdown(signal string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("shutdown %s provider: %w", signal, err)
}

// levelFilterCore gives the otelzap core, which exports everything, a
// minimum level.
type levelFilterCore struct {
	zapcore.Core
	minLevel zapcore.Level
}

func (c *levelFilterCore) Enabled(lvl zapcore.Level) bool {
	return lvl >= c.minLevel && c.Core.Enabled(lvl)
}

func (c *levelFilterCore) Check(entry zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.Enabled(entry.Level) {
		return ce
	}
	return c.Core.Check(entry, ce)
}

func (c *levelFilterCore) With(fields []zapcore.Field) zapcore.Core {
	return &levelFilterCore{Core: c.Core.With(fields), minLevel: c.minLevel}
}

// NewBridgedLogger tees base's output into otelCore, keeping base's options.
func NewBridgedLogger(base *zap.Logger, otelCore zapcore.Core) *zap.Logger {
	return base.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, otelCore)
	}))
}
