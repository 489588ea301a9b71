package telemetry

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation name of business spans.
const TracerName = "shopdesk-backend"

// Span attribute keys used by application services.
const (
	SpanAttrInvoiceID     = "invoice_id"
	SpanAttrInvoiceNo     = "invoice_no"
	SpanAttrInvoiceStatus = "invoice_status"
	SpanAttrProductID     = "product_id"
	SpanAttrPaymentMethod = "payment_method"
	SpanAttrAppointmentID = "appointment_id"
	SpanAttrStaffID       = "staff_id"
	SpanAttrUserID        = "user_id"
)

// SpanOption is applied when a business span starts.
type SpanOption = trace.SpanStartOption

// WithAttribute attaches key=value, converting value with the same rules as
// SetAttributes.
func WithAttribute(key string, value any) SpanOption {
	return trace.WithAttributes(toAttribute(key, value))
}

func WithSpanKind(kind trace.SpanKind) SpanOption {
	return trace.WithSpanKind(kind)
}

// StartSpan starts an internal span on the global provider; options may
// override the kind. The caller must End it.
func StartSpan(ctx context.Context, name string, opts ...SpanOption) (context.Context, trace.Span) {
	opts = append([]SpanOption{trace.WithSpanKind(trace.SpanKindInternal)}, opts...)
	return otel.Tracer(TracerName).Start(ctx, name, opts...)
}

// StartServiceSpan names the span "{service}.{operation}", e.g.
// "invoice.record_payment".
func StartServiceSpan(ctx context.Context, service, operation string, opts ...SpanOption) (context.Context, trace.Span) {
	return StartSpan(ctx, service+"."+operation, opts...)
}

// SetAttributes takes alternating keys and values. Pairs whose key is not a
// string are dropped, as is a trailing key without a value.
func SetAttributes(span trace.Span, keyValues ...any) {
	if span != nil {
		span.SetAttributes(pairsToAttributes(keyValues)...)
	}
}

// RecordError records err and flips the span status to Error.
func RecordError(span trace.Span, err error, opts ...trace.EventOption) {
	if span == nil || err == nil {
		return
	}
	span.RecordError(err, opts...)
	span.SetStatus(codes.Error, err.Error())
}

func AddEvent(span trace.Span, name string, keyValues ...any) {
	if span != nil {
		span.AddEvent(name, trace.WithAttributes(pairsToAttributes(keyValues)...))
	}
}

func pairsToAttributes(keyValues []any) []attribute.KeyValue {
	var attrs []attribute.KeyValue
	for pair := range slices.Chunk(keyValues, 2) {
		if len(pair) < 2 {
			break
		}
		if key, ok := pair[0].(string); ok {
			attrs = append(attrs, toAttribute(key, pair[1]))
		}
	}
	return attrs
}

func toAttribute(key string, value any) attribute.KeyValue {
	k := attribute.Key(key)
	switch v := value.(type) {
	case string:
		return k.String(v)
	case bool:
		return k.Bool(v)
	case int:
		return k.Int(v)
	case int64:
		return k.Int64(v)
	case float64:
		return k.Float64(v)
	case []string:
		return k.StringSlice(v)
	case time.Time:
		return k.String(v.UTC().Format(time.RFC3339))
	case time.Duration:
		return k.Float64(v.Seconds())
	case fmt.Stringer:
		// uuid.UUID, decimal.Decimal and the domain enums
		return k.String(v.String())
	default:
		return k.String(fmt.Sprint(v))
	}
}
