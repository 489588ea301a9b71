package middleware

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopdesk/backend/internal/infrastructure/auth"
	"github.com/shopdesk/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prevTP := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	t.Cleanup(func() {
		_ = tp.Shutdown(t.Context())
		otel.SetTracerProvider(prevTP)
	})
	return sr
}

func spanAttrs(span sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range span.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	return attrs
}

func TestTracingWithConfig_Disabled(t *testing.T) {
	sr := setupTestTracer(t)

	router := gin.New()
	router.Use(TracingWithConfig(TracingConfig{Enabled: false}))
	router.GET("/test", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := testutil.PerformRequest(t, router, http.MethodGet, "/test", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, sr.Ended())
}

func TestTracing_SpanPerRequest(t *testing.T) {
	sr := setupTestTracer(t)
	svc := newTestJWTService()
	token, input := newTestToken(t, svc, auth.RoleStaff)

	router := gin.New()
	router.Use(RequestID(), Tracing(), SpanErrorMarker(), JWTAuthMiddleware(svc), TracingAttributeInjector())
	router.GET("/api/v1/invoices/:id", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := testutil.PerformRequest(t, router, http.MethodGet, "/api/v1/invoices/42", nil, map[string]string{
		"Authorization":  "Bearer " + token,
		RequestIDHeader: "req-trace-1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Contains(t, spans[0].Name(), "/api/v1/invoices/:id")

	attrs := spanAttrs(spans[0])
	assert.Equal(t, "req-trace-1", attrs["request_id"].AsString())
	assert.Equal(t, input.UserID.String(), attrs["user_id"].AsString())
	assert.Equal(t, auth.RoleStaff, attrs["role"].AsString())
	assert.Equal(t, int64(http.StatusOK), attrs["http.status_code"].AsInt64())
	assert.NotEqual(t, codes.Error, spans[0].Status().Code)
}

func TestSpanErrorMarker_ServerError(t *testing.T) {
	sr := setupTestTracer(t)

	router := gin.New()
	router.Use(Tracing(), SpanErrorMarker())
	router.GET("/boom", func(c *gin.Context) { c.String(http.StatusInternalServerError, "boom") })
	router.GET("/missing", func(c *gin.Context) { c.String(http.StatusNotFound, "missing") })

	testutil.PerformRequest(t, router, http.MethodGet, "/boom", nil, nil)
	testutil.PerformRequest(t, router, http.MethodGet, "/missing", nil, nil)

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, int64(http.StatusNotFound), spanAttrs(spans[1])["http.status_code"].AsInt64())
}
