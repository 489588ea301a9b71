package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/infrastructure/auth"
	"github.com/shopdesk/backend/internal/infrastructure/config"
	"github.com/shopdesk/backend/internal/interfaces/http/dto"
	"github.com/shopdesk/backend/internal/interfaces/http/handler"
	"github.com/shopdesk/backend/internal/interfaces/http/middleware"
	"github.com/shopdesk/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
	assert.Empty(t, r.middleware)
}

func TestRouterWithAPIVersion(t *testing.T) {
	r := NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	group := NewDomainGroup("/test")
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	r.Register(group).Setup()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/test/ping", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestRouterUse(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine).Use(func(c *gin.Context) {
		c.Header("X-Api", "yes")
		c.Next()
	})
	engine.GET("/outside", func(c *gin.Context) { c.Status(http.StatusOK) })

	group := NewDomainGroup("/test")
	group.GET("/inside", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.Register(group).Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/test/inside", nil))
	assert.Equal(t, "yes", w.Header().Get("X-Api"))

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/outside", nil))
	assert.Empty(t, w.Header().Get("X-Api"))
}

func TestDomainGroup(t *testing.T) {
	t.Run("keeps its prefix", func(t *testing.T) {
		g := NewDomainGroup("/invoices")
		assert.Equal(t, "/invoices", g.Prefix())
	})

	t.Run("registers each method", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("/test").
			GET("/a", func(c *gin.Context) { c.String(http.StatusOK, "a") }).
			POST("/b", func(c *gin.Context) { c.String(http.StatusCreated, "b") }).
			PATCH("/c/:id", func(c *gin.Context) { c.String(http.StatusOK, c.Param("id")) })
		g.RegisterRoutes(engine.Group("/api/v1"))

		tests := []struct {
			method string
			path   string
			status int
			body   string
		}{
			{http.MethodGet, "/api/v1/test/a", http.StatusOK, "a"},
			{http.MethodPost, "/api/v1/test/b", http.StatusCreated, "b"},
			{http.MethodPatch, "/api/v1/test/c/7", http.StatusOK, "7"},
		}
		for _, tt := range tests {
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.status, w.Code, tt.path)
			assert.Equal(t, tt.body, w.Body.String(), tt.path)
		}
	})

	t.Run("group middleware runs before route handlers", func(t *testing.T) {
		engine := gin.New()
		var order []string
		g := NewDomainGroup("/test").Use(func(c *gin.Context) {
			order = append(order, "group")
			c.Next()
		})
		g.GET("/x", func(c *gin.Context) {
			order = append(order, "route")
			c.Status(http.StatusOK)
		})
		g.RegisterRoutes(engine.Group("/api/v1"))

		engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/test/x", nil))
		assert.Equal(t, []string{"group", "route"}, order)
	})

	t.Run("subgroups nest under the parent prefix", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("/pos")
		g.Group("/reports").GET("/daily", func(c *gin.Context) {
			c.String(http.StatusOK, "daily")
		})
		g.RegisterRoutes(engine.Group("/api/v1"))

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/pos/reports/daily", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "daily", w.Body.String())
	})
}

// newAPIEngine mounts the API with handlers whose services are nil. Requests
// that reach a handler are sent with malformed input so they stop at binding.
func newAPIEngine(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	middleware.SetupValidator()

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "router-test-secret-at-least-32-chars",
		Issuer:                "shopdesk",
		AccessTokenExpiration: time.Minute,
	})

	engine := gin.New()
	r := NewRouter(engine).Use(middleware.RequestID(), middleware.JWTAuthMiddleware(jwtService))
	RegisterAPI(r, Handlers{
		Auth:        handler.NewAuthHandler(config.CookieConfig{AccessTokenName: "access_token", Path: "/"}),
		Invoice:     handler.NewInvoiceHandler(nil),
		Product:     handler.NewProductHandler(nil),
		Payment:     handler.NewPaymentHandler(nil),
		Report:      handler.NewReportHandler(nil),
		Staff:       handler.NewStaffHandler(nil),
		Appointment: handler.NewAppointmentHandler(nil),
		Dashboard:   handler.NewDashboardHandler(nil),
	}, zap.NewNop())
	r.Setup()
	return engine, jwtService
}

func tokenFor(t *testing.T, svc *auth.JWTService, role string) map[string]string {
	t.Helper()
	token, _, err := svc.GenerateAccessToken(auth.GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "router-" + role,
		Role:     role,
	})
	require.NoError(t, err)
	return testutil.AuthHeader(token)
}

func TestRegisterAPI_Roles(t *testing.T) {
	engine, jwtService := newAPIEngine(t)
	staff := tokenFor(t, jwtService, auth.RoleStaff)
	admin := tokenFor(t, jwtService, auth.RoleAdmin)
	guest := tokenFor(t, jwtService, "Guest")
	badJSON := map[string]string{"unexpected": "shape"}

	tests := []struct {
		name    string
		method  string
		path    string
		body    interface{}
		headers map[string]string
		status  int
	}{
		{"no token", http.MethodGet, "/api/v1/invoices/nope", nil, nil, http.StatusUnauthorized},
		{"unknown role", http.MethodGet, "/api/v1/invoices/nope", nil, guest, http.StatusForbidden},
		{"staff reads invoice", http.MethodGet, "/api/v1/invoices/nope", nil, staff, http.StatusBadRequest},
		{"staff adds item", http.MethodPost, "/api/v1/invoices/nope/add_item", badJSON, staff, http.StatusBadRequest},
		{"staff records payment", http.MethodPost, "/api/v1/invoices/nope/record_payment", badJSON, staff, http.StatusBadRequest},
		{"staff cannot void", http.MethodPost, "/api/v1/invoices/nope/void", nil, staff, http.StatusForbidden},
		{"admin voids", http.MethodPost, "/api/v1/invoices/nope/void", nil, admin, http.StatusBadRequest},
		{"staff reads product", http.MethodGet, "/api/v1/products/nope", nil, staff, http.StatusBadRequest},
		{"staff cannot create product", http.MethodPost, "/api/v1/products", badJSON, staff, http.StatusForbidden},
		{"admin creates product", http.MethodPost, "/api/v1/products", badJSON, admin, http.StatusBadRequest},
		{"staff cannot update product", http.MethodPatch, "/api/v1/products/nope", badJSON, staff, http.StatusForbidden},
		{"staff cannot create staff", http.MethodPost, "/api/v1/staff", badJSON, staff, http.StatusForbidden},
		{"admin updates staff", http.MethodPatch, "/api/v1/staff/nope", badJSON, admin, http.StatusBadRequest},
		{"staff books appointment", http.MethodPost, "/api/v1/appointments", badJSON, staff, http.StatusBadRequest},
		{"staff cannot read reports", http.MethodGet, "/api/v1/pos/reports", nil, staff, http.StatusForbidden},
		{"admin report bad format", http.MethodGet, "/api/v1/pos/reports?format=xml", nil, admin, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := testutil.PerformRequest(t, engine, tt.method, tt.path, tt.body, tt.headers)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusForbidden {
				testutil.AssertErrorResponse(t, w, http.StatusForbidden, dto.ErrCodeForbidden)
			}
		})
	}
}

func TestRegisterAPI_AuthRoutes(t *testing.T) {
	engine, jwtService := newAPIEngine(t)
	staff := tokenFor(t, jwtService, auth.RoleStaff)

	w := testutil.PerformRequest(t, engine, http.MethodGet, "/api/v1/auth/me", nil, staff)
	require.Equal(t, http.StatusOK, w.Code)
	data := testutil.DataMap(t, w)
	assert.Equal(t, auth.RoleStaff, data["role"])
	assert.Equal(t, false, data["is_admin"])

	w = testutil.PerformRequest(t, engine, http.MethodPost, "/api/v1/auth/logout", nil, staff)
	assert.Equal(t, http.StatusOK, w.Code)
}
