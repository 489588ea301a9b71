package handler

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	posapp "github.com/shopdesk/backend/internal/application/pos"
	schedulingapp "github.com/shopdesk/backend/internal/application/scheduling"
	"github.com/shopdesk/backend/internal/domain/pos"
	"github.com/shopdesk/backend/internal/domain/scheduling"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/infrastructure/auth"
	"github.com/shopdesk/backend/internal/infrastructure/cache"
	"github.com/shopdesk/backend/internal/infrastructure/config"
	"github.com/shopdesk/backend/internal/infrastructure/persistence"
	"github.com/shopdesk/backend/internal/interfaces/http/middleware"
	"github.com/shopdesk/backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testCookieConfig = config.CookieConfig{
	AccessTokenName: "access_token",
	Path:            "/",
	SameSite:        "lax",
}

// apiFixture serves every handler over a private sqlite database. Routes
// mirror the production paths without role checks.
type apiFixture struct {
	db     *gorm.DB
	router *gin.Engine
	jwt    *auth.JWTService
	token  string
	userID string
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	db := testutil.NewSQLiteDB(t)
	productRepo := persistence.NewGormProductRepository(db)
	staffRepo := persistence.NewGormStaffRepository(db)
	appointmentRepo := persistence.NewGormAppointmentRepository(db)
	paymentRepo := persistence.NewGormPaymentRepository(db)

	invoiceService := posapp.NewInvoiceService(
		persistence.NewGormUnitOfWork(db),
		persistence.NewGormInvoiceRepository(db),
		paymentRepo,
		appointmentRepo,
		nil,
	)
	idemStore := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = idemStore.Close() })
	invoiceService.SetIdempotencyStore(idemStore, shared.DefaultIdempotencyConfig())
	reportService := posapp.NewReportService(persistence.NewGormReportRepository(db), nil, posapp.ReportServiceConfig{}, nil)

	invoices := NewInvoiceHandler(invoiceService)
	products := NewProductHandler(posapp.NewProductService(productRepo, nil))
	payments := NewPaymentHandler(posapp.NewPaymentService(paymentRepo))
	reports := NewReportHandler(reportService)
	staff := NewStaffHandler(schedulingapp.NewStaffService(staffRepo, nil))
	appointments := NewAppointmentHandler(schedulingapp.NewAppointmentService(appointmentRepo, staffRepo, time.UTC, nil))
	dashboard := NewDashboardHandler(schedulingapp.NewDashboardService(appointmentRepo, staffRepo, time.UTC))
	authHandler := NewAuthHandler(testCookieConfig)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-32-characters-long",
		Issuer:                "shopdesk",
		AccessTokenExpiration: 15 * time.Minute,
	})

	router := gin.New()
	api := router.Group("/api/v1", middleware.RequestID(), middleware.JWTAuthMiddleware(jwtService))

	api.GET("/auth/me", authHandler.GetCurrentUser)
	api.POST("/auth/logout", authHandler.Logout)

	api.GET("/invoices", invoices.List)
	api.POST("/invoices", invoices.Create)
	api.GET("/invoices/:id", invoices.GetByID)
	api.POST("/invoices/:id/add_item", invoices.AddItem)
	api.POST("/invoices/:id/record_payment", invoices.RecordPayment)
	api.GET("/invoices/:id/receipt", invoices.Receipt)
	api.POST("/invoices/:id/void", invoices.Void)

	api.GET("/products", products.List)
	api.POST("/products", products.Create)
	api.GET("/products/:id", products.GetByID)
	api.PATCH("/products/:id", products.Update)

	api.GET("/staff", staff.List)
	api.POST("/staff", staff.Create)
	api.GET("/staff/:id", staff.GetByID)
	api.PATCH("/staff/:id", staff.Update)

	api.GET("/appointments", appointments.List)
	api.POST("/appointments", appointments.Create)
	api.GET("/appointments/:id", appointments.GetByID)
	api.PATCH("/appointments/:id", appointments.Update)

	api.GET("/payments", payments.List)
	api.GET("/pos/reports", reports.GetSalesReport)
	api.GET("/dashboard", dashboard.GetStats)

	userID := testutil.TestUserID()
	token, _, err := jwtService.GenerateAccessToken(auth.GenerateTokenInput{
		UserID:   userID,
		Username: "desk",
		FullName: "Front Desk",
		Role:     auth.RoleAdmin,
	})
	require.NoError(t, err)

	return &apiFixture{db: db, router: router, jwt: jwtService, token: token, userID: userID.String()}
}

// do performs an authenticated request. extra headers override the defaults.
func (f *apiFixture) do(t *testing.T, method, path string, body any, extra ...map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	headers := testutil.AuthHeader(f.token)
	for _, h := range extra {
		for k, v := range h {
			headers[k] = v
		}
	}
	return testutil.PerformRequest(t, f.router, method, path, body, headers)
}

func (f *apiFixture) seedProduct(t *testing.T, name, price string, category pos.ProductCategory, stock int) *pos.Product {
	t.Helper()

	product, err := pos.NewProduct(name, "", decimal.RequireFromString(price), category, stock)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormProductRepository(f.db).Save(context.Background(), product))
	return product
}

func (f *apiFixture) seedStaff(t *testing.T, name string) *scheduling.Staff {
	t.Helper()

	staff, err := scheduling.NewStaff(name, "", "", "Stylist")
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormStaffRepository(f.db).Save(context.Background(), staff))
	return staff
}

// createInvoice opens an invoice through the API and returns its id
func (f *apiFixture) createInvoice(t *testing.T, taxRate string) string {
	t.Helper()

	w := f.do(t, "POST", "/api/v1/invoices", map[string]any{
		"client_name":  "Jane Doe",
		"client_email": "jane@example.com",
		"tax_rate":     taxRate,
	})
	require.Equal(t, 201, w.Code, w.Body.String())
	return testutil.DataMap(t, w)["id"].(string)
}
