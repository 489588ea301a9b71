package router

import (
	"github.com/shopdesk/backend/internal/infrastructure/auth"
	"github.com/shopdesk/backend/internal/interfaces/http/handler"
	"github.com/shopdesk/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers holds every handler served under the versioned API
type Handlers struct {
	Auth        *handler.AuthHandler
	Invoice     *handler.InvoiceHandler
	Product     *handler.ProductHandler
	Payment     *handler.PaymentHandler
	Report      *handler.ReportHandler
	Staff       *handler.StaffHandler
	Appointment *handler.AppointmentHandler
	Dashboard   *handler.DashboardHandler
}

// RegisterAPI registers the domain groups on r. Front desk routes accept
// Staff and Admin; catalog and staff writes, voids and reports need Admin.
func RegisterAPI(r *Router, h Handlers, log *zap.Logger) {
	roleCfg := middleware.RoleConfig{Logger: log}
	desk := middleware.RequireRoleWithConfig(roleCfg, auth.RoleAdmin, auth.RoleStaff)
	admin := middleware.RequireRoleWithConfig(roleCfg, auth.RoleAdmin)

	authRoutes := NewDomainGroup("/auth").Use(desk)
	authRoutes.GET("/me", h.Auth.GetCurrentUser)
	authRoutes.POST("/logout", h.Auth.Logout)

	invoiceRoutes := NewDomainGroup("/invoices").Use(desk)
	invoiceRoutes.GET("", h.Invoice.List)
	invoiceRoutes.POST("", h.Invoice.Create)
	invoiceRoutes.GET("/:id", h.Invoice.GetByID)
	invoiceRoutes.POST("/:id/add_item", h.Invoice.AddItem)
	invoiceRoutes.POST("/:id/record_payment", h.Invoice.RecordPayment)
	invoiceRoutes.GET("/:id/receipt", h.Invoice.Receipt)
	invoiceRoutes.POST("/:id/void", admin, h.Invoice.Void)

	productRoutes := NewDomainGroup("/products").Use(desk)
	productRoutes.GET("", h.Product.List)
	productRoutes.GET("/:id", h.Product.GetByID)
	productRoutes.POST("", admin, h.Product.Create)
	productRoutes.PATCH("/:id", admin, h.Product.Update)

	paymentRoutes := NewDomainGroup("/payments").Use(desk)
	paymentRoutes.GET("", h.Payment.List)

	posRoutes := NewDomainGroup("/pos").Use(admin)
	posRoutes.GET("/reports", h.Report.GetSalesReport)

	staffRoutes := NewDomainGroup("/staff").Use(desk)
	staffRoutes.GET("", h.Staff.List)
	staffRoutes.GET("/:id", h.Staff.GetByID)
	staffRoutes.POST("", admin, h.Staff.Create)
	staffRoutes.PATCH("/:id", admin, h.Staff.Update)

	appointmentRoutes := NewDomainGroup("/appointments").Use(desk)
	appointmentRoutes.GET("", h.Appointment.List)
	appointmentRoutes.POST("", h.Appointment.Create)
	appointmentRoutes.GET("/:id", h.Appointment.GetByID)
	appointmentRoutes.PATCH("/:id", h.Appointment.Update)

	dashboardRoutes := NewDomainGroup("/dashboard").Use(desk)
	dashboardRoutes.GET("", h.Dashboard.GetStats)

	r.Register(authRoutes).
		Register(invoiceRoutes).
		Register(productRoutes).
		Register(paymentRoutes).
		Register(posRoutes).
		Register(staffRoutes).
		Register(appointmentRoutes).
		Register(dashboardRoutes)
}

