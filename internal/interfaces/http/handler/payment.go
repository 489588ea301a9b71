package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	posapp "github.com/shopdesk/backend/internal/application/pos"
)

// PaymentHandler lists recorded payments. Payments are created through
// the invoice endpoints.
type PaymentHandler struct {
	BaseHandler
	paymentService *posapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *posapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// ListPaymentsQuery holds the payment filters
type ListPaymentsQuery struct {
	InvoiceID string `form:"invoice" binding:"omitempty,uuid"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// List godoc
// @Summary      List payments
// @Description  List payments newest first, optionally for one invoice
// @Tags         payments
// @Produce      json
// @Param        invoice query string false "Invoice ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]posapp.PaymentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	var query ListPaymentsQuery
	if !h.BindQuery(c, &query) {
		return
	}

	filter := posapp.PaymentListFilter{Page: query.Page, PageSize: query.PageSize}
	if query.InvoiceID != "" {
		invoiceID := uuid.MustParse(query.InvoiceID)
		filter.InvoiceID = &invoiceID
	}

	payments, err := h.paymentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payments)
}
