package handler

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	posapp "github.com/shopdesk/backend/internal/application/pos"
	"github.com/shopdesk/backend/internal/interfaces/http/middleware"
)

// InvoiceHandler handles invoice endpoints: creation, line items, payments,
// receipts and voiding
type InvoiceHandler struct {
	BaseHandler
	invoiceService *posapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *posapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// CreateInvoiceRequest represents a request to open an invoice
// @Description Request body for opening an invoice
type CreateInvoiceRequest struct {
	AppointmentID *string     `json:"appointment" binding:"omitempty,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	ClientName    string      `json:"client_name" binding:"required,min=1,max=200" example:"Jane Doe"`
	ClientEmail   string      `json:"client_email" binding:"omitempty,email,max=254" example:"jane@example.com"`
	TaxRate       json.Number `json:"tax_rate" binding:"omitempty,money" swaggertype:"string" example:"10.00"`
	Notes         string      `json:"notes" binding:"max=2000"`
	Status        string      `json:"status" binding:"omitempty,oneof=draft pending" example:"draft"`
}

// AddItemRequest represents a product line added to an invoice
// @Description Request body for adding a line item
type AddItemRequest struct {
	ProductID string `json:"product" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Quantity  *int   `json:"quantity" binding:"omitempty,min=1" example:"2"`
}

// RecordPaymentRequest represents a payment tendered against an invoice
// @Description Request body for recording a payment
type RecordPaymentRequest struct {
	Amount    json.Number `json:"amount" binding:"required,money" swaggertype:"string" example:"220.00"`
	Method    string      `json:"method" binding:"required,payment_method" example:"cash"`
	Reference string      `json:"reference" binding:"max=100" example:"TERM-0042"`
}

// ListInvoicesQuery holds the invoice list filters
type ListInvoicesQuery struct {
	Status   string `form:"status" binding:"omitempty,oneof=draft pending partial paid void"`
	Search   string `form:"search" binding:"max=200"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// List godoc
// @Summary      List invoices
// @Description  List invoices, newest first, optionally filtered by status or client
// @Tags         invoices
// @Produce      json
// @Param        status query string false "Invoice status" Enums(draft, pending, partial, paid, void)
// @Param        search query string false "Client name, email or invoice number"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]posapp.InvoiceResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	var query ListInvoicesQuery
	if !h.BindQuery(c, &query) {
		return
	}

	invoices, total, err := h.invoiceService.ListInvoices(c.Request.Context(), posapp.InvoiceListFilter{
		Status:   query.Status,
		Search:   query.Search,
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, invoices, total, query.Page, query.PageSize)
}

// GetByID godoc
// @Summary      Get invoice
// @Description  Get an invoice with its items and payments
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} dto.Response{data=posapp.InvoiceResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	invoiceID, ok := h.ParamUUID(c, "id", "invoice")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// Create godoc
// @Summary      Create invoice
// @Description  Open an invoice numbered INV-NNNN, optionally linked to an appointment
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        request body CreateInvoiceRequest true "Invoice"
// @Success      201 {object} dto.Response{data=posapp.InvoiceResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	var req CreateInvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	appReq := posapp.CreateInvoiceRequest{
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		Notes:       req.Notes,
		Status:      req.Status,
	}
	if req.TaxRate != "" {
		rate, err := toDecimal(req.TaxRate)
		if err != nil {
			h.BadRequest(c, "Invalid tax rate")
			return
		}
		appReq.TaxRate = rate
	}
	if req.AppointmentID != nil && *req.AppointmentID != "" {
		appointmentID := uuid.MustParse(*req.AppointmentID)
		appReq.AppointmentID = &appointmentID
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), actor, appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, invoice)
}

// AddItem godoc
// @Summary      Add line item
// @Description  Add a product line to an invoice. Physical products decrement stock.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Param        request body AddItemRequest true "Line item"
// @Success      201 {object} dto.Response{data=posapp.AddItemResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /invoices/{id}/add_item [post]
func (h *InvoiceHandler) AddItem(c *gin.Context) {
	invoiceID, ok := h.ParamUUID(c, "id", "invoice")
	if !ok {
		return
	}

	var req AddItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.invoiceService.AddItem(c.Request.Context(), invoiceID, posapp.AddItemRequest{
		ProductID: uuid.MustParse(req.ProductID),
		Quantity:  req.Quantity,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// RecordPayment godoc
// @Summary      Record payment
// @Description  Record a payment and recompute the invoice status. A repeated
// @Description  Idempotency-Key returns the original payment with 200.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Param        Idempotency-Key header string false "Client key making retries safe"
// @Param        request body RecordPaymentRequest true "Payment"
// @Success      200 {object} dto.Response{data=posapp.RecordPaymentResult}
// @Success      201 {object} dto.Response{data=posapp.RecordPaymentResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /invoices/{id}/record_payment [post]
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	invoiceID, ok := h.ParamUUID(c, "id", "invoice")
	if !ok {
		return
	}
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	var req RecordPaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}
	amount, err := toDecimal(req.Amount)
	if err != nil {
		h.BadRequest(c, "Invalid amount")
		return
	}

	result, err := h.invoiceService.RecordPayment(c.Request.Context(), invoiceID, actor, posapp.RecordPaymentRequest{
		Amount:         amount,
		Method:         req.Method,
		Reference:      req.Reference,
		IdempotencyKey: c.GetHeader(middleware.IdempotencyKeyHeader),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if result.Replayed {
		h.Success(c, result)
		return
	}
	h.Created(c, result)
}

// Receipt godoc
// @Summary      Get receipt
// @Description  Printable view of an invoice with balance and change due
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} dto.Response{data=posapp.ReceiptResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /invoices/{id}/receipt [get]
func (h *InvoiceHandler) Receipt(c *gin.Context) {
	invoiceID, ok := h.ParamUUID(c, "id", "invoice")
	if !ok {
		return
	}

	receipt, err := h.invoiceService.GetReceipt(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receipt)
}

// Void godoc
// @Summary      Void invoice
// @Description  Mark an invoice void. Voiding a void invoice is rejected.
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} dto.Response{data=posapp.InvoiceResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /invoices/{id}/void [post]
func (h *InvoiceHandler) Void(c *gin.Context) {
	invoiceID, ok := h.ParamUUID(c, "id", "invoice")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.VoidInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}
