package pos

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/pos"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CreateInvoiceRequest represents a request to open a new invoice
type CreateInvoiceRequest struct {
	AppointmentID *uuid.UUID
	ClientName    string
	ClientEmail   string
	TaxRate       decimal.Decimal
	Notes         string
	// Status is the initial status, draft (default) or pending
	Status string
}

// AddItemRequest represents a request to add a product line to an invoice
type AddItemRequest struct {
	ProductID uuid.UUID
	// Quantity defaults to 1 when nil
	Quantity *int
}

// RecordPaymentRequest represents a payment tendered against an invoice
type RecordPaymentRequest struct {
	Amount    decimal.Decimal
	Method    string
	Reference string
	// IdempotencyKey makes retries of the same payment safe. Optional.
	IdempotencyKey string
}

// InvoiceListFilter represents filter options for the invoice list
type InvoiceListFilter struct {
	Status   string
	Search   string
	Page     int
	PageSize int
}

// InvoiceItemResponse represents an invoice line in API responses
type InvoiceItemResponse struct {
	ID          uuid.UUID         `json:"id"`
	ProductID   uuid.UUID         `json:"product"`
	Description string            `json:"description"`
	UnitPrice   valueobject.Money `json:"unit_price"`
	Quantity    int               `json:"quantity"`
	LineTotal   valueobject.Money `json:"line_total"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID             uuid.UUID         `json:"id"`
	InvoiceID      uuid.UUID         `json:"invoice"`
	Amount         valueobject.Money `json:"amount"`
	Method         string            `json:"method"`
	Reference      string            `json:"reference"`
	PaidAt         time.Time         `json:"paid_at"`
	RecordedBy     uuid.UUID         `json:"recorded_by"`
	RecordedByName string            `json:"recorded_by_name"`
}

// InvoiceResponse represents an invoice with its items and payments
type InvoiceResponse struct {
	ID            uuid.UUID             `json:"id"`
	InvoiceNo     string                `json:"invoice_no"`
	AppointmentID *uuid.UUID            `json:"appointment"`
	ClientName    string                `json:"client_name"`
	ClientEmail   string                `json:"client_email"`
	Subtotal      valueobject.Money     `json:"subtotal"`
	TaxRate       string                `json:"tax_rate"`
	TaxAmount     valueobject.Money     `json:"tax_amount"`
	Total         valueobject.Money     `json:"total"`
	AmountPaid    valueobject.Money     `json:"amount_paid"`
	Status        string                `json:"status"`
	Notes         string                `json:"notes"`
	CreatedBy     uuid.UUID             `json:"created_by"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
	Version       int                   `json:"version"`
	Items         []InvoiceItemResponse `json:"items"`
	Payments      []PaymentResponse     `json:"payments"`
}

// ReceiptPaymentLine is a payment as printed on a receipt
type ReceiptPaymentLine struct {
	PaymentResponse
	MethodDisplay string `json:"method_display"`
}

// ReceiptResponse is the printable view of an invoice
type ReceiptResponse struct {
	InvoiceResponse
	Payments      []ReceiptPaymentLine `json:"payments"`
	StatusDisplay string               `json:"status_display"`
	BalanceDue    valueobject.Money    `json:"balance_due"`
	ChangeDue     valueobject.Money    `json:"change_due"`
}

// ToInvoiceItemResponse converts a domain InvoiceItem to InvoiceItemResponse
func ToInvoiceItemResponse(item *pos.InvoiceItem) InvoiceItemResponse {
	return InvoiceItemResponse{
		ID:          item.ID,
		ProductID:   item.ProductID,
		Description: item.Description,
		UnitPrice:   valueobject.NewMoney(item.UnitPrice),
		Quantity:    item.Quantity,
		LineTotal:   valueobject.NewMoney(item.LineTotal),
	}
}

// ToPaymentResponse converts a domain Payment to PaymentResponse
func ToPaymentResponse(p *pos.Payment) PaymentResponse {
	return PaymentResponse{
		ID:             p.ID,
		InvoiceID:      p.InvoiceID,
		Amount:         valueobject.NewMoney(p.Amount),
		Method:         p.Method.String(),
		Reference:      p.Reference,
		PaidAt:         p.PaidAt,
		RecordedBy:     p.RecordedBy,
		RecordedByName: p.RecordedByName,
	}
}

// ToPaymentResponses converts a slice of payments
func ToPaymentResponses(payments []pos.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses
}

// ToInvoiceResponse converts a domain Invoice to InvoiceResponse
func ToInvoiceResponse(inv *pos.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, len(inv.Items))
	for i := range inv.Items {
		items[i] = ToInvoiceItemResponse(&inv.Items[i])
	}
	return InvoiceResponse{
		ID:            inv.ID,
		InvoiceNo:     inv.InvoiceNo,
		AppointmentID: inv.AppointmentID,
		ClientName:    inv.ClientName,
		ClientEmail:   inv.ClientEmail,
		Subtotal:      valueobject.NewMoney(inv.Subtotal),
		TaxRate:       inv.TaxRate.StringFixed(2),
		TaxAmount:     valueobject.NewMoney(inv.TaxAmount),
		Total:         valueobject.NewMoney(inv.Total),
		AmountPaid:    valueobject.NewMoney(inv.AmountPaid),
		Status:        inv.Status.String(),
		Notes:         inv.Notes,
		CreatedBy:     inv.CreatedBy,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
		Version:       inv.Version,
		Items:         items,
		Payments:      ToPaymentResponses(inv.Payments),
	}
}

// ToInvoiceResponses converts a slice of invoices
func ToInvoiceResponses(invoices []pos.Invoice) []InvoiceResponse {
	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceResponse(&invoices[i])
	}
	return responses
}

// DisplayLabel title-cases an enum value for receipts, e.g. "partial" -> "Partial".
// A Caser keeps state, so one is built per call.
func DisplayLabel(value string) string {
	return cases.Title(language.English).String(value)
}

// ToReceiptResponse builds the receipt view of an invoice
func ToReceiptResponse(inv *pos.Invoice) ReceiptResponse {
	base := ToInvoiceResponse(inv)
	lines := make([]ReceiptPaymentLine, len(base.Payments))
	for i, p := range base.Payments {
		lines[i] = ReceiptPaymentLine{
			PaymentResponse: p,
			MethodDisplay:   DisplayLabel(p.Method),
		}
	}
	return ReceiptResponse{
		InvoiceResponse: base,
		Payments:        lines,
		StatusDisplay:   DisplayLabel(base.Status),
		BalanceDue:      valueobject.NewMoney(inv.BalanceDue()),
		ChangeDue:       valueobject.NewMoney(inv.ChangeDue()),
	}
}

// CreateProductRequest represents a request to add a catalog entry
type CreateProductRequest struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	StockQty    int
	IsActive    *bool
}

// UpdateProductRequest represents a partial update of a catalog entry.
// Nil fields keep their current value.
type UpdateProductRequest struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Category    *string
	StockQty    *int
	IsActive    *bool
}

// ProductListFilter represents filter options for the catalog
type ProductListFilter struct {
	Category string
	IsActive *bool
	Page     int
	PageSize int
}

// ProductResponse represents a catalog entry in API responses
type ProductResponse struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Price       valueobject.Money `json:"price"`
	Category    string            `json:"category"`
	StockQty    int               `json:"stock_qty"`
	IsActive    bool              `json:"is_active"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *pos.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.PriceMoney(),
		Category:    p.Category.String(),
		StockQty:    p.StockQty,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of products
func ToProductResponses(products []pos.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}

// PaymentListFilter represents filter options for the payments list
type PaymentListFilter struct {
	InvoiceID *uuid.UUID
	Page      int
	PageSize  int
}

// SalesReportQuery selects the report range. Empty strings fall back to
// the default range ending today.
type SalesReportQuery struct {
	From string
	To   string
}

// SalesReportResponse is the sales dashboard payload
type SalesReportResponse struct {
	From             string                       `json:"from"`
	To               string                       `json:"to"`
	RevenueToday     valueobject.Money            `json:"revenue_today"`
	RevenueThisWeek  valueobject.Money            `json:"revenue_this_week"`
	RevenueThisMonth valueobject.Money            `json:"revenue_this_month"`
	DailyRevenue     []pos.DailyRevenue           `json:"daily_revenue"`
	TopServices      []pos.TopService             `json:"top_services"`
	PaymentBreakdown map[string]valueobject.Money `json:"payment_breakdown"`
}

// SalesExport is a rendered CSV export
type SalesExport struct {
	Filename string
	Content  []byte
}
