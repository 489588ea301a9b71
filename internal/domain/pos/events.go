package pos

import (
	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeInvoice = "Invoice"

// Event type constants
const (
	EventTypeInvoiceCreated   = "InvoiceCreated"
	EventTypeInvoiceItemAdded = "InvoiceItemAdded"
	EventTypePaymentRecorded  = "PaymentRecorded"
	EventTypeInvoiceVoided    = "InvoiceVoided"
)

// InvoiceCreatedEvent is raised when a new invoice is opened
type InvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	InvoiceNo  string    `json:"invoice_no"`
	ClientName string    `json:"client_name"`
	CreatedBy  uuid.UUID `json:"created_by"`
}

// NewInvoiceCreatedEvent creates a new InvoiceCreatedEvent
func NewInvoiceCreatedEvent(inv *Invoice) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCreated, AggregateTypeInvoice, inv.ID),
		InvoiceNo:       inv.InvoiceNo,
		ClientName:      inv.ClientName,
		CreatedBy:       inv.CreatedBy,
	}
}

// InvoiceItemAddedEvent is raised after a line was appended and totals recalculated
type InvoiceItemAddedEvent struct {
	shared.BaseDomainEvent
	InvoiceNo   string          `json:"invoice_no"`
	ItemID      uuid.UUID       `json:"item_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
	Total       decimal.Decimal `json:"total"`
}

// NewInvoiceItemAddedEvent creates a new InvoiceItemAddedEvent
func NewInvoiceItemAddedEvent(inv *Invoice, item *InvoiceItem) *InvoiceItemAddedEvent {
	return &InvoiceItemAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceItemAdded, AggregateTypeInvoice, inv.ID),
		InvoiceNo:       inv.InvoiceNo,
		ItemID:          item.ID,
		ProductID:       item.ProductID,
		Description:     item.Description,
		Quantity:        item.Quantity,
		LineTotal:       item.LineTotal,
		Total:           inv.Total,
	}
}

// PaymentRecordedEvent is raised after a payment was applied to an invoice
type PaymentRecordedEvent struct {
	shared.BaseDomainEvent
	InvoiceNo  string          `json:"invoice_no"`
	PaymentID  uuid.UUID       `json:"payment_id"`
	Amount     decimal.Decimal `json:"amount"`
	Method     PaymentMethod   `json:"method"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
	Status     InvoiceStatus   `json:"status"`
}

// NewPaymentRecordedEvent creates a new PaymentRecordedEvent
func NewPaymentRecordedEvent(inv *Invoice, p *Payment) *PaymentRecordedEvent {
	return &PaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentRecorded, AggregateTypeInvoice, inv.ID),
		InvoiceNo:       inv.InvoiceNo,
		PaymentID:       p.ID,
		Amount:          p.Amount,
		Method:          p.Method,
		AmountPaid:      inv.AmountPaid,
		Status:          inv.Status,
	}
}

// InvoiceVoidedEvent is raised when an invoice is voided
type InvoiceVoidedEvent struct {
	shared.BaseDomainEvent
	InvoiceNo string `json:"invoice_no"`
}

// NewInvoiceVoidedEvent creates a new InvoiceVoidedEvent
func NewInvoiceVoidedEvent(inv *Invoice) *InvoiceVoidedEvent {
	return &InvoiceVoidedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceVoided, AggregateTypeInvoice, inv.ID),
		InvoiceNo:       inv.InvoiceNo,
	}
}
