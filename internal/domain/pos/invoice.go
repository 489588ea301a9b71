package pos

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// maxTaxRate mirrors the numeric(5,2) column
var maxTaxRate = decimal.RequireFromString("999.99")

// Invoice is the aggregate root of the point-of-sale context. It owns its
// line items and payments, and every mutation ends with Recalculate.
type Invoice struct {
	shared.BaseAggregateRoot
	InvoiceNo     string
	AppointmentID *uuid.UUID
	ClientName    string
	ClientEmail   string
	Subtotal      decimal.Decimal
	TaxRate       decimal.Decimal
	TaxAmount     decimal.Decimal
	Total         decimal.Decimal
	AmountPaid    decimal.Decimal
	Status        InvoiceStatus
	Notes         string
	CreatedBy     uuid.UUID
	Items         []InvoiceItem
	Payments      []Payment

	// set by AddItem/RecordPayment, cleared by the repository after save
	newItems    []InvoiceItem
	newPayments []Payment
}

// NewInvoice creates a draft invoice with zero totals
func NewInvoice(invoiceNo, clientName, clientEmail string, taxRate decimal.Decimal, createdBy uuid.UUID) (*Invoice, error) {
	if invoiceNo == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invoice number cannot be empty")
	}
	if clientName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Client name cannot be empty")
	}
	if len(clientName) > 200 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Client name cannot exceed 200 characters")
	}
	if taxRate.IsNegative() || taxRate.GreaterThan(maxTaxRate) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Tax rate must be between 0 and 999.99")
	}
	if createdBy == uuid.Nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invoice must be created by an authenticated user")
	}

	inv := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceNo:         invoiceNo,
		ClientName:        clientName,
		ClientEmail:       clientEmail,
		Subtotal:          decimal.Zero,
		TaxRate:           taxRate.RoundBank(2),
		TaxAmount:         decimal.Zero,
		Total:             decimal.Zero,
		AmountPaid:        decimal.Zero,
		Status:            InvoiceStatusDraft,
		CreatedBy:         createdBy,
		Items:             make([]InvoiceItem, 0),
		Payments:          make([]Payment, 0),
	}

	inv.RecordEvent(NewInvoiceCreatedEvent(inv))
	return inv, nil
}

// Open sets the status a new invoice starts with. Only draft and pending are
// allowed, and only before anything was billed.
func (i *Invoice) Open(status InvoiceStatus) error {
	if status != InvoiceStatusDraft && status != InvoiceStatusPending {
		return shared.NewDomainError("INVALID_INPUT", "New invoices start as draft or pending")
	}
	if len(i.Items) > 0 || len(i.Payments) > 0 {
		return shared.NewDomainError("INVALID_STATE", "Invoice already has items or payments")
	}
	i.Status = status
	i.Touch()
	return nil
}

// LinkAppointment ties the invoice to the appointment it bills
func (i *Invoice) LinkAppointment(appointmentID uuid.UUID) {
	i.AppointmentID = &appointmentID
	i.Touch()
}

// SetNotes replaces the invoice notes
func (i *Invoice) SetNotes(notes string) {
	i.Notes = notes
	i.Touch()
}

// AddItem snapshots product onto a new line and recalculates the invoice.
// Stock has to be reserved by the caller before the item is added.
func (i *Invoice) AddItem(product *Product, quantity int) (*InvoiceItem, error) {
	if product == nil || !product.IsActive {
		return nil, shared.NewDomainError("NOT_FOUND", "Product not found or inactive")
	}
	item, err := NewInvoiceItem(i.ID, product, quantity)
	if err != nil {
		return nil, err
	}

	i.Items = append(i.Items, *item)
	i.newItems = append(i.newItems, *item)
	i.Recalculate()

	i.RecordEvent(NewInvoiceItemAddedEvent(i, item))
	return item, nil
}

// RecordPayment appends a payment, adds it to AmountPaid and recalculates.
// Overpayment is accepted.
func (i *Invoice) RecordPayment(amount decimal.Decimal, method PaymentMethod, reference string, actor Actor) (*Payment, error) {
	payment, err := NewPayment(i.ID, amount, method, reference, actor)
	if err != nil {
		return nil, err
	}

	i.Payments = append(i.Payments, *payment)
	i.newPayments = append(i.newPayments, *payment)
	i.AmountPaid = valueobject.NewMoney(i.AmountPaid).Add(valueobject.NewMoney(payment.Amount)).Amount()
	i.Recalculate()

	i.RecordEvent(NewPaymentRecordedEvent(i, payment))
	return payment, nil
}

// Void marks the invoice void. It is an explicit administrative action;
// recalculation keeps void unless money is received afterwards.
func (i *Invoice) Void() error {
	if i.Status == InvoiceStatusVoid {
		return shared.NewDomainError("INVALID_STATE", "Invoice is already void")
	}
	i.Status = InvoiceStatusVoid
	i.Touch()
	i.RecordEvent(NewInvoiceVoidedEvent(i))
	return nil
}

// Recalculate applies the derived totals and status to the invoice
func (i *Invoice) Recalculate() {
	t := Recalculate(i.Items, i.AmountPaid, i.TaxRate, i.Status)
	i.Subtotal = t.Subtotal
	i.TaxAmount = t.TaxAmount
	i.Total = t.Total
	i.Status = t.Status
	i.Touch()
}

// BalanceDue is what is still owed, never negative
func (i *Invoice) BalanceDue() decimal.Decimal {
	total, paid := valueobject.NewMoney(i.Total), valueobject.NewMoney(i.AmountPaid)
	if paid.GreaterThanOrEqual(total) {
		return decimal.Zero
	}
	return total.Subtract(paid).Amount()
}

// ChangeDue is the amount received beyond the total
func (i *Invoice) ChangeDue() decimal.Decimal {
	total, paid := valueobject.NewMoney(i.Total), valueobject.NewMoney(i.AmountPaid)
	if paid.LessThan(total) {
		return decimal.Zero
	}
	return paid.Subtract(total).Amount()
}

// PaymentMethodsUsed returns the distinct methods of the invoice payments,
// sorted alphabetically.
func (i *Invoice) PaymentMethodsUsed() []PaymentMethod {
	seen := make(map[PaymentMethod]bool)
	methods := make([]PaymentMethod, 0, 2)
	for _, p := range i.Payments {
		if !seen[p.Method] {
			seen[p.Method] = true
			methods = append(methods, p.Method)
		}
	}
	slices.Sort(methods)
	return methods
}

// PendingItems returns the lines added since the invoice was loaded
func (i *Invoice) PendingItems() []InvoiceItem {
	return i.newItems
}

// PendingPayments returns the payments recorded since the invoice was loaded
func (i *Invoice) PendingPayments() []Payment {
	return i.newPayments
}

// MarkPersisted clears the pending lines and payments after a save
func (i *Invoice) MarkPersisted() {
	i.newItems = nil
	i.newPayments = nil
}

// CreatedDate returns the creation day in loc
func (i *Invoice) CreatedDate(loc *time.Location) string {
	return i.CreatedAt.In(loc).Format("2006-01-02")
}
