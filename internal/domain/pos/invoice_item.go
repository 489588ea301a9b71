package pos

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// InvoiceItem is one product or service line on an invoice.
// Description and UnitPrice are snapshots taken when the line was added.
type InvoiceItem struct {
	ID          uuid.UUID
	InvoiceID   uuid.UUID
	ProductID   uuid.UUID
	Description string
	UnitPrice   decimal.Decimal
	Quantity    int
	LineTotal   decimal.Decimal
	CreatedAt   time.Time
}

// NewInvoiceItem snapshots product onto a new line for invoiceID
func NewInvoiceItem(invoiceID uuid.UUID, product *Product, quantity int) (*InvoiceItem, error) {
	if product == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}

	unitPrice := valueobject.RoundCents(product.Price)
	return &InvoiceItem{
		ID:          uuid.New(),
		InvoiceID:   invoiceID,
		ProductID:   product.ID,
		Description: product.Name,
		UnitPrice:   unitPrice,
		Quantity:    quantity,
		LineTotal:   LineTotal(unitPrice, quantity),
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// LineTotal computes unit price times quantity rounded to cents
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return valueobject.NewMoney(unitPrice).MultiplyByInt(int64(quantity)).Amount()
}
