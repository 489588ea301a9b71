package pos

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Actor identifies the authenticated user performing an operation
type Actor struct {
	UserID   uuid.UUID
	Name     string
	Username string
}

// Payment is an append-only record of money received against an invoice
type Payment struct {
	ID             uuid.UUID
	InvoiceID      uuid.UUID
	Amount         decimal.Decimal
	Method         PaymentMethod
	Reference      string
	PaidAt         time.Time
	RecordedBy     uuid.UUID
	RecordedByName string
}

// NewPayment validates and creates a payment for invoiceID
func NewPayment(invoiceID uuid.UUID, amount decimal.Decimal, method PaymentMethod, reference string, actor Actor) (*Payment, error) {
	if !amount.IsPositive() {
		return nil, shared.ErrInvalidAmount
	}
	rounded := valueobject.RoundCents(amount)
	if !rounded.IsPositive() {
		return nil, shared.ErrInvalidAmount
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Unsupported payment method: %s", method))
	}
	if len(reference) > 100 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Reference cannot exceed 100 characters")
	}
	if actor.UserID == uuid.Nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Payment must be recorded by an authenticated user")
	}

	name := actor.Name
	if name == "" {
		name = actor.Username
	}

	return &Payment{
		ID:             uuid.New(),
		InvoiceID:      invoiceID,
		Amount:         rounded,
		Method:         method,
		Reference:      reference,
		PaidAt:         time.Now().UTC(),
		RecordedBy:     actor.UserID,
		RecordedByName: name,
	}, nil
}
