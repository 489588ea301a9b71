package pos

import (
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Totals is the derived money state of an invoice
type Totals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
	Status    InvoiceStatus
}

// Recalculate derives subtotal, tax, total and status from the invoice
// lines and the amount received so far. It has no side effects.
//
// Status precedence, first match wins:
//  1. paid when amountPaid >= total and total > 0
//  2. partial when amountPaid > 0
//  3. void and draft are kept as they are
//  4. pending otherwise
//
// A payment can therefore move a void invoice to paid or partial.
func Recalculate(items []InvoiceItem, amountPaid, taxRate decimal.Decimal, current InvoiceStatus) Totals {
	lines := make([]valueobject.Money, len(items))
	for i, item := range items {
		lines[i] = valueobject.NewMoney(item.LineTotal)
	}
	subtotal := valueobject.Sum(lines...)
	taxAmount := subtotal.Percentage(taxRate)
	total := subtotal.Add(taxAmount)

	return Totals{
		Subtotal:  subtotal.Amount(),
		TaxAmount: taxAmount.Amount(),
		Total:     total.Amount(),
		Status:    deriveStatus(total.Amount(), amountPaid, current),
	}
}

func deriveStatus(total, amountPaid decimal.Decimal, current InvoiceStatus) InvoiceStatus {
	switch {
	case amountPaid.GreaterThanOrEqual(total) && total.IsPositive():
		return InvoiceStatusPaid
	case amountPaid.IsPositive():
		return InvoiceStatusPartial
	case current == InvoiceStatusVoid || current == InvoiceStatusDraft:
		return current
	default:
		return InvoiceStatusPending
	}
}
