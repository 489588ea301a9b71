package pos

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func line(total string) InvoiceItem {
	return InvoiceItem{LineTotal: dec(total)}
}

func TestRecalculate_Totals(t *testing.T) {
	tests := []struct {
		name      string
		items     []InvoiceItem
		taxRate   string
		subtotal  string
		taxAmount string
		total     string
	}{
		{"no items", nil, "10", "0.00", "0.00", "0.00"},
		{"single line with ten percent tax", []InvoiceItem{line("200.00")}, "10", "200.00", "20.00", "220.00"},
		{"several lines", []InvoiceItem{line("19.99"), line("5.01"), line("75.00")}, "0", "100.00", "0.00", "100.00"},
		{"half cent rounds to even (down)", []InvoiceItem{line("0.25")}, "10", "0.25", "0.02", "0.27"},
		{"half cent rounds to even (up)", []InvoiceItem{line("0.35")}, "10", "0.35", "0.04", "0.39"},
		{"fractional rate", []InvoiceItem{line("80.00")}, "8.25", "80.00", "6.60", "86.60"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Recalculate(tt.items, decimal.Zero, dec(tt.taxRate), InvoiceStatusDraft)
			assert.Equal(t, tt.subtotal, got.Subtotal.StringFixed(2))
			assert.Equal(t, tt.taxAmount, got.TaxAmount.StringFixed(2))
			assert.Equal(t, tt.total, got.Total.StringFixed(2))
			assert.True(t, got.Total.Equal(got.Subtotal.Add(got.TaxAmount)))
		})
	}
}

func TestRecalculate_StatusPrecedence(t *testing.T) {
	items := []InvoiceItem{line("200.00")}

	tests := []struct {
		name       string
		items      []InvoiceItem
		amountPaid string
		current    InvoiceStatus
		want       InvoiceStatus
	}{
		{"fully paid", items, "220.00", InvoiceStatusPending, InvoiceStatusPaid},
		{"overpaid", items, "300.00", InvoiceStatusPending, InvoiceStatusPaid},
		{"partially paid", items, "50.00", InvoiceStatusPending, InvoiceStatusPartial},
		{"unpaid draft stays draft", items, "0", InvoiceStatusDraft, InvoiceStatusDraft},
		{"unpaid void stays void", items, "0", InvoiceStatusVoid, InvoiceStatusVoid},
		{"unpaid paid falls back to pending", items, "0", InvoiceStatusPaid, InvoiceStatusPending},
		{"void flips to paid once covered", items, "220.00", InvoiceStatusVoid, InvoiceStatusPaid},
		{"void flips to partial on payment", items, "1.00", InvoiceStatusVoid, InvoiceStatusPartial},
		{"zero total with payment is partial", nil, "10.00", InvoiceStatusDraft, InvoiceStatusPartial},
		{"zero total without payment keeps draft", nil, "0", InvoiceStatusDraft, InvoiceStatusDraft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Recalculate(tt.items, dec(tt.amountPaid), dec("10"), tt.current)
			assert.Equal(t, tt.want, got.Status)
		})
	}
}

func TestRecalculate_Idempotent(t *testing.T) {
	items := []InvoiceItem{line("33.33"), line("66.67")}
	first := Recalculate(items, dec("40"), dec("7.5"), InvoiceStatusPending)
	second := Recalculate(items, dec("40"), dec("7.5"), first.Status)

	assert.True(t, first.Subtotal.Equal(second.Subtotal))
	assert.True(t, first.TaxAmount.Equal(second.TaxAmount))
	assert.True(t, first.Total.Equal(second.Total))
	assert.Equal(t, first.Status, second.Status)
}
