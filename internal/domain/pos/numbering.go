package pos

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// InvoiceNumberPrefix starts every invoice number
const InvoiceNumberPrefix = "INV-"

// InvoiceSequenceName is the counter row used for invoice numbers
const InvoiceSequenceName = "invoices"

// FormatInvoiceNumber renders n as INV-0001. Numbers above 9999 keep growing
// in width.
func FormatInvoiceNumber(n int64) string {
	return fmt.Sprintf("%s%04d", InvoiceNumberPrefix, n)
}

// ParseInvoiceNumber extracts the numeric suffix of an invoice number.
// Anything that is not INV- followed by digits yields 0, so numbering
// restarts at 1 instead of failing.
func ParseInvoiceNumber(s string) int64 {
	if !strings.HasPrefix(s, InvoiceNumberPrefix) {
		return 0
	}
	n, err := strconv.ParseInt(s[len(InvoiceNumberPrefix):], 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// InvoiceSequence hands out invoice numbers. Next must be called inside
// the transaction that inserts the invoice; concurrent callers are
// serialized until that transaction ends.
type InvoiceSequence interface {
	Next(ctx context.Context) (string, error)
}
