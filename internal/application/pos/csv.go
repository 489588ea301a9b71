package pos

import (
	"encoding/csv"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/shopdesk/backend/internal/domain/pos"
)

// SalesCSVHeader is the header row of the sales export
var SalesCSVHeader = []string{"Invoice No", "Client", "Date", "Total", "Amount Paid", "Status", "Payment Methods"}

// WriteSalesCSV writes rows as CSV. Dates are calendar days in loc, amounts
// have two decimals and payment methods are sorted and comma separated.
func WriteSalesCSV(w io.Writer, rows []pos.ExportRow, loc *time.Location) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SalesCSVHeader); err != nil {
		return err
	}
	for _, row := range rows {
		methods := make([]string, len(row.Methods))
		for i, m := range row.Methods {
			methods[i] = m.String()
		}
		slices.Sort(methods)
		record := []string{
			row.InvoiceNo,
			row.ClientName,
			row.CreatedAt.In(loc).Format(pos.DateLayout),
			row.Total.StringFixed(2),
			row.AmountPaid.StringFixed(2),
			row.Status.String(),
			strings.Join(methods, ", "),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
