package persistence

import (
	"slices"
	"strings"
)

// sortSpec whitelists the columns a list endpoint may order by. Client input
// never reaches ORDER BY unless it names one of these columns exactly.
type sortSpec struct {
	columns    []string
	defaultCol string
	defaultDir string
}

var (
	invoiceSort = sortSpec{
		columns:    []string{"created_at", "updated_at", "invoice_no", "client_name", "total", "amount_paid", "status"},
		defaultCol: "created_at",
		defaultDir: "DESC",
	}
	productSort = sortSpec{
		columns:    []string{"created_at", "name", "price", "category", "stock_qty"},
		defaultCol: "name",
		defaultDir: "ASC",
	}
	staffSort = sortSpec{
		columns:    []string{"created_at", "full_name", "specialty"},
		defaultCol: "full_name",
		defaultDir: "ASC",
	}
	appointmentSort = sortSpec{
		columns:    []string{"created_at", "start_time", "client_name", "status"},
		defaultCol: "start_time",
		defaultDir: "DESC",
	}
)

// clause renders "column DIR". Unknown columns fall back to the default; an
// empty direction keeps the default direction and anything other than asc
// sorts descending.
func (s sortSpec) clause(orderBy, orderDir string) string {
	col := strings.TrimSpace(orderBy)
	if !slices.Contains(s.columns, col) {
		col = s.defaultCol
	}

	dir := s.defaultDir
	switch d := strings.ToUpper(strings.TrimSpace(orderDir)); {
	case d == "ASC":
		dir = "ASC"
	case d != "":
		dir = "DESC"
	}
	return col + " " + dir
}
