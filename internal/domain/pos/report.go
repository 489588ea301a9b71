package pos

import (
	"sort"
	"time"

	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used by report ranges
const DateLayout = "2006-01-02"

// DefaultReportDays is the length of the default report range and of the
// daily revenue series
const DefaultReportDays = 30

// TopServicesLimit caps the top services ranking
const TopServicesLimit = 10

// RevenueEntry is a paid or partial invoice as seen by revenue figures
type RevenueEntry struct {
	CreatedAt  time.Time
	AmountPaid decimal.Decimal
}

// SoldLine is an invoice line counted by the top services ranking
type SoldLine struct {
	Description string
	LineTotal   decimal.Decimal
}

// PaymentEntry is a received payment as seen by the method breakdown
type PaymentEntry struct {
	Method PaymentMethod
	Amount decimal.Decimal
	PaidAt time.Time
}

// ExportRow is one invoice line of the CSV export
type ExportRow struct {
	InvoiceNo  string
	ClientName string
	CreatedAt  time.Time
	Total      decimal.Decimal
	AmountPaid decimal.Decimal
	Status     InvoiceStatus
	Methods    []PaymentMethod
}

// DailyRevenue is the revenue of one calendar day
type DailyRevenue struct {
	Date    string            `json:"date"`
	Revenue valueobject.Money `json:"revenue"`
}

// TopService is one entry of the best sellers ranking
type TopService struct {
	Name    string            `json:"name"`
	Count   int               `json:"count"`
	Revenue valueobject.Money `json:"revenue"`
}

// DateRange is an inclusive range of calendar days in a location
type DateRange struct {
	From time.Time
	To   time.Time
}

// NewDateRange builds a range of whole days. from must not be after to.
func NewDateRange(from, to time.Time) (DateRange, error) {
	from = StartOfDay(from)
	to = StartOfDay(to)
	if from.After(to) {
		return DateRange{}, shared.NewDomainError("INVALID_INPUT", "'from' must not be after 'to'")
	}
	return DateRange{From: from, To: to}, nil
}

// DefaultDateRange is the last DefaultReportDays days ending today
func DefaultDateRange(now time.Time) DateRange {
	today := StartOfDay(now)
	return DateRange{From: today.AddDate(0, 0, -DefaultReportDays), To: today}
}

// Bounds returns the half-open UTC interval covering the range
func (r DateRange) Bounds() (start, end time.Time) {
	return r.From.UTC(), r.To.AddDate(0, 0, 1).UTC()
}

// FromString formats the first day
func (r DateRange) FromString() string {
	return r.From.Format(DateLayout)
}

// ToString formats the last day
func (r DateRange) ToString() string {
	return r.To.Format(DateLayout)
}

// StartOfDay truncates t to midnight in its own location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the Monday midnight of the week containing t
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// StartOfMonth returns midnight of the first day of the month containing t
func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// SumRevenue adds up amount paid of entries created in [from, to)
func SumRevenue(entries []RevenueEntry, from, to time.Time) valueobject.Money {
	var total valueobject.Money
	for _, e := range entries {
		if !e.CreatedAt.Before(from) && e.CreatedAt.Before(to) {
			total = total.Add(valueobject.NewMoney(e.AmountPaid))
		}
	}
	return total
}

// DailyRevenueSeries returns one entry per day for the days ending at
// today (inclusive), oldest first. Days without revenue report zero.
// Entries are bucketed by their creation day in today's location.
func DailyRevenueSeries(entries []RevenueEntry, today time.Time, days int) []DailyRevenue {
	today = StartOfDay(today)
	loc := today.Location()

	byDay := make(map[string]decimal.Decimal, days)
	for _, e := range entries {
		key := e.CreatedAt.In(loc).Format(DateLayout)
		byDay[key] = byDay[key].Add(e.AmountPaid)
	}

	series := make([]DailyRevenue, 0, days)
	for i := days - 1; i >= 0; i-- {
		key := today.AddDate(0, 0, -i).Format(DateLayout)
		series = append(series, DailyRevenue{
			Date:    key,
			Revenue: valueobject.NewMoney(byDay[key]),
		})
	}
	return series
}

// RankServices groups lines by description and returns the limit best
// sellers by revenue. Ties are broken by name.
func RankServices(lines []SoldLine, limit int) []TopService {
	type bucket struct {
		count   int
		revenue decimal.Decimal
	}
	groups := make(map[string]*bucket)
	for _, l := range lines {
		b, ok := groups[l.Description]
		if !ok {
			b = &bucket{revenue: decimal.Zero}
			groups[l.Description] = b
		}
		b.count++
		b.revenue = b.revenue.Add(l.LineTotal)
	}

	ranked := make([]TopService, 0, len(groups))
	for name, b := range groups {
		ranked = append(ranked, TopService{
			Name:    name,
			Count:   b.count,
			Revenue: valueobject.NewMoney(b.revenue),
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if !ranked[i].Revenue.Equals(ranked[j].Revenue) {
			return ranked[i].Revenue.GreaterThan(ranked[j].Revenue)
		}
		return ranked[i].Name < ranked[j].Name
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// BreakdownByMethod totals payments per method. Every supported method is
// present even when nothing was received through it.
func BreakdownByMethod(payments []PaymentEntry) map[string]valueobject.Money {
	sums := make(map[PaymentMethod]decimal.Decimal)
	for _, p := range payments {
		sums[p.Method] = sums[p.Method].Add(p.Amount)
	}

	breakdown := make(map[string]valueobject.Money, len(PaymentMethods()))
	for _, m := range PaymentMethods() {
		breakdown[m.String()] = valueobject.NewMoney(sums[m])
	}
	for m, sum := range sums {
		if !m.IsValid() {
			breakdown[m.String()] = valueobject.NewMoney(sum)
		}
	}
	return breakdown
}
