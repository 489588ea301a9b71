package pos

import (
	"errors"
	"testing"
	"time"

	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday
var reportNow = time.Date(2026, 3, 18, 15, 30, 0, 0, time.UTC)

func TestCalendarHelpers(t *testing.T) {
	assert.Equal(t, time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC), StartOfDay(reportNow))
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), StartOfWeek(reportNow))
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), StartOfMonth(reportNow))

	sunday := time.Date(2026, 3, 22, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), StartOfWeek(sunday))

	monday := time.Date(2026, 3, 16, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), StartOfWeek(monday))
}

func TestDateRange(t *testing.T) {
	t.Run("default covers the last thirty days", func(t *testing.T) {
		r := DefaultDateRange(reportNow)
		assert.Equal(t, "2026-02-16", r.FromString())
		assert.Equal(t, "2026-03-18", r.ToString())

		start, end := r.Bounds()
		assert.Equal(t, time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2026, 3, 19, 0, 0, 0, 0, time.UTC), end)
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		_, err := NewDateRange(reportNow, reportNow.AddDate(0, 0, -1))
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})

	t.Run("single day range", func(t *testing.T) {
		r, err := NewDateRange(reportNow, reportNow)
		require.NoError(t, err)
		start, end := r.Bounds()
		assert.Equal(t, 24*time.Hour, end.Sub(start))
	})
}

func TestSumRevenue(t *testing.T) {
	today := StartOfDay(reportNow)
	entries := []RevenueEntry{
		{CreatedAt: today.Add(9 * time.Hour), AmountPaid: dec("100.00")},
		{CreatedAt: today.Add(10 * time.Hour), AmountPaid: dec("50.00")},
		{CreatedAt: today.Add(-time.Minute), AmountPaid: dec("999.00")},
	}

	assert.Equal(t, "150.00", SumRevenue(entries, today, today.AddDate(0, 0, 1)).String())
	assert.Equal(t, "1149.00", SumRevenue(entries, StartOfWeek(today), today.AddDate(0, 0, 1)).String())
	assert.Equal(t, "0.00", SumRevenue(nil, today, today.AddDate(0, 0, 1)).String())
}

func TestDailyRevenueSeries(t *testing.T) {
	today := StartOfDay(reportNow)
	entries := []RevenueEntry{
		{CreatedAt: today.Add(9 * time.Hour), AmountPaid: dec("100.00")},
		{CreatedAt: today.Add(11 * time.Hour), AmountPaid: dec("50.00")},
		{CreatedAt: today.AddDate(0, 0, -29).Add(time.Hour), AmountPaid: dec("12.5")},
		{CreatedAt: today.AddDate(0, 0, -30), AmountPaid: dec("70")},
	}

	series := DailyRevenueSeries(entries, reportNow, DefaultReportDays)
	require.Len(t, series, 30)

	assert.Equal(t, "2026-02-17", series[0].Date)
	assert.Equal(t, "12.50", series[0].Revenue.String())
	assert.Equal(t, "2026-03-18", series[29].Date)
	assert.Equal(t, "150.00", series[29].Revenue.String())
	assert.Equal(t, "0.00", series[15].Revenue.String())
}

func TestDailyRevenueSeries_UsesTodayLocation(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	today := time.Date(2026, 3, 18, 8, 0, 0, 0, loc)
	// 2026-03-17 22:00 UTC is already the 18th in UTC+10
	entries := []RevenueEntry{{CreatedAt: time.Date(2026, 3, 17, 22, 0, 0, 0, time.UTC), AmountPaid: dec("40")}}

	series := DailyRevenueSeries(entries, today, 2)
	assert.Equal(t, "2026-03-18", series[1].Date)
	assert.Equal(t, "40.00", series[1].Revenue.String())
	assert.Equal(t, "0.00", series[0].Revenue.String())
}

func TestRankServices(t *testing.T) {
	lines := []SoldLine{
		{Description: "Haircut", LineTotal: dec("30")},
		{Description: "Haircut", LineTotal: dec("30")},
		{Description: "Coloring", LineTotal: dec("80")},
		{Description: "Shampoo", LineTotal: dec("12.5")},
		{Description: "Beard Trim", LineTotal: dec("12.5")},
	}

	ranked := RankServices(lines, TopServicesLimit)
	require.Len(t, ranked, 4)
	assert.Equal(t, "Coloring", ranked[0].Name)
	assert.Equal(t, "Haircut", ranked[1].Name)
	assert.Equal(t, 2, ranked[1].Count)
	assert.Equal(t, "60.00", ranked[1].Revenue.String())
	assert.Equal(t, "Beard Trim", ranked[2].Name)
	assert.Equal(t, "Shampoo", ranked[3].Name)

	assert.Len(t, RankServices(lines, 2), 2)
	assert.Empty(t, RankServices(nil, TopServicesLimit))
}

func TestRankServices_LimitsToTen(t *testing.T) {
	var lines []SoldLine
	for i := 0; i < 15; i++ {
		lines = append(lines, SoldLine{Description: string(rune('A' + i)), LineTotal: dec("1")})
	}
	assert.Len(t, RankServices(lines, TopServicesLimit), TopServicesLimit)
}

func TestBreakdownByMethod(t *testing.T) {
	breakdown := BreakdownByMethod([]PaymentEntry{
		{Method: PaymentMethodCash, Amount: dec("20")},
		{Method: PaymentMethodCash, Amount: dec("5.25")},
	})
	assert.Equal(t, "25.25", breakdown["cash"].String())
	assert.Equal(t, "0.00", breakdown["card"].String())

	empty := BreakdownByMethod(nil)
	assert.Len(t, empty, 2)
}
