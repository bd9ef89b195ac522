// Package stats derives aggregate figures from a transaction collection
// and the current settings. Everything here is pure; callers pass the
// snapshot they got from the store.
package stats

import (
	"fmt"
	"time"

	"github.com/krendl/spendwise/internal/tracker"
)

// Stats is the dashboard aggregate.
type Stats struct {
	TotalRecords       int
	TotalAmount        float64
	TopCategory        string // most frequent category; "" when absent
	Last7Days          []tracker.Transaction
	CategoryBreakdown  map[string]float64
	AverageTransaction float64
	BudgetRemaining    float64
	BudgetPercentage   float64
}

// Calculate computes Stats as of now.
func Calculate(txns []tracker.Transaction, settings tracker.Settings) Stats {
	return CalculateAt(txns, settings, time.Now())
}

// CalculateAt computes Stats with an explicit clock, for deterministic
// trend windows.
func CalculateAt(txns []tracker.Transaction, settings tracker.Settings, now time.Time) Stats {
	s := Stats{
		TotalRecords:      len(txns),
		CategoryBreakdown: make(map[string]float64),
	}
	if len(txns) == 0 {
		s.BudgetRemaining = settings.Budget
		return s
	}

	counts := make(map[string]int)
	for _, t := range txns {
		s.TotalAmount += t.Amount
		s.CategoryBreakdown[t.Category] += t.Amount
		counts[t.Category]++
	}
	s.AverageTransaction = s.TotalAmount / float64(len(txns))

	maxCount := 0
	for category, n := range counts {
		if n > maxCount || (n == maxCount && category < s.TopCategory) {
			maxCount = n
			s.TopCategory = category
		}
	}

	cutoff := dayStart(now).AddDate(0, 0, -6)
	for _, t := range txns {
		d, err := time.Parse("2006-01-02", t.Date)
		if err != nil {
			continue
		}
		if !d.Before(cutoff) {
			s.Last7Days = append(s.Last7Days, t)
		}
	}

	s.BudgetRemaining = settings.Budget - s.TotalAmount
	if settings.Budget > 0 {
		s.BudgetPercentage = s.TotalAmount / settings.Budget * 100
	}
	return s
}

// FormatCurrency renders an amount with the base currency's symbol.
func FormatCurrency(amount float64, settings tracker.Settings) string {
	return settings.Currencies[settings.BaseCurrency].Symbol + fmt.Sprintf("%.2f", amount)
}

// Convert translates an amount between two configured currencies via
// their rates against the reference currency.
func Convert(amount float64, from, to string, settings tracker.Settings) float64 {
	fromRate := settings.Currencies[from].Rate
	toRate := settings.Currencies[to].Rate
	if fromRate == 0 {
		return 0
	}
	return amount / fromRate * toRate
}

// TrendPoint is one day of the spending trend.
type TrendPoint struct {
	Date   string
	Amount float64
	Label  string
}

// DailyTrend sums per-day spend for the trailing window, oldest first.
// The last point is today.
func DailyTrend(txns []tracker.Transaction, days int, now time.Time) []TrendPoint {
	totals := make(map[string]float64)
	for _, t := range txns {
		totals[t.Date] += t.Amount
	}

	trend := make([]TrendPoint, 0, days)
	today := dayStart(now)
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		key := day.Format("2006-01-02")
		label := fmt.Sprintf("%dd ago", i)
		if i == 0 {
			label = "Today"
		}
		trend = append(trend, TrendPoint{Date: key, Amount: totals[key], Label: label})
	}
	return trend
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
