package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/krendl/spendwise/internal/stats"
	"github.com/krendl/spendwise/internal/tracker"
)

const (
	trendDays      = 7
	budgetBarWidth = 30
	trendBarWidth  = 24
)

func (a *App) viewDashboardBody() string {
	st := a.state
	s := stats.CalculateAt(st.Transactions, st.Settings, time.Now())

	var b strings.Builder

	top := s.TopCategory
	if top == "" {
		top = "N/A"
	}
	b.WriteString(fmt.Sprintf("Records        %d\n", s.TotalRecords))
	b.WriteString(fmt.Sprintf("Total spent    %s\n", stats.FormatCurrency(s.TotalAmount, st.Settings)))
	b.WriteString(fmt.Sprintf("Average        %s\n", stats.FormatCurrency(s.AverageTransaction, st.Settings)))
	b.WriteString(fmt.Sprintf("Top category   %s\n", top))

	remaining := stats.FormatCurrency(s.BudgetRemaining, st.Settings)
	if s.BudgetRemaining >= 0 {
		b.WriteString("Budget left    " + okStyle.Render(remaining) + "\n")
	} else {
		b.WriteString("Budget left    " + errorStyle.Render(remaining) + "\n")
	}

	b.WriteString("\n" + viewBudgetBar(s) + "\n")
	b.WriteString("\n" + titleStyle.Render("By category") + "\n")
	b.WriteString(viewCategoryBreakdown(s, st.Settings))
	b.WriteString("\n" + titleStyle.Render("Last 7 days") + "\n")
	b.WriteString(viewTrend(st.Transactions, st.Settings))
	return b.String()
}

func viewBudgetBar(s stats.Stats) string {
	pct := s.BudgetPercentage
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	filled := int(pct / 100 * budgetBarWidth)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", budgetBarWidth-filled)

	style := okStyle
	switch {
	case s.BudgetPercentage > 90:
		style = errorStyle
	case s.BudgetPercentage > 75:
		style = warnStyle
	}
	label := fmt.Sprintf(" %.0f%% of budget", s.BudgetPercentage)
	if s.BudgetRemaining < 0 {
		label = " over budget"
	}
	return style.Render(bar) + mutedStyle.Render(label)
}

func viewCategoryBreakdown(s stats.Stats, settings tracker.Settings) string {
	if len(s.CategoryBreakdown) == 0 {
		return mutedStyle.Render("No transactions yet") + "\n"
	}

	type entry struct {
		category string
		amount   float64
	}
	entries := make([]entry, 0, len(s.CategoryBreakdown))
	for c, amt := range s.CategoryBreakdown {
		entries = append(entries, entry{c, amt})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].amount != entries[j].amount {
			return entries[i].amount > entries[j].amount
		}
		return entries[i].category < entries[j].category
	})

	var b strings.Builder
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("  %-18s %s\n", e.category, stats.FormatCurrency(e.amount, settings)))
	}
	return b.String()
}

func viewTrend(txns []tracker.Transaction, settings tracker.Settings) string {
	trend := stats.DailyTrend(txns, trendDays, time.Now())

	maxAmount := 1.0
	for _, p := range trend {
		if p.Amount > maxAmount {
			maxAmount = p.Amount
		}
	}

	var b strings.Builder
	for _, p := range trend {
		width := int(p.Amount / maxAmount * trendBarWidth)
		bar := strings.Repeat("▇", width) + strings.Repeat(" ", trendBarWidth-width)
		b.WriteString(fmt.Sprintf("  %-7s %s %s\n",
			p.Label, okStyle.Render(bar), stats.FormatCurrency(p.Amount, settings)))
	}
	return b.String()
}
