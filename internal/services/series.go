package services

import (
	"math/rand"
	"sort"

	"smartbudget/internal/core"
)

// MonthPoint is one calendar-month bucket in a chart series.
type MonthPoint struct {
	Month   string // "YYYY-MM"
	Income  core.Money
	Expense core.Money
}

// BalancePoint is one bucket of the cumulative balance trend.
type BalancePoint struct {
	Month   string
	Balance core.Money
}

// SeriesBuilder produces the month-bucketed series behind the charts.
// Buckets are calendar months, never rolling windows.
type SeriesBuilder struct {
	agg *Aggregator
}

func NewSeriesBuilder(agg *Aggregator) *SeriesBuilder {
	return &SeriesBuilder{agg: agg}
}

// YearToDate returns one bucket per month from January through today's
// month of the current year, zero-filled for quiet months. Returns nil
// when the current year has no transactions at all.
func (b *SeriesBuilder) YearToDate(today core.Date) []MonthPoint {
	totals := b.agg.MonthlyTotals()

	hasData := false
	points := make([]MonthPoint, 0, today.Month())
	for m := 1; m <= today.Month(); m++ {
		key := core.NewDate(today.Year(), m, 1).MonthKey()
		mt := totals[key]
		if mt.Income.Cents != 0 || mt.Expense.Cents != 0 {
			hasData = true
		}
		points = append(points, MonthPoint{Month: key, Income: mt.Income, Expense: mt.Expense})
	}
	if !hasData {
		return nil
	}
	return points
}

// SixMonthTrend returns the running balance over the trailing six calendar
// months including the current one. The cumulative balance starts at zero
// at the window start rather than carrying the lifetime balance in; the
// chart shows the recent trajectory, not net worth.
func (b *SeriesBuilder) SixMonthTrend(today core.Date) []BalancePoint {
	totals := b.agg.MonthlyTotals()

	points := make([]BalancePoint, 0, 6)
	var cumulative core.Money
	for i := 5; i >= 0; i-- {
		month := today.AddMonths(-i)
		mt := totals[month.MonthKey()]
		cumulative = cumulative.Add(mt.Income).Sub(mt.Expense)
		points = append(points, BalancePoint{Month: month.MonthKey(), Balance: cumulative})
	}
	return points
}

// Forecast projects income and expense for the three months after the last
// month with data. Each projected value is the per-month average (total
// divided by the number of distinct months with any transaction) scaled by
// a uniform jitter in [0.9, 1.1) drawn from rng, so tests can fix the
// seed. Returns nil with fewer than two distinct months of history.
func (b *SeriesBuilder) Forecast(rng *rand.Rand) []MonthPoint {
	totals := b.agg.MonthlyTotals()
	if len(totals) < 2 {
		return nil
	}

	months := make([]string, 0, len(totals))
	for key := range totals {
		months = append(months, key)
	}
	sort.Strings(months)

	var totalIncome, totalExpense core.Money
	for _, mt := range totals {
		totalIncome = totalIncome.Add(mt.Income)
		totalExpense = totalExpense.Add(mt.Expense)
	}
	n := int64(len(months))
	avgIncome := core.Money{Cents: totalIncome.Cents / n}
	avgExpense := core.Money{Cents: totalExpense.Cents / n}

	last, err := core.ParseDate(months[len(months)-1] + "-01")
	if err != nil {
		return nil
	}

	points := make([]MonthPoint, 0, 3)
	for i := 1; i <= 3; i++ {
		month := last.AddMonths(i)
		points = append(points, MonthPoint{
			Month:   month.MonthKey(),
			Income:  avgIncome.Scale(0.9 + rng.Float64()*0.2),
			Expense: avgExpense.Scale(0.9 + rng.Float64()*0.2),
		})
	}
	return points
}
