// Package services contains the derived-analytics layer: aggregation,
// recurrence processing, budget evaluation, insight generation, and chart
// series building, plus the tracker service that orchestrates them.
package services

import (
	"sort"

	"smartbudget/internal/core"
	"smartbudget/internal/store"
)

// Aggregator computes sums over filtered subsets of the transaction
// collection. All accumulation is on integer cents.
type Aggregator struct {
	store *store.RecordStore
}

func NewAggregator(s *store.RecordStore) *Aggregator {
	return &Aggregator{store: s}
}

// SumByType totals all transactions of the given type.
func (a *Aggregator) SumByType(t core.TransactionType) core.Money {
	var total core.Money
	for _, tx := range a.store.Transactions {
		if tx.Type == t {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// SumCategoryExpenses totals all expense transactions in a category across
// the full history.
func (a *Aggregator) SumCategoryExpenses(category string) core.Money {
	var total core.Money
	for _, tx := range a.store.TransactionsInCategory(category) {
		total = total.Add(tx.Amount)
	}
	return total
}

// SumExpensesBetween totals expense transactions in a category with
// from <= date < to. Ranges are always inclusive-start, exclusive-end.
func (a *Aggregator) SumExpensesBetween(category string, from, to core.Date) core.Money {
	var total core.Money
	for _, tx := range a.store.TransactionsInCategory(category) {
		if !tx.Date.Before(from.Time) && tx.Date.Before(to.Time) {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// SumExpensesInMonth totals expense transactions of any category in the
// given calendar month.
func (a *Aggregator) SumExpensesInMonth(month core.Date) core.Money {
	var total core.Money
	for _, tx := range a.store.Transactions {
		if tx.Type == core.Expense && tx.Date.SameMonth(month) {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// ExpensesByCategory returns total expense per category, only for
// categories that have at least one expense.
func (a *Aggregator) ExpensesByCategory() map[string]core.Money {
	totals := make(map[string]core.Money)
	for _, tx := range a.store.Transactions {
		if tx.Type == core.Expense {
			totals[tx.Category] = totals[tx.Category].Add(tx.Amount)
		}
	}
	return totals
}

// LargestExpenseCategory returns the category with the highest total
// expense. Ties break alphabetically so the result is deterministic.
func (a *Aggregator) LargestExpenseCategory() (string, core.Money, bool) {
	totals := a.ExpensesByCategory()
	if len(totals) == 0 {
		return "", core.Money{}, false
	}
	cats := make([]string, 0, len(totals))
	for c := range totals {
		cats = append(cats, c)
	}
	sort.Strings(cats)

	best := cats[0]
	for _, c := range cats[1:] {
		if totals[c].Cents > totals[best].Cents {
			best = c
		}
	}
	return best, totals[best], true
}

// MonthlyTotals buckets all transactions into calendar months keyed
// "YYYY-MM", with income and expense totals per bucket.
func (a *Aggregator) MonthlyTotals() map[string]MonthTotal {
	buckets := make(map[string]MonthTotal)
	for _, tx := range a.store.Transactions {
		key := tx.Date.MonthKey()
		mt := buckets[key]
		switch tx.Type {
		case core.Income:
			mt.Income = mt.Income.Add(tx.Amount)
		case core.Expense:
			mt.Expense = mt.Expense.Add(tx.Amount)
		}
		buckets[key] = mt
	}
	return buckets
}

// MonthTotal is one calendar-month bucket of income and expense.
type MonthTotal struct {
	Income  core.Money
	Expense core.Money
}

// Summary is the headline dashboard state derived from the full history.
type Summary struct {
	TotalIncome  core.Money
	TotalExpense core.Money
	Balance      core.Money
	SavingsRate  float64
	HasIncome    bool
}

// Summarize computes lifetime totals and the savings rate. When there is
// no income the rate is reported as 0 with HasIncome false; callers must
// branch on HasIncome instead of trusting the zero.
func (a *Aggregator) Summarize() Summary {
	income := a.SumByType(core.Income)
	expense := a.SumByType(core.Expense)
	balance := income.Sub(expense)

	s := Summary{
		TotalIncome:  income,
		TotalExpense: expense,
		Balance:      balance,
	}
	if income.Cents > 0 {
		s.HasIncome = true
		s.SavingsRate = float64(balance.Cents) / float64(income.Cents) * 100
	}
	return s
}

// MonthSummary computes income, expense, and balance for one calendar
// month.
func (a *Aggregator) MonthSummary(month core.Date) MonthTotal {
	var mt MonthTotal
	for _, tx := range a.store.Transactions {
		if !tx.Date.SameMonth(month) {
			continue
		}
		switch tx.Type {
		case core.Income:
			mt.Income = mt.Income.Add(tx.Amount)
		case core.Expense:
			mt.Expense = mt.Expense.Add(tx.Amount)
		}
	}
	return mt
}
