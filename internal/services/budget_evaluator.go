package services

import (
	"fmt"
	"math"
	"time"

	"smartbudget/internal/core"
	"smartbudget/internal/store"
)

type BudgetHealth string

const (
	HealthHealthy BudgetHealth = "healthy"
	HealthWarning BudgetHealth = "warning"
	HealthOver    BudgetHealth = "over"
)

// BudgetStatus is the evaluated state of one category's budget.
type BudgetStatus struct {
	Category  string
	Limit     core.Money
	Spent     core.Money
	Remaining core.Money
	Usage     float64
	Health    BudgetHealth
}

// Suggestion is a proposed budget adjustment the user can apply as-is.
type Suggestion struct {
	Category    string
	Title       string
	Description string
	Amount      core.Money
	Icon        string
}

// BudgetEvaluator computes spent-vs-limit status, the overall health
// score, and budget adjustment suggestions.
type BudgetEvaluator struct {
	store *store.RecordStore
	agg   *Aggregator
}

func NewBudgetEvaluator(s *store.RecordStore, agg *Aggregator) *BudgetEvaluator {
	return &BudgetEvaluator{store: s, agg: agg}
}

// Evaluate returns the status of every budgeted category, in category
// order. Spent covers the category's full expense history; Remaining goes
// negative once the budget is exceeded.
func (e *BudgetEvaluator) Evaluate() []BudgetStatus {
	var statuses []BudgetStatus
	for _, category := range e.store.BudgetedCategories() {
		b, _ := e.store.BudgetFor(category)
		spent := e.agg.SumCategoryExpenses(category)
		usage := float64(spent.Cents) / float64(b.Amount.Cents) * 100

		health := HealthHealthy
		switch {
		case usage > 100:
			health = HealthOver
		case usage > 80:
			health = HealthWarning
		}

		statuses = append(statuses, BudgetStatus{
			Category:  category,
			Limit:     b.Amount,
			Spent:     spent,
			Remaining: b.Amount.Sub(spent),
			Usage:     usage,
			Health:    health,
		})
	}
	return statuses
}

// HealthScore is the percentage of budgeted categories at healthy usage
// (<=80%), rounded to the nearest integer. With no budgets the score is
// 100: nothing is over because nothing is tracked. The vacuous 100 feeds
// the "all budgets on track" insight, which separately requires at least
// one budget.
func (e *BudgetEvaluator) HealthScore() int {
	statuses := e.Evaluate()
	if len(statuses) == 0 {
		return 100
	}
	healthy := 0
	for _, st := range statuses {
		if st.Usage <= 80 {
			healthy++
		}
	}
	return int(math.Round(float64(healthy) / float64(len(statuses)) * 100))
}

// Suggestions proposes budget adjustments from the trailing three calendar
// months of spending (the current month and the two before it). The
// average divides by a fixed 3 even when fewer months have data, so thin
// history deliberately produces conservative averages. Categories with no
// expenses in the window are skipped; Rent and Other are never suggested.
func (e *BudgetEvaluator) Suggestions(today core.Date) []Suggestion {
	currency := e.store.Settings.Currency
	from := today.StartOfMonth().AddMonths(-2)
	to := today.AddDays(1)

	var suggestions []Suggestion
	for _, category := range core.SuggestionCategories {
		spent := e.agg.SumExpensesBetween(category, from, to)
		if spent.Cents == 0 {
			continue
		}
		avg := core.Money{Cents: spent.Cents / 3}

		b, ok := e.store.BudgetFor(category)
		if !ok {
			amount := avg.Scale(1.10)
			suggestions = append(suggestions, Suggestion{
				Category: category,
				Title:    fmt.Sprintf("Set budget for %s", category),
				Description: fmt.Sprintf("Based on your spending patterns, we suggest a budget of %s per month.",
					amount.Format(currency)),
				Amount: amount,
				Icon:   "chart-pie",
			})
			continue
		}

		usage := float64(avg.Cents) / float64(b.Amount.Cents) * 100
		switch {
		case usage > 110:
			amount := avg.Scale(1.05)
			suggestions = append(suggestions, Suggestion{
				Category: category,
				Title:    fmt.Sprintf("Increase %s budget", category),
				Description: fmt.Sprintf("You're consistently exceeding your %s budget. Consider increasing it to %s.",
					category, amount.Format(currency)),
				Amount: amount,
				Icon:   "arrow-up",
			})
		case usage < 60:
			amount := avg.Scale(1.10)
			suggestions = append(suggestions, Suggestion{
				Category: category,
				Title:    fmt.Sprintf("Optimize %s budget", category),
				Description: fmt.Sprintf("You're using only %.0f%% of your %s budget. Consider reducing it to %s.",
					usage, category, amount.Format(currency)),
				Amount: amount,
				Icon:   "arrow-down",
			})
		}
	}
	return suggestions
}

// ApplySuggestion sets the suggested amount as the category's monthly
// budget.
func (e *BudgetEvaluator) ApplySuggestion(s Suggestion, now time.Time) {
	e.store.SetBudget(s.Category, core.Budget{
		Amount:    s.Amount,
		Period:    core.PeriodMonthly,
		CreatedAt: now,
	})
}
