package services

import (
	"fmt"
	"math"

	"smartbudget/internal/core"
	"smartbudget/internal/store"
)

// Snapshot is the read-only financial state the insight rules evaluate
// against. Building it once per generation keeps each rule a pure function
// of the same numbers.
type Snapshot struct {
	Summary          Summary
	TransactionCount int

	TopCategory      string
	TopCategoryShare float64 // percent of total expense
	HasExpenses      bool

	CurrentMonthExpense core.Money
	LastMonthExpense    core.Money

	HealthScore int
	BudgetCount int

	HasActiveGoal bool
	GoalName      string
	GoalProgress  float64
	GoalDaysLeft  int
}

// Rule is one predicate over the snapshot, appending at most one insight.
type Rule func(Snapshot) (core.Insight, bool)

// InsightEngine recomputes the full insight list from scratch on every
// call. Nothing is cached or persisted; the list is a disposable view.
type InsightEngine struct {
	store *store.RecordStore
	agg   *Aggregator
	eval  *BudgetEvaluator
	rules []Rule
}

func NewInsightEngine(s *store.RecordStore, agg *Aggregator, eval *BudgetEvaluator) *InsightEngine {
	return &InsightEngine{
		store: s,
		agg:   agg,
		eval:  eval,
		rules: []Rule{
			savingsRateRule,
			concentrationRule,
			monthTrendRule,
			budgetHealthRule,
			goalProgressRule,
			volumeRule,
		},
	}
}

// Snapshot assembles the state all rules read from.
func (e *InsightEngine) Snapshot(today core.Date) Snapshot {
	snap := Snapshot{
		Summary:             e.agg.Summarize(),
		TransactionCount:    len(e.store.Transactions),
		CurrentMonthExpense: e.agg.SumExpensesInMonth(today),
		LastMonthExpense:    e.agg.SumExpensesInMonth(today.AddMonths(-1)),
		HealthScore:         e.eval.HealthScore(),
		BudgetCount:         len(e.store.BudgetedCategories()),
	}

	if top, amount, ok := e.agg.LargestExpenseCategory(); ok && snap.Summary.TotalExpense.Cents > 0 {
		snap.HasExpenses = true
		snap.TopCategory = top
		snap.TopCategoryShare = float64(amount.Cents) / float64(snap.Summary.TotalExpense.Cents) * 100
	}

	if goal, ok := closestActiveGoal(e.store.Goals, today); ok {
		snap.HasActiveGoal = true
		snap.GoalName = goal.Name
		snap.GoalProgress = goal.Progress()
		snap.GoalDaysLeft = today.DaysUntil(goal.Deadline)
	}
	return snap
}

// closestActiveGoal picks the unfinished goal with the nearest future
// deadline.
func closestActiveGoal(goals []core.Goal, today core.Date) (core.Goal, bool) {
	var closest core.Goal
	found := false
	for _, g := range goals {
		if g.CurrentAmount.Cents >= g.TargetAmount.Cents || !g.Deadline.After(today.Time) {
			continue
		}
		if !found || g.Deadline.Before(closest.Deadline.Time) {
			closest = g
			found = true
		}
	}
	return closest, found
}

// Generate runs every rule in order against a fresh snapshot. Returns nil
// when insights are disabled in settings. Rerunning on unchanged state
// yields an identical list.
func (e *InsightEngine) Generate(today core.Date) []core.Insight {
	if !e.store.Settings.AIInsights {
		return nil
	}
	snap := e.Snapshot(today)

	var insights []core.Insight
	for _, rule := range e.rules {
		if ins, ok := rule(snap); ok {
			insights = append(insights, ins)
		}
	}
	return insights
}

// Top returns the first n insights in generation order; the summary view
// shows three.
func (e *InsightEngine) Top(today core.Date, n int) []core.Insight {
	insights := e.Generate(today)
	if len(insights) > n {
		insights = insights[:n]
	}
	return insights
}

// savingsRateRule emits exactly one of five mutually exclusive insights
// about the lifetime savings rate. A rate of exactly zero lands in the
// room-for-improvement bucket.
func savingsRateRule(s Snapshot) (core.Insight, bool) {
	if !s.Summary.HasIncome {
		return core.Insight{
			Title:   "Start Tracking Your Income",
			Content: "Add your income transactions to get personalized financial insights and track your savings progress.",
			Type:    core.InsightWarning,
			Icon:    "chart-line",
		}, true
	}
	rate := s.Summary.SavingsRate
	switch {
	case rate > 20:
		return core.Insight{
			Title:   "Excellent Savings Rate!",
			Content: fmt.Sprintf("You're saving %.1f%% of your income. This is well above the recommended 20%% savings rate. Keep up the great work!", rate),
			Type:    core.InsightPositive,
			Icon:    "piggy-bank",
		}, true
	case rate > 10:
		return core.Insight{
			Title:   "Good Savings Habits",
			Content: fmt.Sprintf("You're saving %.1f%% of your income. Consider increasing to 20%% for better financial security.", rate),
			Type:    core.InsightPositive,
			Icon:    "thumbs-up",
		}, true
	case rate >= 0:
		return core.Insight{
			Title:   "Room for Improvement",
			Content: fmt.Sprintf("You're saving %.1f%% of your income. Try to increase your savings rate to at least 10%% by reviewing your expenses.", rate),
			Type:    core.InsightWarning,
			Icon:    "exclamation-triangle",
		}, true
	default:
		return core.Insight{
			Title:   "Spending Exceeds Income",
			Content: fmt.Sprintf("Your expenses are %.1f%% higher than your income. Review your spending to identify areas to cut back.", math.Abs(rate)),
			Type:    core.InsightNegative,
			Icon:    "exclamation-circle",
		}, true
	}
}

// concentrationRule warns when one category dominates total spending.
func concentrationRule(s Snapshot) (core.Insight, bool) {
	if !s.HasExpenses || s.TopCategoryShare <= 40 {
		return core.Insight{}, false
	}
	return core.Insight{
		Title:   "High Spending Concentration",
		Content: fmt.Sprintf("Your %s expenses account for %.1f%% of total spending. Consider diversifying or optimizing this category.", s.TopCategory, s.TopCategoryShare),
		Type:    core.InsightWarning,
		Icon:    "chart-pie",
	}, true
}

// monthTrendRule compares the current calendar month's spending to the
// prior month's. Both months must be nonzero.
func monthTrendRule(s Snapshot) (core.Insight, bool) {
	if s.LastMonthExpense.Cents == 0 || s.CurrentMonthExpense.Cents == 0 {
		return core.Insight{}, false
	}
	change := float64(s.CurrentMonthExpense.Cents-s.LastMonthExpense.Cents) /
		float64(s.LastMonthExpense.Cents) * 100
	switch {
	case change > 25:
		return core.Insight{
			Title:   "Spending Increased Significantly",
			Content: fmt.Sprintf("Your spending this month is %.1f%% higher than last month. Review recent transactions to understand why.", change),
			Type:    core.InsightWarning,
			Icon:    "arrow-up",
		}, true
	case change < -20:
		return core.Insight{
			Title:   "Great Job Reducing Expenses!",
			Content: fmt.Sprintf("Your spending this month is %.1f%% lower than last month. Keep up the good work!", math.Abs(change)),
			Type:    core.InsightPositive,
			Icon:    "arrow-down",
		}, true
	}
	return core.Insight{}, false
}

// budgetHealthRule reads the evaluator's health score: below 50 warns,
// a perfect score with at least one budget celebrates.
func budgetHealthRule(s Snapshot) (core.Insight, bool) {
	if s.BudgetCount == 0 {
		return core.Insight{}, false
	}
	switch {
	case s.HealthScore < 50:
		return core.Insight{
			Title:   "Budget Attention Needed",
			Content: fmt.Sprintf("Only %d%% of your budgets are on track. Review your spending to stay within limits.", s.HealthScore),
			Type:    core.InsightWarning,
			Icon:    "wallet",
		}, true
	case s.HealthScore == 100:
		return core.Insight{
			Title:   "All Budgets On Track!",
			Content: "Great job! You're staying within all your budget limits. Consider setting more ambitious goals.",
			Type:    core.InsightPositive,
			Icon:    "check-circle",
		}, true
	}
	return core.Insight{}, false
}

// goalProgressRule looks at the nearest-deadline active goal. The almost-
// achieved branch wins whenever progress is high enough; the deadline
// warning only fires for goals both close and behind.
func goalProgressRule(s Snapshot) (core.Insight, bool) {
	if !s.HasActiveGoal {
		return core.Insight{}, false
	}
	switch {
	case s.GoalDaysLeft < 30 && s.GoalProgress < 50:
		return core.Insight{
			Title:   "Goal Deadline Approaching",
			Content: fmt.Sprintf("Your %q goal is %.1f%% complete with only %d days left. Consider adjusting your savings plan.", s.GoalName, s.GoalProgress, s.GoalDaysLeft),
			Type:    core.InsightWarning,
			Icon:    "bullseye",
		}, true
	case s.GoalProgress > 75:
		return core.Insight{
			Title:   "Goal Almost Achieved!",
			Content: fmt.Sprintf("You're %.1f%% towards your %q goal. You're almost there!", s.GoalProgress, s.GoalName),
			Type:    core.InsightPositive,
			Icon:    "trophy",
		}, true
	}
	return core.Insight{}, false
}

// volumeRule nudges new users with little or no history.
func volumeRule(s Snapshot) (core.Insight, bool) {
	switch {
	case s.TransactionCount == 0:
		return core.Insight{
			Title:   "Start Tracking Your Finances",
			Content: "Add your first transaction to begin receiving personalized financial insights and recommendations.",
			Type:    core.InsightInfo,
			Icon:    "plus-circle",
		}, true
	case s.TransactionCount < 5:
		return core.Insight{
			Title:   "Build Your Financial History",
			Content: "Add more transactions to get more accurate insights and better financial recommendations.",
			Type:    core.InsightInfo,
			Icon:    "history",
		}, true
	}
	return core.Insight{}, false
}
