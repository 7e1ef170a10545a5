package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"smartbudget/internal/core"
	"smartbudget/internal/store"
)

// Persister is the save half of the persistence boundary. The tracker
// never reads through it; loading happens once at startup.
type Persister interface {
	Save(ctx context.Context, s *store.RecordStore) error
}

// Tracker orchestrates every user-triggered mutation: validate, mutate the
// in-memory store, run side effects, then persist. The store mutation
// always lands first; a failed persist is logged and reported but never
// rolls the memory state back, so one bad write can't eat a change the
// user already saw.
type Tracker struct {
	store     *store.RecordStore
	persister Persister

	agg       *Aggregator
	eval      *BudgetEvaluator
	insights  *InsightEngine
	series    *SeriesBuilder
	recurring *RecurringProcessor

	// onChange fires after every completed mutation so the presentation
	// layer can re-render. Nil is fine.
	onChange func()
}

func NewTracker(s *store.RecordStore, p Persister) *Tracker {
	agg := NewAggregator(s)
	eval := NewBudgetEvaluator(s, agg)
	return &Tracker{
		store:     s,
		persister: p,
		agg:       agg,
		eval:      eval,
		insights:  NewInsightEngine(s, agg, eval),
		series:    NewSeriesBuilder(agg),
		recurring: NewRecurringProcessor(s),
	}
}

func (t *Tracker) Store() *store.RecordStore         { return t.store }
func (t *Tracker) Aggregator() *Aggregator           { return t.agg }
func (t *Tracker) BudgetEvaluator() *BudgetEvaluator { return t.eval }
func (t *Tracker) InsightEngine() *InsightEngine     { return t.insights }
func (t *Tracker) SeriesBuilder() *SeriesBuilder     { return t.series }

func (t *Tracker) OnChange(fn func()) { t.onChange = fn }

// SaveTransaction creates or replaces a transaction. A transaction with an
// empty ID is new and gets one minted; otherwise the stored record with
// the same ID is overwritten wholesale.
//
// A new transaction marked recurring also creates a rule from it, due one
// period after the transaction date. Editing a recurring transaction later
// deliberately leaves its rule alone; the rule keeps materializing from
// the original template.
func (t *Tracker) SaveTransaction(ctx context.Context, tx core.Transaction, frequency core.Frequency) error {
	if tx.Note == "" {
		tx.Note = "No description"
	}
	isNew := tx.ID == ""
	if isNew {
		tx.ID = store.NewID("TX")
	}
	if err := tx.Validate(); err != nil {
		return err
	}
	if tx.Recurring {
		if err := frequency.Validate(); err != nil {
			return err
		}
	}

	if isNew {
		t.store.AddTransaction(tx)
		if tx.Recurring {
			rule := core.RecurringRule{
				Template:  tx,
				Frequency: frequency,
				NextDate:  tx.Date,
			}
			rule = rule.Advanced()
			t.store.AddRecurringRule(rule)
			slog.InfoContext(ctx, "Created recurring rule",
				"rule_id", rule.ID(),
				"frequency", frequency,
				"next_date", rule.NextDate.String())
		}
	} else {
		if err := t.store.UpdateTransaction(tx); err != nil {
			return err
		}
	}

	CheckBudgetAlerts(ctx, t.store, t.eval, time.Now())
	t.finish(ctx, "save transaction")
	return nil
}

// DeleteTransaction removes a transaction by id. Any rule created from it
// stays; recurring stops only when its rule is deleted.
func (t *Tracker) DeleteTransaction(ctx context.Context, id string) error {
	if err := t.store.DeleteTransaction(id); err != nil {
		return err
	}
	t.finish(ctx, "delete transaction")
	return nil
}

// SaveBudget sets or replaces the monthly budget for a category.
func (t *Tracker) SaveBudget(ctx context.Context, category string, amount core.Money, now time.Time) error {
	b := core.Budget{Amount: amount, Period: core.PeriodMonthly, CreatedAt: now}
	if err := b.Validate(); err != nil {
		return err
	}
	t.store.SetBudget(category, b)
	t.finish(ctx, "save budget")
	return nil
}

// DeleteBudget removes the budget for a category.
func (t *Tracker) DeleteBudget(ctx context.Context, category string) error {
	t.store.RemoveBudget(category)
	t.finish(ctx, "delete budget")
	return nil
}

// SaveGoal creates or replaces a savings goal.
func (t *Tracker) SaveGoal(ctx context.Context, g core.Goal, now time.Time) error {
	if g.ID == "" {
		g.ID = store.NewID("GL")
		g.CreatedAt = now
	}
	if err := g.Validate(); err != nil {
		return err
	}
	t.store.UpsertGoal(g)
	t.finish(ctx, "save goal")
	return nil
}

func (t *Tracker) DeleteGoal(ctx context.Context, id string) error {
	if err := t.store.DeleteGoal(id); err != nil {
		return err
	}
	t.finish(ctx, "delete goal")
	return nil
}

// ApplySuggestion accepts a budget suggestion as the category's budget.
func (t *Tracker) ApplySuggestion(ctx context.Context, s Suggestion, now time.Time) {
	t.eval.ApplySuggestion(s, now)
	t.finish(ctx, "apply suggestion")
}

// ProcessRecurring materializes due recurring transactions. Runs once per
// session before the dashboard first renders.
func (t *Tracker) ProcessRecurring(ctx context.Context, today core.Date) int {
	created := t.recurring.ProcessDue(ctx, today)
	if created > 0 {
		t.finish(ctx, "process recurring")
	}
	return created
}

// MarkNotificationsRead flips every notification to read, as happens when
// the notification surface opens.
func (t *Tracker) MarkNotificationsRead(ctx context.Context) {
	t.store.MarkAllNotificationsRead()
	t.finish(ctx, "mark notifications read")
}

// Insights regenerates the full insight list for today.
func (t *Tracker) Insights(today core.Date) []core.Insight {
	return t.insights.Generate(today)
}

// Forecast projects the next three months using the given randomness
// source.
func (t *Tracker) Forecast(rng *rand.Rand) []MonthPoint {
	return t.series.Forecast(rng)
}

// finish persists the store and notifies the change listener. Persistence
// is best effort: on failure the in-memory change stands and the error is
// logged for the user to be told the change may not survive a reload.
func (t *Tracker) finish(ctx context.Context, op string) {
	if t.persister != nil {
		if err := t.persister.Save(ctx, t.store); err != nil {
			slog.ErrorContext(ctx, "Failed to persist store",
				"op", op, "error", fmt.Errorf("save store: %w", err))
		}
	}
	if t.onChange != nil {
		t.onChange()
	}
}
