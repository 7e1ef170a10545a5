package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"smartbudget/internal/core"
	"smartbudget/internal/store"
)

// CheckBudgetAlerts walks every budgeted category after a transaction save
// and appends a persisted notification for the ones running hot: a warning
// above 90% usage, an alert once the budget is exceeded. This side channel
// is independent of the insight engine; notifications survive reloads,
// insights do not.
func CheckBudgetAlerts(ctx context.Context, s *store.RecordStore, eval *BudgetEvaluator, now time.Time) {
	currency := s.Settings.Currency

	for _, st := range eval.Evaluate() {
		switch {
		case st.Usage > 100:
			over := st.Spent.Sub(st.Limit)
			s.AddNotification(core.Notification{
				ID:        store.NewID("NT"),
				Title:     "Budget Exceeded",
				Message:   fmt.Sprintf("You've exceeded your %s budget by %s.", st.Category, over.Format(currency)),
				Type:      core.NotifyAlert,
				Timestamp: now,
			})
			slog.WarnContext(ctx, "Budget exceeded",
				"category", st.Category,
				"over_cents", over.Cents)
		case st.Usage > 90:
			s.AddNotification(core.Notification{
				ID:        store.NewID("NT"),
				Title:     "Budget Alert",
				Message:   fmt.Sprintf("You've used %.1f%% of your %s budget.", st.Usage, st.Category),
				Type:      core.NotifyWarning,
				Timestamp: now,
			})
		}
	}
}
