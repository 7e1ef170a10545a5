package services

import (
	"context"
	"log/slog"

	"smartbudget/internal/core"
	"smartbudget/internal/store"
)

// RecurringProcessor materializes transactions from due recurring rules.
type RecurringProcessor struct {
	store *store.RecordStore
}

func NewRecurringProcessor(s *store.RecordStore) *RecurringProcessor {
	return &RecurringProcessor{store: s}
}

// ProcessDue fires every rule whose NextDate is on or before today. Each
// firing rule materializes exactly one transaction dated at its NextDate
// and advances by one period. A rule several periods overdue still fires
// only once per invocation; it catches up across future invocations.
// Returns the number of transactions created.
func (p *RecurringProcessor) ProcessDue(ctx context.Context, today core.Date) int {
	created := 0

	for i := range p.store.Recurring {
		rule := p.store.Recurring[i]
		if rule.NextDate.After(today.Time) {
			continue
		}

		tx := rule.Template
		tx.ID = store.NewID("TX")
		tx.Date = rule.NextDate
		tx.Note = rule.Template.Note + " (Recurring)"
		tx.Recurring = true
		p.store.AddTransaction(tx)

		p.store.Recurring[i] = rule.Advanced()
		created++

		slog.InfoContext(ctx, "Created transaction from recurring rule",
			"rule_id", rule.ID(),
			"category", tx.Category,
			"amount_cents", tx.Amount.Cents,
			"date", tx.Date.String(),
			"next_date", p.store.Recurring[i].NextDate.String())
	}

	if created > 0 {
		slog.InfoContext(ctx, "Recurring processing complete",
			"created", created,
			"total_rules", len(p.store.Recurring))
	}
	return created
}
