package store

import (
	"errors"
	"strings"
	"testing"
	"time"

	"smartbudget/internal/core"
)

func tx(id, category string, cents int64) core.Transaction {
	return core.Transaction{
		ID:       id,
		Type:     core.Expense,
		Category: category,
		Amount:   core.Money{Cents: cents},
		Date:     core.NewDate(2024, 3, 10),
	}
}

func TestTransactionCRUD(t *testing.T) {
	s := New()
	s.AddTransaction(tx("TX-1", "Food", 1000))
	s.AddTransaction(tx("TX-2", "Transport", 500))

	got, ok := s.TransactionByID("TX-2")
	if !ok || got.Category != "Transport" {
		t.Fatalf("lookup failed: %+v ok=%v", got, ok)
	}

	updated := tx("TX-2", "Shopping", 750)
	if err := s.UpdateTransaction(updated); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = s.TransactionByID("TX-2")
	if got.Category != "Shopping" || got.Amount.Cents != 750 {
		t.Fatalf("update did not replace record: %+v", got)
	}

	if err := s.UpdateTransaction(tx("TX-9", "Food", 1)); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := s.DeleteTransaction("TX-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(s.Transactions) != 1 {
		t.Fatalf("expected 1 transaction left, got %d", len(s.Transactions))
	}
	if err := s.DeleteTransaction("TX-1"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBudgets(t *testing.T) {
	s := New()
	s.SetBudget("Food", core.Budget{Amount: core.Money{Cents: 20000}, Period: core.PeriodMonthly})
	s.SetBudget("Transport", core.Budget{Amount: core.Money{Cents: 10000}, Period: core.PeriodMonthly})
	s.SetBudget("Shopping", core.Budget{Period: core.PeriodMonthly}) // zero amount counts as absent

	if _, ok := s.BudgetFor("Shopping"); ok {
		t.Fatalf("zero-amount budget should be absent")
	}
	b, ok := s.BudgetFor("Food")
	if !ok || b.Amount.Cents != 20000 {
		t.Fatalf("lookup failed: %+v ok=%v", b, ok)
	}

	cats := s.BudgetedCategories()
	if len(cats) != 2 || cats[0] != "Food" || cats[1] != "Transport" {
		t.Fatalf("expected sorted [Food Transport], got %v", cats)
	}

	s.RemoveBudget("Food")
	if _, ok := s.BudgetFor("Food"); ok {
		t.Fatalf("removed budget still present")
	}
}

func TestGoals(t *testing.T) {
	s := New()
	g := core.Goal{ID: "GL-1", Name: "Vacation", TargetAmount: core.Money{Cents: 100000}, Deadline: core.NewDate(2024, 12, 31)}
	s.UpsertGoal(g)

	g.CurrentAmount = core.Money{Cents: 25000}
	s.UpsertGoal(g)
	if len(s.Goals) != 1 {
		t.Fatalf("upsert duplicated goal: %d", len(s.Goals))
	}
	if s.Goals[0].CurrentAmount.Cents != 25000 {
		t.Fatalf("upsert did not replace: %+v", s.Goals[0])
	}

	if err := s.DeleteGoal("GL-2"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.DeleteGoal("GL-1"); err != nil || len(s.Goals) != 0 {
		t.Fatalf("delete failed: err=%v goals=%d", err, len(s.Goals))
	}
}

func TestNotifications(t *testing.T) {
	s := New()
	s.AddNotification(core.Notification{ID: "NT-1", Title: "first", Timestamp: time.Now()})
	s.AddNotification(core.Notification{ID: "NT-2", Title: "second", Timestamp: time.Now()})

	if s.Notifications[0].ID != "NT-2" {
		t.Fatalf("newest notification should be first, got %s", s.Notifications[0].ID)
	}
	if got := s.UnreadNotifications(); got != 2 {
		t.Fatalf("expected 2 unread, got %d", got)
	}
	s.MarkAllNotificationsRead()
	if got := s.UnreadNotifications(); got != 0 {
		t.Fatalf("expected 0 unread after mark all, got %d", got)
	}
}

func TestRecurringRules(t *testing.T) {
	s := New()
	r := core.RecurringRule{
		Template:  tx("TX-1", "Utilities", 9900),
		Frequency: core.Monthly,
		NextDate:  core.NewDate(2024, 4, 10),
	}
	s.AddRecurringRule(r)

	if !s.HasRuleFor("TX-1") || s.HasRuleFor("TX-2") {
		t.Fatalf("rule lookup by transaction id broken")
	}

	r.NextDate = core.NewDate(2024, 5, 10)
	if err := s.ReplaceRule(r); err != nil {
		t.Fatalf("replace: %v", err)
	}
	got, _ := s.RuleByID("TX-1")
	if got.NextDate != core.NewDate(2024, 5, 10) {
		t.Fatalf("replace did not take: %s", got.NextDate)
	}
}

func TestNewID(t *testing.T) {
	id := NewID("TX")
	if !strings.HasPrefix(id, "TX-") || len(id) < 10 {
		t.Fatalf("unexpected id %q", id)
	}
	if NewID("TX") == id {
		t.Fatalf("ids should be unique")
	}
}

func TestReset(t *testing.T) {
	s := New()
	s.AddTransaction(tx("TX-1", "Food", 1000))
	s.SetBudget("Food", core.Budget{Amount: core.Money{Cents: 20000}, Period: core.PeriodMonthly})
	s.Settings.Theme = core.ThemeDark
	s.User.Name = "Ada"

	s.Reset()
	if len(s.Transactions) != 0 || len(s.Budgets) != 0 {
		t.Fatalf("reset left data behind")
	}
	if s.Settings != core.DefaultSettings() || s.User != core.DefaultUser() {
		t.Fatalf("reset did not restore defaults")
	}
}
