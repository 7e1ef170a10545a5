package core

import (
	"errors"
	"testing"
)

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		ID:       "TX-1",
		Type:     Expense,
		Category: "Food",
		Amount:   Money{Cents: 2500},
		Date:     NewDate(2024, 3, 10),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name string
		tx   Transaction
		want error
	}{
		{"bad type", Transaction{Type: "transfer", Category: "Food", Amount: Money{Cents: 1}, Date: NewDate(2024, 1, 1)}, ErrInvalidType},
		{"empty category", Transaction{Type: Expense, Category: "  ", Amount: Money{Cents: 1}, Date: NewDate(2024, 1, 1)}, ErrEmptyCategory},
		{"zero amount", Transaction{Type: Expense, Category: "Food", Date: NewDate(2024, 1, 1)}, ErrInvalidAmount},
		{"zero date", Transaction{Type: Expense, Category: "Food", Amount: Money{Cents: 1}}, ErrInvalidDate},
	}
	for _, tc := range cases {
		if err := tc.tx.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestBudgetValidate(t *testing.T) {
	if err := (Budget{Amount: Money{Cents: 50000}, Period: PeriodMonthly}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Budget{Amount: Money{Cents: 50000}, Period: "weekly"}).Validate(); !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
	if err := (Budget{Period: PeriodMonthly}).Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestGoalValidate(t *testing.T) {
	good := Goal{
		ID:           "GL-1",
		Name:         "Emergency Fund",
		TargetAmount: Money{Cents: 100000},
		Deadline:     NewDate(2024, 12, 31),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	over := good
	over.CurrentAmount = Money{Cents: 100001}
	if err := over.Validate(); !errors.Is(err, ErrGoalExceedsTarget) {
		t.Fatalf("expected ErrGoalExceedsTarget, got %v", err)
	}

	unnamed := good
	unnamed.Name = " "
	if err := unnamed.Validate(); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}

func TestGoalProgress(t *testing.T) {
	g := Goal{TargetAmount: Money{Cents: 100000}, CurrentAmount: Money{Cents: 80000}}
	if got := g.Progress(); got != 80 {
		t.Fatalf("expected 80, got %v", got)
	}
	if got := (Goal{}).Progress(); got != 0 {
		t.Fatalf("zero target should report 0, got %v", got)
	}
}

func TestRecurringRuleAdvanced(t *testing.T) {
	tmpl := Transaction{
		ID:       "TX-1",
		Type:     Expense,
		Category: "Utilities",
		Amount:   Money{Cents: 9900},
		Date:     NewDate(2024, 1, 15),
	}
	cases := []struct {
		freq Frequency
		next Date
		want Date
	}{
		{Weekly, NewDate(2024, 1, 15), NewDate(2024, 1, 22)},
		{Monthly, NewDate(2024, 1, 15), NewDate(2024, 2, 15)},
		{Monthly, NewDate(2024, 1, 31), NewDate(2024, 3, 2)}, // normalized
		{Yearly, NewDate(2024, 1, 15), NewDate(2025, 1, 15)},
	}
	for _, tc := range cases {
		r := RecurringRule{Template: tmpl, Frequency: tc.freq, NextDate: tc.next}
		if got := r.Advanced().NextDate; got != tc.want {
			t.Fatalf("%s from %s: expected %s, got %s", tc.freq, tc.next, tc.want, got)
		}
	}
}

func TestDefaults(t *testing.T) {
	s := DefaultSettings()
	if s.Theme != ThemeLight || s.Currency != USD || !s.AIInsights {
		t.Fatalf("unexpected defaults: %+v", s)
	}
	u := DefaultUser()
	if u.Currency != USD || u.ProfileCompleted {
		t.Fatalf("unexpected defaults: %+v", u)
	}
}
