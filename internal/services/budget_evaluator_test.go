package services

import (
	"strings"
	"testing"
	"time"

	"smartbudget/internal/core"
	"smartbudget/internal/store"
)

func newEvaluator(s *store.RecordStore) *BudgetEvaluator {
	return NewBudgetEvaluator(s, NewAggregator(s))
}

func setBudget(s *store.RecordStore, category string, cents int64) {
	s.SetBudget(category, core.Budget{Amount: core.Money{Cents: cents}, Period: core.PeriodMonthly, CreatedAt: time.Now()})
}

func TestEvaluateOverBudget(t *testing.T) {
	s := seedStore(
		income("TX-1", 100000, core.NewDate(2024, 1, 5)),
		expense("TX-2", "Food", 30000, core.NewDate(2024, 1, 10)),
		expense("TX-3", "Food", 50000, core.NewDate(2024, 2, 10)),
	)
	setBudget(s, "Food", 20000)

	statuses := newEvaluator(s).Evaluate()
	if len(statuses) != 1 {
		t.Fatalf("expected 1 status, got %d", len(statuses))
	}
	st := statuses[0]
	if st.Spent.Cents != 80000 {
		t.Fatalf("expected spent 80000, got %d", st.Spent.Cents)
	}
	if st.Usage != 400 {
		t.Fatalf("expected usage 400, got %v", st.Usage)
	}
	if st.Health != HealthOver {
		t.Fatalf("expected over, got %s", st.Health)
	}
	if st.Remaining.Cents != -60000 {
		t.Fatalf("expected remaining -60000, got %d", st.Remaining.Cents)
	}
}

func TestEvaluateClassificationBoundaries(t *testing.T) {
	cases := []struct {
		spent int64
		want  BudgetHealth
	}{
		{8000, HealthHealthy},  // exactly 80%
		{8001, HealthWarning},  // just over 80%
		{10000, HealthWarning}, // exactly 100%
		{10001, HealthOver},
	}
	for _, tc := range cases {
		s := seedStore(expense("TX-1", "Food", tc.spent, core.NewDate(2024, 3, 1)))
		setBudget(s, "Food", 10000)
		st := newEvaluator(s).Evaluate()[0]
		if st.Health != tc.want {
			t.Fatalf("spent %d: expected %s, got %s", tc.spent, tc.want, st.Health)
		}
	}
}

func TestHealthScoreVacuousHundred(t *testing.T) {
	if got := newEvaluator(store.New()).HealthScore(); got != 100 {
		t.Fatalf("no budgets must score 100, got %d", got)
	}
}

func TestHealthScoreDecreasesAsBudgetsSlip(t *testing.T) {
	s := seedStore(
		expense("TX-1", "Food", 5000, core.NewDate(2024, 3, 1)),      // 50% of 10000
		expense("TX-2", "Transport", 9000, core.NewDate(2024, 3, 2)), // 90%
		expense("TX-3", "Shopping", 15000, core.NewDate(2024, 3, 3)), // 150%
	)
	setBudget(s, "Food", 10000)
	eval := newEvaluator(s)
	if got := eval.HealthScore(); got != 100 {
		t.Fatalf("one healthy budget: expected 100, got %d", got)
	}

	setBudget(s, "Transport", 10000)
	if got := eval.HealthScore(); got != 50 {
		t.Fatalf("one of two healthy: expected 50, got %d", got)
	}

	setBudget(s, "Shopping", 10000)
	if got := eval.HealthScore(); got != 33 {
		t.Fatalf("one of three healthy: expected 33, got %d", got)
	}
}

func TestSuggestionsSetBudget(t *testing.T) {
	today := core.NewDate(2024, 4, 15)
	s := seedStore(
		expense("TX-1", "Food", 10000, core.NewDate(2024, 2, 10)),
		expense("TX-2", "Food", 10000, core.NewDate(2024, 3, 10)),
		expense("TX-3", "Food", 10000, core.NewDate(2024, 4, 10)),
	)

	suggestions := newEvaluator(s).Suggestions(today)
	if len(suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d: %+v", len(suggestions), suggestions)
	}
	sg := suggestions[0]
	if sg.Category != "Food" || sg.Title != "Set budget for Food" {
		t.Fatalf("unexpected suggestion: %+v", sg)
	}
	// avg = 30000/3 = 10000, * 1.10 = 11000
	if sg.Amount.Cents != 11000 {
		t.Fatalf("expected 11000, got %d", sg.Amount.Cents)
	}
	if !strings.Contains(sg.Description, "$110.00") {
		t.Fatalf("description should carry the formatted amount: %q", sg.Description)
	}
}

func TestSuggestionsIncreaseAndOptimize(t *testing.T) {
	today := core.NewDate(2024, 4, 15)
	s := seedStore(
		expense("TX-1", "Food", 30000, core.NewDate(2024, 3, 10)),
		expense("TX-2", "Transport", 3000, core.NewDate(2024, 3, 11)),
	)
	// Food: avg 10000 against 5000 budget, usage 200% -> increase.
	setBudget(s, "Food", 5000)
	// Transport: avg 1000 against 10000 budget, usage 10% -> optimize.
	setBudget(s, "Transport", 10000)

	suggestions := newEvaluator(s).Suggestions(today)
	if len(suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d: %+v", len(suggestions), suggestions)
	}

	food := suggestions[0]
	if food.Title != "Increase Food budget" || food.Amount.Cents != 10500 {
		t.Fatalf("unexpected Food suggestion: %+v", food)
	}
	transport := suggestions[1]
	if transport.Title != "Optimize Transport budget" || transport.Amount.Cents != 1100 {
		t.Fatalf("unexpected Transport suggestion: %+v", transport)
	}
	if !strings.Contains(transport.Description, "only 10%") {
		t.Fatalf("optimize description should carry usage: %q", transport.Description)
	}
}

func TestSuggestionsFixedDivisorAndWindow(t *testing.T) {
	today := core.NewDate(2024, 4, 15)
	s := seedStore(
		// Only one month of data; the divisor is still 3.
		expense("TX-1", "Food", 30000, core.NewDate(2024, 4, 1)),
		// Outside the trailing window, ignored.
		expense("TX-2", "Food", 90000, core.NewDate(2024, 1, 20)),
	)

	suggestions := newEvaluator(s).Suggestions(today)
	if len(suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(suggestions))
	}
	// avg = 30000/3 = 10000, * 1.10 = 11000
	if suggestions[0].Amount.Cents != 11000 {
		t.Fatalf("expected 11000, got %d", suggestions[0].Amount.Cents)
	}
}

func TestSuggestionsSkipRentAndOther(t *testing.T) {
	today := core.NewDate(2024, 4, 15)
	s := seedStore(
		expense("TX-1", "Rent", 100000, core.NewDate(2024, 4, 1)),
		expense("TX-2", "Other", 5000, core.NewDate(2024, 4, 2)),
	)
	if got := newEvaluator(s).Suggestions(today); len(got) != 0 {
		t.Fatalf("Rent and Other must never be suggested, got %+v", got)
	}
}

func TestApplySuggestion(t *testing.T) {
	s := store.New()
	eval := newEvaluator(s)
	now := time.Now()

	eval.ApplySuggestion(Suggestion{Category: "Food", Amount: core.Money{Cents: 11000}}, now)

	b, ok := s.BudgetFor("Food")
	if !ok || b.Amount.Cents != 11000 || b.Period != core.PeriodMonthly {
		t.Fatalf("suggestion not applied: %+v ok=%v", b, ok)
	}
}
