// Package store holds the full working state of the tracker in memory.
// Every collection lives here as plain Go values; persistence is layered on
// top by snapshotting the whole store. The store is owned by a single actor
// and is not safe for concurrent use.
package store

import (
	"sort"

	"github.com/google/uuid"

	"smartbudget/internal/core"
)

// RecordStore is the single authoritative copy of all user data.
type RecordStore struct {
	Transactions  []core.Transaction
	Budgets       map[string]core.Budget
	Goals         []core.Goal
	Notifications []core.Notification
	Recurring     []core.RecurringRule
	Settings      core.Settings
	User          core.User
}

func New() *RecordStore {
	return &RecordStore{
		Budgets:  make(map[string]core.Budget),
		Settings: core.DefaultSettings(),
		User:     core.DefaultUser(),
	}
}

// NewID mints a collection-scoped identifier, e.g. "TX-5f2b...".
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// Reset drops every collection and restores default settings. Used when an
// import replaces the store wholesale and by tests.
func (s *RecordStore) Reset() {
	s.Transactions = nil
	s.Budgets = make(map[string]core.Budget)
	s.Goals = nil
	s.Notifications = nil
	s.Recurring = nil
	s.Settings = core.DefaultSettings()
	s.User = core.DefaultUser()
}

func (s *RecordStore) AddTransaction(tx core.Transaction) {
	s.Transactions = append(s.Transactions, tx)
}

// UpdateTransaction replaces the stored record with the same id. The whole
// record is swapped; there is no field-level patching.
func (s *RecordStore) UpdateTransaction(tx core.Transaction) error {
	for i := range s.Transactions {
		if s.Transactions[i].ID == tx.ID {
			s.Transactions[i] = tx
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *RecordStore) DeleteTransaction(id string) error {
	for i := range s.Transactions {
		if s.Transactions[i].ID == id {
			s.Transactions = append(s.Transactions[:i], s.Transactions[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *RecordStore) TransactionByID(id string) (core.Transaction, bool) {
	for _, tx := range s.Transactions {
		if tx.ID == id {
			return tx, true
		}
	}
	return core.Transaction{}, false
}

// SetBudget sets or replaces the monthly budget for a category.
func (s *RecordStore) SetBudget(category string, b core.Budget) {
	s.Budgets[category] = b
}

func (s *RecordStore) RemoveBudget(category string) {
	delete(s.Budgets, category)
}

// BudgetFor returns the budget for a category. Entries with a non-positive
// amount count as absent.
func (s *RecordStore) BudgetFor(category string) (core.Budget, bool) {
	b, ok := s.Budgets[category]
	if !ok || b.Amount.Cents <= 0 {
		return core.Budget{}, false
	}
	return b, true
}

// BudgetedCategories returns the categories with a set budget in sorted
// order, so evaluation and suggestion output is deterministic.
func (s *RecordStore) BudgetedCategories() []string {
	cats := make([]string, 0, len(s.Budgets))
	for c, b := range s.Budgets {
		if b.Amount.Cents > 0 {
			cats = append(cats, c)
		}
	}
	sort.Strings(cats)
	return cats
}

// UpsertGoal inserts the goal, or replaces the stored goal with the same id.
func (s *RecordStore) UpsertGoal(g core.Goal) {
	for i := range s.Goals {
		if s.Goals[i].ID == g.ID {
			s.Goals[i] = g
			return
		}
	}
	s.Goals = append(s.Goals, g)
}

func (s *RecordStore) DeleteGoal(id string) error {
	for i := range s.Goals {
		if s.Goals[i].ID == id {
			s.Goals = append(s.Goals[:i], s.Goals[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

// AddNotification prepends, so the newest notification is always first.
func (s *RecordStore) AddNotification(n core.Notification) {
	s.Notifications = append([]core.Notification{n}, s.Notifications...)
}

func (s *RecordStore) UnreadNotifications() int {
	count := 0
	for _, n := range s.Notifications {
		if !n.Read {
			count++
		}
	}
	return count
}

func (s *RecordStore) MarkAllNotificationsRead() {
	for i := range s.Notifications {
		s.Notifications[i].Read = true
	}
}

func (s *RecordStore) AddRecurringRule(r core.RecurringRule) {
	s.Recurring = append(s.Recurring, r)
}

func (s *RecordStore) RuleByID(id string) (core.RecurringRule, bool) {
	for _, r := range s.Recurring {
		if r.ID() == id {
			return r, true
		}
	}
	return core.RecurringRule{}, false
}

// ReplaceRule swaps the stored rule with the same id.
func (s *RecordStore) ReplaceRule(r core.RecurringRule) error {
	for i := range s.Recurring {
		if s.Recurring[i].ID() == r.ID() {
			s.Recurring[i] = r
			return nil
		}
	}
	return core.ErrNotFound
}

// HasRuleFor reports whether a rule already exists for the transaction id.
func (s *RecordStore) HasRuleFor(txID string) bool {
	_, ok := s.RuleByID(txID)
	return ok
}

// TransactionsInCategory returns the expense transactions for a category.
// Categories come from the fixed list, so matching is exact.
func (s *RecordStore) TransactionsInCategory(category string) []core.Transaction {
	var out []core.Transaction
	for _, tx := range s.Transactions {
		if tx.Type == core.Expense && tx.Category == category {
			out = append(out, tx)
		}
	}
	return out
}
