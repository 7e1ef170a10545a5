package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

// PeriodMonthly is the only budget period supported today. It is still a
// distinct type so adding quarterly/yearly periods later is an enum
// extension, not a schema change.
const PeriodMonthly BudgetPeriod = "monthly"

const (
	NotifyInfo    NotificationType = "info"
	NotifyWarning NotificationType = "warning"
	NotifyAlert   NotificationType = "alert"
)

const (
	InsightPositive InsightType = "positive"
	InsightWarning  InsightType = "warning"
	InsightNegative InsightType = "negative"
	InsightInfo     InsightType = "info"
)

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

type (
	TransactionType  string
	Frequency        string
	BudgetPeriod     string
	NotificationType string
	InsightType      string
	Theme            string

	// Transaction is a single dated income or expense entry. Identity is ID;
	// editing replaces the whole record by id.
	Transaction struct {
		ID        string          `json:"id"`
		Type      TransactionType `json:"type"`
		Category  string          `json:"category"`
		Amount    Money           `json:"amount"`
		Date      Date            `json:"date"`
		Note      string          `json:"note"`
		Recurring bool            `json:"recurring,omitempty"`
	}

	// Budget is a per-category monthly spending ceiling. The category itself
	// is the key in the record store, not a field here.
	Budget struct {
		Amount    Money        `json:"amount"`
		Period    BudgetPeriod `json:"period"`
		CreatedAt time.Time    `json:"createdAt"`
	}

	// Goal is a savings target with a deadline. CurrentAmount never exceeds
	// TargetAmount; the store enforces this at write time.
	Goal struct {
		ID            string    `json:"id"`
		Name          string    `json:"name"`
		TargetAmount  Money     `json:"targetAmount"`
		CurrentAmount Money     `json:"currentAmount"`
		Deadline      Date      `json:"deadline"`
		Category      string    `json:"category"`
		CreatedAt     time.Time `json:"createdAt"`
	}

	// RecurringRule periodically materializes new transactions from its
	// template. A rule is created once, when a recurring transaction is first
	// saved; later edits to that transaction deliberately do not rewrite the
	// rule. The template keeps the originating transaction's id.
	RecurringRule struct {
		Template  Transaction `json:"template"`
		Frequency Frequency   `json:"frequency"`
		NextDate  Date        `json:"nextDate"`
	}

	// Notification is a persisted, user-acknowledgeable alert. Read is the
	// only mutable field and flips in bulk when the notification surface
	// opens.
	Notification struct {
		ID        string           `json:"id"`
		Title     string           `json:"title"`
		Message   string           `json:"message"`
		Type      NotificationType `json:"type"`
		Timestamp time.Time        `json:"timestamp"`
		Read      bool             `json:"read"`
	}

	// Insight is a derived observation about financial behavior. Insights are
	// recomputed from scratch on demand and never persisted.
	Insight struct {
		Title   string      `json:"title"`
		Content string      `json:"content"`
		Type    InsightType `json:"type"`
		Icon    string      `json:"icon"`
	}

	Settings struct {
		Theme      Theme    `json:"theme"`
		Currency   Currency `json:"currency"`
		AIInsights bool     `json:"aiInsights"`
	}

	User struct {
		Name             string   `json:"name"`
		Currency         Currency `json:"currency"`
		ProfileCompleted bool     `json:"profileCompleted"`
	}
)

// Categories is the fixed category list transactions and budgets draw from.
var Categories = []string{
	"Food", "Rent", "Transport", "Shopping", "Entertainment",
	"Utilities", "Healthcare", "Education", "Other",
}

// SuggestionCategories are the categories the budget evaluator proposes
// budgets for. Rent and Other are excluded: rent is not discretionary and
// Other is a catch-all.
var SuggestionCategories = []string{
	"Food", "Transport", "Shopping", "Entertainment",
	"Utilities", "Healthcare", "Education",
}

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidType       = errors.New("invalid transaction type")
	ErrInvalidFrequency  = errors.New("invalid frequency")
	ErrInvalidPeriod     = errors.New("invalid budget period")
	ErrEmptyCategory     = errors.New("empty category")
	ErrEmptyName         = errors.New("empty name")
	ErrGoalExceedsTarget = errors.New("current amount exceeds target amount")
	ErrNotFound          = errors.New("record not found")
)

// DefaultSettings mirrors the state of a fresh, never-configured store.
func DefaultSettings() Settings {
	return Settings{Theme: ThemeLight, Currency: USD, AIInsights: true}
}

func DefaultUser() User {
	return User{Currency: USD}
}

func (t TransactionType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidType
	}
}

func (f Frequency) Validate() error {
	switch f {
	case Weekly, Monthly, Yearly:
		return nil
	default:
		return ErrInvalidFrequency
	}
}

func (t Transaction) Validate() error {
	if err := t.Type.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	return t.Date.Validate()
}

func (b Budget) Validate() error {
	if err := b.Amount.Validate(); err != nil {
		return err
	}
	if b.Period != PeriodMonthly {
		return ErrInvalidPeriod
	}
	return nil
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyName
	}
	if err := g.TargetAmount.Validate(); err != nil {
		return err
	}
	if g.CurrentAmount.Cents < 0 {
		return ErrInvalidAmount
	}
	if g.CurrentAmount.Cents > g.TargetAmount.Cents {
		return ErrGoalExceedsTarget
	}
	return g.Deadline.Validate()
}

// Progress returns completion as a percentage of the target.
func (g Goal) Progress() float64 {
	if g.TargetAmount.Cents <= 0 {
		return 0
	}
	return float64(g.CurrentAmount.Cents) / float64(g.TargetAmount.Cents) * 100
}

func (r RecurringRule) Validate() error {
	if err := r.Template.Validate(); err != nil {
		return err
	}
	if err := r.Frequency.Validate(); err != nil {
		return err
	}
	return r.NextDate.Validate()
}

// ID returns the rule's identity: the id of the transaction it was created
// from.
func (r RecurringRule) ID() string {
	return r.Template.ID
}

// Advanced returns the rule with NextDate moved forward exactly one period.
// Monthly advancement normalizes overflowing days (Jan 31 -> Mar 2/3) the
// same way time.AddDate calendar arithmetic does.
func (r RecurringRule) Advanced() RecurringRule {
	switch r.Frequency {
	case Weekly:
		r.NextDate = r.NextDate.AddDays(7)
	case Monthly:
		r.NextDate = r.NextDate.AddMonths(1)
	case Yearly:
		r.NextDate = r.NextDate.AddYears(1)
	}
	return r
}
