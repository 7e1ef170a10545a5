// Package backup serializes the whole record store to a single JSON
// document and restores it. Import replaces everything; there is no merge.
package backup

import (
	"encoding/json"
	"errors"
	"time"

	"smartbudget/internal/core"
	"smartbudget/internal/store"
)

var ErrInvalidFormat = errors.New("invalid backup format")

// Document is the export envelope. Every collection rides along plus the
// export timestamp; notifications are included so a restore brings back
// unacknowledged alerts.
type Document struct {
	Transactions  []core.Transaction     `json:"transactions"`
	Budgets       map[string]core.Budget `json:"budgets"`
	Goals         []core.Goal            `json:"goals"`
	Settings      core.Settings          `json:"settings"`
	User          core.User              `json:"user"`
	Recurring     []core.RecurringRule   `json:"recurringTransactions"`
	Notifications []core.Notification    `json:"notifications"`
	ExportDate    time.Time              `json:"exportDate"`
}

// Export bundles the store into an indented JSON document.
func Export(s *store.RecordStore, now time.Time) ([]byte, error) {
	doc := Document{
		Transactions:  s.Transactions,
		Budgets:       s.Budgets,
		Goals:         s.Goals,
		Settings:      s.Settings,
		User:          s.User,
		Recurring:     s.Recurring,
		Notifications: s.Notifications,
		ExportDate:    now,
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Import replaces the store's contents with the document's. A document
// that fails to parse aborts the import and leaves the store untouched;
// absent top-level fields fall back to empty collections and default
// settings, so partial backups restore cleanly.
func Import(s *store.RecordStore, data []byte) error {
	var doc Document
	doc.Settings = core.DefaultSettings()
	doc.User = core.DefaultUser()
	if err := json.Unmarshal(data, &doc); err != nil {
		return ErrInvalidFormat
	}

	s.Reset()
	s.Transactions = doc.Transactions
	if doc.Budgets != nil {
		s.Budgets = doc.Budgets
	}
	s.Goals = doc.Goals
	s.Settings = doc.Settings
	s.User = doc.User
	s.Recurring = doc.Recurring
	s.Notifications = doc.Notifications
	return nil
}
