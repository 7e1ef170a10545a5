// Package storage persists the record store as JSON blobs in SQLite, one
// row per collection. The whole collection is rewritten on every save; at
// this data size that is simpler and safer than row-level diffing.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"smartbudget/internal/core"
	"smartbudget/internal/store"

	_ "modernc.org/sqlite"
)

const (
	keyTransactions  = "transactions"
	keyBudgets       = "budgets"
	keyGoals         = "goals"
	keySettings      = "settings"
	keyUser          = "user"
	keyRecurring     = "recurring"
	keyNotifications = "notifications"
)

type KVStore struct {
	db *sql.DB
}

func Open(dbPath string) (*KVStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &KVStore{db: db}, nil
}

func (k *KVStore) Close() error {
	if k.db != nil {
		return k.db.Close()
	}
	return nil
}

// Load populates the record store from disk. A missing or corrupt blob
// never fails the load: that collection keeps its defaults and the problem
// is logged, so one bad write can't lock the user out of the rest of their
// data.
func (k *KVStore) Load(ctx context.Context, s *store.RecordStore) error {
	loadKey(ctx, k, keyTransactions, &s.Transactions)
	loadKey(ctx, k, keyBudgets, &s.Budgets)
	loadKey(ctx, k, keyGoals, &s.Goals)
	loadKey(ctx, k, keySettings, &s.Settings)
	loadKey(ctx, k, keyUser, &s.User)
	loadKey(ctx, k, keyRecurring, &s.Recurring)
	loadKey(ctx, k, keyNotifications, &s.Notifications)

	if s.Budgets == nil {
		s.Budgets = make(map[string]core.Budget)
	}

	slog.InfoContext(ctx, "Record store loaded",
		"transactions", len(s.Transactions),
		"budgets", len(s.Budgets),
		"goals", len(s.Goals),
		"recurring", len(s.Recurring))

	return nil
}

func loadKey[T any](ctx context.Context, k *KVStore, key string, dst *T) {
	var raw string
	err := k.db.QueryRowContext(ctx,
		"SELECT value FROM collections WHERE key = ?", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return
	}
	if err != nil {
		slog.WarnContext(ctx, "Failed to read collection, keeping defaults",
			"key", key, "error", err)
		return
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		slog.WarnContext(ctx, "Corrupt collection blob, keeping defaults",
			"key", key, "error", err)
	}
}

// Save writes every collection back to disk inside a single transaction.
func (k *KVStore) Save(ctx context.Context, s *store.RecordStore) error {
	tx, err := k.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	collections := []struct {
		key   string
		value any
	}{
		{keyTransactions, s.Transactions},
		{keyBudgets, s.Budgets},
		{keyGoals, s.Goals},
		{keySettings, s.Settings},
		{keyUser, s.User},
		{keyRecurring, s.Recurring},
		{keyNotifications, s.Notifications},
	}

	for _, c := range collections {
		blob, err := json.Marshal(c.value)
		if err != nil {
			return fmt.Errorf("encode %s: %w", c.key, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO collections (key, value, updated_at)
			VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(key) DO UPDATE SET
				value = excluded.value,
				updated_at = CURRENT_TIMESTAMP`,
			c.key, string(blob))
		if err != nil {
			return fmt.Errorf("write %s: %w", c.key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}
