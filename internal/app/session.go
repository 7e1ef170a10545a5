// Package app boots a tracker session: configuration, logging, storage,
// and the services wired on top. The presentation layer talks to a Session
// and nothing below it.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"smartbudget/internal/backup"
	"smartbudget/internal/config"
	"smartbudget/internal/core"
	"smartbudget/internal/services"
	"smartbudget/internal/storage"
	"smartbudget/internal/store"
)

type Session struct {
	cfg     *config.Config
	kv      *storage.KVStore
	store   *store.RecordStore
	tracker *services.Tracker
	rng     *rand.Rand
}

// Start loads configuration, opens storage, restores the record store, and
// processes any due recurring rules. The returned session owns the storage
// handle; callers must Close it.
func Start(ctx context.Context) (*Session, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	kv, err := storage.Open(cfg.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	s := store.New()
	if err := kv.Load(ctx, s); err != nil {
		kv.Close()
		return nil, fmt.Errorf("load store: %w", err)
	}

	seed := cfg.ForecastSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	session := &Session{
		cfg:     cfg,
		kv:      kv,
		store:   s,
		tracker: services.NewTracker(s, kv),
		rng:     rand.New(rand.NewSource(seed)),
	}

	// Due recurring rules materialize once per session, before anything
	// reads the store.
	session.tracker.ProcessRecurring(ctx, core.Today())

	slog.InfoContext(ctx, "Session started",
		"db_path", cfg.SQLiteDBPath,
		"transactions", len(s.Transactions))
	return session, nil
}

func (s *Session) Close() error {
	return s.kv.Close()
}

func (s *Session) Tracker() *services.Tracker { return s.tracker }
func (s *Session) Store() *store.RecordStore  { return s.store }

// Forecast projects the next three months using the session's randomness
// source; a FORECAST_SEED in the environment makes it reproducible.
func (s *Session) Forecast() []services.MonthPoint {
	return s.tracker.Forecast(s.rng)
}

// Export bundles the store into a backup document.
func (s *Session) Export(now time.Time) ([]byte, error) {
	return backup.Export(s.store, now)
}

// Import replaces the store from a backup document and persists the
// result. A malformed document aborts before anything changes.
func (s *Session) Import(ctx context.Context, data []byte) error {
	if err := backup.Import(s.store, data); err != nil {
		return err
	}
	if err := s.kv.Save(ctx, s.store); err != nil {
		slog.ErrorContext(ctx, "Failed to persist imported data", "error", err)
	}
	return nil
}
