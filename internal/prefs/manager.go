// Package prefs persists user preferences in a small SQLite key/value store.
package prefs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const (
	keyAutoCheckForUpdates     = "prefs:auto_check_for_updates"
	keyLastUpdateCheck         = "prefs:last_update_check"
	keyUseCustomBackupLocation = "prefs:use_custom_backup_location"
	keyCustomBackupLocation    = "prefs:custom_backup_location"
	keyLocale                  = "prefs:locale"
)

// Manager handles persistent preference storage for snipd using SQLite.
// Setters notify subscribers registered for the corresponding preference.
type Manager struct {
	db *sql.DB

	mu            sync.Mutex
	autoCheckSubs []func(bool)
}

// NewManager opens (creating if needed) the preferences database at dbPath.
func NewManager(dbPath string) (*Manager, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open preferences database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
	}

	ctx := context.Background()
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if err := runSchemaMigration(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run schema migration: %w", err)
	}

	return &Manager{db: db}, nil
}

// runSchemaMigration ensures the prefs table exists
func runSchemaMigration(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS prefs (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			updated_at INTEGER NOT NULL DEFAULT (unixepoch())
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create prefs table: %w", err)
	}
	return nil
}

// Close closes the preferences database.
func (m *Manager) Close() error {
	if m.db != nil {
		if err := m.db.Close(); err != nil {
			return fmt.Errorf("failed to close preferences database: %w", err)
		}
	}
	return nil
}

func (m *Manager) getValue(ctx context.Context, key string, out any) (found bool, err error) {
	var valueJSON []byte
	err = m.db.QueryRowContext(ctx,
		"SELECT value FROM prefs WHERE key = ?", key).Scan(&valueJSON)

	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read preference %s: %w", key, err)
	}

	if err := json.Unmarshal(valueJSON, out); err != nil {
		return false, fmt.Errorf("failed to decode preference %s: %w", key, err)
	}
	return true, nil
}

func (m *Manager) setValue(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode preference %s: %w", key, err)
	}

	_, err = m.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO prefs (key, value) VALUES (?, ?)", key, data)
	if err != nil {
		return fmt.Errorf("failed to write preference %s: %w", key, err)
	}
	return nil
}

// AutoCheckForUpdates returns whether periodic update checks are enabled.
// Defaults to true when never set.
func (m *Manager) AutoCheckForUpdates(ctx context.Context) (bool, error) {
	value := true
	if _, err := m.getValue(ctx, keyAutoCheckForUpdates, &value); err != nil {
		return true, err
	}
	return value, nil
}

// SetAutoCheckForUpdates persists the auto-check preference and notifies
// subscribers with the new value.
func (m *Manager) SetAutoCheckForUpdates(ctx context.Context, enabled bool) error {
	if err := m.setValue(ctx, keyAutoCheckForUpdates, enabled); err != nil {
		return err
	}

	m.mu.Lock()
	subs := make([]func(bool), len(m.autoCheckSubs))
	copy(subs, m.autoCheckSubs)
	m.mu.Unlock()

	for _, sub := range subs {
		sub(enabled)
	}
	return nil
}

// SubscribeAutoCheck registers a callback invoked from every
// SetAutoCheckForUpdates call, on the caller's goroutine.
func (m *Manager) SubscribeAutoCheck(fn func(enabled bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.autoCheckSubs = append(m.autoCheckSubs, fn)
}

// LastUpdateCheck returns the time of the last completed update check. A
// zero time means no check has ever been recorded.
func (m *Manager) LastUpdateCheck(ctx context.Context) (time.Time, error) {
	var value time.Time
	found, err := m.getValue(ctx, keyLastUpdateCheck, &value)
	if err != nil {
		return time.Time{}, err
	}
	if !found {
		return time.Time{}, nil
	}
	return value, nil
}

// SetLastUpdateCheck records the completion time of an update check.
func (m *Manager) SetLastUpdateCheck(ctx context.Context, at time.Time) error {
	return m.setValue(ctx, keyLastUpdateCheck, at)
}

// UseCustomBackupLocation returns whether backups go to a user-chosen
// directory. Defaults to false.
func (m *Manager) UseCustomBackupLocation(ctx context.Context) (bool, error) {
	var value bool
	if _, err := m.getValue(ctx, keyUseCustomBackupLocation, &value); err != nil {
		return false, err
	}
	return value, nil
}

// SetUseCustomBackupLocation persists the custom-backup toggle.
func (m *Manager) SetUseCustomBackupLocation(ctx context.Context, use bool) error {
	return m.setValue(ctx, keyUseCustomBackupLocation, use)
}

// CustomBackupLocation returns the user-chosen backup directory, empty when
// unset.
func (m *Manager) CustomBackupLocation(ctx context.Context) (string, error) {
	var value string
	if _, err := m.getValue(ctx, keyCustomBackupLocation, &value); err != nil {
		return "", err
	}
	return value, nil
}

// SetCustomBackupLocation persists the user-chosen backup directory.
func (m *Manager) SetCustomBackupLocation(ctx context.Context, dir string) error {
	return m.setValue(ctx, keyCustomBackupLocation, dir)
}

// Locale returns the user-chosen interface language, empty for the system
// default.
func (m *Manager) Locale(ctx context.Context) (string, error) {
	var value string
	if _, err := m.getValue(ctx, keyLocale, &value); err != nil {
		return "", err
	}
	return value, nil
}

// SetLocale persists the interface language.
func (m *Manager) SetLocale(ctx context.Context, locale string) error {
	return m.setValue(ctx, keyLocale, locale)
}
