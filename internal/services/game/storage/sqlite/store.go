// Package sqlite provides a SQLite-backed save store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/louisbranch/encore/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/encore/internal/services/game/storage"
	"github.com/louisbranch/encore/internal/services/game/storage/sqlite/migrations"
)

// Store persists game saves in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite save store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutSave inserts or replaces the save for a slot.
func (s *Store) PutSave(ctx context.Context, save storage.Save) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	slot := strings.TrimSpace(save.Slot)
	if slot == "" {
		return fmt.Errorf("slot is required")
	}
	if len(save.Payload) == 0 {
		return fmt.Errorf("payload is required")
	}
	updatedAt := save.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	_, err := s.sqlDB.ExecContext(ctx, `
	INSERT INTO saves (slot, payload, updated_at_ms)
	VALUES (?, ?, ?)
	ON CONFLICT(slot) DO UPDATE SET
		payload = excluded.payload,
		updated_at_ms = excluded.updated_at_ms
	`, slot, save.Payload, updatedAt.UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("put save: %w", err)
	}
	return nil
}

// GetSave loads the save for a slot.
func (s *Store) GetSave(ctx context.Context, slot string) (storage.Save, error) {
	if err := ctx.Err(); err != nil {
		return storage.Save{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Save{}, fmt.Errorf("storage is not configured")
	}
	slot = strings.TrimSpace(slot)
	if slot == "" {
		return storage.Save{}, fmt.Errorf("slot is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
	SELECT payload, updated_at_ms FROM saves WHERE slot = ?
	`, slot)

	var payload []byte
	var updatedAtMs int64
	if err := row.Scan(&payload, &updatedAtMs); err != nil {
		if err == sql.ErrNoRows {
			return storage.Save{}, storage.ErrNotFound
		}
		return storage.Save{}, fmt.Errorf("get save: %w", err)
	}
	return storage.Save{
		Slot:      slot,
		Payload:   payload,
		UpdatedAt: time.UnixMilli(updatedAtMs).UTC(),
	}, nil
}

// DeleteSave removes the save for a slot. Deleting an empty slot is not
// an error.
func (s *Store) DeleteSave(ctx context.Context, slot string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	slot = strings.TrimSpace(slot)
	if slot == "" {
		return fmt.Errorf("slot is required")
	}

	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM saves WHERE slot = ?`, slot); err != nil {
		return fmt.Errorf("delete save: %w", err)
	}
	return nil
}

// ListSlots returns every occupied slot in lexical order.
func (s *Store) ListSlots(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `SELECT slot FROM saves ORDER BY slot`)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	var slots []string
	for rows.Next() {
		var slot string
		if err := rows.Scan(&slot); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate slots: %w", err)
	}
	return slots, nil
}
