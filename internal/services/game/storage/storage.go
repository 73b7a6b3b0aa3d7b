// Package storage defines the persistence contract for game saves.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates the requested save slot is empty.
	ErrNotFound = errors.New("save not found")
)

// Save is one persisted snapshot blob keyed by slot. The payload is the
// JSON encoding of a snapshot; storage never inspects it.
type Save struct {
	Slot      string
	Payload   []byte
	UpdatedAt time.Time
}

// SaveStore persists game saves. The snapshot is read once at startup
// and written after every accepted command.
type SaveStore interface {
	PutSave(ctx context.Context, save Save) error
	GetSave(ctx context.Context, slot string) (Save, error)
	DeleteSave(ctx context.Context, slot string) error
	ListSlots(ctx context.Context) ([]string, error)
}
