// Package server hosts the encore game runtime: one persistent game
// session exposed over a websocket hub.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/encore/internal/content"
	"github.com/louisbranch/encore/internal/platform/id"
	"github.com/louisbranch/encore/internal/platform/random"
	"github.com/louisbranch/encore/internal/services/game/storage"
	"github.com/louisbranch/encore/internal/services/reply"
	"github.com/louisbranch/encore/internal/sim/action"
	"github.com/louisbranch/encore/internal/sim/snapshot"
)

// DefaultSlot is the save slot used when none is configured.
const DefaultSlot = "default"

// Session owns the authoritative snapshot for one save slot. Commands
// are applied serially; every accepted command persists the new snapshot
// before it becomes visible.
type Session struct {
	store   storage.SaveStore
	slot    string
	deps    action.Deps
	tracer  trace.Tracer
	replies reply.Generator

	mu   sync.Mutex
	snap *snapshot.Snapshot
}

// NewSession loads the slot's saved snapshot, or starts a fresh game
// when the slot is empty.
func NewSession(ctx context.Context, store storage.SaveStore, slot string) (*Session, error) {
	if slot == "" {
		slot = DefaultSlot
	}
	lib, err := content.Load()
	if err != nil {
		return nil, fmt.Errorf("load content tables: %w", err)
	}
	seed, err := random.NewSeed()
	if err != nil {
		return nil, fmt.Errorf("generate seed: %w", err)
	}

	session := &Session{
		store: store,
		slot:  slot,
		deps: action.Deps{
			Lib:   lib,
			Rng:   random.NewSource(seed),
			NewID: id.NewID,
		},
		tracer: otel.Tracer("encore/game"),
	}

	save, err := store.GetSave(ctx, slot)
	switch {
	case err == nil:
		snap := &snapshot.Snapshot{}
		if err := json.Unmarshal(save.Payload, snap); err != nil {
			return nil, fmt.Errorf("decode save %q: %w", slot, err)
		}
		if err := snap.Validate(); err != nil {
			return nil, fmt.Errorf("validate save %q: %w", slot, err)
		}
		session.snap = snap
	case errors.Is(err, storage.ErrNotFound):
		session.snap = snapshot.New()
	default:
		return nil, fmt.Errorf("load save %q: %w", slot, err)
	}
	return session, nil
}

// SetReplyGenerator installs the generator used to answer direct
// messages. A nil generator disables chat replies.
func (s *Session) SetReplyGenerator(gen reply.Generator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies = gen
}

// Snapshot returns a deep copy of the current state.
func (s *Session) Snapshot() *snapshot.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone()
}

// NewArtist adds a player entity to the roster and selects it. The first
// artist of a fresh game becomes the controlled entity.
func (s *Session) NewArtist(ctx context.Context, name, username string) (*snapshot.Snapshot, error) {
	if name == "" {
		return nil, fmt.Errorf("artist name is required")
	}
	entityID, err := s.deps.NewID()
	if err != nil {
		return nil, fmt.Errorf("generate entity id: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snap.Clone()
	next.Entities[entityID] = &snapshot.Entity{
		ID:    entityID,
		Name:  name,
		Money: 10_000,
		Social: snapshot.Social{
			Username: username,
		},
	}
	next.Roster = append(next.Roster, entityID)
	if next.ActiveEntityID == "" {
		next.ActiveEntityID = entityID
	}

	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}
	s.snap = next
	return next.Clone(), nil
}

// Dispatch applies one command. The returned snapshot is a copy; changed
// reports whether the command was accepted.
func (s *Session) Dispatch(ctx context.Context, cmd action.Command) (*snapshot.Snapshot, bool, error) {
	ctx, span := s.tracer.Start(ctx, "session.dispatch",
		trace.WithAttributes(attribute.String("command", fmt.Sprintf("%T", cmd))))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	next := action.Apply(s.snap, cmd, s.deps)
	if next == s.snap {
		span.SetAttributes(attribute.Bool("accepted", false))
		return s.snap.Clone(), false, nil
	}

	if err := s.persist(ctx, next); err != nil {
		span.RecordError(err)
		return nil, false, err
	}
	s.snap = next
	span.SetAttributes(attribute.Bool("accepted", true))
	return next.Clone(), true, nil
}

// DeliverReply asks the reply generator to answer the active entity's
// latest message to the given account and appends the answer to the
// thread. Replies are best effort: a nil result with no error means no
// reply was produced.
func (s *Session) DeliverReply(ctx context.Context, to string) (*snapshot.Snapshot, error) {
	s.mu.Lock()
	gen := s.replies
	entity := s.snap.ActiveEntity()
	if gen == nil || entity == nil || len(entity.Social.Threads[to]) == 0 {
		s.mu.Unlock()
		return nil, nil
	}
	persona := reply.Persona{Username: to, Kind: string(snapshot.UserFan)}
	if user, ok := entity.Social.Users[to]; ok {
		persona.Kind = string(user.Kind)
	}
	thread := make([]reply.Message, 0, len(entity.Social.Threads[to]))
	for _, msg := range entity.Social.Threads[to] {
		thread = append(thread, reply.Message{From: msg.From, Body: msg.Body})
	}
	s.mu.Unlock()

	// Generation can be slow, so the lock is released around it.
	text, err := gen.Reply(ctx, persona, thread)
	if err != nil {
		return nil, fmt.Errorf("generate reply from %q: %w", to, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snap.Clone()
	entity = next.ActiveEntity()
	if entity == nil || len(entity.Social.Threads[to]) == 0 {
		// The conversation went away while the reply was generated.
		return nil, nil
	}
	entity.Social.Threads[to] = append(entity.Social.Threads[to], snapshot.Message{
		From: to,
		Body: text,
		Week: next.Date,
	})
	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}
	s.snap = next
	return next.Clone(), nil
}

// Export returns the snapshot as a standalone JSON document.
func (s *Session) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(s.snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// Import replaces the session state with an exported snapshot document.
// The document is validated before anything is overwritten.
func (s *Session) Import(ctx context.Context, data []byte) (*snapshot.Snapshot, error) {
	snap := &snapshot.Snapshot{}
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("decode import: %w", err)
	}
	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("validate import: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(ctx, snap); err != nil {
		return nil, err
	}
	s.snap = snap
	return snap.Clone(), nil
}

// persist writes a snapshot to the slot. Callers hold the mutex.
func (s *Session) persist(ctx context.Context, snap *snapshot.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.store.PutSave(ctx, storage.Save{
		Slot:      s.slot,
		Payload:   payload,
		UpdatedAt: time.Now(),
	}); err != nil {
		return fmt.Errorf("persist save %q: %w", s.slot, err)
	}
	return nil
}
