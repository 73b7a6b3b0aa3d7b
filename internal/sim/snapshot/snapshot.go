// Package snapshot defines the single serializable game state.
//
// A Snapshot is the sole source of truth: every player command and every
// weekly advancement reads one snapshot and produces a complete new one.
// Nothing outside this package mutates a snapshot that has been returned to
// a caller; transitions clone first and mutate the clone.
package snapshot

import (
	"errors"
	"fmt"
)

// Award show identifiers.
const (
	ShowGrammys = "grammys"
	ShowOscars  = "oscars"
	ShowVMAs    = "vmas"
)

// AwardNominee is one scored contender in a running award cycle.
type AwardNominee struct {
	Key       string  `json:"key"`
	Title     string  `json:"title"`
	Artist    string  `json:"artist"`
	EntityID  string  `json:"entityId,omitempty"`
	Score     float64 `json:"score"`
	Synthetic bool    `json:"synthetic"`
}

// AwardCycle is the in-flight yearly state for one show. It is cleared
// after the ceremony resolves.
type AwardCycle struct {
	Show            string         `json:"show"`
	Year            int            `json:"year"`
	SubmissionsOpen bool           `json:"submissionsOpen"`
	Nominees        []AwardNominee `json:"nominees"`
}

// Snapshot is the complete game state for one week.
type Snapshot struct {
	Date Date `json:"date"`

	ActiveEntityID string             `json:"activeEntityId"`
	Roster         []string           `json:"roster"`
	Entities       map[string]*Entity `json:"entities"`

	Charts map[string]*Chart `json:"charts"`
	NPC    NPCState          `json:"npc"`

	Awards map[string]*AwardCycle `json:"awards"`

	// PendingRenewal blocks further commands until the player decides.
	PendingRenewal *RenewalPrompt `json:"pendingRenewal,omitempty"`
}

// New returns an empty snapshot positioned at week 1 of year 1.
func New() *Snapshot {
	snap := &Snapshot{
		Date:     Date{Week: 1, Year: 1},
		Entities: make(map[string]*Entity),
		Charts:   make(map[string]*Chart),
		Awards:   make(map[string]*AwardCycle),
	}
	snap.Charts[ChartSingles] = NewChart()
	snap.Charts[ChartAlbums] = NewChart()
	for _, genre := range ChartedGenres {
		snap.Charts[GenreChartKind(genre)] = NewChart()
	}
	return snap
}

// ActiveEntity returns the currently controlled entity, or nil.
func (s *Snapshot) ActiveEntity() *Entity {
	if s.ActiveEntityID == "" {
		return nil
	}
	return s.Entities[s.ActiveEntityID]
}

// Chart returns a chart by kind, creating an empty one on first use.
func (s *Snapshot) Chart(kind string) *Chart {
	if s.Charts == nil {
		s.Charts = make(map[string]*Chart)
	}
	chart, ok := s.Charts[kind]
	if !ok {
		chart = NewChart()
		s.Charts[kind] = chart
	}
	return chart
}

// ErrInvalidSnapshot indicates a snapshot that violates structural invariants.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Validate checks the structural invariants an imported snapshot must hold:
// every referenced entity id resolves, and every released song belongs to
// exactly one existing release.
func (s *Snapshot) Validate() error {
	if s.Date.Week < 1 || s.Date.Week > WeeksPerYear {
		return fmt.Errorf("%w: week %d out of range", ErrInvalidSnapshot, s.Date.Week)
	}
	if s.ActiveEntityID != "" {
		if _, ok := s.Entities[s.ActiveEntityID]; !ok {
			return fmt.Errorf("%w: active entity %q not in entity map", ErrInvalidSnapshot, s.ActiveEntityID)
		}
	}
	for _, id := range s.Roster {
		if _, ok := s.Entities[id]; !ok {
			return fmt.Errorf("%w: roster entity %q not in entity map", ErrInvalidSnapshot, id)
		}
	}
	for _, chart := range s.Charts {
		for _, entry := range chart.Entries {
			if entry.EntityID == "" {
				continue
			}
			if _, ok := s.Entities[entry.EntityID]; !ok {
				return fmt.Errorf("%w: chart entry %q references unknown entity %q", ErrInvalidSnapshot, entry.Key, entry.EntityID)
			}
		}
	}
	for id, entity := range s.Entities {
		if entity == nil {
			return fmt.Errorf("%w: entity %q is nil", ErrInvalidSnapshot, id)
		}
		for i := range entity.Songs {
			song := &entity.Songs[i]
			if song.Released == (song.ReleaseID == "") {
				return fmt.Errorf("%w: song %q release flag disagrees with release id", ErrInvalidSnapshot, song.ID)
			}
			if song.Released && entity.ReleaseByID(song.ReleaseID) == nil {
				return fmt.Errorf("%w: song %q references unknown release %q", ErrInvalidSnapshot, song.ID, song.ReleaseID)
			}
		}
	}
	return nil
}
