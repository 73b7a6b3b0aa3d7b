// Package content loads the static configuration tables: label definitions,
// tour venues, staff rosters, name pools, and the synthetic discography used
// by NPC generation. Tables live in embedded YAML and carry no logic.
package content

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/louisbranch/encore/internal/sim/snapshot"
)

//go:embed tables.yaml
var contentFS embed.FS

// Label is a record label definition.
type Label struct {
	ID               string  `yaml:"id"`
	Name             string  `yaml:"name"`
	MinQuality       int     `yaml:"min_quality"`
	Petty            bool    `yaml:"petty"`
	StreamMultiplier float64 `yaml:"stream_multiplier"`
	ContractWeeks    int     `yaml:"contract_weeks"`
	AlbumQuota       int     `yaml:"album_quota"`
	SigningBonus     int64   `yaml:"signing_bonus"`
}

// VenueSpec is a bookable tour stop.
type VenueSpec struct {
	Name     string `yaml:"name"`
	City     string `yaml:"city"`
	Capacity int    `yaml:"capacity"`
}

// StaffProfile is a hireable manager or security team.
type StaffProfile struct {
	Name       string  `yaml:"name"`
	WeeklyCost int64   `yaml:"weekly_cost"`
	Skill      float64 `yaml:"skill"`
}

// Season is a genre's seasonal stream-multiplier window.
type Season struct {
	Genre          snapshot.Genre `yaml:"genre"`
	PeakStartWeek  int            `yaml:"peak_start_week"`
	PeakEndWeek    int            `yaml:"peak_end_week"`
	PeakMultiplier float64        `yaml:"peak_multiplier"`
	OffMultiplier  float64        `yaml:"off_multiplier"`
}

// Artist is a synthetic competitor with an optional fixed discography.
type Artist struct {
	Name   string         `yaml:"name"`
	Genre  snapshot.Genre `yaml:"genre"`
	Titles []string       `yaml:"titles"`
}

// Library is the full set of loaded content tables.
type Library struct {
	Labels     []Label        `yaml:"labels"`
	Venues     []VenueSpec    `yaml:"venues"`
	Managers   []StaffProfile `yaml:"managers"`
	Security   []StaffProfile `yaml:"security"`
	Adjectives []string       `yaml:"adjectives"`
	Nouns      []string       `yaml:"nouns"`
	Artists    []Artist       `yaml:"artists"`
	Seasons    []Season       `yaml:"seasons"`
}

// Load decodes the embedded tables.
func Load() (*Library, error) {
	raw, err := contentFS.ReadFile("tables.yaml")
	if err != nil {
		return nil, fmt.Errorf("read content tables: %w", err)
	}
	var lib Library
	if err := yaml.Unmarshal(raw, &lib); err != nil {
		return nil, fmt.Errorf("decode content tables: %w", err)
	}
	if len(lib.Labels) == 0 {
		return nil, fmt.Errorf("content tables define no labels")
	}
	if len(lib.Adjectives) == 0 || len(lib.Nouns) == 0 {
		return nil, fmt.Errorf("content tables define empty word pools")
	}
	if len(lib.Artists) == 0 {
		return nil, fmt.Errorf("content tables define no artists")
	}
	return &lib, nil
}

// LabelByID returns a label definition, or nil when unknown.
func (l *Library) LabelByID(id string) *Label {
	for i := range l.Labels {
		if l.Labels[i].ID == id {
			return &l.Labels[i]
		}
	}
	return nil
}

// SeasonMultiplier returns the seasonal stream multiplier for a genre at the
// given week. Genres without a season entry are unaffected (1.0).
func (l *Library) SeasonMultiplier(genre snapshot.Genre, week int) float64 {
	for _, season := range l.Seasons {
		if season.Genre != genre {
			continue
		}
		if week >= season.PeakStartWeek && week <= season.PeakEndWeek {
			return season.PeakMultiplier
		}
		return season.OffMultiplier
	}
	return 1.0
}

// Discography returns the fixed song titles for an artist name, if any.
func (l *Library) Discography(artist string) []string {
	for i := range l.Artists {
		if l.Artists[i].Name == artist {
			return l.Artists[i].Titles
		}
	}
	return nil
}
