package content

import (
	"testing"

	"github.com/louisbranch/encore/internal/sim/snapshot"
)

func TestLoadEmbeddedTables(t *testing.T) {
	lib, err := Load()
	if err != nil {
		t.Fatalf("load content: %v", err)
	}
	if len(lib.Labels) < 3 {
		t.Fatalf("expected at least 3 labels, got %d", len(lib.Labels))
	}
	if len(lib.Venues) < 5 {
		t.Fatalf("expected at least 5 venues, got %d", len(lib.Venues))
	}
	if len(lib.Managers) == 0 || len(lib.Security) == 0 {
		t.Fatal("expected staff rosters")
	}
}

func TestLabelByID(t *testing.T) {
	lib, err := Load()
	if err != nil {
		t.Fatalf("load content: %v", err)
	}
	label := lib.LabelByID("velour")
	if label == nil {
		t.Fatal("expected velour label to exist")
	}
	if label.MinQuality != 70 {
		t.Fatalf("expected velour min quality 70, got %d", label.MinQuality)
	}
	if lib.LabelByID("unknown") != nil {
		t.Fatal("expected nil for unknown label")
	}
}

func TestSeasonMultiplier(t *testing.T) {
	lib, err := Load()
	if err != nil {
		t.Fatalf("load content: %v", err)
	}
	tests := []struct {
		name  string
		genre snapshot.Genre
		week  int
		want  float64
	}{
		{name: "christmas peak", genre: snapshot.GenreChristmas, week: 50, want: 18.0},
		{name: "christmas off-season", genre: snapshot.GenreChristmas, week: 20, want: 0.1},
		{name: "unseasonal genre", genre: snapshot.GenrePop, week: 50, want: 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lib.SeasonMultiplier(tt.genre, tt.week); got != tt.want {
				t.Fatalf("expected %f, got %f", tt.want, got)
			}
		})
	}
}

func TestDiscography(t *testing.T) {
	lib, err := Load()
	if err != nil {
		t.Fatalf("load content: %v", err)
	}
	titles := lib.Discography("Jaya Moon")
	if len(titles) == 0 {
		t.Fatal("expected titles for Jaya Moon")
	}
	if lib.Discography("Nobody") != nil {
		t.Fatal("expected nil discography for unknown artist")
	}
}
