package awards

import (
	"testing"

	"github.com/louisbranch/encore/internal/content"
	"github.com/louisbranch/encore/internal/sim/snapshot"
)

type centeredSource struct{}

func (centeredSource) Float64() float64 { return 0.5 }
func (centeredSource) Intn(n int) int   { return n / 2 }

func testContext(t *testing.T, date snapshot.Date) Context {
	t.Helper()
	lib, err := content.Load()
	if err != nil {
		t.Fatalf("load content: %v", err)
	}
	return Context{Lib: lib, Rng: centeredSource{}, Date: date}
}

func testSnapshot() *snapshot.Snapshot {
	snap := snapshot.New()
	snap.Date = snapshot.Date{Week: 40, Year: 3}
	entity := &snapshot.Entity{
		ID:   "artist-1",
		Name: "Vera Lux",
		Songs: []snapshot.Song{{
			ID:        "song-1",
			Title:     "Glasshouse",
			Quality:   100,
			Genre:     snapshot.GenrePop,
			Streams:   10_000_000,
			Acclaimed: true,
			Released:  true,
		}},
	}
	snap.Roster = []string{"artist-1"}
	snap.Entities["artist-1"] = entity
	snap.ActiveEntityID = "artist-1"
	return snap
}

func TestTickOpensSubmissions(t *testing.T) {
	snap := testSnapshot()
	ctx := testContext(t, snapshot.Date{Week: 40, Year: 3})

	Tick(snap, ctx)

	cycle := snap.Awards[snapshot.ShowGrammys]
	if cycle == nil {
		t.Fatal("expected a grammys cycle to open at week 40")
	}
	if !cycle.SubmissionsOpen {
		t.Error("submissions should be open")
	}
	if cycle.Year != 3 {
		t.Errorf("cycle year = %d, want 3", cycle.Year)
	}
	if len(snap.Entities["artist-1"].Inbox) != 1 {
		t.Error("roster should be invited by email")
	}
	if snap.Awards[snapshot.ShowVMAs] != nil {
		t.Error("vma cycle should not open at week 40")
	}
}

func TestTickNominates(t *testing.T) {
	snap := testSnapshot()
	entity := snap.Entities["artist-1"]
	entity.Awards.Submissions = map[string][]string{
		snapshot.ShowGrammys: {"song-1"},
	}
	snap.Awards[snapshot.ShowGrammys] = &snapshot.AwardCycle{
		Show: snapshot.ShowGrammys, Year: 3, SubmissionsOpen: true,
	}
	ctx := testContext(t, snapshot.Date{Week: 45, Year: 3})

	Tick(snap, ctx)

	cycle := snap.Awards[snapshot.ShowGrammys]
	if cycle.SubmissionsOpen {
		t.Error("submissions should close at nomination")
	}
	if len(cycle.Nominees) != 1+syntheticContenders {
		t.Fatalf("got %d nominees, want %d", len(cycle.Nominees), 1+syntheticContenders)
	}
	// Quality 100, ten million streams, and acclaim outscore the
	// synthetic midpoint (72.5).
	if top := cycle.Nominees[0]; top.EntityID != "artist-1" {
		t.Errorf("top nominee = %+v, want the submitted song", top)
	}
	if len(entity.Awards.Nominations) != 1 {
		t.Errorf("got %d nominations on record, want 1", len(entity.Awards.Nominations))
	}
}

func TestTickCeremony(t *testing.T) {
	snap := testSnapshot()
	entity := snap.Entities["artist-1"]
	entity.Awards.Submissions = map[string][]string{
		snapshot.ShowGrammys: {"song-1"},
	}
	snap.Awards[snapshot.ShowGrammys] = &snapshot.AwardCycle{
		Show: snapshot.ShowGrammys,
		Year: 3,
		Nominees: []snapshot.AwardNominee{
			{Key: "npc:x", Title: "Rival Cut", Artist: "Nova Skye", Score: 70, Synthetic: true},
			{Key: "artist-1:song-1", Title: "Glasshouse", Artist: "Vera Lux", EntityID: "artist-1", Score: 85},
		},
	}
	ctx := testContext(t, snapshot.Date{Week: 50, Year: 3})

	Tick(snap, ctx)

	if len(entity.Awards.Wins) != 1 {
		t.Fatalf("got %d wins, want 1", len(entity.Awards.Wins))
	}
	win := entity.Awards.Wins[0]
	if win.Show != snapshot.ShowGrammys || win.Work != "Glasshouse" || win.Year != 3 {
		t.Errorf("unexpected win record %+v", win)
	}
	if entity.Popularity != winPopularityBoost {
		t.Errorf("popularity = %v, want win boost applied", entity.Popularity)
	}
	if snap.Awards[snapshot.ShowGrammys] != nil {
		t.Error("cycle should be cleared after the ceremony")
	}
	if _, ok := entity.Awards.Submissions[snapshot.ShowGrammys]; ok {
		t.Error("yearly submissions should be cleared")
	}
}

func TestTickCeremonySyntheticWinner(t *testing.T) {
	snap := testSnapshot()
	entity := snap.Entities["artist-1"]
	snap.Awards[snapshot.ShowGrammys] = &snapshot.AwardCycle{
		Show: snapshot.ShowGrammys,
		Year: 3,
		Nominees: []snapshot.AwardNominee{
			{Key: "artist-1:song-1", Title: "Glasshouse", EntityID: "artist-1", Score: 60},
			{Key: "npc:x", Title: "Rival Cut", Artist: "Nova Skye", Score: 88, Synthetic: true},
		},
	}
	ctx := testContext(t, snapshot.Date{Week: 50, Year: 3})

	Tick(snap, ctx)

	if len(entity.Awards.Wins) != 0 {
		t.Errorf("synthetic winner should leave the record empty, got %+v", entity.Awards.Wins)
	}
	if snap.Awards[snapshot.ShowGrammys] != nil {
		t.Error("cycle should still clear")
	}
}

func TestTickIdleWeek(t *testing.T) {
	snap := testSnapshot()
	ctx := testContext(t, snapshot.Date{Week: 20, Year: 3})

	Tick(snap, ctx)

	if len(snap.Awards) != 0 {
		t.Errorf("no cycle should exist after an idle week, got %d", len(snap.Awards))
	}
}
