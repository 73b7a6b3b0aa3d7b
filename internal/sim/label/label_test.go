package label

import (
	"strings"
	"testing"

	"github.com/louisbranch/encore/internal/content"
	"github.com/louisbranch/encore/internal/sim/snapshot"
)

// centeredSource removes randomness: Float64 sits at the jitter midpoint
// and Intn picks the middle value, so review rolls add exactly zero.
type centeredSource struct{}

func (centeredSource) Float64() float64 { return 0.5 }
func (centeredSource) Intn(n int) int   { return n / 2 }

func testContext(t *testing.T) Context {
	t.Helper()
	lib, err := content.Load()
	if err != nil {
		t.Fatalf("load content: %v", err)
	}
	seq := 0
	return Context{
		Lib:  lib,
		Rng:  centeredSource{},
		Date: snapshot.Date{Week: 10, Year: 3},
		NewID: func() (string, error) {
			seq++
			return "id-" + string(rune('a'+seq)), nil
		},
	}
}

func testEntity() *snapshot.Entity {
	return &snapshot.Entity{
		ID:   "artist-1",
		Name: "Vera Lux",
		Songs: []snapshot.Song{
			{ID: "song-1", Title: "Glasshouse", Quality: 85, Genre: snapshot.GenrePop},
			{ID: "song-2", Title: "Afterlight", Quality: 85, Genre: snapshot.GenrePop},
			{ID: "song-3", Title: "Demo Tape", Quality: 40, Genre: snapshot.GenrePop},
		},
	}
}

func TestTickContractExpiry(t *testing.T) {
	ctx := testContext(t)

	t.Run("active entity gets a renewal prompt", func(t *testing.T) {
		entity := testEntity()
		entity.Contract = &snapshot.Contract{
			LabelID:       "velour",
			SignedOn:      snapshot.Date{Week: 10, Year: 2},
			DurationWeeks: 52,
		}
		prompt := TickContract(entity, true, ctx)
		if prompt == nil {
			t.Fatal("expected renewal prompt for expired contract")
		}
		if prompt.LabelID != "velour" || prompt.EntityID != "artist-1" {
			t.Errorf("unexpected prompt %+v", prompt)
		}
		if entity.Contract == nil {
			t.Error("contract should stay until the player decides")
		}
	})

	t.Run("background entity goes independent", func(t *testing.T) {
		entity := testEntity()
		entity.Contract = &snapshot.Contract{
			LabelID:       "velour",
			SignedOn:      snapshot.Date{Week: 10, Year: 2},
			DurationWeeks: 52,
		}
		if prompt := TickContract(entity, false, ctx); prompt != nil {
			t.Fatalf("unexpected prompt %+v", prompt)
		}
		if entity.Contract != nil {
			t.Error("contract should be terminated")
		}
		if len(entity.Inbox) != 1 {
			t.Fatalf("got %d emails, want 1", len(entity.Inbox))
		}
		if !strings.Contains(entity.Inbox[0].Body, "independent") {
			t.Errorf("email body %q should mention independence", entity.Inbox[0].Body)
		}
	})

	t.Run("running contract is untouched", func(t *testing.T) {
		entity := testEntity()
		entity.Contract = &snapshot.Contract{
			LabelID:       "velour",
			SignedOn:      snapshot.Date{Week: 9, Year: 3},
			DurationWeeks: 52,
		}
		if prompt := TickContract(entity, true, ctx); prompt != nil {
			t.Fatalf("unexpected prompt %+v", prompt)
		}
		if entity.Contract == nil {
			t.Error("contract should survive")
		}
	})
}

func TestTickSubmissionsJudging(t *testing.T) {
	ctx := testContext(t)

	tests := []struct {
		name    string
		labelID string
		songIDs []string
		want    snapshot.SubmissionStatus
	}{
		{
			name:    "quality clears the bar",
			labelID: "velour", // min quality 70
			songIDs: []string{"song-1", "song-2"},
			want:    snapshot.SubmissionAwaitingInput,
		},
		{
			name:    "quality falls short",
			labelID: "velour",
			songIDs: []string{"song-3"},
			want:    snapshot.SubmissionRejected,
		},
		{
			name:    "petty label raises the bar",
			labelID: "crown", // min quality 80, petty adds 10
			songIDs: []string{"song-1", "song-2"},
			want:    snapshot.SubmissionRejected,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			entity := testEntity()
			entity.Submissions = []snapshot.Submission{{
				ID:           "sub-1",
				LabelID:      tc.labelID,
				ReleaseTitle: "Glasshouse EP",
				Type:         snapshot.ReleaseEP,
				SongIDs:      tc.songIDs,
				Status:       snapshot.SubmissionPending,
				SubmittedOn:  snapshot.Date{Week: 8, Year: 3},
			}}

			TickSubmissions(entity, ctx)

			if got := entity.Submissions[0].Status; got != tc.want {
				t.Errorf("status = %q, want %q", got, tc.want)
			}
			if len(entity.Inbox) != 1 {
				t.Errorf("got %d emails, want 1", len(entity.Inbox))
			}
		})
	}
}

func TestTickSubmissionsFreshPendingWaits(t *testing.T) {
	ctx := testContext(t)
	entity := testEntity()
	entity.Submissions = []snapshot.Submission{{
		ID:          "sub-1",
		LabelID:     "velour",
		SongIDs:     []string{"song-1"},
		Status:      snapshot.SubmissionPending,
		SubmittedOn: snapshot.Date{Week: 9, Year: 3},
	}}

	TickSubmissions(entity, ctx)

	if got := entity.Submissions[0].Status; got != snapshot.SubmissionPending {
		t.Errorf("status = %q, want pending", got)
	}
}

func TestTickSubmissionsScheduledRelease(t *testing.T) {
	ctx := testContext(t)
	target := snapshot.Date{Week: 11, Year: 3}

	entity := testEntity()
	entity.Contract = &snapshot.Contract{LabelID: "velour", AlbumQuota: 2}
	entity.Submissions = []snapshot.Submission{{
		ID:           "sub-1",
		LabelID:      "velour",
		ReleaseTitle: "Glasshouse",
		Type:         snapshot.ReleaseAlbum,
		SongIDs:      []string{"song-1", "song-2"},
		PreSingleIDs: []string{"song-1"},
		Status:       snapshot.SubmissionScheduled,
		SubmittedOn:  snapshot.Date{Week: 8, Year: 3},
		ScheduledFor: &target,
	}}

	// One week before the date: only the pre-single ships.
	TickSubmissions(entity, ctx)
	if len(entity.Releases) != 1 {
		t.Fatalf("got %d releases, want 1 pre-single", len(entity.Releases))
	}
	if entity.Releases[0].Type != snapshot.ReleaseSingle {
		t.Errorf("pre-single type = %q", entity.Releases[0].Type)
	}
	if !entity.Songs[0].Released {
		t.Error("pre-single song should be released")
	}
	if len(entity.Submissions) != 1 {
		t.Fatal("submission should remain until the main project ships")
	}

	// On the date: the album ships with the remaining song and the
	// submission record is cleared.
	ctx.Date = target
	TickSubmissions(entity, ctx)
	if len(entity.Releases) != 2 {
		t.Fatalf("got %d releases, want 2", len(entity.Releases))
	}
	album := entity.Releases[1]
	if album.Type != snapshot.ReleaseAlbum || len(album.SongIDs) != 1 {
		t.Errorf("album = %+v, want one remaining song", album)
	}
	if entity.Contract.AlbumsDelivered != 1 {
		t.Errorf("albums delivered = %d, want 1", entity.Contract.AlbumsDelivered)
	}
	if len(entity.Submissions) != 0 {
		t.Errorf("submission should be removed, got %+v", entity.Submissions)
	}
}
