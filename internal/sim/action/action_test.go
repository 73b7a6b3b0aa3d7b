package action

import (
	"reflect"
	"strconv"
	"testing"

	"github.com/louisbranch/encore/internal/content"
	"github.com/louisbranch/encore/internal/platform/random"
	"github.com/louisbranch/encore/internal/sim/snapshot"
)

func testDeps(t *testing.T) Deps {
	t.Helper()
	lib, err := content.Load()
	if err != nil {
		t.Fatalf("load content: %v", err)
	}
	seq := 0
	return Deps{
		Lib: lib,
		Rng: random.NewSource(7),
		NewID: func() (string, error) {
			seq++
			return "id-" + strconv.Itoa(seq), nil
		},
	}
}

func testSnapshot() *snapshot.Snapshot {
	snap := snapshot.New()
	snap.Date = snapshot.Date{Week: 10, Year: 2}
	entity := &snapshot.Entity{
		ID:    "artist-1",
		Name:  "Vera Lux",
		Money: 100_000,
		Songs: []snapshot.Song{
			{ID: "song-1", Title: "Glasshouse", Genre: snapshot.GenrePop, Quality: 85},
			{ID: "song-2", Title: "Afterlight", Genre: snapshot.GenrePop, Quality: 80},
		},
		Social: snapshot.Social{Username: "veralux"},
	}
	snap.Roster = []string{"artist-1"}
	snap.Entities["artist-1"] = entity
	snap.ActiveEntityID = "artist-1"
	return snap
}

func TestApplyNeverMutatesInput(t *testing.T) {
	prev := testSnapshot()
	before := prev.Clone()

	next := Apply(prev, RecordSong{Title: "New Cut", Genre: snapshot.GenrePop}, testDeps(t))

	if next == prev {
		t.Fatal("accepted command should return a fresh snapshot")
	}
	if !reflect.DeepEqual(prev, before) {
		t.Error("input snapshot was mutated")
	}
}

func TestApplyInvalidPreconditionIsSilentNoop(t *testing.T) {
	prev := testSnapshot()
	prev.Entities["artist-1"].Money = 0

	next := Apply(prev, RecordSong{Title: "New Cut", Genre: snapshot.GenrePop}, testDeps(t))

	if next != prev {
		t.Error("rejected command should return the input snapshot unchanged")
	}
}

func TestRecordSong(t *testing.T) {
	prev := testSnapshot()

	next := Apply(prev, RecordSong{Title: "New Cut", Genre: snapshot.GenreRnB}, testDeps(t))

	entity := next.Entities["artist-1"]
	if len(entity.Songs) != 3 {
		t.Fatalf("got %d songs, want 3", len(entity.Songs))
	}
	song := entity.Songs[2]
	if song.Title != "New Cut" || song.Genre != snapshot.GenreRnB {
		t.Errorf("unexpected song %+v", song)
	}
	if song.Quality < 40 || song.Quality > 100 {
		t.Errorf("quality = %d, want within [40, 100]", song.Quality)
	}
	if song.Released {
		t.Error("fresh recording must be unreleased")
	}
	if !song.RecordedOn.Equal(next.Date) {
		t.Errorf("recorded on %+v, want the current week %+v", song.RecordedOn, next.Date)
	}
	if entity.Money != 100_000-recordingCost {
		t.Errorf("money = %d, want session cost deducted", entity.Money)
	}
}

func TestReleaseProject(t *testing.T) {
	next := Apply(testSnapshot(), ReleaseProject{
		Title:   "Glasshouse",
		Type:    snapshot.ReleaseSingle,
		SongIDs: []string{"song-1"},
	}, testDeps(t))

	entity := next.Entities["artist-1"]
	if len(entity.Releases) != 1 {
		t.Fatalf("got %d releases, want 1", len(entity.Releases))
	}
	if !entity.SongByID("song-1").Released {
		t.Error("song should be marked released")
	}
}

func TestSignContract(t *testing.T) {
	deps := testDeps(t)
	prev := testSnapshot()

	next := Apply(prev, SignContract{LabelID: "velour"}, deps)

	entity := next.Entities["artist-1"]
	if entity.Contract == nil {
		t.Fatal("expected a contract")
	}
	if entity.Contract.DurationWeeks != 104 || entity.Contract.AlbumQuota != 2 {
		t.Errorf("contract terms %+v, want the label's published terms", entity.Contract)
	}
	if entity.Money != 100_000+250_000 {
		t.Errorf("money = %d, want signing bonus credited", entity.Money)
	}

	// Already signed: a second deal is refused.
	if again := Apply(next, SignContract{LabelID: "crown"}, deps); again != next {
		t.Error("signing while signed should be a no-op")
	}
}

func TestRenewalGate(t *testing.T) {
	deps := testDeps(t)
	prev := testSnapshot()
	prev.Entities["artist-1"].Contract = &snapshot.Contract{LabelID: "velour"}
	prev.PendingRenewal = &snapshot.RenewalPrompt{
		EntityID:  "artist-1",
		LabelID:   "velour",
		OfferedOn: prev.Date,
	}

	t.Run("other commands are blocked", func(t *testing.T) {
		if next := Apply(prev, RecordSong{Title: "X", Genre: snapshot.GenrePop}, deps); next != prev {
			t.Error("non-renewal command should no-op while renewal pends")
		}
	})

	t.Run("accept re-signs", func(t *testing.T) {
		next := Apply(prev, AcceptRenewal{}, deps)
		entity := next.Entities["artist-1"]
		if next.PendingRenewal != nil {
			t.Error("prompt should clear")
		}
		if entity.Contract == nil || !entity.Contract.SignedOn.Equal(next.Date) {
			t.Errorf("contract = %+v, want re-signed this week", entity.Contract)
		}
	})

	t.Run("decline goes independent", func(t *testing.T) {
		next := Apply(prev, DeclineRenewal{}, deps)
		if next.PendingRenewal != nil {
			t.Error("prompt should clear")
		}
		if next.Entities["artist-1"].Contract != nil {
			t.Error("contract should end")
		}
	})
}

func TestSubmitToLabel(t *testing.T) {
	deps := testDeps(t)
	prev := testSnapshot()
	prev.Entities["artist-1"].Contract = &snapshot.Contract{LabelID: "velour"}

	next := Apply(prev, SubmitToLabel{
		Title:   "Glasshouse EP",
		Type:    snapshot.ReleaseEP,
		SongIDs: []string{"song-1", "song-2"},
	}, deps)

	entity := next.Entities["artist-1"]
	if len(entity.Submissions) != 1 {
		t.Fatalf("got %d submissions, want 1", len(entity.Submissions))
	}
	if entity.Submissions[0].Status != snapshot.SubmissionPending {
		t.Errorf("status = %q, want pending", entity.Submissions[0].Status)
	}

	// A second submission while one is in flight is refused.
	if again := Apply(next, SubmitToLabel{Title: "More", Type: snapshot.ReleaseEP, SongIDs: []string{"song-2"}}, deps); again != next {
		t.Error("second in-flight submission should be a no-op")
	}
}

func TestPlanLabelRelease(t *testing.T) {
	deps := testDeps(t)
	prev := testSnapshot()
	prev.Entities["artist-1"].Submissions = []snapshot.Submission{{
		ID:      "sub-1",
		LabelID: "velour",
		SongIDs: []string{"song-1", "song-2"},
		Status:  snapshot.SubmissionAwaitingInput,
	}}

	next := Apply(prev, PlanLabelRelease{
		SubmissionID: "sub-1",
		ReleaseOn:    snapshot.Date{Week: 14, Year: 2},
		PreSingleIDs: []string{"song-1"},
	}, deps)

	submission := next.Entities["artist-1"].Submissions[0]
	if submission.Status != snapshot.SubmissionScheduled {
		t.Fatalf("status = %q, want scheduled", submission.Status)
	}
	if submission.ScheduledFor == nil || submission.ScheduledFor.Week != 14 {
		t.Errorf("scheduled for %+v, want week 14", submission.ScheduledFor)
	}

	t.Run("past dates are refused", func(t *testing.T) {
		if got := Apply(prev, PlanLabelRelease{
			SubmissionID: "sub-1",
			ReleaseOn:    snapshot.Date{Week: 9, Year: 2},
		}, deps); got != prev {
			t.Error("scheduling in the past should be a no-op")
		}
	})
}

func TestSocialCommands(t *testing.T) {
	deps := testDeps(t)

	t.Run("post lands in the feed", func(t *testing.T) {
		next := Apply(testSnapshot(), Post{Body: "album loading"}, deps)
		posts := next.Entities["artist-1"].Social.Posts
		if len(posts) != 1 || posts[0].Author != "veralux" {
			t.Errorf("posts = %+v, want one own-account post", posts)
		}
	})

	t.Run("suspension blocks posting", func(t *testing.T) {
		prev := testSnapshot()
		prev.Entities["artist-1"].Social.Suspended = true
		if next := Apply(prev, Post{Body: "hello"}, deps); next != prev {
			t.Error("posting while suspended should be a no-op")
		}
	})

	t.Run("appeal files once", func(t *testing.T) {
		prev := testSnapshot()
		prev.Entities["artist-1"].Social.Suspended = true
		prev.Entities["artist-1"].Social.SuspensionCause = "automated_flag"

		next := Apply(prev, AppealSuspension{}, deps)
		if next.Entities["artist-1"].Social.Appeal == nil {
			t.Fatal("appeal should be filed")
		}
		if again := Apply(next, AppealSuspension{}, deps); again != next {
			t.Error("second appeal should be a no-op")
		}
	})

	t.Run("follow is idempotent", func(t *testing.T) {
		next := Apply(testSnapshot(), Follow{Username: "novaskye"}, deps)
		if again := Apply(next, Follow{Username: "novaskye"}, deps); again != next {
			t.Error("re-following should be a no-op")
		}
	})
}

func TestOfferCommands(t *testing.T) {
	deps := testDeps(t)

	t.Run("accept credits the payout", func(t *testing.T) {
		prev := testSnapshot()
		prev.Entities["artist-1"].Offers = []snapshot.Offer{{
			ID: "offer-1", Kind: snapshot.OfferSoundtrack, Payout: 40_000,
		}}

		next := Apply(prev, AcceptOffer{OfferID: "offer-1"}, deps)
		entity := next.Entities["artist-1"]
		if entity.Money != 140_000 {
			t.Errorf("money = %d, want payout credited", entity.Money)
		}
		if len(entity.Offers) != 0 {
			t.Error("accepted offer should be consumed")
		}
	})

	t.Run("accept hires the offering manager", func(t *testing.T) {
		prev := testSnapshot()
		prev.Entities["artist-1"].Offers = []snapshot.Offer{{
			ID: "offer-1", Kind: snapshot.OfferManagerRenewal, From: "Desmond Cole",
		}}

		next := Apply(prev, AcceptOffer{OfferID: "offer-1"}, deps)
		manager := next.Entities["artist-1"].Manager
		if manager == nil || manager.Name != "Desmond Cole" {
			t.Fatalf("manager = %+v, want Desmond Cole hired", manager)
		}
		if manager.WeeklyCost != 6000 {
			t.Errorf("weekly cost = %d, want the profile rate", manager.WeeklyCost)
		}
	})

	t.Run("decline discards", func(t *testing.T) {
		prev := testSnapshot()
		prev.Entities["artist-1"].Offers = []snapshot.Offer{{
			ID: "offer-1", Kind: snapshot.OfferFeature, Payout: 10_000,
		}}

		next := Apply(prev, DeclineOffer{OfferID: "offer-1"}, deps)
		entity := next.Entities["artist-1"]
		if entity.Money != 100_000 || len(entity.Offers) != 0 {
			t.Errorf("decline should drop the offer without payment, money=%d offers=%d", entity.Money, len(entity.Offers))
		}
	})
}

func TestHireAndFireStaff(t *testing.T) {
	deps := testDeps(t)

	next := Apply(testSnapshot(), HireManager{Name: "Carmen Ferreira"}, deps)
	if next.Entities["artist-1"].Manager == nil {
		t.Fatal("manager should be hired")
	}
	if again := Apply(next, HireManager{Name: "Desmond Cole"}, deps); again != next {
		t.Error("hiring over a filled role should be a no-op")
	}

	fired := Apply(next, FireManager{}, deps)
	if fired.Entities["artist-1"].Manager != nil {
		t.Error("manager should be gone")
	}
}

func TestStartTour(t *testing.T) {
	deps := testDeps(t)

	next := Apply(testSnapshot(), StartTour{
		Name:        "Glasshouse Tour",
		VenueNames:  []string{"Harbor Hall", "The Foundry"},
		TicketPrice: 55,
	}, deps)

	tours := next.Entities["artist-1"].Tours
	if len(tours) != 1 {
		t.Fatalf("got %d tours, want 1", len(tours))
	}
	if tours[0].Status != snapshot.TourPlanning || len(tours[0].Venues) != 2 {
		t.Errorf("tour = %+v, want booked with 2 venues", tours[0])
	}
	if tours[0].StartedOn != nil {
		t.Error("a booked tour has not started yet")
	}
	if tours[0].Venues[0].Capacity == 0 {
		t.Error("venue capacity should come from the booking catalog")
	}

	t.Run("one tour at a time", func(t *testing.T) {
		if again := Apply(next, StartTour{Name: "Second", VenueNames: []string{"Harbor Hall"}, TicketPrice: 40}, deps); again != next {
			t.Error("starting a second tour should be a no-op while one is booked")
		}
	})

	t.Run("unknown venue refuses the tour", func(t *testing.T) {
		prev := testSnapshot()
		if got := Apply(prev, StartTour{Name: "X", VenueNames: []string{"Nowhere Hall"}, TicketPrice: 40}, deps); got != prev {
			t.Error("unknown venue should be a no-op")
		}
	})
}

func TestStartPromotion(t *testing.T) {
	deps := testDeps(t)
	released := func() *snapshot.Snapshot {
		snap := testSnapshot()
		song := snap.Entities["artist-1"].SongByID("song-1")
		song.Released = true
		song.ReleaseID = "rel-1"
		return snap
	}

	t.Run("radio campaign", func(t *testing.T) {
		next := Apply(released(), StartPromotion{SongID: "song-1", Kind: "radio", Weeks: 4}, deps)
		promos := next.Entities["artist-1"].Promotions
		if len(promos) != 1 {
			t.Fatalf("got %d promotions, want 1", len(promos))
		}
		if promos[0].Multiplier != 1.5 || promos[0].WeeksLeft != 4 {
			t.Errorf("promotion = %+v", promos[0])
		}
	})

	t.Run("playlist campaign sets the editorial window", func(t *testing.T) {
		next := Apply(released(), StartPromotion{SongID: "song-1", Kind: "playlist", Weeks: 3}, deps)
		entity := next.Entities["artist-1"]
		if got := entity.SongByID("song-1").PlaylistWeeks; got != 3 {
			t.Errorf("playlist weeks = %d, want 3", got)
		}
		if entity.Money != 100_000-4_000 {
			t.Errorf("money = %d, want placement fee charged", entity.Money)
		}
	})

	t.Run("unreleased song is refused", func(t *testing.T) {
		prev := testSnapshot()
		if got := Apply(prev, StartPromotion{SongID: "song-1", Kind: "radio", Weeks: 4}, deps); got != prev {
			t.Error("promoting an unreleased song should be a no-op")
		}
	})
}

func TestSubmitForAwards(t *testing.T) {
	deps := testDeps(t)
	prev := testSnapshot()
	prev.Entities["artist-1"].Songs[0].Released = true
	prev.Entities["artist-1"].Songs[0].ReleaseID = "rel-1"
	prev.Awards[snapshot.ShowGrammys] = &snapshot.AwardCycle{
		Show: snapshot.ShowGrammys, Year: 2, SubmissionsOpen: true,
	}

	next := Apply(prev, SubmitForAwards{
		Show:    snapshot.ShowGrammys,
		SongIDs: []string{"song-1"},
	}, deps)

	got := next.Entities["artist-1"].Awards.Submissions[snapshot.ShowGrammys]
	if len(got) != 1 || got[0] != "song-1" {
		t.Errorf("submissions = %v, want [song-1]", got)
	}

	t.Run("closed window refuses entries", func(t *testing.T) {
		closed := testSnapshot()
		closed.Entities["artist-1"].Songs[0].Released = true
		if got := Apply(closed, SubmitForAwards{Show: snapshot.ShowGrammys, SongIDs: []string{"song-1"}}, deps); got != closed {
			t.Error("no open cycle should mean a no-op")
		}
	})
}
