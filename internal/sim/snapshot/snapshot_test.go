package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"testing"
)

func TestDateNextWrapsYear(t *testing.T) {
	tests := []struct {
		name string
		in   Date
		want Date
	}{
		{name: "mid year", in: Date{Week: 10, Year: 2}, want: Date{Week: 11, Year: 2}},
		{name: "year boundary", in: Date{Week: 52, Year: 2}, want: Date{Week: 1, Year: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Next(); got != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestDateWeeksSinceAcrossYears(t *testing.T) {
	earlier := Date{Week: 50, Year: 1}
	later := Date{Week: 3, Year: 2}
	if got := later.WeeksSince(earlier); got != 5 {
		t.Fatalf("expected 5 weeks elapsed, got %d", got)
	}
	if got := earlier.WeeksSince(later); got != -5 {
		t.Fatalf("expected -5 weeks elapsed, got %d", got)
	}
}

func TestCertificationExceeds(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Certification
		higher bool
	}{
		{name: "platinum beats gold", a: Certification{Tier: CertPlatinum, Times: 1}, b: Certification{Tier: CertGold, Times: 1}, higher: true},
		{name: "multi platinum beats platinum", a: Certification{Tier: CertPlatinum, Times: 3}, b: Certification{Tier: CertPlatinum, Times: 1}, higher: true},
		{name: "equal is not higher", a: Certification{Tier: CertGold, Times: 1}, b: Certification{Tier: CertGold, Times: 1}, higher: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Exceeds(tt.b); got != tt.higher {
				t.Fatalf("expected %v, got %v", tt.higher, got)
			}
		})
	}
}

func testSnapshot() *Snapshot {
	snap := New()
	score := 88
	entity := &Entity{
		ID:         "ent1",
		Name:       "Nova Reign",
		Money:      5000,
		Hype:       40,
		Popularity: 55,
		Songs: []Song{
			{ID: "s1", Title: "Gravity", Genre: GenrePop, Quality: 80, Released: true, ReleaseID: "r1"},
			{ID: "s2", Title: "Afterglow", Genre: GenrePop, Quality: 74, Leak: &LeakState{LeakedOn: Date{Week: 1, Year: 1}, IllegalStreams: 1200}},
		},
		Releases: []Release{
			{ID: "r1", Title: "Gravity", Type: ReleaseSingle, SongIDs: []string{"s1"}, ReleasedOn: Date{Week: 1, Year: 1}, ReviewScore: &score},
		},
		Social: Social{
			Username: "novareign",
			Users:    map[string]SocialUser{"fan_one": {Username: "fan_one", Kind: UserFan}},
			Threads:  map[string][]Message{"fan_one": {{From: "fan_one", Body: "hey"}}},
		},
		OfferCountdowns: map[OfferKind]int{OfferSoundtrack: 4},
		Awards:          AwardRecord{Submissions: map[string][]string{ShowGrammys: {"s1"}}},
	}
	snap.Entities["ent1"] = entity
	snap.Roster = []string{"ent1"}
	snap.ActiveEntityID = "ent1"
	snap.NPC.Songs = []NPCSong{{ID: "n1", Title: "Static", Artist: "Vexa", Genre: GenrePop, BasePopularity: 90, Seq: 0}}
	snap.NPC.NextSeq = 1
	return snap
}

func TestCloneIsDeepAndEqual(t *testing.T) {
	original := testSnapshot()
	cloned := original.Clone()

	if !reflect.DeepEqual(original, cloned) {
		t.Fatal("expected clone to deep-equal the original")
	}

	cloned.Entities["ent1"].Money = 1
	cloned.Entities["ent1"].Songs[0].Streams = 999
	cloned.Entities["ent1"].Social.Users["fan_two"] = SocialUser{Username: "fan_two"}
	cloned.NPC.Songs[0].Title = "changed"

	if original.Entities["ent1"].Money != 5000 {
		t.Fatal("clone mutation leaked into original money")
	}
	if original.Entities["ent1"].Songs[0].Streams != 0 {
		t.Fatal("clone mutation leaked into original songs")
	}
	if _, ok := original.Entities["ent1"].Social.Users["fan_two"]; ok {
		t.Fatal("clone mutation leaked into original social users")
	}
	if original.NPC.Songs[0].Title != "Static" {
		t.Fatal("clone mutation leaked into original npc pool")
	}
}

func TestSerializeLoadRoundTrip(t *testing.T) {
	original := testSnapshot()

	payload, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}
	var loaded Snapshot
	if err := json.Unmarshal(payload, &loaded); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}

	if !reflect.DeepEqual(original, &loaded) {
		t.Fatal("expected loaded snapshot to deep-equal the original")
	}
}

func TestValidateRejectsBrokenReferences(t *testing.T) {
	tests := []struct {
		name  string
		corrupt func(*Snapshot)
	}{
		{
			name:  "unknown active entity",
			corrupt: func(s *Snapshot) { s.ActiveEntityID = "ghost" },
		},
		{
			name:  "roster entity missing",
			corrupt: func(s *Snapshot) { s.Roster = append(s.Roster, "ghost") },
		},
		{
			name:  "week out of range",
			corrupt: func(s *Snapshot) { s.Date.Week = 53 },
		},
		{
			name: "released song without release",
			corrupt: func(s *Snapshot) {
				s.Entities["ent1"].Songs[0].ReleaseID = "missing"
			},
		},
		{
			name: "release flag disagreement",
			corrupt: func(s *Snapshot) {
				s.Entities["ent1"].Songs[0].ReleaseID = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := testSnapshot()
			tt.corrupt(snap)
			if err := snap.Validate(); !errors.Is(err, ErrInvalidSnapshot) {
				t.Fatalf("expected ErrInvalidSnapshot, got %v", err)
			}
		})
	}
}

func TestValidateAcceptsWellFormedSnapshot(t *testing.T) {
	if err := testSnapshot().Validate(); err != nil {
		t.Fatalf("expected valid snapshot, got %v", err)
	}
}

func TestAddPostCapsFeed(t *testing.T) {
	social := Social{}
	for i := 0; i < MaxFeedPosts+10; i++ {
		social.AddPost(Post{ID: fmt.Sprintf("p%d", i)})
	}
	if len(social.Posts) != MaxFeedPosts {
		t.Fatalf("expected feed capped at %d, got %d", MaxFeedPosts, len(social.Posts))
	}
	if social.Posts[0].ID != "p10" {
		t.Fatalf("expected oldest posts discarded, got first %q", social.Posts[0].ID)
	}
}

func TestContractExpired(t *testing.T) {
	contract := &Contract{SignedOn: Date{Week: 10, Year: 1}, DurationWeeks: 4}
	if contract.Expired(Date{Week: 13, Year: 1}) {
		t.Fatal("contract should still be active at week 13")
	}
	if !contract.Expired(Date{Week: 14, Year: 1}) {
		t.Fatal("contract should expire at week 14")
	}
	open := &Contract{SignedOn: Date{Week: 10, Year: 1}}
	if open.Expired(Date{Week: 40, Year: 5}) {
		t.Fatal("open-ended contract should never expire")
	}
}
