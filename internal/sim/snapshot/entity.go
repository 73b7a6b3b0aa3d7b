package snapshot

// AwardWin is one recorded ceremony victory.
type AwardWin struct {
	Show     string `json:"show"`
	Category string `json:"category"`
	Year     int    `json:"year"`
	Work     string `json:"work"`
}

// AwardRecord is an entity's per-cycle submissions and lifetime honors.
type AwardRecord struct {
	// Submissions maps show name to the song ids entered this cycle.
	Submissions map[string][]string `json:"submissions"`
	Nominations []AwardWin          `json:"nominations"`
	Wins        []AwardWin          `json:"wins"`
}

// Entity is one player-controlled artist or group member.
type Entity struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Money      int64   `json:"money"`
	Hype       float64 `json:"hype"`
	Popularity float64 `json:"popularity"`

	Songs    []Song    `json:"songs"`
	Releases []Release `json:"releases"`
	Videos   []Video   `json:"videos"`

	Contract    *Contract    `json:"contract,omitempty"`
	Submissions []Submission `json:"submissions"`

	Inbox  []Email `json:"inbox"`
	Social Social  `json:"social"`

	Tours      []Tour      `json:"tours"`
	Manager    *Staff      `json:"manager,omitempty"`
	Security   *Staff      `json:"security,omitempty"`
	Promotions []Promotion `json:"promotions"`

	Offers []Offer `json:"offers"`
	// OfferCountdowns ticks down once per turn per pipeline; a new offer
	// may fire when a counter reaches zero.
	OfferCountdowns map[OfferKind]int `json:"offerCountdowns"`

	Awards AwardRecord `json:"awards"`

	// WeeksSinceRelease drives popularity decay.
	WeeksSinceRelease int `json:"weeksSinceRelease"`
}

// SongByID returns a pointer into the entity's song slice, or nil.
func (e *Entity) SongByID(id string) *Song {
	for i := range e.Songs {
		if e.Songs[i].ID == id {
			return &e.Songs[i]
		}
	}
	return nil
}

// ReleaseByID returns a pointer into the entity's release slice, or nil.
func (e *Entity) ReleaseByID(id string) *Release {
	for i := range e.Releases {
		if e.Releases[i].ID == id {
			return &e.Releases[i]
		}
	}
	return nil
}

// VideoBySongID returns the video for a song, or nil.
func (e *Entity) VideoBySongID(songID string) *Video {
	for i := range e.Videos {
		if e.Videos[i].SongID == songID {
			return &e.Videos[i]
		}
	}
	return nil
}

// OpenTour returns the tour being planned or played, or nil.
func (e *Entity) OpenTour() *Tour {
	for i := range e.Tours {
		if e.Tours[i].Status == TourPlanning || e.Tours[i].Status == TourActive {
			return &e.Tours[i]
		}
	}
	return nil
}

// UnreleasedSongs returns the ids of songs not attached to any release.
func (e *Entity) UnreleasedSongs() []string {
	var ids []string
	for i := range e.Songs {
		if !e.Songs[i].Released {
			ids = append(ids, e.Songs[i].ID)
		}
	}
	return ids
}

// ManagerName returns the hired manager's name for in-fiction emails,
// falling back to a generic sender when nobody is on payroll.
func (e *Entity) ManagerName() string {
	if e.Manager != nil {
		return e.Manager.Name
	}
	return "Your Team"
}

// QueueEmail appends to the inbox.
func (e *Entity) QueueEmail(email Email) {
	e.Inbox = append(e.Inbox, email)
}
