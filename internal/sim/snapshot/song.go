package snapshot

// Genre classifies songs for charts and seasonal stream multipliers.
type Genre string

const (
	GenrePop       Genre = "pop"
	GenreHipHop    Genre = "hiphop"
	GenreRnB       Genre = "rnb"
	GenreCountry   Genre = "country"
	GenreChristmas Genre = "christmas"
)

// ChartedGenres are the genres with their own singles sub-chart.
var ChartedGenres = []Genre{GenrePop, GenreHipHop, GenreRnB, GenreCountry}

// CertTier is a certification band. Higher tiers never downgrade.
type CertTier int

const (
	CertNone CertTier = iota
	CertGold
	CertPlatinum
	CertDiamond
)

// Certification records the highest certification a song or release has
// reached. Times is the multiplier within the tier (2x Platinum, etc.).
type Certification struct {
	Tier  CertTier `json:"tier"`
	Times int      `json:"times"`
}

// Exceeds reports whether c is a strictly higher certification than other.
func (c Certification) Exceeds(other Certification) bool {
	if c.Tier != other.Tier {
		return c.Tier > other.Tier
	}
	return c.Times > other.Times
}

func (c Certification) String() string {
	switch c.Tier {
	case CertGold:
		return "Gold"
	case CertPlatinum:
		if c.Times > 1 {
			return "Multi-Platinum"
		}
		return "Platinum"
	case CertDiamond:
		return "Diamond"
	default:
		return ""
	}
}

// LeakState tracks an unreleased song that escaped to piracy sites.
// Once present it is never cleared; illegal counters only grow.
type LeakState struct {
	LeakedOn         Date  `json:"leakedOn"`
	IllegalStreams   int64 `json:"illegalStreams"`
	IllegalDownloads int64 `json:"illegalDownloads"`
}

// Song is a recorded track owned by a player entity.
type Song struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Genre   Genre  `json:"genre"`
	Quality int    `json:"quality"`

	Streams         int64    `json:"streams"`
	LastWeekStreams int64    `json:"lastWeekStreams"`
	PrevWeekStreams int64    `json:"prevWeekStreams"`
	DailyStreams    [7]int64 `json:"dailyStreams"`

	RecordedOn Date  `json:"recordedOn"`
	Released   bool  `json:"released"`
	ReleaseID  string `json:"releaseId,omitempty"`
	ReleasedOn *Date `json:"releasedOn,omitempty"`

	Certification Certification `json:"certification"`
	Leak          *LeakState    `json:"leak,omitempty"`

	// PlaylistWeeks is the remaining duration of an editorial playlist
	// boost; it decrements every turn while positive.
	PlaylistWeeks int  `json:"playlistWeeks"`
	Acclaimed     bool `json:"acclaimed"`
}

// Leaked reports whether the song has leaked.
func (s *Song) Leaked() bool {
	return s.Leak != nil
}

// ReleaseType distinguishes project formats.
type ReleaseType string

const (
	ReleaseSingle ReleaseType = "single"
	ReleaseEP     ReleaseType = "ep"
	ReleaseAlbum  ReleaseType = "album"
	ReleaseDeluxe ReleaseType = "deluxe"
)

// Release is a published or scheduled project made of songs.
type Release struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Type     ReleaseType `json:"type"`
	SongIDs  []string    `json:"songIds"`
	CoverArt string      `json:"coverArt,omitempty"`

	ReleasedOn Date   `json:"releasedOn"`
	LabelID    string `json:"labelId,omitempty"`

	Certification Certification `json:"certification"`
	ReviewScore   *int          `json:"reviewScore,omitempty"`
}

// IsAlbum reports whether the release counts toward a contract album quota.
func (r *Release) IsAlbum() bool {
	return r.Type == ReleaseAlbum || r.Type == ReleaseDeluxe
}

// Video is a published music video for a released song.
type Video struct {
	ID            string `json:"id"`
	SongID        string `json:"songId"`
	Title         string `json:"title"`
	Views         int64  `json:"views"`
	LastWeekViews int64  `json:"lastWeekViews"`
	ReleasedOn    Date   `json:"releasedOn"`
}
