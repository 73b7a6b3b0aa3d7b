package snapshot

// Chart kinds recomputed every turn.
const (
	ChartSingles = "singles"
	ChartAlbums  = "albums"
)

// GenreChartKind names the singles sub-chart for a genre.
func GenreChartKind(genre Genre) string {
	return "genre:" + string(genre)
}

// Chart capacities.
const (
	SinglesChartSize = 100
	AlbumsChartSize  = 50
	GenreChartSize   = 50
)

// ChartEntry is one ranked position in a chart for the current week.
type ChartEntry struct {
	Rank     int    `json:"rank"`
	Key      string `json:"key"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	EntityID string `json:"entityId,omitempty"`
	// LastWeek is nil for a fresh entry.
	LastWeek   *int    `json:"lastWeek,omitempty"`
	Peak       int     `json:"peak"`
	WeeksOn    int     `json:"weeksOn"`
	WeeksAtOne int     `json:"weeksAtOne"`
	Activity   float64 `json:"activity"`
}

// ChartHistory is the persistent record for an item that has ever charted.
// Peak survives absences; WeeksOn resets on re-entry after falling off.
type ChartHistory struct {
	Peak       int `json:"peak"`
	WeeksOn    int `json:"weeksOn"`
	WeeksAtOne int `json:"weeksAtOne"`
}

// Chart is one ranked list plus its history map.
type Chart struct {
	Entries []ChartEntry            `json:"entries"`
	History map[string]ChartHistory `json:"history"`
}

// NewChart returns an empty chart ready for its first computation.
func NewChart() *Chart {
	return &Chart{History: make(map[string]ChartHistory)}
}

// RankOf returns the current rank for a key, or 0 if uncharted.
func (c *Chart) RankOf(key string) int {
	for _, entry := range c.Entries {
		if entry.Key == key {
			return entry.Rank
		}
	}
	return 0
}
