package snapshot

// NPCSong is a synthetic competing track.
type NPCSong struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Artist         string  `json:"artist"`
	Genre          Genre   `json:"genre"`
	BasePopularity float64 `json:"basePopularity"`
	// Seq is the global generation order; lower is older.
	Seq int `json:"seq"`
}

// NPCAlbum is a synthetic competing album built from recent NPC songs.
type NPCAlbum struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Artist         string   `json:"artist"`
	Genre          Genre    `json:"genre"`
	SongIDs        []string `json:"songIds"`
	BasePopularity float64  `json:"basePopularity"`
	Seq            int      `json:"seq"`
}

// NPCState holds the churned pools of synthetic chart competitors.
type NPCState struct {
	Songs   []NPCSong  `json:"songs"`
	Albums  []NPCAlbum `json:"albums"`
	NextSeq int        `json:"nextSeq"`
}
