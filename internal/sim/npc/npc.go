// Package npc generates and churns the synthetic competitor catalog that
// fills out the charts around the player's releases.
package npc

import (
	"fmt"
	"math"

	"github.com/louisbranch/encore/internal/content"
	"github.com/louisbranch/encore/internal/platform/random"
	"github.com/louisbranch/encore/internal/sim/snapshot"
)

// Per-turn churn counts. The oldest entries are dropped and the same number
// of new ones generated, keeping the pools bounded and fresh indefinitely.
const (
	SongChurn  = 100
	AlbumChurn = 5
)

// Initial pool sizes for a new game.
const (
	SeedSongs  = 300
	SeedAlbums = 20
)

// Songs per synthetic album.
const (
	albumMinSongs = 8
	albumMaxSongs = 13
)

const maxNameRetries = 10

// Generator produces synthetic songs and albums.
type Generator struct {
	Lib   *content.Library
	Rng   random.Source
	NewID func() (string, error)
}

// Seed fills an empty NPC state with the initial catalog.
func (g *Generator) Seed(state *snapshot.NPCState) {
	if len(state.Songs) > 0 {
		return
	}
	g.generateSongs(state, SeedSongs)
	g.generateAlbums(state, SeedAlbums)
}

// Churn drops the oldest songs and albums and generates replacements.
func (g *Generator) Churn(state *snapshot.NPCState) {
	if drop := SongChurn; len(state.Songs) > drop {
		state.Songs = append([]snapshot.NPCSong(nil), state.Songs[drop:]...)
	} else if len(state.Songs) > 0 {
		state.Songs = nil
	}
	g.generateSongs(state, SongChurn)

	if drop := AlbumChurn; len(state.Albums) > drop {
		state.Albums = append([]snapshot.NPCAlbum(nil), state.Albums[drop:]...)
	} else if len(state.Albums) > 0 {
		state.Albums = nil
	}
	g.generateAlbums(state, AlbumChurn)
}

// WeeklyActivity scores a synthetic song for chart ranking, with the same
// organic fluctuation jitter player songs get from their stream rolls.
func WeeklyActivity(base float64, rng random.Source) float64 {
	return base * base * 50 * random.Jitter(rng, 0.8, 1.2)
}

// basePopularity decays exponentially with generation-order rank inside a
// batch, so the first songs generated each week are the strongest.
func basePopularity(batchRank int) float64 {
	return 95 * math.Exp(-float64(batchRank)/30)
}

func (g *Generator) generateSongs(state *snapshot.NPCState, count int) {
	taken := make(map[string]bool, len(state.Songs))
	for _, song := range state.Songs {
		taken[song.Artist+"|"+song.Title] = true
	}

	for i := 0; i < count; i++ {
		artist := g.Lib.Artists[g.Rng.Intn(len(g.Lib.Artists))]
		title := g.pickTitle(artist, taken, state.NextSeq)
		taken[artist.Name+"|"+title] = true

		id, err := g.NewID()
		if err != nil {
			// ID generation only fails when the OS entropy source is
			// broken; a seq-derived id keeps the pool consistent.
			id = fmt.Sprintf("npc-song-%d", state.NextSeq)
		}
		state.Songs = append(state.Songs, snapshot.NPCSong{
			ID:             id,
			Title:          title,
			Artist:         artist.Name,
			Genre:          artist.Genre,
			BasePopularity: basePopularity(i),
			Seq:            state.NextSeq,
		})
		state.NextSeq++
	}
}

func (g *Generator) generateAlbums(state *snapshot.NPCState, count int) {
	taken := make(map[string]bool, len(state.Albums))
	for _, album := range state.Albums {
		taken[album.Artist+"|"+album.Title] = true
	}

	for i := 0; i < count; i++ {
		artist := g.Lib.Artists[g.Rng.Intn(len(g.Lib.Artists))]
		title := g.pickTitle(artist, taken, state.NextSeq)
		taken[artist.Name+"|"+title] = true

		// Albums are built from the freshest songs in the pool.
		size := random.Between(g.Rng, albumMinSongs, albumMaxSongs)
		var songIDs []string
		for j := len(state.Songs) - 1; j >= 0 && len(songIDs) < size; j-- {
			songIDs = append(songIDs, state.Songs[j].ID)
		}

		id, err := g.NewID()
		if err != nil {
			id = fmt.Sprintf("npc-album-%d", state.NextSeq)
		}
		state.Albums = append(state.Albums, snapshot.NPCAlbum{
			ID:             id,
			Title:          title,
			Artist:         artist.Name,
			Genre:          artist.Genre,
			SongIDs:        songIDs,
			BasePopularity: basePopularity(i),
			Seq:            state.NextSeq,
		})
		state.NextSeq++
	}
}

// pickTitle prefers the artist's fixed discography, falls back to
// adjective+noun, and forces uniqueness with a suffix after bounded retries.
func (g *Generator) pickTitle(artist content.Artist, taken map[string]bool, seq int) string {
	for attempt := 0; attempt < maxNameRetries; attempt++ {
		var title string
		if len(artist.Titles) > 0 && g.Rng.Float64() < 0.6 {
			title = artist.Titles[g.Rng.Intn(len(artist.Titles))]
		} else {
			adjective := g.Lib.Adjectives[g.Rng.Intn(len(g.Lib.Adjectives))]
			noun := g.Lib.Nouns[g.Rng.Intn(len(g.Lib.Nouns))]
			title = adjective + " " + noun
		}
		if !taken[artist.Name+"|"+title] {
			return title
		}
	}
	adjective := g.Lib.Adjectives[g.Rng.Intn(len(g.Lib.Adjectives))]
	noun := g.Lib.Nouns[g.Rng.Intn(len(g.Lib.Nouns))]
	return fmt.Sprintf("%s %s (Pt. %d)", adjective, noun, seq)
}
