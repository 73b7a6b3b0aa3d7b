// Package turn is the weekly world-advancement engine. Advance threads
// one snapshot through every subsystem in a fixed order and returns the
// next week's snapshot; the input is never mutated.
package turn

import (
	"github.com/louisbranch/encore/internal/content"
	"github.com/louisbranch/encore/internal/platform/random"
	"github.com/louisbranch/encore/internal/sim/awards"
	"github.com/louisbranch/encore/internal/sim/chart"
	"github.com/louisbranch/encore/internal/sim/economy"
	"github.com/louisbranch/encore/internal/sim/feed"
	"github.com/louisbranch/encore/internal/sim/label"
	"github.com/louisbranch/encore/internal/sim/npc"
	"github.com/louisbranch/encore/internal/sim/offers"
	"github.com/louisbranch/encore/internal/sim/snapshot"
	"github.com/louisbranch/encore/internal/sim/tour"
)

// Deps are the injectable collaborators for one advancement.
type Deps struct {
	Lib   *content.Library
	Rng   random.Source
	NewID func() (string, error)
}

// weekEvents tracks per-entity happenings collected during the lifecycle
// phase, fed to the social synthesizer at the end of the turn.
type weekEvents struct {
	leakedBefore map[string]bool
	winsBefore   int
	nomsBefore   int
	tourVenue    *venueRef
}

type venueRef struct {
	tourIdx  int
	venueIdx int
}

// Advance runs one full week. The returned snapshot is a fresh value;
// the input snapshot is untouched.
func Advance(prev *snapshot.Snapshot, deps Deps) *snapshot.Snapshot {
	snap := prev.Clone()
	snap.Date = snap.Date.Next()
	now := snap.Date

	// Synthetic competitors refresh before anything ranks against them.
	generator := &npc.Generator{Lib: deps.Lib, Rng: deps.Rng, NewID: deps.NewID}
	generator.Seed(&snap.NPC)
	generator.Churn(&snap.NPC)

	events := make(map[string]*weekEvents, len(snap.Roster))
	for _, id := range snap.Roster {
		entity := snap.Entities[id]
		if entity == nil {
			continue
		}
		events[id] = advanceEntity(snap, entity, deps, now)
	}

	computeCharts(snap, deps)
	awards.Tick(snap, awards.Context{Lib: deps.Lib, Rng: deps.Rng, Date: now})

	for _, id := range snap.Roster {
		entity := snap.Entities[id]
		if entity == nil {
			continue
		}
		feed.Synthesize(entity, collectEvents(snap, entity, events[id]), feed.Context{
			Lib: deps.Lib, Rng: deps.Rng, Date: now, NewID: deps.NewID,
		})
	}

	return snap
}

// advanceEntity runs the lifecycle managers and the economy for one
// entity, recording the week's events as it goes.
func advanceEntity(snap *snapshot.Snapshot, entity *snapshot.Entity, deps Deps, now snapshot.Date) *weekEvents {
	events := &weekEvents{
		leakedBefore: make(map[string]bool),
		winsBefore:   len(entity.Awards.Wins),
		nomsBefore:   len(entity.Awards.Nominations),
	}
	for _, song := range entity.Songs {
		if song.Leak != nil {
			events.leakedBefore[song.ID] = true
		}
	}
	for i := range entity.Tours {
		t := &entity.Tours[i]
		if t.Status == snapshot.TourActive && t.CurrentVenue < len(t.Venues) {
			events.tourVenue = &venueRef{tourIdx: i, venueIdx: t.CurrentVenue}
			break
		}
	}

	offers.Payroll(entity, now)
	economy.ChargePromotions(entity, economy.Context{Lib: deps.Lib, Rng: deps.Rng, Date: now})
	tour.Tick(entity, deps.Rng, now)

	offerCtx := offers.Context{Lib: deps.Lib, Rng: deps.Rng, Date: now, NewID: deps.NewID}
	offers.Tick(entity, offerCtx)

	economyCtx := economy.Context{Lib: deps.Lib, Rng: deps.Rng, Date: now}
	economy.AccrueLeaks(entity, economyCtx)

	feedCtx := feed.Context{Lib: deps.Lib, Rng: deps.Rng, Date: now, NewID: deps.NewID}
	feed.TickFanWar(entity, feedCtx)
	feed.TickSuspension(entity, feedCtx)

	economy.Realize(entity, economyCtx)
	economy.DecayMetrics(entity)

	labelCtx := label.Context{Lib: deps.Lib, Rng: deps.Rng, Date: now, NewID: deps.NewID}
	label.TickSubmissions(entity, labelCtx)
	isActive := entity.ID == snap.ActiveEntityID
	if prompt := label.TickContract(entity, isActive, labelCtx); prompt != nil {
		snap.PendingRenewal = prompt
	}

	return events
}

// computeCharts rebuilds every chart from the global contender pool.
// Discovery order is fixed: roster entities first in roster order, then
// synthetic songs in generation order, so activity ties rank stably.
func computeCharts(snap *snapshot.Snapshot, deps Deps) {
	var singles, albums []chart.Contender

	for _, id := range snap.Roster {
		entity := snap.Entities[id]
		if entity == nil {
			continue
		}
		for _, song := range entity.Songs {
			if !song.Released {
				continue
			}
			singles = append(singles, chart.Contender{
				Key:      entity.ID + ":" + song.ID,
				Title:    song.Title,
				Artist:   entity.Name,
				EntityID: entity.ID,
				Genre:    song.Genre,
				Activity: float64(song.LastWeekStreams),
			})
		}
		for _, release := range entity.Releases {
			if !release.IsAlbum() {
				continue
			}
			var activity float64
			for _, songID := range release.SongIDs {
				if song := entity.SongByID(songID); song != nil {
					activity += float64(song.LastWeekStreams)
				}
			}
			albums = append(albums, chart.Contender{
				Key:      entity.ID + ":" + release.ID,
				Title:    release.Title,
				Artist:   entity.Name,
				EntityID: entity.ID,
				Activity: activity,
			})
		}
	}

	for _, song := range snap.NPC.Songs {
		singles = append(singles, chart.Contender{
			Key:      "npc:" + song.ID,
			Title:    song.Title,
			Artist:   song.Artist,
			Genre:    song.Genre,
			Activity: npc.WeeklyActivity(song.BasePopularity, deps.Rng),
		})
	}
	for _, album := range snap.NPC.Albums {
		albums = append(albums, chart.Contender{
			Key:      "npc:" + album.ID,
			Title:    album.Title,
			Artist:   album.Artist,
			Activity: npc.WeeklyActivity(album.BasePopularity, deps.Rng),
		})
	}

	snap.Charts[snapshot.ChartSingles] = chart.Compute(snap.Chart(snapshot.ChartSingles), singles, chart.Options{
		Capacity:       snapshot.SinglesChartSize,
		RecurrentDecay: true,
	})
	snap.Charts[snapshot.ChartAlbums] = chart.Compute(snap.Chart(snapshot.ChartAlbums), albums, chart.Options{
		Capacity: snapshot.AlbumsChartSize,
	})

	for _, genre := range snapshot.ChartedGenres {
		var pool []chart.Contender
		for _, contender := range singles {
			if contender.Genre == genre {
				pool = append(pool, contender)
			}
		}
		kind := snapshot.GenreChartKind(genre)
		snap.Charts[kind] = chart.Compute(snap.Chart(kind), pool, chart.Options{
			Capacity: snapshot.GenreChartSize,
		})
	}
}

// collectEvents assembles the feed input for one entity after charts and
// awards have settled.
func collectEvents(snap *snapshot.Snapshot, entity *snapshot.Entity, tracked *weekEvents) feed.Events {
	var events feed.Events

	chartSingles := snap.Chart(snapshot.ChartSingles)
	for _, entry := range chartSingles.Entries {
		if entry.EntityID == entity.ID {
			events.ChartedSongs = append(events.ChartedSongs, feed.ChartedSong{
				Title: entry.Title,
				Rank:  entry.Rank,
			})
		}
	}

	for _, song := range entity.Songs {
		if song.Leak != nil && !tracked.leakedBefore[song.ID] {
			events.NewLeaks = append(events.NewLeaks, song.Title)
		}
	}

	if tracked.tourVenue != nil {
		t := &entity.Tours[tracked.tourVenue.tourIdx]
		venue := &t.Venues[tracked.tourVenue.venueIdx]
		if venue.Played {
			events.TourPlayed = venue
		}
	}

	if len(entity.Awards.Wins) > tracked.winsBefore {
		events.AwardWin = &entity.Awards.Wins[len(entity.Awards.Wins)-1]
	}
	for _, nom := range entity.Awards.Nominations[tracked.nomsBefore:] {
		events.Nominated = append(events.Nominated, nom.Work)
	}

	for _, release := range entity.Releases {
		if release.ReviewScore != nil && release.ReleasedOn.Equal(snap.Date) {
			events.NewReviews = append(events.NewReviews, feed.ReviewedRelease{
				Title: release.Title,
				Score: *release.ReviewScore,
			})
		}
	}

	return events
}
