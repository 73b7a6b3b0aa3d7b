// Package awards runs the annual award-show cycles. Each show advances
// through three phases keyed to absolute week numbers: submissions open,
// nominations are scored, and the ceremony resolves a winner.
package awards

import (
	"fmt"
	"sort"

	"github.com/louisbranch/encore/internal/content"
	"github.com/louisbranch/encore/internal/platform/random"
	"github.com/louisbranch/encore/internal/sim/snapshot"
)

// schedule maps a show to its three phase weeks.
type schedule struct {
	openWeek     int
	nominateWeek int
	ceremonyWeek int
	category     string
	sender       string
}

var schedules = map[string]schedule{
	snapshot.ShowVMAs: {
		openWeek: 1, nominateWeek: 5, ceremonyWeek: 10,
		category: "Video of the Year",
		sender:   "VMA Selection Committee",
	},
	snapshot.ShowGrammys: {
		openWeek: 40, nominateWeek: 45, ceremonyWeek: 50,
		category: "Song of the Year",
		sender:   "Recording Academy",
	},
	// The Oscars cycle compresses into a single week: submissions are
	// gathered year-round and the shortlist resolves at the ceremony.
	snapshot.ShowOscars: {
		openWeek: 52, nominateWeek: 52, ceremonyWeek: 52,
		category: "Best Original Song",
		sender:   "Academy Music Branch",
	},
}

const (
	nomineeCount        = 5
	syntheticContenders = 3
	winPopularityBoost  = 5
	nomPopularityBoost  = 1
)

// Context carries the per-turn inputs for cycle advancement.
type Context struct {
	Lib  *content.Library
	Rng  random.Source
	Date snapshot.Date
}

// Tick advances every show whose schedule touches the current week.
func Tick(snap *snapshot.Snapshot, ctx Context) {
	if snap.Awards == nil {
		snap.Awards = make(map[string]*snapshot.AwardCycle)
	}
	week := ctx.Date.Week

	for _, show := range []string{snapshot.ShowVMAs, snapshot.ShowGrammys, snapshot.ShowOscars} {
		sched := schedules[show]
		if week == sched.openWeek {
			openSubmissions(snap, show, sched, ctx)
		}
		if week == sched.nominateWeek {
			nominate(snap, show, sched, ctx)
		}
		if week == sched.ceremonyWeek {
			ceremony(snap, show, sched, ctx)
		}
	}
}

// openSubmissions starts a fresh cycle and invites every roster entity.
func openSubmissions(snap *snapshot.Snapshot, show string, sched schedule, ctx Context) {
	snap.Awards[show] = &snapshot.AwardCycle{
		Show:            show,
		Year:            ctx.Date.Year,
		SubmissionsOpen: true,
	}

	for _, id := range snap.Roster {
		entity := snap.Entities[id]
		if entity == nil {
			continue
		}
		entity.QueueEmail(snapshot.Email{
			From:    sched.sender,
			Subject: fmt.Sprintf("Submissions open: %s", sched.category),
			Body:    fmt.Sprintf("Entries for this year's %s are now open. Submit your strongest work before nominations lock.", sched.category),
			Week:    ctx.Date,
		})
	}
}

// nominate scores the submission pool plus synthetic contenders and
// locks the top entries as nominees.
func nominate(snap *snapshot.Snapshot, show string, sched schedule, ctx Context) {
	cycle := snap.Awards[show]
	if cycle == nil {
		return
	}
	cycle.SubmissionsOpen = false

	var pool []snapshot.AwardNominee
	for _, id := range snap.Roster {
		entity := snap.Entities[id]
		if entity == nil || entity.Awards.Submissions == nil {
			continue
		}
		for _, songID := range entity.Awards.Submissions[show] {
			song := entity.SongByID(songID)
			if song == nil {
				continue
			}
			pool = append(pool, snapshot.AwardNominee{
				Key:      entity.ID + ":" + song.ID,
				Title:    song.Title,
				Artist:   entity.Name,
				EntityID: entity.ID,
				Score:    scoreSong(snap, entity, song),
			})
		}
	}

	for i := 0; i < syntheticContenders && i < len(ctx.Lib.Artists); i++ {
		artist := ctx.Lib.Artists[(ctx.Date.Year+i)%len(ctx.Lib.Artists)]
		title := artist.Name + " Anthem"
		if len(artist.Titles) > 0 {
			title = artist.Titles[ctx.Rng.Intn(len(artist.Titles))]
		}
		pool = append(pool, snapshot.AwardNominee{
			Key:       "npc:" + artist.Name + ":" + title,
			Title:     title,
			Artist:    artist.Name,
			Score:     random.Jitter(ctx.Rng, 55, 90),
			Synthetic: true,
		})
	}

	sort.SliceStable(pool, func(i, j int) bool { return pool[i].Score > pool[j].Score })
	if len(pool) > nomineeCount {
		pool = pool[:nomineeCount]
	}
	cycle.Nominees = pool

	for _, nominee := range cycle.Nominees {
		if nominee.Synthetic {
			continue
		}
		entity := snap.Entities[nominee.EntityID]
		if entity == nil {
			continue
		}
		entity.Awards.Nominations = append(entity.Awards.Nominations, snapshot.AwardWin{
			Show:     show,
			Category: sched.category,
			Year:     cycle.Year,
			Work:     nominee.Title,
		})
		entity.Popularity += nomPopularityBoost
		if entity.Popularity > 100 {
			entity.Popularity = 100
		}
		entity.QueueEmail(snapshot.Email{
			From:    sched.sender,
			Subject: fmt.Sprintf("Nominated: %s", sched.category),
			Body:    fmt.Sprintf("%q is officially nominated for %s. The ceremony airs on week %d.", nominee.Title, sched.category, sched.ceremonyWeek),
			Week:    ctx.Date,
		})
	}
}

// ceremony crowns the highest-scored nominee and clears the yearly state.
func ceremony(snap *snapshot.Snapshot, show string, sched schedule, ctx Context) {
	cycle := snap.Awards[show]
	if cycle == nil || len(cycle.Nominees) == 0 {
		clearCycle(snap, show)
		return
	}

	winner := cycle.Nominees[0]
	for _, nominee := range cycle.Nominees[1:] {
		if nominee.Score > winner.Score {
			winner = nominee
		}
	}

	if !winner.Synthetic {
		if entity := snap.Entities[winner.EntityID]; entity != nil {
			entity.Awards.Wins = append(entity.Awards.Wins, snapshot.AwardWin{
				Show:     show,
				Category: sched.category,
				Year:     cycle.Year,
				Work:     winner.Title,
			})
			entity.Popularity += winPopularityBoost
			if entity.Popularity > 100 {
				entity.Popularity = 100
			}
			entity.Hype += 10
			if entity.Hype > 100 {
				entity.Hype = 100
			}
			entity.QueueEmail(snapshot.Email{
				From:    sched.sender,
				Subject: fmt.Sprintf("Winner: %s", sched.category),
				Body:    fmt.Sprintf("%q took home %s. Congratulations.", winner.Title, sched.category),
				Week:    ctx.Date,
			})
		}
	}

	clearCycle(snap, show)
}

// clearCycle drops the cycle record and every entity's submissions for
// the show, resetting for next year.
func clearCycle(snap *snapshot.Snapshot, show string) {
	delete(snap.Awards, show)
	for _, entity := range snap.Entities {
		if entity.Awards.Submissions != nil {
			delete(entity.Awards.Submissions, show)
		}
	}
}

// scoreSong blends intrinsic quality with commercial performance.
func scoreSong(snap *snapshot.Snapshot, entity *snapshot.Entity, song *snapshot.Song) float64 {
	score := float64(song.Quality) * 0.7

	chart := snap.Chart(snapshot.ChartSingles)
	if rank := chart.RankOf(entity.ID + ":" + song.ID); rank > 0 {
		score += float64(101-rank) * 0.2
	}
	if song.Streams > 0 {
		// Streams cap out their contribution at ten million.
		streams := float64(song.Streams)
		if streams > 10_000_000 {
			streams = 10_000_000
		}
		score += streams / 10_000_000 * 10
	}
	if song.Acclaimed {
		score += 5
	}
	return score
}
