package economy

import (
	"fmt"

	"github.com/louisbranch/encore/internal/platform/random"
	"github.com/louisbranch/encore/internal/sim/snapshot"
)

// Leak probabilities per unreleased song per turn.
const (
	leakBaseChance    = 0.01
	leakHypeFactor    = 0.0004
	illegalBaseFactor = 20
)

// leakChance scales with hype and is reduced by an active security team.
func leakChance(entity *snapshot.Entity) float64 {
	chance := leakBaseChance + entity.Hype*leakHypeFactor
	if entity.Security != nil {
		chance *= 1 - entity.Security.Skill
	}
	return chance
}

// AccrueLeaks rolls leak chances for unreleased songs and accumulates
// illegal streams on songs that already leaked. Leaking is one-way: a
// leak record is never removed and its counters never decrease.
func AccrueLeaks(entity *snapshot.Entity, ctx Context) {
	for i := range entity.Songs {
		song := &entity.Songs[i]

		if song.Leaked() {
			illegal := int64(float64(song.Quality*song.Quality) * illegalBaseFactor *
				(1 + entity.Hype/100) * random.Jitter(ctx.Rng, 0.8, 1.2))
			song.Leak.IllegalStreams += illegal
			song.Leak.IllegalDownloads += illegal / 10
			continue
		}

		if song.Released {
			continue
		}

		if random.Chance(ctx.Rng, leakChance(entity)) {
			song.Leak = &snapshot.LeakState{LeakedOn: ctx.Date}
			entity.Hype += 5
			entity.QueueEmail(snapshot.Email{
				From:    entity.ManagerName(),
				Subject: fmt.Sprintf("%q has leaked", song.Title),
				Body:    fmt.Sprintf("Bad news. An unfinished copy of %q is circulating on piracy sites. We can't pull it back.", song.Title),
				Week:    ctx.Date,
			})
		}
	}
}
