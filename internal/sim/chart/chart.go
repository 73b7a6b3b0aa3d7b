// Package chart ranks weekly contenders into ordered charts with
// historical continuity.
package chart

import (
	"sort"

	"github.com/louisbranch/encore/internal/sim/snapshot"
)

// Contender is one song or album eligible for ranking this week.
type Contender struct {
	Key      string
	Title    string
	Artist   string
	EntityID string
	Genre    snapshot.Genre
	// Activity is the weekly score the ranking is ordered by.
	Activity float64
}

// Options controls one chart computation.
type Options struct {
	Capacity int
	// RecurrentDecay enables the long-tail rule for the primary singles
	// chart: an item with 20 or more consecutive weeks charted that would
	// rank below 50 this week is excluded.
	RecurrentDecay bool
}

// Recurrent-decay thresholds.
const (
	recurrentWeeks   = 20
	recurrentMinRank = 50
)

// Compute ranks contenders against the previous chart and returns the new
// chart. Contenders are sorted descending by activity; ties keep input
// order, so callers must supply contenders in a stable discovery order.
//
// Peak ranks survive absences via the history map. Weeks-on-chart resets
// when an item re-enters after falling off. An empty contender set yields
// an empty chart and the history carries forward untouched.
func Compute(prev *snapshot.Chart, contenders []Contender, opts Options) *snapshot.Chart {
	next := &snapshot.Chart{
		History: make(map[string]snapshot.ChartHistory),
	}
	if prev != nil {
		for key, history := range prev.History {
			next.History[key] = history
		}
	}
	if len(contenders) == 0 {
		return next
	}

	prevRanks := make(map[string]int)
	if prev != nil {
		for _, entry := range prev.Entries {
			prevRanks[entry.Key] = entry.Rank
		}
	}

	sorted := make([]Contender, len(contenders))
	copy(sorted, contenders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Activity > sorted[j].Activity
	})

	for _, contender := range sorted {
		if len(next.Entries) >= opts.Capacity {
			break
		}
		rank := len(next.Entries) + 1

		_, chartedLastWeek := prevRanks[contender.Key]
		history := next.History[contender.Key]

		if opts.RecurrentDecay && chartedLastWeek &&
			history.WeeksOn >= recurrentWeeks && rank > recurrentMinRank {
			continue
		}

		entry := snapshot.ChartEntry{
			Rank:     rank,
			Key:      contender.Key,
			Title:    contender.Title,
			Artist:   contender.Artist,
			EntityID: contender.EntityID,
			Activity: contender.Activity,
		}

		if chartedLastWeek {
			last := prevRanks[contender.Key]
			entry.LastWeek = &last
			history.WeeksOn++
		} else {
			// Fresh entry or re-entry after falling off.
			history.WeeksOn = 1
		}
		if history.Peak == 0 || rank < history.Peak {
			history.Peak = rank
		}
		if rank == 1 {
			history.WeeksAtOne++
		}

		entry.Peak = history.Peak
		entry.WeeksOn = history.WeeksOn
		entry.WeeksAtOne = history.WeeksAtOne

		next.History[contender.Key] = history
		next.Entries = append(next.Entries, entry)
	}

	return next
}
