// Package economy converts quality, hype, and popularity into streams,
// views, and weekly income, and tracks certifications and leaks.
package economy

import (
	"github.com/louisbranch/encore/internal/content"
	"github.com/louisbranch/encore/internal/platform/random"
	"github.com/louisbranch/encore/internal/sim/snapshot"
)

// Context carries the per-turn inputs every economic computation needs.
type Context struct {
	Lib  *content.Library
	Rng  random.Source
	Date snapshot.Date
}

// Stream formula constants.
const (
	streamBaseFactor = 50
	playlistBoost    = 2.5
)

// labelMultiplier returns the contract label's stream support, or 1.
func labelMultiplier(entity *snapshot.Entity, lib *content.Library) float64 {
	if entity.Contract == nil {
		return 1
	}
	label := lib.LabelByID(entity.Contract.LabelID)
	if label == nil {
		return 1
	}
	return label.StreamMultiplier
}

// acclaimMultiplier maps a critical review score to a persistent stream
// boost. The boost applies every week for as long as the release exists;
// a well-reviewed record keeps pulling listeners.
func acclaimMultiplier(score int) float64 {
	switch {
	case score >= 90:
		return 4
	case score >= 85:
		return 3
	case score >= 80:
		return 2
	default:
		return 1
	}
}

// WeeklyStreams computes one released song's stream count for this turn.
//
// Base is quality² × 50 scaled by hype, label, and popularity multipliers
// and a 0.8–1.2 jitter; seasonal genre, critical-acclaim, playlist, and
// paid-promotion multipliers then apply multiplicatively in that order.
func WeeklyStreams(entity *snapshot.Entity, song *snapshot.Song, ctx Context) int64 {
	quality := float64(song.Quality)
	hypeMult := 1 + entity.Hype/100
	popMult := 1 + entity.Popularity/100

	streams := quality * quality * streamBaseFactor *
		hypeMult * labelMultiplier(entity, ctx.Lib) * popMult *
		random.Jitter(ctx.Rng, 0.8, 1.2)

	streams *= ctx.Lib.SeasonMultiplier(song.Genre, ctx.Date.Week)

	if song.Acclaimed {
		if release := entity.ReleaseByID(song.ReleaseID); release != nil && release.ReviewScore != nil {
			streams *= acclaimMultiplier(*release.ReviewScore)
		}
	}
	if song.PlaylistWeeks > 0 {
		streams *= playlistBoost
	}
	for _, promo := range entity.Promotions {
		if promo.SongID == song.ID {
			streams *= promo.Multiplier
		}
	}

	if streams < 0 {
		return 0
	}
	return int64(streams)
}

// WeeklyViews computes a music video's view count for this turn.
func WeeklyViews(entity *snapshot.Entity, song *snapshot.Song, ctx Context) int64 {
	quality := float64(song.Quality)
	views := quality * quality * 12 *
		(1 + entity.Hype/100) * (1 + entity.Popularity/100) *
		random.Jitter(ctx.Rng, 0.8, 1.2)
	if views < 0 {
		return 0
	}
	return int64(views)
}

// DistributeDaily splits a weekly total into 7 display buckets using
// randomized weights. The buckets are adjusted to sum exactly to the total;
// the weekly figure stays authoritative.
func DistributeDaily(total int64, rng random.Source) [7]int64 {
	var buckets [7]int64
	if total <= 0 {
		return buckets
	}

	var weights [7]float64
	var sum float64
	for i := range weights {
		weights[i] = 0.5 + rng.Float64()
		sum += weights[i]
	}

	var assigned int64
	for i := range buckets {
		buckets[i] = int64(float64(total) * weights[i] / sum)
		assigned += buckets[i]
	}
	// Rounding remainder lands on the final day.
	buckets[6] += total - assigned
	return buckets
}
