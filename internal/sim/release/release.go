// Package release publishes projects: it binds songs to a new release,
// rolls the critical review, and applies the hype of a release week.
package release

import (
	"fmt"

	"github.com/louisbranch/encore/internal/platform/random"
	"github.com/louisbranch/encore/internal/sim/snapshot"
)

// Hype gained on release day by project type.
var releaseHype = map[snapshot.ReleaseType]float64{
	snapshot.ReleaseSingle: 10,
	snapshot.ReleaseEP:     16,
	snapshot.ReleaseAlbum:  25,
	snapshot.ReleaseDeluxe: 20,
}

// Input describes a project to publish.
type Input struct {
	ID       string
	Title    string
	Type     snapshot.ReleaseType
	SongIDs  []string
	CoverArt string
	LabelID  string
}

// Publish attaches the songs to a new release dated now, rolls a critical
// review for multi-song projects, and returns the release. Songs already
// attached to another release are skipped; publishing with no valid songs
// returns nil and leaves the entity untouched.
func Publish(entity *snapshot.Entity, input Input, now snapshot.Date, rng random.Source) *snapshot.Release {
	var songIDs []string
	for _, songID := range input.SongIDs {
		song := entity.SongByID(songID)
		if song == nil || song.Released {
			continue
		}
		songIDs = append(songIDs, songID)
	}
	if len(songIDs) == 0 {
		return nil
	}

	rel := snapshot.Release{
		ID:         input.ID,
		Title:      input.Title,
		Type:       input.Type,
		SongIDs:    songIDs,
		CoverArt:   input.CoverArt,
		ReleasedOn: now,
		LabelID:    input.LabelID,
	}

	// Critics only review multi-song projects.
	if input.Type != snapshot.ReleaseSingle {
		score := reviewScore(entity, songIDs, rng)
		rel.ReviewScore = &score
	}

	entity.Releases = append(entity.Releases, rel)
	stored := &entity.Releases[len(entity.Releases)-1]

	acclaimed := stored.ReviewScore != nil && *stored.ReviewScore >= 80
	for _, songID := range songIDs {
		song := entity.SongByID(songID)
		released := now
		song.Released = true
		song.ReleaseID = stored.ID
		song.ReleasedOn = &released
		if acclaimed {
			song.Acclaimed = true
		}
	}

	entity.Hype += releaseHype[input.Type]
	if entity.Hype > 100 {
		entity.Hype = 100
	}
	entity.Popularity += float64(len(songIDs))
	if entity.Popularity > 100 {
		entity.Popularity = 100
	}
	entity.WeeksSinceRelease = 0

	if stored.IsAlbum() && entity.Contract != nil && entity.Contract.LabelID == input.LabelID {
		entity.Contract.AlbumsDelivered++
	}

	if stored.ReviewScore != nil && *stored.ReviewScore >= 80 {
		entity.QueueEmail(snapshot.Email{
			From:    "The Needle Drop Desk",
			Subject: fmt.Sprintf("Critics are raving about %q", stored.Title),
			Body:    fmt.Sprintf("%q landed a %d review. Expect a long tail on this one.", stored.Title, *stored.ReviewScore),
			Week:    now,
		})
	}

	return stored
}

// reviewScore blends average song quality with a critic mood roll.
func reviewScore(entity *snapshot.Entity, songIDs []string, rng random.Source) int {
	var total int
	for _, songID := range songIDs {
		if song := entity.SongByID(songID); song != nil {
			total += song.Quality
		}
	}
	average := total / len(songIDs)
	score := average + random.Between(rng, -10, 10)
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}
