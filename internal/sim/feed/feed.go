// Package feed synthesizes the week's social activity for an entity: a
// prioritized list of post rules, lazily created synthetic accounts, and
// the trending-topics list. Rules missing their data are skipped; this
// package never fails, it only varies its output volume.
package feed

import (
	"fmt"
	"strings"

	"github.com/louisbranch/encore/internal/content"
	"github.com/louisbranch/encore/internal/platform/random"
	"github.com/louisbranch/encore/internal/sim/snapshot"
)

// Events is the week's notable happenings collected by the orchestrator
// before the feed runs.
type Events struct {
	ChartedSongs []ChartedSong
	NewLeaks     []string
	TourPlayed   *snapshot.Venue
	AwardWin     *snapshot.AwardWin
	Nominated    []string
	NewReviews   []ReviewedRelease
}

// ChartedSong is a song's current singles-chart placement.
type ChartedSong struct {
	Title string
	Rank  int
}

// ReviewedRelease pairs a fresh release with its critic score.
type ReviewedRelease struct {
	Title string
	Score int
}

// Context carries the per-turn inputs for feed synthesis.
type Context struct {
	Lib   *content.Library
	Rng   random.Source
	Date  snapshot.Date
	NewID func() (string, error)
}

// Synthesize runs every post rule against the entity and the week's
// events, then rebuilds the trending list.
func Synthesize(entity *snapshot.Entity, events Events, ctx Context) {
	rules := []func(*snapshot.Entity, Events, Context){
		chartRule,
		leakRule,
		tourRule,
		awardRule,
		reviewRule,
		fanWarRule,
		statsRule,
	}
	for _, rule := range rules {
		rule(entity, events, ctx)
	}
	refreshTrends(entity, events)
}

// chartRule posts fan reactions to chart placements.
func chartRule(entity *snapshot.Entity, events Events, ctx Context) {
	for _, charted := range events.ChartedSongs {
		if !random.Chance(ctx.Rng, 0.6) {
			continue
		}
		author := ensureUser(entity, ctx, snapshot.UserFan, "fan")
		body := fmt.Sprintf("%q at #%d this week. stream it until the number moves", charted.Title, charted.Rank)
		if charted.Rank == 1 {
			body = fmt.Sprintf("NUMBER ONE. %q did it. screaming", charted.Title)
		}
		addPost(entity, ctx, author, body)
	}
}

// leakRule posts about freshly leaked songs, from both sides.
func leakRule(entity *snapshot.Entity, events Events, ctx Context) {
	for _, title := range events.NewLeaks {
		author := ensureUser(entity, ctx, snapshot.UserHater, "truth")
		addPost(entity, ctx, author, fmt.Sprintf("the %q files are out. quality control would have caught this", title))
		if random.Chance(ctx.Rng, 0.5) {
			fan := ensureUser(entity, ctx, snapshot.UserFan, "fan")
			addPost(entity, ctx, fan, fmt.Sprintf("do NOT stream the %q leak. wait for the real drop", title))
		}
	}
}

// tourRule posts a crowd report when a venue was played this week.
func tourRule(entity *snapshot.Entity, events Events, ctx Context) {
	if events.TourPlayed == nil || !random.Chance(ctx.Rng, 0.7) {
		return
	}
	venue := events.TourPlayed
	author := ensureUser(entity, ctx, snapshot.UserFan, "liveupdates")
	addPost(entity, ctx, author, fmt.Sprintf("%s %s was %d people losing their minds. city of the tour so far", venue.City, venue.Name, venue.TicketsSold))
}

// awardRule reacts to wins and nominations.
func awardRule(entity *snapshot.Entity, events Events, ctx Context) {
	if events.AwardWin != nil {
		author := ensureUser(entity, ctx, snapshot.UserFan, "fan")
		addPost(entity, ctx, author, fmt.Sprintf("%s WON %s for %q. this is history", entity.Name, events.AwardWin.Category, events.AwardWin.Work))
		return
	}
	for _, work := range events.Nominated {
		if !random.Chance(ctx.Rng, 0.5) {
			continue
		}
		author := ensureUser(entity, ctx, snapshot.UserFan, "fan")
		addPost(entity, ctx, author, fmt.Sprintf("%q nominated. deserved and overdue", work))
	}
}

// reviewRule quotes critic scores, kindly or not.
func reviewRule(entity *snapshot.Entity, events Events, ctx Context) {
	for _, review := range events.NewReviews {
		if review.Score >= 80 {
			author := ensureUser(entity, ctx, snapshot.UserFan, "fan")
			addPost(entity, ctx, author, fmt.Sprintf("critics gave %q a %d. we been knew", review.Title, review.Score))
		} else if review.Score < 55 {
			author := ensureUser(entity, ctx, snapshot.UserHater, "truth")
			addPost(entity, ctx, author, fmt.Sprintf("a %d for %q. the industry plant allegations write themselves", review.Score, review.Title))
		}
	}
}

// fanWarRule emits a diss and a retaliation while a fan war runs.
func fanWarRule(entity *snapshot.Entity, events Events, ctx Context) {
	if entity.Social.FanWarRival == "" {
		return
	}
	rival := ensureUser(entity, ctx, snapshot.UserRivalFan, "stan")
	addPost(entity, ctx, rival, fmt.Sprintf("%s could never. %s outsold and it is not close", entity.Name, entity.Social.FanWarRival))
	fan := ensureUser(entity, ctx, snapshot.UserFan, "fan")
	addPost(entity, ctx, fan, fmt.Sprintf("%s fans are in our mentions again. check the numbers and log off", entity.Social.FanWarRival))
}

// statsRule has the parody stats account report weekly totals.
func statsRule(entity *snapshot.Entity, events Events, ctx Context) {
	var total int64
	for _, song := range entity.Songs {
		if song.Released {
			total += song.LastWeekStreams
		}
	}
	if total == 0 || !random.Chance(ctx.Rng, 0.4) {
		return
	}
	author := ensureUser(entity, ctx, snapshot.UserStats, "chartdata")
	addPost(entity, ctx, author, fmt.Sprintf("%s moved %d streams this week across the catalog.", entity.Name, total))
}

// ensureUser returns an existing synthetic account of the kind or lazily
// creates one, retrying usernames until no collision.
func ensureUser(entity *snapshot.Entity, ctx Context, kind snapshot.UserKind, stem string) string {
	// Pick the lexically first match so reuse is stable across turns.
	var match string
	for username, user := range entity.Social.Users {
		if user.Kind == kind && (match == "" || username < match) {
			match = username
		}
	}
	if match != "" {
		return match
	}

	if entity.Social.Users == nil {
		entity.Social.Users = make(map[string]snapshot.SocialUser)
	}

	base := strings.ToLower(strings.ReplaceAll(entity.Name, " ", ""))
	username := fmt.Sprintf("%s_%s", base, stem)
	for n := 2; entity.Social.HasUser(username) || username == entity.Social.Username; n++ {
		username = fmt.Sprintf("%s_%s%d", base, stem, n)
	}
	entity.Social.Users[username] = snapshot.SocialUser{
		Username:    username,
		DisplayName: fmt.Sprintf("%s %s", entity.Name, titleCase(stem)),
		Kind:        kind,
	}
	return username
}

func addPost(entity *snapshot.Entity, ctx Context, author, body string) {
	id, err := ctx.NewID()
	if err != nil {
		return
	}
	entity.Social.AddPost(snapshot.Post{
		ID:     id,
		Author: author,
		Body:   body,
		Week:   ctx.Date,
		Likes:  int64(random.Between(ctx.Rng, 20, 40000)),
	})
}

// refreshTrends rebuilds the trending list from the week's events.
func refreshTrends(entity *snapshot.Entity, events Events) {
	var trends []string
	for _, charted := range events.ChartedSongs {
		if charted.Rank <= 10 {
			trends = append(trends, "#"+hashtag(charted.Title))
		}
	}
	for _, title := range events.NewLeaks {
		trends = append(trends, "#"+hashtag(title)+"Leak")
	}
	if events.AwardWin != nil {
		trends = append(trends, "#"+hashtag(entity.Name))
	}
	if entity.Social.FanWarRival != "" {
		trends = append(trends, "#"+hashtag(entity.Name)+"Vs"+hashtag(entity.Social.FanWarRival))
	}
	if len(trends) > 5 {
		trends = trends[:5]
	}
	entity.Social.Trends = trends
}

func hashtag(s string) string {
	var b strings.Builder
	for _, word := range strings.Fields(s) {
		b.WriteString(titleCase(strings.ToLower(word)))
	}
	return b.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
