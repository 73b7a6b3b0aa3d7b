// Package label advances contract and submission lifecycles once per turn.
package label

import (
	"fmt"

	"github.com/louisbranch/encore/internal/content"
	"github.com/louisbranch/encore/internal/platform/random"
	"github.com/louisbranch/encore/internal/sim/release"
	"github.com/louisbranch/encore/internal/sim/snapshot"
)

// Pending submissions are judged after this many turns without action.
const reviewDelayWeeks = 2

// Petty labels hold submissions to a stiffer bar than they advertise.
const pettyQualityPenalty = 10

// Context carries the per-turn inputs for label lifecycle steps.
type Context struct {
	Lib   *content.Library
	Rng   random.Source
	Date  snapshot.Date
	NewID func() (string, error)
}

func (c Context) newID(fallback string) string {
	id, err := c.NewID()
	if err != nil {
		return fallback
	}
	return id
}

// TickContract checks contract expiry. For the actively controlled entity
// an expired contract surfaces a renewal prompt and stays in place until
// the player decides; any other entity silently transitions to
// independent status.
func TickContract(entity *snapshot.Entity, isActive bool, ctx Context) *snapshot.RenewalPrompt {
	if entity.Contract == nil || !entity.Contract.Expired(ctx.Date) {
		return nil
	}

	labelID := entity.Contract.LabelID
	if isActive {
		return &snapshot.RenewalPrompt{
			EntityID:  entity.ID,
			LabelID:   labelID,
			OfferedOn: ctx.Date,
		}
	}

	entity.Contract = nil
	labelName := labelID
	if label := ctx.Lib.LabelByID(labelID); label != nil {
		labelName = label.Name
	}
	entity.QueueEmail(snapshot.Email{
		From:    labelName,
		Subject: "Contract concluded",
		Body:    fmt.Sprintf("The term of the agreement between %s and %s has ended. You are now an independent artist.", entity.Name, labelName),
		Week:    ctx.Date,
	})
	return nil
}

// TickSubmissions judges stale pending submissions and fires scheduled
// releases that reached their target date.
func TickSubmissions(entity *snapshot.Entity, ctx Context) {
	for i := range entity.Submissions {
		submission := &entity.Submissions[i]
		switch submission.Status {
		case snapshot.SubmissionPending:
			if ctx.Date.WeeksSince(submission.SubmittedOn) >= reviewDelayWeeks {
				judge(entity, submission, ctx)
			}
		case snapshot.SubmissionScheduled:
			fireScheduled(entity, submission, ctx)
		}
	}

	// Completed scheduled submissions are removed; rejections stay as a
	// terminal record.
	kept := entity.Submissions[:0]
	for _, submission := range entity.Submissions {
		if submission.Status == snapshot.SubmissionScheduled && submission.ScheduledFor == nil {
			continue
		}
		kept = append(kept, submission)
	}
	entity.Submissions = kept
	if len(entity.Submissions) == 0 {
		entity.Submissions = nil
	}
}

// judge applies the label's quality gate to a pending submission.
func judge(entity *snapshot.Entity, submission *snapshot.Submission, ctx Context) {
	label := ctx.Lib.LabelByID(submission.LabelID)
	if label == nil {
		submission.Status = snapshot.SubmissionRejected
		return
	}

	var total, counted int
	for _, songID := range submission.SongIDs {
		if song := entity.SongByID(songID); song != nil {
			total += song.Quality
			counted++
		}
	}
	average := 0
	if counted > 0 {
		average = total / counted
	}

	required := label.MinQuality
	if label.Petty {
		required += pettyQualityPenalty
	}

	if average >= required {
		submission.Status = snapshot.SubmissionAwaitingInput
		entity.QueueEmail(snapshot.Email{
			From:    label.Name,
			Subject: fmt.Sprintf("%q approved", submission.ReleaseTitle),
			Body:    fmt.Sprintf("The A&R team signed off on %q. Pick a release date and we will put the machine behind it.", submission.ReleaseTitle),
			Week:    ctx.Date,
		})
		return
	}

	submission.Status = snapshot.SubmissionRejected
	entity.QueueEmail(snapshot.Email{
		From:    label.Name,
		Subject: fmt.Sprintf("%q passed on", submission.ReleaseTitle),
		Body:    fmt.Sprintf("We listened to %q and it is not where it needs to be for this roster. Keep working and bring us the next one.", submission.ReleaseTitle),
		Week:    ctx.Date,
	})
}

// fireScheduled releases pre-singles one week ahead and the main project
// exactly on its date, each with a promotional-offer email.
func fireScheduled(entity *snapshot.Entity, submission *snapshot.Submission, ctx Context) {
	if submission.ScheduledFor == nil {
		return
	}
	target := *submission.ScheduledFor

	if len(submission.PreSingleIDs) > 0 && ctx.Date.WeeksSince(target) == -1 {
		for _, songID := range submission.PreSingleIDs {
			song := entity.SongByID(songID)
			if song == nil || song.Released {
				continue
			}
			rel := release.Publish(entity, release.Input{
				ID:      ctx.newID("rel-" + songID),
				Title:   song.Title,
				Type:    snapshot.ReleaseSingle,
				SongIDs: []string{songID},
				LabelID: submission.LabelID,
			}, ctx.Date, ctx.Rng)
			if rel != nil {
				queuePromoOffer(entity, rel.Title, submission.LabelID, ctx)
			}
		}
		submission.PreSingleIDs = nil
		return
	}

	if ctx.Date.WeeksSince(target) >= 0 {
		rel := release.Publish(entity, release.Input{
			ID:       ctx.newID("rel-" + submission.ID),
			Title:    submission.ReleaseTitle,
			Type:     submission.Type,
			SongIDs:  submission.SongIDs,
			CoverArt: submission.CoverArt,
			LabelID:  submission.LabelID,
		}, ctx.Date, ctx.Rng)
		if rel != nil {
			queuePromoOffer(entity, rel.Title, submission.LabelID, ctx)
		}
		// Mark completion; TickSubmissions removes the record.
		submission.ScheduledFor = nil
	}
}

func queuePromoOffer(entity *snapshot.Entity, title, labelID string, ctx Context) {
	labelName := labelID
	if label := ctx.Lib.LabelByID(labelID); label != nil {
		labelName = label.Name
	}
	entity.QueueEmail(snapshot.Email{
		From:    labelName,
		Subject: fmt.Sprintf("%q is out — promo budget available", title),
		Body:    fmt.Sprintf("%q shipped today. Marketing is holding a promotional budget; reply through your manager to activate a campaign.", title),
		Week:    ctx.Date,
	})
}
