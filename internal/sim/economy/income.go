package economy

import (
	"fmt"

	"github.com/louisbranch/encore/internal/platform/random"
	"github.com/louisbranch/encore/internal/sim/snapshot"
)

// Income rates. Integer arithmetic throughout: fractions are floored.
const (
	// streamRate pays $3 per 1000 streams.
	streamRateNum = 3
	streamRateDen = 1000
	// viewRate pays $1 per 1000 views.
	viewRateNum = 1
	viewRateDen = 1000
	// merchPerPopularity is weekly merch revenue per popularity point.
	merchPerPopularity = 110
	// subscriberRate pays $5 per 100 followers per week.
	subscriberRateNum = 5
	subscriberRateDen = 100
)

// Report is the net result of realizing one entity's weekly economics.
type Report struct {
	TotalStreams       int64
	TotalViews         int64
	StreamIncome       int64
	ViewIncome         int64
	MerchIncome        int64
	SubscriptionIncome int64
	Certifications     []CertEvent
}

// Income is the sum of all revenue sources.
func (r *Report) Income() int64 {
	return r.StreamIncome + r.ViewIncome + r.MerchIncome + r.SubscriptionIncome
}

// Realize computes this turn's streams, views, certifications, and income
// for one entity, credits the income to its money, and returns the report.
// The weekly trend fields shift: last week's figure becomes the previous
// week's, and this week's roll becomes the last-week display value.
func Realize(entity *snapshot.Entity, ctx Context) *Report {
	report := &Report{}

	for i := range entity.Songs {
		song := &entity.Songs[i]
		if !song.Released {
			continue
		}
		weekly := WeeklyStreams(entity, song, ctx)
		song.PrevWeekStreams = song.LastWeekStreams
		song.LastWeekStreams = weekly
		song.Streams += weekly
		song.DailyStreams = DistributeDaily(weekly, ctx.Rng)
		report.TotalStreams += weekly

		if event := certifySong(song); event != nil {
			report.Certifications = append(report.Certifications, *event)
		}
	}

	for i := range entity.Releases {
		release := &entity.Releases[i]
		if release.ReleasedOn.Before(ctx.Date) || release.ReleasedOn.Equal(ctx.Date) {
			if event := certifyRelease(entity, release); event != nil {
				report.Certifications = append(report.Certifications, *event)
			}
		}
	}

	for i := range entity.Videos {
		video := &entity.Videos[i]
		song := entity.SongByID(video.SongID)
		if song == nil {
			continue
		}
		weekly := WeeklyViews(entity, song, ctx)
		video.LastWeekViews = weekly
		video.Views += weekly
		report.TotalViews += weekly
	}

	report.StreamIncome = report.TotalStreams * streamRateNum / streamRateDen
	report.ViewIncome = report.TotalViews * viewRateNum / viewRateDen
	report.MerchIncome = int64(entity.Popularity * merchPerPopularity * random.Jitter(ctx.Rng, 0.8, 1.2))
	report.SubscriptionIncome = entity.Social.Followers / subscriberRateDen * subscriberRateNum

	entity.Money += report.Income()

	for _, event := range report.Certifications {
		entity.QueueEmail(snapshot.Email{
			From:    "Recording Certification Board",
			Subject: fmt.Sprintf("%q is now certified %s", event.Title, event.Certification),
			Body: fmt.Sprintf("Congratulations. %q has been certified %s. Updated plaques are on the way.",
				event.Title, event.Certification),
			Week: ctx.Date,
		})
	}

	return report
}

// ChargePromotions decrements and charges active campaigns. When the
// balance cannot cover the total weekly cost, every promotion is cancelled
// and a failure notice is queued instead of charging anything.
func ChargePromotions(entity *snapshot.Entity, ctx Context) bool {
	if len(entity.Promotions) == 0 {
		return false
	}

	var total int64
	for _, promo := range entity.Promotions {
		total += promo.WeeklyCost
	}

	if entity.Money < total {
		entity.Promotions = nil
		entity.QueueEmail(snapshot.Email{
			From:    "Velocity Promo Partners",
			Subject: "Promotional campaigns cancelled",
			Body:    "Your account could not cover this week's promotional invoices. All active campaigns have been suspended.",
			Week:    ctx.Date,
		})
		return true
	}

	entity.Money -= total

	kept := entity.Promotions[:0]
	for _, promo := range entity.Promotions {
		promo.WeeksLeft--
		if promo.WeeksLeft > 0 {
			kept = append(kept, promo)
		}
	}
	entity.Promotions = kept
	if len(entity.Promotions) == 0 {
		entity.Promotions = nil
	}
	return false
}

// DecayMetrics applies the weekly hype and popularity decay and counts the
// weeks since the entity last put out new material.
func DecayMetrics(entity *snapshot.Entity) {
	entity.Hype -= 2
	if entity.Hype < 0 {
		entity.Hype = 0
	}
	entity.WeeksSinceRelease++
	if entity.WeeksSinceRelease > 8 {
		entity.Popularity -= 0.5
		if entity.Popularity < 0 {
			entity.Popularity = 0
		}
	}
	for i := range entity.Songs {
		if entity.Songs[i].PlaylistWeeks > 0 {
			entity.Songs[i].PlaylistWeeks--
		}
	}
}
