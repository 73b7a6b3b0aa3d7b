// Package offers runs the periodic opportunity pipelines and the weekly
// staff payroll.
package offers

import (
	"fmt"

	"github.com/louisbranch/encore/internal/content"
	"github.com/louisbranch/encore/internal/platform/random"
	"github.com/louisbranch/encore/internal/sim/snapshot"
)

// pipeline tunes one offer kind: how likely an offer is once the
// countdown expires, how long until the next window, and the payout
// range in whole dollars.
type pipeline struct {
	chance    float64
	resetMin  int
	resetMax  int
	payoutMin int64
	payoutMax int64
}

var pipelines = map[snapshot.OfferKind]pipeline{
	snapshot.OfferSoundtrack:    {chance: 0.45, resetMin: 6, resetMax: 14, payoutMin: 20_000, payoutMax: 60_000},
	snapshot.OfferFeature:       {chance: 0.55, resetMin: 4, resetMax: 10, payoutMin: 8_000, payoutMax: 30_000},
	snapshot.OfferMagazineCover: {chance: 0.35, resetMin: 8, resetMax: 16, payoutMin: 4_000, payoutMax: 12_000},
}

// pipelineOrder fixes the RNG consumption order across turns.
var pipelineOrder = []snapshot.OfferKind{
	snapshot.OfferSoundtrack,
	snapshot.OfferFeature,
	snapshot.OfferMagazineCover,
}

// Renewal pipelines only run while the matching role is vacant.
var renewalPipelines = map[snapshot.OfferKind]pipeline{
	snapshot.OfferManagerRenewal:  {chance: 0.6, resetMin: 3, resetMax: 8},
	snapshot.OfferSecurityRenewal: {chance: 0.6, resetMin: 3, resetMax: 8},
}

var offerSenders = map[snapshot.OfferKind]string{
	snapshot.OfferSoundtrack:    "Meridian Pictures Music Dept.",
	snapshot.OfferFeature:       "A&R Network",
	snapshot.OfferMagazineCover: "The Standard Monthly",
}

// Context carries the per-turn inputs for the offer pipelines.
type Context struct {
	Lib   *content.Library
	Rng   random.Source
	Date  snapshot.Date
	NewID func() (string, error)
}

// Tick decrements every pipeline countdown and fires new offers for the
// ones that reached zero.
func Tick(entity *snapshot.Entity, ctx Context) {
	if entity.OfferCountdowns == nil {
		entity.OfferCountdowns = make(map[snapshot.OfferKind]int)
	}

	for _, kind := range pipelineOrder {
		tickPipeline(entity, kind, pipelines[kind], ctx)
	}
	if entity.Manager == nil {
		tickPipeline(entity, snapshot.OfferManagerRenewal, renewalPipelines[snapshot.OfferManagerRenewal], ctx)
	}
	if entity.Security == nil {
		tickPipeline(entity, snapshot.OfferSecurityRenewal, renewalPipelines[snapshot.OfferSecurityRenewal], ctx)
	}
}

func tickPipeline(entity *snapshot.Entity, kind snapshot.OfferKind, pipe pipeline, ctx Context) {
	countdown, ok := entity.OfferCountdowns[kind]
	if !ok {
		entity.OfferCountdowns[kind] = random.Between(ctx.Rng, pipe.resetMin, pipe.resetMax)
		return
	}
	if countdown > 0 {
		entity.OfferCountdowns[kind] = countdown - 1
		return
	}

	entity.OfferCountdowns[kind] = random.Between(ctx.Rng, pipe.resetMin, pipe.resetMax)
	if !random.Chance(ctx.Rng, pipe.chance) {
		return
	}
	fire(entity, kind, pipe, ctx)
}

func fire(entity *snapshot.Entity, kind snapshot.OfferKind, pipe pipeline, ctx Context) {
	id, err := ctx.NewID()
	if err != nil {
		return
	}

	offer := snapshot.Offer{
		ID:        id,
		Kind:      kind,
		OfferedOn: ctx.Date,
	}

	switch kind {
	case snapshot.OfferManagerRenewal:
		profile := pickProfile(ctx.Lib.Managers, ctx.Rng)
		if profile == nil {
			return
		}
		offer.From = profile.Name
		entity.QueueEmail(snapshot.Email{
			From:    profile.Name,
			Subject: "Management proposal",
			Body:    fmt.Sprintf("I have been following your run and I want to manage it. My rate is $%d a week.", profile.WeeklyCost),
			Week:    ctx.Date,
		})
	case snapshot.OfferSecurityRenewal:
		profile := pickProfile(ctx.Lib.Security, ctx.Rng)
		if profile == nil {
			return
		}
		offer.From = profile.Name
		entity.QueueEmail(snapshot.Email{
			From:    profile.Name,
			Subject: "Security detail available",
			Body:    fmt.Sprintf("Our team can cover your sessions and travel for $%d a week. Unreleased material stays unreleased.", profile.WeeklyCost),
			Week:    ctx.Date,
		})
	default:
		offer.From = offerSenders[kind]
		offer.Payout = pipe.payoutMin + int64(random.Between(ctx.Rng, 0, int(pipe.payoutMax-pipe.payoutMin)))
		entity.QueueEmail(snapshot.Email{
			From:    offer.From,
			Subject: offerSubject(kind),
			Body:    fmt.Sprintf("We would like to work with %s. The engagement pays $%d. Accept or decline through your inbox.", entity.Name, offer.Payout),
			Week:    ctx.Date,
		})
	}

	entity.Offers = append(entity.Offers, offer)
}

func offerSubject(kind snapshot.OfferKind) string {
	switch kind {
	case snapshot.OfferSoundtrack:
		return "Soundtrack placement offer"
	case snapshot.OfferFeature:
		return "Feature request"
	case snapshot.OfferMagazineCover:
		return "Cover story offer"
	}
	return "New offer"
}

func pickProfile(profiles []content.StaffProfile, rng random.Source) *content.StaffProfile {
	if len(profiles) == 0 {
		return nil
	}
	return &profiles[rng.Intn(len(profiles))]
}

// Payroll charges weekly staff costs. Staff walk when the money is not
// there, with a resignation email each.
func Payroll(entity *snapshot.Entity, now snapshot.Date) {
	if entity.Manager != nil {
		if entity.Money >= entity.Manager.WeeklyCost {
			entity.Money -= entity.Manager.WeeklyCost
		} else {
			quit := entity.Manager
			entity.Manager = nil
			entity.QueueEmail(snapshot.Email{
				From:    quit.Name,
				Subject: "Stepping away",
				Body:    "My last invoice bounced. I can't keep working unpaid; consider this my resignation.",
				Week:    now,
			})
		}
	}
	if entity.Security != nil {
		if entity.Money >= entity.Security.WeeklyCost {
			entity.Money -= entity.Security.WeeklyCost
		} else {
			quit := entity.Security
			entity.Security = nil
			entity.QueueEmail(snapshot.Email{
				From:    quit.Name,
				Subject: "Contract terminated",
				Body:    "Payment for this week did not clear. Our detail is standing down effective immediately.",
				Week:    now,
			})
		}
	}
}
