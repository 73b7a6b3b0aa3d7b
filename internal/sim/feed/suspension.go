package feed

import (
	"fmt"

	"github.com/louisbranch/encore/internal/platform/random"
	"github.com/louisbranch/encore/internal/sim/snapshot"
)

// Suspension causes.
const (
	CauseAutomatedFlag = "automated_flag"
	CauseMassReports   = "mass_reports"
)

const (
	baseSuspensionChance = 0.005
	fanWarAmplifier      = 6.0

	fanWarStartChance = 0.03
	fanWarMinWeeks    = 2
	fanWarMaxWeeks    = 6
)

// appealSuccess maps a suspension cause to the appeal's odds. Automated
// flags are usually overturned; mass reports rarely are.
var appealSuccess = map[string]float64{
	CauseAutomatedFlag: 0.8,
	CauseMassReports:   0.35,
}

// TickSuspension resolves a pending appeal and rolls for new
// suspensions. An appeal filed last turn resolves now; unsuspended
// accounts face a small baseline risk, amplified during a fan war.
func TickSuspension(entity *snapshot.Entity, ctx Context) {
	social := &entity.Social

	if social.Suspended && social.Appeal != nil && ctx.Date.WeeksSince(social.Appeal.FiledOn) >= 1 {
		resolveAppeal(entity, ctx)
		return
	}
	if social.Suspended {
		return
	}

	chance := baseSuspensionChance
	if social.FanWarRival != "" {
		chance *= fanWarAmplifier
	}
	if !random.Chance(ctx.Rng, chance) {
		return
	}

	cause := CauseAutomatedFlag
	if social.FanWarRival != "" {
		cause = CauseMassReports
	}
	social.Suspended = true
	social.SuspensionCause = cause
	entity.QueueEmail(snapshot.Email{
		From:    "Trust & Safety",
		Subject: "Your account has been suspended",
		Body:    fmt.Sprintf("Your account @%s was suspended for violating platform rules (%s). You may file one appeal at a time.", social.Username, cause),
		Week:    ctx.Date,
	})
}

func resolveAppeal(entity *snapshot.Entity, ctx Context) {
	social := &entity.Social
	cause := social.Appeal.Cause
	social.Appeal = nil

	if random.Chance(ctx.Rng, appealSuccess[cause]) {
		social.Suspended = false
		social.SuspensionCause = ""
		entity.QueueEmail(snapshot.Email{
			From:    "Trust & Safety",
			Subject: "Appeal approved",
			Body:    fmt.Sprintf("On review, the suspension of @%s has been lifted. Your account is restored.", social.Username),
			Week:    ctx.Date,
		})
		return
	}

	entity.QueueEmail(snapshot.Email{
		From:    "Trust & Safety",
		Subject: "Appeal denied",
		Body:    fmt.Sprintf("The suspension of @%s was upheld. You may file another appeal.", social.Username),
		Week:    ctx.Date,
	})
}

// TickFanWar starts, runs down, and ends fan wars. A running war ticks
// one week per turn and ends quietly at zero.
func TickFanWar(entity *snapshot.Entity, ctx Context) {
	social := &entity.Social

	if social.FanWarRival != "" {
		social.FanWarWeeks--
		if social.FanWarWeeks <= 0 {
			social.FanWarRival = ""
			social.FanWarWeeks = 0
		}
		return
	}

	if len(ctx.Lib.Artists) == 0 || !random.Chance(ctx.Rng, fanWarStartChance) {
		return
	}
	rival := ctx.Lib.Artists[ctx.Rng.Intn(len(ctx.Lib.Artists))]
	social.FanWarRival = rival.Name
	social.FanWarWeeks = random.Between(ctx.Rng, fanWarMinWeeks, fanWarMaxWeeks)
	entity.QueueEmail(snapshot.Email{
		From:    entity.ManagerName(),
		Subject: "Fanbase situation",
		Body:    fmt.Sprintf("The %s fandom picked a fight with ours overnight and it is trending. Keep your posts clean until it blows over.", rival.Name),
		Week:    ctx.Date,
	})
}
