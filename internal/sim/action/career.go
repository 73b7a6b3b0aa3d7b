package action

import (
	"github.com/louisbranch/encore/internal/platform/random"
	"github.com/louisbranch/encore/internal/sim/release"
	"github.com/louisbranch/encore/internal/sim/snapshot"
)

const (
	recordingCost = 2_000
	videoCost     = 8_000

	// A session's quality floor rises with a skilled manager.
	baseQualityMin = 40
	baseQualityMax = 95
)

// promoPlan is one purchasable campaign kind.
type promoPlan struct {
	weeklyCost int64
	multiplier float64
	// playlist campaigns set the editorial-playlist window instead of a
	// weekly multiplier.
	playlist bool
}

var promoPlans = map[string]promoPlan{
	"radio":    {weeklyCost: 5_000, multiplier: 1.5},
	"social":   {weeklyCost: 2_500, multiplier: 1.3},
	"playlist": {weeklyCost: 4_000, playlist: true},
}

func applyRecordSong(snap *snapshot.Snapshot, cmd RecordSong, deps Deps) *snapshot.Snapshot {
	next, entity := active(snap)
	if entity == nil || cmd.Title == "" || entity.Money < recordingCost {
		return snap
	}
	id, err := deps.NewID()
	if err != nil {
		return snap
	}

	quality := random.Between(deps.Rng, baseQualityMin, baseQualityMax)
	if entity.Manager != nil {
		quality += int(entity.Manager.Skill * 10)
		if quality > 100 {
			quality = 100
		}
	}

	entity.Money -= recordingCost
	entity.Songs = append(entity.Songs, snapshot.Song{
		ID:         id,
		Title:      cmd.Title,
		Genre:      cmd.Genre,
		Quality:    quality,
		RecordedOn: next.Date,
	})
	return next
}

func applyReleaseProject(snap *snapshot.Snapshot, cmd ReleaseProject, deps Deps) *snapshot.Snapshot {
	next, entity := active(snap)
	if entity == nil || cmd.Title == "" || len(cmd.SongIDs) == 0 {
		return snap
	}
	id, err := deps.NewID()
	if err != nil {
		return snap
	}

	labelID := ""
	if entity.Contract != nil {
		labelID = entity.Contract.LabelID
	}
	published := release.Publish(entity, release.Input{
		ID:       id,
		Title:    cmd.Title,
		Type:     cmd.Type,
		SongIDs:  cmd.SongIDs,
		CoverArt: cmd.CoverArt,
		LabelID:  labelID,
	}, next.Date, deps.Rng)
	if published == nil {
		return snap
	}
	return next
}

func applyShootVideo(snap *snapshot.Snapshot, cmd ShootVideo, deps Deps) *snapshot.Snapshot {
	next, entity := active(snap)
	if entity == nil || entity.Money < videoCost {
		return snap
	}
	song := entity.SongByID(cmd.SongID)
	if song == nil || !song.Released || entity.VideoBySongID(cmd.SongID) != nil {
		return snap
	}
	id, err := deps.NewID()
	if err != nil {
		return snap
	}

	entity.Money -= videoCost
	entity.Videos = append(entity.Videos, snapshot.Video{
		ID:         id,
		SongID:     song.ID,
		Title:      song.Title,
		ReleasedOn: next.Date,
	})
	entity.Hype += 5
	if entity.Hype > 100 {
		entity.Hype = 100
	}
	return next
}

func applyStartPromotion(snap *snapshot.Snapshot, cmd StartPromotion, deps Deps) *snapshot.Snapshot {
	next, entity := active(snap)
	if entity == nil || cmd.Weeks <= 0 {
		return snap
	}
	plan, ok := promoPlans[cmd.Kind]
	if !ok {
		return snap
	}
	song := entity.SongByID(cmd.SongID)
	if song == nil || !song.Released {
		return snap
	}
	// The first week's invoice must be coverable up front.
	if entity.Money < plan.weeklyCost {
		return snap
	}

	if plan.playlist {
		if song.PlaylistWeeks > 0 {
			return snap
		}
		entity.Money -= plan.weeklyCost
		song.PlaylistWeeks = cmd.Weeks
		return next
	}

	for _, promo := range entity.Promotions {
		if promo.SongID == cmd.SongID && promo.Kind == cmd.Kind {
			return snap
		}
	}
	id, err := deps.NewID()
	if err != nil {
		return snap
	}
	entity.Promotions = append(entity.Promotions, snapshot.Promotion{
		ID:         id,
		Kind:       cmd.Kind,
		SongID:     cmd.SongID,
		WeeklyCost: plan.weeklyCost,
		Multiplier: plan.multiplier,
		WeeksLeft:  cmd.Weeks,
	})
	return next
}
