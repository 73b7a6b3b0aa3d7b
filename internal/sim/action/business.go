package action

import (
	"github.com/louisbranch/encore/internal/content"
	"github.com/louisbranch/encore/internal/sim/snapshot"
)

const offerHypeBoost = 8

func applyAcceptOffer(snap *snapshot.Snapshot, cmd AcceptOffer, deps Deps) *snapshot.Snapshot {
	next, entity := active(snap)
	if entity == nil {
		return snap
	}
	idx := offerIndex(entity, cmd.OfferID)
	if idx < 0 {
		return snap
	}
	offer := entity.Offers[idx]

	switch offer.Kind {
	case snapshot.OfferManagerRenewal:
		if entity.Manager != nil {
			return snap
		}
		profile := profileByName(deps.Lib.Managers, offer.From)
		if profile == nil {
			return snap
		}
		entity.Manager = &snapshot.Staff{
			Name:       profile.Name,
			Role:       snapshot.RoleManager,
			WeeklyCost: profile.WeeklyCost,
			Skill:      profile.Skill,
			HiredOn:    next.Date,
		}
	case snapshot.OfferSecurityRenewal:
		if entity.Security != nil {
			return snap
		}
		profile := profileByName(deps.Lib.Security, offer.From)
		if profile == nil {
			return snap
		}
		entity.Security = &snapshot.Staff{
			Name:       profile.Name,
			Role:       snapshot.RoleSecurity,
			WeeklyCost: profile.WeeklyCost,
			Skill:      profile.Skill,
			HiredOn:    next.Date,
		}
	default:
		entity.Money += offer.Payout
		entity.Hype += offerHypeBoost
		if entity.Hype > 100 {
			entity.Hype = 100
		}
	}

	entity.Offers = append(entity.Offers[:idx], entity.Offers[idx+1:]...)
	if len(entity.Offers) == 0 {
		entity.Offers = nil
	}
	return next
}

func applyDeclineOffer(snap *snapshot.Snapshot, cmd DeclineOffer) *snapshot.Snapshot {
	next, entity := active(snap)
	if entity == nil {
		return snap
	}
	idx := offerIndex(entity, cmd.OfferID)
	if idx < 0 {
		return snap
	}

	entity.Offers = append(entity.Offers[:idx], entity.Offers[idx+1:]...)
	if len(entity.Offers) == 0 {
		entity.Offers = nil
	}
	return next
}

func applyHireStaff(snap *snapshot.Snapshot, name, role string, deps Deps) *snapshot.Snapshot {
	next, entity := active(snap)
	if entity == nil {
		return snap
	}

	pool := deps.Lib.Managers
	slot := &entity.Manager
	if role == snapshot.RoleSecurity {
		pool = deps.Lib.Security
		slot = &entity.Security
	}
	if *slot != nil {
		return snap
	}
	profile := profileByName(pool, name)
	if profile == nil || entity.Money < profile.WeeklyCost {
		return snap
	}

	*slot = &snapshot.Staff{
		Name:       profile.Name,
		Role:       role,
		WeeklyCost: profile.WeeklyCost,
		Skill:      profile.Skill,
		HiredOn:    next.Date,
	}
	return next
}

func applyFireStaff(snap *snapshot.Snapshot, role string) *snapshot.Snapshot {
	next, entity := active(snap)
	if entity == nil {
		return snap
	}

	slot := &entity.Manager
	if role == snapshot.RoleSecurity {
		slot = &entity.Security
	}
	if *slot == nil {
		return snap
	}
	*slot = nil
	return next
}

func applyStartTour(snap *snapshot.Snapshot, cmd StartTour, deps Deps) *snapshot.Snapshot {
	next, entity := active(snap)
	if entity == nil || cmd.Name == "" || len(cmd.VenueNames) == 0 || cmd.TicketPrice <= 0 {
		return snap
	}
	// One tour in flight at a time, booked or on the road.
	if entity.OpenTour() != nil {
		return snap
	}

	venues := make([]snapshot.Venue, 0, len(cmd.VenueNames))
	for _, name := range cmd.VenueNames {
		spec := venueByName(deps.Lib.Venues, name)
		if spec == nil {
			return snap
		}
		venues = append(venues, snapshot.Venue{
			Name:     spec.Name,
			City:     spec.City,
			Capacity: spec.Capacity,
		})
	}
	id, err := deps.NewID()
	if err != nil {
		return snap
	}

	// Booked tours hit the road on the next advance.
	entity.Tours = append(entity.Tours, snapshot.Tour{
		ID:          id,
		Name:        cmd.Name,
		Venues:      venues,
		TicketPrice: cmd.TicketPrice,
		Status:      snapshot.TourPlanning,
	})
	return next
}

func applySubmitForAwards(snap *snapshot.Snapshot, cmd SubmitForAwards) *snapshot.Snapshot {
	next, entity := active(snap)
	if entity == nil || len(cmd.SongIDs) == 0 {
		return snap
	}
	cycle := next.Awards[cmd.Show]
	if cycle == nil || !cycle.SubmissionsOpen {
		return snap
	}
	for _, songID := range cmd.SongIDs {
		song := entity.SongByID(songID)
		if song == nil || !song.Released {
			return snap
		}
	}

	if entity.Awards.Submissions == nil {
		entity.Awards.Submissions = make(map[string][]string)
	}
	for _, songID := range cmd.SongIDs {
		if !contains(entity.Awards.Submissions[cmd.Show], songID) {
			entity.Awards.Submissions[cmd.Show] = append(entity.Awards.Submissions[cmd.Show], songID)
		}
	}
	return next
}

func offerIndex(entity *snapshot.Entity, id string) int {
	for i := range entity.Offers {
		if entity.Offers[i].ID == id {
			return i
		}
	}
	return -1
}

func profileByName(profiles []content.StaffProfile, name string) *content.StaffProfile {
	for i := range profiles {
		if profiles[i].Name == name {
			return &profiles[i]
		}
	}
	return nil
}

func venueByName(venues []content.VenueSpec, name string) *content.VenueSpec {
	for i := range venues {
		if venues[i].Name == name {
			return &venues[i]
		}
	}
	return nil
}
