package action

import (
	"github.com/louisbranch/encore/internal/content"
	"github.com/louisbranch/encore/internal/platform/random"
	"github.com/louisbranch/encore/internal/sim/snapshot"
	"github.com/louisbranch/encore/internal/sim/turn"
)

// Deps are the injectable collaborators shared by all handlers.
type Deps struct {
	Lib   *content.Library
	Rng   random.Source
	NewID func() (string, error)
}

// Apply runs one command against a snapshot and returns the resulting
// snapshot. The input is never mutated; a command whose preconditions do
// not hold returns the input pointer unchanged.
//
// While a renewal prompt is pending only the renewal decision commands
// (and entity selection) are accepted.
func Apply(snap *snapshot.Snapshot, cmd Command, deps Deps) *snapshot.Snapshot {
	if snap.PendingRenewal != nil {
		switch cmd.(type) {
		case AcceptRenewal, DeclineRenewal, SelectEntity:
		default:
			return snap
		}
	}

	switch c := cmd.(type) {
	case AdvanceWeek:
		return turn.Advance(snap, turn.Deps{Lib: deps.Lib, Rng: deps.Rng, NewID: deps.NewID})
	case SelectEntity:
		return applySelectEntity(snap, c)
	case RecordSong:
		return applyRecordSong(snap, c, deps)
	case ReleaseProject:
		return applyReleaseProject(snap, c, deps)
	case ShootVideo:
		return applyShootVideo(snap, c, deps)
	case StartPromotion:
		return applyStartPromotion(snap, c, deps)
	case SignContract:
		return applySignContract(snap, c, deps)
	case EndContract:
		return applyEndContract(snap, deps)
	case AcceptRenewal:
		return applyAcceptRenewal(snap, deps)
	case DeclineRenewal:
		return applyDeclineRenewal(snap, deps)
	case SubmitToLabel:
		return applySubmitToLabel(snap, c, deps)
	case PlanLabelRelease:
		return applyPlanLabelRelease(snap, c)
	case Post:
		return applyPost(snap, c, deps)
	case Follow:
		return applyFollow(snap, c)
	case SendMessage:
		return applySendMessage(snap, c)
	case AppealSuspension:
		return applyAppealSuspension(snap)
	case AcceptOffer:
		return applyAcceptOffer(snap, c, deps)
	case DeclineOffer:
		return applyDeclineOffer(snap, c)
	case HireManager:
		return applyHireStaff(snap, c.Name, snapshot.RoleManager, deps)
	case FireManager:
		return applyFireStaff(snap, snapshot.RoleManager)
	case HireSecurity:
		return applyHireStaff(snap, c.Name, snapshot.RoleSecurity, deps)
	case FireSecurity:
		return applyFireStaff(snap, snapshot.RoleSecurity)
	case StartTour:
		return applyStartTour(snap, c, deps)
	case SubmitForAwards:
		return applySubmitForAwards(snap, c)
	}
	return snap
}

// active clones the snapshot and returns the clone together with its
// active entity. Handlers mutate only the clone.
func active(snap *snapshot.Snapshot) (*snapshot.Snapshot, *snapshot.Entity) {
	next := snap.Clone()
	return next, next.ActiveEntity()
}

func applySelectEntity(snap *snapshot.Snapshot, cmd SelectEntity) *snapshot.Snapshot {
	if _, ok := snap.Entities[cmd.EntityID]; !ok {
		return snap
	}
	next := snap.Clone()
	next.ActiveEntityID = cmd.EntityID
	return next
}
