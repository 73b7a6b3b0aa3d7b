package action

import (
	"fmt"

	"github.com/louisbranch/encore/internal/sim/snapshot"
)

func applySignContract(snap *snapshot.Snapshot, cmd SignContract, deps Deps) *snapshot.Snapshot {
	next, entity := active(snap)
	if entity == nil || entity.Contract != nil {
		return snap
	}
	label := deps.Lib.LabelByID(cmd.LabelID)
	if label == nil {
		return snap
	}

	entity.Contract = &snapshot.Contract{
		LabelID:       label.ID,
		SignedOn:      next.Date,
		DurationWeeks: label.ContractWeeks,
		AlbumQuota:    label.AlbumQuota,
	}
	entity.Money += label.SigningBonus
	entity.QueueEmail(snapshot.Email{
		From:    label.Name,
		Subject: "Welcome to the roster",
		Body:    fmt.Sprintf("The paperwork is in. %d weeks, %d albums, and a $%d signing bonus already wired to your account.", label.ContractWeeks, label.AlbumQuota, label.SigningBonus),
		Week:    next.Date,
	})
	return next
}

func applyEndContract(snap *snapshot.Snapshot, deps Deps) *snapshot.Snapshot {
	next, entity := active(snap)
	if entity == nil || entity.Contract == nil {
		return snap
	}

	labelName := entity.Contract.LabelID
	if label := deps.Lib.LabelByID(entity.Contract.LabelID); label != nil {
		labelName = label.Name
	}
	entity.Contract = nil
	entity.QueueEmail(snapshot.Email{
		From:    labelName,
		Subject: "Release from contract",
		Body:    "Your request to part ways has been processed. We wish you the best as an independent artist.",
		Week:    next.Date,
	})
	return next
}

func applyAcceptRenewal(snap *snapshot.Snapshot, deps Deps) *snapshot.Snapshot {
	if snap.PendingRenewal == nil {
		return snap
	}
	next := snap.Clone()
	prompt := next.PendingRenewal
	entity := next.Entities[prompt.EntityID]
	if entity == nil {
		next.PendingRenewal = nil
		return next
	}

	label := deps.Lib.LabelByID(prompt.LabelID)
	if label == nil {
		entity.Contract = nil
		next.PendingRenewal = nil
		return next
	}

	entity.Contract = &snapshot.Contract{
		LabelID:       prompt.LabelID,
		SignedOn:      next.Date,
		DurationWeeks: label.ContractWeeks,
		AlbumQuota:    label.AlbumQuota,
	}
	next.PendingRenewal = nil
	entity.QueueEmail(snapshot.Email{
		From:    label.Name,
		Subject: "Renewed",
		Body:    fmt.Sprintf("Glad to keep building together. The new term runs %d weeks.", label.ContractWeeks),
		Week:    next.Date,
	})
	return next
}

func applyDeclineRenewal(snap *snapshot.Snapshot, deps Deps) *snapshot.Snapshot {
	if snap.PendingRenewal == nil {
		return snap
	}
	next := snap.Clone()
	prompt := next.PendingRenewal
	next.PendingRenewal = nil

	entity := next.Entities[prompt.EntityID]
	if entity == nil {
		return next
	}
	entity.Contract = nil
	if label := deps.Lib.LabelByID(prompt.LabelID); label != nil {
		entity.QueueEmail(snapshot.Email{
			From:    label.Name,
			Subject: "Parting ways",
			Body:    "Understood. The door stays open; good luck out there.",
			Week:    next.Date,
		})
	}
	return next
}

func applySubmitToLabel(snap *snapshot.Snapshot, cmd SubmitToLabel, deps Deps) *snapshot.Snapshot {
	next, entity := active(snap)
	if entity == nil || entity.Contract == nil || cmd.Title == "" || len(cmd.SongIDs) == 0 {
		return snap
	}
	for _, songID := range cmd.SongIDs {
		song := entity.SongByID(songID)
		if song == nil || song.Released {
			return snap
		}
	}
	// One submission in flight per label at a time.
	for _, submission := range entity.Submissions {
		if submission.LabelID == entity.Contract.LabelID &&
			submission.Status != snapshot.SubmissionRejected {
			return snap
		}
	}
	id, err := deps.NewID()
	if err != nil {
		return snap
	}

	entity.Submissions = append(entity.Submissions, snapshot.Submission{
		ID:           id,
		LabelID:      entity.Contract.LabelID,
		ReleaseTitle: cmd.Title,
		Type:         cmd.Type,
		SongIDs:      cmd.SongIDs,
		Status:       snapshot.SubmissionPending,
		SubmittedOn:  next.Date,
	})
	return next
}

func applyPlanLabelRelease(snap *snapshot.Snapshot, cmd PlanLabelRelease) *snapshot.Snapshot {
	next, entity := active(snap)
	if entity == nil {
		return snap
	}

	var submission *snapshot.Submission
	for i := range entity.Submissions {
		if entity.Submissions[i].ID == cmd.SubmissionID {
			submission = &entity.Submissions[i]
			break
		}
	}
	if submission == nil || submission.Status != snapshot.SubmissionAwaitingInput {
		return snap
	}
	if !next.Date.Before(cmd.ReleaseOn) {
		return snap
	}
	for _, preID := range cmd.PreSingleIDs {
		if !contains(submission.SongIDs, preID) {
			return snap
		}
	}

	scheduled := cmd.ReleaseOn
	submission.Status = snapshot.SubmissionScheduled
	submission.ScheduledFor = &scheduled
	submission.PreSingleIDs = append([]string(nil), cmd.PreSingleIDs...)
	if len(submission.PreSingleIDs) == 0 {
		submission.PreSingleIDs = nil
	}
	return next
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
