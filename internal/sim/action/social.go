package action

import (
	"github.com/louisbranch/encore/internal/sim/snapshot"
)

func applyPost(snap *snapshot.Snapshot, cmd Post, deps Deps) *snapshot.Snapshot {
	next, entity := active(snap)
	if entity == nil || cmd.Body == "" || entity.Social.Suspended {
		return snap
	}
	id, err := deps.NewID()
	if err != nil {
		return snap
	}

	entity.Social.AddPost(snapshot.Post{
		ID:     id,
		Author: entity.Social.Username,
		Body:   cmd.Body,
		Week:   next.Date,
	})
	return next
}

func applyFollow(snap *snapshot.Snapshot, cmd Follow) *snapshot.Snapshot {
	next, entity := active(snap)
	if entity == nil || cmd.Username == "" || cmd.Username == entity.Social.Username {
		return snap
	}
	for _, followed := range entity.Social.Following {
		if followed == cmd.Username {
			return snap
		}
	}

	entity.Social.Following = append(entity.Social.Following, cmd.Username)
	return next
}

func applySendMessage(snap *snapshot.Snapshot, cmd SendMessage) *snapshot.Snapshot {
	next, entity := active(snap)
	if entity == nil || cmd.To == "" || cmd.Body == "" || entity.Social.Suspended {
		return snap
	}

	if entity.Social.Threads == nil {
		entity.Social.Threads = make(map[string][]snapshot.Message)
	}
	entity.Social.Threads[cmd.To] = append(entity.Social.Threads[cmd.To], snapshot.Message{
		From: entity.Social.Username,
		Body: cmd.Body,
		Week: next.Date,
	})
	return next
}

func applyAppealSuspension(snap *snapshot.Snapshot) *snapshot.Snapshot {
	next, entity := active(snap)
	if entity == nil || !entity.Social.Suspended || entity.Social.Appeal != nil {
		return snap
	}

	entity.Social.Appeal = &snapshot.Appeal{
		FiledOn: next.Date,
		Cause:   entity.Social.SuspensionCause,
	}
	return next
}
