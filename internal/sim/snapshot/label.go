package snapshot

// Contract binds an entity to a record label.
type Contract struct {
	LabelID         string `json:"labelId"`
	SignedOn        Date   `json:"signedOn"`
	DurationWeeks   int    `json:"durationWeeks"`
	AlbumQuota      int    `json:"albumQuota"`
	AlbumsDelivered int    `json:"albumsDelivered"`
}

// Expired reports whether the contract term has run out by now.
// Contracts without a fixed duration never expire on their own.
func (c *Contract) Expired(now Date) bool {
	if c.DurationWeeks <= 0 {
		return false
	}
	return now.WeeksSince(c.SignedOn) >= c.DurationWeeks
}

// SubmissionStatus is the lifecycle state of a label submission.
type SubmissionStatus string

const (
	// SubmissionPending awaits the label's quality review.
	SubmissionPending SubmissionStatus = "pending"
	// SubmissionAwaitingInput was approved; the player picks a date.
	SubmissionAwaitingInput SubmissionStatus = "awaiting_player_input"
	// SubmissionScheduled has a target release date.
	SubmissionScheduled SubmissionStatus = "scheduled"
	// SubmissionRejected is terminal.
	SubmissionRejected SubmissionStatus = "rejected"
)

// Submission is a proposed release pending a label's approval.
type Submission struct {
	ID           string           `json:"id"`
	LabelID      string           `json:"labelId"`
	ReleaseTitle string           `json:"releaseTitle"`
	Type         ReleaseType      `json:"type"`
	SongIDs      []string         `json:"songIds"`
	CoverArt     string           `json:"coverArt,omitempty"`
	Status       SubmissionStatus `json:"status"`
	SubmittedOn  Date             `json:"submittedOn"`
	ScheduledFor *Date            `json:"scheduledFor,omitempty"`
	// PreSingleIDs release one week ahead of the main project.
	PreSingleIDs []string `json:"preSingleIds,omitempty"`
}

// RenewalPrompt is surfaced when the active entity's contract expires and
// the player must decide between renewing and going independent.
type RenewalPrompt struct {
	EntityID  string `json:"entityId"`
	LabelID   string `json:"labelId"`
	OfferedOn Date   `json:"offeredOn"`
}
