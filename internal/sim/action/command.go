// Package action holds the player-facing command surface: small, pure
// transitions applied between turns. Apply dispatches a command against a
// snapshot and returns the next snapshot; commands whose preconditions do
// not hold return the input unchanged.
package action

import "github.com/louisbranch/encore/internal/sim/snapshot"

// Command is the closed set of player actions. Implementations are plain
// payload structs; they carry no behavior of their own.
type Command interface {
	isCommand()
}

// AdvanceWeek runs the weekly world-advancement engine.
type AdvanceWeek struct{}

// SelectEntity switches the controlled roster member.
type SelectEntity struct {
	EntityID string
}

// RecordSong books a studio session for a new track.
type RecordSong struct {
	Title string
	Genre snapshot.Genre
}

// ReleaseProject publishes songs as a self-distributed project.
type ReleaseProject struct {
	Title    string
	Type     snapshot.ReleaseType
	SongIDs  []string
	CoverArt string
}

// ShootVideo produces a music video for a released song.
type ShootVideo struct {
	SongID string
}

// StartPromotion buys a weekly campaign for one song.
type StartPromotion struct {
	SongID string
	Kind   string
	Weeks  int
}

// SignContract signs with a label.
type SignContract struct {
	LabelID string
}

// EndContract walks away from the current label deal.
type EndContract struct{}

// AcceptRenewal re-signs with the expiring label.
type AcceptRenewal struct{}

// DeclineRenewal lets the expiring deal lapse.
type DeclineRenewal struct{}

// SubmitToLabel sends songs to the contracted label for review.
type SubmitToLabel struct {
	Title   string
	Type    snapshot.ReleaseType
	SongIDs []string
}

// PlanLabelRelease schedules an approved submission.
type PlanLabelRelease struct {
	SubmissionID string
	ReleaseOn    snapshot.Date
	PreSingleIDs []string
}

// Post publishes on the entity's own social account.
type Post struct {
	Body string
}

// Follow adds an account to the following list.
type Follow struct {
	Username string
}

// SendMessage appends to a direct-message thread.
type SendMessage struct {
	To   string
	Body string
}

// AppealSuspension files the one allowed outstanding appeal.
type AppealSuspension struct{}

// AcceptOffer takes a pending offer by id.
type AcceptOffer struct {
	OfferID string
}

// DeclineOffer discards a pending offer by id.
type DeclineOffer struct {
	OfferID string
}

// HireManager hires a manager by name from the available profiles.
type HireManager struct {
	Name string
}

// FireManager ends the management arrangement.
type FireManager struct{}

// HireSecurity hires a security team by name.
type HireSecurity struct {
	Name string
}

// FireSecurity ends the security arrangement.
type FireSecurity struct{}

// StartTour books venues by name and begins playing them next turn.
type StartTour struct {
	Name        string
	VenueNames  []string
	TicketPrice int64
}

// SubmitForAwards enters songs into an open award cycle.
type SubmitForAwards struct {
	Show    string
	SongIDs []string
}

func (AdvanceWeek) isCommand()      {}
func (SelectEntity) isCommand()     {}
func (RecordSong) isCommand()       {}
func (ReleaseProject) isCommand()   {}
func (ShootVideo) isCommand()       {}
func (StartPromotion) isCommand()   {}
func (SignContract) isCommand()     {}
func (EndContract) isCommand()      {}
func (AcceptRenewal) isCommand()    {}
func (DeclineRenewal) isCommand()   {}
func (SubmitToLabel) isCommand()    {}
func (PlanLabelRelease) isCommand() {}
func (Post) isCommand()             {}
func (Follow) isCommand()           {}
func (SendMessage) isCommand()      {}
func (AppealSuspension) isCommand() {}
func (AcceptOffer) isCommand()      {}
func (DeclineOffer) isCommand()     {}
func (HireManager) isCommand()      {}
func (FireManager) isCommand()      {}
func (HireSecurity) isCommand()     {}
func (FireSecurity) isCommand()     {}
func (StartTour) isCommand()        {}
func (SubmitForAwards) isCommand()  {}
