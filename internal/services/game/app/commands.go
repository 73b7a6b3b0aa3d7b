package server

import (
	"encoding/json"
	"fmt"

	"github.com/louisbranch/encore/internal/sim/action"
	"github.com/louisbranch/encore/internal/sim/snapshot"
)

// Inbound wire envelope.
type clientMessage struct {
	Type    string          `json:"type"`
	Command string          `json:"command,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Outbound wire envelope.
type serverMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
	Error   string `json:"error,omitempty"`
}

// decodeCommand maps a wire command name and payload onto the action
// command surface.
func decodeCommand(name string, payload json.RawMessage) (action.Command, error) {
	decode := func(target any) error {
		if len(payload) == 0 {
			return nil
		}
		return json.Unmarshal(payload, target)
	}

	switch name {
	case "advance_week":
		return action.AdvanceWeek{}, nil
	case "select_entity":
		var cmd struct {
			EntityID string `json:"entityId"`
		}
		if err := decode(&cmd); err != nil {
			return nil, err
		}
		return action.SelectEntity{EntityID: cmd.EntityID}, nil
	case "record_song":
		var cmd struct {
			Title string `json:"title"`
			Genre string `json:"genre"`
		}
		if err := decode(&cmd); err != nil {
			return nil, err
		}
		return action.RecordSong{Title: cmd.Title, Genre: snapshot.Genre(cmd.Genre)}, nil
	case "release_project":
		var cmd struct {
			Title    string   `json:"title"`
			Type     string   `json:"type"`
			SongIDs  []string `json:"songIds"`
			CoverArt string   `json:"coverArt"`
		}
		if err := decode(&cmd); err != nil {
			return nil, err
		}
		return action.ReleaseProject{
			Title:    cmd.Title,
			Type:     snapshot.ReleaseType(cmd.Type),
			SongIDs:  cmd.SongIDs,
			CoverArt: cmd.CoverArt,
		}, nil
	case "shoot_video":
		var cmd struct {
			SongID string `json:"songId"`
		}
		if err := decode(&cmd); err != nil {
			return nil, err
		}
		return action.ShootVideo{SongID: cmd.SongID}, nil
	case "start_promotion":
		var cmd struct {
			SongID string `json:"songId"`
			Kind   string `json:"kind"`
			Weeks  int    `json:"weeks"`
		}
		if err := decode(&cmd); err != nil {
			return nil, err
		}
		return action.StartPromotion{SongID: cmd.SongID, Kind: cmd.Kind, Weeks: cmd.Weeks}, nil
	case "sign_contract":
		var cmd struct {
			LabelID string `json:"labelId"`
		}
		if err := decode(&cmd); err != nil {
			return nil, err
		}
		return action.SignContract{LabelID: cmd.LabelID}, nil
	case "end_contract":
		return action.EndContract{}, nil
	case "accept_renewal":
		return action.AcceptRenewal{}, nil
	case "decline_renewal":
		return action.DeclineRenewal{}, nil
	case "submit_to_label":
		var cmd struct {
			Title   string   `json:"title"`
			Type    string   `json:"type"`
			SongIDs []string `json:"songIds"`
		}
		if err := decode(&cmd); err != nil {
			return nil, err
		}
		return action.SubmitToLabel{Title: cmd.Title, Type: snapshot.ReleaseType(cmd.Type), SongIDs: cmd.SongIDs}, nil
	case "plan_label_release":
		var cmd struct {
			SubmissionID string        `json:"submissionId"`
			ReleaseOn    snapshot.Date `json:"releaseOn"`
			PreSingleIDs []string      `json:"preSingleIds"`
		}
		if err := decode(&cmd); err != nil {
			return nil, err
		}
		return action.PlanLabelRelease{
			SubmissionID: cmd.SubmissionID,
			ReleaseOn:    cmd.ReleaseOn,
			PreSingleIDs: cmd.PreSingleIDs,
		}, nil
	case "post":
		var cmd struct {
			Body string `json:"body"`
		}
		if err := decode(&cmd); err != nil {
			return nil, err
		}
		return action.Post{Body: cmd.Body}, nil
	case "follow":
		var cmd struct {
			Username string `json:"username"`
		}
		if err := decode(&cmd); err != nil {
			return nil, err
		}
		return action.Follow{Username: cmd.Username}, nil
	case "send_message":
		var cmd struct {
			To   string `json:"to"`
			Body string `json:"body"`
		}
		if err := decode(&cmd); err != nil {
			return nil, err
		}
		return action.SendMessage{To: cmd.To, Body: cmd.Body}, nil
	case "appeal_suspension":
		return action.AppealSuspension{}, nil
	case "accept_offer":
		var cmd struct {
			OfferID string `json:"offerId"`
		}
		if err := decode(&cmd); err != nil {
			return nil, err
		}
		return action.AcceptOffer{OfferID: cmd.OfferID}, nil
	case "decline_offer":
		var cmd struct {
			OfferID string `json:"offerId"`
		}
		if err := decode(&cmd); err != nil {
			return nil, err
		}
		return action.DeclineOffer{OfferID: cmd.OfferID}, nil
	case "hire_manager":
		var cmd struct {
			Name string `json:"name"`
		}
		if err := decode(&cmd); err != nil {
			return nil, err
		}
		return action.HireManager{Name: cmd.Name}, nil
	case "fire_manager":
		return action.FireManager{}, nil
	case "hire_security":
		var cmd struct {
			Name string `json:"name"`
		}
		if err := decode(&cmd); err != nil {
			return nil, err
		}
		return action.HireSecurity{Name: cmd.Name}, nil
	case "fire_security":
		return action.FireSecurity{}, nil
	case "start_tour":
		var cmd struct {
			Name        string   `json:"name"`
			VenueNames  []string `json:"venueNames"`
			TicketPrice int64    `json:"ticketPrice"`
		}
		if err := decode(&cmd); err != nil {
			return nil, err
		}
		return action.StartTour{Name: cmd.Name, VenueNames: cmd.VenueNames, TicketPrice: cmd.TicketPrice}, nil
	case "submit_for_awards":
		var cmd struct {
			Show    string   `json:"show"`
			SongIDs []string `json:"songIds"`
		}
		if err := decode(&cmd); err != nil {
			return nil, err
		}
		return action.SubmitForAwards{Show: cmd.Show, SongIDs: cmd.SongIDs}, nil
	}
	return nil, fmt.Errorf("unknown command %q", name)
}
