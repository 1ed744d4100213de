package rsvp

import (
	"fmt"

	"rsvplink/models"
)

// Requester identity for the visibility decision.
type Viewer struct {
	UserID string // empty for anonymous callers
}

func (v Viewer) IsHostOf(ev *models.Event) bool {
	return v.UserID != "" && v.UserID == ev.HostID
}

type VisibilityDecision struct {
	Visible bool
	Reason  string // caller-facing, set when not visible
}

// ResponseVisibility decides whether viewer may see ev's response list.
// Pure function of the event flags and the live yup count; callers must
// re-evaluate on every request rather than cache the decision, since the
// count moves as RSVPs arrive.
func ResponseVisibility(ev *models.Event, viewer Viewer, yupCount int) VisibilityDecision {
	if viewer.IsHostOf(ev) {
		return VisibilityDecision{Visible: true}
	}
	if ev.ShowRsvpsToInvitees {
		return VisibilityDecision{Visible: true}
	}
	if ev.ShowRsvpsAfterThreshold {
		if yupCount >= ev.RsvpVisibilityThreshold {
			return VisibilityDecision{Visible: true}
		}
		remaining := ev.RsvpVisibilityThreshold - yupCount
		return VisibilityDecision{
			Reason: fmt.Sprintf("responses unlock after %d more yes RSVPs", remaining),
		}
	}
	return VisibilityDecision{Reason: "the host has not made responses visible"}
}
