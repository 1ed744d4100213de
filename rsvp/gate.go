// Package rsvp holds the pure decision logic for the guest-response flow:
// whether an event accepts a submission, and who may see the response list.
package rsvp

import (
	"fmt"
	"time"

	"rsvplink/apperr"
	"rsvplink/models"
)

// CheckEvent validates that ev accepts a response right now. Checks run in
// order and the first failure wins; no side effects. The caller has already
// resolved the slug (a missing event is its 404). The guest-enabled flags
// only gate unauthenticated submissions, so asGuest is false for the
// authenticated-user path.
func CheckEvent(ev *models.Event, guestCount int, now time.Time, asGuest bool) error {
	if !ev.AcceptingResponses() {
		return apperr.StateConflict(fmt.Sprintf("event is %s and not accepting responses", ev.Status))
	}
	if asGuest && !ev.AllowGuestRsvp && !ev.PublicRsvpEnabled {
		return apperr.StateConflict("guest responses not enabled for this event")
	}
	// Date-only comparison: an RSVP on the day of the event still counts.
	if dateOnly(ev.Date).Before(dateOnly(now)) {
		return apperr.Validation("cannot RSVP to past events")
	}
	if ev.MaxGuestsPerRsvp != nil && guestCount > *ev.MaxGuestsPerRsvp {
		return apperr.Validation(fmt.Sprintf("guest count exceeds the limit of %d for this event", *ev.MaxGuestsPerRsvp))
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
