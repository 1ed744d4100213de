package rsvp

import (
	"testing"
	"time"

	"rsvplink/apperr"
	"rsvplink/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openEvent() *models.Event {
	return &models.Event{
		ID:             "ev-1",
		Slug:           "summer-party",
		Title:          "Summer Party",
		Status:         models.EventStatusOpen,
		AllowGuestRsvp: true,
		Date:           time.Now().Add(72 * time.Hour),
	}
}

func kindOf(t *testing.T, err error) apperr.Kind {
	t.Helper()
	require.Error(t, err)
	ae, ok := err.(*apperr.Error)
	require.True(t, ok, "expected *apperr.Error, got %T", err)
	return ae.Kind
}

func TestCheckEventAccepts(t *testing.T) {
	assert.NoError(t, CheckEvent(openEvent(), 2, time.Now(), true))

	active := openEvent()
	active.Status = models.EventStatusActive
	assert.NoError(t, CheckEvent(active, 2, time.Now(), true))
}

func TestCheckEventStatus(t *testing.T) {
	for _, status := range []string{
		models.EventStatusDraft, models.EventStatusClosed, models.EventStatusCancelled,
	} {
		ev := openEvent()
		ev.Status = status
		err := CheckEvent(ev, 1, time.Now(), true)
		assert.Equal(t, apperr.KindStateConflict, kindOf(t, err))
		assert.Contains(t, err.Error(), status)
		assert.Contains(t, err.Error(), "not accepting responses")
	}
}

func TestCheckEventGuestFlags(t *testing.T) {
	ev := openEvent()
	ev.AllowGuestRsvp = false
	ev.PublicRsvpEnabled = false
	err := CheckEvent(ev, 1, time.Now(), true)
	assert.Equal(t, apperr.KindStateConflict, kindOf(t, err))

	// Either flag is enough.
	ev.PublicRsvpEnabled = true
	assert.NoError(t, CheckEvent(ev, 1, time.Now(), true))

	// Authenticated members are not gated by the guest flags.
	ev.PublicRsvpEnabled = false
	assert.NoError(t, CheckEvent(ev, 1, time.Now(), false))
}

func TestCheckEventDate(t *testing.T) {
	now := time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC)

	ev := openEvent()
	ev.Date = time.Date(2026, 8, 31, 23, 59, 0, 0, time.UTC)
	err := CheckEvent(ev, 1, now, true)
	assert.Equal(t, apperr.KindValidation, kindOf(t, err))
	assert.Contains(t, err.Error(), "past events")

	// Same calendar day still accepts, even earlier in the day.
	ev.Date = time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	assert.NoError(t, CheckEvent(ev, 1, now, true))
}

func TestCheckEventGuestCap(t *testing.T) {
	cap := 3
	ev := openEvent()
	ev.MaxGuestsPerRsvp = &cap

	err := CheckEvent(ev, 5, time.Now(), true)
	assert.Equal(t, apperr.KindValidation, kindOf(t, err))
	assert.Contains(t, err.Error(), "3")

	assert.NoError(t, CheckEvent(ev, 3, time.Now(), true))

	// No cap set means the gate does not bound the count.
	ev.MaxGuestsPerRsvp = nil
	assert.NoError(t, CheckEvent(ev, 50, time.Now(), true))
}

func TestCheckEventOrderFirstFailureWins(t *testing.T) {
	// A closed event with every other problem still reports the status.
	cap := 1
	ev := openEvent()
	ev.Status = models.EventStatusClosed
	ev.AllowGuestRsvp = false
	ev.Date = time.Now().Add(-48 * time.Hour)
	ev.MaxGuestsPerRsvp = &cap

	err := CheckEvent(ev, 9, time.Now(), true)
	assert.Equal(t, apperr.KindStateConflict, kindOf(t, err))
	assert.Contains(t, err.Error(), models.EventStatusClosed)
}
