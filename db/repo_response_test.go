package db

import (
	"context"
	"fmt"
	"testing"
	"time"

	"rsvplink/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestRepo(t *testing.T) *Repo {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(conn))
	return NewRepo(conn)
}

func seedEvent(t *testing.T, r *Repo) *models.Event {
	t.Helper()
	ev := &models.Event{
		ID:             uuid.NewString(),
		Slug:           "launch-" + uuid.NewString()[:8],
		Title:          "Launch Party",
		Date:           time.Now().Add(96 * time.Hour),
		Status:         models.EventStatusOpen,
		AllowGuestRsvp: true,
		HostID:         uuid.NewString(),
	}
	require.NoError(t, r.DB.Create(ev).Error)
	return ev
}

func seedInvitation(t *testing.T, r *Repo, eventID, token string) *models.Invitation {
	t.Helper()
	inv := &models.Invitation{
		EventID:         eventID,
		RecipientName:   "Pat Invitee",
		RecipientEmail:  "pat@example.com",
		InvitationToken: token,
		Status:          models.InvitationUnopened,
	}
	require.NoError(t, r.DB.Create(inv).Error)
	return inv
}

func TestUpsertGuestResponseIdempotent(t *testing.T) {
	r := setupTestRepo(t)
	ev := seedEvent(t, r)
	ctx := context.Background()

	first, isUpdate, err := r.UpsertGuestResponse(ctx, GuestSubmission{
		EventID: ev.ID, Name: "Alice", Email: "a@x.com",
		ResponseType: models.ResponseYup, GuestCount: 2,
	})
	require.NoError(t, err)
	assert.False(t, isUpdate)
	assert.NotEmpty(t, first.ResponseToken)
	assert.True(t, first.IsGuest)

	second, isUpdate, err := r.UpsertGuestResponse(ctx, GuestSubmission{
		EventID: ev.ID, Name: "Alice", Email: "a@x.com",
		ResponseType: models.ResponseMaybe, GuestCount: 1,
	})
	require.NoError(t, err)
	assert.True(t, isUpdate)

	// Same row, same token, second call's values win.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.ResponseToken, second.ResponseToken)
	assert.Equal(t, models.ResponseMaybe, second.ResponseType)
	assert.Equal(t, 1, second.GuestCount)

	var n int64
	require.NoError(t, r.DB.Model(&models.Response{}).Where("event_id = ?", ev.ID).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestUpsertGuestResponseCaseInsensitiveIdentity(t *testing.T) {
	r := setupTestRepo(t)
	ev := seedEvent(t, r)
	ctx := context.Background()

	a, _, err := r.UpsertGuestResponse(ctx, GuestSubmission{
		EventID: ev.ID, Name: "Jane", Email: "jane@example.com",
		ResponseType: models.ResponseYup, GuestCount: 1,
	})
	require.NoError(t, err)

	b, isUpdate, err := r.UpsertGuestResponse(ctx, GuestSubmission{
		EventID: ev.ID, Name: "Jane", Email: "  Jane@Example.com  ",
		ResponseType: models.ResponseNope, GuestCount: 1,
	})
	require.NoError(t, err)
	assert.True(t, isUpdate)
	assert.Equal(t, a.ID, b.ID)
}

func TestUpsertGuestResponseDistinctIdentities(t *testing.T) {
	r := setupTestRepo(t)
	ev := seedEvent(t, r)
	ctx := context.Background()

	_, _, err := r.UpsertGuestResponse(ctx, GuestSubmission{
		EventID: ev.ID, Name: "Alice", Email: "a@x.com",
		ResponseType: models.ResponseYup, GuestCount: 1,
	})
	require.NoError(t, err)

	_, isUpdate, err := r.UpsertGuestResponse(ctx, GuestSubmission{
		EventID: ev.ID, Name: "Bob", Email: "b@x.com",
		ResponseType: models.ResponseYup, GuestCount: 1,
	})
	require.NoError(t, err)
	assert.False(t, isUpdate)

	// Name-only guests are keyed per event, so the same name on another
	// event is a fresh row.
	other := seedEvent(t, r)
	_, isUpdate, err = r.UpsertGuestResponse(ctx, GuestSubmission{
		EventID: other.ID, Name: "Alice",
		ResponseType: models.ResponseYup, GuestCount: 1,
	})
	require.NoError(t, err)
	assert.False(t, isUpdate)
}

func TestUpsertGuestResponseClampsCount(t *testing.T) {
	r := setupTestRepo(t)
	ev := seedEvent(t, r)
	ctx := context.Background()

	resp, _, err := r.UpsertGuestResponse(ctx, GuestSubmission{
		EventID: ev.ID, Name: "Crowd", Email: "crowd@x.com",
		ResponseType: models.ResponseYup, GuestCount: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, MaxGuestCount, resp.GuestCount)

	resp, _, err = r.UpsertGuestResponse(ctx, GuestSubmission{
		EventID: ev.ID, Name: "Zero", Email: "zero@x.com",
		ResponseType: models.ResponseYup, GuestCount: 0,
	})
	require.NoError(t, err)
	assert.Equal(t, MinGuestCount, resp.GuestCount)
}

func TestUpsertKeepsInvitationLinkOnResubmit(t *testing.T) {
	r := setupTestRepo(t)
	ev := seedEvent(t, r)
	inv := seedInvitation(t, r, ev.ID, "tok-keep")
	ctx := context.Background()

	_, _, err := r.UpsertGuestResponse(ctx, GuestSubmission{
		EventID: ev.ID, Name: "Pat", Email: "pat@example.com",
		ResponseType: models.ResponseYup, GuestCount: 1, InvitationID: &inv.ID,
	})
	require.NoError(t, err)

	// Resubmission without a token must not clear the earlier linkage.
	resp, _, err := r.UpsertGuestResponse(ctx, GuestSubmission{
		EventID: ev.ID, Name: "Pat", Email: "pat@example.com",
		ResponseType: models.ResponseNope, GuestCount: 1,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.InvitationID)
	assert.Equal(t, inv.ID, *resp.InvitationID)
}

func TestUpsertUserResponseIdempotent(t *testing.T) {
	r := setupTestRepo(t)
	ev := seedEvent(t, r)
	ctx := context.Background()
	userID := uuid.NewString()

	first, isUpdate, err := r.UpsertUserResponse(ctx, UserSubmission{
		EventID: ev.ID, UserID: userID, GuestName: "Morgan",
		ResponseType: models.ResponseYup, GuestCount: 2,
	})
	require.NoError(t, err)
	assert.False(t, isUpdate)

	second, isUpdate, err := r.UpsertUserResponse(ctx, UserSubmission{
		EventID: ev.ID, UserID: userID, GuestName: "Morgan",
		ResponseType: models.ResponseMaybe, GuestCount: 1,
	})
	require.NoError(t, err)
	assert.True(t, isUpdate)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.ResponseToken, second.ResponseToken)
	assert.Equal(t, models.ResponseMaybe, second.ResponseType)
}

func TestFindResponseByToken(t *testing.T) {
	r := setupTestRepo(t)
	ev := seedEvent(t, r)
	ctx := context.Background()

	created, _, err := r.UpsertGuestResponse(ctx, GuestSubmission{
		EventID: ev.ID, Name: "Alice", Email: "a@x.com",
		ResponseType: models.ResponseYup, GuestCount: 2,
	})
	require.NoError(t, err)

	found, err := r.FindResponseByToken(ctx, created.ResponseToken)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = r.FindResponseByToken(ctx, "no-such-token")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCountYups(t *testing.T) {
	r := setupTestRepo(t)
	ev := seedEvent(t, r)
	ctx := context.Background()

	for i, rt := range []string{models.ResponseYup, models.ResponseYup, models.ResponseNope, models.ResponseMaybe} {
		_, _, err := r.UpsertGuestResponse(ctx, GuestSubmission{
			EventID: ev.ID, Name: fmt.Sprintf("Guest %d", i),
			Email:        fmt.Sprintf("g%d@x.com", i),
			ResponseType: rt, GuestCount: 3,
		})
		require.NoError(t, err)
	}

	n, err := r.CountYups(ctx, ev.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}
