// db/repo_response.go
package db

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"rsvplink/guestid"
	"rsvplink/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Global guest-count clamp, applied before any per-event cap.
const (
	MinGuestCount = 1
	MaxGuestCount = 10
)

func ClampGuestCount(n int) int {
	if n < MinGuestCount {
		return MinGuestCount
	}
	if n > MaxGuestCount {
		return MaxGuestCount
	}
	return n
}

// NewResponseToken returns an opaque token in the same shape as invitation
// tokens: 16 random bytes, hex.
func NewResponseToken() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

type GuestSubmission struct {
	EventID      string
	Name         string
	Email        string
	Phone        string
	ResponseType string
	GuestCount   int
	InvitationID *uint
}

// UpsertGuestResponse is the idempotent create-or-update of a guest RSVP.
// It is a single INSERT ... ON CONFLICT statement against the partial
// unique index on (event_id, guest_key): concurrent submissions for the
// same identity can never produce two rows, and the conflict branch never
// touches id or response_token. The bool result reports update vs create.
func (r *Repo) UpsertGuestResponse(ctx context.Context, in GuestSubmission) (*models.Response, bool, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	phone := strings.TrimSpace(in.Phone)
	key := guestid.Derive(guestid.Identifier(email, phone, name, in.EventID))

	now := time.Now().UTC()
	candidate := NewResponseToken()
	resp := models.Response{
		ID:            uuid.NewString(),
		EventID:       in.EventID,
		IsGuest:       true,
		GuestName:     name,
		GuestEmail:    email,
		GuestPhone:    phone,
		GuestKey:      key,
		ResponseType:  in.ResponseType,
		GuestCount:    ClampGuestCount(in.GuestCount),
		RespondedAt:   now,
		ResponseToken: candidate,
		InvitationID:  in.InvitationID,
	}

	err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:     []clause.Column{{Name: "event_id"}, {Name: "guest_key"}},
			TargetWhere: clause.Where{Exprs: []clause.Expression{clause.Expr{SQL: "is_guest"}}},
			DoUpdates:   responseConflictSet(&resp, now),
		},
		clause.Returning{},
	).Create(&resp).Error
	if err != nil {
		return nil, false, err
	}

	// On conflict the stored token survives, so a mismatch with our
	// candidate means we updated an existing row.
	return &resp, resp.ResponseToken != candidate, nil
}

type UserSubmission struct {
	EventID      string
	UserID       string
	GuestName    string // display name recorded on the row
	ResponseType string
	GuestCount   int
	InvitationID *uint
}

// UpsertUserResponse is the authenticated-user path: same contract as the
// guest upsert, keyed by (event_id, user_id) instead of the derived guest
// identity.
func (r *Repo) UpsertUserResponse(ctx context.Context, in UserSubmission) (*models.Response, bool, error) {
	now := time.Now().UTC()
	candidate := NewResponseToken()
	resp := models.Response{
		ID:            uuid.NewString(),
		EventID:       in.EventID,
		UserID:        &in.UserID,
		GuestName:     strings.TrimSpace(in.GuestName),
		ResponseType:  in.ResponseType,
		GuestCount:    ClampGuestCount(in.GuestCount),
		RespondedAt:   now,
		ResponseToken: candidate,
		InvitationID:  in.InvitationID,
	}

	err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:     []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
			TargetWhere: clause.Where{Exprs: []clause.Expression{clause.Expr{SQL: "user_id IS NOT NULL"}}},
			DoUpdates:   responseConflictSet(&resp, now),
		},
		clause.Returning{},
	).Create(&resp).Error
	if err != nil {
		return nil, false, err
	}
	return &resp, resp.ResponseToken != candidate, nil
}

// responseConflictSet is the DO UPDATE branch shared by both upserts.
// A resubmission without an invitation token keeps an earlier linkage.
func responseConflictSet(resp *models.Response, now time.Time) clause.Set {
	return clause.Assignments(map[string]interface{}{
		"response_type": resp.ResponseType,
		"guest_count":   resp.GuestCount,
		"guest_name":    resp.GuestName,
		"guest_email":   resp.GuestEmail,
		"guest_phone":   resp.GuestPhone,
		"responded_at":  now,
		"updated_at":    now,
		"invitation_id": gorm.Expr(
			"COALESCE(excluded.invitation_id, " + models.ResponseTable + ".invitation_id)",
		),
	})
}

// Read paths

func (r *Repo) FindResponseByToken(ctx context.Context, token string) (*models.Response, error) {
	var resp models.Response
	if err := r.DB.WithContext(ctx).Where("response_token = ?", token).First(&resp).Error; err != nil {
		return nil, err
	}
	return &resp, nil
}

func (r *Repo) FindResponseByInvitation(ctx context.Context, invitationID uint) (*models.Response, error) {
	var resp models.Response
	if err := r.DB.WithContext(ctx).Where("invitation_id = ?", invitationID).First(&resp).Error; err != nil {
		return nil, err
	}
	return &resp, nil
}

func (r *Repo) ListResponses(ctx context.Context, eventID string) ([]models.Response, error) {
	var rs []models.Response
	err := r.DB.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("responded_at DESC").
		Find(&rs).Error
	return rs, err
}

// CountYups is the live count behind the visibility threshold; always read
// fresh, never cached.
func (r *Repo) CountYups(ctx context.Context, eventID string) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Response{}).
		Where("event_id = ? AND response_type = ?", eventID, models.ResponseYup).
		Count(&n).Error
	return n, err
}
