package db

import (
	"context"
	"errors"
	"time"

	"rsvplink/models"

	"gorm.io/gorm"
)

// FindInvitationByToken is an optional lookup: an unknown token is a plain
// absent result, never an error, so a bad invitation link can degrade to
// "no linkage" without blocking the RSVP itself.
func (r *Repo) FindInvitationByToken(ctx context.Context, token string) (*models.Invitation, error) {
	var inv models.Invitation
	err := r.DB.WithContext(ctx).Where("invitation_token = ?", token).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// MarkInvitationOpened flips unopened -> opened. The WHERE opened_at IS
// NULL guard makes the transition first-write-wins: concurrent opens leave
// the earlier timestamp in place, and RowsAffected == 0 just means someone
// else got there first.
func (r *Repo) MarkInvitationOpened(ctx context.Context, invitationID uint) error {
	now := time.Now().UTC()
	return r.DB.WithContext(ctx).Model(&models.Invitation{}).
		Where("id = ? AND opened_at IS NULL", invitationID).
		Updates(map[string]interface{}{
			"opened_at": &now,
			"status":    models.InvitationOpened,
		}).Error
}
