package models

import "time"

const InvitationTable = "rsvp_invitations"

const (
	InvitationUnopened = "unopened"
	InvitationOpened   = "opened"
)

// Invitation rows are pre-issued by the host flow; this core only reads
// them and flips unopened -> opened (first write wins on OpenedAt).
type Invitation struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	EventID string `gorm:"type:uuid;index;not null" json:"eventId"`

	RecipientName  string `gorm:"size:200;not null" json:"recipientName"`
	RecipientEmail string `gorm:"size:255" json:"recipientEmail,omitempty"`
	RecipientPhone string `gorm:"size:45" json:"recipientPhone,omitempty"`

	InvitationToken string     `gorm:"size:64;uniqueIndex;not null" json:"-"`
	Status          string     `gorm:"size:10;not null;default:'unopened'" json:"status"`
	OpenedAt        *time.Time `json:"openedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Invitation) TableName() string { return InvitationTable }
