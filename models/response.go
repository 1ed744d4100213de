// models/response.go
package models

import "time"

const ResponseTable = "rsvp_responses"

const (
	ResponseYup   = "yup"
	ResponseNope  = "nope"
	ResponseMaybe = "maybe"
)

// ValidResponseType rejects anything outside the yup/nope/maybe enum.
func ValidResponseType(t string) bool {
	return t == ResponseYup || t == ResponseNope || t == ResponseMaybe
}

// Response is one RSVP row. Exactly one of UserID or the guest fields is
// set. GuestKey is the derived guest identity used for the conflict target
// of the upsert; it is a correlation key, not an account.
type Response struct {
	ID      string  `gorm:"type:uuid;primaryKey" json:"id"`
	EventID string  `gorm:"type:uuid;index;not null" json:"eventId"`
	UserID  *string `gorm:"type:uuid" json:"userId,omitempty"`

	IsGuest    bool   `gorm:"not null;default:false" json:"isGuest"`
	GuestName  string `gorm:"size:200" json:"guestName,omitempty"`
	GuestEmail string `gorm:"size:255" json:"guestEmail,omitempty"`
	GuestPhone string `gorm:"size:45" json:"guestPhone,omitempty"`
	GuestKey   string `gorm:"size:64;index" json:"-"`

	ResponseType string    `gorm:"size:10;not null" json:"responseType"`
	GuestCount   int       `gorm:"not null;default:1" json:"guestCount"`
	RespondedAt  time.Time `gorm:"index;not null" json:"respondedAt"`

	ResponseToken string `gorm:"size:64;uniqueIndex;not null" json:"-"`
	InvitationID  *uint  `gorm:"index" json:"invitationId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Response) TableName() string { return ResponseTable }
