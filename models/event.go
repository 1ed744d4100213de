package models

import "time"

const EventTable = "rsvp_events"

// Event lifecycle statuses. Only active/open accept responses.
const (
	EventStatusDraft     = "draft"
	EventStatusOpen      = "open"
	EventStatusActive    = "active"
	EventStatusClosed    = "closed"
	EventStatusCancelled = "cancelled"
)

type Event struct {
	ID     string    `gorm:"type:uuid;primaryKey" json:"id"`
	Slug   string    `gorm:"size:120;uniqueIndex;not null" json:"slug"`
	Title  string    `gorm:"size:200;not null" json:"title"`
	Date   time.Time `gorm:"index;not null" json:"date"`
	Status string    `gorm:"size:20;not null;default:'draft'" json:"status"`

	AllowGuestRsvp    bool `gorm:"not null;default:false" json:"allowGuestRsvp"`
	PublicRsvpEnabled bool `gorm:"not null;default:false" json:"publicRsvpEnabled"`
	AutoApproveGuests bool `gorm:"not null;default:true" json:"autoApproveGuests"`
	MaxGuestsPerRsvp  *int `json:"maxGuestsPerRsvp,omitempty"` // nil = no per-event cap

	ShowRsvpsToInvitees     bool `gorm:"not null;default:false" json:"showRsvpsToInvitees"`
	ShowRsvpsAfterThreshold bool `gorm:"not null;default:false" json:"showRsvpsAfterThreshold"`
	RsvpVisibilityThreshold int  `gorm:"not null;default:0" json:"rsvpVisibilityThreshold"`

	HostID    string    `gorm:"type:uuid;index;not null" json:"hostId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Event) TableName() string { return EventTable }

// AcceptingResponses reports whether the status allows new RSVPs.
func (e *Event) AcceptingResponses() bool {
	return e.Status == EventStatusActive || e.Status == EventStatusOpen
}
