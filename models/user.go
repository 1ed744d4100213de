package models

import "time"

// User is the minimal host/member identity this service needs: a contact
// point for notifications and an ID for sessions. Login/credential flows
// live elsewhere.
type User struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	Username    string `gorm:"uniqueIndex;size:255;not null" json:"username"` // email
	DisplayName string `gorm:"size:255;not null" json:"displayName"`
	Phone       string `gorm:"size:45" json:"phone,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "rsvp_users"
}
