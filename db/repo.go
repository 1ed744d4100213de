package db

import (
	"context"
	"time"

	"rsvplink/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repo struct{ DB *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{DB: db} }

// Events (read-only to this service; creation belongs to the host flow)

func (r *Repo) FindEventBySlug(ctx context.Context, slug string) (*models.Event, error) {
	var ev models.Event
	if err := r.DB.WithContext(ctx).Where("slug = ?", slug).First(&ev).Error; err != nil {
		return nil, err
	}
	return &ev, nil
}

func (r *Repo) FindEventByID(ctx context.Context, id string) (*models.Event, error) {
	var ev models.Event
	if err := r.DB.WithContext(ctx).First(&ev, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ev, nil
}

// Users

func (r *Repo) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// EnsureUser returns the user with this username, creating one if needed.
// A single upsert against the username unique index, so concurrent calls
// cannot race into duplicate rows; the bool reports whether a row was
// created (our candidate ID survived only on insert).
func (r *Repo) EnsureUser(ctx context.Context, username string) (*models.User, bool, error) {
	candidate := uuid.NewString()
	u := models.User{ID: candidate, Username: username, DisplayName: username}
	err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"updated_at": time.Now().UTC()}),
		},
		clause.Returning{},
	).Create(&u).Error
	if err != nil {
		return nil, false, err
	}
	return &u, u.ID == candidate, nil
}
