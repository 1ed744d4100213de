package db

import (
	"fmt"
	"log"

	"rsvplink/config"
	"rsvplink/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func ConnectDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := Migrate(conn); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	log.Println("Database connected")
	return conn, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{}, &models.Event{}, &models.Invitation{}, &models.Response{},
	); err != nil {
		return err
	}

	// One guest response per derived identity per event. This index is the
	// conflict target of the guest upsert; without it two concurrent
	// submissions could each insert a row.
	if err := db.Exec(fmt.Sprintf(`
	  CREATE UNIQUE INDEX IF NOT EXISTS %s_one_guest_per_event
	  ON %s (event_id, guest_key)
	  WHERE is_guest;
	`, models.ResponseTable, models.ResponseTable)).Error; err != nil {
		return err
	}

	// And one response per authenticated user per event.
	if err := db.Exec(fmt.Sprintf(`
	  CREATE UNIQUE INDEX IF NOT EXISTS %s_one_user_per_event
	  ON %s (event_id, user_id)
	  WHERE user_id IS NOT NULL;
	`, models.ResponseTable, models.ResponseTable)).Error; err != nil {
		return err
	}

	return nil
}
