// app/bootstrap.go
package app

import (
	"context"
	"log"
	"strings"

	"rsvplink/config"
	"rsvplink/db"
)

// BootstrapFirstHost seeds a host account on first start so that a fresh
// environment has someone to own events and receive notifications. No-op
// when BOOTSTRAP_HOST_EMAIL is unset or the user already exists.
func BootstrapFirstHost(ctx context.Context, cfg config.Config, repo *db.Repo) {
	email := strings.ToLower(strings.TrimSpace(cfg.BootstrapHostEmail))
	if email == "" {
		return
	}
	u, created, err := repo.EnsureUser(ctx, email)
	if err != nil {
		log.Printf("bootstrap host failed: %v", err)
		return
	}
	if created {
		log.Printf("[BOOTSTRAP] created first host %s (id=%s)", email, u.ID)
	}
}
