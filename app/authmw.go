package app

import (
	"rsvplink/db"
	"rsvplink/session"

	"github.com/gin-gonic/gin"
)

const AppSessionCookie = "app_session"

// OptionalAuth resolves a pre-issued session cookie to a userID when one is
// present. It never rejects: guests without a session are first-class
// callers here, and a stale cookie just means anonymous.
func OptionalAuth(appSess *session.AppSessionStore, repo *db.Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		ck, err := c.Request.Cookie(AppSessionCookie)
		if err != nil || ck.Value == "" {
			c.Next()
			return
		}
		as, err := appSess.Get(c.Request.Context(), ck.Value)
		if err != nil {
			c.Next()
			return
		}
		// Confirm the user still exists before trusting the session.
		u, err := repo.FindUserByID(c.Request.Context(), as.UserID)
		if err != nil {
			c.Next()
			return
		}
		c.Set("userID", u.ID)
		c.Set("displayName", u.DisplayName)
		c.Next()
	}
}

// SessionUserID reads the identity OptionalAuth may have set.
func SessionUserID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
