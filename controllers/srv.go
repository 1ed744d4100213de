// controllers/srv.go
package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"rsvplink/app"
	"rsvplink/apperr"
	"rsvplink/config"
	"rsvplink/db"
	"rsvplink/notify"
	"rsvplink/session"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Srv struct {
	Repo    *db.Repo
	AppSess *session.AppSessionStore
	Notify  *notify.Dispatcher
	Cfg     config.Config
}

func GetSrv(a *app.App) *Srv {
	repo := db.NewRepo(a.DB)
	mailer := notify.NewMailer(a.Config.SMTP, a.Config.AppName)
	return &Srv{
		Repo:    repo,
		AppSess: a.AppSessions(),
		Notify:  notify.NewDispatcher(repo, mailer, 5*time.Second),
		Cfg:     a.Config,
	}
}

func isNotFound(err error) bool { return errors.Is(err, gorm.ErrRecordNotFound) }

// fail maps an error to its HTTP response. Internal failures get a generic
// message and a server-side log line; the taxonomy errors keep theirs.
func fail(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, app.H{"error": "not found"})
		return
	}
	code, msg := apperr.Status(err)
	if code == http.StatusInternalServerError {
		log.Printf("[http] internal error: %v", err)
	}
	c.JSON(code, app.H{"error": msg})
}
