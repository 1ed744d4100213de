// controllers/event_controller.go
package controllers

import (
	"net/http"

	"rsvplink/app"
	"rsvplink/apperr"
	"rsvplink/rsvp"

	"github.com/gin-gonic/gin"
)

type EventController struct{ *Srv }

func NewEventController(s *Srv) *EventController { return &EventController{Srv: s} }

// GetEvent returns the public event context the RSVP form needs.
func (ec *EventController) GetEvent(c *gin.Context) {
	ev, err := ec.Repo.FindEventBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{
		"slug":                ev.Slug,
		"title":               ev.Title,
		"date":                ev.Date,
		"status":              ev.Status,
		"allow_guest_rsvp":    ev.AllowGuestRsvp || ev.PublicRsvpEnabled,
		"max_guests_per_rsvp": ev.MaxGuestsPerRsvp,
	})
}

// ListResponses returns the response list when the visibility policy
// allows it. The decision is computed fresh on every request against the
// live yup count.
func (ec *EventController) ListResponses(c *gin.Context) {
	ctx := c.Request.Context()
	ev, err := ec.Repo.FindEventBySlug(ctx, c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}

	yups, err := ec.Repo.CountYups(ctx, ev.ID)
	if err != nil {
		fail(c, apperr.Dependency(err))
		return
	}

	viewer := rsvp.Viewer{UserID: app.SessionUserID(c)}
	decision := rsvp.ResponseVisibility(ev, viewer, int(yups))
	if !decision.Visible {
		c.JSON(http.StatusForbidden, app.H{"error": decision.Reason})
		return
	}

	rs, err := ec.Repo.ListResponses(ctx, ev.ID)
	if err != nil {
		fail(c, apperr.Dependency(err))
		return
	}

	items := make([]app.H, 0, len(rs))
	for _, r := range rs {
		items = append(items, app.H{
			"guest_name":    r.GuestName,
			"response_type": r.ResponseType,
			"guest_count":   r.GuestCount,
			"responded_at":  r.RespondedAt,
		})
	}
	c.JSON(http.StatusOK, app.H{
		"items":     items,
		"yup_count": yups,
	})
}
