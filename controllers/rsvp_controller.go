// controllers/rsvp_controller.go
package controllers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"rsvplink/app"
	"rsvplink/apperr"
	"rsvplink/db"
	"rsvplink/models"
	"rsvplink/rsvp"

	"github.com/gin-gonic/gin"
)

type RsvpController struct{ *Srv }

func NewRsvpController(s *Srv) *RsvpController { return &RsvpController{Srv: s} }

type submitRequest struct {
	GuestName       string `json:"guestName"`
	GuestEmail      string `json:"guestEmail"`
	GuestPhone      string `json:"guestPhone"`
	ResponseType    string `json:"responseType"`
	GuestCount      int    `json:"guestCount"`
	InvitationToken string `json:"invitationToken"`
}

// Submit handles POST /api/events/:slug/rsvp for both anonymous guests and
// callers holding a session. The pipeline is gate -> invitation link
// (best-effort) -> atomic upsert -> fire-and-forget host notification.
func (rc *RsvpController) Submit(c *gin.Context) {
	var in submitRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid request body"})
		return
	}

	// Reject bad enums before any business logic runs.
	if strings.TrimSpace(in.ResponseType) == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "responseType is required"})
		return
	}
	if !models.ValidResponseType(in.ResponseType) {
		c.JSON(http.StatusBadRequest, app.H{"error": fmt.Sprintf("responseType must be one of %s, %s or %s",
			models.ResponseYup, models.ResponseNope, models.ResponseMaybe)})
		return
	}

	userID := app.SessionUserID(c)
	asGuest := userID == ""
	if asGuest && strings.TrimSpace(in.GuestName) == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "guestName is required"})
		return
	}
	if in.GuestCount == 0 {
		in.GuestCount = 1
	}

	ctx := c.Request.Context()
	ev, err := rc.Repo.FindEventBySlug(ctx, c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}
	if err := rsvp.CheckEvent(ev, in.GuestCount, time.Now(), asGuest); err != nil {
		fail(c, err)
		return
	}

	invitationID := rc.linkInvitation(c, ev, in.InvitationToken)

	var (
		resp     *models.Response
		isUpdate bool
	)
	if asGuest {
		resp, isUpdate, err = rc.Repo.UpsertGuestResponse(ctx, db.GuestSubmission{
			EventID:      ev.ID,
			Name:         in.GuestName,
			Email:        in.GuestEmail,
			Phone:        in.GuestPhone,
			ResponseType: in.ResponseType,
			GuestCount:   in.GuestCount,
			InvitationID: invitationID,
		})
	} else {
		name := in.GuestName
		if name == "" {
			if v, ok := c.Get("displayName"); ok {
				name, _ = v.(string)
			}
		}
		resp, isUpdate, err = rc.Repo.UpsertUserResponse(ctx, db.UserSubmission{
			EventID:      ev.ID,
			UserID:       userID,
			GuestName:    name,
			ResponseType: in.ResponseType,
			GuestCount:   in.GuestCount,
			InvitationID: invitationID,
		})
	}
	if err != nil {
		fail(c, apperr.Dependency(err))
		return
	}

	// The row is durable from here on; notification failures stay invisible
	// to the guest.
	rc.Notify.NotifyHost(ev, resp.GuestName, resp.ResponseType, resp.GuestCount)

	c.JSON(http.StatusOK, app.H{
		"id":             resp.ID,
		"response_type":  resp.ResponseType,
		"guest_count":    resp.GuestCount,
		"response_token": resp.ResponseToken,
		"is_update":      isUpdate,
		"event":          app.H{"title": ev.Title, "date": ev.Date},
	})
}

// linkInvitation resolves an optional invitation token to an ID and flips
// the invitation open. A missing, mismatched or even unreadable invitation
// degrades to "no linkage"; nothing here may block the RSVP.
func (rc *RsvpController) linkInvitation(c *gin.Context, ev *models.Event, token string) *uint {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	ctx := c.Request.Context()
	inv, err := rc.Repo.FindInvitationByToken(ctx, token)
	if err != nil {
		log.Printf("[rsvp] invitation lookup failed: event=%s err=%v", ev.ID, err)
		return nil
	}
	if inv == nil || inv.EventID != ev.ID {
		return nil
	}
	if err := rc.Repo.MarkInvitationOpened(ctx, inv.ID); err != nil {
		log.Printf("[rsvp] invitation open failed: invitation=%d err=%v", inv.ID, err)
	}
	return &inv.ID
}

// Lookup handles GET /api/rsvp?responseToken=...&invitationToken=...
// Exactly one of three outcomes: an existing response, invitation recipient
// fields for form pre-fill, or 404.
func (rc *RsvpController) Lookup(c *gin.Context) {
	respToken := c.Query("responseToken")
	invToken := c.Query("invitationToken")
	if respToken == "" && invToken == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "responseToken or invitationToken is required"})
		return
	}

	ctx := c.Request.Context()
	if respToken != "" {
		resp, err := rc.Repo.FindResponseByToken(ctx, respToken)
		if err == nil {
			rc.respondSummary(c, resp)
			return
		}
		if !isNotFound(err) {
			fail(c, apperr.Dependency(err))
			return
		}
	}

	if invToken != "" {
		inv, err := rc.Repo.FindInvitationByToken(ctx, invToken)
		if err != nil {
			fail(c, apperr.Dependency(err))
			return
		}
		if inv != nil {
			// Viewing the invitation counts as opening it; first write wins.
			if err := rc.Repo.MarkInvitationOpened(ctx, inv.ID); err != nil {
				log.Printf("[rsvp] invitation open failed: invitation=%d err=%v", inv.ID, err)
			}

			resp, err := rc.Repo.FindResponseByInvitation(ctx, inv.ID)
			if err == nil {
				rc.respondSummary(c, resp)
				return
			}
			if !isNotFound(err) {
				fail(c, apperr.Dependency(err))
				return
			}

			ev, err := rc.Repo.FindEventByID(ctx, inv.EventID)
			if err != nil {
				fail(c, apperr.Dependency(err))
				return
			}
			c.JSON(http.StatusOK, app.H{
				"invitation": app.H{
					"recipient_name":  inv.RecipientName,
					"recipient_email": inv.RecipientEmail,
					"recipient_phone": inv.RecipientPhone,
				},
				"event": app.H{"title": ev.Title, "date": ev.Date},
			})
			return
		}
	}

	c.JSON(http.StatusNotFound, app.H{"error": "no matching response or invitation"})
}

func (rc *RsvpController) respondSummary(c *gin.Context, resp *models.Response) {
	// A response row without its event is a storage problem, not a 404.
	ev, err := rc.Repo.FindEventByID(c.Request.Context(), resp.EventID)
	if err != nil {
		fail(c, apperr.Dependency(err))
		return
	}
	c.JSON(http.StatusOK, app.H{
		"response_type": resp.ResponseType,
		"guest_name":    resp.GuestName,
		"guest_email":   resp.GuestEmail,
		"guest_count":   resp.GuestCount,
		"responded_at":  resp.RespondedAt,
		"event":         app.H{"title": ev.Title},
	})
}
