package routes

import (
	"rsvplink/app"
	"rsvplink/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	s := controllers.GetSrv(a)
	rsvpCtl := controllers.NewRsvpController(s)
	eventCtl := controllers.NewEventController(s)

	// Auth is optional everywhere: guests are first-class callers, a
	// session just upgrades the requester identity (host checks, user path).
	optAuth := app.OptionalAuth(s.AppSess, s.Repo)

	api := r.Group("/api", optAuth)
	{
		api.GET("/events/:slug", eventCtl.GetEvent)
		api.POST("/events/:slug/rsvp", rsvpCtl.Submit)
		api.GET("/events/:slug/responses", eventCtl.ListResponses)

		// Token-addressed lookup for "edit my response" / invitation links.
		api.GET("/rsvp", rsvpCtl.Lookup)
	}
}
