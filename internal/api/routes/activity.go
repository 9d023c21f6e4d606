package routes

import (
	"ActivityFeed/internal/api/handlers/activity"
	"ActivityFeed/internal/core/activities"

	"github.com/go-chi/chi/v5"
)

// RegisterActivityRoutes registers activity publishing endpoints
func RegisterActivityRoutes(r chi.Router, activityService activities.Service) {
	publishHandler := activity.NewPublishHandler(activityService)
	getHandler := activity.NewGetHandler(activityService)
	deleteHandler := activity.NewDeleteHandler(activityService)

	// POST /activities
	// Stores the activity and fans it out to the actor and audience feeds
	r.Post("/activities", publishHandler.HandlePublish)
	r.Get("/activities/{activityID}", getHandler.HandleGet)
	r.Delete("/activities/{activityID}", deleteHandler.HandleDelete)
}
