package routes

import (
	"ActivityFeed/internal/api/handlers/feed"
	"ActivityFeed/internal/core/activityfeed"

	"github.com/go-chi/chi/v5"
)

// RegisterFeedRoutes registers the activity feed endpoints
func RegisterFeedRoutes(r chi.Router, feedService activityfeed.Service) {
	// Create handlers
	getFeedHandler := feed.NewGetFeedHandler(feedService)
	writeFeedHandler := feed.NewWriteFeedHandler(feedService)
	removeHandler := feed.NewRemoveHandler(feedService)
	maintenanceHandler := feed.NewMaintenanceHandler(feedService)

	r.Route("/feeds", func(r chi.Router) {
		// POST /feeds/aggregate
		// Fans one item out to many aggregate feeds
		r.Post("/aggregate", writeFeedHandler.HandleAggregateItem)

		r.Route("/{userID}", func(r chi.Router) {
			r.Get("/", getFeedHandler.HandleGetFeed)
			r.Delete("/", removeHandler.HandleRemoveFeeds)
			r.Get("/all", getFeedHandler.HandleGetFullFeed)
			r.Get("/between", getFeedHandler.HandleGetBetween)
			r.Get("/stats", getFeedHandler.HandleGetStats)
			r.Get("/ttl", getFeedHandler.HandleGetTTL)
			r.Post("/trim", maintenanceHandler.HandleTrim)
			r.Post("/expire", maintenanceHandler.HandleExpire)

			r.Post("/items/remove", removeHandler.HandleRemoveItems)
			r.Get("/items/{itemID}", getFeedHandler.HandleCheckItem)
			r.Put("/items/{itemID}", writeFeedHandler.HandleUpdateItem)
			r.Delete("/items/{itemID}", removeHandler.HandleRemoveItem)
		})
	})
}
