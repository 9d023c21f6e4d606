package activity

import (
	"encoding/json"
	"log"
	"net/http"

	"ActivityFeed/internal/core/activities"
)

// PublishHandler handles activity publishing
type PublishHandler struct {
	service activities.Service
}

// NewPublishHandler creates a new publish handler
func NewPublishHandler(service activities.Service) *PublishHandler {
	return &PublishHandler{
		service: service,
	}
}

// HandlePublish stores an activity and fans it out to feeds
// POST /activities
func (h *PublishHandler) HandlePublish(w http.ResponseWriter, r *http.Request) {
	var req activities.PublishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	activity, err := h.service.Publish(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(activity); err != nil {
		log.Printf("ERROR: Failed to encode activity response: %v", err)
	}
}
