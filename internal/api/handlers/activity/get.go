package activity

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ActivityFeed/internal/core/activities"
)

// GetHandler handles activity lookups
type GetHandler struct {
	service activities.Service
}

// NewGetHandler creates a new get handler
func NewGetHandler(service activities.Service) *GetHandler {
	return &GetHandler{
		service: service,
	}
}

// HandleGet returns a single activity
// GET /activities/{activityID}
func (h *GetHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	activity, err := h.service.Get(r.Context(), chi.URLParam(r, "activityID"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(activity); err != nil {
		log.Printf("ERROR: Failed to encode activity response: %v", err)
	}
}
