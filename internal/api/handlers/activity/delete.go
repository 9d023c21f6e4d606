package activity

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ActivityFeed/internal/core/activities"
)

// DeleteHandler handles activity deletion
type DeleteHandler struct {
	service activities.Service
}

// NewDeleteHandler creates a new delete handler
func NewDeleteHandler(service activities.Service) *DeleteHandler {
	return &DeleteHandler{
		service: service,
	}
}

// HandleDelete deletes an activity and removes it from feeds.
// The body is optional and may name the audience the activity was fanned out to.
// DELETE /activities/{activityID}
func (h *DeleteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	var req activities.DeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}
	req.ActivityID = chi.URLParam(r, "activityID")

	if err := h.service.Delete(r.Context(), req); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
