package feed

import (
	"encoding/json"
	"net/http"

	"ActivityFeed/internal/core/activityfeed"
)

// RemoveItemsRequest is the body of POST /feeds/{userID}/items/remove
type RemoveItemsRequest struct {
	ItemIDs []string `json:"itemIds"`
}

// RemoveHandler serves removals. Removal always targets both of the user's feeds.
type RemoveHandler struct {
	service activityfeed.Service
}

// NewRemoveHandler creates a new removal handler
func NewRemoveHandler(service activityfeed.Service) *RemoveHandler {
	return &RemoveHandler{
		service: service,
	}
}

// HandleRemoveItem removes one item from both feeds
// DELETE /feeds/{userID}/items/{itemID}
func (h *RemoveHandler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RemoveItem(r.Context(), userIDParam(r), itemIDParam(r)); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRemoveItems removes several items from both feeds in one batch
// POST /feeds/{userID}/items/remove
func (h *RemoveHandler) HandleRemoveItems(w http.ResponseWriter, r *http.Request) {
	var req RemoveItemsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	if err := h.service.RemoveItems(r.Context(), userIDParam(r), req.ItemIDs); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRemoveFeeds deletes both of a user's feeds
// DELETE /feeds/{userID}
func (h *RemoveHandler) HandleRemoveFeeds(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RemoveFeeds(r.Context(), userIDParam(r)); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
