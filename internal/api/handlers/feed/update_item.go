package feed

import (
	"encoding/json"
	"net/http"

	"ActivityFeed/internal/core/activityfeed"
)

// UpdateItemRequest is the body of PUT /feeds/{userID}/items/{itemID}
type UpdateItemRequest struct {
	Timestamp *float64 `json:"timestamp"`
	Aggregate *bool    `json:"aggregate,omitempty"`
}

// AggregateItemRequest is the body of POST /feeds/aggregate
type AggregateItemRequest struct {
	Timestamp *float64 `json:"timestamp"`
	ItemID    string   `json:"itemId"`
	UserIDs   []string `json:"userIds"`
}

// WriteFeedHandler serves item writes
type WriteFeedHandler struct {
	service activityfeed.Service
}

// NewWriteFeedHandler creates a new feed write handler
func NewWriteFeedHandler(service activityfeed.Service) *WriteFeedHandler {
	return &WriteFeedHandler{
		service: service,
	}
}

// HandleUpdateItem adds or updates an item in a user's feed
// PUT /feeds/{userID}/items/{itemID}
func (h *WriteFeedHandler) HandleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}
	if req.Timestamp == nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "timestamp is required")
		return
	}

	err := h.service.UpdateItem(r.Context(), userIDParam(r), itemIDParam(r), *req.Timestamp, aggregateOption(req.Aggregate)...)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleAggregateItem fans an item out to the aggregate feeds of many users
// POST /feeds/aggregate
func (h *WriteFeedHandler) HandleAggregateItem(w http.ResponseWriter, r *http.Request) {
	var req AggregateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}
	if req.Timestamp == nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "timestamp is required")
		return
	}

	if err := h.service.AggregateItemForUsers(r.Context(), req.UserIDs, req.ItemID, *req.Timestamp); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
