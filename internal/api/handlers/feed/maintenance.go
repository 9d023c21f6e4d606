package feed

import (
	"encoding/json"
	"math"
	"net/http"
	"time"

	"ActivityFeed/internal/core/activityfeed"
)

// maxExpireSeconds is the largest TTL that fits in a time.Duration
const maxExpireSeconds = math.MaxInt64 / int64(time.Second)

// TrimRequest is the body of POST /feeds/{userID}/trim.
// Either Size or both Start and End must be set.
type TrimRequest struct {
	Start     *float64 `json:"start,omitempty"`
	End       *float64 `json:"end,omitempty"`
	Size      *int     `json:"size,omitempty"`
	Aggregate *bool    `json:"aggregate,omitempty"`
}

// ExpireRequest is the body of POST /feeds/{userID}/expire.
// Exactly one of Seconds or At must be set.
type ExpireRequest struct {
	Seconds   *int64     `json:"seconds,omitempty"`
	At        *time.Time `json:"at,omitempty"`
	Aggregate *bool      `json:"aggregate,omitempty"`
}

// MaintenanceHandler serves trim and expiry operations
type MaintenanceHandler struct {
	service activityfeed.Service
}

// NewMaintenanceHandler creates a new maintenance handler
func NewMaintenanceHandler(service activityfeed.Service) *MaintenanceHandler {
	return &MaintenanceHandler{
		service: service,
	}
}

// HandleTrim removes items by timestamp range or keeps the newest size items
// POST /feeds/{userID}/trim
func (h *MaintenanceHandler) HandleTrim(w http.ResponseWriter, r *http.Request) {
	var req TrimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	userID := userIDParam(r)
	opts := aggregateOption(req.Aggregate)

	var err error
	switch {
	case req.Size != nil && (req.Start != nil || req.End != nil):
		writeError(w, http.StatusBadRequest, "InvalidRequest", "size cannot be combined with start/end")
		return
	case req.Size != nil:
		err = h.service.TrimFeedToSize(r.Context(), userID, *req.Size, opts...)
	case req.Start != nil && req.End != nil:
		err = h.service.TrimFeed(r.Context(), userID, *req.Start, *req.End, opts...)
	default:
		writeError(w, http.StatusBadRequest, "InvalidRequest", "either size or start and end are required")
		return
	}
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleExpire sets a TTL or an absolute expiry on a feed
// POST /feeds/{userID}/expire
func (h *MaintenanceHandler) HandleExpire(w http.ResponseWriter, r *http.Request) {
	var req ExpireRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	userID := userIDParam(r)
	opts := aggregateOption(req.Aggregate)

	var err error
	switch {
	case req.Seconds != nil && req.At != nil:
		writeError(w, http.StatusBadRequest, "InvalidRequest", "seconds and at are mutually exclusive")
		return
	case req.Seconds != nil && *req.Seconds > maxExpireSeconds:
		writeError(w, http.StatusBadRequest, "InvalidRequest", "seconds is too large")
		return
	case req.Seconds != nil:
		err = h.service.ExpireFeed(r.Context(), userID, time.Duration(*req.Seconds)*time.Second, opts...)
	case req.At != nil:
		err = h.service.ExpireFeedAt(r.Context(), userID, *req.At, opts...)
	default:
		writeError(w, http.StatusBadRequest, "InvalidRequest", "either seconds or at is required")
		return
	}
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
