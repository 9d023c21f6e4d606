package feed

import (
	"net/http"
	"strconv"

	"ActivityFeed/internal/core/activityfeed"
)

// FeedResponse is a page (or range) of resolved feed items
type FeedResponse struct {
	UserID string `json:"userId"`
	Items  []any  `json:"items"`
	Page   int    `json:"page,omitempty"`
}

// StatsResponse reports feed cardinality
type StatsResponse struct {
	UserID     string `json:"userId"`
	TotalItems int64  `json:"totalItems"`
	TotalPages int64  `json:"totalPages"`
}

// CheckItemResponse reports feed membership
type CheckItemResponse struct {
	ItemID  string `json:"itemId"`
	Present bool   `json:"present"`
}

// TTLResponse reports the store TTL in seconds (-1 no expiry, -2 missing)
type TTLResponse struct {
	TTLSeconds int64 `json:"ttlSeconds"`
}

// GetFeedHandler serves the read side of the feed engine
type GetFeedHandler struct {
	service activityfeed.Service
}

// NewGetFeedHandler creates a new feed read handler
func NewGetFeedHandler(service activityfeed.Service) *GetFeedHandler {
	return &GetFeedHandler{
		service: service,
	}
}

// HandleGetFeed returns one page of a feed
// GET /feeds/{userID}?page=1&aggregate=true&page_size=25
func (h *GetFeedHandler) HandleGetFeed(w http.ResponseWriter, r *http.Request) {
	userID := userIDParam(r)
	opts, err := feedOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	page := 1
	if v := r.URL.Query().Get("page"); v != "" {
		page, err = strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "InvalidRequest", "page must be an integer")
			return
		}
	}

	items, err := h.service.Feed(r.Context(), userID, page, opts...)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, FeedResponse{UserID: userID, Page: page, Items: items})
}

// HandleGetFullFeed returns every item of a feed
// GET /feeds/{userID}/all?aggregate=true
func (h *GetFeedHandler) HandleGetFullFeed(w http.ResponseWriter, r *http.Request) {
	userID := userIDParam(r)
	opts, err := feedOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	items, err := h.service.FullFeed(r.Context(), userID, opts...)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, FeedResponse{UserID: userID, Items: items})
}

// HandleGetBetween returns items whose timestamp is within [start, end]
// GET /feeds/{userID}/between?start=1700000000&end=1700003600
func (h *GetFeedHandler) HandleGetBetween(w http.ResponseWriter, r *http.Request) {
	userID := userIDParam(r)
	opts, err := feedOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}
	start, err := queryFloat(r, "start")
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}
	end, err := queryFloat(r, "end")
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	items, err := h.service.FeedBetweenTimestamps(r.Context(), userID, start, end, opts...)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, FeedResponse{UserID: userID, Items: items})
}

// HandleGetStats returns total items and total pages
// GET /feeds/{userID}/stats?page_size=10
func (h *GetFeedHandler) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	userID := userIDParam(r)
	opts, err := feedOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	total, err := h.service.TotalItems(r.Context(), userID, opts...)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	pages, err := h.service.TotalPages(r.Context(), userID, opts...)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, StatsResponse{UserID: userID, TotalItems: total, TotalPages: pages})
}

// HandleCheckItem reports whether an item is in the feed
// GET /feeds/{userID}/items/{itemID}
func (h *GetFeedHandler) HandleCheckItem(w http.ResponseWriter, r *http.Request) {
	opts, err := feedOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}
	itemID := itemIDParam(r)

	present, err := h.service.CheckItem(r.Context(), userIDParam(r), itemID, opts...)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, CheckItemResponse{ItemID: itemID, Present: present})
}

// HandleGetTTL reports the remaining lifetime of a feed
// GET /feeds/{userID}/ttl
func (h *GetFeedHandler) HandleGetTTL(w http.ResponseWriter, r *http.Request) {
	opts, err := feedOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	ttl, err := h.service.FeedTTL(r.Context(), userIDParam(r), opts...)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	seconds := int64(ttl)
	if ttl > 0 {
		seconds = int64(ttl.Seconds())
	}
	writeJSON(w, http.StatusOK, TTLResponse{TTLSeconds: seconds})
}
