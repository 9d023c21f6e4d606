package feed

import (
	"encoding/json"
	"log"
	"net/http"

	"ActivityFeed/internal/core/activityfeed"
)

// ErrorResponse represents a JSON error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, status int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := ErrorResponse{
		Error:   errorType,
		Message: message,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("ERROR: Failed to encode error response: %v", err)
	}
}

// writeJSON writes a 200 JSON response
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Log encoding errors but don't return error response (headers already sent)
		log.Printf("ERROR: Failed to encode feed response: %v", err)
	}
}

// handleServiceError maps feed engine errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case activityfeed.IsValidationError(err):
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
	case activityfeed.IsStoreUnavailable(err):
		log.Printf("ERROR: Feed store unavailable: %v", err)
		writeError(w, http.StatusServiceUnavailable, "StoreUnavailable", "The feed store is unavailable")
	case activityfeed.IsResolverFailure(err):
		log.Printf("ERROR: Feed item loader failed: %v", err)
		writeError(w, http.StatusBadGateway, "ItemLoadFailed", "Failed to load feed items")
	default:
		log.Printf("ERROR: Feed service error: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError", "An error occurred while processing the feed")
	}
}
