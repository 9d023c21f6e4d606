package activity

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"ActivityFeed/internal/core/activities"
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
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: errorType, Message: message}); err != nil {
		log.Printf("ERROR: Failed to encode error response: %v", err)
	}
}

// handleServiceError maps activity service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case activities.IsValidationError(err), activityfeed.IsValidationError(err):
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
	case errors.Is(err, activities.ErrActivityNotFound):
		writeError(w, http.StatusNotFound, "ActivityNotFound", "Activity not found")
	case errors.Is(err, activities.ErrActivityExists):
		writeError(w, http.StatusConflict, "ActivityExists", "Activity already exists")
	case activityfeed.IsStoreUnavailable(err):
		log.Printf("ERROR: Feed store unavailable: %v", err)
		writeError(w, http.StatusServiceUnavailable, "StoreUnavailable", "The feed store is unavailable")
	default:
		log.Printf("ERROR: Activity service error: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
	}
}
