package rest

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// ErrorDTO is the error envelope returned by every API endpoint. Code is a
// stable machine-readable identifier; Message is for humans.
type ErrorDTO struct {
	Code    string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Stable error codes shared across handlers.
const (
	CodeBadRequest         = "BAD_REQUEST"
	CodeInternal           = "INTERNAL_ERROR"
	CodeInvalidSchedule    = "INVALID_SCHEDULE"
	CodeServiceNotFound    = "SERVICE_NOT_FOUND"
	CodeServiceInUse       = "SERVICE_IN_USE"
	CodeSlotNotAvailable   = "SLOT_NOT_AVAILABLE"
	CodeConflict           = "CONFLICT"
	CodeAppointmentMissing = "APPOINTMENT_NOT_FOUND"
	CodeClientNotFound     = "CLIENT_NOT_FOUND"
	CodeBusinessNotFound   = "BUSINESS_NOT_FOUND"
)

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}

// WriteError writes the standard error envelope.
func WriteError(w http.ResponseWriter, status int, code string, message string) {
	WriteJSON(w, status, ErrorDTO{Code: code, Message: message})
}
