package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mscaglia/finbook/internal/shared/apperr"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	respondJSON(w, ErrorResponse{Error: message}, statusCode)
}

// respondDomainError maps a service-layer error onto the wire. Errors that
// carry no application code are reported as opaque internal failures.
func respondDomainError(w http.ResponseWriter, err error) {
	status := apperr.HTTPStatus(err)
	if appErr := apperr.From(err); appErr != nil && status != http.StatusInternalServerError {
		respondJSON(w, ErrorResponse{Error: appErr.Message, Code: appErr.Code}, status)
		return
	}
	respondError(w, "internal server error", http.StatusInternalServerError)
}
