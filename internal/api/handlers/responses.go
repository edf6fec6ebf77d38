// filepath: internal/api/handlers/responses.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"kpihub/internal/logging"
	"kpihub/internal/repository"
	"kpihub/internal/services"
)

// ErrorResponse is the standard JSON error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the standard JSON success body for operations
// that return no resource.
type MessageResponse struct {
	Message string `json:"message"`
}

// respondWithError sends a JSON error response with the given status code.
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

// respondWithJSON sends a JSON response with the given status code.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logging.Log.Errorf("respondWithJSON: Failed to marshal payload: %v", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Internal server error"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// respondWithServiceError maps domain errors to HTTP status codes.
func respondWithServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrUserExists):
		respondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, repository.ErrWeightBudgetExceeded):
		respondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrValidation):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrProtectedRecord):
		respondWithError(w, http.StatusForbidden, err.Error())
	default:
		logging.Log.Errorf("respondWithServiceError: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
