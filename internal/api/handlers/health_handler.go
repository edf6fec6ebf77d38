// filepath: internal/api/handlers/health_handler.go
package handlers

import (
	"net/http"
)

// HealthCheck godoc
// @Summary      Health check
// @Description  Returns OK if the service is up.
// @Tags         System
// @Produce      json
// @Success      200 {object} MessageResponse
// @Router       /health [get]
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, MessageResponse{Message: "OK"})
}
