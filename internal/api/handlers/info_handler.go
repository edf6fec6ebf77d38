// filepath: internal/api/handlers/info_handler.go
package handlers

import (
	"net/http"
)

// GetInfo godoc
// @Summary      Service information
// @Description  Returns the service name, version and uptime start.
// @Tags         System
// @Produce      json
// @Success      200 {object} models.Info
// @Router       /api/info [get]
func (h *Handlers) GetInfo(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.Info.GetInfo())
}
