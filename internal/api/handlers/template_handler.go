// filepath: internal/api/handlers/template_handler.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"kpihub/internal/models"
)

// TemplateRequest is the body for creating or updating a template.
type TemplateRequest struct {
	Name        string `json:"template_name"`
	Description string `json:"description"`
}

// parseTemplateID reads the id query parameter.
func parseTemplateID(r *http.Request) (int64, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("id"))
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// createdWindowSince maps the created query parameter to a cutoff time.
// Unknown values and "all" mean no cutoff.
func createdWindowSince(window string, now time.Time) time.Time {
	switch window {
	case "week":
		return now.AddDate(0, 0, -7)
	case "month":
		return now.AddDate(0, -1, 0)
	case "quarter":
		return now.AddDate(0, -3, 0)
	default:
		return time.Time{}
	}
}

// GetTemplates godoc
// @Summary      List KPI templates
// @Description  Lists templates, optionally narrowed by a case sensitive name substring and a creation window (all, week, month, quarter).
// @Tags         Templates
// @Produce      json
// @Param        name    query string false "Name substring (case sensitive)"
// @Param        created query string false "Creation window: all, week, month or quarter"
// @Success      200 {array} models.Template
// @Security     BearerAuth
// @Router       /api/templates [get]
func (h *Handlers) GetTemplates(w http.ResponseWriter, r *http.Request) {
	filter := models.TemplateFilter{
		NameContains: r.URL.Query().Get("name"),
		CreatedSince: createdWindowSince(r.URL.Query().Get("created"), time.Now().UTC()),
	}

	templates, err := h.Template.GetTemplates(filter)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, templates)
}

// CreateTemplate godoc
// @Summary      Create a KPI template
// @Tags         Templates
// @Accept       json
// @Produce      json
// @Param        request body TemplateRequest true "New template"
// @Success      201 {object} models.Template
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/template [post]
func (h *Handlers) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req TemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.Template.CreateTemplate(req.Name, req.Description)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

// UpdateTemplate godoc
// @Summary      Update a KPI template
// @Tags         Templates
// @Accept       json
// @Produce      json
// @Param        id      query int true "Template ID"
// @Param        request body TemplateRequest true "Updated fields"
// @Success      200 {object} models.Template
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/template [patch]
func (h *Handlers) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseTemplateID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "id query parameter is required")
		return
	}

	var req TemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.Template.UpdateTemplate(id, req.Name, req.Description)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

// DeleteTemplate godoc
// @Summary      Delete a KPI template
// @Description  Deletes a template together with all of its indicators.
// @Tags         Templates
// @Produce      json
// @Param        id query int true "Template ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/template [delete]
func (h *Handlers) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseTemplateID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "id query parameter is required")
		return
	}

	if err := h.Template.DeleteTemplate(id); err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, MessageResponse{Message: "Template deleted"})
}

// GetTemplateIndicators godoc
// @Summary      List a template's indicators
// @Description  Returns the template's indicators ordered by sequence number, with the current weight total.
// @Tags         Templates
// @Produce      json
// @Param        id query int true "Template ID"
// @Success      200 {object} models.TemplateIndicators
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/template/indicators [get]
func (h *Handlers) GetTemplateIndicators(w http.ResponseWriter, r *http.Request) {
	id, ok := parseTemplateID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "id query parameter is required")
		return
	}

	result, err := h.Template.GetTemplateIndicators(id)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

// GetNextSequence godoc
// @Summary      Suggest the next indicator sequence number
// @Tags         Templates
// @Produce      json
// @Param        id query int true "Template ID"
// @Success      200 {object} map[string]int
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/template/indicators/next-sequence [get]
func (h *Handlers) GetNextSequence(w http.ResponseWriter, r *http.Request) {
	id, ok := parseTemplateID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "id query parameter is required")
		return
	}

	next, err := h.Template.SuggestNextSequence(id)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]int{"next_sequence": next})
}
