// filepath: internal/api/handlers/indicator_handler.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"kpihub/internal/models"
)

// IndicatorRequest is the body for creating or updating an indicator.
// The weight accepts a JSON number or a numeric string.
type IndicatorRequest struct {
	TemplateID         int64           `json:"template_id"`
	SequenceNumber     int             `json:"sequence_number"`
	Category           string          `json:"category"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	EvaluationCriteria string          `json:"evaluation_criteria"`
	Weight             decimal.Decimal `json:"weight"`
}

// parseIndicatorID reads the id query parameter.
func parseIndicatorID(r *http.Request) (int64, bool) {
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

// AddIndicator godoc
// @Summary      Add an indicator to a template
// @Description  Adds a weighted indicator. The request is rejected if the template's weights would exceed 100 percent.
// @Tags         Indicators
// @Accept       json
// @Produce      json
// @Param        request body IndicatorRequest true "New indicator"
// @Success      201 {object} models.Indicator
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/indicator [post]
func (h *Handlers) AddIndicator(w http.ResponseWriter, r *http.Request) {
	var req IndicatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.Template.AddIndicator(models.Indicator{
		TemplateID:         req.TemplateID,
		SequenceNumber:     req.SequenceNumber,
		Category:           req.Category,
		Name:               req.Name,
		Description:        req.Description,
		EvaluationCriteria: req.EvaluationCriteria,
		Weight:             req.Weight,
	})
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

// UpdateIndicator godoc
// @Summary      Update an indicator
// @Description  Updates an indicator in place. The weight check excludes the indicator's own stored weight; the owning template never changes.
// @Tags         Indicators
// @Accept       json
// @Produce      json
// @Param        id      query int true "Indicator ID"
// @Param        request body IndicatorRequest true "Updated fields"
// @Success      200 {object} models.Indicator
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/indicator [patch]
func (h *Handlers) UpdateIndicator(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIndicatorID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "id query parameter is required")
		return
	}

	var req IndicatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.Template.UpdateIndicator(models.Indicator{
		ID:                 id,
		SequenceNumber:     req.SequenceNumber,
		Category:           req.Category,
		Name:               req.Name,
		Description:        req.Description,
		EvaluationCriteria: req.EvaluationCriteria,
		Weight:             req.Weight,
	})
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

// DeleteIndicator godoc
// @Summary      Delete an indicator
// @Tags         Indicators
// @Produce      json
// @Param        id query int true "Indicator ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/indicator [delete]
func (h *Handlers) DeleteIndicator(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIndicatorID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "id query parameter is required")
		return
	}

	if err := h.Template.DeleteIndicator(id); err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, MessageResponse{Message: "Indicator deleted"})
}
