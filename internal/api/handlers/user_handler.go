// filepath: internal/api/handlers/user_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	"kpihub/internal/models"
	"kpihub/internal/services/auth"
)

// sanitizeUser strips the password hash before a user leaves the API.
func sanitizeUser(u *models.User) models.User {
	out := *u
	out.PasswordHash = ""
	return out
}

// UpdateMeRequest is the self-service profile update body. Role is not
// part of it, users cannot raise their own privileges.
type UpdateMeRequest struct {
	Name       string `json:"name"`
	Department string `json:"department"`
	Position   string `json:"position"`
	EmployeeID string `json:"employee_id"`
	Password   string `json:"password"`
}

// GetUserMe godoc
// @Summary      Current user profile
// @Description  Returns the profile of the authenticated user.
// @Tags         Users
// @Produce      json
// @Success      200 {object} models.User
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/me [get]
func (h *Handlers) GetUserMe(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	respondWithJSON(w, http.StatusOK, sanitizeUser(user))
}

// UpdateUserMe godoc
// @Summary      Update current user profile
// @Description  Updates the authenticated user's own profile. Omitting password keeps it unchanged. The role cannot be changed here.
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        request body UpdateMeRequest true "Profile fields"
// @Success      200 {object} models.User
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/me [patch]
func (h *Handlers) UpdateUserMe(w http.ResponseWriter, r *http.Request) {
	current, ok := auth.UserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req UpdateMeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	profile := models.User{
		Username:   current.Username,
		Name:       req.Name,
		Role:       current.Role,
		Department: req.Department,
		Position:   req.Position,
		EmployeeID: req.EmployeeID,
	}

	updated, err := h.User.UpdateUser(current.Username, profile, req.Password)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, sanitizeUser(updated))
}
