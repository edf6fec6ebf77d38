// filepath: internal/api/handlers/admin_handler.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"kpihub/internal/models"
	"kpihub/internal/repository"
)

// CreateUserRequest is the admin user creation body.
type CreateUserRequest struct {
	Username   string `json:"username"`
	Name       string `json:"name"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	Department string `json:"department"`
	Position   string `json:"position"`
	EmployeeID string `json:"employee_id"`
}

// UpdateUserRequest is the admin user update body. A blank password
// leaves the stored one unchanged.
type UpdateUserRequest struct {
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"department"`
	Position   string `json:"position"`
	EmployeeID string `json:"employee_id"`
	Password   string `json:"password"`
}

// GetUsers godoc
// @Summary      List users
// @Description  Lists users, optionally narrowed by name substring, department and role. Filters are conjunctive; "all" or an empty value matches everything.
// @Tags         Admin
// @Produce      json
// @Param        name       query string false "Name substring (case sensitive)"
// @Param        department query string false "Department (exact, 'all' for any)"
// @Param        role       query string false "Role (exact, 'all' for any)"
// @Success      200 {array} models.User
// @Security     BearerAuth
// @Router       /api/users [get]
func (h *Handlers) GetUsers(w http.ResponseWriter, r *http.Request) {
	filter := models.UserFilter{
		NameContains: r.URL.Query().Get("name"),
		Department:   r.URL.Query().Get("department"),
		Role:         r.URL.Query().Get("role"),
	}

	users, err := h.User.GetUsers(filter)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	sanitized := make([]models.User, 0, len(users))
	for i := range users {
		sanitized = append(sanitized, sanitizeUser(&users[i]))
	}
	respondWithJSON(w, http.StatusOK, sanitized)
}

// CreateUser godoc
// @Summary      Create a user
// @Description  Creates a user account. Usernames are unique.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body CreateUserRequest true "New user"
// @Success      201 {object} models.User
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/user [post]
func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.User.CreateUser(repository.UserCreateArgs{
		Username:   req.Username,
		Name:       req.Name,
		Password:   req.Password,
		Role:       req.Role,
		Department: req.Department,
		Position:   req.Position,
		EmployeeID: req.EmployeeID,
	})
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, sanitizeUser(created))
}

// UpdateUser godoc
// @Summary      Update a user
// @Description  Updates an existing user's profile and optionally the password. The seed admin account keeps its admin role.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        username query string true "Username"
// @Param        request  body  UpdateUserRequest true "Updated fields"
// @Success      200 {object} models.User
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/user [patch]
func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.URL.Query().Get("username"))
	if username == "" {
		respondWithError(w, http.StatusBadRequest, "username query parameter is required")
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	profile := models.User{
		Username:   username,
		Name:       req.Name,
		Role:       req.Role,
		Department: req.Department,
		Position:   req.Position,
		EmployeeID: req.EmployeeID,
	}

	updated, err := h.User.UpdateUser(username, profile, req.Password)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, sanitizeUser(updated))
}

// DeleteUser godoc
// @Summary      Delete a user
// @Description  Deletes a user account and revokes its refresh tokens. The seed admin account cannot be deleted.
// @Tags         Admin
// @Produce      json
// @Param        username query string true "Username"
// @Success      200 {object} MessageResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/user [delete]
func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.URL.Query().Get("username"))
	if username == "" {
		respondWithError(w, http.StatusBadRequest, "username query parameter is required")
		return
	}

	if err := h.User.DeleteUser(username); err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, MessageResponse{Message: "User deleted"})
}

// GetDepartments godoc
// @Summary      List departments
// @Description  Returns the distinct departments of all users.
// @Tags         Admin
// @Produce      json
// @Success      200 {array} string
// @Security     BearerAuth
// @Router       /api/departments [get]
func (h *Handlers) GetDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.User.GetDepartments()
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, departments)
}
