// filepath: internal/api/handlers/token_handler.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"kpihub/internal/logging"
)

// TokenResponse is returned by the token and refresh endpoints.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	Name         string `json:"name"`
	Role         string `json:"role"`
}

// RefreshRequest carries the refresh token to exchange.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// GetToken godoc
// @Summary      Obtain a token pair
// @Description  Exchanges Basic Auth credentials for a JWT access/refresh token pair.
// @Tags         Auth
// @Produce      json
// @Security     BasicAuth
// @Success      200 {object} TokenResponse
// @Failure      401 {object} ErrorResponse
// @Router       /api/token [post]
func (h *Handlers) GetToken(w http.ResponseWriter, r *http.Request) {
	username, password, ok := r.BasicAuth()
	if !ok {
		w.Header().Set("WWW-Authenticate", `Basic realm="restricted"`)
		respondWithError(w, http.StatusUnauthorized, "Basic authentication required")
		return
	}

	user, err := h.User.GetUserByUsername(username)
	if err != nil {
		logging.Log.Warnf("GetToken: Unknown user '%s'", username)
		respondWithError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logging.Log.Warnf("GetToken: Wrong password for user '%s'", username)
		respondWithError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}

	access, refresh, err := h.Token.GenerateTokens(user)
	if err != nil {
		logging.Log.Errorf("GetToken: Failed to generate tokens for '%s': %v", username, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to generate tokens")
		return
	}

	respondWithJSON(w, http.StatusOK, TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    h.Config.JWT.AccessDurationMin * 60,
		Name:         user.Name,
		Role:         user.Role,
	})
}

// RefreshToken godoc
// @Summary      Refresh a token pair
// @Description  Exchanges a valid refresh token for a new access/refresh token pair. The old refresh token is revoked.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body RefreshRequest true "Refresh token"
// @Success      200 {object} TokenResponse
// @Failure      401 {object} ErrorResponse
// @Router       /api/token/refresh [post]
func (h *Handlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		respondWithError(w, http.StatusBadRequest, "refresh_token is required")
		return
	}

	user, err := h.Token.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		logging.Log.Warnf("RefreshToken: Invalid refresh token: %v", err)
		respondWithError(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	// Rotate: revoke the presented token before issuing a new pair.
	if err := h.Token.Logout(req.RefreshToken); err != nil {
		logging.Log.Warnf("RefreshToken: Failed to revoke old token for '%s': %v", user.Username, err)
	}

	access, refresh, err := h.Token.GenerateTokens(user)
	if err != nil {
		logging.Log.Errorf("RefreshToken: Failed to generate tokens for '%s': %v", user.Username, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to generate tokens")
		return
	}

	respondWithJSON(w, http.StatusOK, TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    h.Config.JWT.AccessDurationMin * 60,
		Name:         user.Name,
		Role:         user.Role,
	})
}

// Logout godoc
// @Summary      Log out
// @Description  Revokes the supplied refresh token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body RefreshRequest true "Refresh token"
// @Success      200 {object} MessageResponse
// @Security     BearerAuth
// @Router       /api/logout [post]
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		respondWithError(w, http.StatusBadRequest, "refresh_token is required")
		return
	}

	if err := h.Token.Logout(req.RefreshToken); err != nil {
		logging.Log.Warnf("Logout: %v", err)
	}
	respondWithJSON(w, http.StatusOK, MessageResponse{Message: "Logged out"})
}
