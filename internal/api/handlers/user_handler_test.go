// filepath: internal/api/handlers/user_handler_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"kpihub/internal/models"
	"kpihub/internal/services/auth"
)

func withUser(req *http.Request, user *models.User) *http.Request {
	ctx := context.WithValue(req.Context(), auth.UserContextKey, user)
	return req.WithContext(ctx)
}

func TestGetUserMe(t *testing.T) {
	h, _, _, _ := newTestHandlers()

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req = withUser(req, &models.User{Username: "jdoe", Name: "John Doe", PasswordHash: "hash", Role: "user"})
	rr := httptest.NewRecorder()
	h.GetUserMe(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var user models.User
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &user))
	assert.Equal(t, "jdoe", user.Username)
	assert.Empty(t, user.PasswordHash)
}

func TestGetUserMeUnauthenticated(t *testing.T) {
	h, _, _, _ := newTestHandlers()

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	rr := httptest.NewRecorder()
	h.GetUserMe(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestUpdateUserMeKeepsRole(t *testing.T) {
	h, userSvc, _, _ := newTestHandlers()

	current := &models.User{Username: "jdoe", Name: "John Doe", Role: "user"}
	// The role in the update must be the caller's current role regardless of
	// what the body says.
	expectedProfile := models.User{Username: "jdoe", Name: "John Q. Doe", Role: "user", Department: "Sales"}
	userSvc.On("UpdateUser", "jdoe", expectedProfile, "").
		Return(&models.User{Username: "jdoe", Name: "John Q. Doe", Role: "user", Department: "Sales"}, nil)

	body, _ := json.Marshal(UpdateMeRequest{Name: "John Q. Doe", Department: "Sales"})
	req := httptest.NewRequest(http.MethodPatch, "/api/me", bytes.NewReader(body))
	req = withUser(req, current)
	rr := httptest.NewRecorder()
	h.UpdateUserMe(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	userSvc.AssertExpectations(t)
}
