// filepath: internal/services/auth/middleware_test.go
package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"kpihub/internal/config"
	"kpihub/internal/models"
	"kpihub/internal/repository"
	"kpihub/internal/services"
)

type mockUserService struct {
	mock.Mock
}

var _ services.UserService = (*mockUserService)(nil)

func (m *mockUserService) GetUserByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *mockUserService) GetUsers(filter models.UserFilter) ([]models.User, error) {
	args := m.Called(filter)
	return args.Get(0).([]models.User), args.Error(1)
}
func (m *mockUserService) GetDepartments() ([]string, error) {
	args := m.Called()
	return args.Get(0).([]string), args.Error(1)
}
func (m *mockUserService) CreateUser(cArgs repository.UserCreateArgs) (*models.User, error) {
	args := m.Called(cArgs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *mockUserService) UpdateUser(username string, profile models.User, newPassword string) (*models.User, error) {
	args := m.Called(username, profile, newPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *mockUserService) DeleteUser(username string) error {
	args := m.Called(username)
	return args.Error(0)
}
func (m *mockUserService) UpdateUserPassword(username, password string) error {
	args := m.Called(username, password)
	return args.Error(0)
}
func (m *mockUserService) EnsureSeedAdmin(cfg *config.Config) error {
	args := m.Called(cfg)
	return args.Error(0)
}

type mockTokenService struct {
	mock.Mock
}

var _ TokenService = (*mockTokenService)(nil)

func (m *mockTokenService) GenerateTokens(user *models.User) (string, string, error) {
	args := m.Called(user)
	return args.String(0), args.String(1), args.Error(2)
}
func (m *mockTokenService) ValidateAccessToken(token string) (*models.User, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *mockTokenService) ValidateRefreshToken(token string) (*models.User, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *mockTokenService) Logout(refreshToken string) error {
	args := m.Called(refreshToken)
	return args.Error(0)
}

func okHandler(t *testing.T, expectUser string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, expectUser, user.Username)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddlewareBearer(t *testing.T) {
	userSvc := new(mockUserService)
	tokenSvc := new(mockTokenService)
	mw := NewMiddleware(userSvc, tokenSvc)

	tokenSvc.On("ValidateAccessToken", "good-token").
		Return(&models.User{Username: "jdoe", Role: models.RoleUser}, nil)
	tokenSvc.On("ValidateAccessToken", "bad-token").
		Return(nil, errors.New("signature invalid"))

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rr := httptest.NewRecorder()
	mw.AuthMiddleware(okHandler(t, "jdoe")).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rr = httptest.NewRecorder()
	mw.AuthMiddleware(okHandler(t, "jdoe")).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthMiddlewareBasic(t *testing.T) {
	userSvc := new(mockUserService)
	tokenSvc := new(mockTokenService)
	mw := NewMiddleware(userSvc, tokenSvc)

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	userSvc.On("GetUserByUsername", "jdoe").
		Return(&models.User{Username: "jdoe", PasswordHash: string(hash), Role: models.RoleUser}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.SetBasicAuth("jdoe", "secret123")
	rr := httptest.NewRecorder()
	mw.AuthMiddleware(okHandler(t, "jdoe")).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.SetBasicAuth("jdoe", "wrong")
	rr = httptest.NewRecorder()
	mw.AuthMiddleware(okHandler(t, "jdoe")).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	mw := NewMiddleware(new(mockUserService), new(mockTokenService))

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	rr := httptest.NewRecorder()
	mw.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without credentials")
	})).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("WWW-Authenticate"))
}

func TestRoleMiddleware(t *testing.T) {
	mw := NewMiddleware(new(mockUserService), new(mockTokenService))
	guard := mw.RoleMiddleware(models.RoleAdmin)

	called := false
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	// Admin passes
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	ctx := context.WithValue(req.Context(), UserContextKey, &models.User{Username: "root", Role: models.RoleAdmin})
	rr := httptest.NewRecorder()
	guard(inner).ServeHTTP(rr, req.WithContext(ctx))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, called)

	// Regular user is rejected
	called = false
	req = httptest.NewRequest(http.MethodGet, "/api/users", nil)
	ctx = context.WithValue(req.Context(), UserContextKey, &models.User{Username: "jdoe", Role: models.RoleUser})
	rr = httptest.NewRecorder()
	guard(inner).ServeHTTP(rr, req.WithContext(ctx))
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.False(t, called)

	// No user in context at all
	req = httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rr = httptest.NewRecorder()
	guard(inner).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := r.Context().Value(RequestIDContextKey).(string)
		assert.True(t, ok)
		seen = id
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	RequestID(inner).ServeHTTP(rr, req)

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rr.Header().Get("X-Request-Id"))
}
