// filepath: internal/api/handlers/main_test.go
package handlers

import (
	"github.com/stretchr/testify/mock"

	"kpihub/internal/config"
	"kpihub/internal/models"
	"kpihub/internal/repository"
	"kpihub/internal/services"
	"kpihub/internal/services/auth"
)

// --- MOCK INFO SERVICE ---
type MockInfoService struct {
	mock.Mock
}

var _ services.InfoService = (*MockInfoService)(nil)

func (m *MockInfoService) GetInfo() models.Info {
	args := m.Called()
	return args.Get(0).(models.Info)
}

// --- MOCK USER SERVICE ---
type MockUserService struct {
	mock.Mock
}

var _ services.UserService = (*MockUserService)(nil)

func (m *MockUserService) GetUserByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserService) GetUsers(filter models.UserFilter) ([]models.User, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}
func (m *MockUserService) GetDepartments() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockUserService) CreateUser(cArgs repository.UserCreateArgs) (*models.User, error) {
	args := m.Called(cArgs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserService) UpdateUser(username string, profile models.User, newPassword string) (*models.User, error) {
	args := m.Called(username, profile, newPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserService) DeleteUser(username string) error {
	args := m.Called(username)
	return args.Error(0)
}
func (m *MockUserService) UpdateUserPassword(username, password string) error {
	args := m.Called(username, password)
	return args.Error(0)
}
func (m *MockUserService) EnsureSeedAdmin(cfg *config.Config) error {
	args := m.Called(cfg)
	return args.Error(0)
}

// --- MOCK TEMPLATE SERVICE ---
type MockTemplateService struct {
	mock.Mock
}

var _ services.TemplateService = (*MockTemplateService)(nil)

func (m *MockTemplateService) CreateTemplate(name, description string) (*models.Template, error) {
	args := m.Called(name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Template), args.Error(1)
}
func (m *MockTemplateService) UpdateTemplate(id int64, name, description string) (*models.Template, error) {
	args := m.Called(id, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Template), args.Error(1)
}
func (m *MockTemplateService) DeleteTemplate(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}
func (m *MockTemplateService) GetTemplates(filter models.TemplateFilter) ([]models.Template, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Template), args.Error(1)
}
func (m *MockTemplateService) GetTemplateIndicators(templateID int64) (*models.TemplateIndicators, error) {
	args := m.Called(templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TemplateIndicators), args.Error(1)
}
func (m *MockTemplateService) AddIndicator(ind models.Indicator) (*models.Indicator, error) {
	args := m.Called(ind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Indicator), args.Error(1)
}
func (m *MockTemplateService) UpdateIndicator(ind models.Indicator) (*models.Indicator, error) {
	args := m.Called(ind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Indicator), args.Error(1)
}
func (m *MockTemplateService) DeleteIndicator(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}
func (m *MockTemplateService) SuggestNextSequence(templateID int64) (int, error) {
	args := m.Called(templateID)
	return args.Int(0), args.Error(1)
}

// --- MOCK TOKEN SERVICE ---
type MockTokenService struct {
	mock.Mock
}

var _ auth.TokenService = (*MockTokenService)(nil)

func (m *MockTokenService) GenerateTokens(user *models.User) (string, string, error) {
	args := m.Called(user)
	return args.String(0), args.String(1), args.Error(2)
}
func (m *MockTokenService) ValidateAccessToken(token string) (*models.User, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockTokenService) ValidateRefreshToken(token string) (*models.User, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockTokenService) Logout(refreshToken string) error {
	args := m.Called(refreshToken)
	return args.Error(0)
}

// newTestHandlers builds a Handlers instance wired to fresh mocks.
func newTestHandlers() (*Handlers, *MockUserService, *MockTemplateService, *MockTokenService) {
	userSvc := new(MockUserService)
	templateSvc := new(MockTemplateService)
	tokenSvc := new(MockTokenService)
	cfg := &config.Config{
		JWT: config.JWTConfig{AccessDurationMin: 15, RefreshDurationHours: 24},
	}
	h := NewHandlers(cfg, new(MockInfoService), userSvc, templateSvc, tokenSvc)
	return h, userSvc, templateSvc, tokenSvc
}
