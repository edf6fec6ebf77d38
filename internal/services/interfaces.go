// filepath: internal/services/interfaces.go
package services

import (
	"kpihub/internal/config"
	"kpihub/internal/models"
	"kpihub/internal/repository"
)

// InfoService defines the interface for the info service.
type InfoService interface {
	GetInfo() models.Info
}

// UserService defines the interface for the user service.
type UserService interface {
	GetUserByUsername(username string) (*models.User, error)
	GetUsers(filter models.UserFilter) ([]models.User, error)
	GetDepartments() ([]string, error)
	CreateUser(args repository.UserCreateArgs) (*models.User, error)
	UpdateUser(username string, profile models.User, newPassword string) (*models.User, error)
	DeleteUser(username string) error
	UpdateUserPassword(username, password string) error
	EnsureSeedAdmin(cfg *config.Config) error
}

// TemplateService defines the interface for template and indicator management.
type TemplateService interface {
	CreateTemplate(name, description string) (*models.Template, error)
	UpdateTemplate(id int64, name, description string) (*models.Template, error)
	DeleteTemplate(id int64) error
	GetTemplates(filter models.TemplateFilter) ([]models.Template, error)
	GetTemplateIndicators(templateID int64) (*models.TemplateIndicators, error)
	AddIndicator(ind models.Indicator) (*models.Indicator, error)
	UpdateIndicator(ind models.Indicator) (*models.Indicator, error)
	DeleteIndicator(id int64) error
	SuggestNextSequence(templateID int64) (int, error)
}
