// filepath: internal/api/handlers/main.go
package handlers

import (
	"kpihub/internal/config"
	"kpihub/internal/services"
	"kpihub/internal/services/auth"
)

// Handlers holds the services the HTTP layer depends on.
type Handlers struct {
	Config   *config.Config
	Info     services.InfoService
	User     services.UserService
	Template services.TemplateService
	Token    auth.TokenService
}

// NewHandlers creates a new instance of Handlers.
func NewHandlers(cfg *config.Config, info services.InfoService, user services.UserService, template services.TemplateService, token auth.TokenService) *Handlers {
	return &Handlers{
		Config:   cfg,
		Info:     info,
		User:     user,
		Template: template,
		Token:    token,
	}
}
