// filepath: internal/api/router.go
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"

	"kpihub/internal/api/handlers"
	"kpihub/internal/models"
	"kpihub/internal/services/auth"
)

// NewRouter wires the HTTP routes with their middleware chains.
func NewRouter(h *handlers.Handlers, mw *auth.Middleware) *mux.Router {
	r := mux.NewRouter()
	r.Use(auth.RequestID)

	// Public endpoints.
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	r.HandleFunc("/api/info", h.GetInfo).Methods(http.MethodGet)
	r.HandleFunc("/api/token", h.GetToken).Methods(http.MethodPost)
	r.HandleFunc("/api/token/refresh", h.RefreshToken).Methods(http.MethodPost)
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Endpoints for any authenticated user.
	authed := r.PathPrefix("/api").Subrouter()
	authed.Use(mw.AuthMiddleware)
	authed.HandleFunc("/logout", h.Logout).Methods(http.MethodPost)
	authed.HandleFunc("/me", h.GetUserMe).Methods(http.MethodGet)
	authed.HandleFunc("/me", h.UpdateUserMe).Methods(http.MethodPatch)

	// Administration endpoints.
	admin := r.PathPrefix("/api").Subrouter()
	admin.Use(mw.AuthMiddleware, mw.RoleMiddleware(models.RoleAdmin))

	admin.HandleFunc("/users", h.GetUsers).Methods(http.MethodGet)
	admin.HandleFunc("/user", h.CreateUser).Methods(http.MethodPost)
	admin.HandleFunc("/user", h.UpdateUser).Methods(http.MethodPatch)
	admin.HandleFunc("/user", h.DeleteUser).Methods(http.MethodDelete)
	admin.HandleFunc("/departments", h.GetDepartments).Methods(http.MethodGet)

	admin.HandleFunc("/templates", h.GetTemplates).Methods(http.MethodGet)
	admin.HandleFunc("/template", h.CreateTemplate).Methods(http.MethodPost)
	admin.HandleFunc("/template", h.UpdateTemplate).Methods(http.MethodPatch)
	admin.HandleFunc("/template", h.DeleteTemplate).Methods(http.MethodDelete)
	admin.HandleFunc("/template/indicators", h.GetTemplateIndicators).Methods(http.MethodGet)
	admin.HandleFunc("/template/indicators/next-sequence", h.GetNextSequence).Methods(http.MethodGet)

	admin.HandleFunc("/indicator", h.AddIndicator).Methods(http.MethodPost)
	admin.HandleFunc("/indicator", h.UpdateIndicator).Methods(http.MethodPatch)
	admin.HandleFunc("/indicator", h.DeleteIndicator).Methods(http.MethodDelete)

	return r
}
