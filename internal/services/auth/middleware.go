// filepath: internal/services/auth/middleware.go
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"

	"kpihub/internal/logging"
	"kpihub/internal/models"
	"kpihub/internal/services"
)

type contextKey string

// Context keys set by the middleware chain.
const (
	UserContextKey      contextKey = "user"
	RequestIDContextKey contextKey = "request_id"
)

// UserFromContext extracts the authenticated user from a request context.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	return user, ok
}

// writeError sends a JSON error response.
func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// Middleware provides authentication and authorization middleware.
type Middleware struct {
	User  services.UserService
	Token TokenService
}

// NewMiddleware creates a new instance of Middleware.
func NewMiddleware(user services.UserService, token TokenService) *Middleware {
	return &Middleware{
		User:  user,
		Token: token,
	}
}

// RequestID tags every request with a ULID for log correlation.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ulid.Make().String()
		w.Header().Set("X-Request-Id", id)
		logging.Log.Debugf("RequestID %s: %s %s", id, r.Method, r.URL.Path)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), RequestIDContextKey, id)))
	})
}

// AuthMiddleware checks for a valid JWT Bearer token OR Basic Auth.
func (m *Middleware) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			// Tell the client we accept both
			w.Header().Set("WWW-Authenticate", `Basic realm="restricted", Bearer realm="restricted"`)
			writeError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		var user *models.User
		var err error

		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			user, err = m.Token.ValidateAccessToken(tokenString)
			if err != nil {
				logging.Log.Warnf("AuthMiddleware: Invalid Bearer token: %v", err)
				if strings.Contains(err.Error(), "expired") {
					writeError(w, http.StatusUnauthorized, "Token expired")
				} else {
					writeError(w, http.StatusUnauthorized, "Invalid token")
				}
				return
			}
		} else if strings.HasPrefix(authHeader, "Basic ") {
			username, password, ok := r.BasicAuth()
			if !ok {
				writeError(w, http.StatusUnauthorized, "Invalid Basic Auth header")
				return
			}
			user, err = m.validateBasicAuth(username, password)
			if err != nil {
				logging.Log.Warnf("AuthMiddleware: Invalid Basic Auth: %v", err)
				writeError(w, http.StatusUnauthorized, "Authentication failed")
				return
			}
		} else {
			writeError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// validateBasicAuth is a helper to check username/password against the database.
func (m *Middleware) validateBasicAuth(username, password string) (*models.User, error) {
	user, err := m.User.GetUserByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("user '%s' not found", username)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("password comparison failed for user '%s'", username)
	}
	return user, nil
}

// RoleMiddleware checks if the authenticated user holds the required role.
func (m *Middleware) RoleMiddleware(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				logging.Log.Warnf("RoleMiddleware: No user found in context for %s", r.URL.Path)
				writeError(w, http.StatusForbidden, "Forbidden")
				return
			}

			if user.Role != requiredRole {
				logging.Log.Warnf("RoleMiddleware: Access DENIED for user '%s'. Missing role '%s' for %s",
					user.Username, requiredRole, r.URL.Path)
				writeError(w, http.StatusForbidden, "Forbidden")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
