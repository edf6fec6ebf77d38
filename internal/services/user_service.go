// filepath: internal/services/user_service.go
package services

import (
	"crypto/rand"
	"fmt"
	"strings"

	"kpihub/internal/config"
	"kpihub/internal/logging"
	"kpihub/internal/models"
	"kpihub/internal/repository"
)

var _ UserService = (*userService)(nil)

// userService handles business logic for user management.
type userService struct {
	Repo *repository.Repository
}

// NewUserService creates a new UserService.
func NewUserService(repo *repository.Repository) *userService {
	return &userService{Repo: repo}
}

// GetUserByUsername retrieves a user by their username.
func (s *userService) GetUserByUsername(username string) (*models.User, error) {
	return s.Repo.GetUserByUsername(username)
}

// GetDepartments returns the distinct departments across all users.
func (s *userService) GetDepartments() ([]string, error) {
	return s.Repo.GetDepartments()
}

// UpdateUserPassword updates a single user's password (e.g., for /api/me).
func (s *userService) UpdateUserPassword(username, password string) error {
	if password == "" {
		return fmt.Errorf("%w: password is required", ErrValidation)
	}
	if err := s.Repo.UpdateUserPassword(username, password); err != nil {
		return err
	}
	// Changing the password revokes any outstanding sessions.
	return s.Repo.DeleteAllRefreshTokensForUser(username)
}

// GetUsers retrieves users matching the filter. All rows are fetched in
// storage order and the filters applied conjunctively in memory; the name
// match is a case-sensitive substring, which SQLite's LIKE cannot express for
// ASCII. "all" (or empty) disables the department and role filters.
func (s *userService) GetUsers(filter models.UserFilter) ([]models.User, error) {
	users, err := s.Repo.GetUsers()
	if err != nil {
		return nil, err
	}

	filtered := make([]models.User, 0, len(users))
	for _, u := range users {
		if filter.NameContains != "" && !strings.Contains(u.Name, filter.NameContains) {
			continue
		}
		if !matchesAll(filter.Department, u.Department) {
			continue
		}
		if !matchesAll(filter.Role, u.Role) {
			continue
		}
		filtered = append(filtered, u)
	}
	return filtered, nil
}

// matchesAll reports whether got passes an exact-match filter where "" and
// "all" act as wildcards.
func matchesAll(want, got string) bool {
	return want == "" || want == "all" || want == got
}

// CreateUser handles the logic for creating a new user.
func (s *userService) CreateUser(args repository.UserCreateArgs) (*models.User, error) {
	if args.Username == "" || args.Name == "" || args.Password == "" {
		return nil, fmt.Errorf("%w: username, name and password are required", ErrValidation)
	}
	if err := validateRole(args.Role); err != nil {
		return nil, err
	}

	logging.Log.Debugf("UserService: Attempting to create user '%s'", args.Username)
	return s.Repo.CreateUser(&args)
}

// UpdateUser overwrites a user's profile; a blank newPassword keeps the
// stored one. The username itself cannot change.
func (s *userService) UpdateUser(username string, profile models.User, newPassword string) (*models.User, error) {
	if profile.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if err := validateRole(profile.Role); err != nil {
		return nil, err
	}
	if username == models.SeedAdminUsername && profile.Role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: the seed admin keeps the admin role", ErrProtectedRecord)
	}

	profile.Username = username
	if err := s.Repo.UpdateUser(&profile, newPassword); err != nil {
		return nil, err
	}
	return s.Repo.GetUserByUsername(username)
}

// DeleteUser handles the logic for deleting a user. The seed admin is never
// deletable, regardless of who asks.
func (s *userService) DeleteUser(username string) error {
	if username == models.SeedAdminUsername {
		return fmt.Errorf("%w: the seed admin cannot be deleted", ErrProtectedRecord)
	}

	logging.Log.Debugf("UserService: Deleting user '%s'", username)
	if err := s.Repo.DeleteUser(username); err != nil {
		return err
	}
	return s.Repo.DeleteAllRefreshTokensForUser(username)
}

func validateRole(role string) error {
	if role != models.RoleAdmin && role != models.RoleUser {
		return fmt.Errorf("%w: role must be %q or %q", ErrValidation, models.RoleAdmin, models.RoleUser)
	}
	return nil
}

// EnsureSeedAdmin guarantees the 'admin' account exists on startup and
// handles password resets requested via flags.
func (s *userService) EnsureSeedAdmin(cfg *config.Config) error {
	adminExists, err := s.Repo.UserExists(models.SeedAdminUsername)
	if err != nil {
		return fmt.Errorf("failed to check for admin user: %w", err)
	}

	if !adminExists {
		return s.createSeedAdmin(cfg.AdminPassword)
	}

	if cfg.ResetAdminPassword {
		return s.resetAdminPassword(cfg.AdminPassword)
	}

	return nil
}

// createSeedAdmin creates the bootstrap administrator account.
func (s *userService) createSeedAdmin(password string) error {
	if password == "" {
		password = generateRandomPassword(10)
		logging.Log.Infof("No admin password provided. Generated a random password for 'admin': %s", password)
	}

	args := &repository.UserCreateArgs{
		Username:   models.SeedAdminUsername,
		Name:       "Administrator",
		Password:   password,
		Role:       models.RoleAdmin,
		Department: "Administration",
		Position:   "System Administrator",
		EmployeeID: "ADMIN001",
	}
	if _, err := s.Repo.CreateUser(args); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	logging.Log.Info("Admin user created successfully.")
	return nil
}

// resetAdminPassword updates the admin's password based on startup flags.
func (s *userService) resetAdminPassword(password string) error {
	if password == "" {
		return fmt.Errorf("cannot reset admin password: --reset-pw is set but no password was provided")
	}
	if err := s.Repo.UpdateUserPassword(models.SeedAdminUsername, password); err != nil {
		return fmt.Errorf("failed to reset admin password: %w", err)
	}
	logging.Log.Info("Admin password has been reset.")
	return nil
}

// generateRandomPassword creates a cryptographically secure random password.
func generateRandomPassword(length int) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		logging.Log.Fatalf("Failed to generate random password: %v", err)
	}
	for i := range b {
		b[i] = chars[int(b[i])%len(chars)]
	}
	return string(b)
}
