// filepath: internal/repository/user_repo.go
package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"kpihub/internal/logging"
	"kpihub/internal/models"
)

// UserCreateArgs is a struct used for creating users in the database layer.
// It is separate from models.User to include the plaintext password.
type UserCreateArgs struct {
	Username   string
	Name       string
	Password   string
	Role       string
	Department string
	Position   string
	EmployeeID string
}

const userColumns = "username, name, password, role, department, position, employee_id"

func scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.Username, &user.Name, &user.PasswordHash, &user.Role,
		&user.Department, &user.Position, &user.EmployeeID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by their username, using a cache for performance.
func (s *Repository) GetUserByUsername(username string) (*models.User, error) {
	cacheKey := fmt.Sprintf("user_%s", username)
	if user, found := s.Cache.Get(cacheKey); found {
		return user.(*models.User), nil
	}

	logging.Log.Debugf("GetUserByUsername: CACHE MISS for '%s'. Querying DB.", username)
	query := "SELECT " + userColumns + " FROM users WHERE username = ?"
	user, err := scanUser(s.DB.QueryRow(query, username))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
		}
		return nil, err
	}

	s.Cache.Set(cacheKey, user, 5*time.Minute)
	return user, nil
}

// UserExists checks if a user with the given username exists.
func (s *Repository) UserExists(username string) (bool, error) {
	_, err := s.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// CreateUser hashes the password and inserts a new user row.
func (s *Repository) CreateUser(args *UserCreateArgs) (*models.User, error) {
	logging.Log.Debugf("CreateUser: Hashing password for '%s'", args.Username)
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(args.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO users (username, name, password, role, department, position, employee_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = s.DB.Exec(query, args.Username, args.Name, string(hashedPassword),
		args.Role, args.Department, args.Position, args.EmployeeID)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.username") {
			return nil, ErrUserExists
		}
		return nil, err
	}

	logging.Log.Debugf("CreateUser: User '%s' created", args.Username)

	return &models.User{
		Username:     args.Username,
		Name:         args.Name,
		PasswordHash: string(hashedPassword),
		Role:         args.Role,
		Department:   args.Department,
		Position:     args.Position,
		EmployeeID:   args.EmployeeID,
	}, nil
}

// UpdateUser overwrites a user's profile fields and optionally the password.
// A blank newPassword leaves the stored hash untouched. Updating a username
// that does not exist returns ErrNotFound.
func (s *Repository) UpdateUser(user *models.User, newPassword string) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		UPDATE users
		SET name = ?, department = ?, position = ?, employee_id = ?, role = ?
		WHERE username = ?
	`
	res, err := tx.Exec(query, user.Name, user.Department, user.Position,
		user.EmployeeID, user.Role, user.Username)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("user %q: %w", user.Username, ErrNotFound)
	}

	if strings.TrimSpace(newPassword) != "" {
		logging.Log.Debugf("UpdateUser: New password provided for '%s'. Re-hashing.", user.Username)
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if _, err := tx.Exec("UPDATE users SET password = ? WHERE username = ?",
			string(hashedPassword), user.Username); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.Cache.Delete(fmt.Sprintf("user_%s", user.Username))
	return nil
}

// UpdateUserPassword replaces a single user's password.
func (s *Repository) UpdateUserPassword(username, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	res, err := s.DB.Exec("UPDATE users SET password = ? WHERE username = ?",
		string(hashedPassword), username)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("user %q: %w", username, ErrNotFound)
	}

	s.Cache.Delete(fmt.Sprintf("user_%s", username))
	return nil
}

// GetUsers retrieves all users in storage insertion order.
func (s *Repository) GetUsers() ([]models.User, error) {
	rows, err := s.DB.Query("SELECT " + userColumns + " FROM users")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// GetDepartments returns the distinct department values across all users.
func (s *Repository) GetDepartments() ([]string, error) {
	rows, err := s.DB.Query("SELECT DISTINCT department FROM users")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	departments := make([]string, 0)
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

// DeleteUser deletes a user by username. The seed-admin guard lives in the
// service layer, not here.
func (s *Repository) DeleteUser(username string) error {
	res, err := s.DB.Exec("DELETE FROM users WHERE username = ?", username)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("user %q: %w", username, ErrNotFound)
	}

	s.Cache.Delete(fmt.Sprintf("user_%s", username))
	return nil
}
