// filepath: internal/repository/token_repo.go
package repository

import (
	"database/sql"
	"fmt"
	"time"
)

// StoreRefreshToken saves the hash of a refresh token to the database.
func (s *Repository) StoreRefreshToken(username, tokenHash string, expiry time.Time) error {
	_, err := s.DB.Exec(
		"INSERT INTO refresh_tokens (username, token_hash, expiry) VALUES (?, ?, ?)",
		username, tokenHash, expiry.UTC(),
	)
	return err
}

// ValidateRefreshToken checks if a token hash exists and is not expired,
// returning the owning username.
func (s *Repository) ValidateRefreshToken(tokenHash string) (string, error) {
	var username string
	err := s.DB.QueryRow(
		"SELECT username FROM refresh_tokens WHERE token_hash = ? AND expiry > ?",
		tokenHash, time.Now().UTC(),
	).Scan(&username)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("refresh token: %w", ErrNotFound)
		}
		return "", err
	}
	return username, nil
}

// DeleteRefreshToken removes a specific refresh token hash from the database.
func (s *Repository) DeleteRefreshToken(tokenHash string) error {
	_, err := s.DB.Exec("DELETE FROM refresh_tokens WHERE token_hash = ?", tokenHash)
	return err
}

// DeleteAllRefreshTokensForUser revokes every session for a user. Called when
// an account is deleted or its password reset.
func (s *Repository) DeleteAllRefreshTokensForUser(username string) error {
	_, err := s.DB.Exec("DELETE FROM refresh_tokens WHERE username = ?", username)
	return err
}
