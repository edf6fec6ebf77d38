// filepath: internal/services/auth/tokenservice.go
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"kpihub/internal/config"
	"kpihub/internal/models"
	"kpihub/internal/repository"
	"kpihub/internal/services"
)

// accessClaims defines the custom claims for our short-lived access token.
type accessClaims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// refreshClaims defines the claims for our long-lived, stateful refresh token.
type refreshClaims struct {
	jwt.RegisteredClaims
}

// Compile-time check to ensure tokenService implements the TokenService interface.
var _ TokenService = (*tokenService)(nil)

// tokenService implements the TokenService interface.
type tokenService struct {
	cfg     *config.Config
	userSvc services.UserService
	repo    *repository.Repository
}

// NewTokenService creates a new instance of the tokenService.
func NewTokenService(cfg *config.Config, userSvc services.UserService, repo *repository.Repository) TokenService {
	return &tokenService{cfg: cfg, userSvc: userSvc, repo: repo}
}

// hashToken securely hashes a token string (using SHA-256) for database storage.
func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// GenerateSecret creates a cryptographically secure random string. Used by
// the CLI when no JWT secret was configured.
func GenerateSecret() (string, error) {
	bytes := make([]byte, 32) // 256 bits
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// GenerateTokens creates, signs, and stores a new token pair. The subject of
// both tokens is the username; the access token additionally carries the
// display name and role so the UI can render without a second lookup.
func (s *tokenService) GenerateTokens(user *models.User) (string, string, error) {
	accessExpiry := time.Now().Add(time.Minute * time.Duration(s.cfg.JWT.AccessDurationMin))
	access := jwt.NewWithClaims(jwt.SigningMethodHS256, &accessClaims{
		Name: user.Name,
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(accessExpiry),
			Issuer:    "kpihub",
			Subject:   user.Username,
		},
	})
	signedAccessToken, err := access.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshExpiry := time.Now().Add(time.Hour * time.Duration(s.cfg.JWT.RefreshDurationHours))
	jtiBytes := make([]byte, 16)
	if _, err := rand.Read(jtiBytes); err != nil {
		return "", "", fmt.Errorf("failed to generate token id: %w", err)
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, &refreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(refreshExpiry),
			Issuer:    "kpihub",
			Subject:   user.Username,
			ID:        hex.EncodeToString(jtiBytes),
		},
	})
	signedRefreshToken, err := refresh.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	// Store only the hash of the refresh token.
	if err := s.repo.StoreRefreshToken(user.Username, hashToken(signedRefreshToken), refreshExpiry); err != nil {
		return "", "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return signedAccessToken, signedRefreshToken, nil
}

// ValidateAccessToken checks an access token (stateless). It verifies the
// signature and expiry, then returns the associated user.
func (s *tokenService) ValidateAccessToken(tokenString string) (*models.User, error) {
	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err // Handles expired tokens as well
	}
	if !token.Valid {
		return nil, errors.New("invalid access token")
	}

	user, err := s.userSvc.GetUserByUsername(claims.Subject)
	if err != nil {
		return nil, errors.New("user not found for token")
	}
	return user, nil
}

// ValidateRefreshToken checks a refresh token (stateful). It verifies the
// signature AND checks the database to ensure it hasn't been revoked.
func (s *tokenService) ValidateRefreshToken(tokenString string) (*models.User, error) {
	claims := &refreshClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err // Handles expired tokens
	}
	if !token.Valid {
		return nil, errors.New("invalid refresh token signature or claims")
	}

	// Check the database allow-list: a token that was logged out, expired, or
	// never issued fails here even with a valid signature.
	username, err := s.repo.ValidateRefreshToken(hashToken(tokenString))
	if err != nil {
		return nil, fmt.Errorf("token not found in database (revoked or expired): %w", err)
	}

	user, err := s.userSvc.GetUserByUsername(username)
	if err != nil {
		return nil, errors.New("user not found for valid token")
	}
	return user, nil
}

// Logout invalidates a refresh token by deleting its hash from the database.
func (s *tokenService) Logout(refreshToken string) error {
	return s.repo.DeleteRefreshToken(hashToken(refreshToken))
}
