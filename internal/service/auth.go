package service

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"flashcards/internal/repository"
)

// AuthService handles the password gate and per-user preferences
type AuthService struct {
	userRepo    repository.UserRepository
	botPassword string
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, botPassword string) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		botPassword: botPassword,
	}
}

// CheckPassword verifies if provided password matches
func (s *AuthService) CheckPassword(password string) bool {
	password = strings.TrimSpace(password)
	if password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.botPassword)) == 1
}

// IsAuthorized checks if user is authorized
func (s *AuthService) IsAuthorized(userID int64) (bool, error) {
	return s.userRepo.IsAuthorized(userID)
}

// AuthorizeUser authorizes a user
func (s *AuthService) AuthorizeUser(userID int64) error {
	return s.userRepo.AuthorizeUser(userID)
}

// EnsureUserExists creates user record if doesn't exist
func (s *AuthService) EnsureUserExists(userID int64) error {
	return s.userRepo.EnsureUserExists(userID)
}

// HintsEnabled returns whether the user wants hints shown
func (s *AuthService) HintsEnabled(userID int64) (bool, error) {
	return s.userRepo.HintsEnabled(userID)
}

// ToggleHints flips the hint preference and returns the new value
func (s *AuthService) ToggleHints(userID int64) (bool, error) {
	enabled, err := s.userRepo.HintsEnabled(userID)
	if err != nil {
		return false, fmt.Errorf("failed to read hint preference: %w", err)
	}

	enabled = !enabled
	if err := s.userRepo.SetHintsEnabled(userID, enabled); err != nil {
		return false, fmt.Errorf("failed to toggle hints: %w", err)
	}
	return enabled, nil
}
