package service

import (
	"errors"
	"testing"

	"flashcards/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestAuthService_CheckPassword(t *testing.T) {
	tests := []struct {
		name           string
		botPassword    string
		inputPassword  string
		expectedResult bool
	}{
		{
			name:           "correct password",
			botPassword:    "secret123",
			inputPassword:  "secret123",
			expectedResult: true,
		},
		{
			name:           "surrounding whitespace",
			botPassword:    "secret123",
			inputPassword:  "  secret123\n",
			expectedResult: true,
		},
		{
			name:           "incorrect password",
			botPassword:    "secret123",
			inputPassword:  "wrong",
			expectedResult: false,
		},
		{
			name:           "empty password",
			botPassword:    "secret123",
			inputPassword:  "",
			expectedResult: false,
		},
		{
			name:           "case sensitive",
			botPassword:    "Secret123",
			inputPassword:  "secret123",
			expectedResult: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockUserRepository)
			service := NewAuthService(mockRepo, tt.botPassword)

			result := service.CheckPassword(tt.inputPassword)

			assert.Equal(t, tt.expectedResult, result)
		})
	}
}

func TestAuthService_IsAuthorized(t *testing.T) {
	tests := []struct {
		name          string
		userID        int64
		mockReturn    bool
		mockError     error
		expectedAuth  bool
		expectedError bool
	}{
		{
			name:         "authorized user",
			userID:       123,
			mockReturn:   true,
			expectedAuth: true,
		},
		{
			name:         "unauthorized user",
			userID:       456,
			mockReturn:   false,
			expectedAuth: false,
		},
		{
			name:          "repository error",
			userID:        789,
			mockError:     errors.New("db down"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockUserRepository)
			mockRepo.On("IsAuthorized", tt.userID).Return(tt.mockReturn, tt.mockError)

			service := NewAuthService(mockRepo, "password")

			authorized, err := service.IsAuthorized(tt.userID)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedAuth, authorized)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_AuthorizeUser(t *testing.T) {
	mockRepo := new(testutil.MockUserRepository)
	mockRepo.On("AuthorizeUser", int64(123)).Return(nil)

	service := NewAuthService(mockRepo, "password")

	err := service.AuthorizeUser(123)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_EnsureUserExists(t *testing.T) {
	mockRepo := new(testutil.MockUserRepository)
	mockRepo.On("EnsureUserExists", int64(123)).Return(nil)

	service := NewAuthService(mockRepo, "password")

	err := service.EnsureUserExists(123)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ToggleHints(t *testing.T) {
	tests := []struct {
		name          string
		current       bool
		readErr       error
		writeErr      error
		expected      bool
		expectedWrite bool
		expectedError bool
	}{
		{
			name:          "turn off",
			current:       true,
			expected:      false,
			expectedWrite: true,
		},
		{
			name:          "turn on",
			current:       false,
			expected:      true,
			expectedWrite: true,
		},
		{
			name:          "read fails",
			readErr:       errors.New("db down"),
			expectedError: true,
		},
		{
			name:          "write fails",
			current:       true,
			writeErr:      errors.New("db down"),
			expectedWrite: true,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockUserRepository)
			mockRepo.On("HintsEnabled", int64(5)).Return(tt.current, tt.readErr)
			if tt.expectedWrite {
				mockRepo.On("SetHintsEnabled", int64(5), !tt.current).Return(tt.writeErr)
			}

			service := NewAuthService(mockRepo, "password")

			enabled, err := service.ToggleHints(5)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, enabled)
			}
			if !tt.expectedWrite {
				mockRepo.AssertNumberOfCalls(t, "SetHintsEnabled", 0)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}
