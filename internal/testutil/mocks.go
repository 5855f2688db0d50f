package testutil

import (
	"context"

	"flashcards/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) IsAuthorized(userID int64) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) AuthorizeUser(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepository) EnsureUserExists(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepository) HintsEnabled(userID int64) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) SetHintsEnabled(userID int64, enabled bool) error {
	args := m.Called(userID, enabled)
	return args.Error(0)
}

// MockAPI is a mock for the flashcard backend
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) NextWord(ctx context.Context) (*domain.NextWord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NextWord), args.Error(1)
}

func (m *MockAPI) NextReviewWord(ctx context.Context, exclude []int64) (*domain.NextWord, error) {
	args := m.Called(ctx, exclude)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NextWord), args.Error(1)
}

func (m *MockAPI) CheckAnswer(ctx context.Context, wordID int64, answer string) (*domain.AnswerResult, error) {
	args := m.Called(ctx, wordID, answer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnswerResult), args.Error(1)
}

func (m *MockAPI) Progress(ctx context.Context) (*domain.Progress, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Progress), args.Error(1)
}

func (m *MockAPI) ActiveWords(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockAPI) Reset(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// CallOrder returns the names of the methods called on m, in order
func CallOrder(m *mock.Mock) []string {
	names := make([]string, 0, len(m.Calls))
	for _, call := range m.Calls {
		names = append(names, call.Method)
	}
	return names
}
