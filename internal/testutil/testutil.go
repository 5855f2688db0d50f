package testutil

import (
	"flashcards/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestWord creates a word response
func NewTestWord(id int64, english string) *domain.NextWord {
	return &domain.NextWord{
		Word: &domain.Word{ID: id, English: english, Category: "noun"},
	}
}

// NewReviewWord creates a review word response
func NewReviewWord(id int64, english string, remaining int) *domain.NextWord {
	next := NewTestWord(id, english)
	next.Remaining = remaining
	return next
}

// Done is the response once no words are left
func Done() *domain.NextWord {
	return &domain.NextWord{Done: true, Message: "All words mastered!"}
}

// NewTestProgress creates a progress summary
func NewTestProgress(mastered, total int) *domain.Progress {
	return &domain.Progress{Mastered: mastered, TotalWords: total, Accuracy: 80}
}
