package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnswerResult_OtherAnswers(t *testing.T) {
	tests := []struct {
		name     string
		valid    []string
		typed    string
		expected []string
	}{
		{
			name:     "typed answer differs in case",
			valid:    []string{"casa", "hogar"},
			typed:    "Casa",
			expected: []string{"hogar"},
		},
		{
			name:     "typed answer with surrounding spaces",
			valid:    []string{"empezar", "comenzar"},
			typed:    "  comenzar ",
			expected: []string{"empezar"},
		},
		{
			name:     "single valid answer",
			valid:    []string{"perro"},
			typed:    "perro",
			expected: nil,
		},
		{
			name:     "order preserved",
			valid:    []string{"carro", "coche", "auto"},
			typed:    "coche",
			expected: []string{"carro", "auto"},
		},
		{
			name:     "no valid answers",
			valid:    nil,
			typed:    "algo",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := AnswerResult{Correct: true, ValidAnswers: tt.valid}
			assert.Equal(t, tt.expected, result.OtherAnswers(tt.typed))
		})
	}
}
