package session

import (
	"context"

	"flashcards/internal/domain"
)

// Messages shown by the controller
const (
	MsgWordError     = "Error loading word. Please refresh."
	MsgCorrect       = "Correct!"
	MsgMastered      = " Word mastered!"
	MsgIncorrect     = "Not quite right"
	MsgCorrectLabel  = "Correct answers:"
	MsgSynonymsLabel = "Also accepted:"
	MsgCompleted     = "All words mastered!"
	MsgConfirmReset  = "Are you sure you want to reset all progress? This cannot be undone."
	IconCorrect      = "✓"
	IconIncorrect    = "✗"
)

// FocusTarget names the control that should receive input focus
type FocusTarget string

const (
	FocusInput FocusTarget = "input"
	FocusNext  FocusTarget = "next"
)

// Feedback is the verdict panel shown after a submission
type Feedback struct {
	Correct      bool
	Icon         string
	Text         string
	AnswersLabel string
	Answers      []string
}

// ProgressView is the rendered progress summary
type ProgressView struct {
	Mastered       int
	TotalWords     int
	Accuracy       float64
	TotalPracticed int
	TotalCorrect   int
	Percent        float64
}

// Screen is a full snapshot of what a session displays.
// Question changes whenever a new word is loaded.
type Screen struct {
	Question        uint64
	State           domain.ViewState
	Word            string
	Category        string
	Hint            string
	Draft           string
	InputEnabled    bool
	SubmitVisible   bool
	Feedback        *Feedback
	Progress        *ProgressView
	CompletionText  string
	ReviewEnabled   bool
	ReviewAvailable bool
	ActiveCount     int
	ReviewMode      bool
	ReviewRemaining int
	ConfirmReset    bool
}

// View displays screens for one session
type View interface {
	Render(ctx context.Context, screen Screen) error
	Focus(ctx context.Context, target FocusTarget) error
}

// clone returns a copy that shares no slices with s
func (s Screen) clone() Screen {
	if s.Feedback != nil {
		fb := *s.Feedback
		fb.Answers = append([]string(nil), s.Feedback.Answers...)
		s.Feedback = &fb
	}
	if s.Progress != nil {
		p := *s.Progress
		s.Progress = &p
	}
	return s
}
