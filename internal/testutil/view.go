package testutil

import (
	"context"
	"sync"

	"flashcards/internal/session"
)

// RecordingView keeps every screen and focus request it receives
type RecordingView struct {
	mu      sync.Mutex
	screens []session.Screen
	focuses []session.FocusTarget
}

// NewRecordingView creates an empty view
func NewRecordingView() *RecordingView {
	return &RecordingView{}
}

func (v *RecordingView) Render(_ context.Context, screen session.Screen) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.screens = append(v.screens, screen)
	return nil
}

func (v *RecordingView) Focus(_ context.Context, target session.FocusTarget) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.focuses = append(v.focuses, target)
	return nil
}

// Last returns the most recent screen
func (v *RecordingView) Last() session.Screen {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.screens) == 0 {
		return session.Screen{}
	}
	return v.screens[len(v.screens)-1]
}

// Renders returns how many screens were rendered
func (v *RecordingView) Renders() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.screens)
}

// Focuses returns the focus requests in order
func (v *RecordingView) Focuses() []session.FocusTarget {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]session.FocusTarget(nil), v.focuses...)
}
