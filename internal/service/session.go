package service

import (
	"context"
	"fmt"
	"time"

	"flashcards/internal/domain"
	"flashcards/internal/session"

	"go.uber.org/zap"
)

// SessionService opens chat sessions and cleans up idle ones
type SessionService struct {
	registry *session.Registry
	api      session.API
	features domain.Capabilities
	clock    session.Clock
	logger   *zap.Logger
}

// NewSessionService creates a new session service
func NewSessionService(
	registry *session.Registry,
	api session.API,
	features domain.Capabilities,
	clock session.Clock,
	logger *zap.Logger,
) *SessionService {
	return &SessionService{
		registry: registry,
		api:      api,
		features: features,
		clock:    clock,
		logger:   logger,
	}
}

// Open replaces the session of a chat with a fresh one and shows the first word.
// Hints are shown only when the feature is on and the user wants them.
func (s *SessionService) Open(ctx context.Context, chatID int64, view session.View, hints bool) (*session.Controller, error) {
	caps := s.features
	caps.Hints = caps.Hints && hints

	ctrl := session.New(chatID, s.api, view, session.Options{
		Capabilities: caps,
		Clock:        s.clock,
		Logger:       s.logger,
	})
	s.registry.Put(ctrl)

	s.logger.Info("Session opened",
		zap.Int64("chat_id", chatID),
		zap.Bool("hints", caps.Hints),
		zap.Bool("review", caps.Review),
	)

	if err := ctrl.Start(ctx); err != nil {
		return ctrl, fmt.Errorf("failed to start session: %w", err)
	}
	return ctrl, nil
}

// Get returns the live session of a chat
func (s *SessionService) Get(chatID int64) (*session.Controller, bool) {
	return s.registry.Get(chatID)
}

// HintsAvailable reports whether hints can be shown at all
func (s *SessionService) HintsAvailable() bool {
	return s.features.Hints
}

// ReviewAvailable reports whether review mode is offered
func (s *SessionService) ReviewAvailable() bool {
	return s.features.Review
}

// Count returns the number of live sessions
func (s *SessionService) Count() int {
	return s.registry.Len()
}

// CleanupIdle closes sessions that saw no event for longer than maxIdle
func (s *SessionService) CleanupIdle(maxIdle time.Duration) int {
	s.logger.Info("Starting cleanup of idle sessions", zap.Duration("max_idle", maxIdle))

	evicted := s.registry.EvictIdle(maxIdle)

	s.logger.Info("Cleanup completed",
		zap.Int("evicted", evicted),
		zap.Int("remaining", s.registry.Len()),
	)
	return evicted
}

// CloseAll stops every session, for shutdown
func (s *SessionService) CloseAll() int {
	return s.registry.CloseAll()
}
