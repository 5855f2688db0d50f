package handler

import (
	"context"

	"flashcards/internal/session"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleReviewCommand toggles review mode
func (h *Handler) handleReviewCommand(c tele.Context) error {
	if !h.sessions.ReviewAvailable() {
		return c.Send(msgReviewDisabled)
	}

	return h.withSession(c, msgError, func(ctx context.Context, ctrl *session.Controller) error {
		if ctrl.Screen().ReviewMode {
			return ctrl.ExitReview(ctx)
		}
		return ctrl.EnterReview(ctx)
	})
}

// handleHints toggles the hint preference of the user
func (h *Handler) handleHints(c tele.Context) error {
	if !h.sessions.HintsAvailable() {
		return c.Send(msgHintsDisabled)
	}

	userID := c.Sender().ID
	enabled, err := h.authService.ToggleHints(userID)
	if err != nil {
		h.logger.Error("Failed to toggle hints", zap.Int64("user_id", userID), zap.Error(err))
		return c.Send(msgError)
	}

	if ctrl, ok := h.sessions.Get(c.Chat().ID); ok {
		ctrl.SetHints(context.Background(), enabled)
	}

	if enabled {
		return c.Send(msgHintsOn)
	}
	return c.Send(msgHintsOff)
}
