package handler

import (
	"context"
	"errors"
	"strings"

	"flashcards/internal/domain"
	"flashcards/internal/session"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText handles typed messages: the password for new users, answers
// for everyone else
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := c.Text()

	// Commands have their own handlers
	if strings.HasPrefix(strings.TrimSpace(text), "/") {
		return nil
	}

	if err := h.authService.EnsureUserExists(userID); err != nil {
		h.logger.Error("Failed to ensure user exists", zap.Error(err))
		return c.Send(msgError)
	}

	authorized, err := h.authService.IsAuthorized(userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send(msgError)
	}

	if !authorized {
		if !h.authService.CheckPassword(text) {
			return c.Send(msgWrongPassword)
		}

		if err := h.authService.AuthorizeUser(userID); err != nil {
			h.logger.Error("Failed to authorize user", zap.Error(err))
			return c.Send(msgError)
		}

		h.logger.Info("User authorized", zap.Int64("user_id", userID))
		if err := c.Send(msgAccessGranted); err != nil {
			return err
		}
		return h.openSession(c)
	}

	ctrl, ok := h.sessions.Get(c.Chat().ID)
	if !ok {
		// Sessions are evicted when idle; pick up where the user left off
		return h.openSession(c)
	}

	err = ctrl.Enter(context.Background(), text)
	switch {
	case err == nil,
		errors.Is(err, session.ErrEmptyAnswer),
		errors.Is(err, session.ErrAlreadyAnswered):
		return nil
	case errors.Is(err, session.ErrNoWord):
		if ctrl.State() == domain.StateCompleted {
			return c.Send(msgCompleted)
		}
		return c.Send(msgNoSession)
	case errors.Is(err, session.ErrClosed):
		return c.Send(msgNoSession)
	default:
		h.logger.Error("Failed to handle answer",
			zap.Int64("chat_id", c.Chat().ID),
			zap.Error(err),
		)
		return c.Send(msgError)
	}
}
