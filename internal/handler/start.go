package handler

import (
	"context"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start command. Like reloading the page, it always
// begins a fresh session.
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

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
		return c.Send(msgPasswordPrompt)
	}

	return h.openSession(c)
}

// openSession replaces the chat session and shows the first word
func (h *Handler) openSession(c tele.Context) error {
	userID := c.Sender().ID
	chat := c.Chat()

	hints, err := h.authService.HintsEnabled(userID)
	if err != nil {
		h.logger.Warn("Failed to load hint preference, using default",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		hints = true
	}

	view := newChatView(h.sender, chat, h.logger)
	if _, err := h.sessions.Open(context.Background(), chat.ID, view, hints); err != nil {
		// The card already tells the user what went wrong
		h.logger.Error("Failed to start session",
			zap.Int64("chat_id", chat.ID),
			zap.Error(err),
		)
	}
	return nil
}
