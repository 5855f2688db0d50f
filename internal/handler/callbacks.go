package handler

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"flashcards/internal/session"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// isSpecialChar reports whether char is one of the keyboard glyphs
func isSpecialChar(char string) bool {
	for _, line := range specialChars {
		for _, c := range line {
			if c == char {
				return true
			}
		}
	}
	return false
}

type sessionOp func(ctx context.Context, ctrl *session.Controller) error

// withSession runs op on the chat session and reports the outcome to the user.
// failure is shown for errors that are not a normal part of the flow.
func (h *Handler) withSession(c tele.Context, failure string, op sessionOp) error {
	ctrl, ok := h.sessions.Get(c.Chat().ID)
	if !ok {
		return h.respond(c, msgNoSession)
	}

	err := op(context.Background(), ctrl)
	if err == nil {
		return h.respond(c, "")
	}

	if text, known := flowMessage(err); known {
		return h.respond(c, text)
	}

	h.logger.Error("Session operation failed",
		zap.Int64("chat_id", c.Chat().ID),
		zap.Error(err),
	)
	return h.respond(c, failure)
}

// flowMessage maps the expected session errors to a short notice
func flowMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, session.ErrAlreadyAnswered):
		return "", true
	case errors.Is(err, session.ErrEmptyAnswer):
		return "Type an answer first", true
	case errors.Is(err, session.ErrNotAnswered):
		return "Answer the current word first", true
	case errors.Is(err, session.ErrReviewDisabled):
		return msgReviewDisabled, true
	case errors.Is(err, session.ErrNoWord), errors.Is(err, session.ErrClosed):
		return msgNoSession, true
	}
	return "", false
}

// respond acknowledges a button press with an optional notice, or sends
// the notice to the chat for commands
func (h *Handler) respond(c tele.Context, text string) error {
	if c.Callback() != nil {
		if text == "" {
			return c.Respond()
		}
		return c.Respond(&tele.CallbackResponse{Text: text})
	}
	if text == "" {
		return nil
	}
	return c.Send(text)
}

func (h *Handler) handleSubmit(c tele.Context) error {
	return h.withSession(c, msgCheckFailed, func(ctx context.Context, ctrl *session.Controller) error {
		return ctrl.SubmitDraft(ctx)
	})
}

func (h *Handler) handleNext(c tele.Context) error {
	return h.withSession(c, msgError, func(ctx context.Context, ctrl *session.Controller) error {
		return ctrl.Next(ctx)
	})
}

func (h *Handler) handleChar(c tele.Context) error {
	char := cleanCallbackData(c.Callback().Data)
	if !isSpecialChar(char) {
		h.logger.Warn("Unknown character button", zap.String("data", char))
		return c.Respond()
	}

	return h.withSession(c, msgError, func(ctx context.Context, ctrl *session.Controller) error {
		return ctrl.InsertChar(ctx, char)
	})
}

func (h *Handler) handleReviewOn(c tele.Context) error {
	return h.withSession(c, msgError, func(ctx context.Context, ctrl *session.Controller) error {
		return ctrl.EnterReview(ctx)
	})
}

func (h *Handler) handleReviewOff(c tele.Context) error {
	return h.withSession(c, msgError, func(ctx context.Context, ctrl *session.Controller) error {
		return ctrl.ExitReview(ctx)
	})
}

func (h *Handler) handleReset(c tele.Context) error {
	return h.withSession(c, msgError, func(ctx context.Context, ctrl *session.Controller) error {
		return ctrl.RequestReset(ctx)
	})
}

func (h *Handler) handleResetAnswer(yes bool) tele.HandlerFunc {
	return func(c tele.Context) error {
		return h.withSession(c, msgError, func(ctx context.Context, ctrl *session.Controller) error {
			return ctrl.ConfirmReset(ctx, yes)
		})
	}
}

// handleCallback acknowledges buttons no other handler claimed, such as
// keyboards left over from before a restart
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	h.logger.Warn("Unhandled callback",
		zap.String("data", cleanCallbackData(callback.Data)),
		zap.String("unique", callback.Unique),
		zap.Int64("user_id", c.Sender().ID),
	)
	return c.Respond(&tele.CallbackResponse{Text: msgNoSession})
}
