package middleware

import (
	"flashcards/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	msgError          = "Something went wrong. Please try again later."
	msgPasswordPrompt = "Hi! This bot is private. Send the password to continue:"
)

// AuthMiddleware lets only authorized users through. Others are asked
// for the password.
func AuthMiddleware(authService *service.AuthService, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			userID := c.Sender().ID

			if err := authService.EnsureUserExists(userID); err != nil {
				logger.Error("Failed to ensure user exists in middleware", zap.Error(err))
				return reply(c, msgError)
			}

			authorized, err := authService.IsAuthorized(userID)
			if err != nil {
				logger.Error("Failed to check authorization in middleware", zap.Error(err))
				return reply(c, msgError)
			}

			if !authorized {
				logger.Debug("Rejected unauthorized user", zap.Int64("user_id", userID))
				return reply(c, msgPasswordPrompt)
			}

			return next(c)
		}
	}
}

// reply acknowledges a button press before sending text to the chat
func reply(c tele.Context, text string) error {
	if c.Callback() != nil {
		if err := c.Respond(); err != nil {
			return err
		}
	}
	return c.Send(text)
}
