package handler

import (
	"context"
	"strings"
	"sync"

	"flashcards/internal/session"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// messenger is the part of *tele.Bot a chat view needs
type messenger interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
	Edit(msg tele.Editable, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// chatView shows a session as one card message per word. Updates to the
// same word edit the card in place.
type chatView struct {
	bot    messenger
	chat   tele.Recipient
	logger *zap.Logger

	mu       sync.Mutex
	card     *tele.Message
	question uint64
}

var _ session.View = (*chatView)(nil)

func newChatView(bot messenger, chat tele.Recipient, logger *zap.Logger) *chatView {
	return &chatView{bot: bot, chat: chat, logger: logger}
}

// Render implements session.View
func (v *chatView) Render(_ context.Context, screen session.Screen) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	text := formatCard(screen)
	markup := cardMarkup(screen)

	if v.card != nil && screen.Question == v.question {
		_, err := v.bot.Edit(v.card, text, markup)
		if err == nil || isNotModified(err) {
			return nil
		}
		v.logger.Warn("Failed to edit card, sending new",
			zap.String("chat", v.chat.Recipient()),
			zap.Error(err),
		)
	}

	msg, err := v.bot.Send(v.chat, text, markup)
	if err != nil {
		return err
	}
	v.card = msg
	v.question = screen.Question
	return nil
}

// Focus implements session.View. Telegram has no input focus: the reply
// box is always active and the card keyboard already shows the next action.
func (v *chatView) Focus(context.Context, session.FocusTarget) error {
	return nil
}

// isNotModified reports an edit that would leave the message unchanged
func isNotModified(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
