package handler

import (
	"flashcards/internal/middleware"
	"flashcards/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	msgError          = "Something went wrong. Please try again later."
	msgPasswordPrompt = "Hi! This bot is private. Send the password to continue:"
	msgWrongPassword  = "Wrong password"
	msgAccessGranted  = "✅ Access granted!"
	msgNoSession      = "No active session. Send /start to begin."
	msgCompleted      = "🎉 All words mastered! Use /reset to start over."
	msgCheckFailed    = "Could not check your answer. Please try again."
	msgHintsOn        = "💡 Hints are on"
	msgHintsOff       = "💡 Hints are off"
	msgHintsDisabled  = "Hints are not available"
	msgReviewDisabled = "Review mode is not available"
)

// Handler manages all bot interactions
type Handler struct {
	bot         *tele.Bot
	sender      messenger
	authService *service.AuthService
	sessions    *service.SessionService
	logger      *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	authService *service.AuthService,
	sessions *service.SessionService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:         bot,
		sender:      bot,
		authService: authService,
		sessions:    sessions,
		logger:      logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Public: /start and free text carry the password gate themselves
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle(tele.OnText, h.handleText)

	protected := h.bot.Group()
	protected.Use(middleware.AuthMiddleware(h.authService, h.logger))

	protected.Handle("/review", h.handleReviewCommand)
	protected.Handle("/reset", h.handleReset)
	protected.Handle("/hints", h.handleHints)

	protected.Handle(&btnSubmit, h.handleSubmit)
	protected.Handle(&btnNext, h.handleNext)
	protected.Handle(&btnChar, h.handleChar)
	protected.Handle(&btnReviewOn, h.handleReviewOn)
	protected.Handle(&btnReviewOff, h.handleReviewOff)
	protected.Handle(&btnReset, h.handleReset)
	protected.Handle(&btnResetYes, h.handleResetAnswer(true))
	protected.Handle(&btnResetNo, h.handleResetAnswer(false))

	// Generic callback handler for stale or malformed buttons
	protected.Handle(tele.OnCallback, h.handleCallback)
}

// Inline keyboard buttons. Handlers match on Unique only.
var (
	btnSubmit = tele.Btn{
		Unique: "submit",
		Text:   "✅ Check",
	}
	btnNext = tele.Btn{
		Unique: "next",
		Text:   "➡️ Next",
	}
	btnChar = tele.Btn{
		Unique: "char",
	}
	btnReviewOn = tele.Btn{
		Unique: "review_on",
		Text:   "🔁 Review",
	}
	btnReviewOff = tele.Btn{
		Unique: "review_off",
		Text:   "⏹ Exit review",
	}
	btnReset = tele.Btn{
		Unique: "reset",
		Text:   "🗑 Reset progress",
	}
	btnResetYes = tele.Btn{
		Unique: "reset_yes",
		Text:   "Yes, reset",
	}
	btnResetNo = tele.Btn{
		Unique: "reset_no",
		Text:   "Cancel",
	}
)

// specialChars are offered as buttons while an answer is being typed
var specialChars = [][]string{
	{"á", "é", "í", "ó", "ú"},
	{"ñ", "ü", "¿", "¡"},
}
