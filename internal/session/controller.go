package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"flashcards/internal/domain"

	"go.uber.org/zap"
)

var (
	ErrEmptyAnswer     = errors.New("answer is empty")
	ErrNoWord          = errors.New("no word loaded")
	ErrAlreadyAnswered = errors.New("word already answered")
	ErrNotAnswered     = errors.New("word not answered yet")
	ErrReviewDisabled  = errors.New("review mode is disabled")
	ErrClosed          = errors.New("session closed")
)

// API is the flashcard backend used by a session
type API interface {
	NextWord(ctx context.Context) (*domain.NextWord, error)
	NextReviewWord(ctx context.Context, exclude []int64) (*domain.NextWord, error)
	CheckAnswer(ctx context.Context, wordID int64, answer string) (*domain.AnswerResult, error)
	Progress(ctx context.Context) (*domain.Progress, error)
	ActiveWords(ctx context.Context) (int, error)
	Reset(ctx context.Context) error
}

// Delays configures the session timers
type Delays struct {
	// Advance follows a correct answer with no other accepted answers
	Advance time.Duration
	// AdvanceWithSynonyms leaves time to read the other accepted answers
	AdvanceWithSynonyms time.Duration
	// Focus postpones input focus after a new word is shown
	Focus time.Duration
}

// DefaultDelays returns the standard timings
func DefaultDelays() Delays {
	return Delays{
		Advance:             time.Second,
		AdvanceWithSynonyms: 2500 * time.Millisecond,
		Focus:               50 * time.Millisecond,
	}
}

// Options configures a Controller
type Options struct {
	Capabilities domain.Capabilities
	Delays       Delays
	Clock        Clock
	Logger       *zap.Logger
}

// Controller drives one flashcard session.
//
// Every exported method holds the session lock for its whole duration,
// including backend round trips, so events for a session are handled one
// at a time in arrival order. Timer callbacks take the same lock.
type Controller struct {
	id     int64
	api    API
	view   View
	clock  Clock
	logger *zap.Logger
	delays Delays

	lastActive atomic.Int64

	mu           sync.Mutex
	caps         domain.Capabilities
	word         *domain.Word
	answered     bool
	review       bool
	reviewed     []int64
	reviewedSet  map[int64]struct{}
	draft        domain.AnswerField
	question     uint64
	advance      Timer
	focus        Timer
	closed       bool
	screen       Screen
	dirty        bool
	pendingFocus FocusTarget
}

// New creates an idle session for id. Call Start to show the first word.
func New(id int64, api API, view View, opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Delays == (Delays{}) {
		opts.Delays = DefaultDelays()
	}

	c := &Controller{
		id:          id,
		api:         api,
		view:        view,
		clock:       opts.Clock,
		logger:      opts.Logger.With(zap.Int64("session_id", id)),
		delays:      opts.Delays,
		caps:        opts.Capabilities,
		reviewedSet: make(map[int64]struct{}),
		screen: Screen{
			State:         domain.StateIdle,
			ReviewEnabled: opts.Capabilities.Review,
		},
	}
	c.touch()
	return c
}

// ID returns the session id
func (c *Controller) ID() int64 {
	return c.id
}

// LastActive returns when the session last handled an event
func (c *Controller) LastActive() time.Time {
	return time.Unix(0, c.lastActive.Load())
}

// Screen returns a snapshot of the current screen
func (c *Controller) Screen() Screen {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screen.clone()
}

// State returns the per-question state
func (c *Controller) State() domain.ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screen.State
}

// ReviewedIDs returns the ids shown in the current review pass, in order
func (c *Controller) ReviewedIDs() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]int64(nil), c.reviewed...)
}

// Start loads the first word and the progress summary
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.touch()
	defer c.flush(ctx)

	wordErr := c.loadNextWord(ctx)
	progressErr := c.refreshProgress(ctx)
	return errors.Join(wordErr, progressErr)
}

// Enter handles text typed into the answer field followed by Enter.
// Once the word is answered, Enter moves on to the next word.
func (c *Controller) Enter(ctx context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.touch()
	defer c.flush(ctx)

	if c.answered {
		return c.loadNextWord(ctx)
	}
	// The draft only keeps the typed text once the backend has checked it
	draft := c.draft
	draft.Insert(text)
	if err := c.submit(ctx, draft.Value()); err != nil {
		return err
	}
	c.draft = draft
	return nil
}

// Submit checks raw against the current word
func (c *Controller) Submit(ctx context.Context, raw string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.touch()
	defer c.flush(ctx)

	return c.submit(ctx, raw)
}

// SubmitDraft checks the text accumulated in the answer field
func (c *Controller) SubmitDraft(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.touch()
	defer c.flush(ctx)

	return c.submit(ctx, c.draft.Value())
}

// InsertChar puts a glyph at the caret of the answer field
func (c *Controller) InsertChar(ctx context.Context, char string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.touch()
	defer c.flush(ctx)

	if c.word == nil {
		return ErrNoWord
	}
	if c.answered {
		return ErrAlreadyAnswered
	}

	c.draft.Insert(char)
	c.screen.Draft = c.draft.Value()
	c.dirty = true
	c.pendingFocus = FocusInput
	return nil
}

// Next moves on from an answered word without waiting for auto-advance
func (c *Controller) Next(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.touch()
	defer c.flush(ctx)

	if !c.answered {
		return ErrNotAnswered
	}
	return c.loadNextWord(ctx)
}

// EnterReview starts a review pass over the active words
func (c *Controller) EnterReview(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if !c.caps.Review {
		return ErrReviewDisabled
	}
	c.touch()
	defer c.flush(ctx)

	c.setReview(true)
	return c.loadNextWord(ctx)
}

// ExitReview returns to normal practice
func (c *Controller) ExitReview(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if !c.caps.Review {
		return ErrReviewDisabled
	}
	c.touch()
	defer c.flush(ctx)

	if !c.review {
		return nil
	}
	return c.exitReview(ctx)
}

// RequestReset asks the user to confirm a progress reset
func (c *Controller) RequestReset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.touch()
	defer c.flush(ctx)

	c.screen.ConfirmReset = true
	c.dirty = true
	return nil
}

// ConfirmReset answers the reset prompt. On yes the backend progress is
// wiped, then progress and a new word are loaded.
func (c *Controller) ConfirmReset(ctx context.Context, yes bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.touch()
	defer c.flush(ctx)

	c.screen.ConfirmReset = false
	c.dirty = true
	if !yes {
		return nil
	}

	if err := c.api.Reset(ctx); err != nil {
		c.logger.Error("Failed to reset progress", zap.Error(err))
		return fmt.Errorf("failed to reset progress: %w", err)
	}
	c.logger.Info("Progress reset")

	c.setReview(false)
	progressErr := c.refreshProgress(ctx)
	wordErr := c.loadNextWord(ctx)
	return errors.Join(progressErr, wordErr)
}

// SetHints turns hint display on or off
func (c *Controller) SetHints(ctx context.Context, enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	defer c.flush(ctx)

	c.caps.Hints = enabled
	c.screen.Hint = c.hintFor(c.word)
	c.dirty = true
}

// Close stops pending timers. A closed session ignores further events.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.stopAdvance()
	c.stopFocus()
}

func (c *Controller) submit(ctx context.Context, raw string) error {
	if c.word == nil {
		c.pendingFocus = FocusInput
		return ErrNoWord
	}
	answer := strings.TrimSpace(raw)
	if answer == "" {
		c.pendingFocus = FocusInput
		return ErrEmptyAnswer
	}
	if c.answered {
		return ErrAlreadyAnswered
	}

	result, err := c.api.CheckAnswer(ctx, c.word.ID, answer)
	if err != nil {
		c.logger.Error("Failed to check answer", zap.Int64("word_id", c.word.ID), zap.Error(err))
		return fmt.Errorf("failed to check answer: %w", err)
	}

	c.answered = true
	c.screen.State = domain.StateAnswered
	c.screen.InputEnabled = false
	c.screen.SubmitVisible = false
	c.screen.Draft = answer

	feedback, others := buildFeedback(*result, answer)
	c.screen.Feedback = feedback
	c.dirty = true

	if result.Correct {
		delay := c.delays.Advance
		if len(others) > 0 {
			delay = c.delays.AdvanceWithSynonyms
		}
		c.scheduleAdvance(delay)
	}

	c.logger.Debug("Answer checked",
		zap.Int64("word_id", c.word.ID),
		zap.Bool("correct", result.Correct),
		zap.Bool("mastered", result.Mastered),
		zap.Int("streak", result.Streak),
	)

	// Progress failures leave the previous summary on screen
	_ = c.refreshProgress(ctx)
	c.pendingFocus = FocusNext
	return nil
}

func buildFeedback(result domain.AnswerResult, typed string) (*Feedback, []string) {
	if !result.Correct {
		return &Feedback{
			Icon:         IconIncorrect,
			Text:         MsgIncorrect,
			AnswersLabel: MsgCorrectLabel,
			Answers:      append([]string(nil), result.ValidAnswers...),
		}, nil
	}

	text := MsgCorrect
	if result.Mastered {
		text += MsgMastered
	} else if result.Streak > 1 {
		text += fmt.Sprintf(" Streak: %d", result.Streak)
	}

	others := result.OtherAnswers(typed)
	feedback := &Feedback{Correct: true, Icon: IconCorrect, Text: text}
	if len(others) > 0 {
		feedback.AnswersLabel = MsgSynonymsLabel
		feedback.Answers = others
	}
	return feedback, others
}

// loadNextWord replaces the current word with the next one from the backend
func (c *Controller) loadNextWord(ctx context.Context) error {
	c.stopAdvance()

	var (
		next *domain.NextWord
		err  error
	)
	if c.review {
		next, err = c.api.NextReviewWord(ctx, append([]int64(nil), c.reviewed...))
	} else {
		next, err = c.api.NextWord(ctx)
	}
	if err != nil {
		c.logger.Error("Failed to load word", zap.Bool("review", c.review), zap.Error(err))
		c.screen.Word = MsgWordError
		c.screen.Category = ""
		c.screen.Hint = ""
		c.dirty = true
		return fmt.Errorf("failed to load next word: %w", err)
	}

	if !next.Done && next.Word == nil {
		c.logger.Error("Backend returned neither a word nor done")
		c.screen.Word = MsgWordError
		c.dirty = true
		return fmt.Errorf("failed to load next word: empty response")
	}

	if c.review && !next.Done {
		if _, seen := c.reviewedSet[next.Word.ID]; seen {
			c.logger.Warn("Backend repeated a reviewed word, ending review pass",
				zap.Int64("word_id", next.Word.ID),
			)
			next = &domain.NextWord{Done: true}
		}
	}

	if next.Done {
		if c.review {
			return c.exitReview(ctx)
		}
		c.showCompletion(next.Message)
		return nil
	}

	word := *next.Word
	c.question++
	c.word = &word
	c.answered = false
	c.draft.Clear()

	if c.review {
		c.reviewed = append(c.reviewed, word.ID)
		c.reviewedSet[word.ID] = struct{}{}
		c.screen.ReviewRemaining = next.Remaining
	}

	c.screen.Question = c.question
	c.screen.State = domain.StateAnswering
	c.screen.Word = word.English
	c.screen.Category = word.Category
	c.screen.Hint = c.hintFor(&word)
	c.screen.Draft = ""
	c.screen.InputEnabled = true
	c.screen.SubmitVisible = true
	c.screen.Feedback = nil
	c.screen.CompletionText = ""
	c.dirty = true

	c.scheduleFocus()
	return nil
}

func (c *Controller) showCompletion(message string) {
	if message == "" {
		message = MsgCompleted
	}

	c.word = nil
	c.answered = false
	c.draft.Clear()
	c.stopFocus()

	c.screen.State = domain.StateCompleted
	c.screen.Word = ""
	c.screen.Category = ""
	c.screen.Hint = ""
	c.screen.Draft = ""
	c.screen.InputEnabled = false
	c.screen.SubmitVisible = false
	c.screen.Feedback = nil
	c.screen.CompletionText = message
	c.dirty = true

	c.logger.Info("Session completed")
}

func (c *Controller) exitReview(ctx context.Context) error {
	c.setReview(false)
	wordErr := c.loadNextWord(ctx)
	countErr := c.refreshActiveCount(ctx)
	return errors.Join(wordErr, countErr)
}

func (c *Controller) setReview(on bool) {
	c.review = on
	c.reviewed = nil
	c.reviewedSet = make(map[int64]struct{})
	c.screen.ReviewMode = on
	c.screen.ReviewRemaining = 0
	c.dirty = true
}

func (c *Controller) refreshProgress(ctx context.Context) error {
	progress, err := c.api.Progress(ctx)
	if err != nil {
		c.logger.Error("Failed to load progress", zap.Error(err))
		return fmt.Errorf("failed to load progress: %w", err)
	}

	c.screen.Progress = &ProgressView{
		Mastered:       progress.Mastered,
		TotalWords:     progress.TotalWords,
		Accuracy:       progress.Accuracy,
		TotalPracticed: progress.TotalPracticed,
		TotalCorrect:   progress.TotalCorrect,
		Percent:        progress.Percent(),
	}
	c.dirty = true

	if c.caps.Review {
		return c.refreshActiveCount(ctx)
	}
	return nil
}

func (c *Controller) refreshActiveCount(ctx context.Context) error {
	if !c.caps.Review {
		return nil
	}

	count, err := c.api.ActiveWords(ctx)
	if err != nil {
		c.logger.Error("Failed to load active word count", zap.Error(err))
		return fmt.Errorf("failed to load active word count: %w", err)
	}

	c.screen.ActiveCount = count
	c.screen.ReviewAvailable = count > 0
	c.dirty = true
	return nil
}

func (c *Controller) hintFor(word *domain.Word) string {
	if word == nil || !c.caps.Hints {
		return ""
	}
	return word.Hint
}

func (c *Controller) scheduleAdvance(delay time.Duration) {
	c.stopAdvance()
	question := c.question
	c.advance = c.clock.AfterFunc(delay, func() {
		c.autoAdvance(question)
	})
}

// autoAdvance loads the next word unless the user already moved on
func (c *Controller) autoAdvance(question uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || question != c.question || !c.answered {
		return
	}
	c.advance = nil

	ctx := context.Background()
	defer c.flush(ctx)
	_ = c.loadNextWord(ctx)
}

func (c *Controller) stopAdvance() {
	if c.advance != nil {
		c.advance.Stop()
		c.advance = nil
	}
}

func (c *Controller) scheduleFocus() {
	c.stopFocus()
	question := c.question
	c.focus = c.clock.AfterFunc(c.delays.Focus, func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		if c.closed || question != c.question || c.answered {
			return
		}
		c.focus = nil
		if err := c.view.Focus(context.Background(), FocusInput); err != nil {
			c.logger.Warn("Failed to focus input", zap.Error(err))
		}
	})
}

func (c *Controller) stopFocus() {
	if c.focus != nil {
		c.focus.Stop()
		c.focus = nil
	}
}

// flush renders the screen if it changed, then applies a pending focus
func (c *Controller) flush(ctx context.Context) {
	if c.dirty {
		c.dirty = false
		if err := c.view.Render(ctx, c.screen.clone()); err != nil {
			c.logger.Warn("Failed to render screen", zap.Error(err))
		}
	}
	if c.pendingFocus != "" {
		target := c.pendingFocus
		c.pendingFocus = ""
		if err := c.view.Focus(ctx, target); err != nil {
			c.logger.Warn("Failed to focus", zap.String("target", string(target)), zap.Error(err))
		}
	}
}

func (c *Controller) touch() {
	c.lastActive.Store(c.clock.Now().UnixNano())
}
