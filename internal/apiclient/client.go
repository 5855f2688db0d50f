package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"flashcards/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Backend endpoints
const (
	pathNextWord       = "/api/next-word"
	pathNextReviewWord = "/api/next-review-word"
	pathCheckAnswer    = "/api/check-answer"
	pathProgress       = "/api/progress"
	pathActiveWords    = "/api/active-words"
	pathReset          = "/api/reset"
)

// RequestIDHeader carries the per-call id that is also logged
const RequestIDHeader = "X-Request-ID"

// maxErrorBody bounds how much of a failed response is kept
const maxErrorBody = 4 << 10

// APIError is returned for non-2xx backend responses
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
}

// Client talks to the flashcard backend over HTTP JSON
type Client struct {
	baseURL    string
	httpClient *http.Client
	validate   *validator.Validate
	logger     *zap.Logger
}

// New creates a client for the backend at baseURL
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout}, logger)
}

// NewWithHTTPClient creates a client using the given http.Client
func NewWithHTTPClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		validate:   validator.New(),
		logger:     logger,
	}
}

// NextWord fetches the next question in normal mode
func (c *Client) NextWord(ctx context.Context) (*domain.NextWord, error) {
	var next domain.NextWord
	if err := c.do(ctx, http.MethodGet, pathNextWord, nil, nil, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

// NextReviewWord fetches the next active word, skipping the excluded ids
func (c *Client) NextReviewWord(ctx context.Context, exclude []int64) (*domain.NextWord, error) {
	var query url.Values
	if len(exclude) > 0 {
		ids := make([]string, len(exclude))
		for i, id := range exclude {
			ids[i] = strconv.FormatInt(id, 10)
		}
		query = url.Values{"exclude": {strings.Join(ids, ",")}}
	}

	var next domain.NextWord
	if err := c.do(ctx, http.MethodGet, pathNextReviewWord, query, nil, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

// CheckAnswer submits an answer for a word
func (c *Client) CheckAnswer(ctx context.Context, wordID int64, answer string) (*domain.AnswerResult, error) {
	body := domain.CheckAnswerRequest{WordID: wordID, Answer: answer}

	var result domain.AnswerResult
	if err := c.do(ctx, http.MethodPost, pathCheckAnswer, nil, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Progress fetches the mastery summary
func (c *Client) Progress(ctx context.Context) (*domain.Progress, error) {
	var progress domain.Progress
	if err := c.do(ctx, http.MethodGet, pathProgress, nil, nil, &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

// ActiveWords returns how many words are eligible for review
func (c *Client) ActiveWords(ctx context.Context) (int, error) {
	var active domain.ActiveWords
	if err := c.do(ctx, http.MethodGet, pathActiveWords, nil, nil, &active); err != nil {
		return 0, err
	}
	return active.ActiveCount, nil
}

// Reset wipes all progress on the backend
func (c *Client) Reset(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, pathReset, nil, nil, nil)
}

// do performs one request. A nil out discards the response body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", path, err)
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("Backend call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", requestID),
		zap.Duration("elapsed", time.Since(started)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(method, path, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	if err := c.validate.Struct(out); err != nil {
		return fmt.Errorf("invalid %s response: %w", path, err)
	}

	return nil
}

func newAPIError(method, path string, resp *http.Response) *APIError {
	apiErr := &APIError{Method: method, Path: path, StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return apiErr
	}

	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &payload) == nil && payload.Error != "" {
		apiErr.Message = payload.Error
	} else {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	return apiErr
}
