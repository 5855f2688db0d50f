package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"flashcards/internal/domain"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestClient(t *testing.T, router *mux.Router) *Client {
	t.Helper()

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return New(server.URL+"/", time.Second, zap.NewNop())
}

func TestClient_NextWord(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		payload       interface{}
		expected      *domain.NextWord
		expectedError bool
	}{
		{
			name:   "word returned",
			status: http.StatusOK,
			payload: map[string]interface{}{
				"done": false,
				"word": map[string]interface{}{"id": 7, "english": "house", "category": "noun", "hint": "", "rank": 12},
			},
			expected: &domain.NextWord{
				Word: &domain.Word{ID: 7, English: "house", Category: "noun", Rank: 12},
			},
		},
		{
			name:     "all words mastered",
			status:   http.StatusOK,
			payload:  map[string]interface{}{"done": true, "message": "All words mastered!"},
			expected: &domain.NextWord{Done: true, Message: "All words mastered!"},
		},
		{
			name:          "neither done nor word",
			status:        http.StatusOK,
			payload:       map[string]interface{}{"done": false},
			expectedError: true,
		},
		{
			name:          "word without english text",
			status:        http.StatusOK,
			payload:       map[string]interface{}{"word": map[string]interface{}{"id": 3}},
			expectedError: true,
		},
		{
			name:          "server error",
			status:        http.StatusInternalServerError,
			payload:       map[string]interface{}{"error": "boom"},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := mux.NewRouter()
			router.HandleFunc("/api/next-word", func(w http.ResponseWriter, r *http.Request) {
				assert.NotEmpty(t, r.Header.Get(RequestIDHeader))
				writeJSON(w, tt.status, tt.payload)
			}).Methods(http.MethodGet)

			client := newTestClient(t, router)

			next, err := client.NextWord(context.Background())

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, next)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, next)
			}
		})
	}
}

func TestClient_NextReviewWord(t *testing.T) {
	tests := []struct {
		name            string
		exclude         []int64
		expectedExclude string
		hasExclude      bool
	}{
		{
			name:            "with excluded ids",
			exclude:         []int64{4, 9, 15},
			expectedExclude: "4,9,15",
			hasExclude:      true,
		},
		{
			name:       "first review word",
			exclude:    nil,
			hasExclude: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := mux.NewRouter()
			router.HandleFunc("/api/next-review-word", func(w http.ResponseWriter, r *http.Request) {
				_, present := r.URL.Query()["exclude"]
				assert.Equal(t, tt.hasExclude, present)
				assert.Equal(t, tt.expectedExclude, r.URL.Query().Get("exclude"))
				writeJSON(w, http.StatusOK, map[string]interface{}{
					"word":      map[string]interface{}{"id": 21, "english": "tree"},
					"remaining": 3,
				})
			}).Methods(http.MethodGet)

			client := newTestClient(t, router)

			next, err := client.NextReviewWord(context.Background(), tt.exclude)

			require.NoError(t, err)
			assert.Equal(t, int64(21), next.Word.ID)
			assert.Equal(t, 3, next.Remaining)
		})
	}
}

func TestClient_CheckAnswer(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/check-answer", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req domain.CheckAnswerRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(7), req.WordID)
		assert.Equal(t, "Casa", req.Answer)

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"correct":       true,
			"mastered":      false,
			"streak":        2,
			"valid_answers": []string{"casa", "hogar"},
		})
	}).Methods(http.MethodPost)

	client := newTestClient(t, router)

	result, err := client.CheckAnswer(context.Background(), 7, "Casa")

	require.NoError(t, err)
	assert.Equal(t, &domain.AnswerResult{
		Correct:      true,
		Streak:       2,
		ValidAnswers: []string{"casa", "hogar"},
	}, result)
}

func TestClient_CheckAnswer_WordNotFound(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/check-answer", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Word not found"})
	}).Methods(http.MethodPost)

	client := newTestClient(t, router)

	result, err := client.CheckAnswer(context.Background(), 999, "nada")

	assert.Nil(t, result)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Word not found", apiErr.Message)
	assert.Contains(t, apiErr.Error(), "/api/check-answer")
}

func TestClient_Progress(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/progress", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"mastered":        5,
			"total_words":     20,
			"accuracy":        83.3,
			"total_practiced": 12,
			"total_correct":   10,
			"session_count":   1,
			"last_session":    "2026-10-15T09:00:00",
		})
	}).Methods(http.MethodGet)

	client := newTestClient(t, router)

	progress, err := client.Progress(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 5, progress.Mastered)
	assert.Equal(t, 20, progress.TotalWords)
	assert.InDelta(t, 83.3, progress.Accuracy, 0.001)
	assert.Equal(t, 12, progress.TotalPracticed)
	assert.Equal(t, 10, progress.TotalCorrect)
}

func TestClient_ActiveWords(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/active-words", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]int{"active_count": 4})
	}).Methods(http.MethodGet)

	client := newTestClient(t, router)

	count, err := client.ActiveWords(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestClient_Reset(t *testing.T) {
	calls := 0
	router := mux.NewRouter()
	router.HandleFunc("/api/reset", func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "", r.Header.Get("Content-Type"))
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Progress reset successfully"})
	}).Methods(http.MethodPost)

	client := newTestClient(t, router)

	err := client.Reset(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestClient_MalformedBody(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/progress", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html>not json</html>"))
	})

	client := newTestClient(t, router)

	progress, err := client.Progress(context.Background())

	assert.Nil(t, progress)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestClient_PlainTextError(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/active-words", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	})

	client := newTestClient(t, router)

	_, err := client.ActiveWords(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Equal(t, "maintenance", apiErr.Message)
}

func TestClient_CanceledContext(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/next-word", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"done": true})
	})

	client := newTestClient(t, router)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	next, err := client.NextWord(ctx)

	assert.Nil(t, next)
	assert.ErrorIs(t, err, context.Canceled)
}
