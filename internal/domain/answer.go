package domain

import "strings"

// CheckAnswerRequest is the body posted to the check-answer endpoint
type CheckAnswerRequest struct {
	WordID int64  `json:"word_id"`
	Answer string `json:"answer"`
}

// AnswerResult is the backend verdict for one submission
type AnswerResult struct {
	Correct      bool     `json:"correct"`
	Mastered     bool     `json:"mastered"`
	Streak       int      `json:"streak"`
	ValidAnswers []string `json:"valid_answers"`
}

// OtherAnswers returns the accepted answers except the one the user typed.
// Comparison ignores case and surrounding whitespace; order is preserved.
func (r AnswerResult) OtherAnswers(typed string) []string {
	typed = strings.ToLower(strings.TrimSpace(typed))

	var others []string
	for _, answer := range r.ValidAnswers {
		if strings.ToLower(strings.TrimSpace(answer)) == typed {
			continue
		}
		others = append(others, answer)
	}
	return others
}
