package domain

// Word is a single question served by the flashcard backend
type Word struct {
	ID       int64  `json:"id"`
	English  string `json:"english" validate:"required"`
	Category string `json:"category,omitempty"`
	Hint     string `json:"hint,omitempty"`
	Rank     int    `json:"rank,omitempty"`
}

// NextWord is the response of the next-word endpoints.
// Either Done is set or Word is present.
type NextWord struct {
	Done      bool   `json:"done"`
	Message   string `json:"message,omitempty"`
	Word      *Word  `json:"word,omitempty" validate:"required_unless=Done true"`
	Remaining int    `json:"remaining,omitempty"`
}
