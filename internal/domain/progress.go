package domain

// Progress is the mastery summary reported by the backend
type Progress struct {
	Mastered       int     `json:"mastered"`
	TotalWords     int     `json:"total_words"`
	Accuracy       float64 `json:"accuracy"`
	TotalPracticed int     `json:"total_practiced,omitempty"`
	TotalCorrect   int     `json:"total_correct,omitempty"`
	SessionCount   int     `json:"session_count,omitempty"`
	LastSession    string  `json:"last_session,omitempty"`
}

// Percent returns the mastered share in [0, 100].
// An empty word list counts as 0%.
func (p Progress) Percent() float64 {
	if p.TotalWords <= 0 {
		return 0
	}
	return float64(p.Mastered) / float64(p.TotalWords) * 100
}

// ActiveWords is the response of the active-words endpoint
type ActiveWords struct {
	ActiveCount int `json:"active_count"`
}
