package domain

// ViewState is the per-question state of a session
type ViewState string

const (
	StateIdle      ViewState = "idle"
	StateAnswering ViewState = "answering"
	StateAnswered  ViewState = "answered"
	StateCompleted ViewState = "completed"
)

// Capabilities selects the optional session features
type Capabilities struct {
	Hints  bool
	Review bool
}
