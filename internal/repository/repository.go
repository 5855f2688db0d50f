package repository

// UserRepository stores chat users and their preferences
type UserRepository interface {
	IsAuthorized(userID int64) (bool, error)
	AuthorizeUser(userID int64) error
	EnsureUserExists(userID int64) error
	HintsEnabled(userID int64) (bool, error)
	SetHintsEnabled(userID int64, enabled bool) error
}
