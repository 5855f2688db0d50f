package postgres

import (
	"database/sql"
	"errors"
	"fmt"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// IsAuthorized reports whether the user has passed the password gate.
// Unknown users are not authorized.
func (r *UserRepo) IsAuthorized(userID int64) (bool, error) {
	var authorized bool
	query := `SELECT authorized FROM users WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&authorized)

	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query authorization: %w", err)
	}

	return authorized, nil
}

// AuthorizeUser marks user as authorized
func (r *UserRepo) AuthorizeUser(userID int64) error {
	query := `
		INSERT INTO users (user_id, authorized)
		VALUES ($1, TRUE)
		ON CONFLICT (user_id)
		DO UPDATE SET authorized = TRUE
	`
	if _, err := r.db.Exec(query, userID); err != nil {
		return fmt.Errorf("failed to authorize user: %w", err)
	}
	return nil
}

// EnsureUserExists creates user if not exists
func (r *UserRepo) EnsureUserExists(userID int64) error {
	query := `
		INSERT INTO users (user_id, authorized)
		VALUES ($1, FALSE)
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := r.db.Exec(query, userID); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// HintsEnabled returns the hint preference of a user, true when the user is unknown
func (r *UserRepo) HintsEnabled(userID int64) (bool, error) {
	var enabled bool
	query := `SELECT hints_enabled FROM users WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&enabled)

	if errors.Is(err, sql.ErrNoRows) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query hint preference: %w", err)
	}

	return enabled, nil
}

// SetHintsEnabled stores the hint preference of a user
func (r *UserRepo) SetHintsEnabled(userID int64, enabled bool) error {
	query := `
		INSERT INTO users (user_id, hints_enabled)
		VALUES ($1, $2)
		ON CONFLICT (user_id)
		DO UPDATE SET hints_enabled = EXCLUDED.hints_enabled
	`
	if _, err := r.db.Exec(query, userID, enabled); err != nil {
		return fmt.Errorf("failed to store hint preference: %w", err)
	}
	return nil
}
