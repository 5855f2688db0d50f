package postgres

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepo_IsAuthorized(t *testing.T) {
	tests := []struct {
		name          string
		userID        int64
		mockRows      *sqlmock.Rows
		mockError     error
		expectedAuth  bool
		expectedError bool
	}{
		{
			name:         "authorized user",
			userID:       123,
			mockRows:     sqlmock.NewRows([]string{"authorized"}).AddRow(true),
			expectedAuth: true,
		},
		{
			name:         "unauthorized user",
			userID:       456,
			mockRows:     sqlmock.NewRows([]string{"authorized"}).AddRow(false),
			expectedAuth: false,
		},
		{
			name:         "user not exists",
			userID:       789,
			mockError:    sql.ErrNoRows,
			expectedAuth: false,
		},
		{
			name:          "database error",
			userID:        321,
			mockError:     errors.New("connection reset"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			repo := NewUserRepo(db)

			query := "SELECT authorized FROM users WHERE user_id = \\$1"

			if tt.mockError != nil {
				mock.ExpectQuery(query).WithArgs(tt.userID).WillReturnError(tt.mockError)
			} else {
				mock.ExpectQuery(query).WithArgs(tt.userID).WillReturnRows(tt.mockRows)
			}

			authorized, err := repo.IsAuthorized(tt.userID)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedAuth, authorized)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepo_AuthorizeUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)

	userID := int64(123)

	mock.ExpectExec("INSERT INTO users").
		WithArgs(userID).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.AuthorizeUser(userID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_EnsureUserExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)

	userID := int64(123)

	mock.ExpectExec("INSERT INTO users").
		WithArgs(userID).
		WillReturnError(errors.New("disk full"))

	err = repo.EnsureUserExists(userID)

	assert.ErrorContains(t, err, "failed to create user")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_HintsEnabled(t *testing.T) {
	tests := []struct {
		name            string
		mockRows        *sqlmock.Rows
		mockError       error
		expectedEnabled bool
		expectedError   bool
	}{
		{
			name:            "enabled",
			mockRows:        sqlmock.NewRows([]string{"hints_enabled"}).AddRow(true),
			expectedEnabled: true,
		},
		{
			name:            "disabled",
			mockRows:        sqlmock.NewRows([]string{"hints_enabled"}).AddRow(false),
			expectedEnabled: false,
		},
		{
			name:            "unknown user defaults to enabled",
			mockError:       sql.ErrNoRows,
			expectedEnabled: true,
		},
		{
			name:          "database error",
			mockError:     errors.New("timeout"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			repo := NewUserRepo(db)
			query := "SELECT hints_enabled FROM users WHERE user_id = \\$1"

			if tt.mockError != nil {
				mock.ExpectQuery(query).WithArgs(int64(42)).WillReturnError(tt.mockError)
			} else {
				mock.ExpectQuery(query).WithArgs(int64(42)).WillReturnRows(tt.mockRows)
			}

			enabled, err := repo.HintsEnabled(42)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedEnabled, enabled)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepo_SetHintsEnabled(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)

	mock.ExpectExec("INSERT INTO users \\(user_id, hints_enabled\\)").
		WithArgs(int64(42), false).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.SetHintsEnabled(42, false)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
