package testutil

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/vytor/openingroi/internal/db"
	"github.com/vytor/openingroi/internal/models"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// A single connection keeps every query on the same in-memory database.
func NewTestDB(t *testing.T) *sql.DB {
	sqlDB, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(context.Background(), sqlDB))
	return sqlDB
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// Rating returns a pointer to r for building game fixtures.
func Rating(r int) *int {
	return &r
}

// Game builds a rated game record.
func Game(eco string, white, black int, result models.Result) models.GameRecord {
	return models.GameRecord{
		OpeningCode: eco,
		WhiteRating: Rating(white),
		BlackRating: Rating(black),
		Result:      result,
	}
}
