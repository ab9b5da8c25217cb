// Package sqlite_test contains integration tests for SQLite repositories.
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() so tests run against the
// authoritative schema. Do not declare tables in test files.
package sqlite_test

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/habits/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	testDB.SetMaxOpenConns(1)

	if _, err := testDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	// Use the authoritative schema from schema.go
	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedHabit inserts a test habit and returns its name.
func seedHabit(t *testing.T, db *sql.DB, name string, frequency int) string {
	t.Helper()
	if name == "" {
		name = "Run"
	}
	if frequency == 0 {
		frequency = 3
	}
	_, err := db.Exec(
		"INSERT INTO habits (name, target_frequency, created_at) VALUES (?, ?, ?)",
		name, frequency, time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("failed to seed habit: %v", err)
	}
	return name
}

// seedCompletion inserts a test completion for a habit.
func seedCompletion(t *testing.T, db *sql.DB, id, habitName string) {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO habit_completions (id, habit_name, completed_at) VALUES (?, ?, ?)",
		id, habitName, time.Date(2026, 1, 6, 7, 30, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("failed to seed completion: %v", err)
	}
}
