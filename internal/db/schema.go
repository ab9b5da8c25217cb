package db

import "database/sql"

// SchemaSQL is the complete schema for the habits database.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. Repository tests
// load it through GetSchemaSQL() rather than declaring their own tables.
//
// habits.position records insertion order and survives a re-add of the same
// name, which updates the row in place.
const SchemaSQL = `
-- Habits (one row per habit name)
CREATE TABLE IF NOT EXISTS habits (
	position INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE CHECK(length(trim(name)) > 0),
	target_frequency INTEGER NOT NULL,
	created_at DATETIME NOT NULL
);

-- Habit completions (append-only log per habit)
CREATE TABLE IF NOT EXISTS habit_completions (
	id TEXT PRIMARY KEY,
	habit_name TEXT NOT NULL,
	completed_at DATETIME NOT NULL,
	FOREIGN KEY (habit_name) REFERENCES habits(name) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_habit_completions_habit ON habit_completions(habit_name);
`

// InitSchema creates all tables on the given database.
func InitSchema(database *sql.DB) error {
	_, err := database.Exec(SchemaSQL)
	return err
}

// GetSchemaSQL returns the authoritative schema.
func GetSchemaSQL() string {
	return SchemaSQL
}
