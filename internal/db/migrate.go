package db

import (
	"database/sql"
	"fmt"
)

// All contains the ordered list of migrations to apply.
var All = []string{
	`CREATE TABLE templates (
		name    TEXT NOT NULL,
		content TEXT NOT NULL
	)`,
	`CREATE TABLE modules (
		name    TEXT NOT NULL,
		content TEXT NOT NULL
	)`,
	`CREATE TABLE words (
		id             INTEGER PRIMARY KEY,
		name           TEXT NOT NULL,
		language       TEXT NOT NULL,
		part_of_speech TEXT NOT NULL,
		gender         TEXT,
		definition     TEXT NOT NULL
	)`,
	`CREATE INDEX words_name_idx ON words(name)`,
	`CREATE INDEX words_language_idx ON words(language)`,
	`CREATE INDEX words_part_of_speech_idx ON words(part_of_speech)`,
	`CREATE TABLE runs (
		id                  TEXT PRIMARY KEY,
		source              TEXT NOT NULL,
		started_at          TEXT NOT NULL,
		finished_at         TEXT NOT NULL,
		pages               INTEGER NOT NULL,
		skipped_pages       INTEGER NOT NULL,
		words               INTEGER NOT NULL,
		meanings            INTEGER NOT NULL,
		templates           INTEGER NOT NULL,
		modules             INTEGER NOT NULL,
		malformed_headings  INTEGER NOT NULL,
		unknown_templates   INTEGER NOT NULL,
		dropped_definitions INTEGER NOT NULL
	)`,
}

func Migrate(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`)
	if err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM schema_version`).Scan(&count); err != nil {
		return fmt.Errorf("checking schema_version: %w", err)
	}
	if count == 0 {
		if _, err := db.Exec(`INSERT INTO schema_version (version) VALUES (0)`); err != nil {
			return fmt.Errorf("initializing schema version: %w", err)
		}
	}

	var current int
	if err := db.QueryRow(`SELECT version FROM schema_version`).Scan(&current); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for i := current; i < len(All); i++ {
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("beginning migration %d: %w", i+1, err)
		}

		if _, err := tx.Exec(All[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}

		if _, err := tx.Exec(`UPDATE schema_version SET version = ?`, i+1); err != nil {
			tx.Rollback()
			return fmt.Errorf("updating schema version to %d: %w", i+1, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", i+1, err)
		}
	}

	return nil
}
