package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
)

type Definition struct {
	Language     string
	PartOfSpeech string
	Gender       string // empty when none was recorded
	Text         string
}

// Lookup returns the stored definitions of word in insertion order,
// optionally restricted to one language.
func Lookup(ctx context.Context, db *sql.DB, word, language string) ([]Definition, error) {
	query := sq.Select("language", "part_of_speech", "COALESCE(gender, '')", "definition").
		From("words").
		Where(sq.Eq{"name": word}).
		OrderBy("id")
	if language != "" {
		query = query.Where(sq.Eq{"language": language})
	}

	rows, err := query.RunWith(db).QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", word, err)
	}
	defer rows.Close()

	var defs []Definition
	for rows.Next() {
		var d Definition
		if err := rows.Scan(&d.Language, &d.PartOfSpeech, &d.Gender, &d.Text); err != nil {
			return nil, fmt.Errorf("scanning definition: %w", err)
		}
		defs = append(defs, d)
	}
	return defs, rows.Err()
}

type LanguageCount struct {
	Language string
	Words    int // distinct headwords
	Meanings int
}

type Summary struct {
	Words     int // distinct headwords
	Meanings  int
	Templates int
	Modules   int
	Languages []LanguageCount
}

func Summarize(ctx context.Context, db *sql.DB) (Summary, error) {
	var s Summary

	counts := []struct {
		query sq.SelectBuilder
		dest  *int
	}{
		{sq.Select("COUNT(DISTINCT name)").From("words"), &s.Words},
		{sq.Select("COUNT(*)").From("words"), &s.Meanings},
		{sq.Select("COUNT(*)").From("templates"), &s.Templates},
		{sq.Select("COUNT(*)").From("modules"), &s.Modules},
	}
	for _, c := range counts {
		if err := c.query.RunWith(db).QueryRowContext(ctx).Scan(c.dest); err != nil {
			return s, fmt.Errorf("counting: %w", err)
		}
	}

	rows, err := sq.Select("language", "COUNT(DISTINCT name)", "COUNT(*) AS meanings").
		From("words").
		GroupBy("language").
		OrderBy("meanings DESC", "language").
		RunWith(db).
		QueryContext(ctx)
	if err != nil {
		return s, fmt.Errorf("querying languages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var lc LanguageCount
		if err := rows.Scan(&lc.Language, &lc.Words, &lc.Meanings); err != nil {
			return s, fmt.Errorf("scanning language row: %w", err)
		}
		s.Languages = append(s.Languages, lc)
	}
	return s, rows.Err()
}

type Run struct {
	ID         string
	Source     string
	StartedAt  time.Time
	FinishedAt time.Time

	Pages              int
	SkippedPages       int
	Words              int
	Meanings           int
	Templates          int
	Modules            int
	MalformedHeadings  int
	UnknownTemplates   int
	DroppedDefinitions int
}

// LastRun returns the most recently finished run, or nil if there is none.
func LastRun(ctx context.Context, db *sql.DB) (*Run, error) {
	var (
		r                 Run
		started, finished string
	)
	err := sq.Select(
		"id", "source", "started_at", "finished_at",
		"pages", "skipped_pages", "words", "meanings", "templates", "modules",
		"malformed_headings", "unknown_templates", "dropped_definitions",
	).
		From("runs").
		OrderBy("finished_at DESC").
		Limit(1).
		RunWith(db).
		QueryRowContext(ctx).
		Scan(
			&r.ID, &r.Source, &started, &finished,
			&r.Pages, &r.SkippedPages, &r.Words, &r.Meanings, &r.Templates, &r.Modules,
			&r.MalformedHeadings, &r.UnknownTemplates, &r.DroppedDefinitions,
		)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying last run: %w", err)
	}

	if r.StartedAt, err = time.Parse(time.RFC3339, started); err != nil {
		return nil, fmt.Errorf("parsing started_at: %w", err)
	}
	if r.FinishedAt, err = time.Parse(time.RFC3339, finished); err != nil {
		return nil, fmt.Errorf("parsing finished_at: %w", err)
	}
	return &r, nil
}
