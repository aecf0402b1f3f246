// Package store persists extraction output to the sqlite database and
// reads it back.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/chriserin/define/internal/pipeline"
	"github.com/chriserin/define/internal/wiki"
)

var wordColumns = []string{"name", "language", "part_of_speech", "gender", "definition"}

// maxRowsPerInsert keeps multi-row inserts well under sqlite's bound
// parameter limit.
const maxRowsPerInsert = 500

// Writer writes one extraction run inside a single transaction. A run
// replaces whatever an earlier run stored.
type Writer struct {
	tx        *sql.Tx
	runID     uuid.UUID
	source    string
	startedAt time.Time
}

var _ pipeline.Sink = (*Writer)(nil)

// Begin starts a run reading from source (the dump path).
func Begin(ctx context.Context, db *sql.DB, source string) (*Writer, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning run: %w", err)
	}

	for _, table := range []string{"words", "templates", "modules"} {
		if _, err := sq.Delete(table).RunWith(tx).ExecContext(ctx); err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	return &Writer{
		tx:        tx,
		runID:     uuid.New(),
		source:    source,
		startedAt: time.Now().UTC(),
	}, nil
}

func (w *Writer) RunID() uuid.UUID { return w.runID }

func (w *Writer) SaveTemplate(ctx context.Context, t wiki.Template) error {
	_, err := sq.Insert("templates").
		Columns("name", "content").
		Values(t.Name, wiki.CleanTemplate(t.Content)).
		RunWith(w.tx).
		ExecContext(ctx)
	return err
}

func (w *Writer) SaveModule(ctx context.Context, m wiki.Module) error {
	_, err := sq.Insert("modules").
		Columns("name", "content").
		Values(m.Name, m.Content).
		RunWith(w.tx).
		ExecContext(ctx)
	return err
}

// SaveWord inserts one row per meaning, with cleaned definitions.
func (w *Writer) SaveWord(ctx context.Context, word wiki.Word) error {
	for start := 0; start < len(word.Meanings); start += maxRowsPerInsert {
		end := min(start+maxRowsPerInsert, len(word.Meanings))
		insert := sq.Insert("words").Columns(wordColumns...)
		for _, m := range word.Meanings[start:end] {
			var gender sql.NullString
			if m.Gender != nil {
				gender = sql.NullString{String: *m.Gender, Valid: true}
			}
			insert = insert.Values(word.Name, m.Language, m.PartOfSpeech, gender, wiki.CleanDefinition(m.Definition))
		}
		if _, err := insert.RunWith(w.tx).ExecContext(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Finish records the run and commits everything written.
func (w *Writer) Finish(ctx context.Context, stats pipeline.Stats) error {
	_, err := sq.Insert("runs").
		SetMap(map[string]any{
			"id":                  w.runID.String(),
			"source":              w.source,
			"started_at":          w.startedAt.Format(time.RFC3339),
			"finished_at":         time.Now().UTC().Format(time.RFC3339),
			"pages":               stats.Pages,
			"skipped_pages":       stats.SkippedPages,
			"words":               stats.Words - stats.EmptyWords,
			"meanings":            stats.Meanings,
			"templates":           stats.Templates,
			"modules":             stats.Modules,
			"malformed_headings":  stats.MalformedHeadings,
			"unknown_templates":   stats.UnknownTemplates,
			"dropped_definitions": stats.DroppedDefinitions,
		}).
		RunWith(w.tx).
		ExecContext(ctx)
	if err != nil {
		w.tx.Rollback()
		return fmt.Errorf("recording run: %w", err)
	}
	if err := w.tx.Commit(); err != nil {
		return fmt.Errorf("committing run: %w", err)
	}
	return nil
}

// Rollback discards the run. It is safe to call after Finish.
func (w *Writer) Rollback() error {
	if err := w.tx.Rollback(); err != nil && err != sql.ErrTxDone {
		return err
	}
	return nil
}
