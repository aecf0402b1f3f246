// Package pipeline feeds dump pages through classification and
// interpretation into a sink.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/chriserin/define/internal/dump"
	"github.com/chriserin/define/internal/wiki"
)

// Source yields pages in order and io.EOF at the end.
type Source interface {
	Next() (wiki.Page, error)
}

// Sink receives extracted records. The driver calls it from a single
// goroutine.
type Sink interface {
	SaveWord(ctx context.Context, w wiki.Word) error
	SaveTemplate(ctx context.Context, t wiki.Template) error
	SaveModule(ctx context.Context, m wiki.Module) error
}

type Stats struct {
	Pages        int
	SkippedPages int // reported by sources that count them, e.g. *dump.Reader
	Words        int // word pages, including EmptyWords
	EmptyWords   int // word pages that produced no meanings and were not saved
	Meanings     int
	Templates    int
	Modules      int

	MalformedHeadings  int
	UnknownTemplates   int
	DroppedDefinitions int
}

type Options struct {
	Workers       int // goroutines interpreting pages; 1 keeps document order
	ProgressEvery int // log every N word pages; 0 disables
}

type Driver struct {
	interp *wiki.Interpreter
	sink   Sink
	logger *slog.Logger
	opts   Options
}

func New(interp *wiki.Interpreter, sink Sink, logger *slog.Logger, opts Options) *Driver {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Driver{interp: interp, sink: sink, logger: logger, opts: opts}
}

type output struct {
	record wiki.Record
	result wiki.Result
}

// Run drains src. Any read or sink error stops the whole run; the stats
// gathered so far are returned with it.
func (d *Driver) Run(ctx context.Context, src Source) (Stats, error) {
	var (
		stats     Stats
		pagesRead int
	)
	pages := make(chan wiki.Page, d.opts.Workers*2)
	outputs := make(chan output, d.opts.Workers*2)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(pages)
		for {
			p, err := src.Next()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("reading dump: %w", err)
			}
			pagesRead++
			select {
			case pages <- p:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})

	var processing sync.WaitGroup
	for range d.opts.Workers {
		processing.Add(1)
		g.Go(func() error {
			defer processing.Done()
			for p := range pages {
				select {
				case outputs <- d.process(p):
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		processing.Wait()
		close(outputs)
		return nil
	})

	g.Go(func() error {
		for out := range outputs {
			if err := d.save(gctx, out, &stats); err != nil {
				return err
			}
		}
		return nil
	})

	err := g.Wait()
	stats.Pages = pagesRead
	if counter, ok := src.(interface{ Stats() dump.Stats }); ok {
		stats.SkippedPages = counter.Stats().Skipped
	}
	if err != nil {
		return stats, err
	}

	d.logger.Info("extraction finished",
		slog.Int("pages", stats.Pages),
		slog.Int("skipped_pages", stats.SkippedPages),
		slog.Int("words", stats.Words-stats.EmptyWords),
		slog.Int("meanings", stats.Meanings),
		slog.Int("templates", stats.Templates),
		slog.Int("modules", stats.Modules),
		slog.Int("malformed_headings", stats.MalformedHeadings),
		slog.Int("unknown_templates", stats.UnknownTemplates),
	)
	return stats, nil
}

func (d *Driver) process(p wiki.Page) output {
	rec := wiki.Classify(p)
	if rec.Kind != wiki.KindWord {
		return output{record: rec}
	}
	return output{record: rec, result: d.interp.Interpret(rec.Content)}
}

func (d *Driver) save(ctx context.Context, out output, stats *Stats) error {
	rec := out.record
	switch rec.Kind {
	case wiki.KindTemplate:
		if err := d.sink.SaveTemplate(ctx, wiki.Template{Name: rec.Name, Content: rec.Content}); err != nil {
			return fmt.Errorf("saving template %s: %w", rec.Name, err)
		}
		stats.Templates++
	case wiki.KindModule:
		if err := d.sink.SaveModule(ctx, wiki.Module{Name: rec.Name, Content: rec.Content}); err != nil {
			return fmt.Errorf("saving module %s: %w", rec.Name, err)
		}
		stats.Modules++
	default:
		stats.Words++
		stats.MalformedHeadings += out.result.MalformedHeadings
		stats.UnknownTemplates += out.result.UnknownTemplates
		stats.DroppedDefinitions += out.result.DroppedDefinitions

		if len(out.result.Meanings) == 0 {
			stats.EmptyWords++
		} else {
			if err := d.sink.SaveWord(ctx, wiki.Word{Name: rec.Name, Meanings: out.result.Meanings}); err != nil {
				return fmt.Errorf("saving word %s: %w", rec.Name, err)
			}
			stats.Meanings += len(out.result.Meanings)
		}

		if d.opts.ProgressEvery > 0 && stats.Words%d.opts.ProgressEvery == 0 {
			d.logger.Info("progress", slog.Int("words", stats.Words), slog.String("word", rec.Name))
		}
	}
	return nil
}
