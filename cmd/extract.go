package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/chriserin/define/internal/config"
	"github.com/chriserin/define/internal/db"
	"github.com/chriserin/define/internal/dump"
	"github.com/chriserin/define/internal/logging"
	"github.com/chriserin/define/internal/pipeline"
	"github.com/chriserin/define/internal/store"
	"github.com/chriserin/define/internal/ui"
	"github.com/chriserin/define/internal/wiki"
)

var extractWorkers int

var extractCmd = &cobra.Command{
	Use:   "extract <dump.xml[.bz2|.gz]>",
	Short: "Extract words, templates and modules from a dump into the database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("workers") {
			cfg.Extract.Workers = extractWorkers
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		logger := logging.New(cfg.Log, cmd.ErrOrStderr())
		return RunExtract(cmd.Context(), cmd.OutOrStdout(), cfg, logger, args[0])
	},
}

func init() {
	extractCmd.Flags().IntVar(&extractWorkers, "workers", 1, "number of goroutines interpreting pages")
	rootCmd.AddCommand(extractCmd)
}

func RunExtract(ctx context.Context, w io.Writer, cfg *config.Config, logger *slog.Logger, path string) error {
	r, err := dump.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()

	sqlDB, err := db.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	sink, err := store.Begin(ctx, sqlDB, path)
	if err != nil {
		return err
	}
	defer sink.Rollback()

	logger.Info("extraction started", "source", path, "run_id", sink.RunID(), "workers", cfg.Extract.Workers)
	start := time.Now()

	driver := pipeline.New(
		wiki.NewInterpreter(cfg.Vocabulary(), logger),
		sink,
		logger,
		pipeline.Options{Workers: cfg.Extract.Workers, ProgressEvery: cfg.Extract.ProgressEvery},
	)
	stats, err := driver.Run(ctx, r)
	if err != nil {
		return fmt.Errorf("extracting %s: %w", path, err)
	}
	if err := sink.Finish(ctx, stats); err != nil {
		return err
	}

	ui.SummaryLine(w, stats.Words-stats.EmptyWords, stats.Meanings, time.Since(start))
	ui.CountLine(w, "pages", stats.Pages)
	ui.CountLine(w, "templates", stats.Templates)
	ui.CountLine(w, "modules", stats.Modules)
	ui.CountLine(w, "words without meanings", stats.EmptyWords)
	ui.WarnCountLine(w, "skipped pages", stats.SkippedPages)
	ui.WarnCountLine(w, "malformed headings", stats.MalformedHeadings)
	ui.WarnCountLine(w, "unknown templates", stats.UnknownTemplates)
	ui.WarnCountLine(w, "dropped definitions", stats.DroppedDefinitions)
	return nil
}
