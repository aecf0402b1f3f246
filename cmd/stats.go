package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chriserin/define/internal/config"
	"github.com/chriserin/define/internal/db"
	"github.com/chriserin/define/internal/store"
	"github.com/chriserin/define/internal/ui"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show database counts and the last extraction run",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return RunStats(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func RunStats(w io.Writer, cfg *config.Config) error {
	if err := requireDatabase(cfg); err != nil {
		return err
	}

	sqlDB, err := db.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	ctx := context.Background()
	summary, err := store.Summarize(ctx, sqlDB)
	if err != nil {
		return err
	}

	ui.CountLine(w, "words", summary.Words)
	ui.CountLine(w, "meanings", summary.Meanings)
	ui.CountLine(w, "templates", summary.Templates)
	ui.CountLine(w, "modules", summary.Modules)

	if len(summary.Languages) > 0 {
		fmt.Fprintln(w)
		for _, lc := range summary.Languages {
			ui.LanguageCountLine(w, lc.Language, lc.Words, lc.Meanings)
		}
	}

	run, err := store.LastRun(ctx, sqlDB)
	if err != nil {
		return err
	}
	if run != nil {
		fmt.Fprintln(w)
		ui.RunLine(w, run.ID, run.Source, run.FinishedAt)
	}
	return nil
}
