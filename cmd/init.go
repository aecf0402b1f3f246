package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/chriserin/define/internal/config"
	"github.com/chriserin/define/internal/db"
	"github.com/chriserin/define/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the dictionary database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return RunInit(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func RunInit(w io.Writer, cfg *config.Config) error {
	path := cfg.Database.Path
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	_, err := os.Stat(path)
	dbExists := err == nil
	sqlDB, err := db.Open(path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	sqlDB.Close()

	if dbExists {
		ui.OkLine(w, path)
	} else {
		ui.NewLine(w, path)
	}
	return nil
}

// requireDatabase fails unless the configured database file exists.
func requireDatabase(cfg *config.Config) error {
	if _, err := os.Stat(cfg.Database.Path); os.IsNotExist(err) {
		return fmt.Errorf("%s does not exist, run `define init` first", cfg.Database.Path)
	}
	return nil
}
