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

var lookupLanguage string

var lookupCmd = &cobra.Command{
	Use:   "lookup <word>",
	Short: "Show the stored definitions of a word",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return RunLookup(cmd.OutOrStdout(), cfg, args[0], lookupLanguage)
	},
}

func init() {
	lookupCmd.Flags().StringVarP(&lookupLanguage, "language", "l", "", "only show definitions in this language")
	rootCmd.AddCommand(lookupCmd)
}

func RunLookup(w io.Writer, cfg *config.Config, word, language string) error {
	if err := requireDatabase(cfg); err != nil {
		return err
	}

	sqlDB, err := db.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	defs, err := store.Lookup(context.Background(), sqlDB, word, language)
	if err != nil {
		return err
	}
	if len(defs) == 0 {
		if language != "" {
			return fmt.Errorf("no %s definitions for %q", language, word)
		}
		return fmt.Errorf("no definitions for %q", word)
	}

	for i, group := range groupDefinitions(defs) {
		if i > 0 {
			fmt.Fprintln(w)
		}
		ui.LanguageHeader(w, group.language)
		for _, section := range group.sections {
			ui.PartOfSpeechHeader(w, section.partOfSpeech)
			for n, d := range section.defs {
				ui.DefinitionLine(w, n+1, d.Text, d.Gender)
			}
		}
	}
	return nil
}

type languageGroup struct {
	language string
	sections []posSection
}

type posSection struct {
	partOfSpeech string
	defs         []store.Definition
}

// groupDefinitions groups by language, then part of speech, each in order of
// first appearance.
func groupDefinitions(defs []store.Definition) []languageGroup {
	var groups []languageGroup
	langIndex := map[string]int{}
	for _, d := range defs {
		li, ok := langIndex[d.Language]
		if !ok {
			li = len(groups)
			langIndex[d.Language] = li
			groups = append(groups, languageGroup{language: d.Language})
		}
		g := &groups[li]

		si := -1
		for i := range g.sections {
			if g.sections[i].partOfSpeech == d.PartOfSpeech {
				si = i
				break
			}
		}
		if si < 0 {
			si = len(g.sections)
			g.sections = append(g.sections, posSection{partOfSpeech: d.PartOfSpeech})
		}
		g.sections[si].defs = append(g.sections[si].defs, d)
	}
	return groups
}
