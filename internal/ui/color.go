package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	newStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	okStyle       = lipgloss.NewStyle().Faint(true)
	languageStyle = lipgloss.NewStyle().Bold(true)
	posStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	genderStyle   = lipgloss.NewStyle().Faint(true).Italic(true)
	labelStyle    = lipgloss.NewStyle().Faint(true)
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

func NewLine(w io.Writer, path string) {
	fmt.Fprintln(w, newStyle.Render("new")+"  "+path)
}

func OkLine(w io.Writer, path string) {
	fmt.Fprintln(w, okStyle.Render("ok ")+"  "+path)
}

func LanguageHeader(w io.Writer, language string) {
	fmt.Fprintln(w, languageStyle.Render(language))
}

func PartOfSpeechHeader(w io.Writer, pos string) {
	fmt.Fprintln(w, "  "+posStyle.Render(pos))
}

// DefinitionLine prints one numbered sense; gender is omitted when empty.
func DefinitionLine(w io.Writer, n int, text, gender string) {
	line := fmt.Sprintf("    %d. %s", n, text)
	if gender != "" {
		line += " " + genderStyle.Render("("+gender+")")
	}
	fmt.Fprintln(w, line)
}

// CountLine prints a padded label and its value.
func CountLine(w io.Writer, label string, n int) {
	fmt.Fprintf(w, "%s %d\n", labelStyle.Render(fmt.Sprintf("%-20s", label+":")), n)
}

// WarnCountLine is CountLine highlighted when n is non-zero.
func WarnCountLine(w io.Writer, label string, n int) {
	value := fmt.Sprint(n)
	if n > 0 {
		value = warnStyle.Render(value)
	}
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-20s", label+":")), value)
}

func LanguageCountLine(w io.Writer, language string, words, meanings int) {
	fmt.Fprintf(w, "  %-18s %d words, %d meanings\n", language, words, meanings)
}

func RunLine(w io.Writer, id, source string, finished time.Time) {
	fmt.Fprintf(w, "%s %s %s\n", labelStyle.Render("last run:"), source, okStyle.Render("("+id+", "+finished.Format(time.RFC3339)+")"))
}

func SummaryLine(w io.Writer, words, meanings int, elapsed time.Duration) {
	fmt.Fprintf(w, "extracted %d words, %d meanings in %s\n", words, meanings, elapsed.Round(time.Millisecond))
}
