package wiki

import "strings"

const (
	templatePrefix = "Template:"
	modulePrefix   = "Module:"
)

// Classify routes a page by its namespace prefix.
func Classify(p Page) Record {
	switch {
	case strings.HasPrefix(p.Title, templatePrefix):
		return Record{Kind: KindTemplate, Name: strings.TrimPrefix(p.Title, templatePrefix), Content: p.Content}
	case strings.HasPrefix(p.Title, modulePrefix):
		return Record{Kind: KindModule, Name: strings.TrimPrefix(p.Title, modulePrefix), Content: p.Content}
	default:
		return Record{Kind: KindWord, Name: p.Title, Content: p.Content}
	}
}
