package wiki

import (
	"regexp"
	"strings"
)

var (
	noincludeRe   = regexp.MustCompile(`(?s)<noinclude>.*?</noinclude>`)
	includeonlyRe = regexp.MustCompile(`(?s)<includeonly>(.*?)</includeonly>`)
	htmlCommentRe = regexp.MustCompile(`(?s)<!--.*?-->`)
	displayLinkRe = regexp.MustCompile(`\[\[[^\]]*?\|(.*?)\]\]`)
	linkRe        = regexp.MustCompile(`\[\[(.*?)\]\]`)
	// Does not handle a formatted single quote.
	boldRe   = regexp.MustCompile(`'''([^']*?)'''`)
	italicRe = regexp.MustCompile(`''([^']*?)''`)
)

// CleanDefinition strips links, comments, bold and italic markup from a
// definition, leaving templates alone.
func CleanDefinition(s string) string {
	s = displayLinkRe.ReplaceAllString(s, "$1")
	s = linkRe.ReplaceAllString(s, "$1")
	s = htmlCommentRe.ReplaceAllString(s, "")
	s = boldRe.ReplaceAllString(s, "$1")
	s = italicRe.ReplaceAllString(s, "$1")
	return strings.TrimSpace(s)
}

// CleanTemplate reduces a template page to the text that is transcluded:
// <noinclude> blocks and comments are dropped, and if an <includeonly>
// block exists only its contents are kept.
func CleanTemplate(s string) string {
	s = noincludeRe.ReplaceAllString(s, "")
	s = htmlCommentRe.ReplaceAllString(s, "")
	if m := includeonlyRe.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}
