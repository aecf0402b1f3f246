package wiki

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedHeading is returned for lines that open like a heading but
// have no matching closing delimiter around a non-empty interior.
var ErrMalformedHeading = errors.New("malformed heading")

const maxHeadingLevel = 6

var headingDelimiters = func() []string {
	d := make([]string, maxHeadingLevel+1)
	for n := 1; n <= maxHeadingLevel; n++ {
		d[n] = strings.Repeat("=", n)
	}
	return d
}()

// ParseHeading recognizes "=Text=" through "======Text======". The widest
// delimiter that both opens and closes the line wins, so "===Foo==" is a
// level 2 heading with text "=Foo". The text is the interior exactly as
// written, spaces included. isHeading is false for lines that do not start
// with "=".
func ParseHeading(line string) (h Heading, isHeading bool, err error) {
	line = strings.TrimSuffix(line, "\r")
	if !strings.HasPrefix(line, "=") {
		return Heading{}, false, nil
	}
	for n := maxHeadingLevel; n >= 1; n-- {
		delim := headingDelimiters[n]
		if len(line) <= 2*n || !strings.HasPrefix(line, delim) || !strings.HasSuffix(line, delim) {
			continue
		}
		return Heading{Level: n, Text: line[n : len(line)-n]}, true, nil
	}
	return Heading{}, true, fmt.Errorf("%w: %q", ErrMalformedHeading, line)
}

// ParseTemplateLine recognizes a line that opens with "{{" and closes with
// "}}". The heading it returns is level 6 and keeps the raw line as its
// text; lines like "{{a}} {{b}}" qualify and resolve as unknown templates.
func ParseTemplateLine(line string) (Heading, bool) {
	line = strings.TrimRight(line, " \t\r")
	if len(line) < 4 || !strings.HasPrefix(line, "{{") || !strings.HasSuffix(line, "}}") {
		return Heading{}, false
	}
	return Heading{Level: maxHeadingLevel, Text: line, Template: true}, true
}

// templateInterior strips the outer braces of a template heading's text.
func templateInterior(text string) string {
	return text[2 : len(text)-2]
}
