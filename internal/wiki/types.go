package wiki

// Page is one <page> element from a dump: its title and the body text of
// its most recent revision.
type Page struct {
	Title   string
	Content string
}

// Kind tells which record a page was classified as.
type Kind int

const (
	KindWord Kind = iota
	KindTemplate
	KindModule
)

func (k Kind) String() string {
	switch k {
	case KindTemplate:
		return "template"
	case KindModule:
		return "module"
	default:
		return "word"
	}
}

// Record is a classified page. Name is the full title for words and the
// title without its namespace prefix for templates and modules.
type Record struct {
	Kind    Kind
	Name    string
	Content string
}

// Meaning is one definition line together with the context it was found in.
type Meaning struct {
	Language     string
	PartOfSpeech string
	Gender       *string // nil when no gendered template was seen
	Definition   string  // raw wikitext after the "# " marker
}

type Word struct {
	Name     string
	Meanings []Meaning
}

type Template struct {
	Name    string
	Content string
}

type Module struct {
	Name    string
	Content string
}

// Heading is a section heading of level 1..6, or a bare template line
// standing in as a level 6 heading.
type Heading struct {
	Level    int
	Text     string
	Template bool
}
