package wiki

import (
	"log/slog"
	"strings"
)

const definitionMarker = "# "

// Vocabulary is the fixed set of names the interpreter recognizes.
type Vocabulary struct {
	Languages     map[string]struct{}
	PartsOfSpeech map[string]struct{}
	Templates     TemplateTable
}

func NewVocabulary(languages, partsOfSpeech []string, templates TemplateTable) *Vocabulary {
	v := &Vocabulary{
		Languages:     make(map[string]struct{}, len(languages)),
		PartsOfSpeech: make(map[string]struct{}, len(partsOfSpeech)),
		Templates:     templates,
	}
	for _, l := range languages {
		if l != "" {
			v.Languages[l] = struct{}{}
		}
	}
	for _, p := range partsOfSpeech {
		if p != "" {
			v.PartsOfSpeech[p] = struct{}{}
		}
	}
	if v.Templates == nil {
		v.Templates = TemplateTable{}
	}
	return v
}

// DefaultVocabulary uses the built-in language, part of speech and
// template lists.
func DefaultVocabulary() *Vocabulary {
	return NewVocabulary(DefaultLanguages(), DefaultPartsOfSpeech(), DefaultTemplates())
}

func DefaultLanguages() []string {
	return []string{
		"Alemannic German",
		"Chinese",
		"English",
		"Esperanto",
		"French",
		"German",
		"Japanese",
		"Korean",
		"Lojban",
	}
}

func DefaultPartsOfSpeech() []string {
	return []string{
		"Adjective",
		"Adverb",
		"Brivla",
		"Cmavo",
		"Conjunction",
		"Definitions",
		"Gismu",
		"Hanja",
		"Hanzi",
		"Infix",
		"Initialism",
		"Interjection",
		"Kanji",
		"Noun",
		"Phrase",
		"Proper noun",
		"Rafsi",
		"Romanization",
		"Verb",
	}
}

// ContextStack holds the headings open at the current line of a page and
// the language, part of speech and gender they resolve to.
//
// Popping a heading clears language or part of speech when its text equals
// the current value, whichever heading originally set it. Gender is never
// cleared by a pop; only another gendered template replaces it.
type ContextStack struct {
	vocab    *Vocabulary
	headings []Heading

	language     string
	partOfSpeech string
	gender       *string
}

func NewContextStack(vocab *Vocabulary) *ContextStack {
	return &ContextStack{vocab: vocab}
}

// Apply closes every open heading at h's level or deeper, then opens h.
// For template headings it reports whether the template was known;
// ordinary headings always report true.
func (s *ContextStack) Apply(h Heading) bool {
	for len(s.headings) > 0 {
		top := s.headings[len(s.headings)-1]
		if top.Level < h.Level {
			break
		}
		s.headings = s.headings[:len(s.headings)-1]
		if top.Text == s.language {
			s.language = ""
		}
		if top.Text == s.partOfSpeech {
			s.partOfSpeech = ""
		}
	}

	known := true
	if h.Template {
		var res Resolution
		res, known = s.vocab.Templates.Resolve(templateInterior(h.Text))
		if res.Language != "" {
			s.language = res.Language
		}
		if res.PartOfSpeech != "" {
			s.partOfSpeech = res.PartOfSpeech
		}
		if res.Gender != nil {
			s.gender = res.Gender
		}
	} else {
		if _, ok := s.vocab.Languages[h.Text]; ok {
			s.language = h.Text
		}
		if _, ok := s.vocab.PartsOfSpeech[h.Text]; ok {
			s.partOfSpeech = h.Text
		}
	}

	s.headings = append(s.headings, h)
	return known
}

func (s *ContextStack) Language() string     { return s.language }
func (s *ContextStack) PartOfSpeech() string { return s.partOfSpeech }
func (s *ContextStack) Gender() *string      { return s.gender }

// Headings returns a copy of the open headings, outermost first.
func (s *ContextStack) Headings() []Heading {
	return append([]Heading(nil), s.headings...)
}

// Meaning builds a Meaning for definition text if both language and part of
// speech are in scope.
func (s *ContextStack) Meaning(definition string) (Meaning, bool) {
	if s.language == "" || s.partOfSpeech == "" {
		return Meaning{}, false
	}
	m := Meaning{
		Language:     s.language,
		PartOfSpeech: s.partOfSpeech,
		Definition:   definition,
	}
	if s.gender != nil {
		g := *s.gender
		m.Gender = &g
	}
	return m, true
}

// Result is everything extracted from one page body.
type Result struct {
	Meanings []Meaning

	MalformedHeadings  int
	UnknownTemplates   int
	DroppedDefinitions int // definition lines seen with no language or part of speech in scope
}

// Interpreter turns page bodies into meanings. It holds no per-page state
// and may be shared between goroutines.
type Interpreter struct {
	vocab  *Vocabulary
	logger *slog.Logger
}

func NewInterpreter(vocab *Vocabulary, logger *slog.Logger) *Interpreter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Interpreter{vocab: vocab, logger: logger}
}

// Interpret walks body line by line with a fresh ContextStack.
func (in *Interpreter) Interpret(body string) Result {
	var res Result
	stack := NewContextStack(in.vocab)

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSuffix(line, "\r")

		if h, isHeading, err := ParseHeading(line); isHeading {
			if err != nil {
				res.MalformedHeadings++
				in.logger.Debug("skipping heading", slog.String("error", err.Error()))
				continue
			}
			stack.Apply(h)
			continue
		}

		if h, ok := ParseTemplateLine(line); ok {
			if !stack.Apply(h) {
				res.UnknownTemplates++
			}
			continue
		}

		if definition, ok := strings.CutPrefix(line, definitionMarker); ok {
			m, ok := stack.Meaning(definition)
			if !ok {
				res.DroppedDefinitions++
				continue
			}
			res.Meanings = append(res.Meanings, m)
		}
	}

	return res
}
