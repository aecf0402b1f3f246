package wiki

import "strings"

// TemplateContext is what a headword template says about the section it
// appears in. Gendered templates take the gender from their next argument.
type TemplateContext struct {
	Language     string `yaml:"language"`
	PartOfSpeech string `yaml:"part_of_speech"`
	Gendered     bool   `yaml:"gendered"`
}

// TemplateTable maps template identifiers (e.g. "en-noun") to contexts.
type TemplateTable map[string]TemplateContext

// Resolution is the context change produced by a known template. Empty
// Language or PartOfSpeech means "leave unchanged".
type Resolution struct {
	Language     string
	PartOfSpeech string
	Gender       *string
}

const argSeparator = "|"

// Resolve looks up the template invocation interior (the text between "{{"
// and "}}"). The boolean is false for identifiers not in the table.
func (t TemplateTable) Resolve(interior string) (Resolution, bool) {
	args := strings.Split(interior, argSeparator)
	ctx, ok := t[strings.TrimSpace(args[0])]
	if !ok {
		return Resolution{}, false
	}

	res := Resolution{Language: ctx.Language, PartOfSpeech: ctx.PartOfSpeech}
	if ctx.Gendered {
		// A gendered template with no argument still marks the gender as
		// present, with an empty value.
		gender := ""
		if len(args) > 1 {
			gender = strings.TrimSpace(args[1])
		}
		res.Gender = &gender
	}
	return res, true
}

// Merge returns a copy of t with the entries of other added, replacing any
// entry with the same identifier.
func (t TemplateTable) Merge(other TemplateTable) TemplateTable {
	merged := make(TemplateTable, len(t)+len(other))
	for id, ctx := range t {
		merged[id] = ctx
	}
	for id, ctx := range other {
		merged[id] = ctx
	}
	return merged
}

// DefaultTemplates returns the built-in headword templates.
func DefaultTemplates() TemplateTable {
	return TemplateTable{
		"en-adj":         {Language: "English", PartOfSpeech: "Adjective"},
		"en-adv":         {Language: "English", PartOfSpeech: "Adverb"},
		"en-con":         {Language: "English", PartOfSpeech: "Conjunction"},
		"en-det":         {Language: "English", PartOfSpeech: "Determiner"},
		"en-interj":      {Language: "English", PartOfSpeech: "Interjection"},
		"en-noun":        {Language: "English", PartOfSpeech: "Noun"},
		"en-part":        {Language: "English", PartOfSpeech: "Particle"},
		"en-prefix":      {Language: "English", PartOfSpeech: "Prefix"},
		"en-prep":        {Language: "English", PartOfSpeech: "Preposition"},
		"en-prep phrase": {Language: "English", PartOfSpeech: "Prepositional Phrase"},
		"en-pron":        {Language: "English", PartOfSpeech: "Pronoun"},
		"en-proper noun": {Language: "English", PartOfSpeech: "Proper Noun"},
		"en-proverb":     {Language: "English", PartOfSpeech: "Proverb"},
		"en-suffix":      {Language: "English", PartOfSpeech: "Suffix"},
		"en-symbol":      {Language: "English", PartOfSpeech: "Symbol"},
		"en-verb":        {Language: "English", PartOfSpeech: "Verb"},

		"fr-adjective":        {Language: "French", PartOfSpeech: "Adjective"},
		"fr-adverb":           {Language: "French", PartOfSpeech: "Adverb"},
		"fr-card-adj":         {Language: "French", PartOfSpeech: "Cardinal Adjective"},
		"fr-card-inv":         {Language: "French", PartOfSpeech: "card-inv"},
		"fr-card-noun":        {Language: "French", PartOfSpeech: "Cardinal Noun", Gendered: true},
		"fr-conjunction":      {Language: "French", PartOfSpeech: "Conjunction"},
		"fr-det":              {Language: "French", PartOfSpeech: "Determiner"},
		"fr-diacretical mark": {Language: "French", PartOfSpeech: "Diacritical Mark"},
		"fr-interj":           {Language: "French", PartOfSpeech: "Interjection"},
		"fr-letter":           {Language: "French", PartOfSpeech: "Letter"},
		"fr-noun":             {Language: "French", PartOfSpeech: "Noun", Gendered: true},
		"fr-past participle":  {Language: "French", PartOfSpeech: "Past Participle"},
		"fr-phrase":           {Language: "French", PartOfSpeech: "Phrase"},
		"fr-prefix":           {Language: "French", PartOfSpeech: "Prefix"},
		"fr-postposition":     {Language: "French", PartOfSpeech: "Postposition"},
		"fr-preposition":      {Language: "French", PartOfSpeech: "Preposition"},
		"fr-pronoun":          {Language: "French", PartOfSpeech: "Pronoun"},
		"fr-proper noun":      {Language: "French", PartOfSpeech: "Proper Noun", Gendered: true},
		"fr-punctuation mark": {Language: "French", PartOfSpeech: "Punctuation Mark"},
		"fr-proverb":          {Language: "French", PartOfSpeech: "Proverb"},
		"fr-suffix":           {Language: "French", PartOfSpeech: "Suffix"},
		"fr-verb":             {Language: "French", PartOfSpeech: "Verb"},
	}
}
