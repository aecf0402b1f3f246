package wiki

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		title string
		kind  Kind
		name  string
	}{
		{title: "cat", kind: KindWord, name: "cat"},
		{title: "Template:en-noun", kind: KindTemplate, name: "en-noun"},
		{title: "Module:headword/data", kind: KindModule, name: "headword/data"},
		{title: "Wiktionary:Main Page", kind: KindWord, name: "Wiktionary:Main Page"},
		{title: "template:lowercase", kind: KindWord, name: "template:lowercase"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			r := Classify(Page{Title: tt.title, Content: "body"})
			assert.Equal(t, tt.kind, r.Kind)
			assert.Equal(t, tt.name, r.Name)
			assert.Equal(t, "body", r.Content)
		})
	}
}
