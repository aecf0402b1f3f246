package wiki

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanDefinition(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "A small feline.", want: "A small feline."},
		{name: "link", in: "A [[cat]].", want: "A cat."},
		{name: "display link", in: "A [[Felis catus|domestic cat]].", want: "A domestic cat."},
		{name: "mixed links", in: "[[one]] and [[two|2]]", want: "one and 2"},
		{name: "comment", in: "text<!-- hidden --> more", want: "text more"},
		{name: "bold", in: "'''bold''' word", want: "bold word"},
		{name: "italic", in: "''italic'' word", want: "italic word"},
		{name: "templates kept", in: "{{lb|en|informal}} A cool person.", want: "{{lb|en|informal}} A cool person."},
		{name: "trimmed", in: "  spaced  ", want: "spaced"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanDefinition(tt.in))
		})
	}
}

func TestCleanTemplate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "{{{1}}}", want: "{{{1}}}"},
		{name: "noinclude", in: "body<noinclude>docs\nmore</noinclude>", want: "body"},
		{name: "comment", in: "a<!-- c -->b", want: "ab"},
		{name: "includeonly", in: "ignored<includeonly>kept\ntext</includeonly>tail", want: "kept\ntext"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanTemplate(tt.in))
		})
	}
}
