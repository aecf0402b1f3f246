package dump

import (
	"compress/gzip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dsnet/compress/bzip2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/define/internal/wiki"
)

const sampleDump = `<mediawiki xmlns="http://www.mediawiki.org/xml/export-0.10/" version="0.10">
  <siteinfo>
    <sitename>Wiktionary</sitename>
    <namespaces><namespace key="10">Template</namespace></namespaces>
  </siteinfo>
  <page>
    <title>cat</title>
    <ns>0</ns>
    <revision>
      <id>1</id>
      <text xml:space="preserve">==English==
===Noun===
# A small domesticated feline &amp; pet.</text>
    </revision>
  </page>
  <page>
    <title>Template:en-noun</title>
    <revision>
      <text>{{head|en|noun}}</text>
    </revision>
  </page>
</mediawiki>
`

func readAll(t *testing.T, r *Reader) []wiki.Page {
	t.Helper()
	var pages []wiki.Page
	for {
		p, err := r.Next()
		if err == io.EOF {
			return pages
		}
		require.NoError(t, err)
		pages = append(pages, p)
	}
}

func TestReader_ReadsPagesInOrder(t *testing.T) {
	r := NewReader(strings.NewReader(sampleDump))
	pages := readAll(t, r)

	require.Len(t, pages, 2)
	assert.Equal(t, "cat", pages[0].Title)
	assert.Equal(t, "==English==\n===Noun===\n# A small domesticated feline & pet.", pages[0].Content)
	assert.Equal(t, "Template:en-noun", pages[1].Title)
	assert.Equal(t, "{{head|en|noun}}", pages[1].Content)
	assert.Equal(t, Stats{Pages: 2, Emitted: 2}, r.Stats())
}

func TestReader_EOFIsSticky(t *testing.T) {
	r := NewReader(strings.NewReader(`<mediawiki></mediawiki>`))
	_, err := r.Next()
	assert.Equal(t, io.EOF, err)
	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestReader_SkipsPageWithoutText(t *testing.T) {
	doc := `<mediawiki>
  <page><title>only title</title></page>
  <page><revision><text>no title</text></revision></page>
  <page><title>kept</title><revision><text>body</text></revision></page>
</mediawiki>`
	r := NewReader(strings.NewReader(doc))
	pages := readAll(t, r)

	require.Len(t, pages, 1)
	assert.Equal(t, "kept", pages[0].Title)
	assert.Equal(t, Stats{Pages: 3, Emitted: 1, Skipped: 2}, r.Stats())
}

func TestReader_SkipsEmptyTitleOrText(t *testing.T) {
	doc := `<mediawiki>
  <page><title>deleted</title><revision><text bytes="0" /></revision></page>
  <page><title></title><revision><text>orphan body</text></revision></page>
  <page><title>Template:blank</title><revision><text></text></revision></page>
  <page><title>kept</title><revision><text>body</text></revision></page>
</mediawiki>`
	r := NewReader(strings.NewReader(doc))
	pages := readAll(t, r)

	require.Len(t, pages, 1)
	assert.Equal(t, "kept", pages[0].Title)
	assert.Equal(t, Stats{Pages: 4, Emitted: 1, Skipped: 3}, r.Stats())
}

func TestReader_UsesMostRecentRevision(t *testing.T) {
	doc := `<mediawiki>
  <page>
    <title>word</title>
    <revision><text>old</text></revision>
    <revision><text>new</text></revision>
  </page>
  <page>
    <title>gone</title>
    <revision><text>old</text></revision>
    <revision><comment>blanked</comment></revision>
  </page>
</mediawiki>`
	r := NewReader(strings.NewReader(doc))
	pages := readAll(t, r)

	require.Len(t, pages, 1)
	assert.Equal(t, "new", pages[0].Content)
	assert.Equal(t, 1, r.Stats().Skipped)
}

func TestReader_IgnoresNestedTitleElements(t *testing.T) {
	doc := `<mediawiki>
  <page>
    <title>real</title>
    <redirect title="elsewhere"/>
    <revision><contributor><title>not this</title></contributor><text>body</text></revision>
  </page>
</mediawiki>`
	pages := readAll(t, NewReader(strings.NewReader(doc)))

	require.Len(t, pages, 1)
	assert.Equal(t, "real", pages[0].Title)
	assert.Equal(t, "body", pages[0].Content)
}

func TestReader_MalformedStreamIsFatal(t *testing.T) {
	doc := "<mediawiki>\n<page><title>a</title><revision><text>x</revision></page>\n</mediawiki>"
	r := NewReader(strings.NewReader(doc))

	_, err := r.Next()
	require.Error(t, err)
	var se *StreamError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 2, se.Line)
	assert.Greater(t, se.Offset, int64(0))

	_, again := r.Next()
	assert.Equal(t, err, again)
}

func TestReader_TruncatedStreamIsFatal(t *testing.T) {
	doc := "<mediawiki><page><title>a</title><revision><text>partial"
	r := NewReader(strings.NewReader(doc))

	_, err := r.Next()
	require.Error(t, err)
	assert.NotEqual(t, io.EOF, err)
	var se *StreamError
	assert.True(t, errors.As(err, &se))
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.xml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestOpen_PlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.xml")
	require.NoError(t, os.WriteFile(path, []byte(sampleDump), 0o644))

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	assert.Len(t, readAll(t, r), 2)
}

func TestOpen_Gzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.xml.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(sampleDump))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	assert.Len(t, readAll(t, r), 2)
}

func TestOpen_Bzip2(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.xml.bz2")
	f, err := os.Create(path)
	require.NoError(t, err)
	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	require.NoError(t, err)
	_, err = bz.Write([]byte(sampleDump))
	require.NoError(t, err)
	require.NoError(t, bz.Close())
	require.NoError(t, f.Close())

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	pages := readAll(t, r)
	require.Len(t, pages, 2)
	assert.Equal(t, "cat", pages[0].Title)
}
