// Package dump streams pages out of a MediaWiki XML export without holding
// more than the current page in memory.
package dump

import (
	"compress/gzip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dsnet/compress/bzip2"

	"github.com/chriserin/define/internal/wiki"
)

// StreamError is a fatal error in the underlying XML stream.
type StreamError struct {
	Line   int
	Column int
	Offset int64
	Err    error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("dump: line %d, column %d (offset %d): %v", e.Line, e.Column, e.Offset, e.Err)
}

func (e *StreamError) Unwrap() error { return e.Err }

// Stats counts pages as they are read.
type Stats struct {
	Pages   int // <page> elements seen
	Emitted int
	Skipped int // pages with no title or no revision text
}

type Reader struct {
	dec     *xml.Decoder
	closers []io.Closer
	stats   Stats
	err     error
}

// Open opens a dump file. Names ending in .bz2 or .gz are decompressed on
// the fly.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dump: %w", err)
	}

	var src io.Reader = f
	closers := []io.Closer{f}
	switch {
	case strings.HasSuffix(path, ".bz2"):
		bz, err := bzip2.NewReader(f, &bzip2.ReaderConfig{})
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("opening bzip2 stream: %w", err)
		}
		src = bz
		closers = append(closers, bz)
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		src = gz
		closers = append(closers, gz)
	}

	r := NewReader(src)
	r.closers = closers
	return r, nil
}

// NewReader reads pages from an already open stream.
func NewReader(src io.Reader) *Reader {
	return &Reader{dec: xml.NewDecoder(src)}
}

// Next returns the next complete page. It returns io.EOF when the stream
// ends cleanly and a *StreamError when the XML is malformed; after any
// error the reader keeps returning that error.
func (r *Reader) Next() (wiki.Page, error) {
	if r.err != nil {
		return wiki.Page{}, r.err
	}
	for {
		tok, err := r.dec.Token()
		if err != nil {
			r.err = r.wrap(err)
			return wiki.Page{}, r.err
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "page" {
			continue
		}

		r.stats.Pages++
		page, ok, err := r.readPage()
		if err != nil {
			r.err = r.wrap(err)
			return wiki.Page{}, r.err
		}
		if !ok {
			r.stats.Skipped++
			continue
		}
		r.stats.Emitted++
		return page, nil
	}
}

func (r *Reader) Stats() Stats { return r.stats }

func (r *Reader) Close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	r.closers = nil
	return errors.Join(errs...)
}

// readPage consumes tokens up to the matching </page>. ok is false when the
// title is empty or absent, or the last revision has no text. An empty
// <text/> counts as no text.
func (r *Reader) readPage() (page wiki.Page, ok bool, err error) {
	var (
		title, content       string
		depth                = 1
		inRevision           bool
		revisionDepth        int
		capture              *strings.Builder
		captureDepth         int
		titleBuf, contentBuf strings.Builder
	)

	for depth > 0 {
		tok, err := r.dec.Token()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return wiki.Page{}, false, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch {
			case capture != nil:
				// Markup nested inside <title> or <text> is not expected in
				// an export; its character data is kept.
			case t.Name.Local == "title" && depth == 2:
				titleBuf.Reset()
				capture, captureDepth = &titleBuf, depth
			case t.Name.Local == "revision" && depth == 2:
				inRevision, revisionDepth = true, depth
				content = ""
			case t.Name.Local == "text" && inRevision && depth == revisionDepth+1:
				contentBuf.Reset()
				capture, captureDepth = &contentBuf, depth
			}
		case xml.CharData:
			if capture != nil {
				capture.Write(t)
			}
		case xml.EndElement:
			if capture != nil && depth == captureDepth {
				if capture == &titleBuf {
					title = titleBuf.String()
				} else {
					content = contentBuf.String()
				}
				capture = nil
			}
			if inRevision && depth == revisionDepth {
				inRevision = false
			}
			depth--
		}
	}

	if title == "" || content == "" {
		return wiki.Page{}, false, nil
	}
	return wiki.Page{Title: title, Content: content}, true, nil
}

func (r *Reader) wrap(err error) error {
	if err == io.EOF {
		return io.EOF
	}
	line, col := r.dec.InputPos()
	return &StreamError{Line: line, Column: col, Offset: r.dec.InputOffset(), Err: err}
}
