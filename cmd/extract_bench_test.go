package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func nopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// generateDump builds a dump of n English noun pages with three senses each,
// interleaved with template and module pages.
func generateDump(n int) string {
	var buf bytes.Buffer
	buf.WriteString("<mediawiki>\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&buf, "  <page>\n    <title>word%d</title>\n    <revision><text>", i)
		buf.WriteString("==English==\n===Etymology===\nFrom somewhere.\n===Noun===\n{{en-noun}}\n")
		for j := 1; j <= 3; j++ {
			fmt.Fprintf(&buf, "# Sense %d of [[word%d]].\n#: usage example\n", j, i)
		}
		buf.WriteString("</text></revision>\n  </page>\n")
		if i%10 == 0 {
			fmt.Fprintf(&buf, "  <page><title>Template:t%d</title><revision><text>{{{1}}}</text></revision></page>\n", i)
			fmt.Fprintf(&buf, "  <page><title>Module:m%d</title><revision><text>return {}</text></revision></page>\n", i)
		}
	}
	buf.WriteString("</mediawiki>\n")
	return buf.String()
}

func benchmarkExtract(b *testing.B, pages, workers int) {
	inTempDir(b)
	cfg := testConfig(b)
	cfg.Extract.Workers = workers
	path := writeDump(b, "dump.xml", generateDump(pages))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var buf bytes.Buffer
		require.NoError(b, RunExtract(context.Background(), &buf, cfg, nopLogger(), path))
	}
}

func BenchmarkExtract_1kPages(b *testing.B)          { benchmarkExtract(b, 1000, 1) }
func BenchmarkExtract_1kPages_4Workers(b *testing.B) { benchmarkExtract(b, 1000, 4) }
func BenchmarkExtract_10kPages(b *testing.B)         { benchmarkExtract(b, 10000, 1) }
