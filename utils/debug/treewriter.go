// Package debug has helpers producing human readable dumps of internal
// structures for debug reports.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

const indentUnit = "  "

// TreeWriter accumulates indented lines, one nesting level per depth.
type TreeWriter struct {
	b *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{b: &strings.Builder{}}
}

func (tw *TreeWriter) String() string {
	return tw.b.String()
}

func (tw *TreeWriter) indent(depth int) {
	tw.b.WriteString(strings.Repeat(indentUnit, max(depth, 0)))
}

// Line writes formatted line at depth.
func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.b, format, args...)
	tw.b.WriteByte('\n')
}

// Text writes "label: value" with value quoted so that control and non-ASCII
// characters are visible.
func (tw *TreeWriter) Text(depth int, label, value string) {
	tw.indent(depth)
	tw.b.WriteString(label)
	tw.b.WriteString(": ")
	tw.b.WriteString(quote(value))
	tw.b.WriteByte('\n')
}

func quote(raw string) string {
	if raw == "" {
		return `""`
	}
	return strconv.QuoteToASCII(raw)
}
