package diag

import (
	"strconv"
	"strings"

	"github.com/akashmaji946/mix/internal/source"
)

// LineSource is whatever can recover a line of source text and an
// in-line byte offset for a position. *source.Reader satisfies this, kept
// once its file has been fully read.
type LineSource interface {
	GetLineNOffset(pos source.Position) (string, int)
}

// Format renders a single diagnostic as the four-line layout the CLI
// prints:
//
//	<message>
//	   |
//	 <row> | <line-contents>
//	   |<spaces-to-column>^^^
func Format(ls LineSource, message string, pos source.Position) string {
	line, offset := ls.GetLineNOffset(pos)
	gutter := strings.Repeat(" ", len(strconv.Itoa(pos.Row))+2)

	var b strings.Builder
	b.WriteString(message)
	b.WriteByte('\n')
	b.WriteString(gutter)
	b.WriteString("|\n")
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(pos.Row))
	b.WriteString(" | ")
	b.WriteString(line)
	b.WriteByte('\n')
	b.WriteString(gutter)
	b.WriteByte('|')
	b.WriteString(strings.Repeat(" ", offset))
	b.WriteString("^^^\n")
	return b.String()
}

// FormatDiagnostic is a convenience wrapper for Diagnostic values produced
// by a Handler.
func FormatDiagnostic(ls LineSource, d Diagnostic) string {
	return Format(ls, d.Message, d.Pos)
}

// FormatFatal is the equivalent wrapper for a single FatalError.
func FormatFatal(ls LineSource, err *FatalError) string {
	return Format(ls, err.Message, err.Pos)
}
