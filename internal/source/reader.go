/*
File    : mix/internal/source/reader.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package source

// Reader streams a Mix source file byte by byte, normalizing whatever
// newline convention the file uses (LF, CR, or CRLF) to a single LF on the
// way out, and remembering where each line started so a diagnostic can later
// recover the offending line in O(1) from its row.
//
// The convention is sticky: the first newline sequence the reader observes
// fixes it for the rest of the file. A lone '\r' not followed by '\n' when
// the file is otherwise CRLF is treated per the already-fixed convention,
// not re-sniffed per line.
type Reader struct {
	src []byte
	pos int
	row int
	col int

	newlineSet bool
	crlf       bool
	newline    byte // '\n' or '\r', meaningless until newlineSet

	lineStarts []int // byte offset of the first byte of each row; lineStarts[0] == 0
}

// NewReader wraps raw file bytes for character-at-a-time consumption.
func NewReader(src []byte) *Reader {
	return &Reader{
		src:        src,
		row:        1,
		col:        1,
		lineStarts: []int{0},
	}
}

// Position reports the position of the next unread character.
func (r *Reader) Position() Position {
	return Position{Offset: r.pos, Row: r.row, Col: r.col}
}

// GetChar advances one logical character and returns it along with the
// position it was read from. Any of "\n", "\r", "\r\n" is collapsed to a
// single '\n'. At end of stream it returns the EOF sentinel (0) and ok=false
// without advancing further.
func (r *Reader) GetChar() (byte, Position, bool) {
	pos := r.Position()

	if r.pos >= len(r.src) {
		r.markEOF()
		return 0, pos, false
	}

	c := r.src[r.pos]
	if n := r.newlineLen(c); n > 0 {
		r.pos += n
		r.row++
		r.col = 1
		r.lineStarts = append(r.lineStarts, r.pos)
		return '\n', pos, true
	}

	r.pos++
	r.col++
	return c, pos, true
}

// PeekChar returns the next raw byte without committing the cursor, for the
// lexer's two-character lookahead (e.g. disambiguating "=" from "==").
func (r *Reader) PeekChar() (byte, bool) {
	if r.pos >= len(r.src) {
		return 0, false
	}
	return r.src[r.pos], true
}

// GetLineNOffset reconstructs the text of the given row and the byte offset
// of pos within that row, for rendering a diagnostic caret.
func (r *Reader) GetLineNOffset(pos Position) (string, int) {
	row := pos.Row
	start := r.lineStartOf(row)

	end := start
	for end < len(r.src) && r.src[end] != '\n' && r.src[end] != '\r' {
		end++
	}

	line := string(r.src[start:end])
	offset := pos.Offset - start
	if offset < 0 {
		offset = 0
	}
	return line, offset
}

func (r *Reader) lineStartOf(row int) int {
	if row-1 >= 0 && row-1 < len(r.lineStarts) {
		return r.lineStarts[row-1]
	}
	if len(r.lineStarts) > 0 {
		return r.lineStarts[len(r.lineStarts)-1]
	}
	return 0
}

func (r *Reader) markEOF() {
	if len(r.lineStarts) == 0 || r.lineStarts[len(r.lineStarts)-1] != len(r.src) {
		r.lineStarts = append(r.lineStarts, len(r.src))
	}
}

// newlineLen reports how many bytes starting at r.pos form a newline
// sequence under the (possibly not-yet-fixed) convention, fixing the
// convention on first use. It returns 0 if c does not start a newline.
func (r *Reader) newlineLen(c byte) int {
	if c != '\n' && c != '\r' {
		return 0
	}

	if !r.newlineSet {
		r.newlineSet = true
		if c == '\n' {
			r.newline = '\n'
			return 1
		}
		// c == '\r': look one byte ahead before committing to a convention.
		if r.pos+1 < len(r.src) && r.src[r.pos+1] == '\n' {
			r.crlf = true
			r.newline = '\r'
			return 2
		}
		r.newline = '\r'
		return 1
	}

	if r.crlf {
		if c == '\r' && r.pos+1 < len(r.src) && r.src[r.pos+1] == '\n' {
			return 2
		}
		return 0
	}
	if c == r.newline {
		return 1
	}
	return 0
}
