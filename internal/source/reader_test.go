package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func drain(r *Reader) string {
	var out []byte
	for {
		c, _, ok := r.GetChar()
		if !ok {
			break
		}
		out = append(out, c)
	}
	return string(out)
}

func TestReader_NormalizesNewlineConventions(t *testing.T) {
	for _, src := range []string{"a\nb\nc", "a\r\nb\r\nc", "a\rb\rc"} {
		r := NewReader([]byte(src))
		assert.Equal(t, "a\nb\nc", drain(r), "source %q", src)
	}
}

func TestReader_TracksRowAndCol(t *testing.T) {
	r := NewReader([]byte("ab\ncd"))
	c, pos, _ := r.GetChar()
	assert.Equal(t, byte('a'), c)
	assert.Equal(t, Position{Offset: 0, Row: 1, Col: 1}, pos)

	r.GetChar() // 'b'
	r.GetChar() // '\n', normalized
	c, pos, _ = r.GetChar()
	assert.Equal(t, byte('c'), c)
	assert.Equal(t, 2, pos.Row)
}

func TestReader_PeekDoesNotAdvance(t *testing.T) {
	r := NewReader([]byte("xy"))
	p1, ok := r.PeekChar()
	assert.True(t, ok)
	assert.Equal(t, byte('x'), p1)
	p2, ok := r.PeekChar()
	assert.True(t, ok)
	assert.Equal(t, byte('x'), p2)
}

func TestReader_GetLineNOffset(t *testing.T) {
	r := NewReader([]byte("first\nsecond line\nthird"))
	var pos Position
	for i := 0; i < len("first\n")+3; i++ {
		_, p, _ := r.GetChar()
		pos = p
	}
	// pos now names the last-consumed character, the 'c' in "second line"
	// (offset 2 within that line).
	line, offset := r.GetLineNOffset(pos)
	assert.Equal(t, "second line", line)
	assert.Equal(t, 2, offset)
}

func TestReader_EOF(t *testing.T) {
	r := NewReader([]byte("a"))
	r.GetChar()
	_, _, ok := r.GetChar()
	assert.False(t, ok)
}
