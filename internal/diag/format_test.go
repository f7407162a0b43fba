package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akashmaji946/mix/internal/source"
)

func TestFormat_FourLineLayout(t *testing.T) {
	r := source.NewReader([]byte("let x = ;\nlet y = 2;"))
	got := Format(r, "expected an expression", source.Position{Row: 1, Col: 9, Offset: 8})
	want := "expected an expression\n" +
		"   |\n" +
		" 1 | let x = ;\n" +
		"   |        ^^^\n"
	assert.Equal(t, want, got)
}

func TestFormat_GutterWidensWithRowDigits(t *testing.T) {
	r := source.NewReader([]byte("x"))
	got := Format(r, "msg", source.Position{Row: 100, Col: 1, Offset: 0})
	assert.Contains(t, got, "    |\n")
}

func TestHandler_RecordsInOrder(t *testing.T) {
	h := NewHandler()
	h.LeadingZero(source.Position{Row: 1, Col: 1})
	h.SemicolonExpected(source.Position{Row: 2, Col: 1})
	assert.True(t, h.HasErrors())
	errs := h.Errors()
	assert.Len(t, errs, 2)
	assert.Equal(t, LeadingZero, errs[0].Kind)
	assert.Equal(t, SemicolonExpected, errs[1].Kind)
}

func TestFatalError_ImplementsError(t *testing.T) {
	var err error = NotDefined(source.Position{Row: 1, Col: 1}, "foo")
	assert.Contains(t, err.Error(), "foo")
	assert.Contains(t, err.Error(), "not defined")
}
