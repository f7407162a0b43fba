package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akashmaji946/mix/internal/diag"
)

func tokenKinds(t *testing.T, src string) []Kind {
	t.Helper()
	diags := diag.NewHandler()
	l := NewLexer([]byte(src), diags)
	var kinds []Kind
	for {
		tok := l.NextToken()
		kinds = append(kinds, tok.Kind)
		if tok.Kind == EOF {
			break
		}
	}
	return kinds
}

func TestLexer_Operators(t *testing.T) {
	kinds := tokenKinds(t, `+ - * / % < <= > >= == != = ! ( ) { } , ; :`)
	assert.Equal(t, []Kind{
		PLUS, MINUS, STAR, SLASH, PCT, LT, LE, GT, GE, EQ, NE, ASSIGN, NOTSYM,
		LPAREN, RPAREN, LBRACE, RBRACE, COMMA, SEMI, COLON, EOF,
	}, kinds)
}

func TestLexer_Keywords(t *testing.T) {
	kinds := tokenKinds(t, `if else while fn return break continue let mut match case default true false null`)
	assert.Equal(t, []Kind{
		IF, ELSE, WHILE, FN, RETURN, BREAK, CONTINUE, LET, MUT, MATCH, CASE, DEFAULT, TRUE, FALSE, NULL, EOF,
	}, kinds)
}

func TestLexer_IsLexesToEQ(t *testing.T) {
	kinds := tokenKinds(t, `a is b`)
	assert.Equal(t, []Kind{IDENT, EQ, IDENT, EOF}, kinds)
}

func TestLexer_Numbers(t *testing.T) {
	diags := diag.NewHandler()
	l := NewLexer([]byte(`0 7 3.14`), diags)

	tok := l.NextToken()
	assert.Equal(t, NUM, tok.Kind)
	assert.Equal(t, float64(0), tok.Value)

	tok = l.NextToken()
	assert.Equal(t, NUM, tok.Kind)
	assert.Equal(t, float64(7), tok.Value)

	tok = l.NextToken()
	assert.Equal(t, NUM, tok.Kind)
	assert.Equal(t, 3.14, tok.Value)

	assert.False(t, diags.HasErrors())
}

func TestLexer_LeadingZeroIsDiagnosed(t *testing.T) {
	diags := diag.NewHandler()
	l := NewLexer([]byte(`007`), diags)
	tok := l.NextToken()
	assert.Equal(t, EOF, tok.Kind)
	assert.True(t, diags.HasErrors())
	assert.Equal(t, diag.LeadingZero, diags.Errors()[0].Kind)
}

func TestLexer_NumberOverflowIsDiagnosed(t *testing.T) {
	diags := diag.NewHandler()
	digits := ""
	for i := 0; i < 40; i++ {
		digits += "9"
	}
	l := NewLexer([]byte(digits), diags)
	l.NextToken()
	assert.True(t, diags.HasErrors())
	assert.Equal(t, diag.NumOverflowError, diags.Errors()[0].Kind)
}

func TestLexer_StringEscapes(t *testing.T) {
	diags := diag.NewHandler()
	l := NewLexer([]byte(`"a\nb\tc\\d\qz"`), diags)
	tok := l.NextToken()
	assert.Equal(t, STR, tok.Kind)
	assert.Equal(t, "a\nb\tc\\d\\qz", tok.Value)
	assert.False(t, diags.HasErrors())
}

func TestLexer_SingleAndDoubleQuotesSymmetric(t *testing.T) {
	diags := diag.NewHandler()
	l := NewLexer([]byte(`'hello' "world"`), diags)
	tok := l.NextToken()
	assert.Equal(t, "hello", tok.Value)
	tok = l.NextToken()
	assert.Equal(t, "world", tok.Value)
}

func TestLexer_UnterminatedStringIsDiagnosed(t *testing.T) {
	diags := diag.NewHandler()
	l := NewLexer([]byte(`"abc`), diags)
	l.NextToken()
	assert.True(t, diags.HasErrors())
	assert.Equal(t, diag.UnexpectedEndOfText, diags.Errors()[0].Kind)
}

func TestLexer_Comments(t *testing.T) {
	kinds := tokenKinds(t, "1 // line comment\n2 /* block\ncomment */ 3")
	assert.Equal(t, []Kind{NUM, LCOMM, NUM, BCOMM, NUM, EOF}, kinds)
}

func TestLexer_UnterminatedBlockCommentIsDiagnosed(t *testing.T) {
	diags := diag.NewHandler()
	l := NewLexer([]byte(`/* never closed`), diags)
	l.NextToken()
	assert.True(t, diags.HasErrors())
	assert.Equal(t, diag.UnexpectedEndOfText, diags.Errors()[0].Kind)
}

func TestLexer_NewlineConventionIndependence(t *testing.T) {
	for _, nl := range []string{"\n", "\r\n", "\r"} {
		src := "let x = 1;" + nl + "let y = 2;"
		kinds := tokenKinds(t, src)
		assert.Equal(t, []Kind{
			LET, IDENT, ASSIGN, NUM, SEMI, LET, IDENT, ASSIGN, NUM, SEMI, EOF,
		}, kinds, "newline convention %q", nl)
	}
}

func TestLexer_QuadrantAndParityCaseOperators(t *testing.T) {
	kinds := tokenKinds(t, `isEven isOdd isQuarterO isQuarterTw isQuarterTh isQuarterF`)
	assert.Equal(t, []Kind{
		IS_EVEN, IS_ODD, IS_QUARTER_O, IS_QUARTER_TW, IS_QUARTER_TH, IS_QUARTER_F, EOF,
	}, kinds)
}
