/*
File    : mix/internal/lexer/lexer.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package lexer

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/akashmaji946/mix/internal/diag"
	"github.com/akashmaji946/mix/internal/source"
)

// maxDigits bounds the length of the base digit sequence of a numeric
// literal (before any fractional part). Anything longer is a
// NUM_OVERFLOW_ERROR.
const maxDigits = 39

// Lexer is a single-pass, one-character-of-state scanner over a Reader,
// with NextToken as its only public operation. It never returns an error
// directly: malformed tokens (leading-zero numbers, overflowing numbers,
// unterminated strings/comments) are recorded on the supplied diag.Handler
// and silently dropped, and the lexer moves on to the next legitimate
// token, exactly as the reference grammar's error-recovery strategy
// prescribes.
type Lexer struct {
	rd     *source.Reader
	diags  *diag.Handler
	cur    byte
	curPos source.Position
}

// NewLexer creates a lexer over src, priming the one-character lookahead.
func NewLexer(src []byte, diags *diag.Handler) *Lexer {
	l := &Lexer{rd: source.NewReader(src), diags: diags}
	l.advance()
	return l
}

// Reader exposes the underlying source reader so a diagnostic formatter can
// recover line text after parsing has finished.
func (l *Lexer) Reader() *source.Reader {
	return l.rd
}

func (l *Lexer) advance() {
	c, pos, ok := l.rd.GetChar()
	l.curPos = pos
	if !ok {
		l.cur = 0
		return
	}
	l.cur = c
}

func (l *Lexer) peek() (byte, bool) {
	return l.rd.PeekChar()
}

// NextToken scans and returns the next token, skipping whitespace and
// comments are NOT filtered here (see FilteredLexer) — NextToken returns
// comment tokens too, so callers that care about source fidelity (e.g. a
// token dump) can still see them.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	if l.cur == 0 {
		return Token{Kind: EOF, Pos: l.curPos}
	}

	switch {
	case l.cur == '/':
		return l.readSlash()
	case isDigit(l.cur):
		tok, ok := l.readNumber()
		if !ok {
			return l.NextToken()
		}
		return tok
	case l.cur == '\'' || l.cur == '"':
		tok, ok := l.readString()
		if !ok {
			return l.NextToken()
		}
		return tok
	case isAlpha(l.cur) || l.cur == '_':
		return l.readIdentifier()
	}

	if tok, ok := l.readOperator(); ok {
		return tok
	}

	// Unrecognized byte: no diagnostic kind in the language's taxonomy
	// covers "invalid character", so skip it and keep scanning.
	l.advance()
	return l.NextToken()
}

func (l *Lexer) skipWhitespace() {
	for l.cur != 0 && unicode.IsSpace(rune(l.cur)) {
		l.advance()
	}
}

// readSlash disambiguates '/', '//' and '/* */'.
func (l *Lexer) readSlash() Token {
	pos := l.curPos
	if next, ok := l.peek(); ok && next == '/' {
		l.advance()
		l.advance()
		return l.readLineComment(pos)
	}
	if next, ok := l.peek(); ok && next == '*' {
		l.advance()
		l.advance()
		if tok, ok := l.readBlockComment(pos); ok {
			return tok
		}
		return l.NextToken()
	}
	l.advance()
	return Token{Kind: SLASH, Pos: pos}
}

func (l *Lexer) readLineComment(pos source.Position) Token {
	var b strings.Builder
	for l.cur != 0 && l.cur != '\n' {
		b.WriteByte(l.cur)
		l.advance()
	}
	return Token{Kind: LCOMM, Pos: pos, Value: b.String()}
}

func (l *Lexer) readBlockComment(pos source.Position) (Token, bool) {
	var b strings.Builder
	for {
		if l.cur == 0 {
			l.diags.UnexpectedEndOfText(l.curPos)
			return Token{}, false
		}
		if l.cur == '*' {
			if next, ok := l.peek(); ok && next == '/' {
				l.advance()
				l.advance()
				return Token{Kind: BCOMM, Pos: pos, Value: b.String()}, true
			}
		}
		b.WriteByte(l.cur)
		l.advance()
	}
}

// readNumber scans an integer-or-float literal. The integer part may not
// have a leading zero unless it is exactly "0"; the base digit sequence is
// capped at maxDigits characters.
func (l *Lexer) readNumber() (Token, bool) {
	pos := l.curPos
	var digits strings.Builder

	first := l.cur
	digits.WriteByte(l.cur)
	l.advance()

	if first == '0' && isDigit(l.cur) {
		// Leading zero: consume the rest of the run of digits so the
		// caller doesn't re-trip the same diagnostic on what's left.
		for isDigit(l.cur) {
			l.advance()
		}
		l.diags.LeadingZero(pos)
		return Token{}, false
	}

	overflowed := false
	for isDigit(l.cur) {
		digits.WriteByte(l.cur)
		l.advance()
		if digits.Len() > maxDigits && !overflowed {
			overflowed = true
		}
	}

	if overflowed {
		l.diags.NumOverflowError(pos)
		return Token{}, false
	}

	lit := digits.String()
	if l.cur == '.' {
		lit += "."
		l.advance()
		for isDigit(l.cur) {
			lit += string(l.cur)
			l.advance()
		}
	}

	val, _ := strconv.ParseFloat(lit, 64)
	return Token{Kind: NUM, Pos: pos, Value: val}, true
}

// escapes lists the only recognized backslash sequences; anything else is
// preserved literally as a backslash followed by the character.
var escapes = map[byte]byte{
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'b':  '\b',
	'f':  '\f',
}

// readString scans a string literal delimited by either quote style; the
// opening quote fixes the terminator.
func (l *Lexer) readString() (Token, bool) {
	pos := l.curPos
	quote := l.cur
	l.advance()

	var b strings.Builder
	for l.cur != quote {
		if l.cur == 0 {
			l.diags.UnexpectedEndOfText(pos)
			return Token{}, false
		}
		if l.cur == '\\' {
			l.advance()
			if l.cur == 0 {
				l.diags.UnexpectedEndOfText(pos)
				return Token{}, false
			}
			if repl, ok := escapes[l.cur]; ok {
				b.WriteByte(repl)
			} else {
				b.WriteByte('\\')
				b.WriteByte(l.cur)
			}
			l.advance()
			continue
		}
		b.WriteByte(l.cur)
		l.advance()
	}
	l.advance() // closing quote
	return Token{Kind: STR, Pos: pos, Value: b.String()}, true
}

func (l *Lexer) readIdentifier() Token {
	pos := l.curPos
	var b strings.Builder
	for isAlphaNumeric(l.cur) || l.cur == '_' {
		b.WriteByte(l.cur)
		l.advance()
	}
	lit := b.String()
	return Token{Kind: lookupIdent(lit), Pos: pos, Value: litValueFor(lookupIdent(lit), lit)}
}

func litValueFor(k Kind, lit string) any {
	if k == IDENT {
		return lit
	}
	return nil
}

// readOperator handles punctuation and 1-or-2-character operators, giving
// two-character spellings priority over their one-character prefixes.
func (l *Lexer) readOperator() (Token, bool) {
	pos := l.curPos
	c := l.cur

	twoChar := func(second byte, k2 Kind, k1 Kind) (Token, bool) {
		if n, ok := l.peek(); ok && n == second {
			l.advance()
			l.advance()
			return Token{Kind: k2, Pos: pos}, true
		}
		l.advance()
		return Token{Kind: k1, Pos: pos}, true
	}

	switch c {
	case '+':
		l.advance()
		return Token{Kind: PLUS, Pos: pos}, true
	case '-':
		l.advance()
		return Token{Kind: MINUS, Pos: pos}, true
	case '*':
		l.advance()
		return Token{Kind: STAR, Pos: pos}, true
	case '%':
		l.advance()
		return Token{Kind: PCT, Pos: pos}, true
	case '<':
		return twoChar('=', LE, LT)
	case '>':
		return twoChar('=', GE, GT)
	case '=':
		return twoChar('=', EQ, ASSIGN)
	case '!':
		return twoChar('=', NE, NOTSYM)
	case '(':
		l.advance()
		return Token{Kind: LPAREN, Pos: pos}, true
	case ')':
		l.advance()
		return Token{Kind: RPAREN, Pos: pos}, true
	case '{':
		l.advance()
		return Token{Kind: LBRACE, Pos: pos}, true
	case '}':
		l.advance()
		return Token{Kind: RBRACE, Pos: pos}, true
	case ',':
		l.advance()
		return Token{Kind: COMMA, Pos: pos}, true
	case ';':
		l.advance()
		return Token{Kind: SEMI, Pos: pos}, true
	case ':':
		l.advance()
		return Token{Kind: COLON, Pos: pos}, true
	}
	return Token{}, false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
