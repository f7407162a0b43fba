package lexer

// TokenSource is anything that can produce a stream of tokens; Lexer
// satisfies it directly.
type TokenSource interface {
	NextToken() Token
}

// FilteredLexer decorates a TokenSource, silently dropping single-line and
// block comment tokens so the parser never has to know they exist.
type FilteredLexer struct {
	src TokenSource
}

// NewFilteredLexer wraps src with comment filtering.
func NewFilteredLexer(src TokenSource) *FilteredLexer {
	return &FilteredLexer{src: src}
}

// NextToken pulls from the underlying source until it finds a non-comment
// token.
func (f *FilteredLexer) NextToken() Token {
	for {
		tok := f.src.NextToken()
		if tok.Kind != LCOMM && tok.Kind != BCOMM {
			return tok
		}
	}
}
