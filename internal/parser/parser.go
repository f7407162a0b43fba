/*
File    : mix/internal/parser/parser.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package parser implements the recursive-descent, one-token-lookahead
// parser over the Mix grammar, producing an internal/ast.Program. Missing
// punctuation or sub-productions record a diagnostic and parsing continues:
// nothing here ever panics on malformed input.
package parser

import (
	"github.com/akashmaji946/mix/internal/ast"
	"github.com/akashmaji946/mix/internal/diag"
	"github.com/akashmaji946/mix/internal/lexer"
	"github.com/akashmaji946/mix/internal/source"
)

// Parser consumes a comment-filtered token stream with a single token of
// lookahead.
type Parser struct {
	lex    *lexer.FilteredLexer
	Reader *source.Reader
	diags  *diag.Handler
	cur    lexer.Token
}

// NewParser builds a parser over raw source bytes, wiring up the lexer and
// comment filter internally.
func NewParser(src []byte) *Parser {
	diags := diag.NewHandler()
	lx := lexer.NewLexer(src, diags)
	p := &Parser{
		lex:    lexer.NewFilteredLexer(lx),
		Reader: lx.Reader(),
		diags:  diags,
	}
	p.advance()
	return p
}

// Diagnostics returns the shared diagnostic handler, which also collects
// lexer-level findings produced while the parser pulled tokens.
func (p *Parser) Diagnostics() *diag.Handler { return p.diags }

// HasErrors reports whether any diagnostic was recorded during lexing or
// parsing.
func (p *Parser) HasErrors() bool { return p.diags.HasErrors() }

// Errors returns every diagnostic recorded so far, in recording order.
func (p *Parser) Errors() []diag.Diagnostic { return p.diags.Errors() }

func (p *Parser) advance() { p.cur = p.lex.NextToken() }

func (p *Parser) at(k lexer.Kind) bool { return p.cur.Kind == k }

func (p *Parser) consumeIf(k lexer.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) pos() source.Position { return p.cur.Pos }

// Parse consumes the whole token stream and returns the resulting program.
func (p *Parser) Parse() *ast.Program {
	return &ast.Program{Stmts: p.parseStatements()}
}

// parseStatements runs parseStatement until it stops recognizing a
// production, which is how both the top level and every block end: there
// is no explicit end-of-list token, the absence of a known leading token
// simply stops the list.
func (p *Parser) parseStatements() []ast.Stmt {
	var stmts []ast.Stmt
	for {
		s := p.parseStatement()
		if s == nil {
			break
		}
		stmts = append(stmts, s)
	}
	return stmts
}

func (p *Parser) parseStatement() ast.Stmt {
	switch p.cur.Kind {
	case lexer.LET:
		return p.parseVarDef()
	case lexer.IF:
		return p.parseConditional()
	case lexer.WHILE:
		return p.parseLoop()
	case lexer.MATCH:
		return p.parseMatch()
	case lexer.IDENT:
		return p.parseAssignmentOrCall()
	case lexer.FN:
		return p.parseFuncDef()
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.BREAK:
		return p.parseBreak()
	case lexer.CONTINUE:
		return p.parseContinue()
	}
	return nil
}

func (p *Parser) parseVarDef() ast.Stmt {
	pos := p.pos()
	p.advance() // 'let'

	mut := false
	if p.at(lexer.MUT) {
		mut = true
		p.advance()
	}

	var name string
	if p.at(lexer.IDENT) {
		name, _ = p.cur.Value.(string)
		p.advance()
	} else {
		p.diags.VariableNameExpected(p.pos())
	}

	if !p.consumeIf(lexer.ASSIGN) {
		p.diags.AssignmentOperatorExpected(p.pos())
	}

	expr := p.parseExpression()
	if expr == nil {
		p.diags.ExpressionExpected(p.pos())
	}

	if !p.consumeIf(lexer.SEMI) {
		p.diags.SemicolonExpected(p.pos())
	}

	return &ast.VarDefinition{Name: name, Mut: mut, Expr: expr, Pos: pos}
}

func (p *Parser) parseConditional() ast.Stmt {
	pos := p.pos()
	p.advance() // 'if'

	cond := p.parseExpression()
	if cond == nil {
		p.diags.ExpressionExpected(p.pos())
	}
	ifBlock := p.parseBlock()

	var elseBlock *ast.Block
	if p.at(lexer.ELSE) {
		p.advance()
		elseBlock = p.parseBlock()
	}

	return &ast.Conditional{Cond: cond, IfBlock: ifBlock, ElseBlock: elseBlock, Pos: pos}
}

func (p *Parser) parseLoop() ast.Stmt {
	pos := p.pos()
	p.advance() // 'while'

	cond := p.parseExpression()
	if cond == nil {
		p.diags.ExpressionExpected(p.pos())
	}
	body := p.parseBlock()

	return &ast.Loop{Cond: cond, Body: body, Pos: pos}
}

// parseBlock consumes "{ statements }". A missing opening brace means no
// block was here at all (CODE_BLOCK_EXPECTED, nil result); a missing
// closing brace means the statement list ran off the end of the file
// (RIGHT_CURLY_BRACKET_EXPECTED, nil result too).
func (p *Parser) parseBlock() *ast.Block {
	pos := p.pos()
	if !p.consumeIf(lexer.LBRACE) {
		p.diags.CodeBlockExpected(pos)
		return nil
	}

	stmts := p.parseStatements()

	if !p.consumeIf(lexer.RBRACE) {
		p.diags.RightCurlyBracketExpected(p.pos())
		return nil
	}

	return &ast.Block{Stmts: stmts, Pos: pos}
}

func (p *Parser) parseMatch() ast.Stmt {
	pos := p.pos()
	p.advance() // 'match'

	args := p.parseArguments()
	if len(args) == 0 {
		p.diags.ExpressionExpected(p.pos())
	}

	if !p.consumeIf(lexer.COLON) {
		p.diags.ColonExpected(p.pos())
	}

	var cases []*ast.Case
	for p.at(lexer.CASE) {
		cases = append(cases, p.parseCase())
	}

	var def *ast.CaseDefault
	if p.at(lexer.DEFAULT) {
		def = p.parseCaseDefault()
	} else {
		p.diags.DefaultStatementExpected(p.pos())
	}

	return &ast.Match{Args: args, Cases: cases, Default: def, Pos: pos}
}

func (p *Parser) parseCase() *ast.Case {
	pos := p.pos()
	p.advance() // 'case'

	ident := p.parseCaseIdentifier()

	if !p.consumeIf(lexer.COLON) {
		p.diags.ColonExpected(p.pos())
	}

	params := p.parseParenParams()
	body := p.parseBlock()

	return &ast.Case{Ident: ident, Params: params, Body: body, Pos: pos}
}

func (p *Parser) parseCaseDefault() *ast.CaseDefault {
	pos := p.pos()
	p.advance() // 'default'

	if !p.consumeIf(lexer.COLON) {
		p.diags.ColonExpected(p.pos())
	}

	params := p.parseParenParams()
	body := p.parseBlock()

	return &ast.CaseDefault{Params: params, Body: body, Pos: pos}
}

// parseCaseIdentifier parses whichever of the three case-identifier forms
// (predicate operator, type tag, or literal) is present.
func (p *Parser) parseCaseIdentifier() ast.CaseIdentifier {
	pos := p.pos()
	switch p.cur.Kind {
	case lexer.IS_EVEN, lexer.IS_ODD, lexer.IS_QUARTER_O, lexer.IS_QUARTER_TW, lexer.IS_QUARTER_TH, lexer.IS_QUARTER_F:
		op := string(p.cur.Kind)
		p.advance()
		return ast.CaseIdentifier{Kind: ast.CaseOperator, Operator: op, Pos: pos}
	case lexer.TYPE_NUM:
		p.advance()
		return ast.CaseIdentifier{Kind: ast.CaseLiteralType, Type: ast.NumType, Pos: pos}
	case lexer.TYPE_STR:
		p.advance()
		return ast.CaseIdentifier{Kind: ast.CaseLiteralType, Type: ast.StrType, Pos: pos}
	case lexer.TYPE_BOOL:
		p.advance()
		return ast.CaseIdentifier{Kind: ast.CaseLiteralType, Type: ast.BoolType, Pos: pos}
	}

	lit := p.parseLiteral()
	if lit == nil {
		p.diags.IdentifierExpected(pos)
		lit = &ast.Literal{Type: ast.NullType, Pos: pos}
	}
	return ast.CaseIdentifier{Kind: ast.CaseLiteral, Literal: lit, Pos: pos}
}

// parseParenParams parses "(" params ")", the paren-wrapped parameter list
// shared by function definitions, case arms, and default arms.
func (p *Parser) parseParenParams() []ast.Param {
	if !p.consumeIf(lexer.LPAREN) {
		p.diags.LeftBracketExpected(p.pos())
		return nil
	}
	params := p.parseParameters()
	if !p.consumeIf(lexer.RPAREN) {
		p.diags.RightBracketExpected(p.pos())
	}
	return params
}

func (p *Parser) parseParameters() []ast.Param {
	var params []ast.Param
	for p.at(lexer.MUT) || p.at(lexer.IDENT) {
		params = append(params, p.parseParameter())
		if !p.consumeIf(lexer.COMMA) {
			break
		}
	}
	return params
}

func (p *Parser) parseParameter() ast.Param {
	pos := p.pos()
	mut := false
	if p.at(lexer.MUT) {
		mut = true
		p.advance()
	}
	var name string
	if p.at(lexer.IDENT) {
		name, _ = p.cur.Value.(string)
		p.advance()
	} else {
		p.diags.IdentifierExpected(p.pos())
	}
	return ast.Param{Name: name, Mut: mut, Pos: pos}
}

// parseAssignmentOrCall implements the assignment_or_call production. A
// bare identifier with neither "=" nor "(" following is not a valid
// statement on its own and yields nil — ending the enclosing statement list
// right there, the same as the reference parser.
func (p *Parser) parseAssignmentOrCall() ast.Stmt {
	pos := p.pos()
	name, _ := p.cur.Value.(string)
	p.advance()

	if p.at(lexer.ASSIGN) {
		p.advance()
		expr := p.parseExpression()
		if expr == nil {
			p.diags.ExpressionExpected(p.pos())
		}
		if !p.consumeIf(lexer.SEMI) {
			p.diags.SemicolonExpected(p.pos())
		}
		return &ast.Assignment{Name: name, Expr: expr, Pos: pos}
	}

	if p.at(lexer.LPAREN) {
		lparen := p.pos()
		p.advance()
		args := p.parseArguments()
		rparen := p.pos()
		if !p.consumeIf(lexer.RPAREN) {
			p.diags.RightBracketExpected(rparen)
		}
		if !p.consumeIf(lexer.SEMI) {
			p.diags.SemicolonExpected(p.pos())
		}
		return &ast.Call{Name: name, Args: args, LParen: lparen, RParen: rparen, Pos: pos}
	}

	return nil
}

func (p *Parser) parseFuncDef() ast.Stmt {
	pos := p.pos()
	p.advance() // 'fn'

	var name string
	if p.at(lexer.IDENT) {
		name, _ = p.cur.Value.(string)
		p.advance()
	} else {
		p.diags.IdentifierExpected(p.pos())
	}

	params := p.parseParenParams()
	body := p.parseBlock()

	return &ast.FuncDef{Name: name, Params: params, Body: body, Pos: pos}
}

func (p *Parser) parseReturn() ast.Stmt {
	pos := p.pos()
	p.advance() // 'return'

	var expr ast.Expr
	if !p.at(lexer.SEMI) {
		expr = p.parseExpression()
	}

	if !p.consumeIf(lexer.SEMI) {
		p.diags.SemicolonExpected(p.pos())
	}

	return &ast.Return{Expr: expr, Pos: pos}
}

func (p *Parser) parseBreak() ast.Stmt {
	pos := p.pos()
	p.advance()
	if !p.consumeIf(lexer.SEMI) {
		p.diags.SemicolonExpected(p.pos())
	}
	return &ast.Break{Pos: pos}
}

func (p *Parser) parseContinue() ast.Stmt {
	pos := p.pos()
	p.advance()
	if !p.consumeIf(lexer.SEMI) {
		p.diags.SemicolonExpected(p.pos())
	}
	return &ast.Continue{Pos: pos}
}

// parseArguments parses a bare comma-separated expression list (no
// brackets consumed here — the caller owns those), tolerating a trailing
// comma by simply ending the list when the next expression fails to parse.
func (p *Parser) parseArguments() []ast.Expr {
	var args []ast.Expr
	first := p.parseExpression()
	if first == nil {
		return args
	}
	args = append(args, first)
	for p.consumeIf(lexer.COMMA) {
		e := p.parseExpression()
		if e == nil {
			break
		}
		args = append(args, e)
	}
	return args
}

func (p *Parser) parseExpression() ast.Expr {
	return p.parseOr()
}

func (p *Parser) parseOr() ast.Expr {
	left := p.parseAnd()
	for p.at(lexer.OR) {
		pos := p.pos()
		p.advance()
		right := p.parseAnd()
		if right == nil {
			p.diags.ExpressionExpected(p.pos())
		}
		left = &ast.BinaryExpr{Op: ast.OpOr, Left: left, Right: right, Pos: pos}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expr {
	left := p.parseRelational()
	for p.at(lexer.AND) {
		pos := p.pos()
		p.advance()
		right := p.parseRelational()
		if right == nil {
			p.diags.ExpressionExpected(p.pos())
		}
		left = &ast.BinaryExpr{Op: ast.OpAnd, Left: left, Right: right, Pos: pos}
	}
	return left
}

func (p *Parser) parseRelational() ast.Expr {
	left := p.parseAdditive()
	for {
		var op ast.BinOp
		switch p.cur.Kind {
		case lexer.LT:
			op = ast.OpLT
		case lexer.LE:
			op = ast.OpLE
		case lexer.GT:
			op = ast.OpGT
		case lexer.GE:
			op = ast.OpGE
		case lexer.EQ:
			op = ast.OpEQ
		case lexer.NE:
			op = ast.OpNE
		default:
			return left
		}
		pos := p.pos()
		p.advance()
		right := p.parseAdditive()
		if right == nil {
			p.diags.ExpressionExpected(p.pos())
		}
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Pos: pos}
	}
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for {
		var op ast.BinOp
		switch p.cur.Kind {
		case lexer.PLUS:
			op = ast.OpAdd
		case lexer.MINUS:
			op = ast.OpSub
		default:
			return left
		}
		pos := p.pos()
		p.advance()
		right := p.parseMultiplicative()
		if right == nil {
			p.diags.ExpressionExpected(p.pos())
		}
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Pos: pos}
	}
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for {
		var op ast.BinOp
		switch p.cur.Kind {
		case lexer.STAR:
			op = ast.OpMul
		case lexer.SLASH:
			op = ast.OpDiv
		case lexer.PCT:
			op = ast.OpMod
		default:
			return left
		}
		pos := p.pos()
		p.advance()
		right := p.parseUnary()
		if right == nil {
			p.diags.ExpressionExpected(p.pos())
		}
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Pos: pos}
	}
}

func (p *Parser) parseUnary() ast.Expr {
	if p.at(lexer.MINUS) {
		pos := p.pos()
		p.advance()
		f := p.parseFactor()
		if f == nil {
			p.diags.ExpressionExpected(p.pos())
		}
		return &ast.UnaryExpr{Op: ast.OpNeg, Factor: f, Pos: pos}
	}
	if p.at(lexer.NOT) {
		pos := p.pos()
		p.advance()
		f := p.parseFactor()
		if f == nil {
			p.diags.ExpressionExpected(p.pos())
		}
		return &ast.UnaryExpr{Op: ast.OpNot, Factor: f, Pos: pos}
	}
	return p.parseFactor()
}

func (p *Parser) parseFactor() ast.Expr {
	switch p.cur.Kind {
	case lexer.NUM, lexer.STR, lexer.TRUE, lexer.FALSE, lexer.NULL:
		return p.parseLiteral()
	case lexer.IDENT:
		return p.parseIdentOrCall()
	case lexer.LPAREN:
		p.advance()
		expr := p.parseExpression()
		if !p.consumeIf(lexer.RPAREN) {
			// The reference grammar records no diagnostic for a
			// malformed parenthesized group; it simply fails silently.
			return nil
		}
		return expr
	}
	return nil
}

func (p *Parser) parseLiteral() *ast.Literal {
	pos := p.pos()
	switch p.cur.Kind {
	case lexer.NUM:
		v, _ := p.cur.Value.(float64)
		p.advance()
		return &ast.Literal{Type: ast.NumType, Value: v, Pos: pos}
	case lexer.STR:
		v, _ := p.cur.Value.(string)
		p.advance()
		return &ast.Literal{Type: ast.StrType, Value: v, Pos: pos}
	case lexer.TRUE:
		p.advance()
		return &ast.Literal{Type: ast.BoolType, Value: true, Pos: pos}
	case lexer.FALSE:
		p.advance()
		return &ast.Literal{Type: ast.BoolType, Value: false, Pos: pos}
	case lexer.NULL:
		p.advance()
		return &ast.Literal{Type: ast.NullType, Value: nil, Pos: pos}
	}
	return nil
}

// parseIdentOrCall handles an identifier appearing inside an expression: a
// bare variable reference, or a call whose result is used as a value.
func (p *Parser) parseIdentOrCall() ast.Expr {
	pos := p.pos()
	name, _ := p.cur.Value.(string)
	p.advance()

	if p.at(lexer.LPAREN) {
		lparen := p.pos()
		p.advance()
		args := p.parseArguments()
		rparen := p.pos()
		if !p.consumeIf(lexer.RPAREN) {
			p.diags.RightBracketExpected(rparen)
		}
		return &ast.Call{Name: name, Args: args, LParen: lparen, RParen: rparen, Pos: pos}
	}

	return &ast.Identifier{Name: name, Pos: pos}
}
