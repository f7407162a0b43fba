/*
File    : mix/internal/diag/diag.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package diag implements the two-tier error taxonomy: a Handler that
// collects non-fatal lexer/parser diagnostics so scanning and parsing can
// continue past them, and a FatalError type that the evaluator returns
// (rather than panics with) the instant it hits an unrecoverable condition.
package diag

import (
	"fmt"

	"github.com/akashmaji946/mix/internal/source"
)

// Kind names one of the 25 diagnostic/fatal-error conditions the language
// defines.
type Kind int

const (
	UnexpectedEndOfText Kind = iota
	NumOverflowError
	LeadingZero
	VariableNameExpected
	AssignmentOperatorExpected
	SemicolonExpected
	ExpressionExpected
	CodeBlockExpected
	ColonExpected
	IdentifierExpected
	LeftBracketExpected
	RightBracketExpected
	RightCurlyBracketExpected
	DefaultStatementExpected
	NoEffect
	OperationBadTypes
	ZeroDivision
	NotDefined
	NotCallable
	MissingParameter
	UnexpectedArgument
	AssignMut
	UnexpectedType
	AlreadyDefined
	MaxRecursionDepth
)

var kindNames = map[Kind]string{
	UnexpectedEndOfText:        "UNEXPECTED_END_OF_TEXT",
	NumOverflowError:           "NUM_OVERFLOW_ERROR",
	LeadingZero:                "LEADING_ZERO",
	VariableNameExpected:       "VARIABLE_NAME_EXPECTED",
	AssignmentOperatorExpected: "ASSIGNMENT_OPERATOR_EXPECTED",
	SemicolonExpected:          "SEMICOLON_EXPECTED",
	ExpressionExpected:         "EXPRESSION_EXPECTED",
	CodeBlockExpected:          "CODE_BLOCK_EXPECTED",
	ColonExpected:              "COLON_EXPECTED",
	IdentifierExpected:         "IDENTIFIER_EXPECTED",
	LeftBracketExpected:        "LEFT_BRACKET_EXPECTED",
	RightBracketExpected:       "RIGHT_BRACKET_EXPECTED",
	RightCurlyBracketExpected:  "RIGHT_CURLY_BRACKET_EXPECTED",
	DefaultStatementExpected:   "DEFAULT_STATEMENT_EXPECTED",
	NoEffect:                   "NO_EFFECT",
	OperationBadTypes:          "OPERATION_BAD_TYPES",
	ZeroDivision:               "ZERO_DIVISION",
	NotDefined:                 "NOT_DEFINED",
	NotCallable:                "NOT_CALLABLE",
	MissingParameter:           "MISSING_PARAMETER",
	UnexpectedArgument:         "UNEXPECTED_ARGUMENT",
	AssignMut:                  "ASSIGN_MUT",
	UnexpectedType:             "UNEXPECTED_TYPE",
	AlreadyDefined:             "ALREADY_DEFINED",
	MaxRecursionDepth:          "MAX_RECURSION_DEPTH",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "UNKNOWN_ERROR"
}

// Diagnostic is a single non-fatal lexer or parser finding.
type Diagnostic struct {
	Kind    Kind
	Message string
	Pos     source.Position
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s", d.Pos, d.Message)
}

// Handler accumulates non-fatal diagnostics encountered while scanning and
// parsing. Unlike a FatalError, recording one never interrupts control
// flow: the caller is expected to keep going and produce the best AST it
// can, then consult HasErrors() once parsing finishes.
type Handler struct {
	errors []Diagnostic
}

// NewHandler returns an empty diagnostic collector.
func NewHandler() *Handler {
	return &Handler{}
}

// HasErrors reports whether any diagnostic has been recorded.
func (h *Handler) HasErrors() bool {
	return len(h.errors) > 0
}

// Errors returns the diagnostics recorded so far, in recording order.
func (h *Handler) Errors() []Diagnostic {
	return h.errors
}

func (h *Handler) record(kind Kind, pos source.Position, format string, args ...any) {
	h.errors = append(h.errors, Diagnostic{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
	})
}

// The following record the lexer's three non-fatal conditions.

func (h *Handler) UnexpectedEndOfText(pos source.Position) {
	h.record(UnexpectedEndOfText, pos, "unexpected end of text")
}

func (h *Handler) NumOverflowError(pos source.Position) {
	h.record(NumOverflowError, pos, "numeric literal exceeds the maximum of 39 digits")
}

func (h *Handler) LeadingZero(pos source.Position) {
	h.record(LeadingZero, pos, "numeric literal has a leading zero")
}

// The following record the parser's recoverable conditions. Each names the
// production that expected something and didn't find it, mirroring the
// error_handler.py method names one-for-one.

func (h *Handler) VariableNameExpected(pos source.Position) {
	h.record(VariableNameExpected, pos, "expected a variable name")
}

func (h *Handler) AssignmentOperatorExpected(pos source.Position) {
	h.record(AssignmentOperatorExpected, pos, "expected '='")
}

func (h *Handler) SemicolonExpected(pos source.Position) {
	h.record(SemicolonExpected, pos, "expected ';'")
}

func (h *Handler) ExpressionExpected(pos source.Position) {
	h.record(ExpressionExpected, pos, "expected an expression")
}

func (h *Handler) CodeBlockExpected(pos source.Position) {
	h.record(CodeBlockExpected, pos, "expected '{'")
}

func (h *Handler) ColonExpected(pos source.Position) {
	h.record(ColonExpected, pos, "expected ':'")
}

func (h *Handler) IdentifierExpected(pos source.Position) {
	h.record(IdentifierExpected, pos, "expected an identifier")
}

func (h *Handler) LeftBracketExpected(pos source.Position) {
	h.record(LeftBracketExpected, pos, "expected '('")
}

func (h *Handler) RightBracketExpected(pos source.Position) {
	h.record(RightBracketExpected, pos, "expected ')'")
}

func (h *Handler) RightCurlyBracketExpected(pos source.Position) {
	h.record(RightCurlyBracketExpected, pos, "expected '}'")
}

func (h *Handler) DefaultStatementExpected(pos source.Position) {
	h.record(DefaultStatementExpected, pos, "expected a 'default' case")
}

// NoEffect is carried over from the diagnostic set this language defines
// but, like in the reference interpreter, no production currently reports
// it; a statement-level "this expression has no effect" check would use it.
func (h *Handler) NoEffect(pos source.Position) {
	h.record(NoEffect, pos, "statement has no effect")
}

// FatalError is an evaluator-time condition that immediately unwinds the
// interpreter. It is returned as a normal Go error rather than panicked,
// so callers propagate it with ordinary `if err != nil` checks.
type FatalError struct {
	Kind    Kind
	Message string
	Pos     source.Position
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Pos, e.Message)
}

func fatal(kind Kind, pos source.Position, format string, args ...any) *FatalError {
	return &FatalError{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos}
}

func OperationBadTypes(pos source.Position) *FatalError {
	return fatal(OperationBadTypes, pos, "operand types do not match")
}

func ZeroDivision(pos source.Position) *FatalError {
	return fatal(ZeroDivision, pos, "division or modulo by zero")
}

func NotDefined(pos source.Position, name string) *FatalError {
	return fatal(NotDefined, pos, "'%s' is not defined", name)
}

func NotCallable(pos source.Position, name string) *FatalError {
	return fatal(NotCallable, pos, "'%s' is not callable", name)
}

func MissingParameter(pos source.Position, name string) *FatalError {
	return fatal(MissingParameter, pos, "missing argument for parameter '%s'", name)
}

func UnexpectedArgument(pos source.Position) *FatalError {
	return fatal(UnexpectedArgument, pos, "too many arguments supplied")
}

func AssignMut(pos source.Position, name string) *FatalError {
	return fatal(AssignMut, pos, "'%s' is not mutable", name)
}

func UnexpectedType(pos source.Position) *FatalError {
	return fatal(UnexpectedType, pos, "value has an unexpected type")
}

func AlreadyDefined(pos source.Position, name string) *FatalError {
	return fatal(AlreadyDefined, pos, "'%s' is already defined", name)
}

func MaxRecursionDepth(pos source.Position) *FatalError {
	return fatal(MaxRecursionDepth, pos, "maximum recursion depth exceeded")
}
