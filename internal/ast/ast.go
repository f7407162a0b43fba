/*
File    : mix/internal/ast/ast.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package ast defines the Mix abstract syntax tree: one Go type per grammar
// production, each tagged onto a small Expr or Stmt interface so the
// evaluator and the debug printer can dispatch by type switch rather than
// double-dispatch visitor methods.
package ast

import "github.com/akashmaji946/mix/internal/source"

// Node is satisfied by every AST node; it exposes the position the parser
// recorded for diagnostics.
type Node interface {
	Position() source.Position
}

// Expr is any node that produces a Value when evaluated.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any node executed for effect.
type Stmt interface {
	Node
	stmtNode()
}

// Program is the root of the tree: an ordered list of top-level statements.
type Program struct {
	Stmts []Stmt
}
