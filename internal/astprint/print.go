/*
File    : mix/internal/astprint/print.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package astprint renders a parsed program as an indented tree, used by
// the parser-idempotence tests.
package astprint

import (
	"bytes"
	"fmt"

	"github.com/akashmaji946/mix/internal/ast"
)

const indentSize = 2

// Printer walks a Program and accumulates a human-readable tree dump.
type Printer struct {
	indent int
	buf    bytes.Buffer
}

// Print renders prog as a tree-indented string.
func Print(prog *ast.Program) string {
	p := &Printer{}
	for _, s := range prog.Stmts {
		p.stmt(s)
	}
	return p.buf.String()
}

func (p *Printer) line(format string, args ...any) {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteByte(' ')
	}
	fmt.Fprintf(&p.buf, format, args...)
	p.buf.WriteByte('\n')
}

func (p *Printer) nested(f func()) {
	p.indent += indentSize
	f()
	p.indent -= indentSize
}

func (p *Printer) stmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.VarDefinition:
		p.line("VarDef %s mut=%v", n.Name, n.Mut)
		p.nested(func() { p.expr(n.Expr) })
	case *ast.Assignment:
		p.line("Assign %s", n.Name)
		p.nested(func() { p.expr(n.Expr) })
	case *ast.Block:
		p.line("Block")
		p.nested(func() {
			for _, st := range n.Stmts {
				p.stmt(st)
			}
		})
	case *ast.Conditional:
		p.line("If")
		p.nested(func() {
			p.expr(n.Cond)
			p.stmt(n.IfBlock)
			if n.ElseBlock != nil {
				p.stmt(n.ElseBlock)
			}
		})
	case *ast.Loop:
		p.line("While")
		p.nested(func() {
			p.expr(n.Cond)
			p.stmt(n.Body)
		})
	case *ast.Match:
		p.line("Match (%d args, %d cases)", len(n.Args), len(n.Cases))
		p.nested(func() {
			for _, a := range n.Args {
				p.expr(a)
			}
			for _, c := range n.Cases {
				p.line("Case")
				p.nested(func() { p.stmt(c.Body) })
			}
			if n.Default != nil {
				p.line("Default")
				p.nested(func() { p.stmt(n.Default.Body) })
			}
		})
	case *ast.FuncDef:
		p.line("FuncDef %s (%d params)", n.Name, len(n.Params))
		p.nested(func() { p.stmt(n.Body) })
	case *ast.Call:
		p.line("CallStmt %s (%d args)", n.Name, len(n.Args))
		p.nested(func() {
			for _, a := range n.Args {
				p.expr(a)
			}
		})
	case *ast.Return:
		p.line("Return")
		if n.Expr != nil {
			p.nested(func() { p.expr(n.Expr) })
		}
	case *ast.Break:
		p.line("Break")
	case *ast.Continue:
		p.line("Continue")
	default:
		p.line("<unknown stmt>")
	}
}

func (p *Printer) expr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Literal:
		p.line("Literal %s %v", n.Type, n.Value)
	case *ast.Identifier:
		p.line("Identifier %s", n.Name)
	case *ast.BinaryExpr:
		p.line("BinaryExpr op=%d", n.Op)
		p.nested(func() {
			p.expr(n.Left)
			if n.Right != nil {
				p.expr(n.Right)
			}
		})
	case *ast.UnaryExpr:
		p.line("UnaryExpr op=%d", n.Op)
		p.nested(func() { p.expr(n.Factor) })
	case *ast.Call:
		p.line("Call %s (%d args)", n.Name, len(n.Args))
		p.nested(func() {
			for _, a := range n.Args {
				p.expr(a)
			}
		})
	default:
		p.line("<unknown expr>")
	}
}
