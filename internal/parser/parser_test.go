package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akashmaji946/mix/internal/ast"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := NewParser([]byte(src))
	return p.Parse()
}

func TestParser_VarDefinition(t *testing.T) {
	prog := parse(t, `let x = 1;`)
	assert.Len(t, prog.Stmts, 1)
	v, ok := prog.Stmts[0].(*ast.VarDefinition)
	assert.True(t, ok)
	assert.Equal(t, "x", v.Name)
	assert.False(t, v.Mut)
}

func TestParser_MutableVarDefinition(t *testing.T) {
	prog := parse(t, `let mut x = 1;`)
	v := prog.Stmts[0].(*ast.VarDefinition)
	assert.True(t, v.Mut)
}

func TestParser_AssignmentAndCall(t *testing.T) {
	prog := parse(t, `
		let mut x = 1;
		x = 2;
		print(x);
	`)
	assert.Len(t, prog.Stmts, 3)
	_, isAssign := prog.Stmts[1].(*ast.Assignment)
	assert.True(t, isAssign)
	call, isCall := prog.Stmts[2].(*ast.Call)
	assert.True(t, isCall)
	assert.Equal(t, "print", call.Name)
	assert.Len(t, call.Args, 1)
}

func TestParser_Conditional(t *testing.T) {
	prog := parse(t, `if true { let x = 1; } else { let y = 2; }`)
	c := prog.Stmts[0].(*ast.Conditional)
	assert.NotNil(t, c.IfBlock)
	assert.NotNil(t, c.ElseBlock)
}

func TestParser_Loop(t *testing.T) {
	prog := parse(t, `while true { break; }`)
	l := prog.Stmts[0].(*ast.Loop)
	assert.Len(t, l.Body.Stmts, 1)
	_, isBreak := l.Body.Stmts[0].(*ast.Break)
	assert.True(t, isBreak)
}

func TestParser_FunctionDefinitionAndReturn(t *testing.T) {
	prog := parse(t, `
		fn add(a, mut b) {
			return a + b;
		}
	`)
	fn := prog.Stmts[0].(*ast.FuncDef)
	assert.Equal(t, "add", fn.Name)
	assert.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].Name)
	assert.False(t, fn.Params[0].Mut)
	assert.Equal(t, "b", fn.Params[1].Name)
	assert.True(t, fn.Params[1].Mut)

	ret := fn.Body.Stmts[0].(*ast.Return)
	assert.NotNil(t, ret.Expr)
}

func TestParser_MatchWithParenthesizedParams(t *testing.T) {
	prog := parse(t, `
		match n:
		case isEven: (x) { print("even"); }
		default: (x) { print("other"); }
	`)
	m := prog.Stmts[0].(*ast.Match)
	assert.Len(t, m.Args, 1)
	assert.Len(t, m.Cases, 1)
	assert.Equal(t, ast.CaseOperator, m.Cases[0].Ident.Kind)
	assert.Equal(t, "isEven", m.Cases[0].Ident.Operator)
	assert.Len(t, m.Cases[0].Params, 1)
	assert.NotNil(t, m.Default)
}

func TestParser_MatchMissingDefaultIsDiagnosed(t *testing.T) {
	p := NewParser([]byte(`
		match n:
		case isEven: (x) { print("even"); }
	`))
	p.Parse()
	assert.True(t, p.HasErrors())
}

func TestParser_PrecedenceClimbsLeftAssociative(t *testing.T) {
	prog := parse(t, `let x = 1 + 2 * 3;`)
	v := prog.Stmts[0].(*ast.VarDefinition)
	top := v.Expr.(*ast.BinaryExpr)
	assert.Equal(t, ast.OpAdd, top.Op)
	_, leftIsLit := top.Left.(*ast.Literal)
	assert.True(t, leftIsLit)
	right := top.Right.(*ast.BinaryExpr)
	assert.Equal(t, ast.OpMul, right.Op)
}

func TestParser_TrailingCommaTolerated(t *testing.T) {
	prog := parse(t, `print(1, 2,);`)
	call := prog.Stmts[0].(*ast.Call)
	assert.Len(t, call.Args, 2)
}
