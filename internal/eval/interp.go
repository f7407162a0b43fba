/*
File    : mix/internal/eval/interp.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package eval

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/akashmaji946/mix/internal/ast"
	"github.com/akashmaji946/mix/internal/diag"
	"github.com/akashmaji946/mix/internal/source"
)

// maxRecursionDepth caps nested user-function calls; builtins never count
// against it since they push no frame.
const maxRecursionDepth = 900

// Interpreter walks a Program and executes it against a single Scope,
// writing print/input traffic through Out/In. It stops at the first fatal
// error, matching the reference interpreter's unwind-on-first-fault design.
type Interpreter struct {
	Scope *Scope
	Out   io.Writer
	In    *bufio.Reader

	recursionDepth int
}

// New builds an interpreter with the three builtins already bound in the
// global scope, writing to out and reading REPL-style lines from in.
func New(out io.Writer, in io.Reader) *Interpreter {
	s := NewScope()
	s.Define("print", builtinBinding(BuiltinPrint))
	s.Define("to_str", builtinBinding(BuiltinToStr))
	s.Define("input", builtinBinding(BuiltinInput))
	return &Interpreter{Scope: s, Out: out, In: bufio.NewReader(in)}
}

// Run executes every top-level statement in order, stopping at the first
// fatal error.
func (in *Interpreter) Run(prog *ast.Program) error {
	for _, stmt := range prog.Stmts {
		if _, err := in.execStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) execBlock(b *ast.Block) (signal, error) {
	for _, stmt := range b.Stmts {
		sig, err := in.execStmt(stmt)
		if err != nil {
			return normalSignal, err
		}
		if sig.kind != sigNormal {
			return sig, nil
		}
	}
	return normalSignal, nil
}

func (in *Interpreter) execStmt(stmt ast.Stmt) (signal, error) {
	switch s := stmt.(type) {
	case *ast.VarDefinition:
		return normalSignal, in.execVarDef(s)
	case *ast.Assignment:
		return normalSignal, in.execAssignment(s)
	case *ast.Conditional:
		return in.execConditional(s)
	case *ast.Loop:
		return in.execLoop(s)
	case *ast.Match:
		return in.execMatch(s)
	case *ast.FuncDef:
		in.Scope.Define(s.Name, funcBinding(s))
		return normalSignal, nil
	case *ast.Call:
		_, err := in.execCall(s)
		return normalSignal, err
	case *ast.Return:
		v := Null()
		if s.Expr != nil {
			var err error
			v, err = in.evalExpr(s.Expr)
			if err != nil {
				return normalSignal, err
			}
		}
		return returnSignal(v), nil
	case *ast.Break:
		return breakSignal, nil
	case *ast.Continue:
		return continueSignal, nil
	case *ast.Block:
		return in.execBlock(s)
	}
	return normalSignal, nil
}

func (in *Interpreter) execVarDef(s *ast.VarDefinition) error {
	if in.Scope.LookUp(s.Name) != nil {
		return diag.AlreadyDefined(s.Pos, s.Name)
	}
	v, err := in.evalExpr(s.Expr)
	if err != nil {
		return err
	}
	in.Scope.Define(s.Name, varBinding(v, s.Mut))
	return nil
}

func (in *Interpreter) execAssignment(s *ast.Assignment) error {
	b := in.Scope.LookUp(s.Name)
	if b == nil {
		return diag.NotDefined(s.Pos, s.Name)
	}
	if !b.Mutable {
		return diag.AssignMut(s.Pos, s.Name)
	}
	v, err := in.evalExpr(s.Expr)
	if err != nil {
		return err
	}
	b.Value = v
	return nil
}

// execConditional runs the if-block when the condition is truthy and the
// else-block only when it is falsy — the reference Python always runs the
// else-block regardless of the condition, which this corrects.
func (in *Interpreter) execConditional(s *ast.Conditional) (signal, error) {
	cond, err := in.evalExpr(s.Cond)
	if err != nil {
		return normalSignal, err
	}
	if truthy(cond) {
		return in.execBlock(s.IfBlock)
	}
	if s.ElseBlock != nil {
		return in.execBlock(s.ElseBlock)
	}
	return normalSignal, nil
}

func (in *Interpreter) execLoop(s *ast.Loop) (signal, error) {
	for {
		cond, err := in.evalExpr(s.Cond)
		if err != nil {
			return normalSignal, err
		}
		if !truthy(cond) {
			return normalSignal, nil
		}
		sig, err := in.execBlock(s.Body)
		if err != nil {
			return normalSignal, err
		}
		switch sig.kind {
		case sigBreak:
			return normalSignal, nil
		case sigReturn:
			return sig, nil
		}
		// sigContinue and sigNormal both fall through to re-test the
		// condition and run the body again.
	}
}

func truthy(v Value) bool {
	return v.Type == ast.BoolType && v.Bool
}

// execMatch evaluates every argument, picks the first case whose predicate
// matches (parity, then quadrant, then type-identity, then literal
// equality, in that order), falls back to default, binds the matched
// case's parameters positionally to the match arguments, and runs its body.
func (in *Interpreter) execMatch(s *ast.Match) (signal, error) {
	args := make([]Value, 0, len(s.Args))
	for _, a := range s.Args {
		v, err := in.evalExpr(a)
		if err != nil {
			return normalSignal, err
		}
		args = append(args, v)
	}
	if len(args) < 1 {
		return normalSignal, diag.MissingParameter(s.Pos, "")
	}

	var params []ast.Param
	var body *ast.Block
	var bodyPos source.Position

	matched, err := in.pickCase(args, s.Cases)
	if err != nil {
		return normalSignal, err
	}
	if matched != nil {
		params, body, bodyPos = matched.Params, matched.Body, matched.Ident.Pos
	} else if s.Default != nil {
		params, body, bodyPos = s.Default.Params, s.Default.Body, s.Default.Pos
	} else {
		// Parser already recorded a missing-default diagnostic; the CLI and
		// the REPL both stop on parse errors, but a caller that runs such a
		// Program anyway gets a no-op match instead of a crash.
		return normalSignal, nil
	}

	if len(params) > len(args) {
		return normalSignal, diag.UnexpectedArgument(bodyPos)
	}
	for i, p := range params {
		in.Scope.Define(p.Name, varBinding(args[i], p.Mut))
	}
	return in.execBlock(body)
}

func (in *Interpreter) pickCase(args []Value, cases []*ast.Case) (*ast.Case, error) {
	for _, c := range cases {
		ok, err := in.matchesCase(args, c.Ident)
		if err != nil {
			return nil, err
		}
		if ok {
			return c, nil
		}
	}
	return nil, nil
}

func (in *Interpreter) matchesCase(args []Value, id ast.CaseIdentifier) (bool, error) {
	if id.Kind != ast.CaseOperator {
		return in.matchesTypeOrLiteral(args, id)
	}
	switch id.Operator {
	case "isOdd", "isEven":
		if err := checkType(id.Pos, args[0], ast.NumType); err != nil {
			return false, err
		}
		if id.Operator == "isOdd" {
			return math.Mod(args[0].Num, 2) != 0, nil
		}
		return math.Mod(args[0].Num, 2) == 0, nil
	case "isQuarterO", "isQuarterTw", "isQuarterTh", "isQuarterF":
		// The reference interpreter records a missing-parameter error here
		// but keeps indexing into args[1] regardless, which would panic on
		// a genuinely short argument list; this returns immediately instead.
		if len(args) < 2 {
			return false, diag.MissingParameter(id.Pos, "for quadrant operator")
		}
		if err := checkType(id.Pos, args[0], ast.NumType); err != nil {
			return false, err
		}
		if err := checkType(id.Pos, args[1], ast.NumType); err != nil {
			return false, err
		}
		x, y := args[0].Num, args[1].Num
		switch id.Operator {
		case "isQuarterO":
			return x > 0 && y > 0, nil
		case "isQuarterTw":
			return x < 0 && y > 0, nil
		case "isQuarterTh":
			return x < 0 && y < 0, nil
		case "isQuarterF":
			return x > 0 && y < 0, nil
		}
	}
	return false, nil
}

func (in *Interpreter) matchesTypeOrLiteral(args []Value, id ast.CaseIdentifier) (bool, error) {
	switch id.Kind {
	case ast.CaseLiteralType:
		return args[0].Type == id.Type, nil
	case ast.CaseLiteral:
		lit := FromLiteral(id.Literal)
		if err := checkType(id.Pos, args[0], lit.Type); err != nil {
			return false, err
		}
		return args[0].Equal(lit), nil
	}
	return false, nil
}

func checkType(pos source.Position, v Value, want ast.LiteralType) error {
	if v.Type != want {
		return diag.UnexpectedType(pos)
	}
	return nil
}

// execCall dispatches a function-call statement/expression: a builtin call
// bypasses scope-frame and recursion-depth bookkeeping entirely, since
// builtins have no body to recurse through.
func (in *Interpreter) execCall(c *ast.Call) (Value, error) {
	b := in.Scope.LookUp(c.Name)
	if b == nil {
		return Null(), diag.NotDefined(c.Pos, c.Name)
	}
	if b.IsBuiltin {
		return in.callBuiltin(c, b.Builtin)
	}
	if !b.IsFunc {
		return Null(), diag.NotCallable(c.Pos, c.Name)
	}
	return in.callFunction(c, b.Func)
}

func (in *Interpreter) callFunction(c *ast.Call, fn *ast.FuncDef) (Value, error) {
	argsLen, paramsLen := len(c.Args), len(fn.Params)
	if argsLen < paramsLen {
		return Null(), diag.MissingParameter(c.RParen, fn.Params[argsLen].Name)
	}
	if argsLen > paramsLen {
		return Null(), diag.UnexpectedArgument(c.RParen)
	}

	argVals := make([]Value, argsLen)
	for i, a := range c.Args {
		v, err := in.evalExpr(a)
		if err != nil {
			return Null(), err
		}
		argVals[i] = v
	}

	in.recursionDepth++
	if in.recursionDepth > maxRecursionDepth {
		in.recursionDepth--
		return Null(), diag.MaxRecursionDepth(c.Pos)
	}
	defer func() { in.recursionDepth-- }()

	restore := in.Scope.PushFrame(fn, argVals)
	defer restore()

	sig, err := in.execBlock(fn.Body)
	if err != nil {
		return Null(), err
	}
	if sig.kind == sigReturn {
		return sig.value, nil
	}
	return Null(), nil
}

func (in *Interpreter) callBuiltin(c *ast.Call, kind BuiltinKind) (Value, error) {
	switch kind {
	case BuiltinPrint:
		if len(c.Args) != 1 {
			if len(c.Args) < 1 {
				return Null(), diag.MissingParameter(c.RParen, "arg")
			}
			return Null(), diag.UnexpectedArgument(c.RParen)
		}
		v, err := in.evalExpr(c.Args[0])
		if err != nil {
			return Null(), err
		}
		if err := checkType(c.Pos, v, ast.StrType); err != nil {
			return Null(), err
		}
		fmt.Fprint(in.Out, v.Str)
		return Null(), nil
	case BuiltinToStr:
		if len(c.Args) != 1 {
			if len(c.Args) < 1 {
				return Null(), diag.MissingParameter(c.RParen, "arg")
			}
			return Null(), diag.UnexpectedArgument(c.RParen)
		}
		v, err := in.evalExpr(c.Args[0])
		if err != nil {
			return Null(), err
		}
		return StrVal(v.ToDisplayString()), nil
	case BuiltinInput:
		line, _ := in.In.ReadString('\n')
		line = trimLineEnd(line)
		return StrVal(line), nil
	}
	return Null(), nil
}

func trimLineEnd(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}

// evalExpr evaluates an expression to a Value.
func (in *Interpreter) evalExpr(e ast.Expr) (Value, error) {
	switch ex := e.(type) {
	case *ast.Literal:
		return FromLiteral(ex), nil
	case *ast.Identifier:
		b := in.Scope.LookUp(ex.Name)
		if b == nil {
			return Null(), diag.NotDefined(ex.Pos, ex.Name)
		}
		return b.Value, nil
	case *ast.BinaryExpr:
		return in.evalBinary(ex)
	case *ast.UnaryExpr:
		return in.evalUnary(ex)
	case *ast.Call:
		return in.execCall(ex)
	}
	return Null(), nil
}

func (in *Interpreter) evalBinary(b *ast.BinaryExpr) (Value, error) {
	switch b.Op {
	case ast.OpOr:
		return in.evalOr(b)
	case ast.OpAnd:
		return in.evalAnd(b)
	}

	left, err := in.evalExpr(b.Left)
	if err != nil {
		return Null(), err
	}
	if b.Right == nil {
		return left, nil
	}
	right, err := in.evalExpr(b.Right)
	if err != nil {
		return Null(), err
	}

	switch b.Op {
	case ast.OpLT, ast.OpLE, ast.OpGT, ast.OpGE, ast.OpEQ, ast.OpNE:
		return evalRelational(b.Op, left, right, b.Pos)
	case ast.OpAdd, ast.OpSub:
		return evalAdditive(b.Op, left, right, b.Pos)
	case ast.OpMul, ast.OpDiv, ast.OpMod:
		return evalMultiplicative(b.Op, left, right, b.Pos)
	}
	return Null(), nil
}

// evalOr short-circuits on a true left operand without evaluating the
// right; both operands must be BOOL, checked via UnexpectedType exactly as
// the reference's boolean-expression type guard does.
func (in *Interpreter) evalOr(b *ast.BinaryExpr) (Value, error) {
	left, err := in.evalExpr(b.Left)
	if err != nil {
		return Null(), err
	}
	if err := checkType(b.Pos, left, ast.BoolType); err != nil {
		return Null(), err
	}
	if left.Bool {
		return BoolVal(true), nil
	}
	if b.Right == nil {
		return BoolVal(left.Bool), nil
	}
	right, err := in.evalExpr(b.Right)
	if err != nil {
		return Null(), err
	}
	if err := checkType(b.Pos, right, ast.BoolType); err != nil {
		return Null(), err
	}
	return BoolVal(right.Bool), nil
}

func (in *Interpreter) evalAnd(b *ast.BinaryExpr) (Value, error) {
	left, err := in.evalExpr(b.Left)
	if err != nil {
		return Null(), err
	}
	if err := checkType(b.Pos, left, ast.BoolType); err != nil {
		return Null(), err
	}
	if !left.Bool {
		return BoolVal(false), nil
	}
	if b.Right == nil {
		return BoolVal(left.Bool), nil
	}
	right, err := in.evalExpr(b.Right)
	if err != nil {
		return Null(), err
	}
	if err := checkType(b.Pos, right, ast.BoolType); err != nil {
		return Null(), err
	}
	return BoolVal(right.Bool), nil
}

func evalRelational(op ast.BinOp, left, right Value, pos source.Position) (Value, error) {
	if left.Type != right.Type {
		return Null(), diag.OperationBadTypes(pos)
	}
	switch op {
	case ast.OpLT:
		return BoolVal(less(left, right)), nil
	case ast.OpLE:
		return BoolVal(less(left, right) || left.Equal(right)), nil
	case ast.OpGT:
		return BoolVal(!less(left, right) && !left.Equal(right)), nil
	case ast.OpGE:
		return BoolVal(!less(left, right)), nil
	case ast.OpEQ:
		return BoolVal(left.Equal(right)), nil
	case ast.OpNE:
		return BoolVal(!left.Equal(right)), nil
	}
	return BoolVal(false), nil
}

// less orders two same-typed values: NUM numerically, STR byte-wise, BOOL
// with false before true; NULL is never less than anything.
func less(a, b Value) bool {
	switch a.Type {
	case ast.NumType:
		return a.Num < b.Num
	case ast.StrType:
		return a.Str < b.Str
	case ast.BoolType:
		return !a.Bool && b.Bool
	default:
		return false
	}
}

func evalAdditive(op ast.BinOp, left, right Value, pos source.Position) (Value, error) {
	if left.Type != right.Type {
		return Null(), diag.OperationBadTypes(pos)
	}
	if left.Type != ast.NumType {
		return Null(), diag.OperationBadTypes(pos)
	}
	if op == ast.OpAdd {
		return NumVal(left.Num + right.Num), nil
	}
	return NumVal(left.Num - right.Num), nil
}

func evalMultiplicative(op ast.BinOp, left, right Value, pos source.Position) (Value, error) {
	if left.Type != right.Type {
		return Null(), diag.OperationBadTypes(pos)
	}
	if left.Type != ast.NumType {
		return Null(), diag.OperationBadTypes(pos)
	}
	switch op {
	case ast.OpMul:
		return NumVal(left.Num * right.Num), nil
	case ast.OpDiv:
		if right.Num == 0 {
			return Null(), diag.ZeroDivision(pos)
		}
		return NumVal(left.Num / right.Num), nil
	case ast.OpMod:
		if right.Num == 0 {
			return Null(), diag.ZeroDivision(pos)
		}
		return NumVal(math.Mod(left.Num, right.Num)), nil
	}
	return Null(), nil
}

func (in *Interpreter) evalUnary(u *ast.UnaryExpr) (Value, error) {
	v, err := in.evalExpr(u.Factor)
	if err != nil {
		return Null(), err
	}
	switch u.Op {
	case ast.OpNot:
		if v.Type != ast.BoolType {
			return Null(), diag.OperationBadTypes(u.Pos)
		}
		return BoolVal(!v.Bool), nil
	case ast.OpNeg:
		if v.Type != ast.NumType {
			return Null(), diag.OperationBadTypes(u.Pos)
		}
		return NumVal(-v.Num), nil
	}
	return Null(), nil
}
