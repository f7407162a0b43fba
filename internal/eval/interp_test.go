package eval

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akashmaji946/mix/internal/diag"
	"github.com/akashmaji946/mix/internal/parser"
)

// run parses and executes src against a fresh interpreter, returning
// whatever print() wrote and the terminating error, if any.
func run(t *testing.T, src string) (string, error) {
	t.Helper()
	p := parser.NewParser([]byte(src))
	prog := p.Parse()
	assert.False(t, p.HasErrors(), "unexpected parse errors: %v", p.Errors())

	var out bytes.Buffer
	interp := New(&out, strings.NewReader(""))
	err := interp.Run(prog)
	return out.String(), err
}

func TestInterp_ArithmeticAndPrint(t *testing.T) {
	out, err := run(t, `print(to_str(1 + 2 * 3));`)
	assert.NoError(t, err)
	assert.Equal(t, "7", out)
}

func TestInterp_VarDefinitionAndMutation(t *testing.T) {
	out, err := run(t, `
		let mut x = 1;
		x = x + 1;
		print(to_str(x));
	`)
	assert.NoError(t, err)
	assert.Equal(t, "2", out)
}

func TestInterp_ImmutableAssignmentIsFatal(t *testing.T) {
	_, err := run(t, `
		let x = 1;
		x = 2;
	`)
	fe, ok := err.(*diag.FatalError)
	assert.True(t, ok)
	assert.Equal(t, diag.AssignMut, fe.Kind)
}

func TestInterp_RedefiningIsFatal(t *testing.T) {
	_, err := run(t, `
		let x = 1;
		let x = 2;
	`)
	fe, ok := err.(*diag.FatalError)
	assert.True(t, ok)
	assert.Equal(t, diag.AlreadyDefined, fe.Kind)
}

func TestInterp_ConditionalElseOnlyOnFalse(t *testing.T) {
	out, err := run(t, `
		if true {
			print("a");
		} else {
			print("b");
		}
	`)
	assert.NoError(t, err)
	assert.Equal(t, "a", out)
}

func TestInterp_LoopWithBreakAndContinue(t *testing.T) {
	out, err := run(t, `
		let mut i = 0;
		let mut sum = 0;
		while i < 10 {
			i = i + 1;
			if i is 5 {
				continue;
			}
			if i is 8 {
				break;
			}
			sum = sum + i;
		}
		print(to_str(sum));
	`)
	assert.NoError(t, err)
	// 1+2+3+4+6+7 = 23 (5 skipped via continue, loop stops before adding 8)
	assert.Equal(t, "23", out)
}

func TestInterp_ShortCircuitOr(t *testing.T) {
	_, err := run(t, `
		fn boom() {
			return 1 + true;
		}
		let x = true or boom();
		print(to_str(x));
	`)
	assert.NoError(t, err)
}

func TestInterp_ShortCircuitAnd(t *testing.T) {
	_, err := run(t, `
		fn boom() {
			return 1 + true;
		}
		let x = false and boom();
		print(to_str(x));
	`)
	assert.NoError(t, err)
}

func TestInterp_RecursiveFunctionCall(t *testing.T) {
	out, err := run(t, `
		fn fact(n) {
			if n <= 1 {
				return 1;
			}
			return n * fact(n - 1);
		}
		print(to_str(fact(5)));
	`)
	assert.NoError(t, err)
	assert.Equal(t, "120", out)
}

func TestInterp_TopLevelVarsAreGlobalAndVisibleInCalls(t *testing.T) {
	out, err := run(t, `
		let x = 1;
		fn f() {
			return x;
		}
		print(to_str(f()));
	`)
	assert.NoError(t, err)
	assert.Equal(t, "1", out)
}

func TestInterp_NestedCallDoesNotSeeCallersLocals(t *testing.T) {
	_, err := run(t, `
		fn g() {
			return localOnlyInF;
		}
		fn f() {
			let localOnlyInF = 1;
			return g();
		}
		print(to_str(f()));
	`)
	fe, ok := err.(*diag.FatalError)
	assert.True(t, ok, "g's frame must not see f's locals — only one call frame is active at a time")
	assert.Equal(t, diag.NotDefined, fe.Kind)
}

func TestInterp_DivisionByZeroIsFatal(t *testing.T) {
	_, err := run(t, `let x = 1 / 0;`)
	fe, ok := err.(*diag.FatalError)
	assert.True(t, ok)
	assert.Equal(t, diag.ZeroDivision, fe.Kind)
}

func TestInterp_TypeMismatchIsFatal(t *testing.T) {
	_, err := run(t, `let x = 1 + "a";`)
	fe, ok := err.(*diag.FatalError)
	assert.True(t, ok)
	assert.Equal(t, diag.OperationBadTypes, fe.Kind)
}

func TestInterp_MatchParityAndDefault(t *testing.T) {
	out, err := run(t, `
		match 4:
		case isEven: (x) { print("even"); }
		default: (x) { print("odd"); }
	`)
	assert.NoError(t, err)
	assert.Equal(t, "even", out)

	out, err = run(t, `
		match 3:
		case isEven: (x) { print("even"); }
		default: (x) { print("odd"); }
	`)
	assert.NoError(t, err)
	assert.Equal(t, "odd", out)
}

func TestInterp_MatchQuadrant(t *testing.T) {
	out, err := run(t, `
		match 2, 3:
		case isQuarterO: (x, y) { print("Q1"); }
		default: (x, y) { print("other"); }
	`)
	assert.NoError(t, err)
	assert.Equal(t, "Q1", out)
}

func TestInterp_MatchTypeIdentity(t *testing.T) {
	out, err := run(t, `
		match "hi":
		case str: (x) { print("is str"); }
		default: (x) { print("other"); }
	`)
	assert.NoError(t, err)
	assert.Equal(t, "is str", out)
}

func TestInterp_MatchLiteralEquality(t *testing.T) {
	out, err := run(t, `
		match 42:
		case 42: (x) { print("the answer"); }
		default: (x) { print("other"); }
	`)
	assert.NoError(t, err)
	assert.Equal(t, "the answer", out)
}

func TestInterp_RecursionLimit(t *testing.T) {
	_, err := run(t, `
		fn loopForever(n) {
			return loopForever(n + 1);
		}
		let x = loopForever(0);
	`)
	fe, ok := err.(*diag.FatalError)
	assert.True(t, ok)
	assert.Equal(t, diag.MaxRecursionDepth, fe.Kind)
}

func TestInterp_ToStrFormatsEveryType(t *testing.T) {
	out, err := run(t, `
		print(to_str(5));
		print(" ");
		print(to_str(5.5));
		print(" ");
		print(to_str(true));
		print(" ");
		print(to_str(null));
	`)
	assert.NoError(t, err)
	assert.Equal(t, "5 5.5 true null", out)
}
