/*
File    : mix/internal/eval/value.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package eval walks a parsed program and executes it against a two-level
// scope (globals plus a single active call frame), following the language's
// dynamic, duck-typed semantics.
package eval

import (
	"strconv"

	"github.com/akashmaji946/mix/internal/ast"
)

// Value is a tagged union over the four runtime types. Only the field named
// by Type is meaningful.
type Value struct {
	Type ast.LiteralType
	Num  float64
	Str  string
	Bool bool
}

func Null() Value                 { return Value{Type: ast.NullType} }
func NumVal(n float64) Value      { return Value{Type: ast.NumType, Num: n} }
func StrVal(s string) Value       { return Value{Type: ast.StrType, Str: s} }
func BoolVal(b bool) Value        { return Value{Type: ast.BoolType, Bool: b} }

// FromLiteral converts a parsed literal node into a runtime Value.
func FromLiteral(lit *ast.Literal) Value {
	switch lit.Type {
	case ast.NumType:
		return NumVal(lit.Value.(float64))
	case ast.StrType:
		return StrVal(lit.Value.(string))
	case ast.BoolType:
		return BoolVal(lit.Value.(bool))
	default:
		return Null()
	}
}

// Equal reports value equality within the same type; values of different
// types are never equal.
func (v Value) Equal(other Value) bool {
	if v.Type != other.Type {
		return false
	}
	switch v.Type {
	case ast.NumType:
		return v.Num == other.Num
	case ast.StrType:
		return v.Str == other.Str
	case ast.BoolType:
		return v.Bool == other.Bool
	default:
		return true
	}
}

// ToDisplayString renders a value the way the to_str builtin does: integral
// numbers drop their trailing ".0", booleans print as true/false, null
// prints as "null".
func (v Value) ToDisplayString() string {
	switch v.Type {
	case ast.StrType:
		return v.Str
	case ast.NumType:
		if v.Num == float64(int64(v.Num)) {
			return strconv.FormatInt(int64(v.Num), 10)
		}
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	case ast.BoolType:
		if v.Bool {
			return "true"
		}
		return "false"
	default:
		return "null"
	}
}
