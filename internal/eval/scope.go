package eval

import "github.com/akashmaji946/mix/internal/ast"

// BuiltinKind names one of the three built-in functions. They never push a
// call frame and never count against recursion depth.
type BuiltinKind int

const (
	BuiltinPrint BuiltinKind = iota
	BuiltinToStr
	BuiltinInput
)

// Binding is whatever a name can be bound to: a variable, a user-defined
// function, or a builtin.
type Binding struct {
	IsVar   bool
	Value   Value
	Mutable bool

	IsFunc  bool
	Func    *ast.FuncDef

	IsBuiltin bool
	Builtin   BuiltinKind
}

func varBinding(v Value, mutable bool) *Binding {
	return &Binding{IsVar: true, Value: v, Mutable: mutable}
}

func funcBinding(f *ast.FuncDef) *Binding {
	return &Binding{IsFunc: true, Func: f}
}

func builtinBinding(k BuiltinKind) *Binding {
	return &Binding{IsBuiltin: true, Builtin: k}
}

// Scope is the two-level environment the language runs on: a single global
// frame plus, during a function call, exactly one active call frame. There
// is no lexical parent chain — a function body sees only its own locals and
// the globals, never an enclosing call's locals.
type Scope struct {
	global map[string]*Binding
	frame  map[string]*Binding // nil when no call is active
}

func NewScope() *Scope {
	return &Scope{global: make(map[string]*Binding)}
}

// LookUp finds a name, preferring the active call frame over globals.
func (s *Scope) LookUp(name string) *Binding {
	if s.frame != nil {
		if b, ok := s.frame[name]; ok {
			return b
		}
	}
	if b, ok := s.global[name]; ok {
		return b
	}
	return nil
}

// Define installs a brand new binding in whichever frame is active.
func (s *Scope) Define(name string, b *Binding) {
	if s.frame != nil {
		s.frame[name] = b
		return
	}
	s.global[name] = b
}

// InCallFrame reports whether a call frame is currently active.
func (s *Scope) InCallFrame() bool {
	return s.frame != nil
}

// PushFrame enters a user-defined function call: a fresh frame holding the
// function's own name (so it can recurse by name) and each argument bound
// to its parameter name. Only one frame is ever active at a time: a nested
// call replaces the caller's frame, and the returned restore function puts
// the caller's frame back.
func (s *Scope) PushFrame(fn *ast.FuncDef, args []Value) func() {
	prev := s.frame
	next := make(map[string]*Binding, len(args)+1)
	next[fn.Name] = funcBinding(fn)
	for i, p := range fn.Params {
		next[p.Name] = varBinding(args[i], p.Mut)
	}
	s.frame = next
	return func() { s.frame = prev }
}
