package bytecode

import (
	"github.com/quillscript/quill/ast"
	"github.com/quillscript/quill/object"
)

// ClosureMode is the runtime representation of a compiled closure.
type ClosureMode uint8

const (
	// Deferred closures are built each time the enclosing code runs,
	// copying their captures and run-time defaults.
	Deferred ClosureMode = iota
	// Instantiated closures were built once at compile time and are
	// shared by every evaluation.
	Instantiated
)

func (m ClosureMode) String() string {
	if m == Instantiated {
		return "instantiated"
	}
	return "deferred"
}

// Closure is a nested closure of a unit.
type Closure struct {
	Mode ClosureMode
	Unit *Unit
	// Value is the shared runtime closure of an Instantiated closure.
	Value object.Func
}

// Capture copies a variable of the enclosing unit into the closure.
type Capture struct {
	Name string
	Span ast.Span
	// Source is read from the enclosing frame when the closure is built.
	Source Readable
	// Target is the closure register the captured value is written to.
	Target Register
}

// ParamKind is the kind of a closure parameter.
type ParamKind uint8

const (
	ParamPos ParamKind = iota
	ParamNamed
	ParamSink
)

// Param describes how one parameter is bound when the closure is called.
type Param struct {
	Kind ParamKind
	Name string
	Span ast.Span
	// Target is the register the argument is written to.
	Target Register
	// Default is read from the enclosing frame when the closure is built.
	// Only named parameters have defaults.
	Default    Readable
	HasDefault bool
	// Discard marks an anonymous sink (`..`).
	Discard bool
}
