// Package object provides the dynamic values quill code operates on.
//
// Values are immutable from the point of view of the language: arrays and
// dictionaries are copied on write, so assigning a value to a second
// variable never aliases it. Type switches over the concrete types are the
// intended way to inspect a value:
//
//	switch v := v.(type) {
//	case object.Int:
//		// use int64(v)
//	case *object.Array:
//		// use v.Items()
//	}
package object

import (
	"context"
)

// Value is implemented by every quill value.
type Value interface {
	// Type returns the type of the value.
	Type() *Type

	// Repr returns the source-like representation of the value.
	Repr() string
}

// Func is a callable value: a native function, a closure, or a function
// with pre-applied arguments.
type Func interface {
	Value

	// Name returns the function name, or "" for anonymous closures.
	Name() string

	// Call invokes the function. The function may consume the args.
	Call(ctx context.Context, args *Args) (Value, error)
}

// Type is the type of a value. Types are values themselves; some can be
// called to convert a value and some carry static members.
type Type struct {
	name      string
	long      string
	scope     *Scope
	construct NativeFunc
}

// NewType creates a type. long is the name used in error messages.
func NewType(name, long string) *Type {
	return &Type{name: name, long: long, scope: NewScope()}
}

// Predefined types.
var (
	NoneType   = NewType("none", "none")
	AutoType   = NewType("auto", "auto")
	BoolType   = NewType("bool", "boolean")
	IntType    = NewType("int", "integer")
	FloatType  = NewType("float", "float")
	StrType    = NewType("str", "string")
	ArrayType  = NewType("array", "array")
	DictType   = NewType("dictionary", "dictionary")
	ArgsType   = NewType("arguments", "arguments")
	FuncType   = NewType("function", "function")
	ModuleType = NewType("module", "module")
	TypeType   = NewType("type", "type")
)

func (t *Type) Type() *Type    { return TypeType }
func (t *Type) Repr() string   { return t.name }
func (t *Type) Name() string   { return t.name }
func (t *Type) String() string { return t.long }

// Scope returns the static members of the type, e.g. `str.from-unicode`.
func (t *Type) Scope() *Scope { return t.scope }

// SetConstructor makes the type callable.
func (t *Type) SetConstructor(fn NativeFunc) *Type {
	t.construct = fn
	return t
}

// Call converts or constructs a value of this type.
func (t *Type) Call(ctx context.Context, args *Args) (Value, error) {
	if t.construct == nil {
		return nil, errorf("type %s cannot be called", t.name)
	}
	return t.construct(ctx, args)
}
