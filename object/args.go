package object

import (
	"strings"

	"github.com/quillscript/quill/ast"
	"github.com/quillscript/quill/diag"
)

// Arg is a single call argument. Name is empty for positional arguments.
type Arg struct {
	Span  ast.Span
	Name  string
	Value Value
}

// Args holds the arguments of a call. Functions consume arguments with
// Expect, Eat and Named and reject leftovers with Finish.
type Args struct {
	Span  ast.Span
	Items []Arg
}

// NewArgs creates positional arguments.
func NewArgs(span ast.Span, values ...Value) *Args {
	args := &Args{Span: span}
	for _, v := range values {
		args.Push(span, v)
	}
	return args
}

func (a *Args) Type() *Type { return ArgsType }

func (a *Args) Repr() string {
	parts := make([]string, 0, len(a.Items))
	for _, item := range a.Items {
		if item.Name == "" {
			parts = append(parts, item.Value.Repr())
		} else {
			parts = append(parts, item.Name+": "+item.Value.Repr())
		}
	}
	return "arguments(" + strings.Join(parts, ", ") + ")"
}

// Push appends a positional argument.
func (a *Args) Push(span ast.Span, v Value) {
	a.Items = append(a.Items, Arg{Span: span, Value: v})
}

// Insert appends a named argument, replacing an earlier one of the same
// name.
func (a *Args) Insert(span ast.Span, name string, v Value) {
	for i := range a.Items {
		if a.Items[i].Name == name {
			a.Items = append(a.Items[:i], a.Items[i+1:]...)
			break
		}
	}
	a.Items = append(a.Items, Arg{Span: span, Name: name, Value: v})
}

// Spread appends the contents of an array, dictionary or arguments value.
func (a *Args) Spread(span ast.Span, v Value) error {
	switch v := v.(type) {
	case *NoneValue:
	case *Array:
		for _, item := range v.Items() {
			a.Push(span, item)
		}
	case *Dict:
		for _, k := range v.Keys() {
			val, _ := v.Get(k)
			a.Insert(span, k, val)
		}
	case *Args:
		for _, item := range v.Items {
			if item.Name == "" {
				a.Push(item.Span, item.Value)
			} else {
				a.Insert(item.Span, item.Name, item.Value)
			}
		}
	default:
		return errorf("cannot spread %s", v.Type())
	}
	return nil
}

// Clone returns an independent copy.
func (a *Args) Clone() *Args {
	return &Args{Span: a.Span, Items: append([]Arg(nil), a.Items...)}
}

// Positional returns the positional values in order.
func (a *Args) Positional() []Value {
	var out []Value
	for _, item := range a.Items {
		if item.Name == "" {
			out = append(out, item.Value)
		}
	}
	return out
}

// CountPositional returns the number of positional arguments left.
func (a *Args) CountPositional() int {
	n := 0
	for _, item := range a.Items {
		if item.Name == "" {
			n++
		}
	}
	return n
}

// Eat consumes the next positional argument if there is one.
func (a *Args) Eat() (Value, bool) {
	for i, item := range a.Items {
		if item.Name == "" {
			a.Items = append(a.Items[:i], a.Items[i+1:]...)
			return item.Value, true
		}
	}
	return nil, false
}

// Expect consumes the next positional argument or fails with a missing
// argument error naming what was expected.
func (a *Args) Expect(what string) (Value, error) {
	v, ok := a.Eat()
	if !ok {
		return nil, diag.Errorf(a.Span, "missing argument: %s", what)
	}
	return v, nil
}

// Named consumes the named argument name if present.
func (a *Args) Named(name string) (Value, bool) {
	for i, item := range a.Items {
		if item.Name == name {
			a.Items = append(a.Items[:i], a.Items[i+1:]...)
			return item.Value, true
		}
	}
	return nil, false
}

// TakeNamed consumes and returns all remaining named arguments.
func (a *Args) TakeNamed() []Arg {
	var named, rest []Arg
	for _, item := range a.Items {
		if item.Name == "" {
			rest = append(rest, item)
		} else {
			named = append(named, item)
		}
	}
	a.Items = rest
	return named
}

// Finish fails if any argument was not consumed.
func (a *Args) Finish() error {
	var err error
	for _, item := range a.Items {
		if item.Name == "" {
			err = diag.Append(err, diag.Errorf(item.Span, "unexpected argument"))
		} else {
			err = diag.Append(err, diag.Errorf(item.Span, "unexpected argument: %s", item.Name))
		}
	}
	return err
}

// Dict returns the named arguments as a dictionary.
func (a *Args) Dict() *Dict {
	d := NewDict()
	for _, item := range a.Items {
		if item.Name != "" {
			d = d.With(item.Name, item.Value)
		}
	}
	return d
}
