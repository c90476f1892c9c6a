package object

import (
	"context"
	"slices"

	"github.com/rivo/uniseg"
)

var (
	arrayMethods = NewMethodRegistry[*Array]("array")
	dictMethods  = NewMethodRegistry[*Dict]("dictionary")
	strMethods   = NewMethodRegistry[Str]("str")
	argsMethods  = NewMethodRegistry[*Args]("arguments")
	funcMethods  = NewMethodRegistry[Func]("function")
)

var mutatingMethods = []string{"push", "pop", "insert", "remove"}

var accessorMethods = []string{"at", "first", "last"}

// IsMutating reports whether a method updates its receiver in place, so
// that calling it requires an assignable receiver.
func IsMutating(method string) bool {
	return slices.Contains(mutatingMethods, method)
}

// IsAccessor reports whether a method call can be assigned to, as in
// `arr.at(0) = 1`.
func IsAccessor(method string) bool {
	return slices.Contains(accessorMethods, method)
}

// CallMethod calls a method that does not update its receiver.
func CallMethod(ctx context.Context, target Value, name string, args *Args) (Value, error) {
	switch t := target.(type) {
	case *Array:
		return arrayMethods.Call(t, ctx, name, args)
	case *Dict:
		return dictMethods.Call(t, ctx, name, args)
	case Str:
		return strMethods.Call(t, ctx, name, args)
	case *Args:
		return argsMethods.Call(t, ctx, name, args)
	case Func:
		if funcMethods.Has(name) {
			return funcMethods.Call(t, ctx, name, args)
		}
	}
	return nil, errorf("type %s has no method `%s`", target.Type(), name)
}

// CallMutMethod calls a method on a place and returns the updated
// receiver alongside the method's result.
func CallMutMethod(ctx context.Context, target Value, name string, args *Args) (Value, Value, error) {
	switch t := target.(type) {
	case *Array:
		return arrayMethods.CallMut(t, ctx, name, args)
	case *Dict:
		return dictMethods.CallMut(t, ctx, name, args)
	}
	v, err := CallMethod(ctx, target, name, args)
	return target, v, err
}

// Field reads a field: a dictionary key or a member of a module, type or
// function scope.
func Field(target Value, name string) (Value, error) {
	switch t := target.(type) {
	case *Dict:
		return t.At(name)
	case *Module:
		if v, ok := t.Scope().Get(name); ok {
			return v, nil
		}
		return nil, errorf("module `%s` does not contain `%s`", t.Name(), name)
	case *Type:
		if v, ok := t.Scope().Get(name); ok {
			return v, nil
		}
		return nil, errorf("type %s does not contain field `%s`", t.Name(), name)
	case Func:
		if scoped, ok := t.(Scoped); ok {
			if v, ok := scoped.Scope().Get(name); ok {
				return v, nil
			}
		}
		return nil, errorf("function `%s` does not contain field `%s`", t.Name(), name)
	}
	return nil, errorf("cannot access fields on type %s", target.Type())
}

// Iterate returns the items a `for` loop visits: array items, dictionary
// (key, value) pairs, grapheme clusters of a string, or positional
// arguments.
func Iterate(v Value) ([]Value, error) {
	switch v := v.(type) {
	case *Array:
		return v.Items(), nil
	case *Dict:
		out := make([]Value, 0, v.Len())
		for _, k := range v.Keys() {
			val, _ := v.Get(k)
			out = append(out, NewArray([]Value{Str(k), val}))
		}
		return out, nil
	case Str:
		return Clusters(string(v)), nil
	case *Args:
		return v.Positional(), nil
	}
	return nil, errorf("cannot loop over %s", v.Type())
}

// Clusters splits s into grapheme clusters.
func Clusters(s string) []Value {
	var out []Value
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		out = append(out, Str(gr.Str()))
	}
	return out
}
