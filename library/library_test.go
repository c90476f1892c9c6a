package library

import (
	"context"
	"testing"

	"github.com/quillscript/quill/ast"
	"github.com/quillscript/quill/compiler"
	"github.com/quillscript/quill/internal/build"
	"github.com/quillscript/quill/object"
	"github.com/quillscript/quill/vm"
	"github.com/stretchr/testify/require"
)

func call(t *testing.T, scope *object.Scope, name string, values ...object.Value) (object.Value, error) {
	t.Helper()
	v, ok := scope.Get(name)
	require.True(t, ok, "missing global %s", name)
	fn, ok := v.(object.Func)
	require.True(t, ok, "%s is not callable", name)
	return fn.Call(context.Background(), object.NewArgs(ast.Detached(), values...))
}

func member(t *testing.T, scope *object.Scope, path ...string) object.Func {
	t.Helper()
	v, ok := scope.Get(path[0])
	require.True(t, ok)
	for _, name := range path[1:] {
		var err error
		v, err = object.Field(v, name)
		require.Nil(t, err)
	}
	fn, ok := v.(object.Func)
	require.True(t, ok)
	return fn
}

func TestConversions(t *testing.T) {
	lib := New()
	tests := []struct {
		name     string
		arg      object.Value
		expected object.Value
	}{
		{"int", object.Str(" 42 "), object.Int(42)},
		{"int", object.Float(2.9), object.Int(2)},
		{"int", object.Bool(true), object.Int(1)},
		{"float", object.Int(3), object.Float(3)},
		{"float", object.Str("1.5"), object.Float(1.5)},
		{"str", object.Int(7), object.Str("7")},
		{"str", object.Str("x"), object.Str("x")},
		{"repr", object.Str("x"), object.Str(`"x"`)},
		{"type", object.Int(1), object.IntType},
		{"len", object.Str("héllo"), object.Int(6)},
		{"len", object.NewArray([]object.Value{object.None}), object.Int(1)},
		{"upper", object.Str("hello"), object.Str("HELLO")},
		{"lower", object.Str("ÀB"), object.Str("àb")},
	}
	for _, tt := range tests {
		v, err := call(t, lib, tt.name, tt.arg)
		require.Nil(t, err, "%s(%s)", tt.name, tt.arg.Repr())
		require.Equal(t, tt.expected, v, "%s(%s)", tt.name, tt.arg.Repr())
	}

	_, err := call(t, lib, "int", object.Str("nope"))
	require.EqualError(t, err, "invalid integer: nope")
}

func TestFromUnicode(t *testing.T) {
	fn := member(t, New(), "str", "from-unicode")
	v, err := fn.Call(context.Background(), object.NewArgs(ast.Detached(), object.Int(0x1F600)))
	require.Nil(t, err)
	require.Equal(t, object.Str("😀"), v)

	_, err = fn.Call(context.Background(), object.NewArgs(ast.Detached(), object.Int(-1)))
	require.EqualError(t, err, "-1 is not a valid codepoint")
}

func TestRange(t *testing.T) {
	lib := New()
	v, err := call(t, lib, "range", object.Int(3))
	require.Nil(t, err)
	require.Equal(t, "(0, 1, 2)", v.Repr())

	fn := member(t, lib, "range")
	args := object.NewArgs(ast.Detached(), object.Int(5), object.Int(0))
	args.Insert(ast.Detached(), "step", object.Int(-2))
	v, err = fn.Call(context.Background(), args)
	require.Nil(t, err)
	require.Equal(t, "(5, 3, 1)", v.Repr())

	args = object.NewArgs(ast.Detached(), object.Int(1))
	args.Insert(ast.Detached(), "step", object.Int(0))
	_, err = fn.Call(context.Background(), args)
	require.EqualError(t, err, "range: step must not be zero")
}

func TestAssert(t *testing.T) {
	lib := New()
	_, err := call(t, lib, "assert", object.Bool(true))
	require.Nil(t, err)
	_, err = call(t, lib, "assert", object.Bool(false))
	require.EqualError(t, err, "assertion failed")

	eq := member(t, lib, "assert", "eq")
	_, err = eq.Call(context.Background(), object.NewArgs(ast.Detached(), object.Int(1), object.Int(2)))
	require.EqualError(t, err, "equality assertion failed: value 1 was not equal to 2")

	args := object.NewArgs(ast.Detached(), object.Int(1), object.Int(2))
	args.Insert(ast.Detached(), "message", object.Str("custom"))
	_, err = eq.Call(context.Background(), args)
	require.EqualError(t, err, "custom")

	ne := member(t, lib, "assert", "ne")
	_, err = ne.Call(context.Background(), object.NewArgs(ast.Detached(), object.Int(1), object.Int(2)))
	require.Nil(t, err)
}

func TestPanic(t *testing.T) {
	_, err := call(t, New(), "panic", object.Str("boom"), object.Int(1))
	require.EqualError(t, err, `panicked with: "boom", 1`)
}

func TestCalc(t *testing.T) {
	lib := New()
	tests := []struct {
		fn       string
		args     []object.Value
		expected object.Value
	}{
		{"abs", []object.Value{object.Int(-3)}, object.Int(3)},
		{"abs", []object.Value{object.Float(-1.5)}, object.Float(1.5)},
		{"min", []object.Value{object.Int(3), object.Int(1), object.Int(2)}, object.Int(1)},
		{"max", []object.Value{object.Int(3), object.Float(4.5)}, object.Float(4.5)},
		{"pow", []object.Value{object.Int(2), object.Int(10)}, object.Int(1024)},
		{"pow", []object.Value{object.Int(4), object.Float(0.5)}, object.Float(2)},
		{"rem", []object.Value{object.Int(7), object.Int(3)}, object.Int(1)},
	}
	for _, tt := range tests {
		fn := member(t, lib, "calc", tt.fn)
		v, err := fn.Call(context.Background(), object.NewArgs(ast.Detached(), tt.args...))
		require.Nil(t, err, "calc.%s", tt.fn)
		require.Equal(t, tt.expected, v, "calc.%s", tt.fn)
	}

	rem := member(t, lib, "calc", "rem")
	_, err := rem.Call(context.Background(), object.NewArgs(ast.Detached(), object.Int(1), object.Int(0)))
	require.EqualError(t, err, "divisor must not be zero")
}

func TestLibraryFromCode(t *testing.T) {
	b := build.New("main.ql")
	src := b.Source(
		b.Import(b.Ident("calc"), "", b.Items(b.Item("max", ""))),
		b.Call(b.Ident("str"), b.Call(b.Ident("max"),
			b.Call(b.Ident("len"), b.Str("abc")),
			b.Call(b.Field(b.Ident("calc"), "abs"), b.Int(-7)),
		)),
	)
	unit, err := compiler.Compile(context.Background(), src, &compiler.Config{Library: New()})
	require.Nil(t, err)
	m, err := vm.New().EvalModule(context.Background(), unit)
	require.Nil(t, err)
	require.Equal(t, object.Str("7"), m.Content())
}
