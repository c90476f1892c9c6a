package object

import (
	"context"
	"testing"

	"github.com/quillscript/quill/ast"
	"github.com/stretchr/testify/require"
)

func ints(values ...int64) *Array {
	items := make([]Value, 0, len(values))
	for _, v := range values {
		items = append(items, Int(v))
	}
	return NewArray(items)
}

func TestRepr(t *testing.T) {
	tests := []struct {
		value    Value
		expected string
	}{
		{None, "none"},
		{Auto, "auto"},
		{Bool(true), "true"},
		{Int(-3), "-3"},
		{Float(1), "1.0"},
		{Float(2.5), "2.5"},
		{Str("a\"b"), `"a\"b"`},
		{ints(), "()"},
		{ints(1), "(1,)"},
		{ints(1, 2), "(1, 2)"},
		{NewDict(), "(:)"},
		{DictOf("a", Int(1), "two words", Str("x")), `(a: 1, "two words": "x")`},
		{IntType, "int"},
		{NewArgs(ast.Detached(), Int(1)), "arguments(1)"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.expected, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.value.Repr())
		})
	}
}

func TestArithmetic(t *testing.T) {
	v, err := Add(Int(1), Int(2))
	require.Nil(t, err)
	require.Equal(t, Int(3), v)

	v, err = Add(Int(1), Float(0.5))
	require.Nil(t, err)
	require.Equal(t, Float(1.5), v)

	v, err = Add(None, Str("x"))
	require.Nil(t, err)
	require.Equal(t, Str("x"), v)

	v, err = Div(Int(1), Int(2))
	require.Nil(t, err)
	require.Equal(t, Float(0.5), v)

	_, err = Div(Int(1), Int(0))
	require.EqualError(t, err, "cannot divide by zero")

	_, err = Add(Int(1), Str("a"))
	require.EqualError(t, err, "cannot add integer and string")

	_, err = Add(Int(9223372036854775807), Int(1))
	require.EqualError(t, err, "value is too large")

	v, err = Mul(Str("ab"), Int(3))
	require.Nil(t, err)
	require.Equal(t, Str("ababab"), v)

	v, err = Mul(Int(2), ints(1, 2))
	require.Nil(t, err)
	require.True(t, Equal(ints(1, 2, 1, 2), v))

	v, err = Sub(Float(1), Int(3))
	require.Nil(t, err)
	require.Equal(t, Float(-2), v)

	_, err = Not(Int(1))
	require.EqualError(t, err, "cannot apply 'not' to integer")

	v, err = Neg(Int(4))
	require.Nil(t, err)
	require.Equal(t, Int(-4), v)
}

func TestEqualAndCompare(t *testing.T) {
	require.True(t, Equal(Int(1), Float(1)))
	require.True(t, Equal(DictOf("a", ints(1)), DictOf("a", ints(1))))
	require.False(t, Equal(DictOf("a", Int(1)), DictOf("b", Int(1))))
	require.False(t, Equal(None, Auto))
	require.True(t, Equal(IntType, IntType))

	c, err := Compare(Int(1), Float(1.5))
	require.Nil(t, err)
	require.Equal(t, -1, c)

	c, err = Compare(Str("b"), Str("a"))
	require.Nil(t, err)
	require.Equal(t, 1, c)

	_, err = Compare(Str("a"), Int(1))
	require.EqualError(t, err, `cannot compare "a" with 1`)
}

func TestIn(t *testing.T) {
	ok, err := In(Int(2), ints(1, 2))
	require.Nil(t, err)
	require.True(t, ok)

	ok, err = In(Str("ell"), Str("hello"))
	require.Nil(t, err)
	require.True(t, ok)

	ok, err = In(Str("z"), DictOf("a", Int(1)))
	require.Nil(t, err)
	require.False(t, ok)

	_, err = In(Int(1), Int(2))
	require.EqualError(t, err, "cannot apply 'in' to integer and integer")
}

func TestJoin(t *testing.T) {
	v, err := Join(None, Str("a"))
	require.Nil(t, err)
	v, err = Join(v, Str("b"))
	require.Nil(t, err)
	require.Equal(t, Str("ab"), v)

	v, err = Join(ints(1), None)
	require.Nil(t, err)
	require.True(t, Equal(ints(1), v))

	_, err = Join(Int(1), Int(2))
	require.EqualError(t, err, "cannot join integer with integer")
}

func TestArrayCopyOnWrite(t *testing.T) {
	a := ints(1, 2, 3)
	b, err := a.With(-1, Int(9))
	require.Nil(t, err)
	require.Equal(t, "(1, 2, 3)", a.Repr())
	require.Equal(t, "(1, 2, 9)", b.Repr())

	_, err = a.At(3)
	require.EqualError(t, err, "array index out of bounds (index: 3, len: 3)")

	pushed := a.Push(Int(4))
	require.Equal(t, 3, a.Len())
	require.Equal(t, 4, pushed.Len())
}

func TestDictOrder(t *testing.T) {
	d := NewDict().With("b", Int(1)).With("a", Int(2)).With("b", Int(3))
	require.Equal(t, []string{"b", "a"}, d.Keys())
	require.Equal(t, "(b: 3, a: 2)", d.Repr())
	require.Equal(t, []string{"a"}, d.Without("b").Keys())

	_, err := d.At("z")
	require.EqualError(t, err, `dictionary does not contain key "z"`)
}

func TestArgs(t *testing.T) {
	args := NewArgs(ast.Detached(), Int(1), Int(2))
	args.Insert(ast.Detached(), "key", Str("v"))

	v, err := args.Expect("first")
	require.Nil(t, err)
	require.Equal(t, Int(1), v)

	named, ok := args.Named("key")
	require.True(t, ok)
	require.Equal(t, Str("v"), named)

	require.EqualError(t, args.Finish(), "unexpected argument")

	_, err = args.Expect("x")
	require.Nil(t, err)
	_, err = args.Expect("y")
	require.EqualError(t, err, "missing argument: y")

	spread := &Args{}
	require.Nil(t, spread.Spread(ast.Detached(), DictOf("a", Int(1))))
	require.Nil(t, spread.Spread(ast.Detached(), ints(5)))
	require.Equal(t, "arguments(a: 1, 5)", spread.Repr())
	require.EqualError(t, spread.Spread(ast.Detached(), Int(1)), "cannot spread integer")
}

func TestMethods(t *testing.T) {
	ctx := context.Background()
	a := ints(1, 2, 3)

	v, err := CallMethod(ctx, a, "len", NewArgs(ast.Detached()))
	require.Nil(t, err)
	require.Equal(t, Int(3), v)

	v, err = CallMethod(ctx, a, "at", NewArgs(ast.Detached(), Int(-1)))
	require.Nil(t, err)
	require.Equal(t, Int(3), v)

	args := NewArgs(ast.Detached(), Int(10))
	args.Insert(ast.Detached(), "default", Str("none"))
	v, err = CallMethod(ctx, a, "at", args)
	require.Nil(t, err)
	require.Equal(t, Str("none"), v)

	updated, result, err := CallMutMethod(ctx, a, "push", NewArgs(ast.Detached(), Int(4)))
	require.Nil(t, err)
	require.Equal(t, None, result)
	require.Equal(t, "(1, 2, 3, 4)", updated.Repr())
	require.Equal(t, "(1, 2, 3)", a.Repr())

	updated, result, err = CallMutMethod(ctx, a, "remove", NewArgs(ast.Detached(), Int(0)))
	require.Nil(t, err)
	require.Equal(t, Int(1), result)
	require.Equal(t, "(2, 3)", updated.Repr())

	_, err = CallMethod(ctx, a, "push", NewArgs(ast.Detached(), Int(4)))
	require.EqualError(t, err, "cannot call mutating method `push` on a temporary value")

	_, err = CallMethod(ctx, a, "nope", NewArgs(ast.Detached()))
	require.EqualError(t, err, "type array has no method `nope`")

	double := NewNative("double", func(ctx context.Context, args *Args) (Value, error) {
		v, err := args.ExpectInt("value")
		if err != nil {
			return nil, err
		}
		return Int(v * 2), args.Finish()
	})
	v, err = CallMethod(ctx, a, "map", NewArgs(ast.Detached(), double))
	require.Nil(t, err)
	require.Equal(t, "(2, 4, 6)", v.Repr())

	v, err = CallMethod(ctx, Str("a,b"), "split", NewArgs(ast.Detached(), Str(",")))
	require.Nil(t, err)
	require.Equal(t, `("a", "b")`, v.Repr())

	partial, err := CallMethod(ctx, double, "with", NewArgs(ast.Detached(), Int(21)))
	require.Nil(t, err)
	v, err = partial.(Func).Call(ctx, NewArgs(ast.Detached()))
	require.Nil(t, err)
	require.Equal(t, Int(42), v)
}

func TestIterateAndClusters(t *testing.T) {
	items, err := Iterate(Str("aéz"))
	require.Nil(t, err)
	require.Equal(t, []Value{Str("a"), Str("é"), Str("z")}, items)

	items, err = Iterate(DictOf("k", Int(1)))
	require.Nil(t, err)
	require.Equal(t, `("k", 1)`, items[0].Repr())

	_, err = Iterate(Int(3))
	require.EqualError(t, err, "cannot loop over integer")
}

func TestFieldAndModify(t *testing.T) {
	d := DictOf("a", Int(1))
	v, err := Field(d, "a")
	require.Nil(t, err)
	require.Equal(t, Int(1), v)

	m := NewModule("util", ast.NewFileID("util.ql"), nil, nil)
	_, err = Field(m, "x")
	require.EqualError(t, err, "module `util` does not contain `x`")

	_, err = Field(Int(1), "x")
	require.EqualError(t, err, "cannot access fields on type integer")

	inc := func(old Value) (Value, error) { return Add(old, Int(1)) }
	out, err := ModifyField(d, "a", inc)
	require.Nil(t, err)
	require.Equal(t, "(a: 2)", out.Repr())

	_, err = ModifyField(d, "b", inc)
	require.EqualError(t, err, "dictionary does not contain key \"b\" (hint: use `insert` to add or update values)")

	out, err = ModifyAccessor(ints(1, 2), "last", NewArgs(ast.Detached()), inc)
	require.Nil(t, err)
	require.Equal(t, "(1, 3)", out.Repr())

	_, err = ModifyAccessor(ints(), "first", NewArgs(ast.Detached()), inc)
	require.EqualError(t, err, "array is empty")
}
