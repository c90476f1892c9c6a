package vm

import (
	"context"
	"testing"

	"github.com/quillscript/quill/ast"
	"github.com/quillscript/quill/bytecode"
	"github.com/quillscript/quill/diag"
	"github.com/quillscript/quill/object"
	"github.com/quillscript/quill/op"
	"github.com/stretchr/testify/require"
)

var testFile = ast.NewFileID("test.ql")

func build(instrs []bytecode.Instruction, p bytecode.UnitParams) *bytecode.Unit {
	p.Instructions = instrs
	p.File = testFile
	for i := range instrs {
		p.Spans = append(p.Spans, ast.Span{File: testFile, Start: i, End: i + 1})
	}
	return bytecode.NewUnit(p)
}

func ints(values ...int64) *object.Array {
	items := make([]object.Value, 0, len(values))
	for _, v := range values {
		items = append(items, object.Int(v))
	}
	return object.NewArray(items)
}

func runPattern(t *testing.T, patterns []bytecode.Pattern, registers int, value object.Value) (*frame, error) {
	t.Helper()
	unit := build(nil, bytecode.UnitParams{Patterns: patterns, Registers: registers})
	m := New()
	ctx, st := m.enter(context.Background())
	f := newFrame(unit)
	return f, m.destructure(ctx, st, f, unit.PatternAt(0), value)
}

func simple(r bytecode.Register) bytecode.PatternItem {
	return bytecode.PatternItem{Kind: bytecode.ItemSimple, Target: bytecode.ToReg(r)}
}

func TestDestructureArrayWithSpread(t *testing.T) {
	pattern := bytecode.Pattern{Kind: bytecode.PatternItems, Items: []bytecode.PatternItem{
		simple(0), simple(1), {Kind: bytecode.ItemSpread, Target: bytecode.ToReg(2)},
	}}
	f, err := runPattern(t, []bytecode.Pattern{pattern}, 3, ints(1, 2, 3, 4))
	require.Nil(t, err)
	require.Equal(t, object.Int(1), f.reg(0))
	require.Equal(t, object.Int(2), f.reg(1))
	require.Equal(t, "(3, 4)", f.reg(2).Repr())
}

func TestDestructureEmptyDiscardSpread(t *testing.T) {
	pattern := bytecode.Pattern{Kind: bytecode.PatternItems, Items: []bytecode.PatternItem{
		simple(0), {Kind: bytecode.ItemSpreadDiscard},
	}}
	f, err := runPattern(t, []bytecode.Pattern{pattern}, 1, ints(1))
	require.Nil(t, err)
	require.Equal(t, object.Int(1), f.reg(0))
}

func TestDestructureDict(t *testing.T) {
	pattern := bytecode.Pattern{Kind: bytecode.PatternItems, Items: []bytecode.PatternItem{
		{Kind: bytecode.ItemSimple, Key: "x", Target: bytecode.ToReg(0)},
		{Kind: bytecode.ItemNamed, Key: "y", Inner: bytecode.ItemSimple, Target: bytecode.ToReg(1)},
		{Kind: bytecode.ItemSpread, Target: bytecode.ToReg(2)},
	}}
	value := object.DictOf("x", object.Int(1), "y", object.Int(2), "z", object.Int(3))
	f, err := runPattern(t, []bytecode.Pattern{pattern}, 3, value)
	require.Nil(t, err)
	require.Equal(t, object.Int(1), f.reg(0))
	require.Equal(t, object.Int(2), f.reg(1))
	require.Equal(t, "(z: 3)", f.reg(2).Repr())
}

func TestDestructureNested(t *testing.T) {
	outer := bytecode.Pattern{Kind: bytecode.PatternItems, Items: []bytecode.PatternItem{
		simple(0), {Kind: bytecode.ItemNested, Pattern: 1},
	}}
	inner := bytecode.Pattern{Kind: bytecode.PatternItems, Items: []bytecode.PatternItem{
		{Kind: bytecode.ItemPlaceholder}, simple(1),
	}}
	value := object.NewArray([]object.Value{object.Int(1), ints(2, 3)})
	f, err := runPattern(t, []bytecode.Pattern{outer, inner}, 2, value)
	require.Nil(t, err)
	require.Equal(t, object.Int(1), f.reg(0))
	require.Equal(t, object.Int(3), f.reg(1))
}

func TestDestructureWrongLength(t *testing.T) {
	two := bytecode.Pattern{Kind: bytecode.PatternItems, Items: []bytecode.PatternItem{simple(0), simple(1)}}
	tests := []struct {
		name    string
		pattern bytecode.Pattern
		value   *object.Array
		message string
		hint    string
	}{
		{"not enough", two, ints(1), "not enough elements to destructure",
			"the provided array has a length of 1, but the pattern expects 2 elements"},
		{"too many", two, ints(1, 2, 3), "too many elements to destructure",
			"the provided array has a length of 3, but the pattern expects 2 elements"},
		{"single", bytecode.Pattern{Kind: bytecode.PatternItems, Items: []bytecode.PatternItem{simple(0)}},
			ints(), "not enough elements to destructure",
			"the provided array has a length of 0, but the pattern expects a single element"},
		{"empty", bytecode.Pattern{Kind: bytecode.PatternItems}, ints(1), "too many elements to destructure",
			"the provided array has a length of 1, but the pattern expects an empty array"},
		{"spread", bytecode.Pattern{Kind: bytecode.PatternItems, Items: []bytecode.PatternItem{
			simple(0), simple(1), {Kind: bytecode.ItemSpreadDiscard},
		}}, ints(1), "not enough elements to destructure",
			"the provided array has a length of 1, but the pattern expects at least 2 elements"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := runPattern(t, []bytecode.Pattern{tt.pattern}, 2, tt.value)
			list := diag.List(err)
			require.Len(t, list, 1)
			require.Equal(t, tt.message, list[0].Message)
			require.Equal(t, []string{tt.hint}, list[0].Hints)
		})
	}
}

func TestDestructureShapeErrors(t *testing.T) {
	named := bytecode.Pattern{Kind: bytecode.PatternItems, Items: []bytecode.PatternItem{
		{Kind: bytecode.ItemNamed, Key: "a", Inner: bytecode.ItemSimple, Target: bytecode.ToReg(0)},
	}}
	_, err := runPattern(t, []bytecode.Pattern{named}, 1, ints(1))
	require.Equal(t, "cannot destructure named pattern from an array", err.Error())

	_, err = runPattern(t, []bytecode.Pattern{named}, 1, object.DictOf("b", object.Int(1)))
	require.Equal(t, `dictionary does not contain key "a"`, err.Error())

	unnamed := bytecode.Pattern{Kind: bytecode.PatternItems, Items: []bytecode.PatternItem{simple(0)}}
	_, err = runPattern(t, []bytecode.Pattern{unnamed}, 1, object.DictOf("a", object.Int(1)))
	require.Equal(t, "cannot destructure unnamed pattern from a dictionary", err.Error())

	_, err = runPattern(t, []bytecode.Pattern{unnamed}, 1, object.Int(1))
	require.Equal(t, "cannot destructure integer", err.Error())
}

func TestWhileLoopLimit(t *testing.T) {
	unit := build([]bytecode.Instruction{
		{Op: op.While, A: bytecode.Bool(true), B: bytecode.None(), Out: bytecode.ToReg(0)},
	}, bytecode.UnitParams{Registers: 1, Output: bytecode.Reg(0)})
	_, err := New().EvalModule(context.Background(), unit)
	list := diag.List(err)
	require.Len(t, list, 1)
	require.Equal(t, "loop seems to be infinite", list[0].Message)
	require.Equal(t, 0, list[0].Span.Start)
}

func TestAssignThroughAccessChain(t *testing.T) {
	// d.x.at(1) = 9
	unit := build([]bytecode.Instruction{
		{Op: op.Args, Out: bytecode.ToReg(1), Index: 1},
		{Op: op.PushArg, A: bytecode.Const(0), Out: bytecode.ToReg(1)},
		{Op: op.Assign, A: bytecode.Const(1), Out: bytecode.ToAccess(2)},
	}, bytecode.UnitParams{
		Registers: 2,
		Output:    bytecode.Reg(0),
		Constants: []object.Value{object.Int(1), object.Int(9)},
		Defaults:  []bytecode.DefaultValue{{Target: 0, Value: object.DictOf("x", ints(1, 2))}},
		Accesses: []bytecode.Access{
			{Kind: bytecode.AccessRegister, Register: 0},
			{Kind: bytecode.AccessChained, Base: 0, Name: "x"},
			{Kind: bytecode.AccessMethod, Base: 1, Name: "at", Args: bytecode.Reg(1)},
		},
	})
	module, err := New().EvalModule(context.Background(), unit)
	require.Nil(t, err)
	require.Equal(t, "(x: (1, 9))", module.Content().Repr())
}

func TestAssignMissingKey(t *testing.T) {
	unit := build([]bytecode.Instruction{
		{Op: op.AddAssign, A: bytecode.Const(0), Out: bytecode.ToAccess(1)},
	}, bytecode.UnitParams{
		Registers: 1,
		Constants: []object.Value{object.Int(1)},
		Defaults:  []bytecode.DefaultValue{{Target: 0, Value: object.DictOf("x", object.Int(1))}},
		Accesses: []bytecode.Access{
			{Kind: bytecode.AccessRegister, Register: 0},
			{Kind: bytecode.AccessChained, Base: 0, Name: "y"},
		},
	})
	_, err := New().EvalModule(context.Background(), unit)
	list := diag.List(err)
	require.Len(t, list, 1)
	require.Equal(t, `dictionary does not contain key "y"`, list[0].Message)
	require.Equal(t, []string{"use `insert` to add or update values"}, list[0].Hints)
}

func TestSelectBool(t *testing.T) {
	called := false
	right := func() object.Value { called = true; return object.Bool(true) }

	v, err := selectBool(op.SelectAnd, object.Bool(false), right)
	require.Nil(t, err)
	require.Equal(t, object.Bool(false), v)
	require.False(t, called)

	v, err = selectBool(op.SelectOr, object.Bool(true), right)
	require.Nil(t, err)
	require.Equal(t, object.Bool(true), v)
	require.False(t, called)

	v, err = selectBool(op.SelectAnd, object.Bool(true), right)
	require.Nil(t, err)
	require.Equal(t, object.Bool(true), v)
	require.True(t, called)

	_, err = selectBool(op.SelectOr, object.Int(1), right)
	require.Equal(t, "expected boolean, found integer", err.Error())
}

// closureUnit returns `(x, y: 2, ..rest) => (x, y, rest)` with the tuple
// replaced by registers: R0 = x, R1 = y, R2 = rest.
func closureUnit() *bytecode.Unit {
	return build([]bytecode.Instruction{
		{Op: op.Array, Out: bytecode.ToReg(3), Index: 3},
		{Op: op.Push, A: bytecode.Reg(0), Out: bytecode.ToReg(3)},
		{Op: op.Push, A: bytecode.Reg(1), Out: bytecode.ToReg(3)},
		{Op: op.Push, A: bytecode.Reg(2), Out: bytecode.ToReg(3)},
	}, bytecode.UnitParams{
		Name:      "f",
		Kind:      bytecode.ClosureUnit,
		Registers: 4,
		Output:    bytecode.Reg(3),
		Params: []bytecode.Param{
			{Kind: bytecode.ParamPos, Name: "x", Target: 0},
			{Kind: bytecode.ParamNamed, Name: "y", Target: 1, HasDefault: true},
			{Kind: bytecode.ParamSink, Name: "rest", Target: 2},
		},
	})
}

func TestClosureBinding(t *testing.T) {
	fn := NewClosure(closureUnit(), nil, []object.Value{nil, object.Int(2), nil})
	args := object.NewArgs(ast.Detached(), object.Int(1), object.Int(5), object.Int(6))
	args.Insert(ast.Detached(), "z", object.Int(7))

	v, err := New().Call(context.Background(), fn, args)
	require.Nil(t, err)
	require.Equal(t, "(1, 2, arguments(5, 6, z: 7))", v.Repr())

	args = object.NewArgs(ast.Detached(), object.Int(1))
	args.Insert(ast.Detached(), "y", object.Int(3))
	v, err = fn.Call(context.Background(), args)
	require.Nil(t, err)
	require.Equal(t, "(1, 3, arguments())", v.Repr())
}

func TestClosureMissingArgument(t *testing.T) {
	fn := NewClosure(closureUnit(), nil, []object.Value{nil, object.Int(2), nil})
	_, err := fn.Call(context.Background(), object.NewArgs(ast.Detached()))
	require.Equal(t, "missing argument: x", err.Error())
}

func TestUnexpectedArgument(t *testing.T) {
	unit := build(nil, bytecode.UnitParams{
		Kind:      bytecode.ClosureUnit,
		Registers: 1,
		Params:    []bytecode.Param{{Kind: bytecode.ParamPos, Name: "x", Target: 0}},
	})
	fn := NewClosure(unit, nil, nil)
	args := object.NewArgs(ast.Detached(), object.Int(1))
	args.Insert(ast.Detached(), "y", object.Int(1))
	_, err := fn.Call(context.Background(), args)
	require.Equal(t, "unexpected argument: y", err.Error())
}

func TestMaxCallDepth(t *testing.T) {
	self := bytecode.Register(0)
	unit := build([]bytecode.Instruction{
		{Op: op.Args, Out: bytecode.ToReg(1)},
		{Op: op.Call, A: bytecode.Reg(0), B: bytecode.Reg(1), Out: bytecode.ToReg(2)},
	}, bytecode.UnitParams{
		Name:      "loop",
		Kind:      bytecode.ClosureUnit,
		Registers: 3,
		Output:    bytecode.Reg(2),
		Self:      &self,
	})
	fn := NewClosure(unit, nil, nil)
	m := New(WithMaxCallDepth(8))
	_, err := m.Call(context.Background(), fn, object.NewArgs(ast.Detached()))
	list := diag.List(err)
	require.Len(t, list, 1)
	require.Equal(t, "maximum function call depth exceeded", list[0].Message)
	require.Len(t, list[0].Trace, 7)
	require.Equal(t, "error occurred in this call of function `loop`", list[0].Trace[0].Message)
}

func TestCaptureAndSelf(t *testing.T) {
	self := bytecode.Register(1)
	inner := build([]bytecode.Instruction{
		{Op: op.Add, A: bytecode.Reg(0), B: bytecode.Const(0), Out: bytecode.ToReg(2)},
	}, bytecode.UnitParams{
		Name:      "g",
		Kind:      bytecode.ClosureUnit,
		Registers: 3,
		Output:    bytecode.Reg(2),
		Constants: []object.Value{object.Int(1)},
		Captures:  []bytecode.Capture{{Name: "n", Source: bytecode.Reg(0), Target: 0}},
		Self:      &self,
	})
	// let n = 41; let g() = n + 1; n = 0; g()
	outer := build([]bytecode.Instruction{
		{Op: op.Copy, A: bytecode.Const(0), Out: bytecode.ToReg(0)},
		{Op: op.Instantiate, Index: 0, Out: bytecode.ToReg(1)},
		{Op: op.Copy, A: bytecode.Const(1), Out: bytecode.ToReg(0)},
		{Op: op.Args, Out: bytecode.ToReg(2)},
		{Op: op.Call, A: bytecode.Reg(1), B: bytecode.Reg(2), Out: bytecode.ToReg(3)},
	}, bytecode.UnitParams{
		Registers: 4,
		Output:    bytecode.Reg(3),
		Constants: []object.Value{object.Int(41), object.Int(0)},
		Closures:  []*bytecode.Closure{{Mode: bytecode.Deferred, Unit: inner}},
	})
	module, err := New().EvalModule(context.Background(), outer)
	require.Nil(t, err)
	require.Equal(t, object.Int(42), module.Content())
}

type fakeImporter struct {
	modules map[string]*object.Module
}

func (fi *fakeImporter) Import(ctx context.Context, span ast.Span, path string) (*object.Module, error) {
	m, ok := fi.modules[path]
	if !ok {
		return nil, diag.Errorf(span, "file not found: %s", path)
	}
	return m, nil
}

func TestImportAndInclude(t *testing.T) {
	scope := object.NewScope()
	scope.Define("x", object.Int(3))
	lib := object.NewModule("lib", ast.NewFileID("lib.ql"), scope, object.Str("hello"))
	imp := &fakeImporter{modules: map[string]*object.Module{"lib.ql": lib}}

	unit := build([]bytecode.Instruction{
		{Op: op.Import, A: bytecode.Str(0), Out: bytecode.ToReg(0)},
		{Op: op.Field, A: bytecode.Reg(0), Index: 1, Out: bytecode.ToReg(1)},
		{Op: op.Include, A: bytecode.Str(0), Out: bytecode.ToReg(2)},
	}, bytecode.UnitParams{
		Registers: 3,
		Output:    bytecode.Reg(2),
		Strings:   []string{"lib.ql", "x"},
		Exports:   []bytecode.Export{{Name: "x", Register: 1}},
	})
	module, err := New(WithImporter(imp)).EvalModule(context.Background(), unit)
	require.Nil(t, err)
	require.Equal(t, object.Str("hello"), module.Content())
	x, ok := module.Scope().Get("x")
	require.True(t, ok)
	require.Equal(t, object.Int(3), x)

	_, err = New().EvalModule(context.Background(), unit)
	require.Equal(t, "cannot import `lib.ql`: no importer is configured", err.Error())
}
