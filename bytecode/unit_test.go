package bytecode

import (
	"testing"

	"github.com/quillscript/quill/ast"
	"github.com/quillscript/quill/object"
	"github.com/quillscript/quill/op"
	"github.com/stretchr/testify/require"
)

func sampleParams() UnitParams {
	file := ast.NewFileID("main.ql")
	self := Register(0)
	return UnitParams{
		Name: "f",
		Kind: ClosureUnit,
		File: file,
		Instructions: []Instruction{
			{Op: op.Add, A: Reg(1), B: Const(0), Out: ToReg(2)},
		},
		Spans:     []ast.Span{{File: file, Start: 3, End: 8}},
		Constants: []object.Value{object.Int(1)},
		Registers: 3,
		Output:    Reg(2),
		Params:    []Param{{Kind: ParamPos, Name: "x", Target: 1}},
		Self:      &self,
	}
}

func TestNewUnitCopiesInput(t *testing.T) {
	params := sampleParams()
	unit := NewUnit(params)
	params.Instructions[0].Op = op.Sub
	params.Constants[0] = object.Int(5)

	require.Equal(t, op.Add, unit.InstructionAt(0).Op)
	require.Equal(t, object.Int(1), unit.ConstantAt(0))
	require.Equal(t, 3, unit.Registers())
	reg, ok := unit.Self()
	require.True(t, ok)
	require.Equal(t, Register(0), reg)
	require.Equal(t, "x", unit.ParamAt(0).Name)
}

func TestOperandStrings(t *testing.T) {
	require.Equal(t, "R4", Reg(4).String())
	require.Equal(t, "C1", Const(1).String())
	require.Equal(t, "true", Bool(true).String())
	require.Equal(t, "none", None().String())
	require.Equal(t, "A2", ToAccess(2).String())
	require.Equal(t, "_", Discard().String())
	require.True(t, Str(0).IsConstant())
	require.False(t, Reg(0).IsConstant())
	require.False(t, Global(0).IsConstant())
}

func TestFingerprint(t *testing.T) {
	a, err := Fingerprint(NewUnit(sampleParams()))
	require.Nil(t, err)
	b, err := Fingerprint(NewUnit(sampleParams()))
	require.Nil(t, err)
	require.Equal(t, a, b)

	changed := sampleParams()
	changed.Constants = []object.Value{object.Int(2)}
	c, err := Fingerprint(NewUnit(changed))
	require.Nil(t, err)
	require.NotEqual(t, a, c)

	moved := sampleParams()
	moved.Spans = []ast.Span{{File: moved.File, Start: 4, End: 9}}
	d, err := Fingerprint(NewUnit(moved))
	require.Nil(t, err)
	require.NotEqual(t, a, d)
	require.Len(t, a.String(), 64)
}

func TestPatternHasSpread(t *testing.T) {
	p := Pattern{Kind: PatternItems, Items: []PatternItem{{Kind: ItemSimple}, {Kind: ItemSpreadDiscard}}}
	require.True(t, p.HasSpread())
	p.Items = p.Items[:1]
	require.False(t, p.HasSpread())
}

func TestFingerprintClosureBoundValues(t *testing.T) {
	unit := NewUnit(sampleParams())
	a, err := FingerprintClosure(unit, []object.Value{object.Int(1)})
	require.Nil(t, err)
	b, err := FingerprintClosure(unit, []object.Value{object.Int(2)})
	require.Nil(t, err)
	c, err := FingerprintClosure(unit, []object.Value{object.Int(1)})
	require.Nil(t, err)
	require.NotEqual(t, a, b)
	require.Equal(t, a, c)
}
