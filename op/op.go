// Package op defines opcodes used by the quill compiler and virtual machine.
package op

// Code is an integer opcode that indicates an operation to execute.
type Code uint8

const (
	Invalid Code = iota

	// Values
	Copy
	Instantiate
	Join

	// Operations
	Add
	Sub
	Mul
	Div
	Neg
	Pos
	Not
	Eq
	Neq
	Lt
	Leq
	Gt
	Geq
	In
	NotIn
	Select

	// Assignment
	Assign
	AddAssign
	SubAssign
	MulAssign
	DivAssign
	Destructure

	// Jumps and control flow
	Jump
	JumpIf
	JumpIfNot
	While
	Iter
	Break
	Continue
	Return

	// Build
	Array
	Push
	Spread
	Dict
	Insert
	SpreadDict
	Args
	PushArg
	InsertArg
	SpreadArg

	// Access and calls
	Field
	Call
	CallMethod
	CallMethodMut

	// Modules
	Import
	Include
)

// SelectAnd and SelectOr are the Index operands of Select.
const (
	SelectAnd = 0
	SelectOr  = 1
)

// Info contains information about an opcode.
type Info struct {
	Code Code
	Name string
	// Operands lists the operand fields the opcode uses, in display order:
	// "a", "b", "out", "index", "index2".
	Operands []string
}

var infos = make([]Info, 256)

func init() {
	type opInfo struct {
		op       Code
		name     string
		operands []string
	}
	ops := []opInfo{
		{Copy, "COPY", []string{"a", "out"}},
		{Instantiate, "INSTANTIATE", []string{"index", "out"}},
		{Join, "JOIN", []string{"a", "out"}},
		{Add, "ADD", []string{"a", "b", "out"}},
		{Sub, "SUB", []string{"a", "b", "out"}},
		{Mul, "MUL", []string{"a", "b", "out"}},
		{Div, "DIV", []string{"a", "b", "out"}},
		{Neg, "NEG", []string{"a", "out"}},
		{Pos, "POS", []string{"a", "out"}},
		{Not, "NOT", []string{"a", "out"}},
		{Eq, "EQ", []string{"a", "b", "out"}},
		{Neq, "NEQ", []string{"a", "b", "out"}},
		{Lt, "LT", []string{"a", "b", "out"}},
		{Leq, "LEQ", []string{"a", "b", "out"}},
		{Gt, "GT", []string{"a", "b", "out"}},
		{Geq, "GEQ", []string{"a", "b", "out"}},
		{In, "IN", []string{"a", "b", "out"}},
		{NotIn, "NOT_IN", []string{"a", "b", "out"}},
		{Select, "SELECT", []string{"a", "b", "out", "index"}},
		{Assign, "ASSIGN", []string{"a", "out"}},
		{AddAssign, "ADD_ASSIGN", []string{"a", "out"}},
		{SubAssign, "SUB_ASSIGN", []string{"a", "out"}},
		{MulAssign, "MUL_ASSIGN", []string{"a", "out"}},
		{DivAssign, "DIV_ASSIGN", []string{"a", "out"}},
		{Destructure, "DESTRUCTURE", []string{"a", "index"}},
		{Jump, "JUMP", []string{"index"}},
		{JumpIf, "JUMP_IF", []string{"a", "index"}},
		{JumpIfNot, "JUMP_IF_NOT", []string{"a", "index"}},
		{While, "WHILE", []string{"a", "b", "out", "index", "index2"}},
		{Iter, "ITER", []string{"a", "b", "out", "index", "index2"}},
		{Break, "BREAK", nil},
		{Continue, "CONTINUE", nil},
		{Return, "RETURN", []string{"a"}},
		{Array, "ARRAY", []string{"index", "out"}},
		{Push, "PUSH", []string{"a", "out"}},
		{Spread, "SPREAD", []string{"a", "out"}},
		{Dict, "DICT", []string{"index", "out"}},
		{Insert, "INSERT", []string{"a", "b", "out"}},
		{SpreadDict, "SPREAD_DICT", []string{"a", "out"}},
		{Args, "ARGS", []string{"index", "out"}},
		{PushArg, "PUSH_ARG", []string{"a", "out"}},
		{InsertArg, "INSERT_ARG", []string{"a", "b", "out"}},
		{SpreadArg, "SPREAD_ARG", []string{"a", "out"}},
		{Field, "FIELD", []string{"a", "index", "out"}},
		{Call, "CALL", []string{"a", "b", "out"}},
		{CallMethod, "CALL_METHOD", []string{"a", "index", "b", "out"}},
		{CallMethodMut, "CALL_METHOD_MUT", []string{"index2", "index", "b", "out"}},
		{Import, "IMPORT", []string{"a", "out"}},
		{Include, "INCLUDE", []string{"a", "out"}},
	}
	for _, o := range ops {
		infos[o.op] = Info{
			Code:     o.op,
			Name:     o.name,
			Operands: o.operands,
		}
	}
}

// GetInfo returns information about the given opcode.
func GetInfo(op Code) Info {
	return infos[op]
}

func (c Code) String() string {
	if name := infos[c].Name; name != "" {
		return name
	}
	return "INVALID"
}
