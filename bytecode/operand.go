package bytecode

import (
	"fmt"
)

// Register indexes a unit's register file.
type Register uint32

func (r Register) String() string { return fmt.Sprintf("R%d", uint32(r)) }

// ReadableKind says where a Readable takes its value from.
type ReadableKind uint8

const (
	// ReadNone is the none sentinel.
	ReadNone ReadableKind = iota
	ReadAuto
	// ReadBool reads true when Index is 1.
	ReadBool
	// ReadConst reads the constant pool.
	ReadConst
	// ReadStr reads the string pool.
	ReadStr
	// ReadReg reads a register.
	ReadReg
	// ReadGlobal reads a slot of the library scope.
	ReadGlobal
)

// Readable describes the source of an operand.
type Readable struct {
	Kind  ReadableKind
	Index uint32
}

// None returns the none sentinel.
func None() Readable { return Readable{Kind: ReadNone} }

// Auto returns the auto sentinel.
func Auto() Readable { return Readable{Kind: ReadAuto} }

// Bool returns a boolean literal.
func Bool(b bool) Readable {
	if b {
		return Readable{Kind: ReadBool, Index: 1}
	}
	return Readable{Kind: ReadBool}
}

// Const reads constant i.
func Const(i int) Readable { return Readable{Kind: ReadConst, Index: uint32(i)} }

// Str reads string i.
func Str(i int) Readable { return Readable{Kind: ReadStr, Index: uint32(i)} }

// Reg reads register r.
func Reg(r Register) Readable { return Readable{Kind: ReadReg, Index: uint32(r)} }

// Global reads library slot i.
func Global(i int) Readable { return Readable{Kind: ReadGlobal, Index: uint32(i)} }

// IsReg reports whether r reads a register.
func (r Readable) IsReg() bool { return r.Kind == ReadReg }

// Register returns the register read by r. Only valid when IsReg.
func (r Readable) Register() Register { return Register(r.Index) }

// IsConstant reports whether r reads a value fixed at compile time.
func (r Readable) IsConstant() bool {
	switch r.Kind {
	case ReadNone, ReadAuto, ReadBool, ReadConst, ReadStr:
		return true
	}
	return false
}

func (r Readable) String() string {
	switch r.Kind {
	case ReadNone:
		return "none"
	case ReadAuto:
		return "auto"
	case ReadBool:
		return fmt.Sprint(r.Index == 1)
	case ReadConst:
		return fmt.Sprintf("C%d", r.Index)
	case ReadStr:
		return fmt.Sprintf("S%d", r.Index)
	case ReadReg:
		return fmt.Sprintf("R%d", r.Index)
	case ReadGlobal:
		return fmt.Sprintf("G%d", r.Index)
	}
	return "?"
}

// WritableKind says where a Writable stores its value.
type WritableKind uint8

const (
	// WriteDiscard drops the value.
	WriteDiscard WritableKind = iota
	// WriteReg stores into a register.
	WriteReg
	// WriteAccess stores through an access descriptor.
	WriteAccess
)

// Writable describes the destination of an operand.
type Writable struct {
	Kind  WritableKind
	Index uint32
}

// Discard drops the written value.
func Discard() Writable { return Writable{} }

// ToReg writes register r.
func ToReg(r Register) Writable { return Writable{Kind: WriteReg, Index: uint32(r)} }

// ToAccess writes through access i.
func ToAccess(i int) Writable { return Writable{Kind: WriteAccess, Index: uint32(i)} }

// IsReg reports whether w writes a register.
func (w Writable) IsReg() bool { return w.Kind == WriteReg }

// Register returns the register written by w. Only valid when IsReg.
func (w Writable) Register() Register { return Register(w.Index) }

func (w Writable) String() string {
	switch w.Kind {
	case WriteDiscard:
		return "_"
	case WriteReg:
		return fmt.Sprintf("R%d", w.Index)
	case WriteAccess:
		return fmt.Sprintf("A%d", w.Index)
	}
	return "?"
}
