package bytecode

import (
	"slices"

	"github.com/quillscript/quill/ast"
	"github.com/quillscript/quill/object"
)

// UnitKind distinguishes module units from closure units.
type UnitKind uint8

const (
	ModuleUnit UnitKind = iota
	ClosureUnit
)

// DefaultValue is a register written with a compile-time value before a
// unit starts running.
type DefaultValue struct {
	Target Register
	Value  object.Value
}

// Export binds a module-level name to the register holding its value.
type Export struct {
	Name     string
	Register Register
}

// Unit is an immutable compiled scope: the top level of a module or the
// body of one closure. It is safe for concurrent use.
type Unit struct {
	name         string
	kind         UnitKind
	file         ast.FileID
	span         ast.Span
	instructions []Instruction
	spans        []ast.Span
	constants    []object.Value
	strings      []string
	closures     []*Closure
	accesses     []Access
	labels       []int
	patterns     []Pattern
	defaults     []DefaultValue
	registers    int
	output       Readable
	globals      *object.Scope

	// Closures only.
	captures []Capture
	params   []Param
	self     Register
	hasSelf  bool

	// Modules only.
	exports []Export
}

// UnitParams contains parameters for creating a new Unit.
type UnitParams struct {
	Name         string
	Kind         UnitKind
	File         ast.FileID
	Span         ast.Span
	Instructions []Instruction
	Spans        []ast.Span
	Constants    []object.Value
	Strings      []string
	Closures     []*Closure
	Accesses     []Access
	Labels       []int
	Patterns     []Pattern
	Defaults     []DefaultValue
	Registers    int
	Output       Readable
	Globals      *object.Scope
	Captures     []Capture
	Params       []Param
	Self         *Register
	Exports      []Export
}

// NewUnit creates an immutable unit. Input slices are copied.
func NewUnit(p UnitParams) *Unit {
	u := &Unit{
		name:         p.Name,
		kind:         p.Kind,
		file:         p.File,
		span:         p.Span,
		instructions: slices.Clone(p.Instructions),
		spans:        slices.Clone(p.Spans),
		constants:    slices.Clone(p.Constants),
		strings:      slices.Clone(p.Strings),
		closures:     slices.Clone(p.Closures),
		accesses:     slices.Clone(p.Accesses),
		labels:       slices.Clone(p.Labels),
		patterns:     slices.Clone(p.Patterns),
		defaults:     slices.Clone(p.Defaults),
		registers:    p.Registers,
		output:       p.Output,
		globals:      p.Globals,
		captures:     slices.Clone(p.Captures),
		params:       slices.Clone(p.Params),
		exports:      slices.Clone(p.Exports),
	}
	if p.Self != nil {
		u.self = *p.Self
		u.hasSelf = true
	}
	return u
}

// Name returns the unit name: the module name or the closure name.
func (u *Unit) Name() string { return u.name }

// Kind returns whether the unit is a module or a closure body.
func (u *Unit) Kind() UnitKind { return u.kind }

// File returns the file the unit was compiled from.
func (u *Unit) File() ast.FileID { return u.file }

// Span returns the span of the compiled syntax.
func (u *Unit) Span() ast.Span { return u.span }

// InstructionCount returns the number of instructions.
func (u *Unit) InstructionCount() int { return len(u.instructions) }

// InstructionAt returns instruction i.
func (u *Unit) InstructionAt(i int) Instruction { return u.instructions[i] }

// SpanAt returns the source span of instruction i.
func (u *Unit) SpanAt(i int) ast.Span { return u.spans[i] }

// ConstantCount returns the size of the constant pool.
func (u *Unit) ConstantCount() int { return len(u.constants) }

// ConstantAt returns constant i.
func (u *Unit) ConstantAt(i int) object.Value { return u.constants[i] }

// StringCount returns the size of the string pool.
func (u *Unit) StringCount() int { return len(u.strings) }

// StringAt returns string i.
func (u *Unit) StringAt(i int) string { return u.strings[i] }

// ClosureCount returns the number of nested closures.
func (u *Unit) ClosureCount() int { return len(u.closures) }

// ClosureAt returns nested closure i.
func (u *Unit) ClosureAt(i int) *Closure { return u.closures[i] }

// AccessCount returns the number of access descriptors.
func (u *Unit) AccessCount() int { return len(u.accesses) }

// AccessAt returns access descriptor i.
func (u *Unit) AccessAt(i int) *Access { return &u.accesses[i] }

// LabelCount returns the number of jump labels.
func (u *Unit) LabelCount() int { return len(u.labels) }

// LabelAt returns the instruction index label i points at.
func (u *Unit) LabelAt(i int) int { return u.labels[i] }

// PatternCount returns the number of pattern descriptors.
func (u *Unit) PatternCount() int { return len(u.patterns) }

// PatternAt returns pattern descriptor i.
func (u *Unit) PatternAt(i int) *Pattern { return &u.patterns[i] }

// DefaultCount returns the number of default values.
func (u *Unit) DefaultCount() int { return len(u.defaults) }

// DefaultAt returns default value i.
func (u *Unit) DefaultAt(i int) DefaultValue { return u.defaults[i] }

// Registers returns the size of the register file.
func (u *Unit) Registers() int { return u.registers }

// Output returns where the unit's result is read from.
func (u *Unit) Output() Readable { return u.output }

// Globals returns the library scope global reads resolve against.
func (u *Unit) Globals() *object.Scope { return u.globals }

// CaptureCount returns the number of captured variables.
func (u *Unit) CaptureCount() int { return len(u.captures) }

// CaptureAt returns capture i.
func (u *Unit) CaptureAt(i int) Capture { return u.captures[i] }

// ParamCount returns the number of parameters.
func (u *Unit) ParamCount() int { return len(u.params) }

// ParamAt returns parameter i.
func (u *Unit) ParamAt(i int) Param { return u.params[i] }

// Self returns the register holding the closure itself, if the closure is
// named.
func (u *Unit) Self() (Register, bool) { return u.self, u.hasSelf }

// ExportCount returns the number of exported names.
func (u *Unit) ExportCount() int { return len(u.exports) }

// ExportAt returns export i.
func (u *Unit) ExportAt(i int) Export { return u.exports[i] }
