package compiler

import (
	"github.com/quillscript/quill/ast"
	"github.com/quillscript/quill/bytecode"
	"github.com/quillscript/quill/object"
)

// code is the mutable form of a unit while it is being compiled. It is
// converted into an immutable bytecode.Unit by toUnit.
type code struct {
	name   string
	kind   bytecode.UnitKind
	file   ast.FileID
	span   ast.Span
	parent *code

	instructions []bytecode.Instruction
	spans        []ast.Span
	constants    []object.Value
	constIndex   map[object.Value]int
	strings      []string
	stringIndex  map[string]int
	closures     []*bytecode.Closure
	accesses     []bytecode.Access
	labels       []int
	patterns     []bytecode.Pattern
	defaults     []bytecode.DefaultValue
	registers    int

	captures     []bytecode.Capture
	captureIndex map[string]int
	params       []bytecode.Param
	self         *bytecode.Register

	// Used during compilation only
	root       *scope
	scope      *scope
	loopDepth  int
	parentLoop int
}

func newCode(name string, kind bytecode.UnitKind, file ast.FileID, span ast.Span, parent *code) *code {
	root := newScope(nil)
	c := &code{
		name:         name,
		kind:         kind,
		file:         file,
		span:         span,
		parent:       parent,
		constIndex:   map[object.Value]int{},
		stringIndex:  map[string]int{},
		captureIndex: map[string]int{},
		root:         root,
		scope:        root,
	}
	if parent != nil {
		c.parentLoop = parent.loopDepth
	}
	return c
}

// emit appends an instruction and returns its index.
func (c *code) emit(span ast.Span, in bytecode.Instruction) int {
	c.instructions = append(c.instructions, in)
	c.spans = append(c.spans, span)
	return len(c.instructions) - 1
}

func (c *code) alloc() bytecode.Register {
	r := bytecode.Register(c.registers)
	c.registers++
	return r
}

func (c *code) addConst(v object.Value) bytecode.Readable {
	if i, ok := c.constIndex[v]; ok {
		return bytecode.Const(i)
	}
	c.constants = append(c.constants, v)
	i := len(c.constants) - 1
	c.constIndex[v] = i
	return bytecode.Const(i)
}

func (c *code) addString(s string) int {
	if i, ok := c.stringIndex[s]; ok {
		return i
	}
	c.strings = append(c.strings, s)
	i := len(c.strings) - 1
	c.stringIndex[s] = i
	return i
}

func (c *code) addAccess(a bytecode.Access) int {
	c.accesses = append(c.accesses, a)
	return len(c.accesses) - 1
}

func (c *code) addPattern(p bytecode.Pattern) int {
	c.patterns = append(c.patterns, p)
	return len(c.patterns) - 1
}

func (c *code) addClosure(cl *bytecode.Closure) int {
	c.closures = append(c.closures, cl)
	return len(c.closures) - 1
}

// newLabel reserves a jump label. It must be placed with mark before the
// unit is finished.
func (c *code) newLabel() int {
	c.labels = append(c.labels, -1)
	return len(c.labels) - 1
}

func (c *code) mark(label int) {
	c.labels[label] = len(c.instructions)
}

func (c *code) setDefault(r bytecode.Register, v object.Value) {
	c.defaults = append(c.defaults, bytecode.DefaultValue{Target: r, Value: v})
}

func (c *code) pushScope() {
	c.scope = newScope(c.scope)
}

func (c *code) popScope() {
	c.scope = c.scope.parent
}

func (c *code) toUnit(globals *object.Scope, output bytecode.Readable) *bytecode.Unit {
	params := bytecode.UnitParams{
		Name:         c.name,
		Kind:         c.kind,
		File:         c.file,
		Span:         c.span,
		Instructions: c.instructions,
		Spans:        c.spans,
		Constants:    c.constants,
		Strings:      c.strings,
		Closures:     c.closures,
		Accesses:     c.accesses,
		Labels:       c.labels,
		Patterns:     c.patterns,
		Defaults:     c.defaults,
		Registers:    c.registers,
		Output:       output,
		Globals:      globals,
		Captures:     c.captures,
		Params:       c.params,
		Self:         c.self,
	}
	if c.kind == bytecode.ModuleUnit {
		for _, name := range c.root.order {
			params.Exports = append(params.Exports, bytecode.Export{
				Name:     name,
				Register: c.root.vars[name].reg,
			})
		}
	}
	return bytecode.NewUnit(params)
}
