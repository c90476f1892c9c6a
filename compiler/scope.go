package compiler

import (
	"sort"

	"github.com/quillscript/quill/ast"
	"github.com/quillscript/quill/bytecode"
	"github.com/quillscript/quill/diag"
	"github.com/quillscript/quill/object"
	"github.com/quillscript/quill/op"
)

// variable is a name bound in a block scope.
type variable struct {
	name string
	reg  bytecode.Register
	span ast.Span
	// constant is true while the variable holds a value known at compile
	// time that nothing has written over yet.
	constant bool
	value    object.Value
	loop     int
}

// scope is a block scope of one unit.
type scope struct {
	parent *scope
	vars   map[string]*variable
	order  []string
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, vars: map[string]*variable{}}
}

func (s *scope) define(v *variable) {
	if _, ok := s.vars[v.name]; !ok {
		s.order = append(s.order, v.name)
	}
	s.vars[v.name] = v
}

// lookup finds a variable of the unit, innermost scope first.
func (c *code) lookup(name string) (*variable, bool) {
	for s := c.scope; s != nil; s = s.parent {
		if v, ok := s.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// declare binds name to a fresh register in the current block scope.
func (c *code) declare(span ast.Span, name string) bytecode.Register {
	r := c.alloc()
	c.declareTo(span, name, r)
	return r
}

func (c *code) declareTo(span ast.Span, name string, r bytecode.Register) {
	c.scope.define(&variable{name: name, reg: r, span: span, loop: c.loopDepth})
}

// declareValue binds name to a value known at compile time. Outside of
// loops the register is filled from the default table and the variable is
// constant; inside a loop the value is copied in on every iteration.
func (c *code) declareValue(span ast.Span, name string, v object.Value) {
	r := c.alloc()
	if c.loopDepth == 0 {
		c.setDefault(r, v)
		c.scope.define(&variable{name: name, reg: r, span: span, constant: true, value: v})
		return
	}
	c.emit(span, bytecode.Instruction{Op: op.Copy, A: c.addConst(v), Out: bytecode.ToReg(r)})
	c.declareTo(span, name, r)
}

// binding is the result of resolving a name.
type binding struct {
	readable bytecode.Readable
	local    *variable
	captured bool
	global   bool
	// value is set when the bound value is known at compile time.
	value object.Value
}

// resolve finds name in c or in the units enclosing it. Names found in an
// enclosing unit are captured by value, unless they are constants, which
// are folded into c's constant pool.
func (c *code) resolve(name string, span ast.Span) (binding, bool) {
	if v, ok := c.lookup(name); ok {
		b := binding{readable: bytecode.Reg(v.reg), local: v}
		if v.constant {
			b.value = v.value
		}
		return b, true
	}
	if i, ok := c.captureIndex[name]; ok {
		return binding{readable: bytecode.Reg(c.captures[i].Target), captured: true}, true
	}
	if c.parent == nil {
		return binding{}, false
	}
	outer, ok := c.parent.resolve(name, span)
	if !ok {
		return binding{}, false
	}
	if outer.value != nil && (outer.local == nil || outer.local.loop == c.parentLoop) {
		return binding{readable: c.addConst(outer.value), value: outer.value}, true
	}
	target := c.alloc()
	c.captureIndex[name] = len(c.captures)
	c.captures = append(c.captures, bytecode.Capture{
		Name:   name,
		Span:   span,
		Source: outer.readable,
		Target: target,
	})
	return binding{readable: bytecode.Reg(target), captured: true}, true
}

// visibleOutside reports whether name is bound by an enclosing unit,
// without capturing it.
func (c *code) visibleOutside(name string) bool {
	if _, ok := c.captureIndex[name]; ok {
		return true
	}
	for p := c.parent; p != nil; p = p.parent {
		if _, ok := p.lookup(name); ok {
			return true
		}
		if _, ok := p.captureIndex[name]; ok {
			return true
		}
	}
	return false
}

// visibleNames lists every name readable from c, for suggestions.
func (c *code) visibleNames() []string {
	seen := map[string]bool{}
	for u := c; u != nil; u = u.parent {
		for s := u.scope; s != nil; s = s.parent {
			for name := range s.vars {
				seen[name] = true
			}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// resolveIdent resolves a name against the unit chain and the library.
func (c *Compiler) resolveIdent(id *ast.Ident) (binding, error) {
	if b, ok := c.current.resolve(id.Name, id.Loc); ok {
		return b, nil
	}
	if slot, ok := c.library.Slot(id.Name); ok {
		return binding{readable: bytecode.Global(slot), global: true, value: c.library.At(slot)}, nil
	}
	return binding{}, c.unknownVariable(id)
}

func (c *Compiler) unknownVariable(id *ast.Ident) error {
	err := diag.Errorf(id.Loc, "unknown variable: %s", id.Name)
	names := append(c.current.visibleNames(), c.library.Names()...)
	if hint := diag.SuggestionHint(diag.Suggest(id.Name, names)); hint != "" {
		err.WithHint("%s", hint)
	}
	return err
}
