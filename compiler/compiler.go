// Package compiler lowers a quill syntax tree into compiled units.
//
// # Units
//
// Every module top level and every closure body becomes its own
// bytecode.Unit. A unit owns a fixed register file; the compiler hands out
// registers with a bump allocator and never reuses them, so a register
// index identifies one value slot for the whole unit.
//
// # Destinations
//
// Expressions are compiled either into a caller supplied destination
// (compile) or into a fresh register whose Readable is returned
// (compileReadable). Literals and constants are read straight from the
// pools without any instruction.
//
// # Captures and constants
//
// A closure that reads a variable of an enclosing unit captures it: the
// closure gets a register of its own, and the value is copied from the
// enclosing frame when the closure value is built. Variables bound to
// compile-time constants outside of loops are not captured; their value is
// folded into the closure's constant pool instead. A closure that captures
// nothing and has only constant parameter defaults is built once, at
// compile time, and shared by every evaluation.
//
// # Imports
//
// Imports with a literal path are resolved while compiling, through the
// configured importer, so the names they bind are constants. Imports from
// any other expression are resolved when the unit runs.
package compiler

import (
	"context"
	"sync"

	"github.com/quillscript/quill/ast"
	"github.com/quillscript/quill/bytecode"
	"github.com/quillscript/quill/diag"
	"github.com/quillscript/quill/importer"
	"github.com/quillscript/quill/object"
	"github.com/quillscript/quill/op"
	"github.com/quillscript/quill/vm"
	"github.com/rs/zerolog"
)

// Config holds compiler configuration options.
type Config struct {
	// Library is the global scope every unit can read from. It must not be
	// modified after compilation starts.
	Library *object.Scope

	// Importer resolves imports with a literal path. Without one, such
	// imports fail to compile.
	Importer importer.Importer

	// Logger receives debug and trace events. Defaults to a no-op logger.
	Logger *zerolog.Logger

	// Closures deduplicates pre-instantiated closures across compilations.
	// Nil disables deduplication.
	Closures *ClosureCache

	// Name overrides the module name, which defaults to the file stem.
	Name string
}

// Compiler compiles one module. It is not safe for concurrent use; create
// one per compilation.
type Compiler struct {
	ctx      context.Context
	library  *object.Scope
	importer importer.Importer
	logger   zerolog.Logger
	closures *ClosureCache
	name     string

	// The unit we are compiling into. This changes as we enter and leave
	// closures.
	current *code
}

// New creates a compiler. Pass nil for cfg to use defaults.
func New(cfg *Config) *Compiler {
	c := &Compiler{library: object.NewScope(), logger: zerolog.Nop()}
	if cfg != nil {
		if cfg.Library != nil {
			c.library = cfg.Library
		}
		if cfg.Logger != nil {
			c.logger = *cfg.Logger
		}
		c.importer = cfg.Importer
		c.closures = cfg.Closures
		c.name = cfg.Name
	}
	return c
}

// Compile compiles a parsed source file into a module unit. Pass nil for
// cfg to use default settings.
func Compile(ctx context.Context, src *ast.Source, cfg *Config) (*bytecode.Unit, error) {
	return New(cfg).CompileModule(ctx, src.ID(), src.Root())
}

// CompileModule compiles the top level of a module.
func (c *Compiler) CompileModule(ctx context.Context, file ast.FileID, root *ast.Code) (*bytecode.Unit, error) {
	c.ctx = ctx
	name := c.name
	if name == "" {
		name = file.Stem()
	}
	var span ast.Span
	if root != nil {
		span = root.Loc
	} else {
		root = &ast.Code{}
	}
	c.current = newCode(name, bytecode.ModuleUnit, file, span, nil)
	out := c.current.alloc()
	if err := c.compileStatements(root, bytecode.ToReg(out)); err != nil {
		return nil, err
	}
	unit := c.current.toUnit(c.library, bytecode.Reg(out))
	c.logger.Debug().
		Str("module", name).
		Str("file", file.String()).
		Int("instructions", unit.InstructionCount()).
		Int("closures", unit.ClosureCount()).
		Int("registers", unit.Registers()).
		Msg("compiled module")
	return unit, nil
}

// emit appends an instruction to the current unit.
func (c *Compiler) emit(span ast.Span, in bytecode.Instruction) int {
	return c.current.emit(span, in)
}

func (c *Compiler) copy(span ast.Span, src bytecode.Readable, out bytecode.Writable) {
	if out.Kind == bytecode.WriteDiscard {
		return
	}
	if src.IsReg() && out.IsReg() && src.Register() == out.Register() {
		return
	}
	c.emit(span, bytecode.Instruction{Op: op.Copy, A: src, Out: out})
}

// str interns a string and returns its index in the string pool.
func (c *Compiler) str(s string) uint32 {
	return uint32(c.current.addString(s))
}

// temp allocates a scratch register of the current unit.
func (c *Compiler) temp() bytecode.Register {
	return c.current.alloc()
}

// ClosureCache shares pre-instantiated closures between compilations.
// Closures are keyed by their fingerprint, which covers the compiled body
// and the bound parameter defaults. It is safe for concurrent use.
type ClosureCache struct {
	mu       sync.Mutex
	closures map[bytecode.Digest]*vm.Closure
	hits     int
}

// NewClosureCache creates an empty cache.
func NewClosureCache() *ClosureCache {
	return &ClosureCache{closures: map[bytecode.Digest]*vm.Closure{}}
}

// intern returns the cached closure with the same fingerprint as cl, or
// stores cl. The boolean reports a cache hit.
func (cc *ClosureCache) intern(cl *vm.Closure) (*vm.Closure, bool) {
	d := cl.Fingerprint()
	if d == (bytecode.Digest{}) {
		return cl, false
	}
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if existing, ok := cc.closures[d]; ok {
		cc.hits++
		return existing, true
	}
	cc.closures[d] = cl
	return cl, false
}

// Len returns the number of distinct closures in the cache.
func (cc *ClosureCache) Len() int {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return len(cc.closures)
}

// Hits returns how many closures were replaced by a cached one.
func (cc *ClosureCache) Hits() int {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.hits
}

// errs accumulates independent compile errors.
type errs struct {
	err error
}

func (e *errs) add(err error) {
	e.err = diag.Append(e.err, err)
}
