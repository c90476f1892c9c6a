package compiler

import (
	"github.com/quillscript/quill/ast"
	"github.com/quillscript/quill/bytecode"
	"github.com/quillscript/quill/diag"
	"github.com/quillscript/quill/object"
	"github.com/quillscript/quill/op"
	"github.com/quillscript/quill/vm"
)

func instantiate(index int, r bytecode.Register) bytecode.Instruction {
	return bytecode.Instruction{Op: op.Instantiate, Index: uint32(index), Out: bytecode.ToReg(r)}
}

func (c *Compiler) compileClosureExpr(x *ast.Closure, out bytecode.Writable) error {
	index, _, err := c.compileClosure(x)
	if err != nil {
		return err
	}
	if out.Kind == bytecode.WriteDiscard {
		return nil
	}
	c.emit(x.Loc, bytecode.Instruction{Op: op.Instantiate, Index: uint32(index), Out: out})
	return nil
}

// paramPattern is a destructuring parameter, bound once the arguments are
// in place.
type paramPattern struct {
	reg     bytecode.Register
	pattern *ast.Destructuring
}

// compileClosure compiles a closure literal into a nested unit of the
// current one and returns its index. When the closure captures nothing and
// all its defaults are constants, it is built right away and returned as
// well.
func (c *Compiler) compileClosure(x *ast.Closure) (int, object.Value, error) {
	parent := c.current

	// Defaults are evaluated by the enclosing code and cannot see the
	// parameters.
	defaults := make([]bytecode.Readable, len(x.Params))
	bound := make([]object.Value, len(x.Params))
	constDefaults := true
	for i, p := range x.Params {
		named, ok := p.(*ast.Named)
		if !ok {
			continue
		}
		r, err := c.compileReadable(named.Value)
		if err != nil {
			return 0, nil, err
		}
		defaults[i] = r
		if v, ok := c.readableValue(r); ok {
			bound[i] = v
		} else {
			constDefaults = false
		}
	}

	var name string
	if x.Name != nil {
		name = x.Name.Name
	}
	child := newCode(name, bytecode.ClosureUnit, parent.file, x.Loc, parent)
	c.current = child
	defer func() { c.current = parent }()

	if x.Name != nil {
		self := child.alloc()
		child.self = &self
		child.declareTo(x.Name.Loc, name, self)
	}
	patterns, err := c.compileParams(x.Params, defaults)
	if err != nil {
		return 0, nil, err
	}
	for _, p := range patterns {
		index, err := c.compilePattern(p.pattern, true)
		if err != nil {
			return 0, nil, err
		}
		c.destructure(p.pattern.Loc, bytecode.Reg(p.reg), index)
	}
	output, err := c.compileReadable(x.Body)
	if err != nil {
		return 0, nil, err
	}

	unit := child.toUnit(c.library, output)
	compiled := &bytecode.Closure{Mode: bytecode.Deferred, Unit: unit}
	var value object.Value
	if len(child.captures) == 0 && constDefaults {
		fn := vm.NewClosure(unit, nil, bound)
		if c.closures != nil {
			var hit bool
			if fn, hit = c.closures.intern(fn); hit {
				c.logger.Trace().Str("closure", fn.Repr()).Msg("reused pre-instantiated closure")
			}
		}
		compiled.Mode = bytecode.Instantiated
		compiled.Value = fn
		value = fn
		c.logger.Trace().
			Str("closure", fn.Repr()).
			Str("file", parent.file.String()).
			Msg("pre-instantiated closure")
	}
	return parent.addClosure(compiled), value, nil
}

// compileParams declares the parameters of the closure being compiled.
// Destructuring parameters are returned so that they can be bound after
// every parameter register is known.
func (c *Compiler) compileParams(params []ast.Param, defaults []bytecode.Readable) ([]paramPattern, error) {
	child := c.current
	seen := map[string]bool{}
	unique := func(id *ast.Ident) error {
		if seen[id.Name] {
			return diag.Errorf(id.Loc, "duplicate parameter: %s", id.Name)
		}
		seen[id.Name] = true
		return nil
	}

	var patterns []paramPattern
	sink := false
	for i, p := range params {
		switch p := p.(type) {
		case *ast.Ident:
			if err := unique(p); err != nil {
				return nil, err
			}
			child.params = append(child.params, bytecode.Param{
				Kind: bytecode.ParamPos, Name: p.Name, Span: p.Loc, Target: child.declare(p.Loc, p.Name),
			})
		case *ast.Placeholder:
			child.params = append(child.params, bytecode.Param{
				Kind: bytecode.ParamPos, Name: "_", Span: p.Loc, Target: child.alloc(),
			})
		case *ast.Destructuring:
			for _, id := range patternNames(p) {
				if err := unique(id); err != nil {
					return nil, err
				}
			}
			r := child.alloc()
			child.params = append(child.params, bytecode.Param{Kind: bytecode.ParamPos, Span: p.Loc, Target: r})
			patterns = append(patterns, paramPattern{reg: r, pattern: p})
		case *ast.Named:
			if err := unique(p.Name); err != nil {
				return nil, err
			}
			child.params = append(child.params, bytecode.Param{
				Kind:       bytecode.ParamNamed,
				Name:       p.Name.Name,
				Span:       p.Loc,
				Target:     child.declare(p.Name.Loc, p.Name.Name),
				Default:    defaults[i],
				HasDefault: true,
			})
		case *ast.Spread:
			if sink {
				return nil, diag.Errorf(p.Loc, "only one argument sink is allowed")
			}
			sink = true
			param := bytecode.Param{Kind: bytecode.ParamSink, Span: p.Loc}
			switch x := p.X.(type) {
			case nil:
				param.Discard = true
				param.Target = child.alloc()
			case *ast.Ident:
				if err := unique(x); err != nil {
					return nil, err
				}
				param.Name = x.Name
				param.Target = child.declare(x.Loc, x.Name)
			default:
				return nil, diag.Errorf(x.Span(), "expected identifier")
			}
			child.params = append(child.params, param)
		default:
			return nil, diag.Errorf(p.Span(), "unexpected parameter")
		}
	}
	return patterns, nil
}

// patternNames lists the identifiers a destructuring pattern binds.
func patternNames(p ast.Pattern) []*ast.Ident {
	switch x := p.(type) {
	case *ast.Ident:
		return []*ast.Ident{x}
	case *ast.Destructuring:
		var out []*ast.Ident
		for _, item := range x.Items {
			switch it := item.(type) {
			case *ast.Spread:
				if it.X != nil {
					out = append(out, patternNames(it.X)...)
				}
			case *ast.DestructNamed:
				out = append(out, patternNames(it.Pattern)...)
			default:
				out = append(out, patternNames(it)...)
			}
		}
		return out
	}
	return nil
}

// readableValue returns the value of a readable that is fixed at compile
// time.
func (c *Compiler) readableValue(r bytecode.Readable) (object.Value, bool) {
	switch r.Kind {
	case bytecode.ReadNone:
		return object.None, true
	case bytecode.ReadAuto:
		return object.Auto, true
	case bytecode.ReadBool:
		return object.Bool(r.Index == 1), true
	case bytecode.ReadConst:
		return c.current.constants[r.Index], true
	case bytecode.ReadStr:
		return object.Str(c.current.strings[r.Index]), true
	case bytecode.ReadGlobal:
		return c.library.At(int(r.Index)), true
	}
	return nil, false
}
