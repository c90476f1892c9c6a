package compiler

import (
	"github.com/quillscript/quill/ast"
	"github.com/quillscript/quill/bytecode"
	"github.com/quillscript/quill/diag"
	"github.com/quillscript/quill/object"
	"github.com/quillscript/quill/op"
)

// compilePattern lowers a pattern into the pattern table and returns its
// index. With declare set, identifiers bind new variables (`let`, `for`,
// parameters); otherwise they are assignment targets resolved through the
// access resolver.
func (c *Compiler) compilePattern(p ast.Pattern, declare bool) (int, error) {
	switch x := p.(type) {
	case *ast.Placeholder:
		return c.current.addPattern(bytecode.Pattern{Kind: bytecode.PatternPlaceholder, Span: x.Loc}), nil
	case *ast.Destructuring:
		items, err := c.compileItems(x, declare)
		if err != nil {
			return 0, err
		}
		return c.current.addPattern(bytecode.Pattern{Kind: bytecode.PatternItems, Span: x.Loc, Items: items}), nil
	case ast.Expr:
		target, err := c.bindTarget(x, declare)
		if err != nil {
			return 0, err
		}
		return c.current.addPattern(bytecode.Pattern{Kind: bytecode.PatternSingle, Span: x.Span(), Target: target}), nil
	}
	return 0, diag.Errorf(p.Span(), "unexpected pattern")
}

// bindTarget returns where a simple pattern item writes its value.
func (c *Compiler) bindTarget(e ast.Expr, declare bool) (bytecode.Writable, error) {
	if declare {
		id, ok := e.(*ast.Ident)
		if !ok {
			return bytecode.Writable{}, diag.Errorf(e.Span(), "expected identifier")
		}
		return bytecode.ToReg(c.current.declare(id.Loc, id.Name)), nil
	}
	place, err := c.access(e, true)
	if err != nil {
		return bytecode.Writable{}, err
	}
	return c.writable(place), nil
}

func (c *Compiler) compileItems(x *ast.Destructuring, declare bool) ([]bytecode.PatternItem, error) {
	var (
		items   []bytecode.PatternItem
		spread  bool
		named   bool
		unnamed ast.Node
	)
	for _, item := range x.Items {
		switch it := item.(type) {
		case *ast.Placeholder:
			unnamed = it
			items = append(items, bytecode.PatternItem{Kind: bytecode.ItemPlaceholder, Span: it.Loc})
		case *ast.Spread:
			if spread {
				return nil, diag.Errorf(it.Loc, "only one destructuring sink is allowed")
			}
			spread = true
			if it.X == nil {
				items = append(items, bytecode.PatternItem{Kind: bytecode.ItemSpreadDiscard, Span: it.Loc})
				continue
			}
			target, err := c.bindTarget(it.X, declare)
			if err != nil {
				return nil, err
			}
			items = append(items, bytecode.PatternItem{Kind: bytecode.ItemSpread, Span: it.Loc, Target: target})
		case *ast.DestructNamed:
			named = true
			item, err := c.compileNamed(it, declare)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		case *ast.Destructuring:
			unnamed = it
			nested, err := c.compilePattern(it, declare)
			if err != nil {
				return nil, err
			}
			items = append(items, bytecode.PatternItem{Kind: bytecode.ItemNested, Span: it.Loc, Pattern: nested})
		case ast.Expr:
			id, isIdent := it.(*ast.Ident)
			if !isIdent {
				unnamed = it
			}
			target, err := c.bindTarget(it, declare)
			if err != nil {
				return nil, err
			}
			simple := bytecode.PatternItem{Kind: bytecode.ItemSimple, Span: it.Span(), Target: target}
			if isIdent {
				simple.Key = id.Name
			}
			items = append(items, simple)
		default:
			return nil, diag.Errorf(item.Span(), "unexpected destructuring item")
		}
	}
	// Named items only match dictionaries and unnamed items only match
	// arrays, so a pattern with both can never match.
	if named && unnamed != nil {
		return nil, diag.Errorf(unnamed.Span(), "cannot destructure unnamed pattern from a dictionary").
			WithHint("this pattern also has named items, which only match dictionaries")
	}
	return items, nil
}

func (c *Compiler) compileNamed(it *ast.DestructNamed, declare bool) (bytecode.PatternItem, error) {
	item := bytecode.PatternItem{Kind: bytecode.ItemNamed, Span: it.Loc, Key: it.Name.Name}
	switch p := it.Pattern.(type) {
	case *ast.Placeholder:
		item.Inner = bytecode.ItemPlaceholder
	case *ast.Destructuring:
		nested, err := c.compilePattern(p, declare)
		if err != nil {
			return item, err
		}
		item.Inner = bytecode.ItemNested
		item.Pattern = nested
	case ast.Expr:
		target, err := c.bindTarget(p, declare)
		if err != nil {
			return item, err
		}
		item.Inner = bytecode.ItemSimple
		item.Target = target
	default:
		return item, diag.Errorf(it.Pattern.Span(), "unexpected pattern")
	}
	return item, nil
}

// destructure emits the instruction applying pattern p to value.
func (c *Compiler) destructure(span ast.Span, value bytecode.Readable, p int) {
	c.emit(span, bytecode.Instruction{Op: op.Destructure, A: value, Index: uint32(p)})
}

// compileLet lowers a `let` binding. The initializer is compiled before
// the pattern so that it still sees the bindings the pattern shadows.
func (c *Compiler) compileLet(x *ast.LetBinding) error {
	switch p := x.Pattern.(type) {
	case *ast.Ident:
		return c.letIdent(x, p)
	case *ast.Placeholder:
		if x.Init == nil {
			return nil
		}
		return c.compile(x.Init, bytecode.Discard())
	}
	var value bytecode.Readable = bytecode.None()
	if x.Init != nil {
		v, err := c.compileReadable(x.Init)
		if err != nil {
			c.declareNames(x.Pattern)
			return err
		}
		value = v
	}
	pattern, err := c.compilePattern(x.Pattern, true)
	if err != nil {
		return err
	}
	c.destructure(x.Loc, value, pattern)
	return nil
}

func (c *Compiler) letIdent(x *ast.LetBinding, id *ast.Ident) error {
	if x.Init == nil {
		c.current.declareValue(id.Loc, id.Name, object.None)
		return nil
	}
	if v, ok := literalValue(x.Init); ok {
		c.current.declareValue(id.Loc, id.Name, v)
		return nil
	}
	if fn, ok := x.Init.(*ast.Closure); ok {
		index, value, err := c.compileClosure(fn)
		if err != nil {
			c.current.declare(id.Loc, id.Name)
			return err
		}
		if value != nil {
			c.current.declareValue(id.Loc, id.Name, value)
			return nil
		}
		r := c.temp()
		c.emit(fn.Loc, instantiate(index, r))
		c.current.declareTo(id.Loc, id.Name, r)
		return nil
	}
	r := c.temp()
	err := c.compile(x.Init, bytecode.ToReg(r))
	c.current.declareTo(id.Loc, id.Name, r)
	return err
}

// declareNames binds every identifier of a pattern that failed to compile,
// so that later uses do not report unknown variables.
func (c *Compiler) declareNames(p ast.Pattern) {
	switch x := p.(type) {
	case *ast.Ident:
		c.current.declare(x.Loc, x.Name)
	case *ast.Destructuring:
		for _, item := range x.Items {
			switch it := item.(type) {
			case *ast.Spread:
				if it.X != nil {
					c.declareNames(it.X)
				}
			case *ast.DestructNamed:
				c.declareNames(it.Pattern)
			default:
				c.declareNames(it)
			}
		}
	}
}

func (c *Compiler) compileDestructAssign(x *ast.DestructAssign) error {
	value, err := c.compileReadable(x.Value)
	if err != nil {
		return err
	}
	pattern, err := c.compilePattern(x.Pattern, false)
	if err != nil {
		return err
	}
	c.destructure(x.Loc, value, pattern)
	return nil
}
