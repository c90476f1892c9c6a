package compiler

import (
	"strings"

	"github.com/quillscript/quill/ast"
	"github.com/quillscript/quill/bytecode"
	"github.com/quillscript/quill/diag"
	"github.com/quillscript/quill/object"
	"github.com/quillscript/quill/op"
)

// staticModule resolves an import source at compile time. It reports
// false when the source is only known at run time.
func (c *Compiler) staticModule(source ast.Expr) (*object.Module, bool, error) {
	v, ok := c.constValue(source)
	if !ok {
		return nil, false, nil
	}
	switch v := v.(type) {
	case object.Str:
		if c.importer == nil {
			return nil, true, diag.Errorf(source.Span(), "cannot import `%s`: no importer is configured", string(v))
		}
		m, err := c.importer.Import(c.ctx, source.Span(), string(v))
		if err != nil {
			return nil, true, diag.At(source.Span(), err)
		}
		return m, true, nil
	case *object.Module:
		return v, true, nil
	case *object.Type:
		return object.NewModule(v.Name(), ast.FileID{}, v.Scope(), nil), true, nil
	case object.Func:
		if scoped, ok := v.(object.Scoped); ok {
			return object.NewModule(v.Name(), ast.FileID{}, scoped.Scope(), nil), true, nil
		}
	}
	return nil, true, diag.Errorf(source.Span(), "expected path, module, function, or type, found %s", v.Type())
}

func (c *Compiler) compileImport(x *ast.ModuleImport) error {
	module, static, err := c.staticModule(x.Source)
	if err != nil {
		c.declareImported(x)
		return err
	}
	if !static {
		return c.dynamicImport(x)
	}
	c.logger.Debug().
		Str("module", module.Name()).
		Str("file", module.File().String()).
		Msg("resolved static import")

	var e errs
	if x.NewName != nil {
		c.current.declareValue(x.NewName.Loc, x.NewName.Name, module)
	} else if x.Imports == nil {
		name := module.Name()
		if !object.IsIdent(name) {
			return diag.Errorf(x.Source.Span(), "module name would not be a valid identifier").
				WithHint("you can rename the import with `as`")
		}
		c.current.declareValue(x.Source.Span(), name, module)
	}

	switch imports := x.Imports.(type) {
	case *ast.Wildcard:
		scope := module.Scope()
		for _, name := range scope.Names() {
			v, _ := scope.Get(name)
			c.current.declareValue(imports.Loc, name, v)
		}
	case *ast.ImportItems:
		for _, item := range imports.Items {
			bound := item.BoundName()
			v, err := importPath(module, item.Path)
			if err != nil {
				c.current.declare(bound.Loc, bound.Name)
				e.add(err)
				continue
			}
			c.current.declareValue(bound.Loc, bound.Name, v)
		}
	}
	return e.err
}

// importPath walks an item path through the members of module.
func importPath(module *object.Module, path []*ast.Ident) (object.Value, error) {
	var current object.Value = module
	for i, seg := range path {
		v, err := object.Field(current, seg.Name)
		if err != nil {
			container := module.Name()
			if i > 0 {
				names := make([]string, i)
				for j := range names {
					names[j] = path[j].Name
				}
				container = strings.Join(names, ".")
			}
			return nil, diag.Errorf(seg.Loc, "cannot find `%s` in module `%s`", seg.Name, container)
		}
		current = v
	}
	return current, nil
}

// dynamicImport imports a module when the unit runs. Items are read from
// it with field accesses; a wildcard is rejected since the names it would
// bind are unknown.
func (c *Compiler) dynamicImport(x *ast.ModuleImport) error {
	if w, ok := x.Imports.(*ast.Wildcard); ok {
		return diag.Errorf(w.Loc, "cannot import all definitions from a dynamic module")
	}
	source, err := c.compileReadable(x.Source)
	if err != nil {
		c.declareImported(x)
		return err
	}
	module := c.temp()
	c.emit(x.Source.Span(), bytecode.Instruction{Op: op.Import, A: source, Out: bytecode.ToReg(module)})

	switch {
	case x.NewName != nil:
		c.current.declareTo(x.NewName.Loc, x.NewName.Name, module)
	case x.Imports == nil:
		name := sourceName(x.Source)
		if name == "" {
			return diag.Errorf(x.Source.Span(), "cannot determine the name of a dynamic module").
				WithHint("you can name the import with `as`")
		}
		c.current.declareTo(x.Source.Span(), name, module)
	}

	items, ok := x.Imports.(*ast.ImportItems)
	if !ok {
		return nil
	}
	for _, item := range items.Items {
		current := bytecode.Reg(module)
		var r bytecode.Register
		for _, seg := range item.Path {
			r = c.temp()
			c.emit(seg.Loc, bytecode.Instruction{
				Op:    op.Field,
				A:     current,
				Index: c.str(seg.Name),
				Out:   bytecode.ToReg(r),
			})
			current = bytecode.Reg(r)
		}
		bound := item.BoundName()
		c.current.declareTo(bound.Loc, bound.Name, r)
	}
	return nil
}

// sourceName is the name a dynamic import binds by default: the variable
// or field the module is read from.
func sourceName(e ast.Expr) string {
	switch x := e.(type) {
	case *ast.Ident:
		return x.Name
	case *ast.FieldAccess:
		return x.Field.Name
	case *ast.Paren:
		return sourceName(x.X)
	}
	return ""
}

// declareImported binds the names of a failed import so that later uses
// are not reported as unknown.
func (c *Compiler) declareImported(x *ast.ModuleImport) {
	if x.NewName != nil {
		c.current.declare(x.NewName.Loc, x.NewName.Name)
	}
	if items, ok := x.Imports.(*ast.ImportItems); ok {
		for _, item := range items.Items {
			bound := item.BoundName()
			c.current.declare(bound.Loc, bound.Name)
		}
	}
}

// compileInclude evaluates a module and produces its content. Includes of
// a literal path are evaluated while compiling.
func (c *Compiler) compileInclude(x *ast.ModuleInclude, out bytecode.Writable) error {
	module, static, err := c.staticModule(x.Source)
	if err != nil {
		return err
	}
	if static {
		var content object.Value = object.None
		if module.Content() != nil {
			content = module.Content()
		}
		c.copy(x.Loc, c.current.addConst(content), out)
		return nil
	}
	source, err := c.compileReadable(x.Source)
	if err != nil {
		return err
	}
	if out.Kind == bytecode.WriteDiscard {
		out = bytecode.ToReg(c.temp())
	}
	c.emit(x.Loc, bytecode.Instruction{Op: op.Include, A: source, Out: out})
	return nil
}
