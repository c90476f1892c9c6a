package compiler

import (
	"github.com/quillscript/quill/ast"
	"github.com/quillscript/quill/bytecode"
	"github.com/quillscript/quill/diag"
	"github.com/quillscript/quill/object"
)

// access resolves e as a place. With mutable set the place is about to be
// written: local variables lose their constant status, and anything that
// cannot be written is rejected.
func (c *Compiler) access(e ast.Expr, mutable bool) (bytecode.Access, error) {
	switch x := e.(type) {
	case *ast.Paren:
		return c.access(x.X, mutable)
	case *ast.Ident:
		return c.accessIdent(x, mutable)
	case *ast.FieldAccess:
		return c.accessField(x, mutable)
	case *ast.FuncCall:
		if mutable {
			return c.accessMethod(x)
		}
	}
	if mutable {
		return bytecode.Access{}, diag.Errorf(e.Span(), "cannot mutate a temporary value")
	}
	r, err := c.compileReadable(e)
	if err != nil {
		return bytecode.Access{}, err
	}
	return bytecode.Access{Kind: bytecode.AccessReadable, Span: e.Span(), Readable: r}, nil
}

func (c *Compiler) accessIdent(x *ast.Ident, mutable bool) (bytecode.Access, error) {
	if !mutable {
		b, err := c.resolveIdent(x)
		if err != nil {
			return bytecode.Access{}, err
		}
		if b.value != nil && !b.readable.IsReg() {
			return constAccess(x.Loc, b.value), nil
		}
		return bytecode.Access{Kind: bytecode.AccessReadable, Span: x.Loc, Readable: b.readable}, nil
	}
	if v, ok := c.current.lookup(x.Name); ok {
		v.constant = false
		v.value = nil
		return bytecode.Access{Kind: bytecode.AccessRegister, Span: x.Loc, Register: v.reg}, nil
	}
	if c.current.visibleOutside(x.Name) {
		return bytecode.Access{}, diag.Errorf(x.Loc,
			"variables from outside the function are read-only and cannot be modified")
	}
	if _, ok := c.library.Get(x.Name); ok {
		return bytecode.Access{}, diag.Errorf(x.Loc, "cannot mutate a constant: %s", x.Name)
	}
	return bytecode.Access{}, c.unknownVariable(x)
}

func (c *Compiler) accessField(x *ast.FieldAccess, mutable bool) (bytecode.Access, error) {
	name := x.Field.Name
	// Members of modules, types and functions are constants. Writing one
	// is reported when the write runs.
	if container, ok := c.constValue(x.Target); ok {
		if kind, ok := memberKind(container); ok {
			if _, err := object.Field(container, name); err == nil || mutable {
				return bytecode.Access{Kind: kind, Span: x.Field.Loc, Value: container, Name: name}, nil
			}
		}
	}
	if !mutable {
		r, err := c.compileReadable(x)
		if err != nil {
			return bytecode.Access{}, err
		}
		return bytecode.Access{Kind: bytecode.AccessReadable, Span: x.Loc, Readable: r}, nil
	}
	base, err := c.access(x.Target, true)
	if err != nil {
		return bytecode.Access{}, err
	}
	return bytecode.Access{
		Kind: bytecode.AccessChained,
		Span: x.Field.Loc,
		Base: c.current.addAccess(base),
		Name: name,
	}, nil
}

// accessMethod resolves an accessor method call such as `arr.at(0)` as a
// place.
func (c *Compiler) accessMethod(x *ast.FuncCall) (bytecode.Access, error) {
	field, ok := x.Callee.(*ast.FieldAccess)
	if !ok || !object.IsAccessor(field.Field.Name) {
		return bytecode.Access{}, diag.Errorf(x.Loc, "cannot mutate a temporary value")
	}
	args, err := c.compileArgs(x.Loc, x.Args)
	if err != nil {
		return bytecode.Access{}, err
	}
	base, err := c.access(field.Target, true)
	if err != nil {
		return bytecode.Access{}, err
	}
	return bytecode.Access{
		Kind: bytecode.AccessMethod,
		Span: x.Loc,
		Base: c.current.addAccess(base),
		Name: field.Field.Name,
		Args: args,
	}, nil
}

// writable turns a place into an instruction destination.
func (c *Compiler) writable(a bytecode.Access) bytecode.Writable {
	if a.Kind == bytecode.AccessRegister {
		return bytecode.ToReg(a.Register)
	}
	return bytecode.ToAccess(c.current.addAccess(a))
}

func constAccess(span ast.Span, v object.Value) bytecode.Access {
	return bytecode.Access{Kind: bytecode.AccessValue, Span: span, Value: v}
}

func memberKind(v object.Value) (bytecode.AccessKind, bool) {
	switch v.(type) {
	case *object.Module:
		return bytecode.AccessModule, true
	case *object.Type:
		return bytecode.AccessType, true
	case object.Func:
		return bytecode.AccessFunc, true
	}
	return 0, false
}

// isPlace reports whether e can be resolved as a writable place.
func isPlace(e ast.Expr) bool {
	switch x := e.(type) {
	case *ast.Ident:
		return true
	case *ast.Paren:
		return isPlace(x.X)
	case *ast.FieldAccess:
		return isPlace(x.Target)
	case *ast.FuncCall:
		field, ok := x.Callee.(*ast.FieldAccess)
		return ok && object.IsAccessor(field.Field.Name) && isPlace(field.Target)
	}
	return false
}
