package compiler

import (
	"github.com/quillscript/quill/ast"
	"github.com/quillscript/quill/bytecode"
	"github.com/quillscript/quill/diag"
	"github.com/quillscript/quill/object"
	"github.com/quillscript/quill/op"
)

// compile lowers e into out, which is a register or a discard.
func (c *Compiler) compile(e ast.Expr, out bytecode.Writable) error {
	switch x := e.(type) {
	case *ast.None, *ast.Auto, *ast.Bool, *ast.Int, *ast.Float, *ast.Str:
		c.copy(e.Span(), c.literal(e), out)
		return nil
	case *ast.Ident:
		b, err := c.resolveIdent(x)
		if err != nil {
			return err
		}
		c.copy(x.Loc, b.readable, out)
		return nil
	case *ast.Paren:
		return c.compile(x.X, out)
	case *ast.Array:
		return c.compileArray(x, out)
	case *ast.Dict:
		return c.compileDict(x, out)
	case *ast.Unary:
		return c.compileUnary(x, out)
	case *ast.Binary:
		return c.compileBinary(x, out)
	case *ast.FieldAccess:
		return c.compileField(x, out)
	case *ast.FuncCall:
		return c.compileCall(x, out)
	case *ast.Closure:
		return c.compileClosureExpr(x, out)
	case *ast.Code:
		return c.compileBlock(x, out)
	case *ast.Conditional:
		return c.compileConditional(x, out)
	case *ast.While:
		return c.compileWhile(x, out)
	case *ast.For:
		return c.compileFor(x, out)
	case *ast.LoopBreak:
		return c.compileBreak(x)
	case *ast.LoopContinue:
		return c.compileContinue(x)
	case *ast.FuncReturn:
		return c.compileReturn(x)
	case *ast.LetBinding:
		if err := c.compileLet(x); err != nil {
			return err
		}
		c.copy(x.Loc, bytecode.None(), out)
		return nil
	case *ast.DestructAssign:
		if err := c.compileDestructAssign(x); err != nil {
			return err
		}
		c.copy(x.Loc, bytecode.None(), out)
		return nil
	case *ast.ModuleImport:
		if err := c.compileImport(x); err != nil {
			return err
		}
		c.copy(x.Loc, bytecode.None(), out)
		return nil
	case *ast.ModuleInclude:
		return c.compileInclude(x, out)
	}
	return diag.Errorf(e.Span(), "unsupported expression %T", e)
}

// compileReadable lowers e and returns where its value can be read.
// Literals and constants are returned without emitting anything.
func (c *Compiler) compileReadable(e ast.Expr) (bytecode.Readable, error) {
	switch x := e.(type) {
	case *ast.None, *ast.Auto, *ast.Bool, *ast.Int, *ast.Float, *ast.Str:
		return c.literal(e), nil
	case *ast.Ident:
		b, err := c.resolveIdent(x)
		if err != nil {
			return bytecode.Readable{}, err
		}
		return b.readable, nil
	case *ast.Paren:
		return c.compileReadable(x.X)
	case *ast.FieldAccess:
		if v, ok := c.constValue(x); ok {
			return c.current.addConst(v), nil
		}
	}
	r := c.temp()
	if err := c.compile(e, bytecode.ToReg(r)); err != nil {
		return bytecode.Readable{}, err
	}
	return bytecode.Reg(r), nil
}

// literal returns the readable of a literal node.
func (c *Compiler) literal(e ast.Expr) bytecode.Readable {
	switch x := e.(type) {
	case *ast.None:
		return bytecode.None()
	case *ast.Auto:
		return bytecode.Auto()
	case *ast.Bool:
		return bytecode.Bool(x.Value)
	case *ast.Int:
		return c.current.addConst(object.Int(x.Value))
	case *ast.Float:
		return c.current.addConst(object.Float(x.Value))
	case *ast.Str:
		return bytecode.Str(int(c.str(x.Value)))
	}
	return bytecode.None()
}

// literalValue returns the value of a literal node.
func literalValue(e ast.Expr) (object.Value, bool) {
	switch x := e.(type) {
	case *ast.None:
		return object.None, true
	case *ast.Auto:
		return object.Auto, true
	case *ast.Bool:
		return object.Bool(x.Value), true
	case *ast.Int:
		return object.Int(x.Value), true
	case *ast.Float:
		return object.Float(x.Value), true
	case *ast.Str:
		return object.Str(x.Value), true
	case *ast.Paren:
		return literalValue(x.X)
	}
	return nil, false
}

// constValue evaluates e at compile time when it is a literal, a constant
// variable, a library value, or a field of one of those. It never emits
// instructions.
func (c *Compiler) constValue(e ast.Expr) (object.Value, bool) {
	switch x := e.(type) {
	case *ast.Paren:
		return c.constValue(x.X)
	case *ast.Ident:
		b, ok := c.current.resolve(x.Name, x.Loc)
		if ok {
			return b.value, b.value != nil
		}
		if slot, ok := c.library.Slot(x.Name); ok {
			return c.library.At(slot), true
		}
		return nil, false
	case *ast.FieldAccess:
		target, ok := c.constValue(x.Target)
		if !ok {
			return nil, false
		}
		// Fields that do not exist are left for the machine to report, so
		// that the error carries the run-time span.
		v, err := object.Field(target, x.Field.Name)
		if err != nil {
			return nil, false
		}
		return v, true
	}
	return literalValue(e)
}

// dest returns out when it is a register, or a scratch register for
// values that must be built in place.
func (c *Compiler) dest(out bytecode.Writable) bytecode.Register {
	if out.IsReg() {
		return out.Register()
	}
	return c.temp()
}

func (c *Compiler) compileArray(x *ast.Array, out bytecode.Writable) error {
	r := c.dest(out)
	c.emit(x.Loc, bytecode.Instruction{Op: op.Array, Index: uint32(len(x.Items)), Out: bytecode.ToReg(r)})
	for _, item := range x.Items {
		code := op.Push
		var value ast.Expr
		switch it := item.(type) {
		case *ast.Spread:
			code, value = op.Spread, it.X
		case ast.Expr:
			value = it
		default:
			return diag.Errorf(item.Span(), "unexpected array item")
		}
		v, err := c.compileReadable(value)
		if err != nil {
			return err
		}
		c.emit(item.Span(), bytecode.Instruction{Op: code, A: v, Out: bytecode.ToReg(r)})
	}
	return nil
}

func (c *Compiler) compileDict(x *ast.Dict, out bytecode.Writable) error {
	r := c.dest(out)
	c.emit(x.Loc, bytecode.Instruction{Op: op.Dict, Index: uint32(len(x.Items)), Out: bytecode.ToReg(r)})
	for _, item := range x.Items {
		switch it := item.(type) {
		case *ast.Named:
			v, err := c.compileReadable(it.Value)
			if err != nil {
				return err
			}
			key := bytecode.Str(int(c.str(it.Name.Name)))
			c.emit(it.Loc, bytecode.Instruction{Op: op.Insert, A: key, B: v, Out: bytecode.ToReg(r)})
		case *ast.Keyed:
			key, err := c.compileReadable(it.Key)
			if err != nil {
				return err
			}
			v, err := c.compileReadable(it.Value)
			if err != nil {
				return err
			}
			c.emit(it.Loc, bytecode.Instruction{Op: op.Insert, A: key, B: v, Out: bytecode.ToReg(r)})
		case *ast.Spread:
			v, err := c.compileReadable(it.X)
			if err != nil {
				return err
			}
			c.emit(it.Loc, bytecode.Instruction{Op: op.SpreadDict, A: v, Out: bytecode.ToReg(r)})
		default:
			return diag.Errorf(item.Span(), "unexpected dictionary item")
		}
	}
	return nil
}

// compileArgs builds the arguments of a call into a fresh register. The
// span of the arguments value is the span of the whole call.
func (c *Compiler) compileArgs(span ast.Span, args []ast.Arg) (bytecode.Readable, error) {
	r := c.temp()
	c.emit(span, bytecode.Instruction{Op: op.Args, Index: uint32(len(args)), Out: bytecode.ToReg(r)})
	for _, arg := range args {
		switch a := arg.(type) {
		case *ast.Named:
			v, err := c.compileReadable(a.Value)
			if err != nil {
				return bytecode.Readable{}, err
			}
			name := bytecode.Str(int(c.str(a.Name.Name)))
			c.emit(a.Loc, bytecode.Instruction{Op: op.InsertArg, A: name, B: v, Out: bytecode.ToReg(r)})
		case *ast.Spread:
			v, err := c.compileReadable(a.X)
			if err != nil {
				return bytecode.Readable{}, err
			}
			c.emit(a.Loc, bytecode.Instruction{Op: op.SpreadArg, A: v, Out: bytecode.ToReg(r)})
		case ast.Expr:
			v, err := c.compileReadable(a)
			if err != nil {
				return bytecode.Readable{}, err
			}
			c.emit(a.Span(), bytecode.Instruction{Op: op.PushArg, A: v, Out: bytecode.ToReg(r)})
		default:
			return bytecode.Readable{}, diag.Errorf(arg.Span(), "unexpected argument")
		}
	}
	return bytecode.Reg(r), nil
}

func (c *Compiler) compileField(x *ast.FieldAccess, out bytecode.Writable) error {
	if v, ok := c.constValue(x); ok {
		c.copy(x.Loc, c.current.addConst(v), out)
		return nil
	}
	target, err := c.compileReadable(x.Target)
	if err != nil {
		return err
	}
	if out.Kind == bytecode.WriteDiscard {
		out = bytecode.ToReg(c.temp())
	}
	c.emit(x.Field.Loc, bytecode.Instruction{
		Op:    op.Field,
		A:     target,
		Index: c.str(x.Field.Name),
		Out:   out,
	})
	return nil
}

func (c *Compiler) compileCall(x *ast.FuncCall, out bytecode.Writable) error {
	field, isMethod := x.Callee.(*ast.FieldAccess)
	if !isMethod {
		callee, err := c.compileReadable(x.Callee)
		if err != nil {
			return err
		}
		return c.emitCall(x, callee, out)
	}

	// Members of modules, types and functions known at compile time are
	// called directly.
	if v, ok := c.constValue(x.Callee); ok {
		return c.emitCall(x, c.current.addConst(v), out)
	}

	name := field.Field.Name
	if object.IsMutating(name) {
		v, ok := c.constValue(field.Target)
		if _, scoped := v.(object.Scoped); !ok || !scoped {
			return c.compileMutatingCall(x, field, out)
		}
	}
	target, err := c.compileReadable(field.Target)
	if err != nil {
		return err
	}
	args, err := c.compileArgs(x.Loc, x.Args)
	if err != nil {
		return err
	}
	c.emit(x.Loc, bytecode.Instruction{
		Op:    op.CallMethod,
		A:     target,
		Index: c.str(name),
		B:     args,
		Out:   out,
	})
	return nil
}

// compileMutatingCall calls a method that updates its receiver in place,
// which requires the receiver to be a place.
func (c *Compiler) compileMutatingCall(x *ast.FuncCall, field *ast.FieldAccess, out bytecode.Writable) error {
	if !isPlace(field.Target) {
		return diag.Errorf(field.Target.Span(), "cannot mutate a temporary value")
	}
	args, err := c.compileArgs(x.Loc, x.Args)
	if err != nil {
		return err
	}
	place, err := c.access(field.Target, true)
	if err != nil {
		return err
	}
	c.emit(x.Loc, bytecode.Instruction{
		Op:     op.CallMethodMut,
		Index:  c.str(field.Field.Name),
		Index2: uint32(c.current.addAccess(place)),
		B:      args,
		Out:    out,
	})
	return nil
}

func (c *Compiler) emitCall(x *ast.FuncCall, callee bytecode.Readable, out bytecode.Writable) error {
	args, err := c.compileArgs(x.Loc, x.Args)
	if err != nil {
		return err
	}
	c.emit(x.Loc, bytecode.Instruction{Op: op.Call, A: callee, B: args, Out: out})
	return nil
}
