package compiler

import (
	"github.com/quillscript/quill/ast"
	"github.com/quillscript/quill/bytecode"
	"github.com/quillscript/quill/diag"
	"github.com/quillscript/quill/op"
)

// producesNone reports whether e always evaluates to none, so that its
// value need not be joined into the surrounding output.
func producesNone(e ast.Expr) bool {
	switch x := e.(type) {
	case *ast.LetBinding, *ast.DestructAssign, *ast.ModuleImport,
		*ast.LoopBreak, *ast.LoopContinue, *ast.FuncReturn:
		return true
	case *ast.Binary:
		return x.Op.IsAssignment()
	}
	return false
}

// compileStatements joins the values of a sequence of expressions into
// out. Errors of independent statements are all reported.
func (c *Compiler) compileStatements(x *ast.Code, out bytecode.Writable) error {
	var e errs
	c.copy(x.Loc, bytecode.None(), out)
	for _, expr := range x.Exprs {
		if out.Kind == bytecode.WriteDiscard || producesNone(expr) {
			e.add(c.compile(expr, bytecode.Discard()))
			continue
		}
		r, err := c.compileReadable(expr)
		if err != nil {
			e.add(err)
			continue
		}
		c.emit(expr.Span(), bytecode.Instruction{Op: op.Join, A: r, Out: out})
	}
	return e.err
}

func (c *Compiler) compileBlock(x *ast.Code, out bytecode.Writable) error {
	c.current.pushScope()
	defer c.current.popScope()
	if len(x.Exprs) == 1 && !producesNone(x.Exprs[0]) {
		return c.compile(x.Exprs[0], out)
	}
	return c.compileStatements(x, out)
}

func (c *Compiler) compileConditional(x *ast.Conditional, out bytecode.Writable) error {
	cond, err := c.compileReadable(x.Cond)
	if err != nil {
		return err
	}
	otherwise := c.current.newLabel()
	c.emit(x.Cond.Span(), bytecode.Instruction{Op: op.JumpIfNot, A: cond, Index: uint32(otherwise)})
	if err := c.compile(x.If, out); err != nil {
		return err
	}
	if x.Else == nil && out.Kind == bytecode.WriteDiscard {
		c.current.mark(otherwise)
		return nil
	}
	end := c.current.newLabel()
	c.emit(x.Loc, bytecode.Instruction{Op: op.Jump, Index: uint32(end)})
	c.current.mark(otherwise)
	if x.Else != nil {
		if err := c.compile(x.Else, out); err != nil {
			return err
		}
	} else {
		c.copy(x.Loc, bytecode.None(), out)
	}
	c.current.mark(end)
	return nil
}

// compileWhile emits a While instruction followed by the condition range
// and the body range, whose lengths are patched in once both are known.
func (c *Compiler) compileWhile(x *ast.While, out bytecode.Writable) error {
	at := c.emit(x.Loc, bytecode.Instruction{Op: op.While, Out: out})
	condStart := len(c.current.instructions)

	c.current.loopDepth++
	defer func() { c.current.loopDepth-- }()

	cond, err := c.compileReadable(x.Cond)
	if err != nil {
		return err
	}
	bodyStart := len(c.current.instructions)
	c.current.pushScope()
	body, err := c.compileReadable(x.Body)
	c.current.popScope()
	if err != nil {
		return err
	}

	in := &c.current.instructions[at]
	in.A = cond
	in.B = body
	in.Index = uint32(bodyStart - condStart)
	in.Index2 = uint32(len(c.current.instructions) - bodyStart)
	return nil
}

// compileFor emits an Iter instruction followed by the body range. The
// pattern binds each item in a scope of its own.
func (c *Compiler) compileFor(x *ast.For, out bytecode.Writable) error {
	iterable, err := c.compileReadable(x.Iterable)
	if err != nil {
		return err
	}
	at := c.emit(x.Loc, bytecode.Instruction{Op: op.Iter, A: iterable, Out: out})
	bodyStart := len(c.current.instructions)

	c.current.loopDepth++
	c.current.pushScope()
	defer func() {
		c.current.popScope()
		c.current.loopDepth--
	}()

	pattern, err := c.compilePattern(x.Pattern, true)
	if err != nil {
		return err
	}
	body, err := c.compileReadable(x.Body)
	if err != nil {
		return err
	}

	in := &c.current.instructions[at]
	in.B = body
	in.Index = uint32(len(c.current.instructions) - bodyStart)
	in.Index2 = uint32(pattern)
	return nil
}

func (c *Compiler) compileBreak(x *ast.LoopBreak) error {
	if c.current.loopDepth == 0 {
		return diag.Errorf(x.Loc, "cannot break outside of loop")
	}
	c.emit(x.Loc, bytecode.Instruction{Op: op.Break})
	return nil
}

func (c *Compiler) compileContinue(x *ast.LoopContinue) error {
	if c.current.loopDepth == 0 {
		return diag.Errorf(x.Loc, "cannot continue outside of loop")
	}
	c.emit(x.Loc, bytecode.Instruction{Op: op.Continue})
	return nil
}

// compileReturn lowers `return`. Without a value the function returns
// what its body has produced so far.
func (c *Compiler) compileReturn(x *ast.FuncReturn) error {
	if c.current.kind != bytecode.ClosureUnit {
		return diag.Errorf(x.Loc, "cannot return outside of function")
	}
	if x.Body == nil {
		c.emit(x.Loc, bytecode.Instruction{Op: op.Return})
		return nil
	}
	v, err := c.compileReadable(x.Body)
	if err != nil {
		return err
	}
	c.emit(x.Loc, bytecode.Instruction{Op: op.Return, A: v, Index: 1})
	return nil
}
