package compiler

import (
	"github.com/quillscript/quill/ast"
	"github.com/quillscript/quill/bytecode"
	"github.com/quillscript/quill/diag"
	"github.com/quillscript/quill/op"
)

var unaryOps = map[ast.UnOp]op.Code{
	ast.Pos: op.Pos,
	ast.Neg: op.Neg,
	ast.Not: op.Not,
}

var binaryOps = map[ast.BinOp]op.Code{
	ast.Add:   op.Add,
	ast.Sub:   op.Sub,
	ast.Mul:   op.Mul,
	ast.Div:   op.Div,
	ast.Eq:    op.Eq,
	ast.Neq:   op.Neq,
	ast.Lt:    op.Lt,
	ast.Leq:   op.Leq,
	ast.Gt:    op.Gt,
	ast.Geq:   op.Geq,
	ast.In:    op.In,
	ast.NotIn: op.NotIn,
}

var assignOps = map[ast.BinOp]op.Code{
	ast.Assign:    op.Assign,
	ast.AddAssign: op.AddAssign,
	ast.SubAssign: op.SubAssign,
	ast.MulAssign: op.MulAssign,
	ast.DivAssign: op.DivAssign,
}

func (c *Compiler) compileUnary(x *ast.Unary, out bytecode.Writable) error {
	code, ok := unaryOps[x.Op]
	if !ok {
		return diag.Errorf(x.Loc, "invalid unary operator %s", x.Op)
	}
	v, err := c.compileReadable(x.X)
	if err != nil {
		return err
	}
	c.emit(x.Loc, bytecode.Instruction{Op: code, A: v, Out: out})
	return nil
}

func (c *Compiler) compileBinary(x *ast.Binary, out bytecode.Writable) error {
	switch {
	case x.Op.IsAssignment():
		if err := c.compileAssign(x); err != nil {
			return err
		}
		c.copy(x.Loc, bytecode.None(), out)
		return nil
	case x.Op == ast.And || x.Op == ast.Or:
		return c.compileShortCircuit(x, out)
	}
	code, ok := binaryOps[x.Op]
	if !ok {
		return diag.Errorf(x.Loc, "invalid binary operator %s", x.Op)
	}
	left, err := c.compileReadable(x.Left)
	if err != nil {
		return err
	}
	right, err := c.compileReadable(x.Right)
	if err != nil {
		return err
	}
	c.emit(x.Loc, bytecode.Instruction{Op: code, A: left, B: right, Out: out})
	return nil
}

// compileShortCircuit lowers `and` and `or`. The right operand is skipped
// by a jump when the left one decides the result; Select then picks the
// result without reading the skipped operand.
func (c *Compiler) compileShortCircuit(x *ast.Binary, out bytecode.Writable) error {
	left, err := c.compileReadable(x.Left)
	if err != nil {
		return err
	}
	jump, mode := op.JumpIfNot, uint32(op.SelectAnd)
	if x.Op == ast.Or {
		jump, mode = op.JumpIf, op.SelectOr
	}
	end := c.current.newLabel()
	c.emit(x.Left.Span(), bytecode.Instruction{Op: jump, A: left, Index: uint32(end)})
	right, err := c.compileReadable(x.Right)
	if err != nil {
		return err
	}
	c.current.mark(end)
	c.emit(x.Loc, bytecode.Instruction{Op: op.Select, A: left, B: right, Out: out, Index: mode})
	return nil
}

// compileAssign lowers `=` and the compound assignments into a single
// instruction writing through the target's access.
func (c *Compiler) compileAssign(x *ast.Binary) error {
	value, err := c.compileReadable(x.Right)
	if err != nil {
		return err
	}
	place, err := c.access(x.Left, true)
	if err != nil {
		return err
	}
	c.emit(x.Loc, bytecode.Instruction{Op: assignOps[x.Op], A: value, Out: c.writable(place)})
	return nil
}
