package ast

import (
	"strings"
)

// Ident is an expression node that refers to a variable by name.
type Ident struct {
	Loc  Span
	Name string
}

func (x *Ident) exprNode()      {}
func (x *Ident) Span() Span     { return x.Loc }
func (x *Ident) String() string { return x.Name }

// Paren is a parenthesized expression.
type Paren struct {
	Loc Span
	X   Expr
}

func (x *Paren) exprNode()      {}
func (x *Paren) Span() Span     { return x.Loc }
func (x *Paren) String() string { return "(" + x.X.String() + ")" }

// UnOp is a unary operator.
type UnOp uint8

const (
	Pos UnOp = iota + 1
	Neg
	Not
)

func (op UnOp) String() string {
	switch op {
	case Pos:
		return "+"
	case Neg:
		return "-"
	case Not:
		return "not"
	default:
		return "?"
	}
}

// Unary is an operator expression where the operator precedes the operand.
type Unary struct {
	Loc Span
	Op  UnOp
	X   Expr
}

func (x *Unary) exprNode()  {}
func (x *Unary) Span() Span { return x.Loc }

func (x *Unary) String() string {
	if x.Op == Not {
		return "not " + x.X.String()
	}
	return x.Op.String() + x.X.String()
}

// BinOp is a binary operator, including the assignment operators.
type BinOp uint8

const (
	Add BinOp = iota + 1
	Sub
	Mul
	Div
	And
	Or
	Eq
	Neq
	Lt
	Leq
	Gt
	Geq
	In
	NotIn
	Assign
	AddAssign
	SubAssign
	MulAssign
	DivAssign
)

var binOpNames = map[BinOp]string{
	Add:       "+",
	Sub:       "-",
	Mul:       "*",
	Div:       "/",
	And:       "and",
	Or:        "or",
	Eq:        "==",
	Neq:       "!=",
	Lt:        "<",
	Leq:       "<=",
	Gt:        ">",
	Geq:       ">=",
	In:        "in",
	NotIn:     "not in",
	Assign:    "=",
	AddAssign: "+=",
	SubAssign: "-=",
	MulAssign: "*=",
	DivAssign: "/=",
}

func (op BinOp) String() string {
	if name, ok := binOpNames[op]; ok {
		return name
	}
	return "?"
}

// IsAssignment reports whether the operator writes to its left operand.
func (op BinOp) IsAssignment() bool {
	return op >= Assign && op <= DivAssign
}

// Binary is an operator expression with two operands. Assignments are
// binary expressions whose operator is an assignment operator.
type Binary struct {
	Loc   Span
	Op    BinOp
	Left  Expr
	Right Expr
}

func (x *Binary) exprNode()  {}
func (x *Binary) Span() Span { return x.Loc }

func (x *Binary) String() string {
	return x.Left.String() + " " + x.Op.String() + " " + x.Right.String()
}

// FieldAccess is `target.field`.
type FieldAccess struct {
	Loc    Span
	Target Expr
	Field  *Ident
}

func (x *FieldAccess) exprNode()      {}
func (x *FieldAccess) Span() Span     { return x.Loc }
func (x *FieldAccess) String() string { return x.Target.String() + "." + x.Field.Name }

// FuncCall is `callee(args...)`. A call whose callee is a FieldAccess is a
// method call.
type FuncCall struct {
	Loc    Span
	Callee Expr
	Args   []Arg
	// ArgsLoc spans the parenthesized argument list.
	ArgsLoc Span
}

func (x *FuncCall) exprNode()  {}
func (x *FuncCall) Span() Span { return x.Loc }

func (x *FuncCall) String() string {
	parts := make([]string, 0, len(x.Args))
	for _, arg := range x.Args {
		parts = append(parts, arg.String())
	}
	return x.Callee.String() + "(" + strings.Join(parts, ", ") + ")"
}

// Closure is a function literal. Name is set for `let f(x) = ...`.
type Closure struct {
	Loc    Span
	Name   *Ident
	Params []Param
	Body   Expr
}

func (x *Closure) exprNode()  {}
func (x *Closure) Span() Span { return x.Loc }

func (x *Closure) String() string {
	parts := make([]string, 0, len(x.Params))
	for _, p := range x.Params {
		parts = append(parts, p.String())
	}
	return "(" + strings.Join(parts, ", ") + ") => " + x.Body.String()
}

// Code is a sequence of expressions: a `{ ... }` block or the top level of
// a module.
type Code struct {
	Loc   Span
	Exprs []Expr
}

func (x *Code) exprNode()  {}
func (x *Code) Span() Span { return x.Loc }

func (x *Code) String() string {
	parts := make([]string, 0, len(x.Exprs))
	for _, e := range x.Exprs {
		parts = append(parts, e.String())
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}

// Conditional is `if cond { ... } else { ... }`. Else may be nil.
type Conditional struct {
	Loc  Span
	Cond Expr
	If   Expr
	Else Expr
}

func (x *Conditional) exprNode()  {}
func (x *Conditional) Span() Span { return x.Loc }

func (x *Conditional) String() string {
	out := "if " + x.Cond.String() + " " + x.If.String()
	if x.Else != nil {
		out += " else " + x.Else.String()
	}
	return out
}

// While is `while cond { ... }`.
type While struct {
	Loc  Span
	Cond Expr
	Body Expr
}

func (x *While) exprNode()      {}
func (x *While) Span() Span     { return x.Loc }
func (x *While) String() string { return "while " + x.Cond.String() + " " + x.Body.String() }

// For is `for pattern in iterable { ... }`.
type For struct {
	Loc      Span
	Pattern  Pattern
	Iterable Expr
	Body     Expr
}

func (x *For) exprNode()  {}
func (x *For) Span() Span { return x.Loc }

func (x *For) String() string {
	return "for " + x.Pattern.String() + " in " + x.Iterable.String() + " " + x.Body.String()
}

// LoopBreak is `break`.
type LoopBreak struct {
	Loc Span
}

func (x *LoopBreak) exprNode()      {}
func (x *LoopBreak) Span() Span     { return x.Loc }
func (x *LoopBreak) String() string { return "break" }

// LoopContinue is `continue`.
type LoopContinue struct {
	Loc Span
}

func (x *LoopContinue) exprNode()      {}
func (x *LoopContinue) Span() Span     { return x.Loc }
func (x *LoopContinue) String() string { return "continue" }

// FuncReturn is `return` with an optional value.
type FuncReturn struct {
	Loc  Span
	Body Expr
}

func (x *FuncReturn) exprNode()  {}
func (x *FuncReturn) Span() Span { return x.Loc }

func (x *FuncReturn) String() string {
	if x.Body == nil {
		return "return"
	}
	return "return " + x.Body.String()
}
