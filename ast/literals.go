package ast

import (
	"strconv"
	"strings"
)

// None is the `none` literal.
type None struct {
	Loc Span
}

func (x *None) exprNode()      {}
func (x *None) Span() Span     { return x.Loc }
func (x *None) String() string { return "none" }

// Auto is the `auto` literal.
type Auto struct {
	Loc Span
}

func (x *Auto) exprNode()      {}
func (x *Auto) Span() Span     { return x.Loc }
func (x *Auto) String() string { return "auto" }

// Bool is a boolean literal.
type Bool struct {
	Loc   Span
	Value bool
}

func (x *Bool) exprNode()      {}
func (x *Bool) Span() Span     { return x.Loc }
func (x *Bool) String() string { return strconv.FormatBool(x.Value) }

// Int is an integer literal.
type Int struct {
	Loc   Span
	Value int64
}

func (x *Int) exprNode()      {}
func (x *Int) Span() Span     { return x.Loc }
func (x *Int) String() string { return strconv.FormatInt(x.Value, 10) }

// Float is a floating point literal.
type Float struct {
	Loc   Span
	Value float64
}

func (x *Float) exprNode()      {}
func (x *Float) Span() Span     { return x.Loc }
func (x *Float) String() string { return strconv.FormatFloat(x.Value, 'g', -1, 64) }

// Str is a string literal.
type Str struct {
	Loc   Span
	Value string
}

func (x *Str) exprNode()      {}
func (x *Str) Span() Span     { return x.Loc }
func (x *Str) String() string { return strconv.Quote(x.Value) }

// Array is an array literal: (1, 2, ..rest).
type Array struct {
	Loc   Span
	Items []ArrayItem
}

func (x *Array) exprNode()  {}
func (x *Array) Span() Span { return x.Loc }

func (x *Array) String() string {
	parts := make([]string, 0, len(x.Items))
	for _, item := range x.Items {
		parts = append(parts, item.String())
	}
	if len(parts) == 1 {
		return "(" + parts[0] + ",)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Dict is a dictionary literal: (a: 1, "b": 2, ..rest).
type Dict struct {
	Loc   Span
	Items []DictItem
}

func (x *Dict) exprNode()  {}
func (x *Dict) Span() Span { return x.Loc }

func (x *Dict) String() string {
	if len(x.Items) == 0 {
		return "(:)"
	}
	parts := make([]string, 0, len(x.Items))
	for _, item := range x.Items {
		parts = append(parts, item.String())
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Named is a name-value pair: a dictionary entry, a named argument, or a
// named parameter with its default.
type Named struct {
	Loc   Span
	Name  *Ident
	Value Expr
}

func (x *Named) Span() Span     { return x.Loc }
func (x *Named) String() string { return x.Name.Name + ": " + x.Value.String() }

// Keyed is a dictionary entry with a computed key: ("a b": 1).
type Keyed struct {
	Loc   Span
	Key   Expr
	Value Expr
}

func (x *Keyed) Span() Span     { return x.Loc }
func (x *Keyed) String() string { return x.Key.String() + ": " + x.Value.String() }

// Spread is `..expr` in literals and calls, a `..sink` parameter, or a
// spread item in a destructuring pattern. X is nil for an anonymous
// spread.
type Spread struct {
	Loc Span
	X   Expr
}

func (x *Spread) Span() Span { return x.Loc }

func (x *Spread) String() string {
	if x.X == nil {
		return ".."
	}
	return ".." + x.X.String()
}
