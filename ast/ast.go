// Package ast defines the syntax tree consumed by the quill compiler.
//
// Trees are produced by an external parser. Every node carries the span of
// source text it was parsed from; the compiler attaches these spans to the
// instructions it emits so that diagnostics point back at the source.
package ast

// Node represents a portion of the syntax tree.
type Node interface {
	// Span returns the source range of the node.
	Span() Span

	// String returns a human friendly representation of the node. This is
	// similar to the original source code, but not necessarily identical.
	String() string
}

// Expr represents an expression node. In code mode every statement is an
// expression that evaluates to a value, possibly none.
type Expr interface {
	Node
	exprNode()
}

// Pattern is the left-hand side of a binding or destructuring assignment.
// A pattern is one of:
//   - any Expr, a "normal" pattern (an identifier when declaring, any
//     assignable expression when assigning)
//   - *Placeholder
//   - *Destructuring
type Pattern interface {
	Node
}

// Param is a closure parameter: a positional Pattern, a *Named parameter
// with a default value, or a *Spread argument sink.
type Param interface {
	Node
}

// Arg is a call argument: a positional Expr, a *Named argument, or a
// *Spread.
type Arg interface {
	Node
}

// ArrayItem is an array literal item: an Expr or a *Spread.
type ArrayItem interface {
	Node
}

// DictItem is a dictionary literal item: *Named, *Keyed or *Spread.
type DictItem interface {
	Node
}

// DestructuringItem is an item of a destructuring pattern: a positional
// Pattern, a *DestructNamed item, or a *Spread.
type DestructuringItem interface {
	Node
}
