package ast

import (
	"strings"
)

// LetBinding is `let pattern = init`. Init is nil for `let x`, which binds
// none. The closure form `let f(x) = body` is a LetBinding whose pattern is
// the identifier f and whose init is a *Closure named f.
type LetBinding struct {
	Loc     Span
	Pattern Pattern
	Init    Expr
}

func (x *LetBinding) exprNode()  {}
func (x *LetBinding) Span() Span { return x.Loc }

func (x *LetBinding) String() string {
	if x.Init == nil {
		return "let " + x.Pattern.String()
	}
	return "let " + x.Pattern.String() + " = " + x.Init.String()
}

// DestructAssign is `(a, b) = value`.
type DestructAssign struct {
	Loc     Span
	Pattern *Destructuring
	Value   Expr
}

func (x *DestructAssign) exprNode()      {}
func (x *DestructAssign) Span() Span     { return x.Loc }
func (x *DestructAssign) String() string { return x.Pattern.String() + " = " + x.Value.String() }

// Placeholder is the `_` pattern.
type Placeholder struct {
	Loc Span
}

func (x *Placeholder) Span() Span     { return x.Loc }
func (x *Placeholder) String() string { return "_" }

// Destructuring is a parenthesized destructuring pattern. Whether it
// destructures an array or a dictionary depends on the value it is applied
// to.
type Destructuring struct {
	Loc   Span
	Items []DestructuringItem
}

func (x *Destructuring) Span() Span { return x.Loc }

func (x *Destructuring) String() string {
	parts := make([]string, 0, len(x.Items))
	for _, item := range x.Items {
		parts = append(parts, item.String())
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// DestructNamed binds the dictionary key Name to Pattern.
type DestructNamed struct {
	Loc     Span
	Name    *Ident
	Pattern Pattern
}

func (x *DestructNamed) Span() Span     { return x.Loc }
func (x *DestructNamed) String() string { return x.Name.Name + ": " + x.Pattern.String() }

// Imports lists what a module import binds: nil for the module itself,
// *Wildcard for everything, or *ImportItems.
type Imports interface {
	Node
}

// Wildcard is `import "x": *`.
type Wildcard struct {
	Loc Span
}

func (x *Wildcard) Span() Span     { return x.Loc }
func (x *Wildcard) String() string { return "*" }

// ImportItems is `import "x": a, b.c as d`.
type ImportItems struct {
	Loc   Span
	Items []*ImportItem
}

func (x *ImportItems) Span() Span { return x.Loc }

func (x *ImportItems) String() string {
	parts := make([]string, 0, len(x.Items))
	for _, item := range x.Items {
		parts = append(parts, item.String())
	}
	return strings.Join(parts, ", ")
}

// ImportItem is a (possibly nested) path into the imported module with an
// optional new name.
type ImportItem struct {
	Loc     Span
	Path    []*Ident
	NewName *Ident
}

func (x *ImportItem) Span() Span { return x.Loc }

// BoundName returns the identifier the item is bound to.
func (x *ImportItem) BoundName() *Ident {
	if x.NewName != nil {
		return x.NewName
	}
	return x.Path[len(x.Path)-1]
}

func (x *ImportItem) String() string {
	names := make([]string, 0, len(x.Path))
	for _, p := range x.Path {
		names = append(names, p.Name)
	}
	out := strings.Join(names, ".")
	if x.NewName != nil {
		out += " as " + x.NewName.Name
	}
	return out
}

// ModuleImport is `import source [as name] [: items]`.
type ModuleImport struct {
	Loc     Span
	Source  Expr
	NewName *Ident
	Imports Imports
}

func (x *ModuleImport) exprNode()  {}
func (x *ModuleImport) Span() Span { return x.Loc }

func (x *ModuleImport) String() string {
	out := "import " + x.Source.String()
	if x.NewName != nil {
		out += " as " + x.NewName.Name
	}
	if x.Imports != nil {
		out += ": " + x.Imports.String()
	}
	return out
}

// ModuleInclude is `include source`.
type ModuleInclude struct {
	Loc    Span
	Source Expr
}

func (x *ModuleInclude) exprNode()      {}
func (x *ModuleInclude) Span() Span     { return x.Loc }
func (x *ModuleInclude) String() string { return "include " + x.Source.String() }
