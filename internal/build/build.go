// Package build constructs syntax trees in tests. Every node it creates
// gets a distinct span in the builder's file.
package build

import (
	"strings"

	"github.com/quillscript/quill/ast"
)

// B builds nodes for one file.
type B struct {
	file ast.FileID
	pos  int
}

// New returns a builder for the file at path.
func New(path string) *B {
	return &B{file: ast.NewFileID(path)}
}

// File returns the id of the builder's file.
func (b *B) File() ast.FileID { return b.file }

// Span returns a fresh span.
func (b *B) Span() ast.Span {
	b.pos++
	return ast.Span{File: b.file, Start: b.pos * 2, End: b.pos*2 + 1}
}

// Source wraps exprs into a source file.
func (b *B) Source(exprs ...ast.Expr) *ast.Source {
	root := b.Code(exprs...)
	return ast.NewSource(b.file, root.String(), root)
}

func (b *B) Ident(name string) *ast.Ident { return &ast.Ident{Loc: b.Span(), Name: name} }
func (b *B) None() *ast.None              { return &ast.None{Loc: b.Span()} }
func (b *B) Auto() *ast.Auto              { return &ast.Auto{Loc: b.Span()} }
func (b *B) Bool(v bool) *ast.Bool        { return &ast.Bool{Loc: b.Span(), Value: v} }
func (b *B) Int(v int64) *ast.Int         { return &ast.Int{Loc: b.Span(), Value: v} }
func (b *B) Float(v float64) *ast.Float   { return &ast.Float{Loc: b.Span(), Value: v} }
func (b *B) Str(v string) *ast.Str        { return &ast.Str{Loc: b.Span(), Value: v} }
func (b *B) Paren(x ast.Expr) *ast.Paren  { return &ast.Paren{Loc: b.Span(), X: x} }
func (b *B) Placeholder() *ast.Placeholder {
	return &ast.Placeholder{Loc: b.Span()}
}

func (b *B) Array(items ...ast.ArrayItem) *ast.Array {
	return &ast.Array{Loc: b.Span(), Items: items}
}

func (b *B) Dict(items ...ast.DictItem) *ast.Dict {
	return &ast.Dict{Loc: b.Span(), Items: items}
}

// Named is a dictionary entry, a named argument or a named parameter.
func (b *B) Named(name string, v ast.Expr) *ast.Named {
	return &ast.Named{Loc: b.Span(), Name: b.Ident(name), Value: v}
}

func (b *B) Keyed(k, v ast.Expr) *ast.Keyed {
	return &ast.Keyed{Loc: b.Span(), Key: k, Value: v}
}

// Spread is `..x`, or `..` when x is nil.
func (b *B) Spread(x ast.Expr) *ast.Spread {
	return &ast.Spread{Loc: b.Span(), X: x}
}

func (b *B) Bin(l ast.Expr, op ast.BinOp, r ast.Expr) *ast.Binary {
	return &ast.Binary{Loc: b.Span(), Op: op, Left: l, Right: r}
}

func (b *B) Assign(l, r ast.Expr) *ast.Binary { return b.Bin(l, ast.Assign, r) }

func (b *B) Un(op ast.UnOp, x ast.Expr) *ast.Unary {
	return &ast.Unary{Loc: b.Span(), Op: op, X: x}
}

func (b *B) Field(target ast.Expr, name string) *ast.FieldAccess {
	return &ast.FieldAccess{Loc: b.Span(), Target: target, Field: b.Ident(name)}
}

func (b *B) Call(callee ast.Expr, args ...ast.Arg) *ast.FuncCall {
	return &ast.FuncCall{Loc: b.Span(), Callee: callee, Args: args, ArgsLoc: b.Span()}
}

// Method is `target.name(args...)`.
func (b *B) Method(target ast.Expr, name string, args ...ast.Arg) *ast.FuncCall {
	return b.Call(b.Field(target, name), args...)
}

// Params is a convenience for parameter lists.
func Params(ps ...ast.Param) []ast.Param { return ps }

func (b *B) Closure(params []ast.Param, body ast.Expr) *ast.Closure {
	return &ast.Closure{Loc: b.Span(), Params: params, Body: body}
}

func (b *B) Let(p ast.Pattern, init ast.Expr) *ast.LetBinding {
	return &ast.LetBinding{Loc: b.Span(), Pattern: p, Init: init}
}

// LetFunc is `let name(params) = body`.
func (b *B) LetFunc(name string, params []ast.Param, body ast.Expr) *ast.LetBinding {
	fn := b.Closure(params, body)
	fn.Name = b.Ident(name)
	return b.Let(b.Ident(name), fn)
}

func (b *B) Code(exprs ...ast.Expr) *ast.Code {
	return &ast.Code{Loc: b.Span(), Exprs: exprs}
}

// If builds a conditional; otherwise may be nil.
func (b *B) If(cond, then, otherwise ast.Expr) *ast.Conditional {
	return &ast.Conditional{Loc: b.Span(), Cond: cond, If: then, Else: otherwise}
}

func (b *B) While(cond, body ast.Expr) *ast.While {
	return &ast.While{Loc: b.Span(), Cond: cond, Body: body}
}

func (b *B) For(p ast.Pattern, iterable, body ast.Expr) *ast.For {
	return &ast.For{Loc: b.Span(), Pattern: p, Iterable: iterable, Body: body}
}

func (b *B) Break() *ast.LoopBreak       { return &ast.LoopBreak{Loc: b.Span()} }
func (b *B) Continue() *ast.LoopContinue { return &ast.LoopContinue{Loc: b.Span()} }

// Return is `return body`, or a bare `return` when body is nil.
func (b *B) Return(body ast.Expr) *ast.FuncReturn {
	return &ast.FuncReturn{Loc: b.Span(), Body: body}
}

func (b *B) Destructuring(items ...ast.DestructuringItem) *ast.Destructuring {
	return &ast.Destructuring{Loc: b.Span(), Items: items}
}

// DNamed is the `name: pattern` destructuring item.
func (b *B) DNamed(name string, p ast.Pattern) *ast.DestructNamed {
	return &ast.DestructNamed{Loc: b.Span(), Name: b.Ident(name), Pattern: p}
}

func (b *B) DestructAssign(p *ast.Destructuring, v ast.Expr) *ast.DestructAssign {
	return &ast.DestructAssign{Loc: b.Span(), Pattern: p, Value: v}
}

// Import builds `import source [as name] [: imports]`. An empty name means
// no renaming.
func (b *B) Import(source ast.Expr, name string, imports ast.Imports) *ast.ModuleImport {
	x := &ast.ModuleImport{Loc: b.Span(), Source: source, Imports: imports}
	if name != "" {
		x.NewName = b.Ident(name)
	}
	return x
}

func (b *B) Wildcard() *ast.Wildcard { return &ast.Wildcard{Loc: b.Span()} }

func (b *B) Items(items ...*ast.ImportItem) *ast.ImportItems {
	return &ast.ImportItems{Loc: b.Span(), Items: items}
}

// Item is an import item with a dotted path and an optional new name.
func (b *B) Item(path, as string) *ast.ImportItem {
	item := &ast.ImportItem{Loc: b.Span()}
	for _, seg := range strings.Split(path, ".") {
		item.Path = append(item.Path, b.Ident(seg))
	}
	if as != "" {
		item.NewName = b.Ident(as)
	}
	return item
}

func (b *B) Include(source ast.Expr) *ast.ModuleInclude {
	return &ast.ModuleInclude{Loc: b.Span(), Source: source}
}
