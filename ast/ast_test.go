package ast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileIDJoin(t *testing.T) {
	id := NewFileID("docs/chapter/intro.ql")
	require.Equal(t, "/docs/chapter/intro.ql", id.Path)
	require.Equal(t, "/docs/chapter/util.ql", id.Join("util.ql").Path)
	require.Equal(t, "/docs/lib.ql", id.Join("../lib.ql").Path)
	require.Equal(t, "/root.ql", id.Join("/root.ql").Path)
	require.Equal(t, "intro", id.Stem())

	pkg := FileID{Package: PackageSpec{"preview", "charts", "0.1.0"}, Path: "/lib.ql"}
	joined := pkg.Join("src/bars.ql")
	require.Equal(t, pkg.Package, joined.Package)
	require.Equal(t, "@preview/charts:0.1.0/src/bars.ql", joined.String())
}

func TestSpanJoin(t *testing.T) {
	file := NewFileID("main.ql")
	a := Span{File: file, Start: 4, End: 8}
	b := Span{File: file, Start: 1, End: 5}
	require.Equal(t, Span{File: file, Start: 1, End: 8}, a.Join(b))
	require.Equal(t, a, a.Join(Detached()))
	require.Equal(t, a, Detached().Join(a))
	require.True(t, Detached().IsDetached())
}

func TestSourceLineCol(t *testing.T) {
	text := "let x = 1\nlet y = x +\n  2"
	src := NewSource(NewFileID("main.ql"), text, nil)

	line, col := src.LineCol(0)
	require.Equal(t, 1, line)
	require.Equal(t, 1, col)

	line, col = src.LineCol(14)
	require.Equal(t, 2, line)
	require.Equal(t, 5, col)

	require.Equal(t, "let y = x +", src.Line(2))
	require.Equal(t, "  2", src.Line(3))
	require.Equal(t, "", src.Line(4))
	require.Equal(t, "y", src.Snippet(Span{File: src.ID(), Start: 14, End: 15}))
}

func TestString(t *testing.T) {
	f := &Ident{Name: "f"}
	n := &Ident{Name: "n"}
	body := &Conditional{
		Cond: &Binary{Op: Leq, Left: n, Right: &Int{Value: 1}},
		If:   &Code{Exprs: []Expr{&Int{Value: 1}}},
		Else: &Code{Exprs: []Expr{&Binary{
			Op:    Mul,
			Left:  n,
			Right: &FuncCall{Callee: f, Args: []Arg{&Binary{Op: Sub, Left: n, Right: &Int{Value: 1}}}},
		}}},
	}
	let := &LetBinding{Pattern: f, Init: &Closure{Name: f, Params: []Param{n}, Body: body}}
	require.Equal(t, "let f = (n) => if n <= 1 { 1 } else { n * f(n - 1) }", let.String())

	pattern := &Destructuring{Items: []DestructuringItem{
		&Ident{Name: "x"},
		&DestructNamed{Name: &Ident{Name: "y"}, Pattern: &Ident{Name: "renamed"}},
		&Spread{X: &Ident{Name: "extra"}},
	}}
	require.Equal(t, "(x, y: renamed, ..extra)", pattern.String())
	require.Equal(t, "(1,)", (&Array{Items: []ArrayItem{&Int{Value: 1}}}).String())
	require.Equal(t, "(:)", (&Dict{}).String())
}
