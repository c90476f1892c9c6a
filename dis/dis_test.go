package dis

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/quillscript/quill/ast"
	"github.com/quillscript/quill/bytecode"
	"github.com/quillscript/quill/compiler"
	"github.com/quillscript/quill/internal/build"
	"github.com/quillscript/quill/object"
	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, fill func(b *build.B) []ast.Expr) *bytecode.Unit {
	t.Helper()
	b := build.New("main.ql")
	library := object.NewScope()
	library.Define("effect", object.NewNative("effect", nil))
	unit, err := compiler.Compile(context.Background(), b.Source(fill(b)...), &compiler.Config{Library: library})
	require.Nil(t, err)
	return unit
}

func TestClosureDisassembly(t *testing.T) {
	unit := compile(t, func(b *build.B) []ast.Expr {
		return []ast.Expr{
			b.LetFunc("f", build.Params(b.Ident("x")), b.Bin(b.Ident("x"), ast.Add, b.Int(1))),
			b.Call(b.Ident("f"), b.Int(2)),
		}
	})
	l := Disassemble(unit)
	require.Equal(t, "main", l.Path)
	require.Equal(t, "module", l.Kind)
	require.Len(t, l.Closures, 1)
	require.Equal(t, "main/f", l.Closures[0].Path)
	require.Equal(t, "instantiated", l.Closures[0].Kind)

	var names []string
	for _, instr := range l.Closures[0].Instructions {
		names = append(names, instr.Name)
	}
	require.Contains(t, names, "ADD")

	var buf bytes.Buffer
	require.Nil(t, Fprint(&buf, unit))
	out := buf.String()
	require.True(t, strings.HasPrefix(out, "module main ("), out)
	require.Contains(t, out, "\ninstantiated main/f (")
	require.Contains(t, out, "CALL")
	require.Contains(t, out, "/main.ql:")
	require.NotContains(t, out, "\x1b[")
}

func TestJumpAnnotations(t *testing.T) {
	unit := compile(t, func(b *build.B) []ast.Expr {
		return []ast.Expr{b.Bin(b.Bool(false), ast.And, b.Call(b.Ident("effect")))}
	})
	var buf bytes.Buffer
	require.Nil(t, Fprint(&buf, unit))
	out := buf.String()
	require.Contains(t, out, "JUMP_IF_NOT")
	require.Contains(t, out, "; -> ")
	require.Contains(t, out, "SELECT")
	require.Contains(t, out, "; and")
}

func TestColoredOutput(t *testing.T) {
	unit := compile(t, func(b *build.B) []ast.Expr {
		return []ast.Expr{b.Int(1)}
	})
	var buf bytes.Buffer
	require.Nil(t, Printer{UseColor: true}.Print(&buf, Disassemble(unit)))
	require.Contains(t, buf.String(), "\x1b[")
}
