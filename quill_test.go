package quill

import (
	"bytes"
	"context"
	"testing"

	"github.com/quillscript/quill/ast"
	"github.com/quillscript/quill/diag"
	"github.com/quillscript/quill/importer"
	"github.com/quillscript/quill/internal/build"
	"github.com/quillscript/quill/object"
	"github.com/quillscript/quill/vm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func addFile(w *importer.MemoryWorld, path string, fill func(b *build.B) []ast.Expr) ast.FileID {
	b := build.New(path)
	src := b.Source(fill(b)...)
	w.AddSource(src)
	return src.ID()
}

func TestEval(t *testing.T) {
	w := importer.NewMemoryWorld()
	addFile(w, "lib/a.ql", func(b *build.B) []ast.Expr {
		return []ast.Expr{
			b.LetFunc("shout", build.Params(b.Ident("s")), b.Call(b.Ident("upper"), b.Ident("s"))),
		}
	})
	main := addFile(w, "main.ql", func(b *build.B) []ast.Expr {
		return []ast.Expr{
			b.Import(b.Str("lib/a.ql"), "", b.Items(b.Item("shout", ""))),
			b.Call(b.Ident("shout"), b.Str("hi")),
		}
	})
	m, err := New(w).Eval(context.Background(), main)
	require.Nil(t, err)
	require.Equal(t, "main", m.Name())
	require.Equal(t, object.Str("HI"), m.Content())
}

func TestEvalMissingFile(t *testing.T) {
	_, err := New(importer.NewMemoryWorld()).Eval(context.Background(), ast.NewFileID("nope.ql"))
	require.ErrorIs(t, err, importer.ErrNotFound)
	require.Contains(t, err.Error(), "cannot load /nope.ql")
}

func TestEvalReportsDiagnostics(t *testing.T) {
	w := importer.NewMemoryWorld()
	main := addFile(w, "main.ql", func(b *build.B) []ast.Expr {
		return []ast.Expr{b.Ident("missing"), b.Break()}
	})
	_, err := New(w).Eval(context.Background(), main)
	list := diag.List(err)
	require.Len(t, list, 2)
	require.Equal(t, "unknown variable: missing", list[0].Message)
	require.Equal(t, "cannot break outside of loop", list[1].Message)
}

func TestWithGlobals(t *testing.T) {
	w := importer.NewMemoryWorld()
	main := addFile(w, "main.ql", func(b *build.B) []ast.Expr {
		return []ast.Expr{b.Bin(b.Ident("answer"), ast.Add, b.Call(b.Ident("len"), b.Str("x")))}
	})
	e := New(w, WithGlobals(map[string]object.Value{"answer": object.Int(41)}))
	m, err := e.Eval(context.Background(), main)
	require.Nil(t, err)
	require.Equal(t, object.Int(42), m.Content())

	// A custom library replaces the standard one.
	_, err = New(w, WithLibrary(object.NewScope())).Eval(context.Background(), main)
	require.NotNil(t, err)
}

func TestEvalMany(t *testing.T) {
	w := importer.NewMemoryWorld()
	var ids []ast.FileID
	for i, name := range []string{"a.ql", "b.ql", "c.ql"} {
		i := i
		ids = append(ids, addFile(w, name, func(b *build.B) []ast.Expr {
			return []ast.Expr{b.Bin(b.Int(int64(i)), ast.Mul, b.Int(10))}
		}))
	}
	modules, err := New(w).EvalMany(context.Background(), ids)
	require.Nil(t, err)
	require.Len(t, modules, 3)
	for i, m := range modules {
		require.Equal(t, object.Int(int64(i*10)), m.Content())
	}

	ids = append(ids, ast.NewFileID("missing.ql"))
	_, err = New(w).EvalMany(context.Background(), ids)
	require.ErrorIs(t, err, importer.ErrNotFound)
}

func TestClosureDedup(t *testing.T) {
	w := importer.NewMemoryWorld()
	main := addFile(w, "main.ql", func(b *build.B) []ast.Expr {
		return []ast.Expr{b.LetFunc("f", build.Params(b.Ident("x")), b.Ident("x"))}
	})
	exported := func(e *Engine) object.Value {
		m, err := e.Eval(context.Background(), main)
		require.Nil(t, err)
		v, ok := m.Scope().Get("f")
		require.True(t, ok)
		return v
	}

	e := New(w)
	require.Same(t, exported(e), exported(e))
	require.Equal(t, 1, e.Closures().Hits())

	e = New(w, WithoutClosureDedup())
	require.Nil(t, e.Closures())
	require.NotSame(t, exported(e), exported(e))
}

func TestCall(t *testing.T) {
	w := importer.NewMemoryWorld()
	main := addFile(w, "main.ql", func(b *build.B) []ast.Expr {
		return []ast.Expr{b.LetFunc("add", build.Params(b.Ident("a"), b.Ident("b")), b.Bin(b.Ident("a"), ast.Add, b.Ident("b")))}
	})
	e := New(w)
	m, err := e.Eval(context.Background(), main)
	require.Nil(t, err)
	add, _ := m.Scope().Get("add")
	v, err := e.Call(context.Background(), add, object.Int(2), object.Int(3))
	require.Nil(t, err)
	require.Equal(t, object.Int(5), v)
}

func TestMaxCallDepth(t *testing.T) {
	w := importer.NewMemoryWorld()
	main := addFile(w, "main.ql", func(b *build.B) []ast.Expr {
		return []ast.Expr{
			b.LetFunc("f", build.Params(b.Ident("n")), b.Call(b.Ident("f"), b.Bin(b.Ident("n"), ast.Add, b.Int(1)))),
			b.Call(b.Ident("f"), b.Int(0)),
		}
	})
	_, err := New(w, WithMaxCallDepth(8)).Eval(context.Background(), main)
	d := diag.List(err)[0]
	require.Equal(t, "maximum function call depth exceeded", d.Message)
}

func TestPanicRecovery(t *testing.T) {
	w := importer.NewMemoryWorld()
	main := addFile(w, "main.ql", func(b *build.B) []ast.Expr {
		return []ast.Expr{b.Call(b.Ident("boom"))}
	})
	boom := object.NewNative("boom", func(ctx context.Context, args *object.Args) (object.Value, error) {
		panic("kaboom")
	})
	_, err := New(w, WithGlobal("boom", boom)).Eval(context.Background(), main)
	require.EqualError(t, err, "internal error: kaboom")
}

func TestLogging(t *testing.T) {
	w := importer.NewMemoryWorld()
	main := addFile(w, "main.ql", func(b *build.B) []ast.Expr {
		return []ast.Expr{b.Int(1)}
	})
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	_, err := New(w, WithLogger(logger)).Eval(context.Background(), main)
	require.Nil(t, err)
	out := buf.String()
	require.Contains(t, out, `"message":"evaluation started"`)
	require.Contains(t, out, `"message":"evaluation finished"`)
	require.Contains(t, out, `"file":"/main.ql"`)
	require.Contains(t, out, `"run":"`)
}

type haltingObserver struct {
	vm.NoOpObserver
	calls int
}

func (o *haltingObserver) Config() vm.ObserverConfig { return vm.NewObserverConfig(vm.StepNone) }

func (o *haltingObserver) OnCall(vm.CallEvent) bool {
	o.calls++
	return false
}

func TestWithObserver(t *testing.T) {
	w := importer.NewMemoryWorld()
	main := addFile(w, "main.ql", func(b *build.B) []ast.Expr {
		return []ast.Expr{
			b.LetFunc("f", nil, b.Int(1)),
			b.Call(b.Ident("f")),
		}
	})
	obs := &haltingObserver{}
	_, err := New(w, WithObserver(obs)).Eval(context.Background(), main)
	require.Equal(t, 1, obs.calls)
	require.Equal(t, "execution halted by observer", diag.List(err)[0].Message)
}
