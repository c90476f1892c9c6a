package compiler

import (
	"context"
	"testing"

	"github.com/quillscript/quill/ast"
	"github.com/quillscript/quill/bytecode"
	"github.com/quillscript/quill/diag"
	"github.com/quillscript/quill/importer"
	"github.com/quillscript/quill/internal/build"
	"github.com/quillscript/quill/object"
	"github.com/quillscript/quill/op"
	"github.com/quillscript/quill/vm"
	"github.com/stretchr/testify/require"
)

type project struct {
	world  *importer.MemoryWorld
	loader *importer.Loader
}

func newProject() *project {
	p := &project{world: importer.NewMemoryWorld()}
	p.loader = importer.NewLoader(p.world, func(ctx context.Context, src *ast.Source) (*object.Module, error) {
		unit, err := Compile(ctx, src, &Config{Importer: p.loader})
		if err != nil {
			return nil, err
		}
		return vm.New(vm.WithImporter(p.loader)).EvalModule(ctx, unit)
	})
	return p
}

func (p *project) add(path string, fill func(b *build.B) []ast.Expr) {
	b := build.New(path)
	p.world.AddSource(b.Source(fill(b)...))
}

// addLib adds a.ql, which exports x = 1 and double(n).
func (p *project) addLib() {
	p.add("a.ql", func(b *build.B) []ast.Expr {
		return []ast.Expr{
			b.Let(b.Ident("x"), b.Int(1)),
			b.LetFunc("double", build.Params(b.Ident("n")), b.Bin(b.Ident("n"), ast.Mul, b.Int(2))),
		}
	})
}

func (p *project) compile(exprs func(b *build.B) []ast.Expr) (*bytecode.Unit, error) {
	b := build.New("main.ql")
	src := b.Source(exprs(b)...)
	ctx := importer.Enter(context.Background(), src.ID())
	return Compile(ctx, src, &Config{Importer: p.loader})
}

func (p *project) run(t *testing.T, exprs func(b *build.B) []ast.Expr) (object.Value, error) {
	t.Helper()
	unit, err := p.compile(exprs)
	if err != nil {
		return nil, err
	}
	ctx := importer.Enter(context.Background(), unit.File())
	m, err := vm.New(vm.WithImporter(p.loader)).EvalModule(ctx, unit)
	if err != nil {
		return nil, err
	}
	return m.Content(), nil
}

func hasOp(unit *bytecode.Unit, code op.Code) bool {
	for i := 0; i < unit.InstructionCount(); i++ {
		if unit.InstructionAt(i).Op == code {
			return true
		}
	}
	return false
}

func TestStaticImport(t *testing.T) {
	p := newProject()
	p.addLib()
	main := func(b *build.B) []ast.Expr {
		return []ast.Expr{
			b.Import(b.Str("a.ql"), "", nil),
			b.Import(b.Str("a.ql"), "", b.Items(b.Item("double", ""), b.Item("x", "y"))),
			b.Bin(b.Call(b.Ident("double"), b.Ident("y")), ast.Add, b.Field(b.Ident("a"), "x")),
		}
	}
	unit, err := p.compile(main)
	require.Nil(t, err)
	require.False(t, hasOp(unit, op.Import))

	v, err := p.run(t, main)
	require.Nil(t, err)
	require.Equal(t, object.Int(3), v)
}

func TestWildcardImport(t *testing.T) {
	p := newProject()
	p.addLib()
	v, err := p.run(t, func(b *build.B) []ast.Expr {
		return []ast.Expr{
			b.Import(b.Str("a.ql"), "", b.Wildcard()),
			b.Call(b.Ident("double"), b.Ident("x")),
		}
	})
	require.Nil(t, err)
	require.Equal(t, object.Int(2), v)
}

func TestImportRenamed(t *testing.T) {
	p := newProject()
	p.addLib()
	v, err := p.run(t, func(b *build.B) []ast.Expr {
		return []ast.Expr{
			b.Import(b.Str("a.ql"), "lib", nil),
			b.Field(b.Ident("lib"), "x"),
		}
	})
	require.Nil(t, err)
	require.Equal(t, object.Int(1), v)
}

func TestNestedImportItem(t *testing.T) {
	p := newProject()
	p.addLib()
	p.add("b.ql", func(b *build.B) []ast.Expr {
		return []ast.Expr{b.Import(b.Str("a.ql"), "", nil)}
	})
	v, err := p.run(t, func(b *build.B) []ast.Expr {
		return []ast.Expr{
			b.Import(b.Str("b.ql"), "", b.Items(b.Item("a.double", "twice"))),
			b.Call(b.Ident("twice"), b.Int(4)),
		}
	})
	require.Nil(t, err)
	require.Equal(t, object.Int(8), v)
}

func TestImportMissingItems(t *testing.T) {
	p := newProject()
	p.addLib()
	_, err := p.compile(func(b *build.B) []ast.Expr {
		return []ast.Expr{
			b.Import(b.Str("a.ql"), "", b.Items(b.Item("nope", ""), b.Item("double", ""), b.Item("x.y", ""))),
			b.Ident("nope"),
		}
	})
	list := diag.List(err)
	require.Len(t, list, 2)
	require.Equal(t, "cannot find `nope` in module `a`", list[0].Message)
	require.Equal(t, "cannot find `y` in module `x`", list[1].Message)
}

func TestImportInvalidModuleName(t *testing.T) {
	p := newProject()
	p.add("2d.ql", func(b *build.B) []ast.Expr {
		return []ast.Expr{b.Let(b.Ident("x"), b.Int(1))}
	})
	_, err := p.compile(func(b *build.B) []ast.Expr {
		return []ast.Expr{b.Import(b.Str("2d.ql"), "", nil)}
	})
	d := firstDiag(t, err)
	require.Equal(t, "module name would not be a valid identifier", d.Message)

	v, err := p.run(t, func(b *build.B) []ast.Expr {
		return []ast.Expr{
			b.Import(b.Str("2d.ql"), "shapes", nil),
			b.Field(b.Ident("shapes"), "x"),
		}
	})
	require.Nil(t, err)
	require.Equal(t, object.Int(1), v)
}

func TestCyclicImport(t *testing.T) {
	p := newProject()
	main := func(b *build.B) []ast.Expr {
		return []ast.Expr{b.Import(b.Str("b.ql"), "", nil)}
	}
	p.add("main.ql", main)
	p.add("b.ql", func(b *build.B) []ast.Expr {
		return []ast.Expr{b.Import(b.Str("main.ql"), "", nil)}
	})
	_, err := p.compile(main)
	d := firstDiag(t, err)
	require.Equal(t, "cyclic import", d.Message)
	require.Equal(t, ast.NewFileID("b.ql"), d.Span.File)
	require.Len(t, d.Trace, 1)
}

func TestStaticInclude(t *testing.T) {
	p := newProject()
	p.add("c.ql", func(b *build.B) []ast.Expr {
		return []ast.Expr{b.Let(b.Ident("x"), b.Int(1)), b.Str("hello")}
	})
	v, err := p.run(t, func(b *build.B) []ast.Expr {
		return []ast.Expr{b.Include(b.Str("c.ql"))}
	})
	require.Nil(t, err)
	require.Equal(t, object.Str("hello"), v)
}

func TestDynamicImport(t *testing.T) {
	p := newProject()
	p.addLib()
	main := func(b *build.B) []ast.Expr {
		return []ast.Expr{
			b.LetFunc("f", build.Params(b.Ident("path")), b.Code(
				b.Import(b.Ident("path"), "", b.Items(b.Item("double", ""))),
				b.Call(b.Ident("double"), b.Int(2)),
			)),
			b.LetFunc("g", build.Params(b.Ident("path")), b.Include(b.Ident("path"))),
			b.Call(b.Ident("f"), b.Str("a.ql")),
		}
	}
	unit, err := p.compile(main)
	require.Nil(t, err)
	require.True(t, hasOp(unit.ClosureAt(0).Unit, op.Import))
	require.True(t, hasOp(unit.ClosureAt(1).Unit, op.Include))

	v, err := p.run(t, main)
	require.Nil(t, err)
	require.Equal(t, object.Int(4), v)
}

func TestDynamicWildcardImport(t *testing.T) {
	p := newProject()
	_, err := p.compile(func(b *build.B) []ast.Expr {
		return []ast.Expr{
			b.LetFunc("f", build.Params(b.Ident("m")), b.Code(
				b.Import(b.Ident("m"), "", b.Wildcard()),
			)),
		}
	})
	d := firstDiag(t, err)
	require.Equal(t, "cannot import all definitions from a dynamic module", d.Message)
}

func TestImportFromFunctionScope(t *testing.T) {
	e := newEnv()
	b := e.b
	calc := object.NewNative("calc", nil)
	calc.Scope().Define("answer", object.Int(42))
	e.library.Define("calc", calc)
	v := e.content(t,
		b.Import(b.Ident("calc"), "", b.Items(b.Item("answer", ""))),
		b.Ident("answer"),
	)
	require.Equal(t, object.Int(42), v)
}
