package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/quillscript/quill/ast"
	"github.com/quillscript/quill/diag"
	"github.com/quillscript/quill/object"
	"github.com/rs/zerolog"
)

// CompilerVersion is checked against the `compiler` bound of package
// manifests.
const CompilerVersion = "0.4.0"

// Importer turns an import path into an evaluated module. Relative paths
// resolve against the innermost file on the route of ctx, or the file of
// span when the route is empty.
type Importer interface {
	Import(ctx context.Context, span ast.Span, path string) (*object.Module, error)
}

// EvalFunc evaluates a parsed source into a module. It is called with the
// source's file already on the route of ctx.
type EvalFunc func(ctx context.Context, src *ast.Source) (*object.Module, error)

// Loader is the Importer used by the engine.
type Loader struct {
	world   World
	eval    EvalFunc
	logger  zerolog.Logger
	version string
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLoaderLogger sets the logger import resolution is reported to.
func WithLoaderLogger(logger zerolog.Logger) LoaderOption {
	return func(l *Loader) { l.logger = logger }
}

// WithCompilerVersion overrides the version manifests are checked against.
func WithCompilerVersion(v string) LoaderOption {
	return func(l *Loader) { l.version = v }
}

// NewLoader creates a loader.
func NewLoader(world World, eval EvalFunc, opts ...LoaderOption) *Loader {
	l := &Loader{world: world, eval: eval, logger: zerolog.Nop(), version: CompilerVersion}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Resolve maps an import path to the file it names. Package paths resolve
// to the package entrypoint.
func (l *Loader) Resolve(ctx context.Context, span ast.Span, path string) (ast.FileID, error) {
	if strings.HasPrefix(path, "@") {
		spec, err := ParsePackageSpec(path)
		if err != nil {
			return ast.FileID{}, err
		}
		manifest, err := LoadManifest(l.world, spec, l.version)
		if err != nil {
			return ast.FileID{}, err
		}
		l.logger.Debug().
			Str("package", spec.String()).
			Str("entrypoint", manifest.Package.Entrypoint).
			Msg("loaded package manifest")
		return ast.FileID{Package: spec, Path: "/"}.Join(manifest.Package.Entrypoint), nil
	}
	if path == "" {
		return ast.FileID{}, fmt.Errorf("import path must not be empty")
	}
	from, ok := RouteFrom(ctx).Current()
	if !ok {
		from = span.File
	}
	return from.Join(path), nil
}

// Import resolves, loads and evaluates a module. Modules imported from a
// package are named after the package; file modules after the file stem.
func (l *Loader) Import(ctx context.Context, span ast.Span, path string) (*object.Module, error) {
	id, err := l.Resolve(ctx, span, path)
	if err != nil {
		return nil, diag.At(span, err)
	}
	src, err := l.world.Source(id)
	if err != nil {
		return nil, diag.At(span, err)
	}
	if RouteFrom(ctx).Contains(id) {
		return nil, diag.Errorf(span, "cyclic import")
	}
	l.logger.Debug().Str("path", path).Stringer("file", id).Msg("importing module")
	module, err := l.eval(Enter(ctx, id), src)
	if err != nil {
		return nil, diag.Trace(err, span, "error occurred while importing this module")
	}
	if !id.Package.IsZero() {
		module = module.WithName(id.Package.Name)
	}
	return module, nil
}
