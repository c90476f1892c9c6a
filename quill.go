// Package quill evaluates quill code-mode programs.
//
// An Engine ties together a World (where source files come from), the
// global library, the compiler, the virtual machine and the importer:
//
//	world := importer.NewMemoryWorld()
//	world.AddSource(src)
//	engine := quill.New(world)
//	module, err := engine.Eval(ctx, src.ID())
//
// Errors returned by the engine flatten to diagnostics with diag.List.
package quill

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/gofrs/uuid"
	"github.com/quillscript/quill/ast"
	"github.com/quillscript/quill/bytecode"
	"github.com/quillscript/quill/compiler"
	"github.com/quillscript/quill/diag"
	"github.com/quillscript/quill/importer"
	"github.com/quillscript/quill/object"
	"github.com/quillscript/quill/vm"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Engine compiles and evaluates files of a World. It is safe for
// concurrent use.
type Engine struct {
	world    importer.World
	library  *object.Scope
	logger   zerolog.Logger
	closures *compiler.ClosureCache
	loader   *importer.Loader
	machine  *vm.Machine
}

// New creates an engine reading files from world.
func New(world importer.World, opts ...Option) *Engine {
	cfg := collectOptions(opts...)
	e := &Engine{
		world:   world,
		library: cfg.buildLibrary(),
		logger:  cfg.logger,
	}
	if cfg.dedup {
		e.closures = compiler.NewClosureCache()
	}
	e.loader = importer.NewLoader(world, e.evalSource, importer.WithLoaderLogger(cfg.logger))
	vmOpts := []vm.Option{
		vm.WithLogger(cfg.logger),
		vm.WithImporter(e.loader),
		vm.WithMaxCallDepth(cfg.maxCallDepth),
	}
	if cfg.observer != nil {
		vmOpts = append(vmOpts, vm.WithObserver(cfg.observer))
	}
	e.machine = vm.New(vmOpts...)
	return e
}

// Library returns the global scope programs are compiled against.
func (e *Engine) Library() *object.Scope { return e.library }

// Closures returns the cache of pre-instantiated closures, or nil when
// deduplication is disabled.
func (e *Engine) Closures() *compiler.ClosureCache { return e.closures }

// Compile compiles a source without running it. Imports with a literal
// path are still evaluated, since their definitions become constants.
func (e *Engine) Compile(ctx context.Context, src *ast.Source) (*bytecode.Unit, error) {
	ctx = importer.Enter(ctx, src.ID())
	return e.compile(ctx, src)
}

func (e *Engine) compile(ctx context.Context, src *ast.Source) (*bytecode.Unit, error) {
	return compiler.Compile(ctx, src, &compiler.Config{
		Library:  e.library,
		Importer: e.loader,
		Logger:   &e.logger,
		Closures: e.closures,
	})
}

// evalSource is the loader's EvalFunc. The file is already on the route.
func (e *Engine) evalSource(ctx context.Context, src *ast.Source) (*object.Module, error) {
	unit, err := e.compile(ctx, src)
	if err != nil {
		return nil, err
	}
	return e.machine.EvalModule(ctx, unit)
}

// Eval compiles and evaluates one file of the world.
func (e *Engine) Eval(ctx context.Context, id ast.FileID) (module *object.Module, err error) {
	runID, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	logger := e.logger.With().Str("run", runID.String()).Stringer("file", id).Logger()
	ctx = logger.WithContext(ctx)
	start := time.Now()
	logger.Debug().Msg("evaluation started")

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("evaluation panicked")
			module, err = nil, diag.New("internal error: %v", r)
		}
		event := logger.Debug().Dur("duration", time.Since(start))
		if err != nil {
			event = event.Int("errors", len(diag.List(err)))
		}
		event.Msg("evaluation finished")
	}()

	src, err := e.world.Source(id)
	if err != nil {
		return nil, fmt.Errorf("cannot load %s: %w", id, err)
	}
	return e.evalSource(importer.Enter(ctx, id), src)
}

// EvalMany evaluates independent files concurrently. Modules are returned
// in the order of ids. The first failure cancels files that have not
// started yet.
func (e *Engine) EvalMany(ctx context.Context, ids []ast.FileID) ([]*object.Module, error) {
	modules := make([]*object.Module, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := e.Eval(ctx, id)
			if err != nil {
				return err
			}
			modules[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return modules, nil
}

// Call calls a function value produced by an evaluation, such as a closure
// exported from a module.
func (e *Engine) Call(ctx context.Context, fn object.Value, args ...object.Value) (object.Value, error) {
	return e.machine.Call(ctx, fn, object.NewArgs(ast.Detached(), args...))
}
