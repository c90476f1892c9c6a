// Package vm executes compiled units.
//
// A Machine holds configuration only. Every evaluation gets its own frames
// and register files, so a single Machine can run any number of units
// concurrently. Units and pre-instantiated closures are immutable and are
// shared between evaluations.
package vm

import (
	"context"

	"github.com/quillscript/quill/bytecode"
	"github.com/quillscript/quill/diag"
	"github.com/quillscript/quill/importer"
	"github.com/quillscript/quill/object"
	"github.com/rs/zerolog"
)

const (
	// DefaultMaxCallDepth is the default limit on nested closure calls.
	DefaultMaxCallDepth = 256

	// MaxIterations is the number of iterations after which a while loop
	// is considered infinite.
	MaxIterations = 10_000
)

// Machine runs compiled units.
type Machine struct {
	logger      zerolog.Logger
	importer    importer.Importer
	maxDepth    int
	observer    Observer
	observerCfg ObserverConfig
}

// New creates a machine.
func New(options ...Option) *Machine {
	m := &Machine{
		logger:   zerolog.Nop(),
		maxDepth: DefaultMaxCallDepth,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

var defaultMachine = New()

// state is shared by everything running on behalf of one evaluation.
type state struct {
	machine *Machine
	depth   int
	steps   int
}

type contextKey string

const stateKey = contextKey("quill:vm")

func stateFrom(ctx context.Context) (*state, bool) {
	st, ok := ctx.Value(stateKey).(*state)
	return st, ok && st != nil
}

// enter returns the evaluation state of ctx, creating one for m when ctx
// carries none.
func (m *Machine) enter(ctx context.Context) (context.Context, *state) {
	if st, ok := stateFrom(ctx); ok {
		return ctx, st
	}
	st := &state{machine: m}
	return context.WithValue(ctx, stateKey, st), st
}

// EvalModule runs a module unit and collects its exports.
func (m *Machine) EvalModule(ctx context.Context, unit *bytecode.Unit) (*object.Module, error) {
	ctx, st := m.enter(ctx)
	f := newFrame(unit)
	if err := st.machine.run(ctx, st, f, 0, unit.InstructionCount()); err != nil {
		return nil, err
	}
	content := f.read(unit.Output())
	if f.flow == flowReturn {
		content = f.ret
	}
	scope := object.NewScope()
	for i := 0; i < unit.ExportCount(); i++ {
		export := unit.ExportAt(i)
		scope.Define(export.Name, f.reg(export.Register))
	}
	m.logger.Trace().
		Str("module", unit.Name()).
		Int("exports", scope.Len()).
		Msg("evaluated module")
	return object.NewModule(unit.Name(), unit.File(), scope, content), nil
}

// Call calls any callable value: closures, native functions and types.
func (m *Machine) Call(ctx context.Context, callee object.Value, args *object.Args) (object.Value, error) {
	ctx, st := m.enter(ctx)
	return st.machine.call(ctx, st, callee, args)
}

func (m *Machine) call(ctx context.Context, st *state, callee object.Value, args *object.Args) (object.Value, error) {
	switch fn := callee.(type) {
	case *Closure:
		return m.callClosure(ctx, st, fn, args)
	case object.Func:
		return fn.Call(ctx, args)
	case *object.Type:
		return fn.Call(ctx, args)
	}
	return nil, diag.Errorf(args.Span, "expected function, found %s", callee.Type())
}

