package vm

import (
	"context"
	"sync"

	"github.com/quillscript/quill/ast"
	"github.com/quillscript/quill/bytecode"
	"github.com/quillscript/quill/diag"
	"github.com/quillscript/quill/object"
)

var (
	_ object.Func            = (*Closure)(nil)
	_ bytecode.Fingerprinter = (*Closure)(nil)
)

// Closure is a runtime function value built from a closure unit. Captured
// values and parameter defaults are copied in when the closure is built
// and never change afterwards.
type Closure struct {
	unit     *bytecode.Unit
	captures []object.Value
	defaults []object.Value

	once   sync.Once
	digest bytecode.Digest
}

// NewClosure builds a closure. captures parallels the unit's captures and
// defaults its parameters; parameters without a default have a nil entry.
func NewClosure(unit *bytecode.Unit, captures, defaults []object.Value) *Closure {
	return &Closure{unit: unit, captures: captures, defaults: defaults}
}

func (c *Closure) Type() *object.Type { return object.FuncType }

func (c *Closure) Repr() string {
	if name := c.unit.Name(); name != "" {
		return name
	}
	return "(..) => .."
}

func (c *Closure) Name() string { return c.unit.Name() }

// Unit returns the compiled body of the closure.
func (c *Closure) Unit() *bytecode.Unit { return c.unit }

// Defaults returns the bound parameter defaults.
func (c *Closure) Defaults() []object.Value { return c.defaults }

// Fingerprint identifies the closure by its compiled body and bound
// defaults. Only closures without captures are fingerprinted by content;
// it is what lets identical pre-instantiated closures be shared.
func (c *Closure) Fingerprint() bytecode.Digest {
	c.once.Do(func() {
		d, err := bytecode.FingerprintClosure(c.unit, c.defaults)
		if err == nil {
			c.digest = d
		}
	})
	return c.digest
}

// Call runs the closure with the machine of the evaluation in ctx, or
// with a default machine when called from outside any evaluation.
func (c *Closure) Call(ctx context.Context, args *object.Args) (object.Value, error) {
	ctx, st := defaultMachine.enter(ctx)
	return st.machine.callClosure(ctx, st, c, args)
}

// instantiate builds a closure value for a nested closure of the running
// unit.
func (m *Machine) instantiate(f *frame, c *bytecode.Closure) object.Value {
	if c.Mode == bytecode.Instantiated {
		return c.Value
	}
	unit := c.Unit
	captures := make([]object.Value, unit.CaptureCount())
	for i := range captures {
		captures[i] = f.read(unit.CaptureAt(i).Source)
	}
	defaults := make([]object.Value, unit.ParamCount())
	for i := range defaults {
		if p := unit.ParamAt(i); p.HasDefault {
			defaults[i] = f.read(p.Default)
		}
	}
	return NewClosure(unit, captures, defaults)
}

func (m *Machine) callClosure(ctx context.Context, st *state, c *Closure, args *object.Args) (object.Value, error) {
	if st.depth >= m.maxDepth {
		return nil, diag.Errorf(args.Span, "maximum function call depth exceeded")
	}
	st.depth++
	defer func() { st.depth-- }()

	unit := c.unit
	f := newFrame(unit)
	f.fn = c
	for i, v := range c.captures {
		f.regs[unit.CaptureAt(i).Target] = v
	}
	if self, ok := unit.Self(); ok {
		f.regs[self] = c
	}
	if !m.observeCall(c, args, st.depth) {
		return nil, errHalted(args.Span)
	}
	span := args.Span
	if err := bindParams(f, c, args); err != nil {
		return nil, err
	}
	if err := m.run(ctx, st, f, 0, unit.InstructionCount()); err != nil {
		return nil, traceCall(err, c, span)
	}
	if !m.observeReturn(c, span, st.depth-1) {
		return nil, errHalted(span)
	}
	if f.flow == flowReturn {
		return f.ret, nil
	}
	return f.read(unit.Output()), nil
}

func traceCall(err error, c *Closure, span ast.Span) error {
	if name := c.Name(); name != "" {
		return diag.Trace(err, span, "error occurred in this call of function `%s`", name)
	}
	return diag.Trace(err, span, "error occurred in this function call")
}

// bindParams writes the arguments of a call to the parameter registers.
// Positional parameters take arguments in order; the sink takes the
// positional arguments no other parameter claims plus every named argument
// left over.
func bindParams(f *frame, c *Closure, args *object.Args) error {
	unit := c.unit
	posParams := 0
	for i := 0; i < unit.ParamCount(); i++ {
		if unit.ParamAt(i).Kind == bytecode.ParamPos {
			posParams++
		}
	}
	sinkSize := args.CountPositional() - posParams

	var sink *object.Args
	var sinkParam *bytecode.Param
	for i := 0; i < unit.ParamCount(); i++ {
		p := unit.ParamAt(i)
		switch p.Kind {
		case bytecode.ParamPos:
			v, ok := args.Eat()
			if !ok {
				return diag.Errorf(args.Span, "missing argument: %s", p.Name)
			}
			f.regs[p.Target] = v
		case bytecode.ParamNamed:
			if v, ok := args.Named(p.Name); ok {
				f.regs[p.Target] = v
			} else if i < len(c.defaults) && c.defaults[i] != nil {
				f.regs[p.Target] = c.defaults[i]
			} else {
				f.regs[p.Target] = object.None
			}
		case bytecode.ParamSink:
			sink = &object.Args{Span: p.Span}
			sinkParam = &p
			for n := 0; n < sinkSize; n++ {
				v, _ := args.Eat()
				sink.Push(args.Span, v)
			}
		}
	}
	if sink != nil {
		for _, item := range args.Items {
			if item.Name == "" {
				sink.Push(item.Span, item.Value)
			} else {
				sink.Insert(item.Span, item.Name, item.Value)
			}
		}
		args.Items = nil
		if !sinkParam.Discard {
			f.regs[sinkParam.Target] = sink
		}
	}
	return args.Finish()
}
