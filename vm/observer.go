package vm

import (
	"github.com/quillscript/quill/ast"
	"github.com/quillscript/quill/diag"
	"github.com/quillscript/quill/object"
	"github.com/quillscript/quill/op"
)

// StepMode controls when OnStep callbacks are triggered.
type StepMode uint8

const (
	// StepAll calls OnStep for every instruction.
	StepAll StepMode = iota

	// StepNone never calls OnStep.
	StepNone

	// StepSampled calls OnStep every N instructions.
	StepSampled
)

// ObserverConfig specifies what events an observer wants to receive.
// Use NewObserverConfig() to create configs with safe defaults.
type ObserverConfig struct {
	// StepMode controls OnStep callback frequency.
	StepMode StepMode

	// SampleInterval is the number of instructions between OnStep calls
	// when StepMode is StepSampled. Values <= 0 are treated as 1.
	SampleInterval int

	// ObserveCalls enables OnCall callbacks.
	ObserveCalls bool

	// ObserveReturns enables OnReturn callbacks.
	ObserveReturns bool
}

// NewObserverConfig creates a config with calls and returns enabled.
func NewObserverConfig(mode StepMode) ObserverConfig {
	return ObserverConfig{
		StepMode:       mode,
		SampleInterval: 1000,
		ObserveCalls:   true,
		ObserveReturns: true,
	}
}

// NormalizeConfig validates and clamps config values.
func NormalizeConfig(cfg ObserverConfig) ObserverConfig {
	if cfg.StepMode == StepSampled && cfg.SampleInterval <= 0 {
		cfg.SampleInterval = 1
	}
	return cfg
}

// Observer receives execution events, e.g. for profiling or tracing.
// Methods are called synchronously; returning false halts the evaluation.
type Observer interface {
	// Config is called once when the observer is attached.
	Config() ObserverConfig

	OnStep(event StepEvent) bool
	OnCall(event CallEvent) bool
	OnReturn(event ReturnEvent) bool
}

// StepEvent describes one executed instruction.
type StepEvent struct {
	Unit       string
	PC         int
	Opcode     op.Code
	OpcodeName string
	Span       ast.Span
	Depth      int
}

// CallEvent describes a closure call.
type CallEvent struct {
	FunctionName string
	ArgCount     int
	Span         ast.Span
	Depth        int
}

// ReturnEvent describes a closure returning normally.
type ReturnEvent struct {
	FunctionName string
	Span         ast.Span
	Depth        int
}

// NoOpObserver implements every Observer method as a no-op. Embed it to
// implement only the callbacks you need.
type NoOpObserver struct{}

func (NoOpObserver) Config() ObserverConfig {
	return NewObserverConfig(StepAll)
}

func (NoOpObserver) OnStep(StepEvent) bool     { return true }
func (NoOpObserver) OnCall(CallEvent) bool     { return true }
func (NoOpObserver) OnReturn(ReturnEvent) bool { return true }

var _ Observer = NoOpObserver{}

func errHalted(span ast.Span) error {
	return diag.Errorf(span, "execution halted by observer")
}

func (m *Machine) observeStep(st *state, f *frame, pc int, code op.Code) bool {
	if m.observer == nil {
		return true
	}
	st.steps++
	switch m.observerCfg.StepMode {
	case StepNone:
		return true
	case StepSampled:
		if st.steps%m.observerCfg.SampleInterval != 0 {
			return true
		}
	}
	return m.observer.OnStep(StepEvent{
		Unit:       f.unit.Name(),
		PC:         pc,
		Opcode:     code,
		OpcodeName: code.String(),
		Span:       f.unit.SpanAt(pc),
		Depth:      st.depth,
	})
}

func (m *Machine) observeCall(c *Closure, args *object.Args, depth int) bool {
	if m.observer == nil || !m.observerCfg.ObserveCalls {
		return true
	}
	return m.observer.OnCall(CallEvent{
		FunctionName: c.Name(),
		ArgCount:     len(args.Items),
		Span:         args.Span,
		Depth:        depth,
	})
}

func (m *Machine) observeReturn(c *Closure, span ast.Span, depth int) bool {
	if m.observer == nil || !m.observerCfg.ObserveReturns {
		return true
	}
	return m.observer.OnReturn(ReturnEvent{
		FunctionName: c.Name(),
		Span:         span,
		Depth:        depth,
	})
}
