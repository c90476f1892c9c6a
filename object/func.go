package object

import (
	"context"
)

// NativeFunc is the Go implementation of a native function.
type NativeFunc func(ctx context.Context, args *Args) (Value, error)

var _ Func = (*Native)(nil)

// Native wraps a Go function. Natives may carry a scope of members such as
// `assert.eq`.
type Native struct {
	name  string
	fn    NativeFunc
	scope *Scope
}

// NewNative creates a native function.
func NewNative(name string, fn NativeFunc) *Native {
	return &Native{name: name, fn: fn, scope: NewScope()}
}

func (n *Native) Type() *Type   { return FuncType }
func (n *Native) Repr() string  { return n.name }
func (n *Native) Name() string  { return n.name }
func (n *Native) Scope() *Scope { return n.scope }

func (n *Native) Call(ctx context.Context, args *Args) (Value, error) {
	return n.fn(ctx, args)
}

// Partial is a function with arguments applied ahead of time by `with`.
type Partial struct {
	fn   Func
	args *Args
}

// NewPartial applies args to fn.
func NewPartial(fn Func, args *Args) *Partial {
	return &Partial{fn: fn, args: args}
}

func (p *Partial) Type() *Type  { return FuncType }
func (p *Partial) Name() string { return p.fn.Name() }

func (p *Partial) Repr() string {
	if name := p.fn.Name(); name != "" {
		return name
	}
	return "(..) => .."
}

func (p *Partial) Call(ctx context.Context, args *Args) (Value, error) {
	merged := p.args.Clone()
	merged.Span = args.Span
	if err := merged.Spread(args.Span, args); err != nil {
		return nil, err
	}
	return p.fn.Call(ctx, merged)
}

// Scoped is implemented by values with static members: modules, types and
// some functions.
type Scoped interface {
	Scope() *Scope
}
