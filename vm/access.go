package vm

import (
	"context"

	"github.com/quillscript/quill/bytecode"
	"github.com/quillscript/quill/diag"
	"github.com/quillscript/quill/object"
)

// write stores v into a destination.
func (m *Machine) write(ctx context.Context, st *state, f *frame, w bytecode.Writable, v object.Value) error {
	switch w.Kind {
	case bytecode.WriteDiscard:
		return nil
	case bytecode.WriteReg:
		f.regs[w.Index] = v
		return nil
	case bytecode.WriteAccess:
		return m.modify(ctx, st, f, int(w.Index), func(object.Value) (object.Value, error) {
			return v, nil
		})
	}
	return diag.New("invalid destination %s", w)
}

// update replaces the value of a destination with fn(old).
func (m *Machine) update(ctx context.Context, st *state, f *frame, w bytecode.Writable, fn object.Modifier) error {
	switch w.Kind {
	case bytecode.WriteReg:
		v, err := fn(f.reg(w.Register()))
		if err != nil {
			return err
		}
		f.regs[w.Index] = v
		return nil
	case bytecode.WriteAccess:
		return m.modify(ctx, st, f, int(w.Index), fn)
	}
	return diag.New("cannot mutate a temporary value")
}

// readAccess returns the current value of a place.
func (m *Machine) readAccess(ctx context.Context, st *state, f *frame, id int) (object.Value, error) {
	a := f.unit.AccessAt(id)
	switch a.Kind {
	case bytecode.AccessReadable:
		return f.read(a.Readable), nil
	case bytecode.AccessRegister:
		return f.reg(a.Register), nil
	case bytecode.AccessModule, bytecode.AccessFunc, bytecode.AccessType:
		v, err := object.Field(a.Value, a.Name)
		return v, diag.At(a.Span, err)
	case bytecode.AccessValue:
		return a.Value, nil
	case bytecode.AccessChained:
		base, err := m.readAccess(ctx, st, f, a.Base)
		if err != nil {
			return nil, err
		}
		v, err := object.Field(base, a.Name)
		return v, diag.At(a.Span, err)
	case bytecode.AccessMethod:
		base, err := m.readAccess(ctx, st, f, a.Base)
		if err != nil {
			return nil, err
		}
		args, err := accessArgs(f, a)
		if err != nil {
			return nil, err
		}
		v, err := object.CallMethod(ctx, base, a.Name, args)
		return v, diag.At(a.Span, err)
	}
	return nil, diag.Errorf(a.Span, "invalid access kind %s", a.Kind)
}

// modify applies fn to a place, writing the new value back through every
// level of the access chain.
func (m *Machine) modify(ctx context.Context, st *state, f *frame, id int, fn object.Modifier) error {
	a := f.unit.AccessAt(id)
	switch a.Kind {
	case bytecode.AccessRegister:
		v, err := fn(f.reg(a.Register))
		if err != nil {
			return diag.At(a.Span, err)
		}
		f.regs[a.Register] = v
		return nil
	case bytecode.AccessChained:
		return m.modify(ctx, st, f, a.Base, func(base object.Value) (object.Value, error) {
			v, err := object.ModifyField(base, a.Name, fn)
			return v, diag.At(a.Span, err)
		})
	case bytecode.AccessMethod:
		args, err := accessArgs(f, a)
		if err != nil {
			return err
		}
		return m.modify(ctx, st, f, a.Base, func(base object.Value) (object.Value, error) {
			v, err := object.ModifyAccessor(base, a.Name, args, fn)
			return v, diag.At(a.Span, err)
		})
	case bytecode.AccessModule, bytecode.AccessFunc, bytecode.AccessType, bytecode.AccessValue:
		return diag.Errorf(a.Span, "cannot mutate a constant: %s", a.Name)
	}
	return diag.Errorf(a.Span, "cannot mutate a temporary value")
}

func accessArgs(f *frame, a *bytecode.Access) (*object.Args, error) {
	v := f.read(a.Args)
	args, ok := v.(*object.Args)
	if !ok {
		return nil, diag.Errorf(a.Span, "expected arguments, found %s", v.Type())
	}
	return args.Clone(), nil
}
