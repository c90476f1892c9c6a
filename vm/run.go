package vm

import (
	"context"

	"github.com/quillscript/quill/bytecode"
	"github.com/quillscript/quill/diag"
	"github.com/quillscript/quill/object"
	"github.com/quillscript/quill/op"
)

// run executes the instructions in [start, end) of the frame's unit. It
// stops early as soon as a flow signal is raised; loops own nested ranges
// and consume break and continue themselves.
func (m *Machine) run(ctx context.Context, st *state, f *frame, start, end int) error {
	pc := start
	for pc < end {
		in := f.unit.InstructionAt(pc)
		if !m.observeStep(st, f, pc, in.Op) {
			return errHalted(f.unit.SpanAt(pc))
		}
		next, err := m.exec(ctx, st, f, pc, in)
		if err != nil {
			return diag.At(f.unit.SpanAt(pc), err)
		}
		if f.flow != flowNone {
			return nil
		}
		pc = next
	}
	return nil
}

// exec executes one instruction and returns the index of the next one.
func (m *Machine) exec(ctx context.Context, st *state, f *frame, pc int, in bytecode.Instruction) (int, error) {
	next := pc + 1
	switch in.Op {
	case op.Copy:
		return next, m.write(ctx, st, f, in.Out, f.read(in.A))

	case op.Instantiate:
		return next, m.write(ctx, st, f, in.Out, m.instantiate(f, f.unit.ClosureAt(int(in.Index))))

	case op.Join:
		v := f.read(in.A)
		return next, m.update(ctx, st, f, in.Out, func(old object.Value) (object.Value, error) {
			return object.Join(old, v)
		})

	case op.Add, op.Sub, op.Mul, op.Div, op.Eq, op.Neq, op.Lt, op.Leq, op.Gt, op.Geq, op.In, op.NotIn:
		v, err := binary(in.Op, f.read(in.A), f.read(in.B))
		if err != nil {
			return next, err
		}
		return next, m.write(ctx, st, f, in.Out, v)

	case op.Neg, op.Pos, op.Not:
		v, err := unary(in.Op, f.read(in.A))
		if err != nil {
			return next, err
		}
		return next, m.write(ctx, st, f, in.Out, v)

	case op.Select:
		v, err := selectBool(in.Index, f.read(in.A), func() object.Value { return f.read(in.B) })
		if err != nil {
			return next, err
		}
		return next, m.write(ctx, st, f, in.Out, v)

	case op.Assign:
		return next, m.write(ctx, st, f, in.Out, f.read(in.A))

	case op.AddAssign, op.SubAssign, op.MulAssign, op.DivAssign:
		v := f.read(in.A)
		operator := compoundOps[in.Op]
		return next, m.update(ctx, st, f, in.Out, func(old object.Value) (object.Value, error) {
			return binary(operator, old, v)
		})

	case op.Destructure:
		return next, m.destructure(ctx, st, f, f.unit.PatternAt(int(in.Index)), f.read(in.A))

	case op.Jump:
		return f.unit.LabelAt(int(in.Index)), nil

	case op.JumpIf, op.JumpIfNot:
		cond, err := object.AsBool(f.read(in.A))
		if err != nil {
			return next, err
		}
		if cond == (in.Op == op.JumpIf) {
			return f.unit.LabelAt(int(in.Index)), nil
		}
		return next, nil

	case op.While:
		return m.runWhile(ctx, st, f, pc, in)

	case op.Iter:
		return m.runIter(ctx, st, f, pc, in)

	case op.Break:
		f.flow = flowBreak
		return next, nil

	case op.Continue:
		f.flow = flowContinue
		return next, nil

	case op.Return:
		if in.Index == 1 {
			f.ret = f.read(in.A)
		} else {
			f.ret = f.read(f.unit.Output())
		}
		f.flow = flowReturn
		return next, nil

	case op.Array:
		return next, m.write(ctx, st, f, in.Out, object.NewArray(make([]object.Value, 0, in.Index)))

	case op.Push:
		arr, err := building[*object.Array](f, in.Out)
		if err != nil {
			return next, err
		}
		arr.Append(f.read(in.A))
		return next, nil

	case op.Spread:
		arr, err := building[*object.Array](f, in.Out)
		if err != nil {
			return next, err
		}
		switch v := f.read(in.A).(type) {
		case *object.NoneValue:
		case *object.Array:
			arr.Extend(v.Items())
		default:
			return next, diag.New("cannot spread %s into array", v.Type())
		}
		return next, nil

	case op.Dict:
		return next, m.write(ctx, st, f, in.Out, object.NewDict())

	case op.Insert:
		d, err := building[*object.Dict](f, in.Out)
		if err != nil {
			return next, err
		}
		key, err := object.AsStr(f.read(in.A))
		if err != nil {
			return next, err
		}
		d.Set(key, f.read(in.B))
		return next, nil

	case op.SpreadDict:
		d, err := building[*object.Dict](f, in.Out)
		if err != nil {
			return next, err
		}
		switch v := f.read(in.A).(type) {
		case *object.NoneValue:
		case *object.Dict:
			for _, k := range v.Keys() {
				val, _ := v.Get(k)
				d.Set(k, val)
			}
		default:
			return next, diag.New("cannot spread %s into dictionary", v.Type())
		}
		return next, nil

	case op.Args:
		args := &object.Args{Span: f.unit.SpanAt(pc), Items: make([]object.Arg, 0, in.Index)}
		return next, m.write(ctx, st, f, in.Out, args)

	case op.PushArg:
		args, err := building[*object.Args](f, in.Out)
		if err != nil {
			return next, err
		}
		args.Push(f.unit.SpanAt(pc), f.read(in.A))
		return next, nil

	case op.InsertArg:
		args, err := building[*object.Args](f, in.Out)
		if err != nil {
			return next, err
		}
		name, err := object.AsStr(f.read(in.A))
		if err != nil {
			return next, err
		}
		args.Insert(f.unit.SpanAt(pc), name, f.read(in.B))
		return next, nil

	case op.SpreadArg:
		args, err := building[*object.Args](f, in.Out)
		if err != nil {
			return next, err
		}
		return next, args.Spread(f.unit.SpanAt(pc), f.read(in.A))

	case op.Field:
		v, err := object.Field(f.read(in.A), f.str(in.Index))
		if err != nil {
			return next, err
		}
		return next, m.write(ctx, st, f, in.Out, v)

	case op.Call:
		args, err := callArgs(f, in.B)
		if err != nil {
			return next, err
		}
		v, err := m.call(ctx, st, f.read(in.A), args)
		if err != nil {
			return next, err
		}
		return next, m.write(ctx, st, f, in.Out, v)

	case op.CallMethod:
		args, err := callArgs(f, in.B)
		if err != nil {
			return next, err
		}
		v, err := m.callMethod(ctx, st, f.read(in.A), f.str(in.Index), args)
		if err != nil {
			return next, err
		}
		return next, m.write(ctx, st, f, in.Out, v)

	case op.CallMethodMut:
		args, err := callArgs(f, in.B)
		if err != nil {
			return next, err
		}
		name := f.str(in.Index)
		var result object.Value = object.None
		err = m.modify(ctx, st, f, int(in.Index2), func(old object.Value) (object.Value, error) {
			updated, v, err := object.CallMutMethod(ctx, old, name, args)
			if err != nil {
				return nil, err
			}
			result = v
			return updated, nil
		})
		if err != nil {
			return next, err
		}
		return next, m.write(ctx, st, f, in.Out, result)

	case op.Import:
		module, err := m.importValue(ctx, f, pc, f.read(in.A))
		if err != nil {
			return next, err
		}
		return next, m.write(ctx, st, f, in.Out, module)

	case op.Include:
		module, err := m.importValue(ctx, f, pc, f.read(in.A))
		if err != nil {
			return next, err
		}
		return next, m.write(ctx, st, f, in.Out, module.Content())
	}
	return next, diag.New("invalid instruction %s", in.Op)
}

var compoundOps = map[op.Code]op.Code{
	op.AddAssign: op.Add,
	op.SubAssign: op.Sub,
	op.MulAssign: op.Mul,
	op.DivAssign: op.Div,
}

func binary(code op.Code, a, b object.Value) (object.Value, error) {
	switch code {
	case op.Add:
		return object.Add(a, b)
	case op.Sub:
		return object.Sub(a, b)
	case op.Mul:
		return object.Mul(a, b)
	case op.Div:
		return object.Div(a, b)
	case op.Eq:
		return object.Bool(object.Equal(a, b)), nil
	case op.Neq:
		return object.Bool(!object.Equal(a, b)), nil
	case op.In, op.NotIn:
		in, err := object.In(a, b)
		if err != nil {
			return nil, err
		}
		return object.Bool(in == (code == op.In)), nil
	}
	c, err := object.Compare(a, b)
	if err != nil {
		return nil, err
	}
	switch code {
	case op.Lt:
		return object.Bool(c < 0), nil
	case op.Leq:
		return object.Bool(c <= 0), nil
	case op.Gt:
		return object.Bool(c > 0), nil
	case op.Geq:
		return object.Bool(c >= 0), nil
	}
	return nil, diag.New("invalid binary operator %s", code)
}

func unary(code op.Code, v object.Value) (object.Value, error) {
	switch code {
	case op.Neg:
		return object.Neg(v)
	case op.Pos:
		return object.Pos(v)
	}
	return object.Not(v)
}

// selectBool finishes a short-circuit `and` or `or`. right is only read
// when the left operand did not decide the result.
func selectBool(mode uint32, left object.Value, right func() object.Value) (object.Value, error) {
	l, err := object.AsBool(left)
	if err != nil {
		return nil, err
	}
	if mode == op.SelectAnd && !l {
		return object.Bool(false), nil
	}
	if mode == op.SelectOr && l {
		return object.Bool(true), nil
	}
	r := right()
	if _, err := object.AsBool(r); err != nil {
		return nil, err
	}
	return r, nil
}

// building returns the value under construction in an output register.
func building[T object.Value](f *frame, w bytecode.Writable) (T, error) {
	var zero T
	if !w.IsReg() {
		return zero, diag.New("invalid build target %s", w)
	}
	v, ok := f.reg(w.Register()).(T)
	if !ok {
		return zero, diag.New("invalid build target %s", w)
	}
	return v, nil
}

func callArgs(f *frame, r bytecode.Readable) (*object.Args, error) {
	v := f.read(r)
	if _, ok := v.(*object.NoneValue); ok {
		return &object.Args{}, nil
	}
	args, ok := v.(*object.Args)
	if !ok {
		return nil, diag.New("expected arguments, found %s", v.Type())
	}
	return args, nil
}

// callMethod calls a method, or a member function when the target is a
// module, a type or a function with members.
func (m *Machine) callMethod(ctx context.Context, st *state, target object.Value, name string, args *object.Args) (object.Value, error) {
	if scoped, ok := target.(object.Scoped); ok {
		if member, ok := scoped.Scope().Get(name); ok {
			return m.call(ctx, st, member, args)
		}
	}
	return object.CallMethod(ctx, target, name, args)
}
