package vm

import (
	"context"

	"github.com/quillscript/quill/bytecode"
	"github.com/quillscript/quill/diag"
	"github.com/quillscript/quill/object"
)

// runWhile executes a while loop. The instruction is followed by the
// condition range (in.Index instructions) and the body range (in.Index2
// instructions). The joined body outputs are written to in.Out.
func (m *Machine) runWhile(ctx context.Context, st *state, f *frame, pc int, in bytecode.Instruction) (int, error) {
	condStart := pc + 1
	bodyStart := condStart + int(in.Index)
	bodyEnd := bodyStart + int(in.Index2)

	var out object.Value = object.None
	for i := 0; ; i++ {
		if err := m.run(ctx, st, f, condStart, bodyStart); err != nil {
			return bodyEnd, err
		}
		cond, err := object.AsBool(f.read(in.A))
		if err != nil {
			return bodyEnd, err
		}
		if !cond {
			break
		}
		if i >= MaxIterations {
			return bodyEnd, diag.New("loop seems to be infinite")
		}
		done, err := m.loopBody(ctx, st, f, bodyStart, bodyEnd, in.B, &out)
		if err != nil || done {
			if err == nil {
				err = m.write(ctx, st, f, in.Out, out)
			}
			return bodyEnd, err
		}
	}
	return bodyEnd, m.write(ctx, st, f, in.Out, out)
}

// runIter executes a for loop over the items of in.A. Each item is bound
// through pattern in.Index2 before the body range of in.Index
// instructions runs.
func (m *Machine) runIter(ctx context.Context, st *state, f *frame, pc int, in bytecode.Instruction) (int, error) {
	bodyStart := pc + 1
	bodyEnd := bodyStart + int(in.Index)

	items, err := object.Iterate(f.read(in.A))
	if err != nil {
		return bodyEnd, err
	}
	pattern := f.unit.PatternAt(int(in.Index2))
	var out object.Value = object.None
	for _, item := range items {
		if err := m.destructure(ctx, st, f, pattern, item); err != nil {
			return bodyEnd, err
		}
		done, err := m.loopBody(ctx, st, f, bodyStart, bodyEnd, in.B, &out)
		if err != nil {
			return bodyEnd, err
		}
		if done {
			break
		}
	}
	return bodyEnd, m.write(ctx, st, f, in.Out, out)
}

// loopBody runs one iteration and joins its output into out. It consumes
// break and continue signals and reports whether the loop is over.
func (m *Machine) loopBody(ctx context.Context, st *state, f *frame, start, end int, result bytecode.Readable, out *object.Value) (bool, error) {
	if err := m.run(ctx, st, f, start, end); err != nil {
		return true, err
	}
	joined, err := object.Join(*out, f.read(result))
	if err != nil {
		return true, diag.At(f.unit.SpanAt(start-1), err)
	}
	*out = joined
	switch f.flow {
	case flowBreak:
		f.flow = flowNone
		return true, nil
	case flowContinue:
		f.flow = flowNone
	case flowReturn:
		return true, nil
	}
	return false, nil
}
