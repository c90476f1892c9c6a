package vm

import (
	"github.com/quillscript/quill/bytecode"
	"github.com/quillscript/quill/object"
)

// flow is the control flow signal of a frame.
type flow uint8

const (
	flowNone flow = iota
	flowBreak
	flowContinue
	flowReturn
)

// frame is the state of one module evaluation or closure call.
type frame struct {
	unit *bytecode.Unit
	regs []object.Value
	flow flow
	ret  object.Value
	fn   *Closure
}

func newFrame(unit *bytecode.Unit) *frame {
	f := &frame{unit: unit, regs: make([]object.Value, unit.Registers())}
	for i := 0; i < unit.DefaultCount(); i++ {
		d := unit.DefaultAt(i)
		f.regs[d.Target] = d.Value
	}
	return f
}

// reg returns the value of a register. Registers that were never written
// hold none.
func (f *frame) reg(r bytecode.Register) object.Value {
	if v := f.regs[r]; v != nil {
		return v
	}
	return object.None
}

func (f *frame) read(r bytecode.Readable) object.Value {
	switch r.Kind {
	case bytecode.ReadNone:
		return object.None
	case bytecode.ReadAuto:
		return object.Auto
	case bytecode.ReadBool:
		return object.Bool(r.Index == 1)
	case bytecode.ReadConst:
		return f.unit.ConstantAt(int(r.Index))
	case bytecode.ReadStr:
		return object.Str(f.unit.StringAt(int(r.Index)))
	case bytecode.ReadReg:
		return f.reg(r.Register())
	case bytecode.ReadGlobal:
		return f.unit.Globals().At(int(r.Index))
	}
	return object.None
}

func (f *frame) str(i uint32) string {
	return f.unit.StringAt(int(i))
}
