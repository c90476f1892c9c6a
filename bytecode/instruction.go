package bytecode

import (
	"github.com/quillscript/quill/op"
)

// Instruction is the fixed instruction format. Which operands are used
// depends on the opcode (see op.Info):
//
//   - A, B: input operands
//   - Out: the destination
//   - Index: a pool index, a label, or a nested range length
//   - Index2: a second index or length
type Instruction struct {
	Op     op.Code
	A      Readable
	B      Readable
	Out    Writable
	Index  uint32
	Index2 uint32
}
