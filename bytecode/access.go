package bytecode

import (
	"github.com/quillscript/quill/ast"
	"github.com/quillscript/quill/object"
)

// AccessKind is the closed set of places a value can live.
type AccessKind uint8

const (
	// AccessReadable is a value in a register, a pool or the library.
	AccessReadable AccessKind = iota
	// AccessRegister is a register that can be written.
	AccessRegister
	// AccessModule is a member of a module known at compile time.
	AccessModule
	// AccessFunc is a member of a function scope, e.g. `assert.eq`.
	AccessFunc
	// AccessValue is a raw constant.
	AccessValue
	// AccessType is a static member of a type.
	AccessType
	// AccessChained is a field of another access: `a.b.c`.
	AccessChained
	// AccessMethod is an accessor method applied to another access:
	// `a.at(0)`, `a.first()`, `a.last()`.
	AccessMethod
)

var accessKindNames = [...]string{
	AccessReadable: "readable",
	AccessRegister: "register",
	AccessModule:   "module",
	AccessFunc:     "func",
	AccessValue:    "value",
	AccessType:     "type",
	AccessChained:  "chained",
	AccessMethod:   "method",
}

func (k AccessKind) String() string {
	if int(k) < len(accessKindNames) {
		return accessKindNames[k]
	}
	return "?"
}

// Access describes a place. Which fields are set depends on Kind:
//
//   - AccessReadable: Readable
//   - AccessRegister: Register
//   - AccessModule, AccessFunc, AccessType: Value (the container), Name
//   - AccessValue: Value
//   - AccessChained: Base (access index), Name (field)
//   - AccessMethod: Base, Name (method), Args (arguments value)
type Access struct {
	Kind     AccessKind
	Span     ast.Span
	Readable Readable
	Register Register
	Value    object.Value
	Base     int
	Name     string
	Args     Readable
}
