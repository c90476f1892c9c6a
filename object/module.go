package object

import (
	"github.com/quillscript/quill/ast"
)

// Module is an evaluated source file: its exported bindings and the
// content its top level produced.
type Module struct {
	name    string
	file    ast.FileID
	scope   *Scope
	content Value
}

// NewModule creates a module.
func NewModule(name string, file ast.FileID, scope *Scope, content Value) *Module {
	if scope == nil {
		scope = NewScope()
	}
	if content == nil {
		content = None
	}
	return &Module{name: name, file: file, scope: scope, content: content}
}

func (m *Module) Type() *Type      { return ModuleType }
func (m *Module) Repr() string     { return "<module " + m.name + ">" }
func (m *Module) Name() string     { return m.name }
func (m *Module) File() ast.FileID { return m.file }
func (m *Module) Scope() *Scope    { return m.scope }
func (m *Module) Content() Value   { return m.content }

// WithName returns a copy of the module bound under a different name.
func (m *Module) WithName(name string) *Module {
	out := *m
	out.name = name
	return &out
}
