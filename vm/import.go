package vm

import (
	"context"

	"github.com/quillscript/quill/ast"
	"github.com/quillscript/quill/diag"
	"github.com/quillscript/quill/object"
)

// importValue turns the source of a dynamic import or include into a
// module. Paths go through the importer; modules are used as they are;
// types and functions with members are viewed as modules of their
// members.
func (m *Machine) importValue(ctx context.Context, f *frame, pc int, source object.Value) (*object.Module, error) {
	span := f.unit.SpanAt(pc)
	switch v := source.(type) {
	case object.Str:
		if m.importer == nil {
			return nil, diag.Errorf(span, "cannot import `%s`: no importer is configured", string(v))
		}
		return m.importer.Import(ctx, span, string(v))
	case *object.Module:
		return v, nil
	case *object.Type:
		return object.NewModule(v.Name(), ast.FileID{}, v.Scope(), nil), nil
	case object.Func:
		if scoped, ok := v.(object.Scoped); ok {
			return object.NewModule(v.Name(), ast.FileID{}, scoped.Scope(), nil), nil
		}
	}
	return nil, diag.Errorf(span, "expected path, module, function, or type, found %s", source.Type())
}
