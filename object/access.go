package object

import (
	"github.com/quillscript/quill/diag"
)

// Modifier computes a new value from the old value of a place.
type Modifier func(old Value) (Value, error)

// ModifyField updates the field name of target and returns the new target.
// Only dictionary entries that already exist can be updated this way.
func ModifyField(target Value, name string, f Modifier) (Value, error) {
	d, ok := target.(*Dict)
	if !ok {
		return nil, errorf("fields on %s are not yet mutable", target.Type())
	}
	old, ok := d.Get(name)
	if !ok {
		err := MissingKey(name).(*diag.Diagnostic)
		return nil, err.WithHint("use `insert` to add or update values")
	}
	v, err := f(old)
	if err != nil {
		return nil, err
	}
	return d.With(name, v), nil
}

// ModifyAccessor updates the place selected by an accessor method call
// (`at`, `first` or `last`) and returns the new target.
func ModifyAccessor(target Value, method string, args *Args, f Modifier) (Value, error) {
	switch t := target.(type) {
	case *Array:
		var i int64
		switch method {
		case "at":
			idx, err := args.ExpectInt("index")
			if err != nil {
				return nil, err
			}
			i = idx
		case "first":
			i = 0
		case "last":
			i = -1
		default:
			return nil, errorf("cannot mutate the result of `%s`", method)
		}
		if err := args.Finish(); err != nil {
			return nil, err
		}
		if t.Len() == 0 && method != "at" {
			return nil, errorf("array is empty")
		}
		old, err := t.At(i)
		if err != nil {
			return nil, err
		}
		v, err := f(old)
		if err != nil {
			return nil, err
		}
		return t.With(i, v)
	case *Dict:
		if method != "at" {
			return nil, errorf("type dictionary has no method `%s`", method)
		}
		key, err := args.ExpectStr("key")
		if err != nil {
			return nil, err
		}
		if err := args.Finish(); err != nil {
			return nil, err
		}
		return ModifyField(t, key, f)
	}
	return nil, errorf("cannot mutate the result of `%s` on %s", method, target.Type())
}
