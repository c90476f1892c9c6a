package library

import (
	"context"
	"strings"

	"github.com/quillscript/quill/diag"
	"github.com/quillscript/quill/object"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func typeOf(ctx context.Context, args *object.Args) (object.Value, error) {
	v, err := one(args, "value")
	if err != nil {
		return nil, err
	}
	return v.Type(), nil
}

func repr(ctx context.Context, args *object.Args) (object.Value, error) {
	v, err := one(args, "value")
	if err != nil {
		return nil, err
	}
	return object.Str(v.Repr()), nil
}

// length returns the number of items of a collection. Strings are measured
// in bytes.
func length(ctx context.Context, args *object.Args) (object.Value, error) {
	v, err := one(args, "value")
	if err != nil {
		return nil, err
	}
	switch v := v.(type) {
	case object.Str:
		return object.Int(len(v)), nil
	case *object.Array:
		return object.Int(v.Len()), nil
	case *object.Dict:
		return object.Int(v.Len()), nil
	case *object.Args:
		return object.Int(len(v.Items)), nil
	}
	return nil, diag.New("len: expected string, array, dictionary, or arguments, found %s", v.Type())
}

// rangeOf is range(end) or range(start, end, step: 1).
func rangeOf(ctx context.Context, args *object.Args) (object.Value, error) {
	first, err := args.ExpectInt("end")
	if err != nil {
		return nil, err
	}
	start, end := int64(0), first
	if second, ok, err := args.EatInt(); err != nil {
		return nil, err
	} else if ok {
		start, end = first, second
	}
	step := int64(1)
	if v, ok := args.Named("step"); ok {
		if step, err = object.AsInt(v); err != nil {
			return nil, err
		}
	}
	if err := args.Finish(); err != nil {
		return nil, err
	}
	if step == 0 {
		return nil, diag.New("range: step must not be zero")
	}
	var items []object.Value
	for i := start; (step > 0 && i < end) || (step < 0 && i > end); i += step {
		items = append(items, object.Int(i))
	}
	return object.NewArray(items), nil
}

func upper(ctx context.Context, args *object.Args) (object.Value, error) {
	return convertCase(args, cases.Upper(language.Und))
}

func lower(ctx context.Context, args *object.Args) (object.Value, error) {
	return convertCase(args, cases.Lower(language.Und))
}

// Casers are stateful, so each call gets its own.
func convertCase(args *object.Args, caser cases.Caser) (object.Value, error) {
	v, err := one(args, "text")
	if err != nil {
		return nil, err
	}
	s, err := object.AsStr(v)
	if err != nil {
		return nil, err
	}
	return object.Str(caser.String(s)), nil
}

func panicked(ctx context.Context, args *object.Args) (object.Value, error) {
	values := args.Positional()
	if len(values) == 0 {
		return nil, diag.New("panicked")
	}
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, v.Repr())
	}
	return nil, diag.New("panicked with: %s", strings.Join(parts, ", "))
}

// newAssert builds `assert` and its members `assert.eq` and `assert.ne`.
// Each takes an optional named message replacing the default one.
func newAssert() *object.Native {
	assert := object.NewNative("assert", func(ctx context.Context, args *object.Args) (object.Value, error) {
		cond, err := args.Expect("condition")
		if err != nil {
			return nil, err
		}
		ok, err := object.AsBool(cond)
		if err != nil {
			return nil, err
		}
		return check(args, ok, "assertion failed")
	})
	assert.Scope().Define("eq", object.NewNative("eq", func(ctx context.Context, args *object.Args) (object.Value, error) {
		left, right, err := pair(args)
		if err != nil {
			return nil, err
		}
		return check(args, object.Equal(left, right),
			"equality assertion failed: value "+left.Repr()+" was not equal to "+right.Repr())
	}))
	assert.Scope().Define("ne", object.NewNative("ne", func(ctx context.Context, args *object.Args) (object.Value, error) {
		left, right, err := pair(args)
		if err != nil {
			return nil, err
		}
		return check(args, !object.Equal(left, right),
			"inequality assertion failed: value "+left.Repr()+" was equal to "+right.Repr())
	}))
	return assert
}

func pair(args *object.Args) (object.Value, object.Value, error) {
	left, err := args.Expect("left")
	if err != nil {
		return nil, nil, err
	}
	right, err := args.Expect("right")
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

func check(args *object.Args, ok bool, message string) (object.Value, error) {
	if v, given := args.Named("message"); given {
		s, err := object.AsStr(v)
		if err != nil {
			return nil, err
		}
		message = s
	}
	if err := args.Finish(); err != nil {
		return nil, err
	}
	if !ok {
		return nil, diag.New("%s", message)
	}
	return object.None, nil
}
