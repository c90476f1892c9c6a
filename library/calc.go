package library

import (
	"context"
	"math"

	"github.com/quillscript/quill/ast"
	"github.com/quillscript/quill/diag"
	"github.com/quillscript/quill/object"
)

// newCalc builds the calc module.
func newCalc() *object.Module {
	s := object.NewScope()
	s.Define("abs", object.NewNative("abs", abs))
	s.Define("min", object.NewNative("min", func(ctx context.Context, args *object.Args) (object.Value, error) {
		return extremum(args, "min", -1)
	}))
	s.Define("max", object.NewNative("max", func(ctx context.Context, args *object.Args) (object.Value, error) {
		return extremum(args, "max", 1)
	}))
	s.Define("pow", object.NewNative("pow", pow))
	s.Define("rem", object.NewNative("rem", rem))
	return object.NewModule("calc", ast.FileID{}, s, nil)
}

func abs(ctx context.Context, args *object.Args) (object.Value, error) {
	v, err := one(args, "value")
	if err != nil {
		return nil, err
	}
	switch v := v.(type) {
	case object.Int:
		if v < 0 {
			if v == math.MinInt64 {
				return nil, diag.New("the result is too large")
			}
			return -v, nil
		}
		return v, nil
	case object.Float:
		return object.Float(math.Abs(float64(v))), nil
	}
	return nil, diag.New("calc.abs: expected integer or float, found %s", v.Type())
}

// extremum returns the smallest (sign -1) or largest (sign 1) of at least
// one comparable value.
func extremum(args *object.Args, name string, sign int) (object.Value, error) {
	values := args.Positional()
	if len(values) == 0 {
		return nil, diag.New("calc.%s: expected at least one value", name)
	}
	best := values[0]
	for _, v := range values[1:] {
		c, err := object.Compare(v, best)
		if err != nil {
			return nil, err
		}
		if c*sign > 0 {
			best = v
		}
	}
	return best, nil
}

func pow(ctx context.Context, args *object.Args) (object.Value, error) {
	base, err := args.Expect("base")
	if err != nil {
		return nil, err
	}
	exp, err := args.Expect("exponent")
	if err != nil {
		return nil, err
	}
	if err := args.Finish(); err != nil {
		return nil, err
	}
	b, bInt := base.(object.Int)
	e, eInt := exp.(object.Int)
	if bInt && eInt && e >= 0 {
		result := int64(1)
		for i := int64(0); i < int64(e); i++ {
			next := result * int64(b)
			if b != 0 && next/int64(b) != result {
				return nil, diag.New("the result is too large")
			}
			result = next
		}
		return object.Int(result), nil
	}
	bf, err := object.AsFloat(base)
	if err != nil {
		return nil, err
	}
	ef, err := object.AsFloat(exp)
	if err != nil {
		return nil, err
	}
	return object.Float(math.Pow(bf, ef)), nil
}

func rem(ctx context.Context, args *object.Args) (object.Value, error) {
	dividend, err := args.Expect("dividend")
	if err != nil {
		return nil, err
	}
	divisor, err := args.Expect("divisor")
	if err != nil {
		return nil, err
	}
	if err := args.Finish(); err != nil {
		return nil, err
	}
	a, aInt := dividend.(object.Int)
	b, bInt := divisor.(object.Int)
	if aInt && bInt {
		if b == 0 {
			return nil, diag.New("divisor must not be zero")
		}
		return a % b, nil
	}
	af, err := object.AsFloat(dividend)
	if err != nil {
		return nil, err
	}
	bf, err := object.AsFloat(divisor)
	if err != nil {
		return nil, err
	}
	if bf == 0 {
		return nil, diag.New("divisor must not be zero")
	}
	return object.Float(math.Mod(af, bf)), nil
}
