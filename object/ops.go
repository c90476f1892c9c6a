package object

import (
	"math"
	"strings"
)

func tooLarge() error {
	return errorf("value is too large")
}

// Pos applies unary plus.
func Pos(v Value) (Value, error) {
	switch v.(type) {
	case Int, Float:
		return v, nil
	}
	return nil, errorf("cannot apply unary '+' to %s", v.Type())
}

// Neg negates a number.
func Neg(v Value) (Value, error) {
	switch v := v.(type) {
	case Int:
		if v == math.MinInt64 {
			return nil, tooLarge()
		}
		return -v, nil
	case Float:
		return -v, nil
	}
	return nil, errorf("cannot apply '-' to %s", v.Type())
}

// Not negates a boolean.
func Not(v Value) (Value, error) {
	if b, ok := v.(Bool); ok {
		return !b, nil
	}
	return nil, errorf("cannot apply 'not' to %s", v.Type())
}

// Add adds two values. none is neutral.
func Add(a, b Value) (Value, error) {
	switch a := a.(type) {
	case *NoneValue:
		return b, nil
	case Int:
		switch b := b.(type) {
		case Int:
			r := a + b
			if (a > 0 && b > 0 && r < 0) || (a < 0 && b < 0 && r >= 0) {
				return nil, tooLarge()
			}
			return r, nil
		case Float:
			return Float(a) + b, nil
		}
	case Float:
		switch b := b.(type) {
		case Int:
			return a + Float(b), nil
		case Float:
			return a + b, nil
		}
	case Str:
		if b, ok := b.(Str); ok {
			return a + b, nil
		}
	case *Array:
		if b, ok := b.(*Array); ok {
			return a.Concat(b), nil
		}
	case *Dict:
		if b, ok := b.(*Dict); ok {
			return a.Merge(b), nil
		}
	}
	if _, ok := b.(*NoneValue); ok {
		return a, nil
	}
	return nil, errorf("cannot add %s and %s", a.Type(), b.Type())
}

// Sub subtracts b from a.
func Sub(a, b Value) (Value, error) {
	switch a := a.(type) {
	case Int:
		switch b := b.(type) {
		case Int:
			r := a - b
			if (a >= 0 && b < 0 && r < 0) || (a < 0 && b > 0 && r >= 0) {
				return nil, tooLarge()
			}
			return r, nil
		case Float:
			return Float(a) - b, nil
		}
	case Float:
		switch b := b.(type) {
		case Int:
			return a - Float(b), nil
		case Float:
			return a - b, nil
		}
	}
	return nil, errorf("cannot subtract %s from %s", b.Type(), a.Type())
}

// Mul multiplies two values. Strings and arrays repeat when multiplied by
// an integer.
func Mul(a, b Value) (Value, error) {
	switch a := a.(type) {
	case Int:
		switch b := b.(type) {
		case Int:
			if a != 0 {
				r := a * b
				if r/a != b || (a == -1 && b == math.MinInt64) {
					return nil, tooLarge()
				}
				return r, nil
			}
			return Int(0), nil
		case Float:
			return Float(a) * b, nil
		case Str:
			return repeatStr(b, a)
		case *Array:
			return b.Repeat(int64(a))
		}
	case Float:
		switch b := b.(type) {
		case Int:
			return a * Float(b), nil
		case Float:
			return a * b, nil
		}
	case Str:
		if b, ok := b.(Int); ok {
			return repeatStr(a, b)
		}
	case *Array:
		if b, ok := b.(Int); ok {
			return a.Repeat(int64(b))
		}
	}
	return nil, errorf("cannot multiply %s with %s", a.Type(), b.Type())
}

func repeatStr(s Str, n Int) (Value, error) {
	if n < 0 {
		return nil, errorf("number must be at least zero")
	}
	return Str(strings.Repeat(string(s), int(n))), nil
}

// Div divides two numbers. The result is always a float.
func Div(a, b Value) (Value, error) {
	x, xerr := AsFloat(a)
	y, yerr := AsFloat(b)
	if xerr != nil || yerr != nil {
		return nil, errorf("cannot divide %s by %s", a.Type(), b.Type())
	}
	if y == 0 {
		return nil, errorf("cannot divide by zero")
	}
	return Float(x / y), nil
}

// Equal reports structural equality. Integers and floats compare by value.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case *NoneValue:
		_, ok := b.(*NoneValue)
		return ok
	case *AutoValue:
		_, ok := b.(*AutoValue)
		return ok
	case Bool:
		b, ok := b.(Bool)
		return ok && a == b
	case Int:
		switch b := b.(type) {
		case Int:
			return a == b
		case Float:
			return Float(a) == b
		}
		return false
	case Float:
		switch b := b.(type) {
		case Int:
			return a == Float(b)
		case Float:
			return a == b
		}
		return false
	case Str:
		b, ok := b.(Str)
		return ok && a == b
	case *Array:
		b, ok := b.(*Array)
		if !ok || a.Len() != b.Len() {
			return false
		}
		for i, item := range a.items {
			if !Equal(item, b.items[i]) {
				return false
			}
		}
		return true
	case *Dict:
		b, ok := b.(*Dict)
		if !ok || a.Len() != b.Len() {
			return false
		}
		for _, k := range a.keys {
			other, ok := b.values[k]
			if !ok || !Equal(a.values[k], other) {
				return false
			}
		}
		return true
	case *Args:
		b, ok := b.(*Args)
		if !ok || len(a.Items) != len(b.Items) {
			return false
		}
		for i, item := range a.Items {
			if item.Name != b.Items[i].Name || !Equal(item.Value, b.Items[i].Value) {
				return false
			}
		}
		return true
	}
	return a == b
}

// Compare orders two numbers or two strings.
func Compare(a, b Value) (int, error) {
	switch a := a.(type) {
	case Int:
		if b, ok := b.(Int); ok {
			return cmp3(a, b), nil
		}
	case Str:
		if b, ok := b.(Str); ok {
			return strings.Compare(string(a), string(b)), nil
		}
	case Bool:
		if b, ok := b.(Bool); ok {
			return cmp3(boolInt(a), boolInt(b)), nil
		}
	}
	x, xerr := AsFloat(a)
	y, yerr := AsFloat(b)
	if xerr == nil && yerr == nil {
		return cmp3(x, y), nil
	}
	return 0, errorf("cannot compare %s with %s", a.Repr(), b.Repr())
}

func boolInt(b Bool) int {
	if b {
		return 1
	}
	return 0
}

func cmp3[T int | Int | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// In reports whether a is contained in b.
func In(a, b Value) (bool, error) {
	switch b := b.(type) {
	case Str:
		if a, ok := a.(Str); ok {
			return strings.Contains(string(b), string(a)), nil
		}
	case *Dict:
		if a, ok := a.(Str); ok {
			_, found := b.Get(string(a))
			return found, nil
		}
	case *Array:
		return b.Contains(a), nil
	}
	return false, errorf("cannot apply 'in' to %s and %s", a.Type(), b.Type())
}

// Join combines the values of consecutive statements in a code block.
func Join(a, b Value) (Value, error) {
	switch a := a.(type) {
	case *NoneValue:
		return b, nil
	case Str:
		if b, ok := b.(Str); ok {
			return a + b, nil
		}
	case *Array:
		if b, ok := b.(*Array); ok {
			return a.Concat(b), nil
		}
	case *Dict:
		if b, ok := b.(*Dict); ok {
			return a.Merge(b), nil
		}
	}
	if _, ok := b.(*NoneValue); ok {
		return a, nil
	}
	return nil, errorf("cannot join %s with %s", a.Type(), b.Type())
}
