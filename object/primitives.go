package object

import (
	"math"
	"strconv"
	"strings"

	"github.com/quillscript/quill/diag"
)

// NoneValue is the type of None.
type NoneValue struct{}

// AutoValue is the type of Auto.
type AutoValue struct{}

var (
	None Value = &NoneValue{}
	Auto Value = &AutoValue{}
)

func (*NoneValue) Type() *Type  { return NoneType }
func (*NoneValue) Repr() string { return "none" }

func (*AutoValue) Type() *Type  { return AutoType }
func (*AutoValue) Repr() string { return "auto" }

// Bool is a boolean value.
type Bool bool

func (b Bool) Type() *Type  { return BoolType }
func (b Bool) Repr() string { return strconv.FormatBool(bool(b)) }

// Int is a 64-bit signed integer.
type Int int64

func (i Int) Type() *Type  { return IntType }
func (i Int) Repr() string { return strconv.FormatInt(int64(i), 10) }

// Float is a 64-bit floating point number.
type Float float64

func (f Float) Type() *Type { return FloatType }

func (f Float) Repr() string {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// Str is a string value.
type Str string

func (s Str) Type() *Type  { return StrType }
func (s Str) Repr() string { return strconv.Quote(string(s)) }

// NewBool returns the Bool for b.
func NewBool(b bool) Bool { return Bool(b) }

func errorf(format string, args ...any) error {
	return diag.New(format, args...)
}

// Display returns the text form of a value as used by `str()`: strings
// are unquoted, everything else uses its representation.
func Display(v Value) string {
	if s, ok := v.(Str); ok {
		return string(s)
	}
	return v.Repr()
}

// AsBool returns v as a Go bool or fails with a type error.
func AsBool(v Value) (bool, error) {
	b, ok := v.(Bool)
	if !ok {
		return false, errorf("expected boolean, found %s", v.Type())
	}
	return bool(b), nil
}

// AsInt returns v as a Go int64 or fails with a type error.
func AsInt(v Value) (int64, error) {
	i, ok := v.(Int)
	if !ok {
		return 0, errorf("expected integer, found %s", v.Type())
	}
	return int64(i), nil
}

// AsStr returns v as a Go string or fails with a type error.
func AsStr(v Value) (string, error) {
	s, ok := v.(Str)
	if !ok {
		return "", errorf("expected string, found %s", v.Type())
	}
	return string(s), nil
}

// AsFloat widens integers and returns v as a Go float64.
func AsFloat(v Value) (float64, error) {
	switch v := v.(type) {
	case Int:
		return float64(v), nil
	case Float:
		return float64(v), nil
	}
	return 0, errorf("expected integer or float, found %s", v.Type())
}
