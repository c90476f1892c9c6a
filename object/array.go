package object

import (
	"strings"
)

// Array is an immutable sequence of values.
type Array struct {
	items []Value
}

// NewArray creates an array that takes ownership of items.
func NewArray(items []Value) *Array {
	return &Array{items: items}
}

func (a *Array) Type() *Type { return ArrayType }

func (a *Array) Repr() string {
	parts := make([]string, 0, len(a.items))
	for _, item := range a.items {
		parts = append(parts, item.Repr())
	}
	if len(parts) == 1 {
		return "(" + parts[0] + ",)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Len returns the number of items.
func (a *Array) Len() int { return len(a.items) }

// Items returns the backing slice. Callers must not modify it.
func (a *Array) Items() []Value { return a.items }

// index resolves a possibly negative index.
func (a *Array) index(i int64) (int, error) {
	n := int64(len(a.items))
	idx := i
	if idx < 0 {
		idx += n
	}
	if idx < 0 || idx >= n {
		return 0, outOfBounds(i, n)
	}
	return int(idx), nil
}

func outOfBounds(i, n int64) error {
	if n == 0 {
		return errorf("array index out of bounds (index: %d, len: 0)", i)
	}
	return errorf("array index out of bounds (index: %d, len: %d)", i, n)
}

// At returns the item at index i. Negative indices count from the end.
func (a *Array) At(i int64) (Value, error) {
	idx, err := a.index(i)
	if err != nil {
		return nil, err
	}
	return a.items[idx], nil
}

// With returns a copy of the array with item i replaced.
func (a *Array) With(i int64, v Value) (*Array, error) {
	idx, err := a.index(i)
	if err != nil {
		return nil, err
	}
	items := a.clone(0)
	items[idx] = v
	return NewArray(items), nil
}

// Push returns a copy of the array with v appended.
func (a *Array) Push(v Value) *Array {
	return NewArray(append(a.clone(1), v))
}

// Concat returns a new array holding the items of a followed by b.
func (a *Array) Concat(b *Array) *Array {
	return NewArray(append(a.clone(b.Len()), b.items...))
}

// Slice returns the items in [start, end).
func (a *Array) Slice(start, end int) *Array {
	items := make([]Value, end-start)
	copy(items, a.items[start:end])
	return NewArray(items)
}

func (a *Array) clone(extra int) []Value {
	items := make([]Value, len(a.items), len(a.items)+extra)
	copy(items, a.items)
	return items
}

// Contains reports whether an item equal to v is in the array.
func (a *Array) Contains(v Value) bool {
	for _, item := range a.items {
		if Equal(item, v) {
			return true
		}
	}
	return false
}

// Repeat returns the array concatenated n times.
func (a *Array) Repeat(n int64) (*Array, error) {
	if n < 0 {
		return nil, errorf("number must be at least zero")
	}
	items := make([]Value, 0, len(a.items)*int(n))
	for i := int64(0); i < n; i++ {
		items = append(items, a.items...)
	}
	return NewArray(items), nil
}

// Append adds v in place. It is only valid on an array that is still
// being built and has not been shared yet.
func (a *Array) Append(v Value) {
	a.items = append(a.items, v)
}

// Extend adds items in place, under the same rules as Append.
func (a *Array) Extend(items []Value) {
	a.items = append(a.items, items...)
}
