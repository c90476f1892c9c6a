package object

import (
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// Dict is an immutable insertion-ordered map from strings to values.
type Dict struct {
	keys   []string
	values map[string]Value
}

// NewDict creates an empty dictionary.
func NewDict() *Dict {
	return &Dict{values: map[string]Value{}}
}

// DictOf builds a dictionary from alternating keys and values.
func DictOf(pairs ...any) *Dict {
	d := NewDict()
	for i := 0; i+1 < len(pairs); i += 2 {
		d = d.With(pairs[i].(string), pairs[i+1].(Value))
	}
	return d
}

func (d *Dict) Type() *Type { return DictType }

func (d *Dict) Repr() string {
	if len(d.keys) == 0 {
		return "(:)"
	}
	parts := make([]string, 0, len(d.keys))
	for _, k := range d.keys {
		parts = append(parts, reprKey(k)+": "+d.values[k].Repr())
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func reprKey(k string) string {
	if IsIdent(k) {
		return k
	}
	return strconv.Quote(k)
}

// IsIdent reports whether s is a valid identifier: a letter or underscore
// followed by letters, digits, underscores and hyphens.
func IsIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case unicode.IsLetter(r) || r == '_':
		case i > 0 && (unicode.IsDigit(r) || r == '-'):
		default:
			return false
		}
	}
	return true
}

// Len returns the number of entries.
func (d *Dict) Len() int { return len(d.keys) }

// Keys returns the keys in insertion order. Callers must not modify it.
func (d *Dict) Keys() []string { return d.keys }

// Get looks up a key.
func (d *Dict) Get(key string) (Value, bool) {
	v, ok := d.values[key]
	return v, ok
}

// At looks up a key or fails with a missing key error.
func (d *Dict) At(key string) (Value, error) {
	v, ok := d.values[key]
	if !ok {
		return nil, MissingKey(key)
	}
	return v, nil
}

// MissingKey is the error for a lookup of an absent key.
func MissingKey(key string) error {
	return errorf("dictionary does not contain key %s", strconv.Quote(key))
}

// With returns a copy with key set to v. Existing keys keep their position.
func (d *Dict) With(key string, v Value) *Dict {
	out := d.clone()
	if _, ok := out.values[key]; !ok {
		out.keys = append(out.keys, key)
	}
	out.values[key] = v
	return out
}

// Without returns a copy with key removed.
func (d *Dict) Without(key string) *Dict {
	if _, ok := d.values[key]; !ok {
		return d
	}
	out := d.clone()
	delete(out.values, key)
	out.keys = slices.DeleteFunc(out.keys, func(k string) bool { return k == key })
	return out
}

// Merge returns a copy with every entry of other applied on top.
func (d *Dict) Merge(other *Dict) *Dict {
	out := d.clone()
	for _, k := range other.keys {
		if _, ok := out.values[k]; !ok {
			out.keys = append(out.keys, k)
		}
		out.values[k] = other.values[k]
	}
	return out
}

func (d *Dict) clone() *Dict {
	out := &Dict{keys: slices.Clone(d.keys), values: make(map[string]Value, len(d.values)+1)}
	for k, v := range d.values {
		out.values[k] = v
	}
	return out
}

// Set stores v in place. It is only valid on a dictionary that is still
// being built and has not been shared yet.
func (d *Dict) Set(key string, v Value) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = v
}
