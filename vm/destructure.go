package vm

import (
	"context"
	"fmt"

	"github.com/quillscript/quill/bytecode"
	"github.com/quillscript/quill/diag"
	"github.com/quillscript/quill/object"
)

// destructure binds value to the targets of a pattern.
func (m *Machine) destructure(ctx context.Context, st *state, f *frame, p *bytecode.Pattern, value object.Value) error {
	switch p.Kind {
	case bytecode.PatternSingle:
		return m.write(ctx, st, f, p.Target, value)
	case bytecode.PatternPlaceholder:
		return nil
	}
	switch v := value.(type) {
	case *object.Array:
		return m.destructureArray(ctx, st, f, p, v)
	case *object.Dict:
		return m.destructureDict(ctx, st, f, p, v)
	}
	return diag.Errorf(p.Span, "cannot destructure %s", value.Type())
}

func (m *Machine) destructureArray(ctx context.Context, st *state, f *frame, p *bytecode.Pattern, arr *object.Array) error {
	items := arr.Items()
	n := len(items)
	i := 0
	for _, item := range p.Items {
		item := item
		switch item.Kind {
		case bytecode.ItemPlaceholder, bytecode.ItemSimple, bytecode.ItemNested:
			if i >= n {
				return wrongLength(p, n)
			}
			if err := m.bindItem(ctx, st, f, item.Kind, &item, items[i]); err != nil {
				return err
			}
			i++
		case bytecode.ItemSpread, bytecode.ItemSpreadDiscard:
			sink := (1 + n) - len(p.Items)
			if sink < 0 || i+sink > n {
				return wrongLength(p, n)
			}
			if item.Kind == bytecode.ItemSpread {
				if err := m.write(ctx, st, f, item.Target, arr.Slice(i, i+sink)); err != nil {
					return err
				}
			}
			i += sink
		case bytecode.ItemNamed:
			return diag.Errorf(item.Span, "cannot destructure named pattern from an array")
		}
	}
	if i < n {
		return wrongLength(p, n)
	}
	return nil
}

func (m *Machine) destructureDict(ctx context.Context, st *state, f *frame, p *bytecode.Pattern, dict *object.Dict) error {
	used := map[string]bool{}
	var sink *bytecode.PatternItem
	for idx := range p.Items {
		item := &p.Items[idx]
		switch item.Kind {
		case bytecode.ItemPlaceholder:
		case bytecode.ItemSimple:
			if item.Key == "" {
				return diag.Errorf(item.Span, "cannot destructure unnamed pattern from a dictionary")
			}
			v, ok := dict.Get(item.Key)
			if !ok {
				return diag.At(item.Span, object.MissingKey(item.Key))
			}
			if err := m.write(ctx, st, f, item.Target, v); err != nil {
				return err
			}
			used[item.Key] = true
		case bytecode.ItemNested:
			return diag.Errorf(item.Span, "cannot destructure unnamed pattern from a dictionary")
		case bytecode.ItemNamed:
			v, ok := dict.Get(item.Key)
			if !ok {
				return diag.At(item.Span, object.MissingKey(item.Key))
			}
			if err := m.bindItem(ctx, st, f, item.Inner, item, v); err != nil {
				return err
			}
			used[item.Key] = true
		case bytecode.ItemSpread, bytecode.ItemSpreadDiscard:
			sink = item
		}
	}
	if sink == nil || sink.Kind == bytecode.ItemSpreadDiscard {
		return nil
	}
	rest := object.NewDict()
	for _, k := range dict.Keys() {
		if !used[k] {
			v, _ := dict.Get(k)
			rest.Set(k, v)
		}
	}
	return m.write(ctx, st, f, sink.Target, rest)
}

// bindItem binds v according to kind, which is the item's own kind or, for
// named items, the kind of the pattern the name maps to.
func (m *Machine) bindItem(ctx context.Context, st *state, f *frame, kind bytecode.PatternItemKind, item *bytecode.PatternItem, v object.Value) error {
	switch kind {
	case bytecode.ItemPlaceholder:
		return nil
	case bytecode.ItemSimple:
		return m.write(ctx, st, f, item.Target, v)
	case bytecode.ItemNested:
		return m.destructure(ctx, st, f, f.unit.PatternAt(item.Pattern), v)
	}
	return diag.Errorf(item.Span, "invalid pattern item")
}

// wrongLength reports an array whose length does not fit the pattern.
func wrongLength(p *bytecode.Pattern, n int) error {
	count := 0
	spread := false
	for _, item := range p.Items {
		switch item.Kind {
		case bytecode.ItemSpread, bytecode.ItemSpreadDiscard:
			spread = true
		case bytecode.ItemNamed:
		default:
			count++
		}
	}
	quantifier := "not enough"
	if n > count {
		quantifier = "too many"
	}
	var expected string
	switch {
	case spread && count == 1:
		expected = "at least 1 element"
	case spread:
		expected = fmt.Sprintf("at least %d elements", count)
	case count == 0:
		expected = "an empty array"
	case count == 1:
		expected = "a single element"
	default:
		expected = fmt.Sprintf("%d elements", count)
	}
	return diag.Errorf(p.Span, "%s elements to destructure", quantifier).
		WithHint("the provided array has a length of %d, but the pattern expects %s", n, expected)
}
