package object

import (
	"context"
	"slices"
)

func init() {
	arrayMethods.Define("len").
		Doc("Number of items").
		Impl(func(a *Array, ctx context.Context, args *Args) (Value, error) {
			return finished[Value](args, Int(a.Len()))
		})

	arrayMethods.Define("at").
		Doc("Item at an index, or the default if out of bounds").
		Impl(func(a *Array, ctx context.Context, args *Args) (Value, error) {
			i, err := args.ExpectInt("index")
			if err != nil {
				return nil, err
			}
			def, hasDef := args.Named("default")
			if err := args.Finish(); err != nil {
				return nil, err
			}
			v, err := a.At(i)
			if err != nil && hasDef {
				return def, nil
			}
			return v, err
		})

	arrayMethods.Define("first").
		Doc("First item").
		Impl(func(a *Array, ctx context.Context, args *Args) (Value, error) {
			if err := args.Finish(); err != nil {
				return nil, err
			}
			if a.Len() == 0 {
				return nil, errorf("array is empty")
			}
			return a.items[0], nil
		})

	arrayMethods.Define("last").
		Doc("Last item").
		Impl(func(a *Array, ctx context.Context, args *Args) (Value, error) {
			if err := args.Finish(); err != nil {
				return nil, err
			}
			if a.Len() == 0 {
				return nil, errorf("array is empty")
			}
			return a.items[a.Len()-1], nil
		})

	arrayMethods.Define("push").
		Doc("Append an item").
		Mutate(func(a *Array, ctx context.Context, args *Args) (*Array, Value, error) {
			v, err := args.Expect("value")
			if err != nil {
				return a, nil, err
			}
			if err := args.Finish(); err != nil {
				return a, nil, err
			}
			return a.Push(v), None, nil
		})

	arrayMethods.Define("pop").
		Doc("Remove and return the last item").
		Mutate(func(a *Array, ctx context.Context, args *Args) (*Array, Value, error) {
			if err := args.Finish(); err != nil {
				return a, nil, err
			}
			if a.Len() == 0 {
				return a, nil, errorf("array is empty")
			}
			return a.Slice(0, a.Len()-1), a.items[a.Len()-1], nil
		})

	arrayMethods.Define("insert").
		Doc("Insert an item before an index").
		Mutate(func(a *Array, ctx context.Context, args *Args) (*Array, Value, error) {
			i, err := args.ExpectInt("index")
			if err != nil {
				return a, nil, err
			}
			v, err := args.Expect("value")
			if err != nil {
				return a, nil, err
			}
			if err := args.Finish(); err != nil {
				return a, nil, err
			}
			n := int64(a.Len())
			idx := i
			if idx < 0 {
				idx += n
			}
			if idx < 0 || idx > n {
				return a, nil, outOfBounds(i, n)
			}
			return NewArray(slices.Insert(a.clone(1), int(idx), v)), None, nil
		})

	arrayMethods.Define("remove").
		Doc("Remove and return the item at an index").
		Mutate(func(a *Array, ctx context.Context, args *Args) (*Array, Value, error) {
			i, err := args.ExpectInt("index")
			if err != nil {
				return a, nil, err
			}
			if err := args.Finish(); err != nil {
				return a, nil, err
			}
			idx, err := a.index(i)
			if err != nil {
				return a, nil, err
			}
			return NewArray(slices.Delete(a.clone(0), idx, idx+1)), a.items[idx], nil
		})

	arrayMethods.Define("slice").
		Doc("Items from start up to (excluding) end").
		Impl(func(a *Array, ctx context.Context, args *Args) (Value, error) {
			start, err := args.ExpectInt("start")
			if err != nil {
				return nil, err
			}
			end, hasEnd, err := args.EatInt()
			if err != nil {
				return nil, err
			}
			if err := args.Finish(); err != nil {
				return nil, err
			}
			n := int64(a.Len())
			if !hasEnd {
				end = n
			}
			s, e := start, end
			if s < 0 {
				s += n
			}
			if e < 0 {
				e += n
			}
			if s < 0 || s > n {
				return nil, outOfBounds(start, n)
			}
			if e < s || e > n {
				return nil, outOfBounds(end, n)
			}
			return a.Slice(int(s), int(e)), nil
		})

	arrayMethods.Define("contains").
		Doc("Whether an item is in the array").
		Impl(func(a *Array, ctx context.Context, args *Args) (Value, error) {
			v, err := args.Expect("value")
			if err != nil {
				return nil, err
			}
			return finished[Value](args, Bool(a.Contains(v)))
		})

	arrayMethods.Define("rev").
		Doc("Items in reverse order").
		Impl(func(a *Array, ctx context.Context, args *Args) (Value, error) {
			items := a.clone(0)
			slices.Reverse(items)
			return finished[Value](args, NewArray(items))
		})

	arrayMethods.Define("join").
		Doc("Join all items, with an optional separator between them").
		Impl(func(a *Array, ctx context.Context, args *Args) (Value, error) {
			sep, hasSep := args.Eat()
			if err := args.Finish(); err != nil {
				return nil, err
			}
			var out Value = None
			for i, item := range a.items {
				var err error
				if i > 0 && hasSep {
					if out, err = Join(out, sep); err != nil {
						return nil, err
					}
				}
				if out, err = Join(out, item); err != nil {
					return nil, err
				}
			}
			return out, nil
		})

	arrayMethods.Define("map").
		Doc("Apply a function to every item").
		Impl(func(a *Array, ctx context.Context, args *Args) (Value, error) {
			fn, err := args.ExpectFunc("mapper")
			if err != nil {
				return nil, err
			}
			if err := args.Finish(); err != nil {
				return nil, err
			}
			out := make([]Value, 0, a.Len())
			for _, item := range a.items {
				v, err := fn.Call(ctx, NewArgs(args.Span, item))
				if err != nil {
					return nil, err
				}
				out = append(out, v)
			}
			return NewArray(out), nil
		})

	arrayMethods.Define("filter").
		Doc("Keep the items for which a function returns true").
		Impl(func(a *Array, ctx context.Context, args *Args) (Value, error) {
			fn, err := args.ExpectFunc("test")
			if err != nil {
				return nil, err
			}
			if err := args.Finish(); err != nil {
				return nil, err
			}
			var out []Value
			for _, item := range a.items {
				v, err := fn.Call(ctx, NewArgs(args.Span, item))
				if err != nil {
					return nil, err
				}
				keep, err := AsBool(v)
				if err != nil {
					return nil, err
				}
				if keep {
					out = append(out, item)
				}
			}
			return NewArray(out), nil
		})

	arrayMethods.Define("fold").
		Doc("Combine all items into one value, starting from an initial value").
		Impl(func(a *Array, ctx context.Context, args *Args) (Value, error) {
			acc, err := args.Expect("init")
			if err != nil {
				return nil, err
			}
			fn, err := args.ExpectFunc("folder")
			if err != nil {
				return nil, err
			}
			if err := args.Finish(); err != nil {
				return nil, err
			}
			for _, item := range a.items {
				if acc, err = fn.Call(ctx, NewArgs(args.Span, acc, item)); err != nil {
					return nil, err
				}
			}
			return acc, nil
		})

	arrayMethods.Define("sum").
		Doc("Sum of all items").
		Impl(func(a *Array, ctx context.Context, args *Args) (Value, error) {
			def, hasDef := args.Named("default")
			if err := args.Finish(); err != nil {
				return nil, err
			}
			if a.Len() == 0 {
				if hasDef {
					return def, nil
				}
				return nil, errorf("cannot calculate sum of empty array with no default")
			}
			acc := a.items[0]
			for _, item := range a.items[1:] {
				var err error
				if acc, err = Add(acc, item); err != nil {
					return nil, err
				}
			}
			return acc, nil
		})

	arrayMethods.Define("enumerate").
		Doc("Pairs of index and item").
		Impl(func(a *Array, ctx context.Context, args *Args) (Value, error) {
			out := make([]Value, 0, a.Len())
			for i, item := range a.items {
				out = append(out, NewArray([]Value{Int(i), item}))
			}
			return finished[Value](args, NewArray(out))
		})
}
