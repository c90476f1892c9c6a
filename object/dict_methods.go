package object

import (
	"context"
)

func init() {
	dictMethods.Define("len").
		Doc("Number of entries").
		Impl(func(d *Dict, ctx context.Context, args *Args) (Value, error) {
			return finished[Value](args, Int(d.Len()))
		})

	dictMethods.Define("at").
		Doc("Value for a key, or the default if the key is missing").
		Impl(func(d *Dict, ctx context.Context, args *Args) (Value, error) {
			key, err := args.ExpectStr("key")
			if err != nil {
				return nil, err
			}
			def, hasDef := args.Named("default")
			if err := args.Finish(); err != nil {
				return nil, err
			}
			if v, ok := d.Get(key); ok {
				return v, nil
			}
			if hasDef {
				return def, nil
			}
			return nil, MissingKey(key)
		})

	dictMethods.Define("insert").
		Doc("Insert or replace an entry").
		Mutate(func(d *Dict, ctx context.Context, args *Args) (*Dict, Value, error) {
			key, err := args.ExpectStr("key")
			if err != nil {
				return d, nil, err
			}
			v, err := args.Expect("value")
			if err != nil {
				return d, nil, err
			}
			if err := args.Finish(); err != nil {
				return d, nil, err
			}
			return d.With(key, v), None, nil
		})

	dictMethods.Define("remove").
		Doc("Remove an entry and return its value").
		Mutate(func(d *Dict, ctx context.Context, args *Args) (*Dict, Value, error) {
			key, err := args.ExpectStr("key")
			if err != nil {
				return d, nil, err
			}
			if err := args.Finish(); err != nil {
				return d, nil, err
			}
			v, err := d.At(key)
			if err != nil {
				return d, nil, err
			}
			return d.Without(key), v, nil
		})

	dictMethods.Define("keys").
		Doc("Keys in insertion order").
		Impl(func(d *Dict, ctx context.Context, args *Args) (Value, error) {
			out := make([]Value, 0, d.Len())
			for _, k := range d.Keys() {
				out = append(out, Str(k))
			}
			return finished[Value](args, NewArray(out))
		})

	dictMethods.Define("values").
		Doc("Values in insertion order").
		Impl(func(d *Dict, ctx context.Context, args *Args) (Value, error) {
			out := make([]Value, 0, d.Len())
			for _, k := range d.Keys() {
				out = append(out, d.values[k])
			}
			return finished[Value](args, NewArray(out))
		})

	dictMethods.Define("pairs").
		Doc("Key-value pairs in insertion order").
		Impl(func(d *Dict, ctx context.Context, args *Args) (Value, error) {
			pairs, err := Iterate(d)
			if err != nil {
				return nil, err
			}
			return finished[Value](args, NewArray(pairs))
		})
}
