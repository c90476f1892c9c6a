package object

import (
	"context"
)

func init() {
	argsMethods.Define("pos").
		Doc("Positional arguments as an array").
		Impl(func(a *Args, ctx context.Context, args *Args) (Value, error) {
			return finished[Value](args, NewArray(a.Positional()))
		})

	argsMethods.Define("named").
		Doc("Named arguments as a dictionary").
		Impl(func(a *Args, ctx context.Context, args *Args) (Value, error) {
			return finished[Value](args, a.Dict())
		})

	funcMethods.Define("with").
		Doc("Pre-apply arguments to the function").
		Impl(func(fn Func, ctx context.Context, args *Args) (Value, error) {
			return NewPartial(fn, args.Clone()), nil
		})
}
