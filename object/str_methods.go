package object

import (
	"context"
	"slices"
	"strings"
	"unicode/utf8"
)

func init() {
	strMethods.Define("len").
		Doc("Length in UTF-8 bytes").
		Impl(func(s Str, ctx context.Context, args *Args) (Value, error) {
			return finished[Value](args, Int(len(s)))
		})

	strMethods.Define("clusters").
		Doc("Grapheme clusters").
		Impl(func(s Str, ctx context.Context, args *Args) (Value, error) {
			return finished[Value](args, NewArray(Clusters(string(s))))
		})

	strMethods.Define("first").
		Doc("First grapheme cluster").
		Impl(func(s Str, ctx context.Context, args *Args) (Value, error) {
			if err := args.Finish(); err != nil {
				return nil, err
			}
			clusters := Clusters(string(s))
			if len(clusters) == 0 {
				return nil, errorf("string is empty")
			}
			return clusters[0], nil
		})

	strMethods.Define("last").
		Doc("Last grapheme cluster").
		Impl(func(s Str, ctx context.Context, args *Args) (Value, error) {
			if err := args.Finish(); err != nil {
				return nil, err
			}
			clusters := Clusters(string(s))
			if len(clusters) == 0 {
				return nil, errorf("string is empty")
			}
			return clusters[len(clusters)-1], nil
		})

	strMethods.Define("at").
		Doc("Grapheme cluster starting at a byte index").
		Impl(func(s Str, ctx context.Context, args *Args) (Value, error) {
			i, err := args.ExpectInt("index")
			if err != nil {
				return nil, err
			}
			if err := args.Finish(); err != nil {
				return nil, err
			}
			idx, err := strIndex(s, i)
			if err != nil {
				return nil, err
			}
			rest := Clusters(string(s[idx:]))
			if len(rest) == 0 {
				return nil, errorf("string index out of bounds (index: %d, len: %d)", i, len(s))
			}
			return rest[0], nil
		})

	strMethods.Define("slice").
		Doc("Substring between byte indices").
		Impl(func(s Str, ctx context.Context, args *Args) (Value, error) {
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
			if !hasEnd {
				end = int64(len(s))
			}
			from, err := strIndex(s, start)
			if err != nil {
				return nil, err
			}
			to, err := strIndex(s, end)
			if err != nil {
				return nil, err
			}
			if to < from {
				return nil, errorf("string index out of bounds (index: %d, len: %d)", end, len(s))
			}
			return s[from:to], nil
		})

	strMethods.Define("contains").
		Doc("Whether the string contains a substring").
		Impl(func(s Str, ctx context.Context, args *Args) (Value, error) {
			pat, err := args.ExpectStr("pattern")
			if err != nil {
				return nil, err
			}
			return finished[Value](args, Bool(strings.Contains(string(s), pat)))
		})

	strMethods.Define("starts-with").
		Doc("Whether the string starts with a prefix").
		Impl(func(s Str, ctx context.Context, args *Args) (Value, error) {
			pat, err := args.ExpectStr("pattern")
			if err != nil {
				return nil, err
			}
			return finished[Value](args, Bool(strings.HasPrefix(string(s), pat)))
		})

	strMethods.Define("ends-with").
		Doc("Whether the string ends with a suffix").
		Impl(func(s Str, ctx context.Context, args *Args) (Value, error) {
			pat, err := args.ExpectStr("pattern")
			if err != nil {
				return nil, err
			}
			return finished[Value](args, Bool(strings.HasSuffix(string(s), pat)))
		})

	strMethods.Define("split").
		Doc("Split at a separator, or at whitespace").
		Impl(func(s Str, ctx context.Context, args *Args) (Value, error) {
			sep, hasSep := args.Eat()
			if err := args.Finish(); err != nil {
				return nil, err
			}
			var parts []string
			if hasSep {
				sepStr, err := AsStr(sep)
				if err != nil {
					return nil, err
				}
				parts = strings.Split(string(s), sepStr)
			} else {
				parts = strings.Fields(string(s))
			}
			out := make([]Value, 0, len(parts))
			for _, p := range parts {
				out = append(out, Str(p))
			}
			return NewArray(out), nil
		})

	strMethods.Define("trim").
		Doc("Remove leading and trailing whitespace").
		Impl(func(s Str, ctx context.Context, args *Args) (Value, error) {
			return finished[Value](args, Str(strings.TrimSpace(string(s))))
		})

	strMethods.Define("replace").
		Doc("Replace every occurrence of a substring").
		Impl(func(s Str, ctx context.Context, args *Args) (Value, error) {
			old, err := args.ExpectStr("pattern")
			if err != nil {
				return nil, err
			}
			repl, err := args.ExpectStr("replacement")
			if err != nil {
				return nil, err
			}
			return finished[Value](args, Str(strings.ReplaceAll(string(s), old, repl)))
		})

	strMethods.Define("rev").
		Doc("Grapheme clusters in reverse order").
		Impl(func(s Str, ctx context.Context, args *Args) (Value, error) {
			clusters := Clusters(string(s))
			slices.Reverse(clusters)
			var b strings.Builder
			for _, c := range clusters {
				b.WriteString(string(c.(Str)))
			}
			return finished[Value](args, Str(b.String()))
		})
}

func strIndex(s Str, i int64) (int, error) {
	n := int64(len(s))
	idx := i
	if idx < 0 {
		idx += n
	}
	if idx < 0 || idx > n {
		return 0, errorf("string index out of bounds (index: %d, len: %d)", i, n)
	}
	if idx < n && !utf8.RuneStart(s[idx]) {
		return 0, errorf("string index %d is not a character boundary", i)
	}
	return int(idx), nil
}
