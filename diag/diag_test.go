package diag

import (
	"errors"
	"fmt"
	"testing"

	"github.com/quillscript/quill/ast"
	"github.com/stretchr/testify/require"
)

type sources map[ast.FileID]*ast.Source

func (s sources) Source(id ast.FileID) (*ast.Source, error) {
	if src, ok := s[id]; ok {
		return src, nil
	}
	return nil, fmt.Errorf("file not found: %s", id)
}

var mainFile = ast.NewFileID("main.ql")

func span(start, end int) ast.Span {
	return ast.Span{File: mainFile, Start: start, End: end}
}

func TestAtKeepsExistingSpan(t *testing.T) {
	d := Errorf(span(1, 2), "inner")
	err := At(span(5, 9), d)
	require.Equal(t, span(1, 2), List(err)[0].Span)

	detached := New("cannot divide by zero")
	err = At(span(5, 9), detached)
	require.Equal(t, span(5, 9), List(err)[0].Span)

	plain := errors.New("file not found")
	err = At(span(3, 4), plain)
	list := List(err)
	require.Len(t, list, 1)
	require.Equal(t, "file not found", list[0].Message)
	require.ErrorIs(t, err, plain)
}

func TestAppendAndList(t *testing.T) {
	require.Nil(t, Append(nil))
	require.Nil(t, Append(nil, nil))

	var err error
	err = Append(err, Errorf(span(0, 1), "unresolved import: a"))
	err = Append(err, Errorf(span(2, 3), "unresolved import: b"))
	list := List(err)
	require.Len(t, list, 2)
	require.Equal(t, "unresolved import: a", list[0].Message)
	require.Equal(t, "unresolved import: b", list[1].Message)
	require.Equal(t, "unresolved import: a; unresolved import: b", err.Error())
}

func TestAtOnMultiError(t *testing.T) {
	err := Append(nil, New("a"), Errorf(span(1, 2), "b"))
	err = At(span(7, 8), err)
	list := List(err)
	require.Len(t, list, 2)
	require.Equal(t, span(7, 8), list[0].Span)
	require.Equal(t, span(1, 2), list[1].Span)
}

func TestSuggest(t *testing.T) {
	candidates := []string{"range", "repr", "rem", "assert", "array"}
	require.Equal(t, []string{"range"}, Suggest("rnge", candidates))
	require.Empty(t, Suggest("zzzzzz", candidates))
	require.Equal(t, "did you mean `range`?", SuggestionHint([]string{"range"}))
	require.Equal(t, "did you mean one of `a`, `b`?", SuggestionHint([]string{"a", "b"}))
	require.Equal(t, "", SuggestionHint(nil))
}

func TestFormat(t *testing.T) {
	src := ast.NewSource(mainFile, "let x = 1\nlet y = x + z\n", nil)
	f := NewFormatter(sources{mainFile: src}, false)

	d := Errorf(span(22, 23), "unknown variable: z").WithHint("did you mean `x`?")
	d.Trace = append(d.Trace, Tracepoint{Span: span(0, 3), Message: "error occurred here"})
	expected := "error: unknown variable: z\n" +
		"  --> /main.ql:2:13\n" +
		"   |\n" +
		" 2 | let y = x + z\n" +
		"   |             ^\n" +
		"   = hint: did you mean `x`?\n" +
		"   = note: error occurred here (/main.ql:1:1)\n"
	require.Equal(t, expected, f.Format(d))
}

func TestFormatAll(t *testing.T) {
	f := NewFormatter(nil, false)
	err := Append(nil, Errorf(span(5, 6), "second"), Errorf(span(1, 2), "first"), New("detached"))
	out := f.FormatAll(err)
	require.Equal(t, "error: first\n  --> /main.ql\n\n"+
		"error: second\n  --> /main.ql\n\n"+
		"error: detached\n\n"+
		"found 3 errors\n", out)
}
