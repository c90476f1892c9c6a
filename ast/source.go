package ast

import (
	"sort"
	"strings"
)

// Source is a parsed source file: its text and the root code block.
type Source struct {
	id    FileID
	text  string
	root  *Code
	lines []int
}

// NewSource wraps already-parsed source text.
func NewSource(id FileID, text string, root *Code) *Source {
	lines := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, i+1)
		}
	}
	return &Source{id: id, text: text, root: root, lines: lines}
}

func (s *Source) ID() FileID   { return s.id }
func (s *Source) Text() string { return s.text }
func (s *Source) Root() *Code  { return s.root }

// LineCol converts a byte offset to a one-based line and column.
func (s *Source) LineCol(offset int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(s.text) {
		offset = len(s.text)
	}
	line := sort.Search(len(s.lines), func(i int) bool { return s.lines[i] > offset }) - 1
	return line + 1, offset - s.lines[line] + 1
}

// Line returns the text of a one-based line without its newline.
func (s *Source) Line(n int) string {
	if n < 1 || n > len(s.lines) {
		return ""
	}
	start := s.lines[n-1]
	end := len(s.text)
	if n < len(s.lines) {
		end = s.lines[n] - 1
	}
	return strings.TrimSuffix(s.text[start:end], "\r")
}

// Snippet returns the text covered by a span of this file.
func (s *Source) Snippet(span Span) string {
	if span.File != s.id || span.Start < 0 || span.End > len(s.text) || span.Start > span.End {
		return ""
	}
	return s.text[span.Start:span.End]
}
