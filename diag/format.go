package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/quillscript/quill/ast"
)

// SourceLookup resolves file ids to their sources for excerpts.
type SourceLookup interface {
	Source(id ast.FileID) (*ast.Source, error)
}

// Formatter renders diagnostics in a Rust-like style.
type Formatter struct {
	// UseColor enables ANSI color codes in output.
	UseColor bool

	// Sources is consulted for source excerpts. May be nil.
	Sources SourceLookup
}

// NewFormatter creates a formatter.
func NewFormatter(sources SourceLookup, useColor bool) *Formatter {
	return &Formatter{UseColor: useColor, Sources: sources}
}

var (
	colorError    = color.New(color.FgHiRed, color.Bold)
	colorWarning  = color.New(color.FgHiYellow, color.Bold)
	colorLocation = color.New(color.FgCyan)
	colorGutter   = color.New(color.FgHiBlack)
	colorCaret    = color.New(color.FgHiRed)
	colorHint     = color.New(color.FgHiYellow)
	colorNote     = color.New(color.FgHiBlue)
)

func (f *Formatter) paint(c *color.Color, s string) string {
	if !f.UseColor {
		return s
	}
	c.EnableColor()
	return c.Sprint(s)
}

type excerpt struct {
	location string
	line     int
	text     string
	col      int
	width    int
}

func (f *Formatter) resolve(span ast.Span) (excerpt, bool) {
	if span.IsDetached() {
		return excerpt{}, false
	}
	ex := excerpt{location: span.File.String()}
	if f.Sources == nil {
		return ex, true
	}
	src, err := f.Sources.Source(span.File)
	if err != nil || src == nil {
		return ex, true
	}
	line, col := src.LineCol(span.Start)
	endLine, endCol := src.LineCol(span.End)
	ex.location = fmt.Sprintf("%s:%d:%d", span.File, line, col)
	ex.line = line
	ex.text = src.Line(line)
	ex.col = col
	ex.width = 1
	if endLine == line && endCol > col {
		ex.width = endCol - col
	} else if endLine > line {
		ex.width = max(1, len(ex.text)-col+1)
	}
	return ex, true
}

// Format renders a single diagnostic.
func (f *Formatter) Format(d *Diagnostic) string {
	var b strings.Builder
	label := d.Severity.String()
	if d.Severity == Warning {
		b.WriteString(f.paint(colorWarning, label))
	} else {
		b.WriteString(f.paint(colorError, label))
	}
	b.WriteString(": ")
	b.WriteString(d.Message)
	b.WriteString("\n")

	ex, ok := f.resolve(d.Span)
	width := 2
	if ex.line >= 100 {
		width = len(fmt.Sprint(ex.line))
	}
	pad := strings.Repeat(" ", width)
	if ok {
		b.WriteString(pad)
		b.WriteString(f.paint(colorLocation, "--> "+ex.location))
		b.WriteString("\n")
	}
	if ex.line > 0 {
		b.WriteString(f.paint(colorGutter, pad+" |"))
		b.WriteString("\n")
		b.WriteString(f.paint(colorGutter, fmt.Sprintf("%*d | ", width, ex.line)))
		b.WriteString(ex.text)
		b.WriteString("\n")
		b.WriteString(f.paint(colorGutter, pad+" | "))
		b.WriteString(strings.Repeat(" ", ex.col-1))
		b.WriteString(f.paint(colorCaret, strings.Repeat("^", ex.width)))
		b.WriteString("\n")
	}
	for _, hint := range d.Hints {
		b.WriteString(f.paint(colorGutter, pad+" = "))
		b.WriteString(f.paint(colorHint, "hint: "))
		b.WriteString(hint)
		b.WriteString("\n")
	}
	for _, point := range d.Trace {
		b.WriteString(f.paint(colorGutter, pad+" = "))
		b.WriteString(f.paint(colorNote, "note: "))
		b.WriteString(point.Message)
		if tex, ok := f.resolve(point.Span); ok {
			b.WriteString(" (" + tex.location + ")")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatAll renders every diagnostic in err, sorted by position, followed
// by a summary line when there is more than one.
func (f *Formatter) FormatAll(err error) string {
	list := List(err)
	Sort(list)
	var b strings.Builder
	for i, d := range list {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(f.Format(d))
	}
	if len(list) > 1 {
		b.WriteString("\n")
		b.WriteString(f.paint(colorError, fmt.Sprintf("found %d errors", len(list))))
		b.WriteString("\n")
	}
	return b.String()
}
