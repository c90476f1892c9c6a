// Package diag defines the diagnostics produced while compiling and running
// quill code.
//
// A Diagnostic is a span, a message, and optional hints. Both compile-time
// and run-time failures use the same shape. Compile errors are accumulated
// with go-multierror and returned together; a run-time error aborts the
// evaluation that raised it.
package diag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/quillscript/quill/ast"
)

// Severity of a diagnostic.
type Severity uint8

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Tracepoint records a place the error passed through on its way out, such
// as a function call or a module import.
type Tracepoint struct {
	Span    ast.Span
	Message string
}

// Diagnostic is an error or warning attached to a source span.
type Diagnostic struct {
	Severity Severity
	Span     ast.Span
	Message  string
	Hints    []string
	Trace    []Tracepoint
	cause    error
}

// Errorf creates an error diagnostic at the given span.
func Errorf(span ast.Span, format string, args ...any) *Diagnostic {
	return &Diagnostic{Span: span, Message: fmt.Sprintf(format, args...)}
}

// New creates an error diagnostic without a location. The location is
// attached later with At, typically by the virtual machine.
func New(format string, args ...any) *Diagnostic {
	return Errorf(ast.Detached(), format, args...)
}

// Warnf creates a warning diagnostic.
func Warnf(span ast.Span, format string, args ...any) *Diagnostic {
	d := Errorf(span, format, args...)
	d.Severity = Warning
	return d
}

// WithHint appends a hint and returns the diagnostic.
func (d *Diagnostic) WithHint(format string, args ...any) *Diagnostic {
	d.Hints = append(d.Hints, fmt.Sprintf(format, args...))
	return d
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	if len(d.Hints) == 0 {
		return d.Message
	}
	return d.Message + " (hint: " + strings.Join(d.Hints, "; ") + ")"
}

// Unwrap returns the Go error this diagnostic was created from, if any.
func (d *Diagnostic) Unwrap() error {
	return d.cause
}

// At attaches span to err. Diagnostics that already carry a location keep
// it. Plain errors are converted into diagnostics.
func At(span ast.Span, err error) error {
	if err == nil {
		return nil
	}
	var merr interface{ WrappedErrors() []error }
	if errors.As(err, &merr) {
		var out error
		for _, e := range merr.WrappedErrors() {
			out = Append(out, At(span, e))
		}
		return out
	}
	var d *Diagnostic
	if errors.As(err, &d) {
		if d.Span.IsDetached() {
			d.Span = span
		}
		return d
	}
	return &Diagnostic{Span: span, Message: err.Error(), cause: err}
}

// Trace records a tracepoint on every diagnostic in err.
func Trace(err error, span ast.Span, format string, args ...any) error {
	if err == nil || span.IsDetached() {
		return err
	}
	point := Tracepoint{Span: span, Message: fmt.Sprintf(format, args...)}
	for _, d := range List(err) {
		d.Trace = append(d.Trace, point)
	}
	return err
}
