package diag

import (
	"errors"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Append accumulates errors into a single multi-error. Nil errors are
// skipped; the result is nil when nothing was appended.
func Append(err error, errs ...error) error {
	var filtered []error
	for _, e := range errs {
		if e != nil {
			filtered = append(filtered, e)
		}
	}
	if len(filtered) == 0 {
		return err
	}
	merr := multierror.Append(err, filtered...)
	merr.ErrorFormat = formatList
	return merr.ErrorOrNil()
}

// List flattens err into its diagnostics. Errors that are not diagnostics
// become detached diagnostics carrying the error text.
func List(err error) []*Diagnostic {
	if err == nil {
		return nil
	}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		var out []*Diagnostic
		for _, e := range merr.Errors {
			out = append(out, List(e)...)
		}
		return out
	}
	var d *Diagnostic
	if errors.As(err, &d) {
		return []*Diagnostic{d}
	}
	return []*Diagnostic{{Message: err.Error(), cause: err}}
}

// Sort orders diagnostics by file and position, keeping detached ones
// last.
func Sort(list []*Diagnostic) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i].Span, list[j].Span
		if a.IsDetached() != b.IsDetached() {
			return b.IsDetached()
		}
		if a.File != b.File {
			return a.File.String() < b.File.String()
		}
		return a.Start < b.Start
	})
}

func formatList(errs []error) string {
	if len(errs) == 1 {
		return errs[0].Error()
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}
