package vm

import (
	"github.com/quillscript/quill/importer"
	"github.com/rs/zerolog"
)

// Option is a configuration function for a Machine.
type Option func(*Machine)

// WithLogger sets the logger the machine reports to.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithImporter sets the importer used by dynamic import and include.
func WithImporter(imp importer.Importer) Option {
	return func(m *Machine) {
		m.importer = imp
	}
}

// WithMaxCallDepth limits how deeply closure calls may nest. Values below
// one restore the default.
func WithMaxCallDepth(depth int) Option {
	return func(m *Machine) {
		if depth < 1 {
			depth = DefaultMaxCallDepth
		}
		m.maxDepth = depth
	}
}

// WithObserver sets an observer for execution events.
func WithObserver(observer Observer) Option {
	return func(m *Machine) {
		m.observer = observer
		if observer != nil {
			m.observerCfg = NormalizeConfig(observer.Config())
		}
	}
}
