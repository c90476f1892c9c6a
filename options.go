package quill

import (
	"slices"

	"github.com/quillscript/quill/library"
	"github.com/quillscript/quill/object"
	"github.com/quillscript/quill/vm"
	"github.com/rs/zerolog"
)

// Option configures an Engine.
type Option func(*config)

type config struct {
	library      *object.Scope
	globals      map[string]object.Value
	order        []string
	logger       zerolog.Logger
	dedup        bool
	maxCallDepth int
	observer     vm.Observer
}

func collectOptions(opts ...Option) *config {
	cfg := &config{
		globals:      map[string]object.Value{},
		logger:       zerolog.Nop(),
		dedup:        true,
		maxCallDepth: vm.DefaultMaxCallDepth,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// buildLibrary returns a fresh scope holding the base library followed by
// the extra globals. The base scope is never modified.
func (cfg *config) buildLibrary() *object.Scope {
	base := cfg.library
	if base == nil {
		base = library.New()
	}
	if len(cfg.globals) == 0 {
		return base
	}
	s := object.NewScope()
	for _, name := range base.Names() {
		v, _ := base.Get(name)
		s.Define(name, v)
	}
	for _, name := range cfg.order {
		s.Define(name, cfg.globals[name])
	}
	return s
}

// WithLibrary replaces the standard library with the given scope.
func WithLibrary(scope *object.Scope) Option {
	return func(cfg *config) {
		cfg.library = scope
	}
}

// WithGlobals adds global values on top of the library. This option is
// additive; if the same name is supplied twice, the last value wins.
func WithGlobals(globals map[string]object.Value) Option {
	return func(cfg *config) {
		names := make([]string, 0, len(globals))
		for name := range globals {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			if _, seen := cfg.globals[name]; !seen {
				cfg.order = append(cfg.order, name)
			}
			cfg.globals[name] = globals[name]
		}
	}
}

// WithGlobal adds a single global value.
func WithGlobal(name string, v object.Value) Option {
	return WithGlobals(map[string]object.Value{name: v})
}

// WithLogger sets the logger for compilation, evaluation and import events.
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithoutClosureDedup disables sharing of identical pre-instantiated
// closures between compilations.
func WithoutClosureDedup() Option {
	return func(cfg *config) {
		cfg.dedup = false
	}
}

// WithMaxCallDepth limits how deeply closure calls may nest.
func WithMaxCallDepth(depth int) Option {
	return func(cfg *config) {
		cfg.maxCallDepth = depth
	}
}

// WithObserver sets an observer for execution events.
func WithObserver(observer vm.Observer) Option {
	return func(cfg *config) {
		cfg.observer = observer
	}
}
