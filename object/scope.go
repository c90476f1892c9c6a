package object

// Scope is an insertion-ordered set of named values. Library globals,
// module exports and the members of functions and types live in scopes.
type Scope struct {
	names  []string
	index  map[string]int
	values []Value
}

// NewScope creates an empty scope.
func NewScope() *Scope {
	return &Scope{index: map[string]int{}}
}

// Define binds name to v, replacing an earlier binding.
func (s *Scope) Define(name string, v Value) {
	if i, ok := s.index[name]; ok {
		s.values[i] = v
		return
	}
	s.index[name] = len(s.values)
	s.names = append(s.names, name)
	s.values = append(s.values, v)
}

// Get looks up a name.
func (s *Scope) Get(name string) (Value, bool) {
	if s == nil {
		return nil, false
	}
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.values[i], true
}

// Slot returns the slot index of name.
func (s *Scope) Slot(name string) (int, bool) {
	if s == nil {
		return 0, false
	}
	i, ok := s.index[name]
	return i, ok
}

// At returns the value in slot i.
func (s *Scope) At(i int) Value {
	return s.values[i]
}

// Names returns the bound names in definition order.
func (s *Scope) Names() []string {
	if s == nil {
		return nil
	}
	return s.names
}

// Len returns the number of bindings.
func (s *Scope) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}
