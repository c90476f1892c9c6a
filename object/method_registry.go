package object

import (
	"context"
	"fmt"
	"slices"
)

// MethodSpec describes a method for introspection.
type MethodSpec struct {
	Name     string
	Doc      string
	Mutating bool
}

// MethodDef combines a method's specification with its implementation.
// Mutating methods return the updated receiver alongside their result.
type MethodDef[T Value] struct {
	Spec   MethodSpec
	Impl   func(self T, ctx context.Context, args *Args) (Value, error)
	Mutate func(self T, ctx context.Context, args *Args) (T, Value, error)
}

// MethodRegistry holds all methods for a given value type.
type MethodRegistry[T Value] struct {
	typeName string
	methods  map[string]MethodDef[T]
	specs    []MethodSpec
}

// MethodBuilder provides a fluent API for defining a single method.
type MethodBuilder[T Value] struct {
	registry *MethodRegistry[T]
	name     string
	doc      string
}

// NewMethodRegistry creates a registry for the given type name.
func NewMethodRegistry[T Value](typeName string) *MethodRegistry[T] {
	return &MethodRegistry[T]{
		typeName: typeName,
		methods:  make(map[string]MethodDef[T]),
	}
}

// Define starts building a new method definition.
func (r *MethodRegistry[T]) Define(name string) *MethodBuilder[T] {
	return &MethodBuilder[T]{registry: r, name: name}
}

// Specs returns the registered method specifications in registration order.
func (r *MethodRegistry[T]) Specs() []MethodSpec {
	return slices.Clone(r.specs)
}

// Call invokes a non-mutating method.
func (r *MethodRegistry[T]) Call(self T, ctx context.Context, name string, args *Args) (Value, error) {
	m, ok := r.methods[name]
	if !ok {
		return nil, errorf("type %s has no method `%s`", self.Type(), name)
	}
	if m.Mutate != nil {
		return nil, errorf("cannot call mutating method `%s` on a temporary value", name)
	}
	return m.Impl(self, ctx, args)
}

// CallMut invokes a method that may update its receiver.
func (r *MethodRegistry[T]) CallMut(self T, ctx context.Context, name string, args *Args) (T, Value, error) {
	m, ok := r.methods[name]
	if !ok {
		return self, nil, errorf("type %s has no method `%s`", self.Type(), name)
	}
	if m.Mutate == nil {
		v, err := m.Impl(self, ctx, args)
		return self, v, err
	}
	return m.Mutate(self, ctx, args)
}

// Has reports whether a method is defined.
func (r *MethodRegistry[T]) Has(name string) bool {
	_, ok := r.methods[name]
	return ok
}

// Doc sets the method's documentation string.
func (b *MethodBuilder[T]) Doc(doc string) *MethodBuilder[T] {
	b.doc = doc
	return b
}

// Impl registers a method that leaves its receiver unchanged.
func (b *MethodBuilder[T]) Impl(fn func(T, context.Context, *Args) (Value, error)) {
	b.register(MethodDef[T]{Impl: fn})
}

// Mutate registers a method that returns an updated receiver.
func (b *MethodBuilder[T]) Mutate(fn func(T, context.Context, *Args) (T, Value, error)) {
	b.register(MethodDef[T]{Mutate: fn})
}

func (b *MethodBuilder[T]) register(def MethodDef[T]) {
	r := b.registry
	if _, exists := r.methods[b.name]; exists {
		panic(fmt.Sprintf("%s: method %q already registered", r.typeName, b.name))
	}
	def.Spec = MethodSpec{Name: b.name, Doc: b.doc, Mutating: def.Mutate != nil}
	r.methods[b.name] = def
	r.specs = append(r.specs, def.Spec)
}
