package registry

import (
	"fmt"
	"slices"

	"github.com/cardkit-labs/cardkit/internal/schemaver"
)

// TypeRegistry maps type names to registrations, preserving the order in
// which names were first registered.
type TypeRegistry[T Typed] struct {
	items map[string]*TypeRegistration[T]
	order []string
}

// New returns an empty TypeRegistry.
func New[T Typed]() *TypeRegistry[T] {
	return &TypeRegistry[T]{items: make(map[string]*TypeRegistration[T])}
}

// FindByName returns the registration for typeName, if any.
func (r *TypeRegistry[T]) FindByName(typeName string) (TypeRegistration[T], bool) {
	reg, ok := r.items[typeName]
	if !ok {
		return TypeRegistration[T]{}, false
	}
	return *reg, true
}

// Register adds typeName or replaces its factory. New registrations default
// to schemaver.Oldest and NotAllowed; re-registering an existing name only
// changes the metadata passed through opts.
//
// An empty name or nil factory is a programming error and panics.
func (r *TypeRegistry[T]) Register(typeName string, factory Factory[T], opts ...RegisterOption) {
	if typeName == "" {
		panic("registry: empty type name")
	}
	if factory == nil {
		panic(fmt.Sprintf("registry: nil factory for type %q", typeName))
	}

	var o registerOptions
	for _, opt := range opts {
		opt(&o)
	}

	if r.items == nil {
		r.items = make(map[string]*TypeRegistration[T])
	}

	reg, ok := r.items[typeName]
	if !ok {
		reg = &TypeRegistration[T]{
			TypeName:          typeName,
			SchemaVersion:     schemaver.Oldest,
			SingletonBehavior: NotAllowed,
		}
		r.items[typeName] = reg
		r.order = append(r.order, typeName)
	}

	reg.Factory = factory
	if o.schemaVersion != nil {
		reg.SchemaVersion = *o.schemaVersion
	}
	if o.singletonBehavior != nil {
		reg.SingletonBehavior = *o.singletonBehavior
	}
}

// Unregister removes typeName. Unknown names are ignored.
func (r *TypeRegistry[T]) Unregister(typeName string) {
	if _, ok := r.items[typeName]; !ok {
		return
	}
	delete(r.items, typeName)
	if i := slices.Index(r.order, typeName); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
}

// Clear removes every registration.
func (r *TypeRegistry[T]) Clear() {
	r.items = make(map[string]*TypeRegistration[T])
	r.order = nil
}

// CopyTo registers every entry of r into target, metadata included. Entries
// already in target that r does not know about are kept.
func (r *TypeRegistry[T]) CopyTo(target *TypeRegistry[T]) {
	for _, name := range r.order {
		reg := r.items[name]
		target.Register(
			reg.TypeName,
			reg.Factory,
			WithSchemaVersion(reg.SchemaVersion),
			WithSingletonBehavior(reg.SingletonBehavior),
		)
	}
}

// CreateInstance builds a new instance of typeName if it is registered and
// was introduced at or before targetVersion. Unknown names and types newer
// than targetVersion both report false.
func (r *TypeRegistry[T]) CreateInstance(typeName string, targetVersion schemaver.Version) (T, bool) {
	reg, ok := r.items[typeName]
	if !ok || reg.SchemaVersion.CompareTo(targetVersion) > 0 {
		var zero T
		return zero, false
	}
	return reg.Factory(), true
}

// ItemCount returns the number of registrations.
func (r *TypeRegistry[T]) ItemCount() int {
	return len(r.order)
}

// ItemAt returns the registration at index in registration order. It panics
// if index is out of range; use ItemCount to bound the index.
func (r *TypeRegistry[T]) ItemAt(index int) TypeRegistration[T] {
	return *r.items[r.order[index]]
}

// Items returns a snapshot of all registrations in registration order.
func (r *TypeRegistry[T]) Items() []TypeRegistration[T] {
	out := make([]TypeRegistration[T], 0, len(r.order))
	for _, name := range r.order {
		out = append(out, *r.items[name])
	}
	return out
}
