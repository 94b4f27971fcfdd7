package registry

import "github.com/cardkit-labs/cardkit/internal/schemaver"

// Typed is implemented by every registrable object. JSONTypeName returns the
// discriminator the object is serialized under.
type Typed interface {
	JSONTypeName() string
}

// Factory builds a new default-initialized instance of a registered type.
type Factory[T Typed] func() T

// TypeRegistration is the metadata recorded for one registered type name.
type TypeRegistration[T Typed] struct {
	TypeName          string
	Factory           Factory[T]
	SchemaVersion     schemaver.Version
	SingletonBehavior SingletonBehavior
}

// New invokes the registration's factory.
func (r TypeRegistration[T]) New() T {
	return r.Factory()
}

// RegisterOption sets registration metadata explicitly. Options that are not
// passed leave an existing registration's metadata untouched.
type RegisterOption func(*registerOptions)

type registerOptions struct {
	schemaVersion     *schemaver.Version
	singletonBehavior *SingletonBehavior
}

// WithSchemaVersion sets the minimum document version the type is
// recognized in.
func WithSchemaVersion(v schemaver.Version) RegisterOption {
	return func(o *registerOptions) { o.schemaVersion = &v }
}

// WithSingletonBehavior sets how the type may be used in singleton contexts.
func WithSingletonBehavior(b SingletonBehavior) RegisterOption {
	return func(o *registerOptions) { o.singletonBehavior = &b }
}
