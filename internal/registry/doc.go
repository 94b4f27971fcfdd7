// Package registry resolves a type discriminator (the "type" field of a card
// document node) to a factory for the concrete element or action it names.
//
// A TypeRegistry is a mutable, insertion-ordered table of registrations. Each
// registration carries the schema version that introduced the type, so
// CreateInstance refuses to build types newer than the document being
// parsed, and a SingletonBehavior describing whether the type may appear as a
// lone object where an array is expected.
//
// Global composes two tiers of registries: append-only defaults that built-in
// and host-supplied types register into, and lazily cloned active registries
// consulted while parsing. Neither type does any locking; concurrent parse
// sessions should each take their own Session.
package registry
