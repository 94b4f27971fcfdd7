// Package card is the card document object model and the parser that builds
// it. Element and action types are not known to the parser: every node's
// "type" field is resolved through a registry.TypeRegistry, so hosts can add,
// replace or remove types without touching the parser. RegisterBuiltins seeds
// the default registries with the standard element and action catalog.
package card
