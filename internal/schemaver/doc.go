// Package schemaver defines the card schema version value used to gate which
// element and action types a document may instantiate. Versions are
// "major.minor" strings such as "1.5" and are totally ordered.
package schemaver
