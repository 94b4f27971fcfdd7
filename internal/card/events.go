package card

import (
	"errors"
	"fmt"
	"strconv"
)

// EventKind classifies a parse event.
type EventKind string

const (
	// UnknownType: the node's type is not registered.
	UnknownType EventKind = "UnknownType"
	// VersionTooNew: the type is registered but introduced after the
	// document version.
	VersionTooNew EventKind = "VersionTooNew"
	// SingletonNotAllowed: a lone object was found where the type must be
	// inside an array.
	SingletonNotAllowed EventKind = "SingletonNotAllowed"
	// SingletonRequired: a singleton-only type was found inside an array.
	SingletonRequired EventKind = "SingletonRequired"
	// InvalidProperty: a property could not be decoded.
	InvalidProperty EventKind = "InvalidProperty"
	// VersionClamped: the document declared a version newer than the host
	// supports and was parsed at the host's maximum.
	VersionClamped EventKind = "VersionClamped"
)

var (
	// ErrNotACard is returned when the document root is not an object of
	// type AdaptiveCard.
	ErrNotACard = errors.New("document is not an AdaptiveCard")

	// The errors below are wrapped in a *ParseError in strict mode, one per
	// EventKind except VersionClamped.

	// ErrUnknownType: a node's type is not registered.
	ErrUnknownType = errors.New("unknown type")
	// ErrVersionTooNew: a node's type was introduced after the document
	// version.
	ErrVersionTooNew = errors.New("type is newer than the document version")
	// ErrSingletonNotAllowed: a lone object stands where its type requires
	// an array.
	ErrSingletonNotAllowed = errors.New("type cannot be used as a singleton")
	// ErrSingletonRequired: a singleton-only type appears inside an array.
	ErrSingletonRequired = errors.New("type is only valid as a singleton")
	// ErrInvalidProperty: a property, including the document version, could
	// not be decoded.
	ErrInvalidProperty = errors.New("invalid property")
)

var kindErrors = map[EventKind]error{
	UnknownType:         ErrUnknownType,
	VersionTooNew:       ErrVersionTooNew,
	SingletonNotAllowed: ErrSingletonNotAllowed,
	SingletonRequired:   ErrSingletonRequired,
	InvalidProperty:     ErrInvalidProperty,
}

// ParseEvent records something the parser skipped, replaced or adjusted.
type ParseEvent struct {
	Path     string    `json:"path"`
	Kind     EventKind `json:"kind"`
	TypeName string    `json:"type,omitempty"`
	Message  string    `json:"message"`
}

func (e ParseEvent) String() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Path, e.Message)
}

// ParseError is returned in strict mode for the first event that would
// otherwise have been tolerated.
type ParseError struct {
	Event ParseEvent
	Err   error
}

func (e *ParseError) Error() string {
	path := e.Event.Path
	if path == "" {
		path = "/"
	}
	return fmt.Sprintf("%s at %s: %s", e.Event.Kind, path, e.Event.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }

func indexPath(path string, i int) string {
	return path + "/" + strconv.Itoa(i)
}
