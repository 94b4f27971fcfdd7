package registry

import "fmt"

// SingletonBehavior describes whether a type may be parsed in a singleton
// context, i.e. as a lone object where the parent expects an array of
// elements (AdaptiveCard.body, Container.items, ...).
type SingletonBehavior int

const (
	// NotAllowed types must always appear inside an array.
	NotAllowed SingletonBehavior = iota
	// Allowed types may appear alone or inside an array.
	Allowed
	// Only types are valid exclusively as a singleton.
	Only
)

var singletonNames = map[SingletonBehavior]string{
	NotAllowed: "NotAllowed",
	Allowed:    "Allowed",
	Only:       "Only",
}

func (b SingletonBehavior) String() string {
	if s, ok := singletonNames[b]; ok {
		return s
	}
	return fmt.Sprintf("SingletonBehavior(%d)", int(b))
}

// AllowsSingleton reports whether a lone object of this type is acceptable.
func (b SingletonBehavior) AllowsSingleton() bool {
	return b == Only || b == Allowed
}

// AllowsCollection reports whether this type may appear inside an array.
func (b SingletonBehavior) AllowsCollection() bool {
	return b != Only
}

// ParseSingletonBehavior converts a name such as "Only" to a
// SingletonBehavior, returning false if the name is not recognized.
func ParseSingletonBehavior(s string) (SingletonBehavior, bool) {
	for b, name := range singletonNames {
		if name == s {
			return b, true
		}
	}
	return NotAllowed, false
}

// MarshalText implements encoding.TextMarshaler.
func (b SingletonBehavior) MarshalText() ([]byte, error) {
	if _, ok := singletonNames[b]; !ok {
		return nil, fmt.Errorf("unknown singleton behavior %d", int(b))
	}
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *SingletonBehavior) UnmarshalText(text []byte) error {
	parsed, ok := ParseSingletonBehavior(string(text))
	if !ok {
		return fmt.Errorf("unknown singleton behavior %q", string(text))
	}
	*b = parsed
	return nil
}
