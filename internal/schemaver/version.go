package schemaver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrInvalidVersion is returned when a version string cannot be parsed.
var ErrInvalidVersion = errors.New("invalid schema version")

// Version is a card schema version. The zero value orders as Oldest.
type Version struct {
	sv *semver.Version
}

// Well-known schema versions.
var (
	V1_0 = MustParse("1.0")
	V1_1 = MustParse("1.1")
	V1_2 = MustParse("1.2")
	V1_3 = MustParse("1.3")
	V1_4 = MustParse("1.4")
	V1_5 = MustParse("1.5")
	V1_6 = MustParse("1.6")

	// Oldest is the version assumed for registrations that do not declare one.
	Oldest = V1_0
	// Latest is the newest schema version this module knows about.
	Latest = V1_6
)

// All returns the well-known versions in ascending order.
func All() []Version {
	return []Version{V1_0, V1_1, V1_2, V1_3, V1_4, V1_5, V1_6}
}

// Parse parses a version string. A leading "v" is tolerated and missing
// minor/patch components default to zero ("1" is 1.0).
func Parse(s string) (Version, error) {
	sv, err := semver.NewVersion(strings.TrimPrefix(strings.TrimSpace(s), "v"))
	if err != nil {
		return Version{}, fmt.Errorf("%w %q: %v", ErrInvalidVersion, s, err)
	}
	return Version{sv: sv}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Version) semver() *semver.Version {
	if v.sv == nil {
		return Oldest.sv
	}
	return v.sv
}

// CompareTo returns -1 if v < other, 0 if equal, 1 if v > other.
func (v Version) CompareTo(other Version) int {
	return v.semver().Compare(other.semver())
}

// Equal reports whether v and other denote the same version.
func (v Version) Equal(other Version) bool { return v.CompareTo(other) == 0 }

// Less reports whether v orders before other.
func (v Version) Less(other Version) bool { return v.CompareTo(other) < 0 }

// IsZero reports whether v was never set.
func (v Version) IsZero() bool { return v.sv == nil }

// Major returns the major component.
func (v Version) Major() uint64 { return v.semver().Major() }

// Minor returns the minor component.
func (v Version) Minor() uint64 { return v.semver().Minor() }

// String formats the version as "major.minor", appending the patch and
// prerelease only when present.
func (v Version) String() string {
	sv := v.semver()
	s := fmt.Sprintf("%d.%d", sv.Major(), sv.Minor())
	if sv.Patch() != 0 {
		s += fmt.Sprintf(".%d", sv.Patch())
	}
	if pre := sv.Prerelease(); pre != "" {
		s += "-" + pre
	}
	return s
}

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Min returns the older of a and b.
func Min(a, b Version) Version {
	if a.CompareTo(b) <= 0 {
		return a
	}
	return b
}
