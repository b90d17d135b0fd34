package papi

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a packed PAPI version number: major in bits 31-24, minor in 23-16,
// revision in 15-8 and increment in 7-0.
type Version uint32

// CurrentVersion is the version requested when a caller does not ask for one. Only
// major.minor take part in the library's negotiation.
const CurrentVersion = Version(5<<24|4<<16|1<<8|0) & 0xffff0000

// NewVersion packs the four components of a version.
func NewVersion(major, minor, revision, increment uint8) Version {
	return Version(uint32(major)<<24 | uint32(minor)<<16 | uint32(revision)<<8 | uint32(increment))
}

func (v Version) Major() uint8     { return uint8(v >> 24) }
func (v Version) Minor() uint8     { return uint8(v >> 16) }
func (v Version) Revision() uint8  { return uint8(v >> 8) }
func (v Version) Increment() uint8 { return uint8(v) }

// Unpack returns the four components of v.
func (v Version) Unpack() (major, minor, revision, increment uint8) {
	return v.Major(), v.Minor(), v.Revision(), v.Increment()
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.Major(), v.Minor(), v.Revision(), v.Increment())
}

// ParseVersion parses "major.minor[.revision[.increment]]". Missing components are
// zero.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) < 2 || len(parts) > 4 {
		return 0, fmt.Errorf("invalid version %q: want major.minor[.revision[.increment]]", s)
	}
	var c [4]uint8
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			return 0, fmt.Errorf("invalid version %q: %w", s, err)
		}
		c[i] = uint8(n)
	}
	return NewVersion(c[0], c[1], c[2], c[3]), nil
}
