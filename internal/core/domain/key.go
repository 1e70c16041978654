package domain

import (
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// Key identifies a known-sites collection by its ordered source locations.
// Order is part of the identity: ["a", "b"] and ["b", "a"] are different keys.
type Key struct {
	locations []string
	id        string
}

// NewKey creates a Key from the given locations.
// It fails with ErrInvalidKey if no location is given or any location is empty.
func NewKey(locations ...string) (Key, error) {
	if len(locations) == 0 {
		return Key{}, ErrInvalidKey
	}

	var b strings.Builder
	for i, loc := range locations {
		if loc == "" {
			return Key{}, zerr.With(zerr.Wrap(ErrInvalidKey, "empty location"), "position", i)
		}
		// Length prefixes keep the id unambiguous for locations containing separators.
		b.WriteString(strconv.Itoa(len(loc)))
		b.WriteByte(':')
		b.WriteString(loc)
	}

	return Key{
		locations: slices.Clone(locations),
		id:        b.String(),
	}, nil
}

// MustKey is like NewKey but panics on an invalid key. Intended for tests and constants.
func MustKey(locations ...string) Key {
	k, err := NewKey(locations...)
	if err != nil {
		panic(err)
	}
	return k
}

// ID returns the canonical identity of the key.
// Two keys have the same ID if and only if their locations are equal element-wise and in order.
func (k Key) ID() string {
	return k.id
}

// Locations returns a copy of the source locations.
func (k Key) Locations() []string {
	return slices.Clone(k.locations)
}

// Len returns the number of locations.
func (k Key) Len() int {
	return len(k.locations)
}

// IsZero reports whether k is the zero Key, which is never valid.
func (k Key) IsZero() bool {
	return len(k.locations) == 0
}

// Equal reports whether k and other name the same locations in the same order.
func (k Key) Equal(other Key) bool {
	return k.id == other.id
}

// String returns a human-readable form of the key. It is not an identity; use ID for that.
func (k Key) String() string {
	return strings.Join(k.locations, ",")
}
