package annotate

import (
	"maps"
	"slices"
)

// ActiveSet holds the issue IDs revealed by the scan.
type ActiveSet map[string]struct{}

// NewActiveSet returns a set containing ids.
func NewActiveSet(ids ...string) ActiveSet {
	s := make(ActiveSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is active. A nil set has no members.
func (s ActiveSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of active ids.
func (s ActiveSet) Len() int { return len(s) }

// Equal reports whether both sets have the same members.
func (s ActiveSet) Equal(other ActiveSet) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if !other.Has(id) {
			return false
		}
	}
	return true
}

// Contains reports whether every member of other is also in s.
func (s ActiveSet) Contains(other ActiveSet) bool {
	for id := range other {
		if !s.Has(id) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (s ActiveSet) Clone() ActiveSet {
	if s == nil {
		return ActiveSet{}
	}
	return maps.Clone(s)
}

// IDs returns the members in sorted order.
func (s ActiveSet) IDs() []string {
	return slices.Sorted(maps.Keys(s))
}
