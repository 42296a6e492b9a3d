// Package collections holds small generic containers shared by the passes.
package collections

import (
	"fmt"
	"maps"
)

// Set is a generic set data structure using a map with zero-size values
type Set[T comparable] map[T]struct{}

// NewSet creates a new Set with the given initial values
func NewSet[T comparable](vs ...T) Set[T] {
	s := Set[T]{}
	s.Add(vs...)
	return s
}

// Add adds one or more values to the set
func (s Set[T]) Add(vs ...T) {
	for _, v := range vs {
		s[v] = struct{}{}
	}
}

// Has checks if the set contains the given value
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// Delete removes v, reporting whether it was present
func (s Set[T]) Delete(v T) bool {
	if !s.Has(v) {
		return false
	}
	delete(s, v)
	return true
}

// Len is the number of members
func (s Set[T]) Len() int { return len(s) }

// Clone returns an independent copy, so a branch of a recursive search can
// extend it without affecting its siblings
func (s Set[T]) Clone() Set[T] {
	if s == nil {
		return Set[T]{}
	}
	return maps.Clone(s)
}

// With returns a copy of s that also contains vs
func (s Set[T]) With(vs ...T) Set[T] {
	c := s.Clone()
	c.Add(vs...)
	return c
}

// Members returns all values in the set as a slice
func (s Set[T]) Members() []T {
	r := make([]T, 0, len(s))
	for v := range s {
		r = append(r, v)
	}
	return r
}

// String returns a string representation of the set
func (s Set[T]) String() string {
	return fmt.Sprintf("%v", s.Members())
}
