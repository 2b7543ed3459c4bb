// Package collections holds small generic containers used across the build.
package collections

import (
	"cmp"
	"fmt"
	"slices"
)

// Set is a generic set data structure using a map with zero-size values.
// Candidate sets produced by the scanner are Set[string].
type Set[T comparable] map[T]struct{}

// NewSet creates a new Set with the given initial values
func NewSet[T comparable](vs ...T) Set[T] {
	s := make(Set[T], len(vs))
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

// Union adds every member of other to s and returns the number of new members
func (s Set[T]) Union(other Set[T]) int {
	added := 0
	for v := range other {
		if _, ok := s[v]; !ok {
			s[v] = struct{}{}
			added++
		}
	}
	return added
}

// Members returns all values in the set as a slice, in no particular order
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

// Sorted returns the members of s in ascending order.
// Builds iterate candidates in this order so output is reproducible.
func Sorted[T cmp.Ordered](s Set[T]) []T {
	r := s.Members()
	slices.Sort(r)
	return r
}
