package feature

import (
	"cmp"
	"iter"
	"sort"
)

// Entry is one (feature, value) pair within a Set.
type Entry struct {
	Feature Feature
	Value   float32
}

// Set is an ordered collection of (feature, value) pairs representing one
// data instance. Whether the collection is sparse or dense is a property
// of the owning Space, not of the Set itself.
type Set struct {
	entries []Entry
}

// NewSet creates an empty feature set with room for n entries.
func NewSet(n int) *Set {
	return &Set{entries: make([]Entry, 0, n)}
}

// Add appends a (feature, value) pair.
func (s *Set) Add(f Feature, v float32) {
	s.entries = append(s.entries, Entry{Feature: f, Value: v})
}

// Len returns the number of entries.
func (s *Set) Len() int {
	return len(s.entries)
}

// At returns the i-th entry. Panics if i is out of range.
func (s *Set) At(i int) Entry {
	return s.entries[i]
}

// All iterates over the entries in order.
func (s *Set) All() iter.Seq2[Feature, float32] {
	return func(yield func(Feature, float32) bool) {
		for _, e := range s.entries {
			if !yield(e.Feature, e.Value) {
				return
			}
		}
	}
}

// Sort orders entries by feature tuple, preserving the relative order of
// duplicate features.
func (s *Set) Sort() {
	sort.SliceStable(s.entries, func(i, j int) bool {
		return compareFeatures(s.entries[i].Feature, s.entries[j].Feature) < 0
	})
}

func compareFeatures(a, b Feature) int {
	if c := cmp.Compare(a.Type, b.Type); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Arg1, b.Arg1); c != 0 {
		return c
	}

	return cmp.Compare(a.Arg2, b.Arg2)
}
