// Package omap provides an immutable string-keyed map that keeps its
// bindings sorted by key. Lookups are binary searches and iteration always
// yields keys in increasing byte-wise order.
//
// A Map has no mutating methods, so once a *Map has been handed to other
// goroutines it can be read concurrently without locking.
package omap

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"
)

// ErrDuplicateKey is returned by FromEntries when a key repeats.
var ErrDuplicateKey = errors.New("duplicate key")

// compareKeys orders keys byte-wise. Tests replace it to count comparisons.
var compareKeys = strings.Compare

// Entry is a single key/value binding.
type Entry[V any] struct {
	Key   string
	Value V
}

// Map is an immutable ordered map. The zero value and a nil *Map are empty.
type Map[V any] struct {
	entries []Entry[V] // sorted by Key, keys unique
}

// New copies bindings into a new Map.
func New[V any](bindings map[string]V) *Map[V] {
	entries := make([]Entry[V], 0, len(bindings))
	for k, v := range bindings {
		entries = append(entries, Entry[V]{Key: k, Value: v})
	}
	slices.SortFunc(entries, compareEntries[V])
	return &Map[V]{entries: entries}
}

// FromEntries builds a Map from entries given in any order. The input slice
// is not retained.
func FromEntries[V any](entries []Entry[V]) (*Map[V], error) {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, compareEntries[V])
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Key == sorted[i].Key {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, sorted[i].Key)
		}
	}
	return &Map[V]{entries: sorted}, nil
}

func compareEntries[V any](a, b Entry[V]) int {
	return compareKeys(a.Key, b.Key)
}

// Lookup returns the value bound to key. The boolean is false when the key
// is absent, in which case the returned value is the zero V and must not be
// used.
func (m *Map[V]) Lookup(key string) (V, bool) {
	i, ok := m.search(key)
	if !ok {
		var zero V
		return zero, false
	}
	return m.entries[i].Value, true
}

// search reports the index of key.
func (m *Map[V]) search(key string) (int, bool) {
	if m == nil {
		return 0, false
	}
	return slices.BinarySearchFunc(m.entries, key, func(e Entry[V], k string) int {
		return compareKeys(e.Key, k)
	})
}

// Contains reports whether key is bound.
func (m *Map[V]) Contains(key string) bool {
	_, ok := m.search(key)
	return ok
}

// Len returns the number of bindings.
func (m *Map[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Keys returns the keys in order.
func (m *Map[V]) Keys() []string {
	keys := make([]string, 0, m.Len())
	for k := range m.All() {
		keys = append(keys, k)
	}
	return keys
}

// Entries returns a copy of the bindings in key order.
func (m *Map[V]) Entries() []Entry[V] {
	if m == nil {
		return nil
	}
	return slices.Clone(m.entries)
}

// All iterates the bindings in key order.
func (m *Map[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		if m == nil {
			return
		}
		for _, e := range m.entries {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Range calls fn for each binding in key order until fn returns false.
func (m *Map[V]) Range(fn func(key string, value V) bool) {
	for k, v := range m.All() {
		if !fn(k, v) {
			return
		}
	}
}

func (m *Map[V]) String() string {
	var b strings.Builder
	b.WriteString("omap[")
	first := true
	for k, v := range m.All() {
		if !first {
			b.WriteByte(' ')
		}
		first = false
		fmt.Fprintf(&b, "%s:%v", k, v)
	}
	b.WriteByte(']')
	return b.String()
}
