package hash

import "github.com/cespare/xxhash/v2"

// NameID computes the xxHash64 of a feature name. Name tables use it as the
// lookup key so that repeated interning of the same name never rehashes the
// full string through Go's map internals.
func NameID(name string) uint64 {
	return xxhash.Sum64String(name)
}
