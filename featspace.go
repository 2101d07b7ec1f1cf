// Package featspace provides the encode/decode core of a machine-learning
// toolkit: a backtracking text cursor with a JSON-subset scanner, a compact
// variable-length integer codec, a sequential binary store with optional
// per-block compression, and the polymorphic feature-space contract that
// learning algorithms serialize their inputs and models through.
//
// # Core Features
//
//   - Checkpoint/rollback text parsing for composable grammars (parse)
//   - Canonical compact-size integers, 1-9 bytes, bijective on [0, 2^62) (store)
//   - Binary store Writer/Reader with Zstd, S2 and LZ4 block compression
//   - Opaque feature tuples with pluggable Space implementations (feature)
//   - Class-id tagged space serialization with a reconstitution registry
//   - xxHash64-backed feature name interning with one-way freeze
//
// # Basic Usage
//
// Writing and reading a binary store:
//
//	import "github.com/arloliu/featspace"
//
//	var buf bytes.Buffer
//	w, _ := featspace.NewWriter(&buf)
//	w.WriteCompact(42)
//	w.WriteString("height")
//
//	r, _ := featspace.NewReader(buf.Bytes())
//	n, _ := r.ReadCompact()
//	name, _ := r.ReadString()
//
// Serializing a feature space polymorphically:
//
//	w, _ := featspace.NewWriter(&buf)
//	featspace.SerializeSpace(w, space)
//
//	r, _ := featspace.NewReader(buf.Bytes())
//	space, err := featspace.ReconstituteSpace(r)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the store and
// feature packages, simplifying the most common use cases. For fine-grained
// control (endianness, custom spaces, the JSON scanner) use the store,
// feature, parse and buffer packages directly.
package featspace

import (
	"io"

	"github.com/arloliu/featspace/feature"
	"github.com/arloliu/featspace/internal/hash"
	"github.com/arloliu/featspace/store"
)

// NewWriter creates a binary store writer on top of sink.
//
// The default byte order is little-endian; pass store.WithWriterEngine to
// override it.
func NewWriter(sink io.Writer, opts ...store.WriterOption) (*store.Writer, error) {
	return store.NewWriter(sink, opts...)
}

// NewReader creates a binary store reader over data.
//
// The reader does not copy data; the caller must not mutate it while the
// reader is in use.
func NewReader(data []byte, opts ...store.ReaderOption) (*store.Reader, error) {
	return store.NewReader(data, opts...)
}

// SerializeSpace writes a feature space with its class id, so it can be
// reconstituted without knowing the concrete variant up front.
func SerializeSpace(w *store.Writer, s feature.Space) error {
	return feature.SerializeSpace(w, s)
}

// ReconstituteSpace reads a space written by SerializeSpace, constructing
// the variant registered under the stored class id.
//
// Variants register themselves with feature.Register, normally from an
// init function. To reconstitute into an existing instance instead, use
// feature.ReconstituteSpace.
func ReconstituteSpace(r *store.Reader) (feature.Space, error) {
	return feature.ReconstituteAny(r)
}

// FeatureNameID converts a feature name to its 64-bit hash identifier.
//
// The same xxHash64 digest backs feature.NameTable lookups, so IDs computed
// here agree with interned tables across processes and blobs.
func FeatureNameID(name string) uint64 {
	return hash.NameID(name)
}
