// Package buffer provides the byte accumulators used by the text parsing
// and encoding paths.
//
// Two variants share the same append contract:
//
//   - Growing: starts with inline storage sized for the common case (short
//     JSON keys and tokens) and spills to the heap with geometric growth on
//     overflow. Appends never fail.
//   - External: wraps caller-provided storage of fixed capacity and reports
//     ErrOverflow instead of growing, so "did not fit" stays a recoverable
//     condition for the caller.
//
// Buffers are call-scoped and must not be shared across goroutines.
package buffer

import "errors"

// InlineSize is the inline storage capacity of a Growing buffer.
//
// Appends within this size never allocate, which is the dominant case when
// parsing small JSON keys and strings.
const InlineSize = 4096

// growthFactor trades memory for fewer reallocations in hot parsing paths.
const growthFactor = 8

// ErrOverflow is returned by External.AppendByte when the wrapped storage
// is full. It is a distinct error kind from parse errors so callers can
// turn "did not fit" into a non-fatal result.
var ErrOverflow = errors.New("buffer: capacity exceeded")

// Growing is an append-only byte accumulator with inline first-tier storage.
//
// The zero value is not usable; create instances with NewGrowing. A Growing
// buffer must not be copied after first use, since the active slice may
// alias the inline storage.
type Growing struct {
	inline [InlineSize]byte
	data   []byte
}

// NewGrowing creates an empty growing buffer backed by inline storage.
func NewGrowing() *Growing {
	g := &Growing{}
	g.data = g.inline[:0]

	return g
}

// AppendByte appends a single byte, spilling to heap storage on overflow.
// Amortized O(1).
func (g *Growing) AppendByte(c byte) {
	if len(g.data) == cap(g.data) {
		g.spill(1)
	}
	g.data = append(g.data, c)
}

// Append appends the contents of p.
func (g *Growing) Append(p []byte) {
	if len(g.data)+len(p) > cap(g.data) {
		g.spill(len(p))
	}
	g.data = append(g.data, p...)
}

// spill moves the accumulated bytes to a new heap allocation large enough
// for at least need more bytes. The previous storage is left for the GC;
// the buffer is the single owner of the new allocation.
func (g *Growing) spill(need int) {
	newCap := cap(g.data) * growthFactor
	for newCap < len(g.data)+need {
		newCap *= growthFactor
	}

	newData := make([]byte, len(g.data), newCap)
	copy(newData, g.data)
	g.data = newData
}

// Len returns the number of bytes written.
func (g *Growing) Len() int {
	return len(g.data)
}

// Bytes returns the accumulated bytes.
//
// The returned slice is valid until the next append and must not be
// modified by the caller.
func (g *Growing) Bytes() []byte {
	return g.data
}

// String returns an owned copy of the accumulated bytes. The buffer
// remains usable afterwards.
func (g *Growing) String() string {
	return string(g.data)
}

// Reset resets the buffer to be empty, retaining current storage.
func (g *Growing) Reset() {
	g.data = g.data[:0]
}

// External is an append-only view over caller-provided storage of fixed
// capacity. It never allocates; appending past capacity fails with
// ErrOverflow and leaves previously written bytes intact.
type External struct {
	storage []byte
	pos     int
}

// NewExternal wraps the given storage. Its length is the buffer capacity.
func NewExternal(storage []byte) *External {
	return &External{storage: storage}
}

// AppendByte appends a single byte, or returns ErrOverflow when the
// storage is full.
func (e *External) AppendByte(c byte) error {
	if e.pos == len(e.storage) {
		return ErrOverflow
	}

	e.storage[e.pos] = c
	e.pos++

	return nil
}

// Len returns the number of bytes written.
func (e *External) Len() int {
	return e.pos
}

// Bytes returns the written prefix of the wrapped storage.
func (e *External) Bytes() []byte {
	return e.storage[:e.pos]
}

// String returns an owned copy of the written bytes.
func (e *External) String() string {
	return string(e.storage[:e.pos])
}

// Reset forgets written bytes without touching the underlying storage.
func (e *External) Reset() {
	e.pos = 0
}
