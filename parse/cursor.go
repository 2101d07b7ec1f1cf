// Package parse provides the backtracking text cursor and the JSON-subset
// scanner built on top of it.
//
// The cursor supports two failure disciplines, kept deliberately distinct:
//
//   - Match* operations are probes: they never return an error and leave the
//     cursor exactly where it was when the probe fails, so callers can try
//     alternative grammars without bookkeeping.
//   - Expect* operations are committed: they return a descriptive *Error
//     carrying the byte offset when the input does not conform. After a
//     failed composite Expect the cursor position is unspecified; the caller
//     is expected to abandon the parse.
//
// Speculative scopes use checkpoints:
//
//	cp := c.Checkpoint()
//	defer cp.Rollback()
//	// ... trial parse ...
//	cp.Commit() // on success; Rollback becomes a no-op
//
// Cursors are call-scoped and must not be shared across goroutines.
package parse

import (
	"bytes"
	"fmt"
)

// Error is a committed parse failure. It carries the byte offset at which
// the failure was detected so callers can produce actionable messages.
type Error struct {
	Offset int
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Offset, e.Msg)
}

// Cursor is a position-tracking view over an input byte sequence.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor creates a cursor positioned at the start of data. The cursor
// keeps a reference to data; the caller must not mutate it during the parse.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Offset returns the current byte offset.
func (c *Cursor) Offset() int {
	return c.pos
}

// AtEnd reports whether the input is exhausted.
func (c *Cursor) AtEnd() bool {
	return c.pos >= len(c.data)
}

// Peek returns the current byte without consuming it.
// Panics at end of input; callers must check AtEnd first.
func (c *Cursor) Peek() byte {
	if c.pos >= len(c.data) {
		panic("parse: Peek past end of input")
	}

	return c.data[c.pos]
}

// Advance returns and consumes one byte.
// Panics at end of input; callers must check AtEnd first.
func (c *Cursor) Advance() byte {
	if c.pos >= len(c.data) {
		panic("parse: Advance past end of input")
	}

	b := c.data[c.pos]
	c.pos++

	return b
}

// MatchByte consumes the next byte and returns true iff it equals b.
// Consumes nothing on mismatch or at end of input.
func (c *Cursor) MatchByte(b byte) bool {
	if c.pos < len(c.data) && c.data[c.pos] == b {
		c.pos++
		return true
	}

	return false
}

// MatchLiteral consumes the upcoming bytes and returns true iff they equal
// lit. Consumes nothing on mismatch.
func (c *Cursor) MatchLiteral(lit string) bool {
	if len(c.data)-c.pos < len(lit) {
		return false
	}
	if !bytes.HasPrefix(c.data[c.pos:], []byte(lit)) {
		return false
	}

	c.pos += len(lit)

	return true
}

// ExpectByte consumes the next byte if it equals b, otherwise returns an
// *Error at the current offset and leaves the cursor unchanged.
func (c *Cursor) ExpectByte(b byte) error {
	if c.MatchByte(b) {
		return nil
	}

	return c.Errorf("expected %q", string(b))
}

// ExpectLiteral consumes lit if it is next in the input, otherwise returns
// an *Error at the current offset and leaves the cursor unchanged.
func (c *Cursor) ExpectLiteral(lit string) error {
	if c.MatchLiteral(lit) {
		return nil
	}

	return c.Errorf("expected %q", lit)
}

// Errorf builds an *Error at the current offset.
func (c *Cursor) Errorf(format string, args ...any) error {
	return &Error{Offset: c.pos, Msg: fmt.Sprintf(format, args...)}
}

// Checkpoint captures the current offset for a speculative scope.
// Exactly one checkpoint should be live per scope.
type Checkpoint struct {
	cursor *Cursor
	pos    int
	done   bool
}

// Checkpoint begins a speculative scope at the current offset.
//
// The idiomatic pattern is to defer Rollback immediately and Commit on
// success; every early-return and error path is then covered.
func (c *Cursor) Checkpoint() Checkpoint {
	return Checkpoint{cursor: c, pos: c.pos}
}

// Commit discards the saved offset, suppressing any later Rollback.
func (cp *Checkpoint) Commit() {
	cp.done = true
}

// Rollback restores the cursor to the checkpointed offset unless the
// checkpoint was committed. Safe to call more than once.
func (cp *Checkpoint) Rollback() {
	if cp.done {
		return
	}

	cp.cursor.pos = cp.pos
	cp.done = true
}
