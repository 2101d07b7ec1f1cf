package store

import (
	"fmt"
	"math"

	"github.com/arloliu/featspace/compress"
	"github.com/arloliu/featspace/endian"
	"github.com/arloliu/featspace/format"
	"github.com/arloliu/featspace/internal/options"
)

// Reader is a cursor into an already-available byte sequence. Every read
// either fully succeeds or fails with a *FormatError; after a failure the
// stream position is unspecified and the Reader must be abandoned.
type Reader struct {
	data   []byte
	pos    int
	engine endian.EndianEngine
}

// ReaderOption configures a Reader during construction.
type ReaderOption = options.Option[*Reader]

// WithReaderEngine sets the byte order used for fixed-width primitives.
// The default is little-endian.
func WithReaderEngine(engine endian.EndianEngine) ReaderOption {
	return options.NoError(func(r *Reader) {
		r.engine = engine
	})
}

// NewReader creates a binary store reader over data. The reader keeps a
// reference to data; the caller must not mutate it while reading.
func NewReader(data []byte, opts ...ReaderOption) (*Reader, error) {
	r := &Reader{
		data:   data,
		engine: endian.GetLittleEndianEngine(),
	}

	if err := options.Apply(r, opts...); err != nil {
		return nil, err
	}

	return r, nil
}

// Offset returns the current stream offset.
func (r *Reader) Offset() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

func (r *Reader) errorf(formatStr string, args ...any) error {
	return &FormatError{Offset: r.pos, Msg: fmt.Sprintf(formatStr, args...)}
}

// take consumes n bytes and returns them as a view into the underlying
// data. The view is only valid while the underlying data is.
func (r *Reader) take(n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, r.errorf("need %d bytes, have %d", n, r.Remaining())
	}

	p := r.data[r.pos : r.pos+n]
	r.pos += n

	return p, nil
}

// ReadByte reads a single raw byte.
func (r *Reader) ReadByte() (byte, error) {
	p, err := r.take(1)
	if err != nil {
		return 0, err
	}

	return p[0], nil
}

// ReadBytes reads n raw bytes. The returned slice is a view into the
// reader's data and must not be modified.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	return r.take(n)
}

// ReadCompact reads one compact-size integer.
func (r *Reader) ReadCompact() (uint64, error) {
	v, n, err := DecodeCompact(r.data[r.pos:])
	if err != nil {
		ferr := err.(*FormatError) //nolint:errcheck
		ferr.Offset += r.pos

		return 0, ferr
	}

	r.pos += n

	return v, nil
}

// ReadCompactSigned reads one zigzag compact-size integer.
func (r *Reader) ReadCompactSigned() (int64, error) {
	v, n, err := DecodeCompactSigned(r.data[r.pos:])
	if err != nil {
		ferr := err.(*FormatError) //nolint:errcheck
		ferr.Offset += r.pos

		return 0, ferr
	}

	r.pos += n

	return v, nil
}

// ReadFloat32 reads a fixed-width 32-bit float.
func (r *Reader) ReadFloat32() (float32, error) {
	p, err := r.take(4)
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(r.engine.Uint32(p)), nil
}

// ReadFloat64 reads a fixed-width 64-bit float.
func (r *Reader) ReadFloat64() (float64, error) {
	p, err := r.take(8)
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(r.engine.Uint64(p)), nil
}

// ReadString reads a compact-size length prefix followed by that many raw
// string bytes.
func (r *Reader) ReadString() (string, error) {
	length, err := r.ReadCompact()
	if err != nil {
		return "", err
	}
	if length > uint64(r.Remaining()) { //nolint:gosec
		return "", r.errorf("string length %d exceeds remaining %d bytes", length, r.Remaining())
	}

	p, err := r.take(int(length))
	if err != nil {
		return "", err
	}

	return string(p), nil
}

// ReadBlock reads one block written by Writer.WriteBlock and returns the
// decompressed payload.
func (r *Reader) ReadBlock() ([]byte, error) {
	algo, err := r.ReadByte()
	if err != nil {
		return nil, err
	}

	compression := format.CompressionType(algo)
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, r.errorf("unknown block compression 0x%02x", algo)
	}

	length, err := r.ReadCompact()
	if err != nil {
		return nil, err
	}
	if length > uint64(r.Remaining()) { //nolint:gosec
		return nil, r.errorf("block length %d exceeds remaining %d bytes", length, r.Remaining())
	}

	compressed, err := r.take(int(length))
	if err != nil {
		return nil, err
	}

	payload, err := codec.Decompress(compressed)
	if err != nil {
		return nil, r.errorf("%s block decompression failed: %v", compression, err)
	}

	return payload, nil
}
