package store

import (
	"fmt"
	"io"
	"math"

	"github.com/arloliu/featspace/compress"
	"github.com/arloliu/featspace/endian"
	"github.com/arloliu/featspace/format"
	"github.com/arloliu/featspace/internal/options"
)

// Writer is a cursor into a byte sink. It composes the compact-size codec
// with raw fixed-width primitive writes to form the sole binary transport
// used by feature space serialization.
//
// Writers are created per encode call around a longer-lived sink and must
// not be shared across goroutines.
type Writer struct {
	w       io.Writer
	engine  endian.EndianEngine
	written int
	scratch [16]byte
}

// WriterOption configures a Writer during construction.
type WriterOption = options.Option[*Writer]

// WithWriterEngine sets the byte order used for fixed-width primitives.
// The default is little-endian.
func WithWriterEngine(engine endian.EndianEngine) WriterOption {
	return options.NoError(func(w *Writer) {
		w.engine = engine
	})
}

// NewWriter creates a binary store writer around sink.
func NewWriter(sink io.Writer, opts ...WriterOption) (*Writer, error) {
	w := &Writer{
		w:      sink,
		engine: endian.GetLittleEndianEngine(),
	}

	if err := options.Apply(w, opts...); err != nil {
		return nil, err
	}

	return w, nil
}

// Written returns the total number of bytes written so far.
func (w *Writer) Written() int {
	return w.written
}

func (w *Writer) write(p []byte) error {
	n, err := w.w.Write(p)
	w.written += n
	if err != nil {
		return fmt.Errorf("store write failed: %w", err)
	}

	return nil
}

// WriteByte writes a single raw byte.
func (w *Writer) WriteByte(b byte) error {
	w.scratch[0] = b
	return w.write(w.scratch[:1])
}

// WriteBytes writes raw bytes with no framing.
func (w *Writer) WriteBytes(p []byte) error {
	return w.write(p)
}

// WriteCompact writes v in compact-size encoding.
func (w *Writer) WriteCompact(v uint64) error {
	buf, err := AppendCompact(w.scratch[:0], v)
	if err != nil {
		return err
	}

	return w.write(buf)
}

// WriteCompactSigned writes v in zigzag compact-size encoding.
func (w *Writer) WriteCompactSigned(v int64) error {
	buf, err := AppendCompactSigned(w.scratch[:0], v)
	if err != nil {
		return err
	}

	return w.write(buf)
}

// WriteFloat32 writes a fixed-width 32-bit float.
func (w *Writer) WriteFloat32(f float32) error {
	w.engine.PutUint32(w.scratch[:4], math.Float32bits(f))
	return w.write(w.scratch[:4])
}

// WriteFloat64 writes a fixed-width 64-bit float.
func (w *Writer) WriteFloat64(f float64) error {
	w.engine.PutUint64(w.scratch[:8], math.Float64bits(f))
	return w.write(w.scratch[:8])
}

// WriteString writes a compact-size length prefix followed by the raw
// string bytes.
func (w *Writer) WriteString(s string) error {
	if err := w.WriteCompact(uint64(len(s))); err != nil {
		return err
	}

	return w.write([]byte(s))
}

// WriteBlock compresses data with the given algorithm and writes it as a
// self-describing block: one algorithm byte, a compact-size compressed
// length, then the compressed bytes.
//
// Blocks let bulky payloads (large feature sets, categorical dictionaries)
// be stored compressed while the surrounding stream stays plain.
func (w *Writer) WriteBlock(data []byte, compression format.CompressionType) error {
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return err
	}

	compressed, err := codec.Compress(data)
	if err != nil {
		return fmt.Errorf("%s block compression failed: %w", compression, err)
	}

	if err := w.WriteByte(byte(compression)); err != nil {
		return err
	}
	if err := w.WriteCompact(uint64(len(compressed))); err != nil {
		return err
	}

	return w.write(compressed)
}
