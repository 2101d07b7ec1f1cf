package store

import (
	"testing"

	"github.com/arloliu/featspace/endian"
	"github.com/arloliu/featspace/format"
	"github.com/arloliu/featspace/internal/pool"
	"github.com/stretchr/testify/require"
)

func TestWriterReader_Primitives(t *testing.T) {
	sink := pool.GetStoreBuffer()
	defer pool.PutStoreBuffer(sink)

	w, err := NewWriter(sink)
	require.NoError(t, err)

	require.NoError(t, w.WriteByte(0xAB))
	require.NoError(t, w.WriteCompact(300))
	require.NoError(t, w.WriteCompactSigned(-42))
	require.NoError(t, w.WriteFloat32(1.5))
	require.NoError(t, w.WriteFloat64(-2.25))
	require.NoError(t, w.WriteString("feature name"))
	require.NoError(t, w.WriteBytes([]byte{1, 2, 3}))
	require.Equal(t, sink.Len(), w.Written())

	r, err := NewReader(sink.Bytes())
	require.NoError(t, err)

	b, err := r.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte(0xAB), b)

	u, err := r.ReadCompact()
	require.NoError(t, err)
	require.Equal(t, uint64(300), u)

	i, err := r.ReadCompactSigned()
	require.NoError(t, err)
	require.Equal(t, int64(-42), i)

	f32, err := r.ReadFloat32()
	require.NoError(t, err)
	require.Equal(t, float32(1.5), f32)

	f64, err := r.ReadFloat64()
	require.NoError(t, err)
	require.Equal(t, -2.25, f64)

	s, err := r.ReadString()
	require.NoError(t, err)
	require.Equal(t, "feature name", s)

	raw, err := r.ReadBytes(3)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, raw)

	require.Equal(t, 0, r.Remaining())
}

func TestWriterReader_BigEndianEngine(t *testing.T) {
	sink := pool.GetStoreBuffer()
	defer pool.PutStoreBuffer(sink)

	w, err := NewWriter(sink, WithWriterEngine(endian.GetBigEndianEngine()))
	require.NoError(t, err)
	require.NoError(t, w.WriteFloat64(3.5))

	// Mismatched engine decodes different bits.
	rLittle, err := NewReader(sink.Bytes())
	require.NoError(t, err)
	wrong, err := rLittle.ReadFloat64()
	require.NoError(t, err)
	require.NotEqual(t, 3.5, wrong)

	rBig, err := NewReader(sink.Bytes(), WithReaderEngine(endian.GetBigEndianEngine()))
	require.NoError(t, err)
	f, err := rBig.ReadFloat64()
	require.NoError(t, err)
	require.Equal(t, 3.5, f)
}

func TestReader_TruncatedPrimitive(t *testing.T) {
	r, err := NewReader([]byte{0x00, 0x00})
	require.NoError(t, err)

	_, err = r.ReadFloat32()
	require.Error(t, err)

	var ferr *FormatError
	require.ErrorAs(t, err, &ferr)
}

func TestReader_StringLengthBeyondInput(t *testing.T) {
	// Length prefix claims 100 bytes, only 2 present.
	data, err := AppendCompact(nil, 100)
	require.NoError(t, err)
	data = append(data, 'h', 'i')

	r, err := NewReader(data)
	require.NoError(t, err)

	_, err = r.ReadString()
	require.Error(t, err)
	require.Contains(t, err.Error(), "exceeds remaining")
}

func TestReader_CompactErrorCarriesStreamOffset(t *testing.T) {
	data := []byte{0x01, 0x02, 0x80} // third value truncated

	r, err := NewReader(data)
	require.NoError(t, err)

	_, err = r.ReadCompact()
	require.NoError(t, err)
	_, err = r.ReadCompact()
	require.NoError(t, err)

	_, err = r.ReadCompact()
	var ferr *FormatError
	require.ErrorAs(t, err, &ferr)
	require.Equal(t, 3, ferr.Offset)
}

func TestWriterReader_Blocks(t *testing.T) {
	payload := []byte("height:1.82 weight:75 age:41 height:1.82 weight:75 age:41")

	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		sink := pool.GetStoreBuffer()

		w, err := NewWriter(sink)
		require.NoError(t, err, "compression %s", ct)
		require.NoError(t, w.WriteBlock(payload, ct), "compression %s", ct)

		r, err := NewReader(sink.Bytes())
		require.NoError(t, err)

		restored, err := r.ReadBlock()
		require.NoError(t, err, "compression %s", ct)
		require.Equal(t, payload, restored, "compression %s", ct)
		require.Equal(t, 0, r.Remaining(), "compression %s", ct)

		pool.PutStoreBuffer(sink)
	}
}

func TestReader_BlockUnknownCompression(t *testing.T) {
	r, err := NewReader([]byte{0xEE, 0x00})
	require.NoError(t, err)

	_, err = r.ReadBlock()
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown block compression")
}

func TestWriter_CompactOutOfRangePropagates(t *testing.T) {
	sink := pool.GetStoreBuffer()
	defer pool.PutStoreBuffer(sink)

	w, err := NewWriter(sink)
	require.NoError(t, err)

	err = w.WriteCompact(MaxCompact + 1)
	require.Error(t, err)
	require.Equal(t, 0, w.Written())
}
