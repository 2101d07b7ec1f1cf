package featspace

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriterReaderRoundTrip(t *testing.T) {
	var buf bytes.Buffer

	w, err := NewWriter(&buf)
	require.NoError(t, err)
	require.NoError(t, w.WriteCompact(42))
	require.NoError(t, w.WriteString("height"))
	require.NoError(t, w.WriteFloat32(1.5))

	r, err := NewReader(buf.Bytes())
	require.NoError(t, err)

	n, err := r.ReadCompact()
	require.NoError(t, err)
	require.Equal(t, uint64(42), n)

	name, err := r.ReadString()
	require.NoError(t, err)
	require.Equal(t, "height", name)

	v, err := r.ReadFloat32()
	require.NoError(t, err)
	require.Equal(t, float32(1.5), v)
	require.Equal(t, 0, r.Remaining())
}

func TestFeatureNameID(t *testing.T) {
	id1 := FeatureNameID("height")
	id2 := FeatureNameID("height")
	require.Equal(t, id1, id2, "FeatureNameID should be deterministic")
	require.NotZero(t, id1)
	require.NotEqual(t, id1, FeatureNameID("weight"))
}
