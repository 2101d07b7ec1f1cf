package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Round trip every boundary value 2^k-1, 2^k, 2^k+1 for k below the
// supported width, and verify encoded length is monotonic in the value.
func TestCompact_RoundTripBoundaries(t *testing.T) {
	var values []uint64
	for k := 0; k < 62; k++ {
		v := uint64(1) << k
		values = append(values, v-1, v, v+1)
	}
	values = append(values, MaxCompact)

	prevLen := 0
	prevVal := uint64(0)
	for _, v := range values {
		if v > MaxCompact {
			continue
		}

		encoded, err := AppendCompact(nil, v)
		require.NoError(t, err, "value %d", v)

		decoded, n, err := DecodeCompact(encoded)
		require.NoError(t, err, "value %d", v)
		require.Equal(t, v, decoded, "value %d", v)
		require.Equal(t, len(encoded), n, "value %d", v)

		if v >= prevVal {
			require.GreaterOrEqual(t, len(encoded), prevLen,
				"encoded length must be monotonic non-decreasing: value %d", v)
		}
		prevLen = len(encoded)
		prevVal = v
	}
}

func TestCompact_KnownEncodings(t *testing.T) {
	tests := []struct {
		value uint64
		want  []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7F}},
		{128, []byte{0x80, 0x80}},
		{1 << 14, []byte{0xC0, 0x40, 0x00}},
		{1 << 56, []byte{0xFF, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}},
	}

	for _, tt := range tests {
		got, err := AppendCompact(nil, tt.value)
		require.NoError(t, err, "value %d", tt.value)
		require.Equal(t, tt.want, got, "value %d", tt.value)
	}
}

func TestCompact_EncodeRejectsOutOfRange(t *testing.T) {
	_, err := AppendCompact(nil, MaxCompact+1)
	require.Error(t, err)

	var ferr *FormatError
	require.ErrorAs(t, err, &ferr)

	_, err = AppendCompact(nil, ^uint64(0))
	require.Error(t, err)
}

func TestCompact_DecodeRejectsOutOfRange(t *testing.T) {
	// Nine-byte encoding carrying 2^62 (one past the supported range).
	data := []byte{0xFF, 0x40, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}

	_, _, err := DecodeCompact(data)
	require.Error(t, err)

	var ferr *FormatError
	require.ErrorAs(t, err, &ferr)
	require.Contains(t, ferr.Msg, "range")
}

func TestCompact_DecodeRejectsNonCanonical(t *testing.T) {
	// Value 1 padded into a two-byte encoding.
	data := []byte{0x80, 0x01}

	_, _, err := DecodeCompact(data)
	require.Error(t, err)
	require.Contains(t, err.Error(), "non-canonical")
}

func TestCompact_DecodeRejectsTruncated(t *testing.T) {
	_, _, err := DecodeCompact(nil)
	require.Error(t, err)

	// Two-byte encoding with the continuation byte missing.
	_, _, err = DecodeCompact([]byte{0x80})
	require.Error(t, err)
	require.Contains(t, err.Error(), "truncated")
}

// encode(decode(bytes)) == bytes for every valid encoding we produce.
func TestCompact_EncodingBijective(t *testing.T) {
	for k := 0; k < 62; k += 3 {
		v := (uint64(1) << k) + uint64(k)
		if v > MaxCompact {
			continue
		}

		encoded, err := AppendCompact(nil, v)
		require.NoError(t, err)

		decoded, _, err := DecodeCompact(encoded)
		require.NoError(t, err)

		reencoded, err := AppendCompact(nil, decoded)
		require.NoError(t, err)
		require.Equal(t, encoded, reencoded, "value %d", v)
	}
}

func TestCompactSigned_RoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 2, -2, 63, -64, 127, -128, 1 << 20, -(1 << 20),
		(1 << 61) - 1, -(1 << 61)}

	for _, v := range values {
		encoded, err := AppendCompactSigned(nil, v)
		require.NoError(t, err, "value %d", v)

		decoded, n, err := DecodeCompactSigned(encoded)
		require.NoError(t, err, "value %d", v)
		require.Equal(t, v, decoded, "value %d", v)
		require.Equal(t, len(encoded), n, "value %d", v)
	}
}

func TestCompactSigned_SmallMagnitudesStayShort(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 31, -32} {
		encoded, err := AppendCompactSigned(nil, v)
		require.NoError(t, err)
		require.Equal(t, 1, len(encoded), "value %d", v)
	}
}

func TestCompactSigned_RejectsOutOfRange(t *testing.T) {
	_, err := AppendCompactSigned(nil, 1<<61)
	require.Error(t, err)

	_, err = AppendCompactSigned(nil, -(1<<61)-1)
	require.Error(t, err)
}
