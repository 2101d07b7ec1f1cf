package compress

import (
	"bytes"
	"testing"

	"github.com/arloliu/featspace/format"
	"github.com/stretchr/testify/require"
)

func testPayload() []byte {
	// Repetitive, like a serialized feature set.
	var buf bytes.Buffer
	for i := range 200 {
		buf.WriteString("feature:")
		buf.WriteByte(byte('a' + i%26))
		buf.WriteString(":1.25 ")
	}

	return buf.Bytes()
}

func TestCodecs_RoundTrip(t *testing.T) {
	payload := testPayload()

	types := []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}

	for _, ct := range types {
		codec, err := GetCodec(ct)
		require.NoError(t, err, "codec %s", ct)

		compressed, err := codec.Compress(payload)
		require.NoError(t, err, "codec %s", ct)

		restored, err := codec.Decompress(compressed)
		require.NoError(t, err, "codec %s", ct)
		require.Equal(t, payload, restored, "codec %s", ct)

		if ct != format.CompressionNone {
			require.Less(t, len(compressed), len(payload), "codec %s should shrink repetitive data", ct)
		}
	}
}

func TestCodecs_EmptyInput(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		compressed, err := codec.Compress(nil)
		require.NoError(t, err, "codec %s", ct)

		restored, err := codec.Decompress(compressed)
		require.NoError(t, err, "codec %s", ct)
		require.Empty(t, restored, "codec %s", ct)
	}
}

func TestCodecs_CorruptedInput(t *testing.T) {
	garbage := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01, 0x02, 0x03}

	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionLZ4} {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		_, err = codec.Decompress(garbage)
		require.Error(t, err, "codec %s must reject garbage", ct)
	}
}

func TestGetCodec_Unknown(t *testing.T) {
	_, err := GetCodec(format.CompressionType(0xEE))
	require.Error(t, err)
}
