// Package format defines shared enums used across the featspace codec
// packages: the compression algorithms a binary store block may use, and
// the broad layout categories a feature space may declare.
package format

type (
	CompressionType uint8
	SpaceType       uint8
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.

	SpaceDense  SpaceType = 0x1 // SpaceDense represents a dense feature space layout.
	SpaceSparse SpaceType = 0x2 // SpaceSparse represents a sparse feature space layout.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

func (s SpaceType) String() string {
	switch s {
	case SpaceDense:
		return "Dense"
	case SpaceSparse:
		return "Sparse"
	default:
		return "Unknown"
	}
}
