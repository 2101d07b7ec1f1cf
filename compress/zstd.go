package compress

// ZstdCompressor provides Zstandard compression, the preferred choice for
// archived training data where compression ratio matters more than speed.
//
// The default implementation is the pure-Go klauspost encoder; builds with
// the gozstd tag use the cgo libzstd bindings instead.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
