package compress

import "github.com/valyala/gozstd"

// ZstdCompressor provides Zstandard compression for the incremental
// registry cache written between site builds (internal/cache).
//
// Zstd is used here rather than LZ4 because the cache is read far more
// often than it changes and favors compression ratio over raw speed: a
// large Genera archive's registry snapshot compresses well and is reloaded
// once per build, not once per file.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

// Compress compresses data with Zstd at the default level.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 3), nil
}

// Decompress decompresses Zstd-compressed data.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.Decompress(nil, data)
}
