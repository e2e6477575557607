// Package format defines the small set of shared constants used across the
// sabdoc packages: the on-disk compression used for cached and archived
// artifacts produced by the site builder.
package format

// CompressionType identifies the codec used to compress an artifact written
// by the site builder (a cached registry snapshot, an archived XML document,
// a gzipped HTML page).
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // CompressionNone disables compression.
	CompressionGzip CompressionType = 0x2 // CompressionGzip is used for archived HTML pages.
	CompressionLZ4  CompressionType = 0x3 // CompressionLZ4 is used for the XML lossless intermediate.
	CompressionZstd CompressionType = 0x4 // CompressionZstd is used for the incremental registry cache.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionGzip:
		return "Gzip"
	case CompressionLZ4:
		return "LZ4"
	case CompressionZstd:
		return "Zstd"
	default:
		return "Unknown"
	}
}
