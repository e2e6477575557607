// Package compress provides compression codecs for the artifacts the site
// builder writes alongside the primary HTML/XML output.
//
// Three algorithms are wired to three distinct artifact kinds, each chosen
// for the access pattern of that artifact:
//
//   - Gzip (klauspost/compress/gzip): archived copies of generated HTML
//     pages, written once per build and served statically many times.
//   - LZ4 (pierrec/lz4): the XML lossless intermediate, written once per
//     file and read many times by downstream consumers (search indexer,
//     embedder) that favor fast decompression over compression ratio.
//   - Zstd (valyala/gozstd): the incremental registry cache persisted
//     between builds, where compression ratio matters more because the
//     cache is read once per build but can be large for big archives.
//
// NoOp is available for testing and for callers that want the Codec
// interface without any compression.
package compress
