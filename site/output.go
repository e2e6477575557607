package site

import (
	"os"
	"strings"

	"github.com/arloliu/sabdoc/compress"
	"github.com/arloliu/sabdoc/format"
	"github.com/arloliu/sabdoc/sab"
	"github.com/arloliu/sabdoc/xmldoc"
)

// writeCompressed writes a compressed copy of an already-written output
// file next to it, named by the codec's conventional suffix (spec §4,
// domain stack: Gzip archives generated HTML pages).
func writeCompressed(outPath string, data []byte, compressionType format.CompressionType) error {
	codec, err := compress.CreateCodec(compressionType, "html page")
	if err != nil {
		return err
	}

	compressed, err := codec.Compress(data)
	if err != nil {
		return err
	}

	return os.WriteFile(outPath+compressedSuffix(compressionType), compressed, 0o644)
}

func compressedSuffix(compressionType format.CompressionType) string {
	switch compressionType {
	case format.CompressionGzip:
		return ".gz"
	case format.CompressionLZ4:
		return ".lz4"
	case format.CompressionZstd:
		return ".zst"
	default:
		return ""
	}
}

// writeXML emits the LZ4 block-compressed XML intermediate next to an HTML page's
// output path (spec §4.9: XML is "the input contract for any downstream
// consumer").
func writeXML(htmlOutPath string, file *sab.File, sourcePath string) error {
	xml := xmldoc.Render(file, sourcePath)

	codec := compress.NewLZ4Compressor()
	compressed, err := codec.Compress([]byte(xml))
	if err != nil {
		return err
	}

	xmlPath := strings.TrimSuffix(htmlOutPath, ".html") + ".xml.lz4"

	return os.WriteFile(xmlPath, compressed, 0o644)
}
