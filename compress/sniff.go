package compress

import (
	"bytes"
	"fmt"

	"github.com/radarlab/rda/format"
)

// Magic prefixes of the self-identifying container compressions.
var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
	s2Magic   = []byte{0xff, 0x06, 0x00, 0x00} // snappy/S2 stream identifier chunk
)

// Sniff inspects the leading bytes of a buffer and reports which container
// compression wrote it.
//
// Buffers with no recognized magic report CompressionNone: snapshot payloads
// start with a little-endian length prefix or a '{', neither of which collides
// with the magics above. RLE is not detectable (the legacy scheme has no
// header) and is never returned.
func Sniff(data []byte) format.CompressionType {
	switch {
	case bytes.HasPrefix(data, gzipMagic):
		return format.CompressionGzip
	case bytes.HasPrefix(data, zstdMagic):
		return format.CompressionZstd
	case bytes.HasPrefix(data, lz4Magic):
		return format.CompressionLZ4
	case bytes.HasPrefix(data, s2Magic):
		return format.CompressionS2
	default:
		return format.CompressionNone
	}
}

// AutoDecompress sniffs the buffer's compression and returns the decompressed
// bytes along with the detected type.
//
// An unrecognized buffer passes through unchanged with CompressionNone; the
// snapshot decoder downstream is the authority on whether the bytes make
// sense. This mirrors the producer's auto_decompress behavior of treating
// unknown inputs as already decompressed.
func AutoDecompress(data []byte) ([]byte, format.CompressionType, error) {
	typ := Sniff(data)
	codec, err := GetCodec(typ)
	if err != nil {
		return nil, typ, err
	}

	out, err := codec.Decompress(data)
	if err != nil {
		return nil, typ, fmt.Errorf("%s container decompression failed: %w", typ, err)
	}

	return out, typ, nil
}
