// Package compress provides the compression codecs used around radar snapshot
// containers.
//
// Snapshot files (.RDA) are written gzip-compressed; the decoder itself only
// ever sees decompressed bytes. This package supplies that boundary: a small
// Codec interface, one implementation per supported algorithm, and magic-byte
// sniffing so callers holding a raw file can decompress it without knowing how
// it was written.
//
// # Supported algorithms
//
//   - Gzip: the container default, matches every snapshot the producer writes
//   - Zstd: pure-Go by default, valyala/gozstd under the gozstd build tag
//   - LZ4: block format, fast decompression for hot caches
//   - S2: framed stream format (self-identifying, sniffable)
//   - RLE: the legacy run-length scheme predating gzip containers
//   - None: pass-through
//
// # Auto-detection
//
// Sniff inspects leading magic bytes and AutoDecompress applies the matching
// codec, falling back to pass-through for already-decompressed buffers:
//
//	raw, _ := os.ReadFile("4.0.RDA")
//	payload, typ, err := compress.AutoDecompress(raw)
//
// RLE and None are not sniffable (no magic); files using them must be
// identified out of band.
//
// # Thread safety
//
// All codecs are safe for concurrent use. Gzip and Zstd pool their internal
// encoder/decoder state.
package compress
