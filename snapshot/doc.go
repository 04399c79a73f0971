// Package snapshot implements the radar product snapshot codec: decoding a
// compact, versioned binary container into a dense ray×gate grid of physical
// values, and the inverse encoding used by the frame producer.
//
// # Decoding
//
// Decode is the one-shot entry point over a decompressed buffer:
//
//	res, err := snapshot.Decode(raw)
//	if err != nil { ... }
//	if res.Grid != nil {
//	    v := res.Grid.At(ray, gate)
//	}
//
// The container format is detected (length-prefixed vs. legacy whole-file
// JSON), metadata is parsed into a typed record, and the payload is decoded
// on the format's path: the bitmask grid decoder for current snapshots, or
// the triplet summarizer for the oldest fixed-width format, which yields
// statistics only.
//
// # Value encoding
//
// Grid cells are stored as one quantized byte each, mapped linearly onto the
// product's physical range (Dequantize/Quantize). Cells whose bitmask bit is
// unset hold the grid default 0.0, and so does a cell whose bit is set but
// whose packed value was lost to truncation, or one that legitimately
// decodes to 0.0. The format cannot distinguish these cases; callers that
// need presence must track it out of band.
//
// All functions are pure and the package holds no state beyond the fixed
// quantization range table; every call is independently safe for concurrent
// use.
package snapshot
