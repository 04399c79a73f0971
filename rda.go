// Package rda decodes, encodes and stores compact weather-radar snapshot
// frames: per-sweep grids of quantized product values behind a small JSON
// header, as published by the upstream Level-II processing pipeline.
//
// # Frame layout
//
// A current frame is [u32 LE header length][JSON header][bitmask][values],
// usually wrapped in a container compression (gzip by default). The bitmask
// marks which ray×gate bins carry an echo; each set bit consumes one value
// byte, mapped linearly onto the product's physical range. Older frames are
// a single JSON object with a base64 payload, and the oldest use a
// fixed-width triplet payload that is only summarized, never gridded.
//
// # Basic usage
//
// Decoding a frame file:
//
//	data, _ := os.ReadFile("0.5.RDA")
//	res, err := rda.DecodeFile(data)
//	if err != nil { ... }
//	if res.Grid != nil {
//	    dbz := res.Grid.At(ray, gate)
//	}
//
// Producing one:
//
//	raw, _ := rda.EncodeFrame(meta, grid)
//
// # Package structure
//
// This package provides thin wrappers over the most common operations. The
// full surface lives in the subpackages: section (container framing and
// metadata), snapshot (grid codec), compress (container compressions), store
// (on-disk frame tree), fetch (bucket polling) and render (sweep images).
package rda

import (
	"github.com/radarlab/rda/compress"
	"github.com/radarlab/rda/section"
	"github.com/radarlab/rda/snapshot"
)

// Decode decodes an uncompressed snapshot buffer.
func Decode(raw []byte) (*snapshot.Result, error) {
	return snapshot.Decode(raw)
}

// DecodeFile decodes a snapshot buffer that may still carry its container
// compression, sniffing and stripping it first.
func DecodeFile(data []byte) (*snapshot.Result, error) {
	raw, _, err := compress.AutoDecompress(data)
	if err != nil {
		return nil, err
	}

	return snapshot.Decode(raw)
}

// EncodeFrame packs a grid into the current frame layout, uncompressed.
func EncodeFrame(meta section.Metadata, grid *snapshot.Grid) ([]byte, error) {
	return snapshot.Encode(meta, grid)
}
