package snapshot

import (
	"fmt"

	"github.com/radarlab/rda/errs"
)

// DecodeBitmask expands a bitmask-compressed payload into a dense grid.
//
// The payload layout is a presence bitmask of ceil(rays*gates/8) bytes
// followed by one quantized value byte per set bit, in bit order. Bits are
// MSB-first within each byte and address cells row-major: linear index i maps
// to cell (i/gates, i%gates).
//
// Parameters:
//   - rays: number of radials; must be positive.
//   - gates: number of range gates per radial; must be positive.
//   - product: product type selecting the dequantization range.
//   - payload: bitmask bytes plus packed value bytes.
//
// Returns errs.ErrInvalidDimensions for non-positive dimensions and
// errs.ErrDataTooShort when the payload cannot hold the full bitmask. A
// payload whose value section ends before its set bits are satisfied is not
// an error: the remaining set cells keep the default 0.0.
func DecodeBitmask(rays int, gates int, product string, payload []byte) (*Grid, error) {
	grid, err := NewGrid(rays, gates)
	if err != nil {
		return nil, err
	}

	cells := rays * gates
	maskLen := (cells + 7) / 8
	if len(payload) < maskLen {
		return nil, fmt.Errorf("%w: bitmask needs %d bytes, payload has %d",
			errs.ErrDataTooShort, maskLen, len(payload))
	}

	values := payload[maskLen:]
	next := 0
	for i := 0; i < cells; i++ {
		if payload[i/8]&(1<<(7-i%8)) == 0 {
			continue
		}
		if next >= len(values) {
			// Packed values exhausted; trailing set cells stay at 0.0.
			break
		}
		grid.Set(i/gates, i%gates, Dequantize(product, values[next]))
		next++
	}

	return grid, nil
}
