package snapshot

import (
	"encoding/json"
	"fmt"

	"github.com/radarlab/rda/endian"
	"github.com/radarlab/rda/errs"
	"github.com/radarlab/rda/format"
	"github.com/radarlab/rda/section"
)

// Encode packs a grid into the current length-prefixed container:
// [u32 LE metadata length][JSON metadata][bitmask][quantized values].
//
// A cell participates in the bitmask iff its value differs from the grid
// default 0.0; participating cells are quantized into one byte each on the
// product's range. Decode(Encode(meta, grid)) reproduces the grid up to
// quantization error.
//
// The metadata record's dimensions must match the grid's; the format tag is
// always written as the bitmask tag regardless of meta.Format.
func Encode(meta section.Metadata, grid *Grid) ([]byte, error) {
	if grid == nil || grid.Rays <= 0 || grid.Gates <= 0 {
		return nil, fmt.Errorf("%w: nil or empty grid", errs.ErrInvalidDimensions)
	}
	if meta.RayCount != grid.Rays || meta.GateCount != grid.Gates {
		return nil, fmt.Errorf("%w: metadata %dx%d vs grid %dx%d",
			errs.ErrInvalidDimensions, meta.RayCount, meta.GateCount, grid.Rays, grid.Gates)
	}

	cells := grid.Rays * grid.Gates
	mask := make([]byte, (cells+7)/8)
	values := make([]byte, 0, cells/8)
	for i, v := range grid.Values {
		if v == 0 {
			continue
		}
		mask[i/8] |= 1 << (7 - i%8)
		values = append(values, Quantize(meta.Product, v))
	}

	metaText, err := json.Marshal(headerFields(meta, len(values)))
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}
	if len(metaText) >= section.MaxMetadataSize {
		return nil, fmt.Errorf("%w: metadata text is %d bytes",
			errs.ErrMalformedMetadata, len(metaText))
	}

	engine := endian.GetLittleEndianEngine()
	buf := make([]byte, 0, section.LenPrefixSize+len(metaText)+len(mask)+len(values))
	buf = engine.AppendUint32(buf, uint32(len(metaText)))
	buf = append(buf, metaText...)
	buf = append(buf, mask...)

	return append(buf, values...), nil
}

// headerFields renders a metadata record back to the short-key JSON mapping.
// Zero-valued optional fields are omitted, matching the producer.
func headerFields(meta section.Metadata, valueCount int) map[string]any {
	fields := map[string]any{
		"f":  format.FormatBitmask.Tag(),
		"p":  meta.Product,
		"r":  meta.RayCount,
		"g":  meta.GateCount,
		"gs": meta.GateSpacing,
		"fg": meta.FirstGate,
		"v":  valueCount,
	}
	if meta.HasElevation {
		fields["e"] = meta.Elevation
	}
	if meta.Timestamp != "" {
		fields["t"] = meta.Timestamp
	}
	if meta.Station != "" {
		fields["s"] = meta.Station
	}
	if len(meta.Tilts) > 0 {
		fields["tilts"] = meta.Tilts
	}

	return fields
}
