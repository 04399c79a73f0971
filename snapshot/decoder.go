package snapshot

import (
	"fmt"

	"github.com/radarlab/rda/format"
	"github.com/radarlab/rda/section"
)

// Result is the outcome of decoding one snapshot. Exactly one of Grid and
// Triplets is set, selected by Meta.Format: every format except the legacy
// triplet one decodes a grid.
type Result struct {
	Meta     section.Metadata
	Grid     *Grid
	Triplets *TripletSummary
}

// Decode runs the full pipeline over a raw, already decompressed snapshot
// buffer: container detection, metadata parsing, then payload decoding on the
// format's path.
//
// An unknown format tag is decoded as a bitmask grid; the tag is preserved in
// Meta.Tag so callers can log it. Errors from every stage wrap the package
// sentinels in errs, so callers branch with errors.Is.
func Decode(raw []byte) (*Result, error) {
	c, err := section.DetectContainer(raw)
	if err != nil {
		return nil, fmt.Errorf("detect container: %w", err)
	}

	meta, err := section.ParseMetadata(c.Fields)
	if err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}

	res := &Result{Meta: meta}
	if meta.Format == format.FormatTriplet {
		summary := SummarizeTriplets(c.Payload)
		res.Triplets = &summary

		return res, nil
	}

	grid, err := DecodeBitmask(meta.RayCount, meta.GateCount, meta.Product, c.Payload)
	if err != nil {
		return nil, fmt.Errorf("decode %s grid: %w", meta.Product, err)
	}
	res.Grid = grid

	return res, nil
}
