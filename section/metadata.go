package section

import (
	"encoding/json"
	"fmt"

	"github.com/radarlab/rda/errs"
	"github.com/radarlab/rda/format"
)

// Metadata is the typed header record of a snapshot.
//
// It is produced once per decode by ParseMetadata, with all defaulting and
// validation centralized there; the raw key/value mapping never travels past
// this package.
type Metadata struct {
	// Format is the container format derived from the "f" tag.
	Format format.ContainerFormat
	// Tag preserves the raw "f" value for diagnostics; an unknown tag still
	// decodes on the bitmask path but callers may want to warn.
	Tag string

	// Product is the meteorological quantity ("p"), selecting the
	// quantization range. Defaults to "reflectivity".
	Product string
	// RayCount is the number of angular sweep lines ("r"). Defaults to 720.
	RayCount int
	// GateCount is the number of range bins per ray ("g"). Required and
	// nonzero for every format that decodes a grid.
	GateCount int
	// GateSpacing is the range-bin spacing in meters ("gs"). Defaults to 250.
	GateSpacing int
	// FirstGate is the range of the first gate in meters ("fg").
	// Defaults to 2125.
	FirstGate int

	// Display-only passthrough fields, never validated.
	Elevation    float64 // "e", tilt angle in degrees
	HasElevation bool
	Timestamp    string    // "t"
	Station      string    // "s"
	ValueCount   int       // "v", packed value count recorded by the producer
	Tilts        []float64 // "tilts", present on volumetric snapshots
}

// ParseMetadata converts the decoded key/value mapping into a Metadata
// record, applying defaults and validating required fields.
//
// Gate count is required for every format except the legacy triplet one,
// which never reconstructs a grid: absence or zero fails with
// errs.ErrMissingGateCount before any payload byte is inspected.
//
// Fields of the wrong JSON type are treated as absent; the producer has
// always written numbers for numeric keys, and guessing at coerced values
// would hide corruption.
func ParseMetadata(fields map[string]any) (Metadata, error) {
	meta := Metadata{
		Tag:         stringField(fields, "f", ""),
		Product:     stringField(fields, "p", DefaultProduct),
		RayCount:    intField(fields, "r", DefaultRayCount),
		GateCount:   intField(fields, "g", 0),
		GateSpacing: intField(fields, "gs", DefaultGateSpacing),
		FirstGate:   intField(fields, "fg", DefaultFirstGate),
		Timestamp:   stringField(fields, "t", ""),
		Station:     stringField(fields, "s", ""),
		ValueCount:  intField(fields, "v", 0),
	}
	meta.Format = format.ParseContainerFormat(meta.Tag)

	if e, ok := fields["e"].(float64); ok {
		meta.Elevation = e
		meta.HasElevation = true
	}
	if raw, ok := fields["tilts"].([]any); ok {
		tilts := make([]float64, 0, len(raw))
		for _, v := range raw {
			if f, ok := v.(float64); ok {
				tilts = append(tilts, f)
			}
		}
		meta.Tilts = tilts
	}

	if meta.Format != format.FormatTriplet && meta.GateCount == 0 {
		return Metadata{}, errs.ErrMissingGateCount
	}

	return meta, nil
}

// ParseMetadataJSON decodes a JSON metadata text into the untyped mapping.
//
// Returns errs.ErrMalformedMetadata when the text is not a JSON object.
func ParseMetadataJSON(text []byte) (map[string]any, error) {
	var fields map[string]any
	if err := json.Unmarshal(text, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrMalformedMetadata, err)
	}

	return fields, nil
}

// intField reads a numeric key, truncating to int. JSON numbers decode as
// float64; the producer writes gate spacing and first gate as floats even
// though they are whole meters.
func intField(fields map[string]any, key string, def int) int {
	if v, ok := fields[key].(float64); ok {
		return int(v)
	}

	return def
}

func stringField(fields map[string]any, key, def string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}

	return def
}
