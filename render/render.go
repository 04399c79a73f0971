// Package render turns decoded sweep grids into images. The plotting backend
// is an injected capability: callers without one still get the textual
// Describe summary, which is what the CLI prints when no renderer is
// configured.
package render

import (
	"fmt"
	"strings"

	"github.com/radarlab/rda/errs"
	"github.com/radarlab/rda/section"
	"github.com/radarlab/rda/snapshot"
)

// Renderer draws one sweep to an output file.
type Renderer interface {
	// Render writes an image of the grid to outPath. The metadata supplies
	// the polar geometry (gate spacing, first gate) and labeling.
	Render(meta section.Metadata, grid *snapshot.Grid, outPath string) error
}

// RenderOrDescribe draws the sweep when a renderer is available. Without one,
// an image request fails with errs.ErrNoRenderer, while an empty outPath
// falls back to the textual summary; the returned string is non-empty only on
// that fallback path.
func RenderOrDescribe(r Renderer, meta section.Metadata, grid *snapshot.Grid, outPath string) (string, error) {
	if outPath == "" {
		return Describe(meta, grid), nil
	}
	if r == nil {
		return "", fmt.Errorf("%w: cannot write %s", errs.ErrNoRenderer, outPath)
	}

	return "", r.Render(meta, grid, outPath)
}

// Describe returns the plain-text summary of a sweep: dimensions, geometry
// and grid statistics. It is the fallback output when no Renderer is
// available.
func Describe(meta section.Metadata, grid *snapshot.Grid) string {
	var b strings.Builder

	fmt.Fprintf(&b, "station=%s product=%s", orUnknown(meta.Station), meta.Product)
	if meta.Timestamp != "" {
		fmt.Fprintf(&b, " time=%s", meta.Timestamp)
	}
	if meta.HasElevation {
		fmt.Fprintf(&b, " elevation=%.1f", meta.Elevation)
	}
	fmt.Fprintf(&b, "\nrays=%d gates=%d gate_spacing=%dm first_gate=%dm\n",
		grid.Rays, grid.Gates, meta.GateSpacing, meta.FirstGate)

	stats := grid.Stats()
	fmt.Fprintf(&b, "bins=%d non_zero=%d max=%.2f mean=%.2f\n",
		grid.Rays*grid.Gates, stats.NonZero, stats.Max, stats.Mean)

	return b.String()
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}

	return s
}
