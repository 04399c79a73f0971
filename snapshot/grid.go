package snapshot

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/radarlab/rda/errs"
)

// Grid is a dense row-major ray×gate field of physical values. Cells that were
// absent from the encoded snapshot hold the zero value 0.0.
type Grid struct {
	Rays  int
	Gates int
	// Values holds Rays*Gates cells, ray-major: cell (ray, gate) lives at
	// index ray*Gates+gate.
	Values []float64
}

// NewGrid allocates a zeroed grid with the given dimensions.
//
// Returns errs.ErrInvalidDimensions when either dimension is not positive.
func NewGrid(rays int, gates int) (*Grid, error) {
	if rays <= 0 || gates <= 0 {
		return nil, fmt.Errorf("%w: rays=%d gates=%d", errs.ErrInvalidDimensions, rays, gates)
	}

	return &Grid{Rays: rays, Gates: gates, Values: make([]float64, rays*gates)}, nil
}

// At returns the value at (ray, gate). Indices are not bounds-checked beyond
// what the backing slice enforces.
func (g *Grid) At(ray int, gate int) float64 {
	return g.Values[ray*g.Gates+gate]
}

// Set stores a value at (ray, gate).
func (g *Grid) Set(ray int, gate int, v float64) {
	g.Values[ray*g.Gates+gate] = v
}

// GridStats is a compact statistical summary of one grid, mainly for
// diagnostics and CLI output.
type GridStats struct {
	// NonZero counts cells holding a value other than the grid default 0.0.
	NonZero int
	// Min and Max are taken over the whole grid, zeros included.
	Min float64
	Max float64
	// Mean and StdDev are taken over non-zero cells only, so an almost empty
	// sweep does not drown the signal in default cells. Both are 0 when no
	// cell is non-zero.
	Mean   float64
	StdDev float64
}

// Stats computes summary statistics over the grid in one pass.
func (g *Grid) Stats() GridStats {
	if len(g.Values) == 0 {
		return GridStats{}
	}

	active := make([]float64, 0, len(g.Values))
	for _, v := range g.Values {
		if v != 0 {
			active = append(active, v)
		}
	}

	s := GridStats{
		NonZero: len(active),
		Min:     floats.Min(g.Values),
		Max:     floats.Max(g.Values),
	}
	if len(active) > 0 {
		s.Mean = stat.Mean(active, nil)
		s.StdDev = stat.StdDev(active, nil)
	}

	return s
}
