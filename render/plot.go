package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/radarlab/rda/errs"
	"github.com/radarlab/rda/section"
	"github.com/radarlab/rda/snapshot"
)

// PolarPlotter renders a sweep as a north-up plan view: ray 0 points north,
// azimuth increases clockwise, and each non-zero bin becomes one colored
// point at its ground range.
type PolarPlotter struct {
	// Size is the square output size. Zero means 8 inches.
	Size vg.Length
	// GlyphRadius is the per-bin marker size. Zero means 1 point.
	GlyphRadius vg.Length
}

var _ Renderer = (*PolarPlotter)(nil)

// Render draws the grid to outPath. The image format follows the path
// extension, any of the formats gonum/plot can save.
func (pp *PolarPlotter) Render(meta section.Metadata, grid *snapshot.Grid, outPath string) error {
	if grid == nil {
		return fmt.Errorf("%w: no grid to render", errs.ErrInvalidDimensions)
	}

	size := pp.Size
	if size == 0 {
		size = 8 * vg.Inch
	}
	radius := pp.GlyphRadius
	if radius == 0 {
		radius = vg.Points(1)
	}

	qr := snapshot.RangeFor(meta.Product)
	pts, colors := projectBins(meta, grid, qr)

	p := plot.New()
	p.Title.Text = plotTitle(meta)
	p.X.Label.Text = "East-West (km)"
	p.Y.Label.Text = "North-South (km)"

	if len(pts) > 0 {
		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("build scatter: %w", err)
		}
		scatter.GlyphStyleFunc = func(i int) draw.GlyphStyle {
			return draw.GlyphStyle{
				Color:  colors[i],
				Radius: radius,
				Shape:  draw.CircleGlyph{},
			}
		}
		p.Add(scatter)
	}

	// Keep the aspect square so range rings stay circular.
	maxRange := rangeKM(meta, grid.Gates-1)
	p.X.Min, p.X.Max = -maxRange, maxRange
	p.Y.Min, p.Y.Max = -maxRange, maxRange

	if err := p.Save(size, size, outPath); err != nil {
		return fmt.Errorf("save sweep image: %w", err)
	}

	return nil
}

// projectBins converts non-zero bins to cartesian points with one color per
// point, scaled over the product's value range.
func projectBins(meta section.Metadata, grid *snapshot.Grid, qr snapshot.QuantRange) (plotter.XYs, []color.Color) {
	pts := make(plotter.XYs, 0, grid.Stats().NonZero)
	colors := make([]color.Color, 0, cap(pts))

	for ray := 0; ray < grid.Rays; ray++ {
		azimuth := 2 * math.Pi * float64(ray) / float64(grid.Rays)
		for gate := 0; gate < grid.Gates; gate++ {
			v := grid.At(ray, gate)
			if v == 0 {
				continue
			}

			r := rangeKM(meta, gate)
			pts = append(pts, plotter.XY{
				X: r * math.Sin(azimuth),
				Y: r * math.Cos(azimuth),
			})
			colors = append(colors, valueColor(v, qr))
		}
	}

	return pts, colors
}

// rangeKM is the ground range of a gate center in kilometers.
func rangeKM(meta section.Metadata, gate int) float64 {
	return (float64(meta.FirstGate) + float64(gate)*float64(meta.GateSpacing)) / 1000.0
}

// valueColor maps a physical value onto a blue-to-red hue ramp over the
// product's range.
func valueColor(v float64, qr snapshot.QuantRange) color.Color {
	frac := (v - qr.Min) / (qr.Max - qr.Min)
	frac = math.Max(0, math.Min(1, frac))

	// Hue 2/3 (blue) down to 0 (red), strongest echoes hottest.
	r, g, b := hslToRGB((1-frac)*2.0/3.0, 0.9, 0.5)

	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func plotTitle(meta section.Metadata) string {
	title := meta.Product
	if meta.Station != "" {
		title = meta.Station + " " + title
	}
	if meta.Timestamp != "" {
		title += " " + meta.Timestamp
	}
	if meta.HasElevation {
		title += fmt.Sprintf(" %.1f°", meta.Elevation)
	}

	return title
}

// hslToRGB converts HSL to RGB (0-255 range).
func hslToRGB(h, s, l float64) (r, g, b uint8) {
	var rf, gf, bf float64

	if s == 0 {
		rf, gf, bf = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p := 2*l - q
		rf = hueToRGB(p, q, h+1.0/3.0)
		gf = hueToRGB(p, q, h)
		bf = hueToRGB(p, q, h-1.0/3.0)
	}

	return uint8(rf * 255), uint8(gf * 255), uint8(bf * 255)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	if t < 1.0/6.0 {
		return p + (q-p)*6*t
	}
	if t < 1.0/2.0 {
		return q
	}
	if t < 2.0/3.0 {
		return p + (q-p)*(2.0/3.0-t)*6
	}

	return p
}
