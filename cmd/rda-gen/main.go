// Command rda-gen produces synthetic snapshot files for testing the decode
// and render tooling without real radar data.
package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/radarlab/rda/compress"
	"github.com/radarlab/rda/format"
	"github.com/radarlab/rda/section"
	"github.com/radarlab/rda/snapshot"
)

func main() {
	var (
		output      = flag.String("output", "", "output frame path (required)")
		station     = flag.String("station", "KTLX", "station identifier")
		product     = flag.String("product", "reflectivity", "product type")
		rays        = flag.Int("rays", 720, "ray count")
		gates       = flag.Int("gates", 1832, "gate count")
		elevation   = flag.Float64("elevation", 0.5, "tilt angle in degrees")
		cells       = flag.Int("cells", 5, "number of synthetic storm cells")
		compression = flag.String("compress", "gzip", "container compression: none, gzip, zstd, lz4, s2")
		seed        = flag.Int64("seed", 0, "random seed; 0 uses the current time")
	)
	flag.Parse()

	if *output == "" {
		fmt.Fprintln(os.Stderr, "usage: rda-gen --output frame.RDA [flags]")
		os.Exit(1)
	}

	if err := run(*output, *station, *product, *rays, *gates, *elevation, *cells, *compression, *seed); err != nil {
		fmt.Fprintf(os.Stderr, "rda-gen: %v\n", err)
		os.Exit(1)
	}
}

func run(output, station, product string, rays, gates int, elevation float64, cells int, compression string, seed int64) error {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	grid, err := snapshot.NewGrid(rays, gates)
	if err != nil {
		return err
	}
	paintStormCells(rng, grid, snapshot.RangeFor(product), cells)

	meta := section.Metadata{
		Product:      product,
		RayCount:     rays,
		GateCount:    gates,
		GateSpacing:  section.DefaultGateSpacing,
		FirstGate:    section.DefaultFirstGate,
		Station:      station,
		Timestamp:    time.Now().UTC().Format("20060102_150405"),
		Elevation:    elevation,
		HasElevation: true,
	}

	raw, err := snapshot.Encode(meta, grid)
	if err != nil {
		return err
	}

	typ, ok := format.ParseCompressionType(compression)
	if !ok {
		return fmt.Errorf("unknown compression %q", compression)
	}
	codec, err := compress.CreateCodec(typ, "generator output")
	if err != nil {
		return err
	}
	compressed, err := codec.Compress(raw)
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, compressed, 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %s: %dx%d %s, %d non-zero bins, %d bytes\n",
		output, rays, gates, product, grid.Stats().NonZero, len(compressed))

	return nil
}

// paintStormCells scatters gaussian echo blobs across the sweep.
func paintStormCells(rng *rand.Rand, grid *snapshot.Grid, qr snapshot.QuantRange, cells int) {
	for c := 0; c < cells; c++ {
		centerRay := rng.Intn(grid.Rays)
		centerGate := rng.Intn(grid.Gates)
		radius := 2 + rng.Intn(grid.Gates/10+1)
		peak := qr.Min + (0.5+0.5*rng.Float64())*(qr.Max-qr.Min)

		for dr := -radius; dr <= radius; dr++ {
			ray := ((centerRay+dr)%grid.Rays + grid.Rays) % grid.Rays
			for dg := -radius; dg <= radius; dg++ {
				gate := centerGate + dg
				if gate < 0 || gate >= grid.Gates {
					continue
				}
				dist2 := float64(dr*dr + dg*dg)
				v := peak * math.Exp(-dist2/float64(radius*radius))
				if v > grid.At(ray, gate) {
					grid.Set(ray, gate, v)
				}
			}
		}
	}
}
