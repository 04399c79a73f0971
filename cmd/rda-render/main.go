// Command rda-render decodes a snapshot file and renders it to an image, or
// prints a textual summary when no output path is given.
//
// All diagnostics, including decode failures, go to standard output; only
// flag usage errors reach stderr. Exit status is 1 on any failure.
//
// Usage:
//
//	rda-render [--output sweep.png] frame.RDA
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/radarlab/rda/compress"
	"github.com/radarlab/rda/render"
	"github.com/radarlab/rda/snapshot"
)

func main() {
	output := flag.String("output", "", "image output path; empty prints a summary instead")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: rda-render [--output sweep.png] <frame file>")
		os.Exit(1)
	}

	if err := run(os.Stdout, flag.Arg(0), *output); err != nil {
		fmt.Printf("rda-render: %v\n", err)
		os.Exit(1)
	}
}

func run(out io.Writer, inputPath, outputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}

	raw, compression, err := compress.AutoDecompress(data)
	if err != nil {
		return fmt.Errorf("decompress %s: %w", inputPath, err)
	}

	res, err := snapshot.Decode(raw)
	if err != nil {
		return fmt.Errorf("decode %s: %w", inputPath, err)
	}

	fmt.Fprintf(out, "%s: %s container, %s compression\n", inputPath, res.Meta.Format, compression)

	if res.Triplets != nil {
		fmt.Fprintf(out, "legacy triplet frame: %d records, %d trailing bytes\n",
			res.Triplets.RecordCount, res.Triplets.TrailingBytes)
		if res.Triplets.SampleValid {
			fmt.Fprintf(out, "sample value byte: %d\n", res.Triplets.SampleValue)
		}

		return nil
	}

	summary, err := render.RenderOrDescribe(&render.PolarPlotter{}, res.Meta, res.Grid, outputPath)
	if err != nil {
		return err
	}
	if summary != "" {
		fmt.Fprint(out, summary)
	} else {
		fmt.Fprintf(out, "wrote %s\n", outputPath)
	}

	return nil
}
