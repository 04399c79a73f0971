package store

import (
	"io"
	"log/slog"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/radarlab/rda/compress"
	"github.com/radarlab/rda/errs"
	"github.com/radarlab/rda/format"
	"github.com/radarlab/rda/section"
	"github.com/radarlab/rda/snapshot"
)

func newTestStore(t *testing.T) *FrameStore {
	t.Helper()

	s, err := NewFrameStore(t.TempDir(),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithClock(clockwork.NewFakeClock()),
	)
	require.NoError(t, err)

	return s
}

func testFrame(t *testing.T, station, product, timestamp string, tilt float64) (section.Metadata, *snapshot.Grid) {
	t.Helper()

	grid, err := snapshot.NewGrid(4, 8)
	require.NoError(t, err)
	grid.Set(0, 0, 42)
	grid.Set(3, 7, 60.5)

	meta := section.Metadata{
		Product:      product,
		RayCount:     4,
		GateCount:    8,
		GateSpacing:  250,
		FirstGate:    2125,
		Station:      station,
		Timestamp:    timestamp,
		Elevation:    tilt,
		HasElevation: true,
	}

	return meta, grid
}

func TestFrameStoreSaveLoad(t *testing.T) {
	s := newTestStore(t)

	meta, grid := testFrame(t, "KTLX", "reflectivity", "20260823_120000", 0.5)
	require.NoError(t, s.Save(meta, grid))

	res, err := s.Load("KTLX", "reflectivity", "20260823_120000", 0.5)
	require.NoError(t, err)
	require.Equal(t, "KTLX", res.Meta.Station)
	require.NotNil(t, res.Grid)
	require.Equal(t, 2, res.Grid.Stats().NonZero)
	require.InDelta(t, 42, res.Grid.At(0, 0), 0.25)
}

func TestFrameStoreLoadMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Load("KTLX", "reflectivity", "20260823_120000", 0.5)
	require.ErrorIs(t, err, errs.ErrFrameNotFound)
}

func TestFrameStoreVolumetric(t *testing.T) {
	s := newTestStore(t)

	meta, grid := testFrame(t, "KTLX", "reflectivity", "20260823_120000", 0)
	meta.Tilts = []float64{0.5, 1.5}
	require.NoError(t, s.Save(meta, grid))

	res, err := s.LoadVolumetric("KTLX", "reflectivity", "20260823_120000")
	require.NoError(t, err)
	require.Equal(t, []float64{0.5, 1.5}, res.Meta.Tilts)

	// The volumetric file must not shadow the per-tilt namespace.
	_, err = s.Load("KTLX", "reflectivity", "20260823_120000", 0.5)
	require.ErrorIs(t, err, errs.ErrFrameNotFound)
}

func TestFrameStoreAlternateCodec(t *testing.T) {
	zstd, err := compress.GetCodec(format.CompressionZstd)
	require.NoError(t, err)

	s, err := NewFrameStore(t.TempDir(), WithCodec(zstd))
	require.NoError(t, err)

	meta, grid := testFrame(t, "KOUN", "velocity", "20260823_121000", 1.5)
	require.NoError(t, s.Save(meta, grid))

	// Load sniffs the container, so reading back needs no codec hint.
	res, err := s.Load("KOUN", "velocity", "20260823_121000", 1.5)
	require.NoError(t, err)
	require.Equal(t, "velocity", res.Meta.Product)
}

func TestFrameStoreListFrames(t *testing.T) {
	s := newTestStore(t)

	for _, ts := range []string{"20260823_110000", "20260823_120000", "20260823_100000"} {
		meta, grid := testFrame(t, "KTLX", "reflectivity", ts, 0.5)
		require.NoError(t, s.Save(meta, grid))
	}

	frames, err := s.ListFrames("KTLX", "reflectivity")
	require.NoError(t, err)
	require.Len(t, frames, 3)
	// Newest first.
	require.Equal(t, "20260823_120000", frames[0].Timestamp)
	require.Equal(t, "20260823_100000", frames[2].Timestamp)
	require.Equal(t, 0.5, frames[0].Tilt)
	require.Positive(t, frames[0].Size)

	t.Run("Unknown station is empty", func(t *testing.T) {
		frames, err := s.ListFrames("KAMA", "reflectivity")
		require.NoError(t, err)
		require.Empty(t, frames)
	})
}

func TestFrameStoreIndex(t *testing.T) {
	s := newTestStore(t)

	meta, grid := testFrame(t, "KTLX", "velocity", "20260823_120000", 0.5)
	require.NoError(t, s.Save(meta, grid))

	idx, err := s.GetIndex("KTLX", "velocity")
	require.NoError(t, err)
	require.Equal(t, "KTLX", idx.Station)
	require.Equal(t, "velocity", idx.Product)
	require.Equal(t, 1, idx.Count)
	require.Equal(t, "20260823_120000", idx.Frames[0].Timestamp)

	t.Run("Survives a cold cache", func(t *testing.T) {
		cold, err := NewFrameStore(s.basePath)
		require.NoError(t, err)

		idx, err := cold.GetIndex("KTLX", "velocity")
		require.NoError(t, err)
		require.Equal(t, 1, idx.Count)
	})

	t.Run("Missing index", func(t *testing.T) {
		_, err := s.GetIndex("KTLX", "spectrum_width")
		require.ErrorIs(t, err, errs.ErrFrameNotFound)
	})
}

func TestFrameStoreCleanup(t *testing.T) {
	s := newTestStore(t)

	timestamps := []string{
		"20260823_100000", "20260823_110000", "20260823_120000", "20260823_130000",
	}
	for _, ts := range timestamps {
		meta, grid := testFrame(t, "KTLX", "reflectivity", ts, 0.5)
		require.NoError(t, s.Save(meta, grid))
	}

	require.NoError(t, s.Cleanup(2))

	frames, err := s.ListFrames("KTLX", "reflectivity")
	require.NoError(t, err)
	require.Len(t, frames, 2)
	require.Equal(t, "20260823_130000", frames[0].Timestamp)
	require.Equal(t, "20260823_120000", frames[1].Timestamp)

	idx, err := s.GetIndex("KTLX", "reflectivity")
	require.NoError(t, err)
	require.Equal(t, 2, idx.Count)
}

func TestFrameStoreAccounting(t *testing.T) {
	s := newTestStore(t)

	meta, grid := testFrame(t, "KTLX", "reflectivity", "20260823_120000", 0.5)
	require.NoError(t, s.Save(meta, grid))
	meta, grid = testFrame(t, "KTLX", "reflectivity", "20260823_120000", 1.5)
	require.NoError(t, s.Save(meta, grid))

	count, err := s.FrameCount()
	require.NoError(t, err)
	require.Equal(t, 2, count)

	usage, err := s.DiskUsage()
	require.NoError(t, err)
	require.Positive(t, usage)

	require.True(t, s.HasFrameSet("KTLX", "reflectivity", "20260823_120000"))
	require.False(t, s.HasFrameSet("KTLX", "reflectivity", "20260823_130000"))
}

func TestFrameStoreSaveValidation(t *testing.T) {
	s := newTestStore(t)

	meta, grid := testFrame(t, "", "reflectivity", "", 0.5)
	err := s.Save(meta, grid)
	require.ErrorIs(t, err, errs.ErrMalformedMetadata)
}
