package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/radarlab/rda/errs"
	"github.com/radarlab/rda/format"
)

func TestParseMetadata(t *testing.T) {
	t.Run("Full bitmask header", func(t *testing.T) {
		fields := map[string]any{
			"f": "b", "p": "velocity", "r": float64(360), "g": float64(1832),
			"gs": float64(250), "fg": float64(2125), "e": 0.5,
			"t": "20260214_031500", "s": "KTLX", "v": float64(1234),
		}

		meta, err := ParseMetadata(fields)
		require.NoError(t, err)
		require.Equal(t, format.FormatBitmask, meta.Format)
		require.Equal(t, "velocity", meta.Product)
		require.Equal(t, 360, meta.RayCount)
		require.Equal(t, 1832, meta.GateCount)
		require.Equal(t, 250, meta.GateSpacing)
		require.Equal(t, 2125, meta.FirstGate)
		require.True(t, meta.HasElevation)
		require.InDelta(t, 0.5, meta.Elevation, 1e-9)
		require.Equal(t, "20260214_031500", meta.Timestamp)
		require.Equal(t, "KTLX", meta.Station)
		require.Equal(t, 1234, meta.ValueCount)
	})

	t.Run("Defaults applied", func(t *testing.T) {
		meta, err := ParseMetadata(map[string]any{"f": "b", "g": float64(100)})
		require.NoError(t, err)
		require.Equal(t, DefaultRayCount, meta.RayCount)
		require.Equal(t, DefaultGateSpacing, meta.GateSpacing)
		require.Equal(t, DefaultFirstGate, meta.FirstGate)
		require.Equal(t, DefaultProduct, meta.Product)
		require.False(t, meta.HasElevation)
	})

	t.Run("Missing gate count", func(t *testing.T) {
		_, err := ParseMetadata(map[string]any{"f": "b"})
		require.ErrorIs(t, err, errs.ErrMissingGateCount)
	})

	t.Run("Zero gate count", func(t *testing.T) {
		_, err := ParseMetadata(map[string]any{"f": "b", "g": float64(0)})
		require.ErrorIs(t, err, errs.ErrMissingGateCount)
	})

	t.Run("Triplet format needs no gate count", func(t *testing.T) {
		meta, err := ParseMetadata(map[string]any{"f": "q"})
		require.NoError(t, err)
		require.Equal(t, format.FormatTriplet, meta.Format)
	})

	t.Run("Unknown tag still requires gate count", func(t *testing.T) {
		_, err := ParseMetadata(map[string]any{"f": "x"})
		require.ErrorIs(t, err, errs.ErrMissingGateCount)

		meta, err := ParseMetadata(map[string]any{"f": "x", "g": float64(8)})
		require.NoError(t, err)
		require.Equal(t, format.FormatUnknown, meta.Format)
		require.Equal(t, "x", meta.Tag)
	})

	t.Run("Wrong-typed fields fall back to defaults", func(t *testing.T) {
		meta, err := ParseMetadata(map[string]any{
			"f": "b", "g": float64(16), "r": "lots", "p": float64(3),
		})
		require.NoError(t, err)
		require.Equal(t, DefaultRayCount, meta.RayCount)
		require.Equal(t, DefaultProduct, meta.Product)
	})

	t.Run("Volumetric tilts passthrough", func(t *testing.T) {
		meta, err := ParseMetadata(map[string]any{
			"f": "b", "g": float64(16), "tilts": []any{0.5, 1.5, 2.4},
		})
		require.NoError(t, err)
		require.Equal(t, []float64{0.5, 1.5, 2.4}, meta.Tilts)
	})
}

func TestParseMetadataJSON(t *testing.T) {
	t.Run("Valid object", func(t *testing.T) {
		fields, err := ParseMetadataJSON([]byte(`{"f":"b","g":32}`))
		require.NoError(t, err)
		require.Equal(t, "b", fields["f"])
	})

	t.Run("Not JSON", func(t *testing.T) {
		_, err := ParseMetadataJSON([]byte("ARCHIVE2 garbage"))
		require.ErrorIs(t, err, errs.ErrMalformedMetadata)
	})

	t.Run("JSON but not an object", func(t *testing.T) {
		_, err := ParseMetadataJSON([]byte(`[1,2,3]`))
		require.ErrorIs(t, err, errs.ErrMalformedMetadata)
	})
}
