package snapshot

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/radarlab/rda/errs"
)

func TestNewGrid(t *testing.T) {
	t.Run("Valid dimensions", func(t *testing.T) {
		g, err := NewGrid(3, 5)
		require.NoError(t, err)
		require.Equal(t, 3, g.Rays)
		require.Equal(t, 5, g.Gates)
		require.Len(t, g.Values, 15)
	})

	t.Run("Non-positive dimensions", func(t *testing.T) {
		for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, 5}, {5, -1}} {
			_, err := NewGrid(dims[0], dims[1])
			require.ErrorIs(t, err, errs.ErrInvalidDimensions)
		}
	})
}

func TestGridAccessors(t *testing.T) {
	g, err := NewGrid(2, 3)
	require.NoError(t, err)

	g.Set(1, 2, 42.5)
	require.Equal(t, 42.5, g.At(1, 2))
	require.Equal(t, 0.0, g.At(0, 2))
	// Row-major backing order.
	require.Equal(t, 42.5, g.Values[5])
}

func TestGridStats(t *testing.T) {
	t.Run("Mixed grid", func(t *testing.T) {
		g, err := NewGrid(2, 2)
		require.NoError(t, err)
		g.Set(0, 0, -10)
		g.Set(1, 1, 30)

		s := g.Stats()
		require.Equal(t, 2, s.NonZero)
		require.Equal(t, -10.0, s.Min)
		require.Equal(t, 30.0, s.Max)
		require.InDelta(t, 10.0, s.Mean, 1e-9)
	})

	t.Run("All-zero grid", func(t *testing.T) {
		g, err := NewGrid(4, 4)
		require.NoError(t, err)

		s := g.Stats()
		require.Zero(t, s.NonZero)
		require.Zero(t, s.Mean)
		require.Zero(t, s.StdDev)
	})
}
