package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("RDA_BUCKET_URL", "http://bucket.local")
	t.Setenv("RDA_STATIONS", "KTLX")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://bucket.local", cfg.BucketURL)
	require.Equal(t, []string{"KTLX"}, cfg.Stations)
	require.Equal(t, "./frames", cfg.StorePath)
	require.Equal(t, time.Minute, cfg.PollInterval)
	require.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	require.Equal(t, ":9090", cfg.MetricsAddr)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, 50, cfg.RetainFrames)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("RDA_BUCKET_URL", "http://bucket.local")
	t.Setenv("RDA_STATIONS", "KTLX, KOUN ,,KAMA")
	t.Setenv("RDA_STORE_PATH", "/var/lib/rda")
	t.Setenv("RDA_POLL_INTERVAL", "15s")
	t.Setenv("RDA_RETAIN_FRAMES", "10")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, []string{"KTLX", "KOUN", "KAMA"}, cfg.Stations)
	require.Equal(t, "/var/lib/rda", cfg.StorePath)
	require.Equal(t, 15*time.Second, cfg.PollInterval)
	require.Equal(t, 10, cfg.RetainFrames)
}

func TestLoadValidation(t *testing.T) {
	t.Run("Missing bucket URL", func(t *testing.T) {
		t.Setenv("RDA_BUCKET_URL", "")
		t.Setenv("RDA_STATIONS", "KTLX")

		_, err := Load()
		require.ErrorContains(t, err, "RDA_BUCKET_URL")
	})

	t.Run("Missing stations", func(t *testing.T) {
		t.Setenv("RDA_BUCKET_URL", "http://bucket.local")
		t.Setenv("RDA_STATIONS", " , ")

		_, err := Load()
		require.ErrorContains(t, err, "RDA_STATIONS")
	})

	t.Run("Bad interval", func(t *testing.T) {
		t.Setenv("RDA_BUCKET_URL", "http://bucket.local")
		t.Setenv("RDA_STATIONS", "KTLX")
		t.Setenv("RDA_POLL_INTERVAL", "soon")

		_, err := Load()
		require.ErrorContains(t, err, "RDA_POLL_INTERVAL")
	})

	t.Run("Negative retention", func(t *testing.T) {
		t.Setenv("RDA_BUCKET_URL", "http://bucket.local")
		t.Setenv("RDA_STATIONS", "KTLX")
		t.Setenv("RDA_RETAIN_FRAMES", "-3")

		_, err := Load()
		require.ErrorContains(t, err, "RDA_RETAIN_FRAMES")
	})
}
