package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the fetch daemon settings, populated from environment
// variables.
type Config struct {
	BucketURL    string
	Stations     []string
	StorePath    string
	PollInterval time.Duration
	HTTPTimeout  time.Duration
	MetricsAddr  string
	LogLevel     string
	RetainFrames int
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	pollInterval, err := parseDuration("RDA_POLL_INTERVAL", time.Minute)
	if err != nil {
		return nil, err
	}

	httpTimeout, err := parseDuration("RDA_HTTP_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	retain, err := parseInt("RDA_RETAIN_FRAMES", 50)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		BucketURL:    os.Getenv("RDA_BUCKET_URL"),
		Stations:     parseStations(os.Getenv("RDA_STATIONS")),
		StorePath:    envOrDefault("RDA_STORE_PATH", "./frames"),
		PollInterval: pollInterval,
		HTTPTimeout:  httpTimeout,
		MetricsAddr:  envOrDefault("RDA_METRICS_ADDR", ":9090"),
		LogLevel:     envOrDefault("RDA_LOG_LEVEL", "info"),
		RetainFrames: retain,
	}

	if cfg.BucketURL == "" {
		return nil, errors.New("RDA_BUCKET_URL is required")
	}
	if len(cfg.Stations) == 0 {
		return nil, errors.New("RDA_STATIONS is required")
	}

	return cfg, nil
}

// parseStations splits a comma-separated station list, trimming blanks.
func parseStations(s string) []string {
	var stations []string
	for _, part := range strings.Split(s, ",") {
		if station := strings.TrimSpace(part); station != "" {
			stations = append(stations, station)
		}
	}

	return stations
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func parseDuration(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}

	return d, nil
}

func parseInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}

	return n, nil
}
