package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/radarlab/rda/compress"
	"github.com/radarlab/rda/internal/options"
	"github.com/radarlab/rda/snapshot"
	"github.com/radarlab/rda/store"
)

// StationStats counts fetch activity for one station.
type StationStats struct {
	Discovered int
	Fetched    int
	Errors     int
}

// Fetcher polls a bucket for new frames and stores them locally.
type Fetcher struct {
	client   *BucketClient
	frames   *store.FrameStore
	stations []string
	interval time.Duration
	clock    clockwork.Clock
	logger   *slog.Logger
	metrics  *Metrics

	mu    sync.Mutex
	seen  map[string]struct{}
	stats map[string]*StationStats
}

// Option configures a Fetcher.
type Option = options.Option[*Fetcher]

// WithClock injects the polling clock. Tests pass a clockwork fake.
func WithClock(clock clockwork.Clock) Option {
	return options.New(func(f *Fetcher) error {
		if clock == nil {
			return errors.New("nil clock")
		}
		f.clock = clock

		return nil
	})
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return options.New(func(f *Fetcher) error {
		if logger == nil {
			return errors.New("nil logger")
		}
		f.logger = logger

		return nil
	})
}

// WithMetrics sets the Prometheus instruments. The default set is
// unregistered, so daemons normally pass NewMetrics().
func WithMetrics(m *Metrics) Option {
	return options.New(func(f *Fetcher) error {
		if m == nil {
			return errors.New("nil metrics")
		}
		f.metrics = m

		return nil
	})
}

// NewFetcher creates a fetcher polling the given stations.
func NewFetcher(client *BucketClient, frames *store.FrameStore, stations []string, interval time.Duration, opts ...Option) (*Fetcher, error) {
	if client == nil || frames == nil {
		return nil, errors.New("nil client or store")
	}
	if len(stations) == 0 {
		return nil, errors.New("no stations configured")
	}
	if interval <= 0 {
		return nil, fmt.Errorf("non-positive poll interval %v", interval)
	}

	f := &Fetcher{
		client:   client,
		frames:   frames,
		stations: stations,
		interval: interval,
		clock:    clockwork.NewRealClock(),
		logger:   slog.Default(),
		metrics:  NewMetricsForTesting(),
		seen:     make(map[string]struct{}),
		stats:    make(map[string]*StationStats),
	}
	if err := options.Apply(f, opts...); err != nil {
		return nil, fmt.Errorf("apply fetcher options: %w", err)
	}

	return f, nil
}

// Run polls immediately and then once per interval until the context is
// canceled. It always returns the context's error.
func (f *Fetcher) Run(ctx context.Context) error {
	f.metrics.FetcherRunning.Set(1)
	defer f.metrics.FetcherRunning.Set(0)

	ticker := f.clock.NewTicker(f.interval)
	defer ticker.Stop()

	f.PollOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.Chan():
			f.PollOnce(ctx)
		}
	}
}

// PollOnce runs one discovery cycle over every configured station. Failures
// are counted and logged per station; one bad station never blocks the rest.
func (f *Fetcher) PollOnce(ctx context.Context) {
	start := f.clock.Now()

	for _, station := range f.stations {
		f.pollStation(ctx, station)
	}

	f.metrics.CycleDuration.Observe(f.clock.Since(start).Seconds())
}

func (f *Fetcher) pollStation(ctx context.Context, station string) {
	objects, err := f.client.ListObjects(ctx, station+"/")
	if err != nil {
		f.metrics.FetchErrors.WithLabelValues("list").Inc()
		f.bumpStats(station, func(s *StationStats) { s.Errors++ })
		f.logger.Error("station listing failed", "station", station, "error", err)

		return
	}

	for _, obj := range objects {
		if ctx.Err() != nil {
			return
		}
		if f.markDiscovered(station, obj.Key) {
			f.fetchObject(ctx, station, obj.Key)
		}
	}
}

// markDiscovered records the key and reports whether it is new.
func (f *Fetcher) markDiscovered(station, key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.seen[key]; ok {
		return false
	}
	f.seen[key] = struct{}{}
	f.statsLocked(station).Discovered++
	f.metrics.ObjectsDiscovered.Inc()

	return true
}

func (f *Fetcher) fetchObject(ctx context.Context, station, key string) {
	data, err := f.client.GetObject(ctx, key)
	if err != nil {
		f.metrics.FetchErrors.WithLabelValues("get").Inc()
		f.bumpStats(station, func(s *StationStats) { s.Errors++ })
		f.logger.Error("frame download failed", "key", key, "error", err)
		f.forget(key)

		return
	}

	stored, stage, err := f.ingest(data)
	if err != nil {
		f.metrics.FetchErrors.WithLabelValues(stage).Inc()
		f.bumpStats(station, func(s *StationStats) { s.Errors++ })
		f.logger.Error("frame ingest failed", "key", key, "stage", stage, "error", err)

		return
	}
	if !stored {
		// Legacy triplet frames carry no grid; nothing to store.
		f.logger.Warn("skipping legacy frame", "key", key)

		return
	}

	f.bumpStats(station, func(s *StationStats) { s.Fetched++ })
	f.metrics.ObjectsFetched.WithLabelValues(station).Inc()
	f.logger.Info("frame ingested", "station", station, "key", key)
}

// ingest decompresses, decodes and stores one downloaded frame. The stage
// name feeds the error metrics.
func (f *Fetcher) ingest(data []byte) (stored bool, stage string, err error) {
	raw, _, err := compress.AutoDecompress(data)
	if err != nil {
		return false, "decode", err
	}

	res, err := snapshot.Decode(raw)
	if err != nil {
		return false, "decode", err
	}
	if res.Grid == nil {
		return false, "", nil
	}

	if err := f.frames.Save(res.Meta, res.Grid); err != nil {
		return false, "save", err
	}

	return true, "", nil
}

// forget drops a key from the seen set so a transient download failure is
// retried on the next cycle.
func (f *Fetcher) forget(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.seen, key)
}

// Stats returns a copy of the per-station counters.
func (f *Fetcher) Stats() map[string]StationStats {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(map[string]StationStats, len(f.stats))
	for station, s := range f.stats {
		out[station] = *s
	}

	return out
}

func (f *Fetcher) bumpStats(station string, fn func(*StationStats)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f.statsLocked(station))
}

func (f *Fetcher) statsLocked(station string) *StationStats {
	s, ok := f.stats[station]
	if !ok {
		s = &StationStats{}
		f.stats[station] = s
	}

	return s
}
