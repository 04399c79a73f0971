package fetch

import (
	"context"
	"encoding/xml"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/radarlab/rda/compress"
	"github.com/radarlab/rda/format"
	"github.com/radarlab/rda/section"
	"github.com/radarlab/rda/snapshot"
	"github.com/radarlab/rda/store"
)

// fakeBucket serves an in-memory object set with the S3 listing protocol.
type fakeBucket struct {
	objects map[string][]byte
}

func (b *fakeBucket) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			b.serveListing(w, r.URL.Query().Get("prefix"))

			return
		}

		key := strings.TrimPrefix(r.URL.Path, "/")
		data, ok := b.objects[key]
		if !ok {
			http.NotFound(w, r)

			return
		}
		_, _ = w.Write(data)
	})
}

func (b *fakeBucket) serveListing(w http.ResponseWriter, prefix string) {
	type xmlObject struct {
		Key          string    `xml:"Key"`
		Size         int64     `xml:"Size"`
		LastModified time.Time `xml:"LastModified"`
	}
	type listBucketResult struct {
		XMLName     xml.Name `xml:"ListBucketResult"`
		Contents    []xmlObject
		IsTruncated bool `xml:"IsTruncated"`
	}

	out := listBucketResult{}
	for key, data := range b.objects {
		if strings.HasPrefix(key, prefix) {
			out.Contents = append(out.Contents, xmlObject{
				Key:          key,
				Size:         int64(len(data)),
				LastModified: time.Now(),
			})
		}
	}
	_ = xml.NewEncoder(w).Encode(out)
}

// encodedFrame produces a gzip-compressed snapshot the way the producer
// publishes them.
func encodedFrame(t *testing.T, station, timestamp string) []byte {
	t.Helper()

	grid, err := snapshot.NewGrid(4, 8)
	require.NoError(t, err)
	grid.Set(1, 1, 40)

	raw, err := snapshot.Encode(section.Metadata{
		Product:      "reflectivity",
		RayCount:     4,
		GateCount:    8,
		GateSpacing:  250,
		FirstGate:    2125,
		Station:      station,
		Timestamp:    timestamp,
		Elevation:    0.5,
		HasElevation: true,
	}, grid)
	require.NoError(t, err)

	gz, err := compress.GetCodec(format.CompressionGzip)
	require.NoError(t, err)
	compressed, err := gz.Compress(raw)
	require.NoError(t, err)

	return compressed
}

func newTestFetcher(t *testing.T, bucket *fakeBucket, stations []string) (*Fetcher, *store.FrameStore) {
	t.Helper()

	srv := httptest.NewServer(bucket.handler())
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	frames, err := store.NewFrameStore(t.TempDir(), store.WithLogger(logger))
	require.NoError(t, err)

	client := NewBucketClient(srv.URL, 5*time.Second, logger)
	f, err := NewFetcher(client, frames, stations, time.Minute,
		WithLogger(logger),
		WithMetrics(NewMetricsForTesting()),
	)
	require.NoError(t, err)

	return f, frames
}

func TestFetcherPollOnce(t *testing.T) {
	bucket := &fakeBucket{objects: map[string][]byte{
		"KTLX/20260823_120000/reflectivity/0.5.RDA": encodedFrame(t, "KTLX", "20260823_120000"),
	}}
	f, frames := newTestFetcher(t, bucket, []string{"KTLX"})

	f.PollOnce(context.Background())

	res, err := frames.Load("KTLX", "reflectivity", "20260823_120000", 0.5)
	require.NoError(t, err)
	require.InDelta(t, 40, res.Grid.At(1, 1), 0.25)

	stats := f.Stats()
	require.Equal(t, 1, stats["KTLX"].Discovered)
	require.Equal(t, 1, stats["KTLX"].Fetched)
	require.Zero(t, stats["KTLX"].Errors)

	t.Run("Second cycle refetches nothing", func(t *testing.T) {
		f.PollOnce(context.Background())
		require.Equal(t, 1, f.Stats()["KTLX"].Discovered)
	})
}

func TestFetcherNewObjectsBetweenCycles(t *testing.T) {
	bucket := &fakeBucket{objects: map[string][]byte{
		"KTLX/20260823_120000/reflectivity/0.5.RDA": encodedFrame(t, "KTLX", "20260823_120000"),
	}}
	f, _ := newTestFetcher(t, bucket, []string{"KTLX"})

	f.PollOnce(context.Background())
	bucket.objects["KTLX/20260823_121000/reflectivity/0.5.RDA"] = encodedFrame(t, "KTLX", "20260823_121000")
	f.PollOnce(context.Background())

	stats := f.Stats()
	require.Equal(t, 2, stats["KTLX"].Discovered)
	require.Equal(t, 2, stats["KTLX"].Fetched)
}

func TestFetcherCorruptObject(t *testing.T) {
	bucket := &fakeBucket{objects: map[string][]byte{
		"KTLX/bad.RDA": []byte("not a frame at all"),
	}}
	f, _ := newTestFetcher(t, bucket, []string{"KTLX"})

	f.PollOnce(context.Background())

	stats := f.Stats()
	require.Equal(t, 1, stats["KTLX"].Discovered)
	require.Zero(t, stats["KTLX"].Fetched)
	require.Equal(t, 1, stats["KTLX"].Errors)
}

func TestFetcherListingFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	frames, err := store.NewFrameStore(t.TempDir(), store.WithLogger(logger))
	require.NoError(t, err)

	client := NewBucketClient(srv.URL, time.Second, logger)
	f, err := NewFetcher(client, frames, []string{"KTLX"}, time.Minute, WithLogger(logger))
	require.NoError(t, err)

	f.PollOnce(context.Background())
	require.Equal(t, 1, f.Stats()["KTLX"].Errors)
}

func TestFetcherRun(t *testing.T) {
	bucket := &fakeBucket{objects: map[string][]byte{
		"KTLX/20260823_120000/reflectivity/0.5.RDA": encodedFrame(t, "KTLX", "20260823_120000"),
	}}
	srv := httptest.NewServer(bucket.handler())
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	frames, err := store.NewFrameStore(t.TempDir(), store.WithLogger(logger))
	require.NoError(t, err)

	f, err := NewFetcher(NewBucketClient(srv.URL, 5*time.Second, logger), frames,
		[]string{"KTLX"}, time.Minute,
		WithLogger(logger),
		WithClock(clockwork.NewFakeClock()),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.Run(ctx) }()

	// The initial poll runs before the first tick.
	require.Eventually(t, func() bool {
		return f.Stats()["KTLX"].Fetched == 1
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

func TestNewFetcherValidation(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	frames, err := store.NewFrameStore(t.TempDir())
	require.NoError(t, err)
	client := NewBucketClient("http://bucket.invalid", time.Second, logger)

	_, err = NewFetcher(nil, frames, []string{"KTLX"}, time.Minute)
	require.Error(t, err)

	_, err = NewFetcher(client, frames, nil, time.Minute)
	require.Error(t, err)

	_, err = NewFetcher(client, frames, []string{"KTLX"}, 0)
	require.Error(t, err)
}
