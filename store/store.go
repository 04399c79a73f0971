package store

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/radarlab/rda/compress"
	"github.com/radarlab/rda/errs"
	"github.com/radarlab/rda/format"
	"github.com/radarlab/rda/internal/options"
	"github.com/radarlab/rda/section"
	"github.com/radarlab/rda/snapshot"
)

const (
	frameExt       = ".RDA"
	volumetricStem = "volumetric"
)

// FrameStore reads and writes snapshot frames on the local filesystem.
type FrameStore struct {
	basePath string
	codec    compress.Codec
	logger   *slog.Logger
	clock    clockwork.Clock

	mu         sync.RWMutex
	indexCache map[uint64]Index
}

// Option configures a FrameStore.
type Option = options.Option[*FrameStore]

// WithCodec sets the container compression applied to frame files. The
// default is gzip, which is what the upstream producer writes.
func WithCodec(codec compress.Codec) Option {
	return options.New(func(s *FrameStore) error {
		if codec == nil {
			return errors.New("nil codec")
		}
		s.codec = codec

		return nil
	})
}

// WithLogger sets the structured logger. The default discards nothing and
// writes to slog's default handler.
func WithLogger(logger *slog.Logger) Option {
	return options.New(func(s *FrameStore) error {
		if logger == nil {
			return errors.New("nil logger")
		}
		s.logger = logger

		return nil
	})
}

// WithClock injects the clock used for index update stamps. Tests pass a
// clockwork fake.
func WithClock(clock clockwork.Clock) Option {
	return options.New(func(s *FrameStore) error {
		if clock == nil {
			return errors.New("nil clock")
		}
		s.clock = clock

		return nil
	})
}

// NewFrameStore creates a store rooted at basePath, creating the directory
// when absent.
func NewFrameStore(basePath string, opts ...Option) (*FrameStore, error) {
	if basePath == "" {
		return nil, errors.New("empty base path")
	}

	gz, err := compress.GetCodec(format.CompressionGzip)
	if err != nil {
		return nil, err
	}

	s := &FrameStore{
		basePath:   basePath,
		codec:      gz,
		logger:     slog.Default(),
		clock:      clockwork.NewRealClock(),
		indexCache: make(map[uint64]Index),
	}
	if err := options.Apply(s, opts...); err != nil {
		return nil, fmt.Errorf("apply store options: %w", err)
	}

	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create store root: %w", err)
	}

	return s, nil
}

// Save encodes and writes one frame. Station, product and timestamp are taken
// from the metadata; the tilt filename comes from the elevation field, with
// volumetric frames (non-empty Tilts) stored under a fixed name instead.
//
// The per-station/product index is rewritten after a successful save.
func (s *FrameStore) Save(meta section.Metadata, grid *snapshot.Grid) error {
	if meta.Station == "" || meta.Timestamp == "" {
		return fmt.Errorf("%w: station and timestamp are required for storage",
			errs.ErrMalformedMetadata)
	}

	raw, err := snapshot.Encode(meta, grid)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}

	compressed, err := s.codec.Compress(raw)
	if err != nil {
		return fmt.Errorf("compress frame: %w", err)
	}

	path := s.framePath(meta.Station, meta.Product, meta.Timestamp, frameStem(meta))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create frame directory: %w", err)
	}
	if err := os.WriteFile(path, compressed, 0o644); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}

	s.logger.Info("frame saved",
		"station", meta.Station,
		"product", meta.Product,
		"timestamp", meta.Timestamp,
		"bytes", len(compressed))

	return s.updateIndex(meta.Station, meta.Product)
}

// Load reads and decodes the frame at the given tilt.
//
// Returns errs.ErrFrameNotFound when no file exists for the key.
func (s *FrameStore) Load(station, product, timestamp string, tilt float64) (*snapshot.Result, error) {
	return s.loadPath(s.framePath(station, product, timestamp, tiltStem(tilt)))
}

// LoadVolumetric reads the stacked multi-tilt frame of a timestamp.
func (s *FrameStore) LoadVolumetric(station, product, timestamp string) (*snapshot.Result, error) {
	return s.loadPath(s.framePath(station, product, timestamp, volumetricStem))
}

func (s *FrameStore) loadPath(path string) (*snapshot.Result, error) {
	compressed, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", errs.ErrFrameNotFound, path)
		}

		return nil, fmt.Errorf("read frame: %w", err)
	}

	raw, _, err := compress.AutoDecompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("decompress frame %s: %w", path, err)
	}

	res, err := snapshot.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decode frame %s: %w", path, err)
	}

	return res, nil
}

// FrameInfo describes one stored frame file.
type FrameInfo struct {
	Station   string
	Product   string
	Timestamp string
	Tilt      float64
	Path      string
	Size      int64
}

// ListFrames scans the tree for a station/product pair, newest timestamp
// first. A station or product with no frames yields an empty list, not an
// error.
func (s *FrameStore) ListFrames(station, product string) ([]FrameInfo, error) {
	stationDir := filepath.Join(s.basePath, station)
	tsEntries, err := os.ReadDir(stationDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("scan station %s: %w", station, err)
	}

	var frames []FrameInfo
	for _, tsEntry := range tsEntries {
		if !tsEntry.IsDir() {
			continue
		}
		productDir := filepath.Join(stationDir, tsEntry.Name(), product)
		files, err := os.ReadDir(productDir)
		if err != nil {
			continue
		}
		for _, f := range files {
			if f.IsDir() || filepath.Ext(f.Name()) != frameExt {
				continue
			}
			info, err := f.Info()
			if err != nil {
				continue
			}

			stem := strings.TrimSuffix(f.Name(), frameExt)
			tilt, _ := strconv.ParseFloat(stem, 64)
			frames = append(frames, FrameInfo{
				Station:   station,
				Product:   product,
				Timestamp: tsEntry.Name(),
				Tilt:      tilt,
				Path:      filepath.Join(productDir, f.Name()),
				Size:      info.Size(),
			})
		}
	}

	sort.Slice(frames, func(i, j int) bool {
		return frames[i].Timestamp > frames[j].Timestamp
	})

	return frames, nil
}

// HasFrameSet reports whether any frames exist for the timestamp.
func (s *FrameStore) HasFrameSet(station, product, timestamp string) bool {
	info, err := os.Stat(filepath.Join(s.basePath, station, timestamp, product))

	return err == nil && info.IsDir()
}

// Cleanup enforces the retention limit: for every station/product pair, all
// but the newest maxPerStation timestamps are removed and the index is
// rewritten.
func (s *FrameStore) Cleanup(maxPerStation int) error {
	if maxPerStation < 0 {
		return fmt.Errorf("negative retention limit %d", maxPerStation)
	}

	stations, err := os.ReadDir(s.basePath)
	if err != nil {
		return fmt.Errorf("scan store root: %w", err)
	}

	for _, stationEntry := range stations {
		if !stationEntry.IsDir() {
			continue
		}
		station := stationEntry.Name()

		timestampsByProduct, err := s.collectTimestamps(station)
		if err != nil {
			return err
		}

		for product, timestamps := range timestampsByProduct {
			sort.Sort(sort.Reverse(sort.StringSlice(timestamps)))
			if len(timestamps) <= maxPerStation {
				continue
			}

			for _, ts := range timestamps[maxPerStation:] {
				dir := filepath.Join(s.basePath, station, ts, product)
				if err := os.RemoveAll(dir); err != nil {
					return fmt.Errorf("remove expired frames %s: %w", dir, err)
				}
			}
			s.logger.Info("retention cleanup",
				"station", station,
				"product", product,
				"removed", len(timestamps)-maxPerStation)

			if err := s.updateIndex(station, product); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *FrameStore) collectTimestamps(station string) (map[string][]string, error) {
	byProduct := make(map[string][]string)

	tsEntries, err := os.ReadDir(filepath.Join(s.basePath, station))
	if err != nil {
		return nil, fmt.Errorf("scan station %s: %w", station, err)
	}
	for _, tsEntry := range tsEntries {
		if !tsEntry.IsDir() {
			continue
		}
		products, err := os.ReadDir(filepath.Join(s.basePath, station, tsEntry.Name()))
		if err != nil {
			continue
		}
		for _, p := range products {
			if p.IsDir() {
				byProduct[p.Name()] = append(byProduct[p.Name()], tsEntry.Name())
			}
		}
	}

	return byProduct, nil
}

// DiskUsage totals the size of every regular file under the store root.
func (s *FrameStore) DiskUsage() (int64, error) {
	var total int64
	err := filepath.WalkDir(s.basePath, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			info, err := d.Info()
			if err != nil {
				return err
			}
			total += info.Size()
		}

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("walk store root: %w", err)
	}

	return total, nil
}

// FrameCount counts stored frame files across all stations and products.
func (s *FrameStore) FrameCount() (int, error) {
	count := 0
	err := filepath.WalkDir(s.basePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == frameExt {
			count++
		}

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("walk store root: %w", err)
	}

	return count, nil
}

func (s *FrameStore) framePath(station, product, timestamp, stem string) string {
	return filepath.Join(s.basePath, station, timestamp, product, stem+frameExt)
}

// frameStem picks the filename stem for a frame: the fixed volumetric name
// when the metadata carries a tilt list, the formatted elevation otherwise.
func frameStem(meta section.Metadata) string {
	if len(meta.Tilts) > 0 {
		return volumetricStem
	}

	return tiltStem(meta.Elevation)
}

// tiltStem formats an elevation angle the way the producer names files, one
// decimal place.
func tiltStem(tilt float64) string {
	return strconv.FormatFloat(tilt, 'f', 1, 64)
}
