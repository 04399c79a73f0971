package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/radarlab/rda/compress"
	"github.com/radarlab/rda/errs"
	"github.com/radarlab/rda/format"
	"github.com/radarlab/rda/internal/hash"
)

// Index is the per-station/product frame listing, persisted as gzipped JSON
// next to the station directory. The short keys match the frame metadata
// convention so the web tier reads both with one schema.
type Index struct {
	Station   string       `json:"s"`
	Product   string       `json:"p"`
	UpdatedAt int64        `json:"u"`
	Count     int          `json:"c"`
	Frames    []IndexEntry `json:"f"`
}

// IndexEntry names one frame by timestamp and tilt.
type IndexEntry struct {
	Timestamp string  `json:"t"`
	Tilt      float64 `json:"e"`
}

func (s *FrameStore) indexPath(station, product string) string {
	return filepath.Join(s.basePath, station, "index_"+product+".json")
}

// GetIndex returns the current index for a station/product pair, from cache
// when one was built this process, otherwise from disk.
//
// Returns errs.ErrFrameNotFound when no index has ever been written.
func (s *FrameStore) GetIndex(station, product string) (Index, error) {
	key := hash.FrameSetID(station, product)

	s.mu.RLock()
	idx, ok := s.indexCache[key]
	s.mu.RUnlock()
	if ok {
		return idx, nil
	}

	compressed, err := os.ReadFile(s.indexPath(station, product))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Index{}, fmt.Errorf("%w: no index for %s/%s",
				errs.ErrFrameNotFound, station, product)
		}

		return Index{}, fmt.Errorf("read index: %w", err)
	}

	raw, _, err := compress.AutoDecompress(compressed)
	if err != nil {
		return Index{}, fmt.Errorf("decompress index: %w", err)
	}

	if err := json.Unmarshal(raw, &idx); err != nil {
		return Index{}, fmt.Errorf("parse index: %w", err)
	}

	s.mu.Lock()
	s.indexCache[key] = idx
	s.mu.Unlock()

	return idx, nil
}

// updateIndex rescans the tree and rewrites the index file and cache entry.
func (s *FrameStore) updateIndex(station, product string) error {
	frames, err := s.ListFrames(station, product)
	if err != nil {
		return err
	}

	idx := Index{
		Station:   station,
		Product:   product,
		UpdatedAt: s.clock.Now().UnixNano(),
		Count:     len(frames),
		Frames:    make([]IndexEntry, 0, len(frames)),
	}
	for _, f := range frames {
		idx.Frames = append(idx.Frames, IndexEntry{Timestamp: f.Timestamp, Tilt: f.Tilt})
	}

	raw, err := json.Marshal(idx)
	if err != nil {
		return fmt.Errorf("marshal index: %w", err)
	}

	gz, err := compress.GetCodec(format.CompressionGzip)
	if err != nil {
		return err
	}
	compressed, err := gz.Compress(raw)
	if err != nil {
		return fmt.Errorf("compress index: %w", err)
	}

	path := s.indexPath(station, product)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create index directory: %w", err)
	}
	if err := os.WriteFile(path, compressed, 0o644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}

	s.mu.Lock()
	s.indexCache[hash.FrameSetID(station, product)] = idx
	s.mu.Unlock()

	return nil
}
