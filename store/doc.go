// Package store persists encoded snapshots as .RDA files under a
// station/timestamp/product directory tree, the layout the upstream pipeline
// writes and the render tooling reads:
//
//	base/KTLX/20260823_120000/reflectivity/0.5.RDA
//	base/KTLX/20260823_120000/reflectivity/volumetric.RDA
//	base/KTLX/index_reflectivity.json
//
// Files are container-compressed (gzip unless configured otherwise) and the
// per-station/product index is gzipped JSON. The store keeps a read-through
// cache of indexes; all methods are safe for concurrent use.
package store
