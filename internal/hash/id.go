package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// FrameSetID computes the cache key for one station/product frame set.
func FrameSetID(station, product string) uint64 {
	return xxhash.Sum64String(station + "/" + product)
}
