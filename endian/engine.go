// Package endian provides byte order utilities for binary encoding and decoding.
//
// It combines the ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single EndianEngine interface so that snapshot framing code can read
// fixed-width fields and append them with one dependency.
//
// The snapshot container is little-endian on the wire (the u32 metadata length
// prefix), so most callers only ever need GetLittleEndianEngine().
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// The interface is satisfied by binary.LittleEndian and binary.BigEndian,
// keeping it fully compatible with existing code while giving access to both
// read/write and append operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine, the wire order of
// the snapshot container.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine. It exists for tooling
// that inspects upstream NEXRAD fields, which are big-endian.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
