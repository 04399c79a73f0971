package format

type (
	ContainerFormat uint8
	CompressionType uint8
)

const (
	FormatUnknown ContainerFormat = 0x0 // FormatUnknown represents an unrecognized format tag.
	FormatBitmask ContainerFormat = 0x1 // FormatBitmask represents the bitmask-indexed sparse grid format ("b").
	FormatTriplet ContainerFormat = 0x2 // FormatTriplet represents the legacy fixed-width triplet format ("q").

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionGzip CompressionType = 0x2 // CompressionGzip represents gzip compression.
	CompressionZstd CompressionType = 0x3 // CompressionZstd represents Zstandard compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 block compression.
	CompressionS2   CompressionType = 0x5 // CompressionS2 represents S2 stream compression.
	CompressionRLE  CompressionType = 0x6 // CompressionRLE represents the legacy run-length scheme.
)

// ParseContainerFormat maps the metadata "f" tag to a ContainerFormat.
// Tags other than "b" and "q" map to FormatUnknown; the raw tag is preserved
// in the metadata record for diagnostics.
func ParseContainerFormat(tag string) ContainerFormat {
	switch tag {
	case "b":
		return FormatBitmask
	case "q":
		return FormatTriplet
	default:
		return FormatUnknown
	}
}

// ParseCompressionType maps a lowercase compression name, as accepted on CLI
// flags, to its CompressionType.
func ParseCompressionType(name string) (CompressionType, bool) {
	switch name {
	case "none":
		return CompressionNone, true
	case "gzip":
		return CompressionGzip, true
	case "zstd":
		return CompressionZstd, true
	case "lz4":
		return CompressionLZ4, true
	case "s2":
		return CompressionS2, true
	case "rle":
		return CompressionRLE, true
	default:
		return 0, false
	}
}

// Tag returns the wire tag written to the metadata "f" key. Unknown formats
// have no tag; the encoder only ever writes the bitmask format.
func (f ContainerFormat) Tag() string {
	switch f {
	case FormatBitmask:
		return "b"
	case FormatTriplet:
		return "q"
	default:
		return ""
	}
}

func (f ContainerFormat) String() string {
	switch f {
	case FormatBitmask:
		return "Bitmask"
	case FormatTriplet:
		return "Triplet"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionGzip:
		return "Gzip"
	case CompressionZstd:
		return "Zstd"
	case CompressionLZ4:
		return "LZ4"
	case CompressionS2:
		return "S2"
	case CompressionRLE:
		return "RLE"
	default:
		return "Unknown"
	}
}
