package section

const (
	// LenPrefixSize is the width of the little-endian u32 metadata length
	// prefix that opens a length-prefixed snapshot.
	LenPrefixSize = 4

	// MaxMetadataSize is the sanity bound on the declared metadata length.
	// A legacy payload misread as a length prefix produces wild values;
	// real headers are a few hundred bytes of JSON.
	MaxMetadataSize = 65536

	// TripletRecordSize is the fixed width of one legacy triplet record:
	// azimuth (2 bytes), range (2 bytes), value (1 byte), 2 reserved bytes.
	TripletRecordSize = 7

	// TripletSampleOffset is the byte offset of the value field within the
	// first triplet record, reported as a diagnostic sample.
	TripletSampleOffset = 4
)

// Metadata defaults applied by ParseMetadata. Gate count deliberately has no
// default: a grid snapshot without one is undecodable.
const (
	DefaultRayCount    = 720
	DefaultGateSpacing = 250
	DefaultFirstGate   = 2125
	DefaultProduct     = "reflectivity"
)
