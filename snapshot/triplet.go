package snapshot

import (
	"github.com/radarlab/rda/section"
)

// TripletSummary is the structural report produced for the oldest snapshot
// format, which packed each echo as a fixed seven-byte record. The format
// predates the quantization tables, so records are counted rather than
// decoded.
type TripletSummary struct {
	// RecordCount is the number of complete records, len(payload)/7.
	RecordCount int
	// TrailingBytes is the remainder that fits no complete record.
	TrailingBytes int
	// SampleValue is the payload byte at offset 4, the first record's value
	// byte, when the payload is long enough. SampleValid reports whether it
	// was read.
	SampleValue byte
	SampleValid bool
}

// SummarizeTriplets reports the record structure of a triplet payload.
// Payloads of any length are accepted; a short or empty payload simply yields
// zero records.
func SummarizeTriplets(payload []byte) TripletSummary {
	s := TripletSummary{
		RecordCount:   len(payload) / section.TripletRecordSize,
		TrailingBytes: len(payload) % section.TripletRecordSize,
	}
	if len(payload) > section.TripletSampleOffset {
		s.SampleValue = payload[section.TripletSampleOffset]
		s.SampleValid = true
	}

	return s
}
