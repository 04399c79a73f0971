package compress

import "errors"

// ErrTruncatedRLE indicates an RLE stream cut off inside a run marker.
var ErrTruncatedRLE = errors.New("truncated RLE stream")

// rleMarker starts a run triple: marker, value, count.
const rleMarker = 0xFF

// rleMinRun is the shortest run worth a triple; shorter runs are cheaper as
// literals.
const rleMinRun = 3

// RLECompressor implements the legacy run-length scheme used before snapshots
// moved to gzip containers.
//
// Encoding: runs of 3-255 equal bytes become [0xFF value count]; other bytes
// are literals. A literal 0xFF is coded as the run [0xFF 0xFF 0x01] so that
// 0xFF always introduces a triple and decoding stays unambiguous.
//
// Quantized radar values are highly repetitive along a ray, which is the
// pattern this scheme was built for; anything else should use gzip or zstd.
type RLECompressor struct{}

var _ Codec = (*RLECompressor)(nil)

// NewRLECompressor creates a new RLE codec.
func NewRLECompressor() RLECompressor {
	return RLECompressor{}
}

// Compress run-length encodes the input data.
func (c RLECompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	encoded := make([]byte, 0, len(data))
	i := 0
	for i < len(data) {
		value := data[i]
		run := 1
		for i+run < len(data) && data[i+run] == value && run < 255 {
			run++
		}

		switch {
		case run >= rleMinRun || value == rleMarker:
			encoded = append(encoded, rleMarker, value, byte(run))
			i += run
		default:
			for j := 0; j < run; j++ {
				encoded = append(encoded, value)
			}
			i += run
		}
	}

	return encoded, nil
}

// Decompress decodes a run-length encoded stream.
func (c RLECompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	decoded := make([]byte, 0, len(data)*2)
	i := 0
	for i < len(data) {
		if data[i] != rleMarker {
			decoded = append(decoded, data[i])
			i++
			continue
		}

		if i+2 >= len(data) {
			return nil, ErrTruncatedRLE
		}
		value, count := data[i+1], int(data[i+2])
		for j := 0; j < count; j++ {
			decoded = append(decoded, value)
		}
		i += 3
	}

	return decoded, nil
}
