package section

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/radarlab/rda/endian"
	"github.com/radarlab/rda/errs"
)

// Container is the result of format detection: the untyped metadata mapping
// and the binary payload that follows it.
type Container struct {
	// Fields is the decoded metadata mapping, input to ParseMetadata.
	Fields map[string]any
	// Payload is the binary body: bitmask+values for grid snapshots,
	// fixed-width records for legacy triplet ones.
	Payload []byte
	// LengthPrefixed is true for the current framing ([u32 len][JSON][body])
	// and false for the legacy whole-file JSON container.
	LengthPrefixed bool
}

// DetectContainer decides which of the container variants a raw, already
// decompressed buffer holds.
//
// The current framing is tried first: a little-endian u32 metadata length,
// accepted only when it is smaller than both the remaining buffer and
// MaxMetadataSize, followed by a JSON object that must carry the "f" format
// tag. On any failure the whole buffer is reparsed as the legacy container:
// one JSON object whose "d" key holds the std-base64 payload.
//
// Both branches failing is fatal; the returned error wraps
// errs.ErrUnrecognizedFormat and names each branch's failure reason, so a
// truncated header and a corrupt legacy file stay distinguishable in logs.
func DetectContainer(raw []byte) (Container, error) {
	if len(raw) == 0 {
		return Container{}, errs.ErrEmptyInput
	}

	framedReason := "buffer not longer than length prefix"
	if len(raw) > LenPrefixSize {
		engine := endian.GetLittleEndianEngine()
		metaLen := int(engine.Uint32(raw[:LenPrefixSize]))

		switch {
		case metaLen >= len(raw)-LenPrefixSize:
			framedReason = fmt.Sprintf("declared metadata length %d exceeds buffer", metaLen)
		case metaLen >= MaxMetadataSize:
			framedReason = fmt.Sprintf("declared metadata length %d exceeds sanity bound", metaLen)
		default:
			metaText := raw[LenPrefixSize : LenPrefixSize+metaLen]
			fields, err := ParseMetadataJSON(metaText)
			switch {
			case err != nil:
				framedReason = fmt.Sprintf("header is not a JSON object: %v", err)
			case !hasKey(fields, "f"):
				framedReason = "header JSON lacks format tag \"f\""
			default:
				return Container{
					Fields:         fields,
					Payload:        raw[LenPrefixSize+metaLen:],
					LengthPrefixed: true,
				}, nil
			}
		}
	}

	fields, legacyReason := parseLegacyContainer(raw)
	if legacyReason == "" {
		payload, decodeReason := decodeLegacyPayload(fields)
		if decodeReason == "" {
			return Container{Fields: fields, Payload: payload}, nil
		}
		legacyReason = decodeReason
	}

	return Container{}, fmt.Errorf("%w: framed: %s; legacy: %s",
		errs.ErrUnrecognizedFormat, framedReason, legacyReason)
}

// parseLegacyContainer attempts the whole-file JSON reading of the buffer.
// Returns an empty reason on success.
func parseLegacyContainer(raw []byte) (map[string]any, string) {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Sprintf("file is not a JSON object: %v", err)
	}

	return fields, ""
}

// decodeLegacyPayload extracts the base64 "d" payload from a legacy mapping.
// Returns an empty reason on success.
func decodeLegacyPayload(fields map[string]any) ([]byte, string) {
	encoded, ok := fields["d"].(string)
	if !ok {
		return nil, "mapping lacks base64 payload key \"d\""
	}

	payload, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Sprintf("payload is not valid base64: %v", err)
	}

	return payload, ""
}

func hasKey(fields map[string]any, key string) bool {
	_, ok := fields[key]

	return ok
}
