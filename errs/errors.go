// Package errs defines the sentinel errors shared across rda packages.
//
// All errors are fatal to the decode in progress: the snapshot decoder is a
// one-shot, fail-fast pipeline with no retry or local recovery. Callers can
// classify failures with errors.Is and read wrapped context from the message.
package errs

import "errors"

var (
	// ErrUnrecognizedFormat indicates that neither the length-prefixed
	// framing nor the whole-file JSON container matched the input buffer.
	ErrUnrecognizedFormat = errors.New("unrecognized snapshot format")

	// ErrMalformedMetadata indicates metadata text that is present but not
	// parseable as a JSON object.
	ErrMalformedMetadata = errors.New("malformed snapshot metadata")

	// ErrMissingGateCount indicates a grid snapshot whose metadata omits the
	// gate count or declares it as zero.
	ErrMissingGateCount = errors.New("gate count missing or zero")

	// ErrDataTooShort indicates a payload shorter than the bitmask the
	// declared grid dimensions require.
	ErrDataTooShort = errors.New("payload too short for bitmask")

	// ErrInvalidDimensions indicates a non-positive ray or gate count handed
	// to the grid decoder or encoder.
	ErrInvalidDimensions = errors.New("invalid grid dimensions")

	// ErrEmptyInput indicates an empty raw buffer where a snapshot was
	// expected.
	ErrEmptyInput = errors.New("empty input buffer")

	// ErrFrameNotFound indicates a store lookup for a frame that does not
	// exist on disk.
	ErrFrameNotFound = errors.New("frame not found")

	// ErrNoRenderer indicates a render request without an injected plotting
	// backend.
	ErrNoRenderer = errors.New("no renderer configured")
)
