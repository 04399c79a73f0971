// Package section handles the structural layers of a snapshot container: the
// outer framing (length-prefixed vs. whole-file JSON) and the typed metadata
// header.
//
// DetectContainer splits a decompressed buffer into its metadata mapping and
// binary payload; ParseMetadata converts the untyped mapping into a validated
// Metadata record. Downstream grid decoding (package snapshot) only ever sees
// the typed record.
package section
