// Package fetch discovers and downloads published snapshot frames from a
// bucket-style HTTP endpoint and feeds them into a local frame store.
//
// Discovery is a polling loop: each cycle lists the configured station
// prefixes, downloads keys not seen before, decompresses and decodes them,
// and saves the result. The loop runs on an injected clock so tests drive it
// deterministically, and exposes Prometheus counters for each stage.
package fetch
