// Package infer turns a captured HTTP traffic log into an OpenAPI 3
// document. Observed calls are deduplicated into logical endpoints by
// normalizing identifier-shaped path segments into placeholders, and
// request/response schemas are inferred from representative example
// payloads.
package infer

import (
	"github.com/apitrace/har2openapi/internal/har"
	"github.com/getkin/kin-openapi/openapi3"
)

// Options configures one conversion run.
type Options struct {
	// PathPrefix keeps only entries whose path starts here. Entries
	// outside the prefix are excluded from processing and totals.
	PathPrefix string
	Title      string
	Version    string
	// ServerURL overrides the server derived from the first in-scope
	// entry's origin.
	ServerURL string
	// Classifier overrides the identifier heuristics; nil uses the
	// defaults.
	Classifier *Classifier
}

// Result is the assembled document plus the run counters.
type Result struct {
	Doc   *openapi3.T
	Stats Stats
}

// Convert runs the whole pipeline over a capture log, strictly in entry
// order. Per-entry problems are absorbed into Stats; Convert itself
// cannot fail once the capture is loaded.
func Convert(log *har.Log, opts Options) *Result {
	if opts.Title == "" {
		opts.Title = "Reverse-engineered API"
	}
	if opts.Version == "" {
		opts.Version = "0.1.0"
	}

	collector := NewCollector(opts.PathPrefix, opts.Classifier)
	for _, entry := range log.Entries {
		collector.AddEntry(entry)
	}

	server := opts.ServerURL
	if server == "" {
		server = collector.ServerURL()
	}

	doc := Assemble(collector.Endpoints(), AssembleOptions{
		Title:     opts.Title,
		Version:   opts.Version,
		ServerURL: server,
	})
	return &Result{Doc: doc, Stats: collector.Stats()}
}
