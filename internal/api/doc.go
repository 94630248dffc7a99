// Package api composes the journal store, analyzers, and media services into
// the operations exposed by the CLI and the daemon HTTP API.
//
// JournalService owns one entry store per user and routes every write through
// the configured analyzer. Analysis failures never block a write; the entry
// persists with an empty analysis payload and the failure is logged.
package api
