// Package daemon runs the background journal service: a single-instance
// lock, the HTTP JSON API, and graceful shutdown plumbing.
//
// The lock lives in the log directory so a second daemon on the same data
// exits immediately instead of racing the first one's writes.
package daemon
