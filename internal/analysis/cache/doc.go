// Package cache persists analysis results in SQLite keyed by a hash of the
// entry text. Re-analyzing unchanged text becomes a local lookup instead of
// an API call.
package cache
