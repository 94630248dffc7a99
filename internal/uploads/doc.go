// Package uploads stores voice notes and photos attached to journal entries.
//
// Files are renamed to a UUID on write so caller-supplied names never touch
// the filesystem, and are grouped under per-day directories for cleanup.
package uploads
