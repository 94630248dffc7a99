// Package journal implements the entry store: one JSON document per user per
// calendar date, grouped into YYYY-MM directories under a per-user root.
//
// The document layout on disk is compatible with trees written by earlier
// versions of the application: indented UTF-8 JSON named YYYY-MM-DD.json.
// The date-formatted filename is the sole identity key, so at most one entry
// exists per date; writing to an existing date either replaces the document
// (Create), patches named fields (Update), or merges content into it
// (Record).
//
// A missing document is an absent result, not an error. Malformed documents
// encountered during scans are logged and skipped. Write failures propagate
// to the caller; there is no retry or rollback.
package journal
