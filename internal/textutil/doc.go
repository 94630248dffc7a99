// Package textutil provides small text helpers shared across the journal
// components: whitespace word counting, content hashing for the analysis
// cache, and sanitization of user-supplied identifiers used in filesystem
// paths.
package textutil
