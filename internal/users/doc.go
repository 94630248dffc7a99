// Package users manages per-user data directories and profile documents.
//
// Each user owns a directory under the configured users root holding a
// user_data.json profile and a journals/ subtree consumed by the journal
// store. User identifiers are sanitized before they touch the filesystem.
package users
