// Package preflight provides readiness checks for external services
// and filesystem paths that BujoNow depends on.
//
// These checks run in two contexts:
//   - The daemon runs RunAll at startup so a misconfigured install fails
//     loudly instead of losing journal writes later.
//   - The CLI "bujonow status" command uses individual check functions
//     (CheckGemini, CheckDirectoryAccess) to display service health.
//
// Each check is gated by its config toggle -- disabled features are skipped.
package preflight
