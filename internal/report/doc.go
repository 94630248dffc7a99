// Package report derives mood statistics from stored journal entries.
//
// The trend series maps each entry's primary emotion onto a 1-5 mood scale;
// the distribution counts how often each emotion appears. Both skip entries
// without a usable emotion payload.
package report
