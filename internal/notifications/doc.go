// Package notifications pushes journal events to ntfy.
//
// When no topic is configured the returned service is a noop, so callers
// never branch on whether notifications are enabled.
package notifications
