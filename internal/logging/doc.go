// Package logging assembles the structured slog loggers used across BujoNow
// components.
//
// It centralizes level parsing, console/JSON handler selection, and output
// routing (stdout plus the daemon log file), and exposes typed attribute
// helpers so every component emits log lines with the same shape. The package
// also provides a no-op logger for tests and wiring code that cannot fail.
package logging
