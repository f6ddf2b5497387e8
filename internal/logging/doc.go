// Package logging assembles structured slog loggers and formatting helpers
// used across spool.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing (stderr plus a per-run log file), and exposes context-aware
// helpers so pipeline code automatically tags log lines with item
// references, derived keys, stages, and request IDs. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape and routing.
package logging
