// Package services defines shared utilities consumed by the pipeline and the
// external collaborators beneath it.
//
// Key responsibilities:
//   - Context helpers that stamp item references, derived keys, stage names,
//     and correlation identifiers for logging.
//   - Structured error markers plus the Wrap helper that keep failure
//     classification uniform across fetch, generation, parse, and storage.
//
// Use these helpers when wiring new pipeline logic so operational behaviour
// (error handling, observability) stays consistent.
package services
