// Package journal persists per-run history to SQLite: one row per run and
// one row per item outcome. The journal is strictly observational — the
// pipeline treats every journal error as a logged warning, never a failure,
// and the dataset remains the source of truth for what has been processed.
package journal
