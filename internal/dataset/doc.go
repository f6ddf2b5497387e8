// Package dataset owns the append-only CSV files analysis rows land in and
// the in-memory key ledger that makes reruns idempotent. The ledger is
// rebuilt from the CSV on open, so the dataset file itself is the durable
// record of what has been processed; keys register only after their rows are
// written and synced.
package dataset
