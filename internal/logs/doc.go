// Package logs reads the per-run log files a run writes under the configured
// log directory. The "spool logs" command uses it to show the tail of the
// newest run log and to keep streaming while a run is in flight.
package logs
