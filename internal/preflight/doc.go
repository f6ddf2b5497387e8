// Package preflight provides readiness checks for the external tools,
// directories, and credentials a run depends on.
//
// The "spool doctor" command renders every check for the operator, and
// "spool run" consults the tool checks before starting so a missing yt-dlp
// fails the run immediately instead of failing every item one by one.
package preflight
