package preflight

import (
	"path/filepath"

	"spool/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every environment check that applies to the given config:
// directory access for the configured paths, the default work list, and the
// generation-service credential. Tool availability is reported separately by
// CheckTools.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Media directory", cfg.Paths.MediaDir),
		CheckDirectoryAccess("Transcript directory", cfg.Paths.TranscriptDir),
		CheckDirectoryAccess("Dataset directory", cfg.Paths.DatasetDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
	}

	if dir := filepath.Dir(cfg.Paths.JournalPath); dir != "." && dir != "" {
		results = append(results, CheckDirectoryAccess("Journal directory", dir))
	}

	results = append(results, CheckWorklist(cfg.Worklist.Path))
	results = append(results, CheckGeminiKey(cfg))

	return results
}
