package preflight

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"

	"spool/internal/config"
	"spool/internal/deps"
	"spool/internal/worklist"
)

// CheckTools evaluates the external binaries a run shells out to.
func CheckTools(cfg *config.Config) []deps.Status {
	if cfg == nil {
		return nil
	}
	requirements := []deps.Requirement{
		{
			Name:        "yt-dlp",
			Command:     cfg.Fetch.Binary,
			Description: "Required for name resolution and media download",
		},
	}
	return deps.CheckBinaries(requirements)
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckWorklist verifies the configured work list loads and reports how many
// items it holds. A missing file is not fatal for a doctor pass because a run
// can point elsewhere with --list, but the result still reads as a failure so
// the operator sees it.
func CheckWorklist(path string) Result {
	const name = "Work list"

	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return Result{Name: name, Detail: "no path configured (set worklist.path or pass --list)"}
	}
	items, err := worklist.Load(trimmed)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d items)", trimmed, len(items))}
}

// CheckGeminiKey verifies the generation-service credential is present.
// Connectivity is deliberately not probed here; the first run surfaces any
// auth problem and doctor stays usable offline.
func CheckGeminiKey(cfg *config.Config) Result {
	const name = "Gemini API key"

	if cfg == nil || strings.TrimSpace(cfg.Gemini.APIKey) == "" {
		return Result{Name: name, Detail: "missing (set GEMINI_API_KEY or gemini.api_key)"}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("configured (model %s)", cfg.Gemini.Model)}
}
