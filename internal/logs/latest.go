package logs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"spool/internal/logging"
)

// Latest returns the path of the newest run log under dir, or the empty
// string when none exist yet. Run log names embed a UTC timestamp, so the
// lexicographically greatest name is the newest file.
func Latest(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read log directory: %w", err)
	}

	var newest string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !logging.IsRunLog(name) {
			continue
		}
		if name > newest {
			newest = name
		}
	}
	if newest == "" {
		return "", nil
	}
	return filepath.Join(dir, newest), nil
}
