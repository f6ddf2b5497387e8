package testsupport

import (
	"testing"

	"spool/internal/config"
	"spool/internal/journal"
)

// MustOpenJournal opens the config's run journal for tests and registers
// cleanup.
func MustOpenJournal(t testing.TB, cfg *config.Config) *journal.Journal {
	t.Helper()

	j, err := journal.Open(cfg.Paths.JournalPath)
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	t.Cleanup(func() {
		if err := j.Close(); err != nil {
			t.Fatalf("close journal: %v", err)
		}
	})
	return j
}
