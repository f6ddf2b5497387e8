package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"spool/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckWorklist_OK(t *testing.T) {
	path := filepath.Join(t.TempDir(), "worklist.txt")
	testsupport.WriteWorklist(t, path, "https://example.com/a", "https://example.com/b")

	result := CheckWorklist(path)
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	if want := "(2 items)"; !strings.Contains(result.Detail, want) {
		t.Fatalf("expected detail to mention %q, got: %s", want, result.Detail)
	}
}

func TestCheckWorklist_Missing(t *testing.T) {
	result := CheckWorklist(filepath.Join(t.TempDir(), "worklist.txt"))
	if result.Passed {
		t.Fatal("expected failure for missing work list")
	}
}

func TestCheckWorklist_Unconfigured(t *testing.T) {
	result := CheckWorklist("  ")
	if result.Passed {
		t.Fatal("expected failure for blank path")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckGeminiKey(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	result := CheckGeminiKey(cfg)
	if !result.Passed {
		t.Fatalf("expected pass with key set, got: %s", result.Detail)
	}

	cfg.Gemini.APIKey = ""
	result = CheckGeminiKey(cfg)
	if result.Passed {
		t.Fatal("expected failure with key unset")
	}
}

func TestCheckTools_StubbedBinary(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	statuses := CheckTools(cfg)
	if len(statuses) != 1 {
		t.Fatalf("expected 1 status, got %d", len(statuses))
	}
	if !statuses[0].Available {
		t.Fatalf("expected yt-dlp stub to be available, got: %s", statuses[0].Detail)
	}
}

func TestCheckTools_MissingBinary(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Fetch.Binary = "definitely-not-a-real-fetcher"
	statuses := CheckTools(cfg)
	if len(statuses) != 1 {
		t.Fatalf("expected 1 status, got %d", len(statuses))
	}
	if statuses[0].Available {
		t.Fatal("expected missing binary to be unavailable")
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(nil); results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_FreshConfig(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteWorklist(t, cfg.Worklist.Path, "https://example.com/a")

	results := RunAll(cfg)
	if len(results) == 0 {
		t.Fatal("expected results")
	}
	for _, r := range results {
		if !r.Passed {
			t.Errorf("check %q failed: %s", r.Name, r.Detail)
		}
	}
}
