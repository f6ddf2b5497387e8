package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"spool/internal/config"
)

func TestLoadDefaultsUseEnvKeyAndExpandPaths(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantMedia := filepath.Join(tempHome, ".local", "share", "spool", "media")
	if cfg.Paths.MediaDir != wantMedia {
		t.Fatalf("unexpected media dir: got %q want %q", cfg.Paths.MediaDir, wantMedia)
	}
	if cfg.Gemini.APIKey != "test-key" {
		t.Fatalf("expected API key from env, got %q", cfg.Gemini.APIKey)
	}
	if cfg.Analysis.Kind != "script" {
		t.Fatalf("unexpected default analysis kind: %q", cfg.Analysis.Kind)
	}
	if cfg.Fetch.Binary != "yt-dlp" {
		t.Fatalf("unexpected fetch binary: %q", cfg.Fetch.Binary)
	}
	if cfg.Rate.RequestsPerWindow != 10 || cfg.Rate.WindowSeconds != 60 {
		t.Fatalf("unexpected rate defaults: %+v", cfg.Rate)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.MediaDir, cfg.Paths.TranscriptDir, cfg.Paths.DatasetDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadReadsFileAndNormalizes(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("GEMINI_API_KEY", "")

	path := filepath.Join(tempHome, "spool.toml")
	content := `
[paths]
media_dir = "~/media"

[analysis]
kind = "SEGMENTS"

[gemini]
api_key = "  file-key  "
poll_interval = 5
processing_timeout = 60

[logging]
format = "JSON"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected resolved existing path %q, got %q exists=%v", path, resolved, exists)
	}
	if cfg.Paths.MediaDir != filepath.Join(tempHome, "media") {
		t.Fatalf("expected tilde expansion, got %q", cfg.Paths.MediaDir)
	}
	if cfg.Analysis.Kind != "segments" {
		t.Fatalf("expected lowercased kind, got %q", cfg.Analysis.Kind)
	}
	if cfg.Gemini.APIKey != "file-key" {
		t.Fatalf("expected trimmed api key, got %q", cfg.Gemini.APIKey)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected normalized format, got %q", cfg.Logging.Format)
	}
}

func TestValidateRejectsMissingAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	_, _, _, err := config.Load("")
	if err == nil {
		t.Fatal("expected error for missing api key")
	}
	if !strings.Contains(err.Error(), "gemini.api_key") {
		t.Fatalf("expected api key hint, got %v", err)
	}
}

func TestValidateRejectsBadKind(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := filepath.Join(tempHome, "spool.toml")
	if err := os.WriteFile(path, []byte("[analysis]\nkind = \"transcripts\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for unknown analysis kind")
	}
}

func TestValidateRejectsPollNotBelowTimeout(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := filepath.Join(tempHome, "spool.toml")
	content := "[gemini]\npoll_interval = 300\nprocessing_timeout = 300\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error when poll interval is not below processing timeout")
	}
}

func TestDatasetPathPerKind(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	scriptPath, err := cfg.DatasetPath("script")
	if err != nil {
		t.Fatalf("DatasetPath(script): %v", err)
	}
	if filepath.Base(scriptPath) != "script_analysis.csv" {
		t.Fatalf("unexpected script dataset: %q", scriptPath)
	}
	segPath, err := cfg.DatasetPath("segments")
	if err != nil {
		t.Fatalf("DatasetPath(segments): %v", err)
	}
	if filepath.Base(segPath) != "segment_analysis.csv" {
		t.Fatalf("unexpected segments dataset: %q", segPath)
	}
	if _, err := cfg.DatasetPath("other"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestCreateSampleWritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(content), "[gemini]") {
		t.Fatalf("sample missing gemini section: %q", content)
	}
}
