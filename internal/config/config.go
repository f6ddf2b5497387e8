package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	MediaDir      string `toml:"media_dir"`
	TranscriptDir string `toml:"transcript_dir"`
	DatasetDir    string `toml:"dataset_dir"`
	LogDir        string `toml:"log_dir"`
	JournalPath   string `toml:"journal_path"`
}

// Worklist contains the default work-list location.
type Worklist struct {
	Path string `toml:"path"`
}

// Analysis selects the record shape a run produces and where it lands.
type Analysis struct {
	Kind            string `toml:"kind"`
	ScriptDataset   string `toml:"script_dataset"`
	SegmentsDataset string `toml:"segments_dataset"`
}

// Gemini contains configuration for the generation service.
type Gemini struct {
	APIKey            string `toml:"api_key"`
	Model             string `toml:"model"`
	RequestTimeout    int    `toml:"request_timeout"`
	UploadTimeout     int    `toml:"upload_timeout"`
	PollInterval      int    `toml:"poll_interval"`
	ProcessingTimeout int    `toml:"processing_timeout"`
}

// Fetch contains configuration for the media-fetch tool.
type Fetch struct {
	Binary          string `toml:"binary"`
	ResolveTimeout  int    `toml:"resolve_timeout"`
	DownloadTimeout int    `toml:"download_timeout"`
}

// Rate bounds generation-service calls across a run.
type Rate struct {
	RequestsPerWindow int `toml:"requests_per_window"`
	WindowSeconds     int `toml:"window_seconds"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for spool.
//
// Configuration sections by subsystem:
//   - Paths: media cache, transcript cache, dataset, log, and journal locations
//   - Worklist: default work-list file
//   - Analysis: record shape (script or segments) and dataset file names
//   - Gemini: generation-service credentials, model, and timing bounds
//   - Fetch: media-fetch binary and its timeouts
//   - Rate: sliding-window call budget for the generation service
//   - Notifications: ntfy push notification settings
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	Worklist      Worklist      `toml:"worklist"`
	Analysis      Analysis      `toml:"analysis"`
	Gemini        Gemini        `toml:"gemini"`
	Fetch         Fetch         `toml:"fetch"`
	Rate          Rate          `toml:"rate"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/spool/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("spool.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a run writes into.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.MediaDir, c.Paths.TranscriptDir, c.Paths.DatasetDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if dir := filepath.Dir(c.Paths.JournalPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create journal directory %q: %w", dir, err)
		}
	}
	return nil
}

// DatasetPath returns the dataset file for the given analysis kind.
func (c *Config) DatasetPath(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "script":
		return filepath.Join(c.Paths.DatasetDir, c.Analysis.ScriptDataset), nil
	case "segments":
		return filepath.Join(c.Paths.DatasetDir, c.Analysis.SegmentsDataset), nil
	default:
		return "", fmt.Errorf("analysis kind %q: expected script or segments", kind)
	}
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
