package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeWorklist(); err != nil {
		return err
	}
	c.normalizeAnalysis()
	c.normalizeGemini()
	c.normalizeFetch()
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.MediaDir, err = expandPath(c.Paths.MediaDir); err != nil {
		return fmt.Errorf("paths.media_dir: %w", err)
	}
	if c.Paths.TranscriptDir, err = expandPath(c.Paths.TranscriptDir); err != nil {
		return fmt.Errorf("paths.transcript_dir: %w", err)
	}
	if c.Paths.DatasetDir, err = expandPath(c.Paths.DatasetDir); err != nil {
		return fmt.Errorf("paths.dataset_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.JournalPath) == "" {
		c.Paths.JournalPath = defaultJournalPath
	}
	if c.Paths.JournalPath, err = expandPath(c.Paths.JournalPath); err != nil {
		return fmt.Errorf("paths.journal_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeWorklist() error {
	c.Worklist.Path = strings.TrimSpace(c.Worklist.Path)
	if c.Worklist.Path == "" {
		return nil
	}
	expanded, err := expandPath(c.Worklist.Path)
	if err != nil {
		return fmt.Errorf("worklist.path: %w", err)
	}
	c.Worklist.Path = expanded
	return nil
}

func (c *Config) normalizeAnalysis() {
	c.Analysis.Kind = strings.ToLower(strings.TrimSpace(c.Analysis.Kind))
	if c.Analysis.Kind == "" {
		c.Analysis.Kind = defaultAnalysisKind
	}
	c.Analysis.ScriptDataset = strings.TrimSpace(c.Analysis.ScriptDataset)
	if c.Analysis.ScriptDataset == "" {
		c.Analysis.ScriptDataset = defaultScriptDataset
	}
	c.Analysis.SegmentsDataset = strings.TrimSpace(c.Analysis.SegmentsDataset)
	if c.Analysis.SegmentsDataset == "" {
		c.Analysis.SegmentsDataset = defaultSegmentsDataset
	}
}

func (c *Config) normalizeGemini() {
	c.Gemini.APIKey = strings.TrimSpace(c.Gemini.APIKey)
	if c.Gemini.APIKey == "" {
		if value, ok := os.LookupEnv("GEMINI_API_KEY"); ok {
			c.Gemini.APIKey = strings.TrimSpace(value)
		} else if value, ok := os.LookupEnv("GOOGLE_API_KEY"); ok {
			c.Gemini.APIKey = strings.TrimSpace(value)
		}
	}
	c.Gemini.Model = strings.TrimSpace(c.Gemini.Model)
	if c.Gemini.Model == "" {
		c.Gemini.Model = defaultGeminiModel
	}
	if c.Gemini.RequestTimeout <= 0 {
		c.Gemini.RequestTimeout = defaultRequestTimeout
	}
	if c.Gemini.UploadTimeout <= 0 {
		c.Gemini.UploadTimeout = defaultUploadTimeout
	}
	if c.Gemini.PollInterval <= 0 {
		c.Gemini.PollInterval = defaultPollInterval
	}
	if c.Gemini.ProcessingTimeout <= 0 {
		c.Gemini.ProcessingTimeout = defaultProcessingTimeout
	}
}

func (c *Config) normalizeFetch() {
	c.Fetch.Binary = strings.TrimSpace(c.Fetch.Binary)
	if c.Fetch.Binary == "" {
		c.Fetch.Binary = defaultFetchBinary
	}
	if c.Fetch.ResolveTimeout <= 0 {
		c.Fetch.ResolveTimeout = defaultResolveTimeout
	}
	if c.Fetch.DownloadTimeout <= 0 {
		c.Fetch.DownloadTimeout = defaultDownloadTimeout
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
