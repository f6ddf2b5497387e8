package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	if err := c.validateGemini(); err != nil {
		return err
	}
	if err := c.validateFetch(); err != nil {
		return err
	}
	if err := c.validateRate(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAnalysis() error {
	switch c.Analysis.Kind {
	case "script", "segments":
	default:
		return fmt.Errorf("analysis.kind must be \"script\" or \"segments\", got %q", c.Analysis.Kind)
	}
	return nil
}

func (c *Config) validateGemini() error {
	if c.Gemini.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/spool/config.toml"
		}
		return fmt.Errorf("gemini.api_key is required. Set GEMINI_API_KEY env var or edit %s (create with 'spool config init')", defaultPath)
	}
	if err := ensurePositiveMap(map[string]int{
		"gemini.request_timeout":    c.Gemini.RequestTimeout,
		"gemini.upload_timeout":     c.Gemini.UploadTimeout,
		"gemini.poll_interval":      c.Gemini.PollInterval,
		"gemini.processing_timeout": c.Gemini.ProcessingTimeout,
	}); err != nil {
		return err
	}
	if c.Gemini.PollInterval >= c.Gemini.ProcessingTimeout {
		return errors.New("gemini.processing_timeout must be greater than gemini.poll_interval")
	}
	return nil
}

func (c *Config) validateFetch() error {
	return ensurePositiveMap(map[string]int{
		"fetch.resolve_timeout":         c.Fetch.ResolveTimeout,
		"fetch.download_timeout":        c.Fetch.DownloadTimeout,
		"notifications.request_timeout": c.Notifications.RequestTimeout,
	})
}

func (c *Config) validateRate() error {
	if c.Rate.RequestsPerWindow <= 0 {
		return errors.New("rate.requests_per_window must be positive")
	}
	if c.Rate.WindowSeconds <= 0 {
		return errors.New("rate.window_seconds must be positive")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
