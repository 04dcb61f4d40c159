package config

import (
	"fmt"
	"os"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Gemini  GeminiConfig  `yaml:"gemini"`
	Capture CaptureConfig `yaml:"capture"`
	Watcher WatcherConfig `yaml:"watcher"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type GeminiConfig struct {
	Model                 string  `yaml:"model"`
	APIKeyEnv             string  `yaml:"api_key_env"`
	Temperature           float32 `yaml:"temperature"`
	DerivativeTemperature float32 `yaml:"derivative_temperature"`
}

type CaptureConfig struct {
	RecorderBinary string `yaml:"recorder_binary"`
	Device         string `yaml:"device"`
	SampleRate     int    `yaml:"sample_rate"`
	TempDir        string `yaml:"temp_dir"`
}

type WatcherConfig struct {
	Enabled  bool   `yaml:"enabled"`
	InboxDir string `yaml:"inbox_dir"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) Validate() error {
	if c.Watcher.Enabled && c.Watcher.InboxDir == "" {
		return fmt.Errorf("watcher.inbox_dir is required when watcher is enabled")
	}
	if c.Gemini.Temperature < 0 || c.Gemini.Temperature > 2 {
		return fmt.Errorf("gemini.temperature must be between 0 and 2")
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.APIKeyEnv == "" {
		c.Gemini.APIKeyEnv = "GEMINI_API_KEY"
	}
	if c.Gemini.Temperature == 0 {
		c.Gemini.Temperature = 0.1
	}
	if c.Gemini.DerivativeTemperature == 0 {
		c.Gemini.DerivativeTemperature = 0.2
	}
	if c.Capture.RecorderBinary == "" {
		c.Capture.RecorderBinary = "ffmpeg"
	}
	if c.Capture.SampleRate == 0 {
		c.Capture.SampleRate = 16000
	}
	if c.Capture.TempDir == "" {
		c.Capture.TempDir = os.TempDir()
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}

// APIKey resolves the Gemini credential from the configured environment
// variable. An empty result means the credential is missing.
func (c *Config) APIKey() string {
	return os.Getenv(c.Gemini.APIKeyEnv)
}
