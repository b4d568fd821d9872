package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every environment variable, e.g. DOCPICKER_LOG_LEVEL
// or DOCPICKER_PICKER_PROMPT
const Prefix = "DOCPICKER"

// AppName names the log directory and file
const AppName = "reclaim-docpicker"

// Config holds the host's configuration
type Config struct {
	Log    LogConfig    `envconfig:"LOG"`
	Picker PickerConfig `envconfig:"PICKER"`

	MaxMessageSize uint32 `envconfig:"MAX_MESSAGE_SIZE" default:"1048576"`
}

// LogConfig holds logging configuration.
// Logs never go to stdout, which carries the messaging protocol.
type LogConfig struct {
	Level      string `envconfig:"LEVEL" default:"info"`
	Dir        string `envconfig:"DIR"`
	MaxSizeMB  int    `envconfig:"MAX_SIZE_MB" default:"10"`
	MaxBackups int    `envconfig:"MAX_BACKUPS" default:"3"`
}

// PickerConfig holds native picker configuration
type PickerConfig struct {
	Prompt     string `envconfig:"PROMPT" default:"Choose a document"`
	ZenityPath string `envconfig:"ZENITY_PATH" default:"zenity"`
}

// Load reads configuration from the environment
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.MaxMessageSize == 0 {
		return nil, fmt.Errorf("failed to load config: %s_MAX_MESSAGE_SIZE must be positive", Prefix)
	}
	if cfg.Log.Dir == "" {
		cfg.Log.Dir = DefaultLogDir()
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from the environment or returns defaults
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:      "info",
			Dir:        DefaultLogDir(),
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Picker: PickerConfig{
			Prompt:     "Choose a document",
			ZenityPath: "zenity",
		},
		MaxMessageSize: 1024 * 1024,
	}
}

// DefaultLogDir is the per-user cache directory for logs
func DefaultLogDir() string {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	return filepath.Join(cacheDir, AppName)
}
