// Package config loads streammd settings from a YAML file and the
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Width       int             `mapstructure:"width"`
	ChunkSize   int             `mapstructure:"chunk_size"`
	Format      string          `mapstructure:"format"`
	ProjectRoot string          `mapstructure:"project_root"`
	Highlight   HighlightConfig `mapstructure:"highlight"`
	Mermaid     MermaidConfig   `mapstructure:"mermaid"`
}

// HighlightConfig configures code block highlighting
type HighlightConfig struct {
	Style string `mapstructure:"style"` // chroma style name
}

// MermaidConfig tunes diagram auto-detection
type MermaidConfig struct {
	ExtraKeywords []string `mapstructure:"extra_keywords"` // added to the built-in diagram keywords
}

// GetConfigDir returns the directory searched for config.yaml.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "streammd"), nil
}

func Load() (*Config, error) {
	configPath, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")

	v.SetEnvPrefix("STREAMMD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("width", 80)
	v.SetDefault("chunk_size", 64)
	v.SetDefault("format", "text") // text, json, or yaml
	v.SetDefault("highlight.style", "monokai")

	// Read config file (optional - won't error if missing)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Validate checks settings that would otherwise fail deep inside a run.
func (c *Config) Validate() error {
	switch c.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", c.Format)
	}
	if c.Width < 0 {
		return fmt.Errorf("width must be positive, got %d", c.Width)
	}
	if c.ChunkSize < 0 {
		return fmt.Errorf("chunk size must be positive, got %d", c.ChunkSize)
	}
	return nil
}
