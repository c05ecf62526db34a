package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the settings catvote reads from its config file and environment.
type Config struct {
	APIBase          string        `mapstructure:"api_base"`
	APIKey           string        `mapstructure:"api_key"`
	LogFile          string        `mapstructure:"log_file"`
	PlaceholderImage string        `mapstructure:"placeholder_image"`
	SlideInterval    time.Duration `mapstructure:"slide_interval"`
	RequestTimeout   time.Duration `mapstructure:"request_timeout"`
	Path             string        `mapstructure:"-"` // file actually read, empty when none
}

const (
	envPrefix = "CATVOTE"

	defaultConfigPath       = "~/.config/catvote/config.toml"
	defaultLogFile          = "~/.local/share/catvote/catvote.log"
	defaultAPIBase          = "127.0.0.1:8080"
	defaultPlaceholderImage = "https://via.placeholder.com/300"
	defaultSlideInterval    = 3 * time.Second
	defaultRequestTimeout   = 5 * time.Second
)

// Load reads the config file at path (or the default location) and overlays
// CATVOTE_* environment variables. A missing file is not an error.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("api_base", defaultAPIBase)
	v.SetDefault("api_key", "")
	v.SetDefault("log_file", defaultLogFile)
	v.SetDefault("placeholder_image", defaultPlaceholderImage)
	v.SetDefault("slide_interval", defaultSlideInterval)
	v.SetDefault("request_timeout", defaultRequestTimeout)

	v.SetConfigFile(resolved)
	v.SetConfigType("toml")

	used := resolved
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
		used = ""
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Path = used
	cfg.normalize()
	return cfg, nil
}

// Default returns the configuration used when no file or environment is present.
func Default() Config {
	cfg := Config{
		APIBase:          defaultAPIBase,
		LogFile:          defaultLogFile,
		PlaceholderImage: defaultPlaceholderImage,
		SlideInterval:    defaultSlideInterval,
		RequestTimeout:   defaultRequestTimeout,
	}
	cfg.normalize()
	return cfg
}

func (c *Config) normalize() {
	c.APIBase = strings.TrimSpace(c.APIBase)
	if c.APIBase == "" {
		c.APIBase = defaultAPIBase
	}
	c.APIKey = strings.TrimSpace(c.APIKey)
	c.PlaceholderImage = strings.TrimSpace(c.PlaceholderImage)

	c.LogFile = strings.TrimSpace(c.LogFile)
	if c.LogFile == "" {
		c.LogFile = defaultLogFile
	}
	c.LogFile = mustExpand(c.LogFile)

	if c.SlideInterval <= 0 {
		c.SlideInterval = defaultSlideInterval
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = defaultRequestTimeout
	}
}

// LogPath returns the log file, falling back to the default location.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogFile) == "" {
		return mustExpand(defaultLogFile)
	}
	return c.LogFile
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
