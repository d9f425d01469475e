// Package config loads and validates the camctl configuration: a TOML file
// layered with environment overrides, resolved once per invocation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Camera contains connection settings for the device.
type Camera struct {
	Host           string `toml:"host" env:"CAMCTL_HOST"`
	User           string `toml:"user" env:"CAMCTL_USER"`
	Password       string `toml:"password" env:"CAMCTL_PASSWORD"`
	Channel        int    `toml:"channel" env:"CAMCTL_CHANNEL"`
	UseHTTPS       bool   `toml:"use_https" env:"CAMCTL_HTTPS"`
	TimeoutSeconds int    `toml:"timeout_seconds" env:"CAMCTL_TIMEOUT"`
}

// Download contains settings for recording retrieval.
type Download struct {
	OutputDir string `toml:"output_dir" env:"CAMCTL_OUTPUT_DIR"`
	Stream    string `toml:"stream" env:"CAMCTL_STREAM"`
}

// History contains settings for the download history database.
type History struct {
	Enabled bool   `toml:"enabled" env:"CAMCTL_HISTORY"`
	Path    string `toml:"path" env:"CAMCTL_HISTORY_PATH"`
}

// Logging contains log output settings.
type Logging struct {
	Format string `toml:"format" env:"CAMCTL_LOG_FORMAT"`
	Level  string `toml:"level" env:"CAMCTL_LOG_LEVEL"`
}

// Config encapsulates all configuration values for camctl.
type Config struct {
	Camera   Camera   `toml:"camera"`
	Download Download `toml:"download"`
	History  History  `toml:"history"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/camctl/config.toml")
}

// Load locates, parses and validates a configuration file, then layers
// environment overrides on top. The returned config has all path fields
// expanded and normalized.
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

	if err := env.Parse(&cfg.Camera); err != nil {
		return nil, "", false, fmt.Errorf("apply environment overrides: %w", err)
	}
	if err := env.Parse(&cfg.Download); err != nil {
		return nil, "", false, fmt.Errorf("apply environment overrides: %w", err)
	}
	if err := env.Parse(&cfg.History); err != nil {
		return nil, "", false, fmt.Errorf("apply environment overrides: %w", err)
	}
	if err := env.Parse(&cfg.Logging); err != nil {
		return nil, "", false, fmt.Errorf("apply environment overrides: %w", err)
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

	projectPath, err := filepath.Abs("camctl.toml")
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

func (c *Config) normalize() error {
	var err error
	if c.Download.OutputDir, err = expandPath(c.Download.OutputDir); err != nil {
		return err
	}
	if c.History.Path, err = expandPath(c.History.Path); err != nil {
		return err
	}
	c.Camera.Host = strings.TrimSpace(c.Camera.Host)
	c.Camera.User = strings.TrimSpace(c.Camera.User)
	c.Download.Stream = strings.ToLower(strings.TrimSpace(c.Download.Stream))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	return nil
}

// EnsureDirectories creates the directories the tool writes into.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Download.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory %q: %w", c.Download.OutputDir, err)
	}
	if c.History.Enabled {
		if err := os.MkdirAll(filepath.Dir(c.History.Path), 0o755); err != nil {
			return fmt.Errorf("create history directory: %w", err)
		}
	}
	return nil
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
