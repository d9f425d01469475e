package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable. Connection credentials are
// deliberately not required here so commands that never touch the camera
// (config init, history) keep working; RequireCredentials covers the rest.
func (c *Config) Validate() error {
	if c.Camera.Channel < 0 {
		return errors.New("camera.channel must not be negative")
	}
	if c.Camera.TimeoutSeconds <= 0 {
		return errors.New("camera.timeout_seconds must be positive")
	}
	switch c.Download.Stream {
	case "main", "sub":
	default:
		return fmt.Errorf("download.stream must be %q or %q, got %q", "main", "sub", c.Download.Stream)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be %q or %q, got %q", "console", "json", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	if c.Download.OutputDir == "" {
		return errors.New("download.output_dir must be set")
	}
	if c.History.Enabled && c.History.Path == "" {
		return errors.New("history.path must be set when history.enabled is true")
	}
	return nil
}

// RequireCredentials checks the fields every camera-facing command needs.
func (c *Config) RequireCredentials() error {
	if c.Camera.Host == "" {
		return errors.New("camera host required: set camera.host in the config file, CAMCTL_HOST, or --host")
	}
	if c.Camera.Password == "" {
		return errors.New("camera password required: set camera.password in the config file, CAMCTL_PASSWORD, or --password")
	}
	return nil
}
