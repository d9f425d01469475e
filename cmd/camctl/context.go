package main

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"camctl/internal/camera"
	"camctl/internal/config"
	"camctl/internal/logging"
)

type commandContext struct {
	configFlag   *string
	hostFlag     *string
	userFlag     *string
	passwordFlag *string
	channelFlag  *int
	jsonFlag     *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error
	logger     *slog.Logger
}

func newCommandContext(configFlag, hostFlag, userFlag, passwordFlag *string, channelFlag *int, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		hostFlag:     hostFlag,
		userFlag:     userFlag,
		passwordFlag: passwordFlag,
		channelFlag:  channelFlag,
		jsonFlag:     jsonFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(*c.configFlag)
		if err != nil {
			c.configErr = err
			return
		}
		// Connection flags override whatever the file and environment said.
		if *c.hostFlag != "" {
			cfg.Camera.Host = *c.hostFlag
		}
		if *c.userFlag != "" {
			cfg.Camera.User = *c.userFlag
		}
		if *c.passwordFlag != "" {
			cfg.Camera.Password = *c.passwordFlag
		}
		if *c.channelFlag >= 0 {
			cfg.Camera.Channel = *c.channelFlag
		}
		c.config = cfg

		c.logger, c.configErr = logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			Output: os.Stderr,
		})
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

func (c *commandContext) loggerValue() *slog.Logger {
	if _, err := c.ensureConfig(); err != nil || c.logger == nil {
		return logging.NewNop()
	}
	return c.logger
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

// withCamera runs fn inside a logged-in device session.
func (c *commandContext) withCamera(ctx context.Context, fn func(*camera.Client) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	return camera.Session(ctx, cfg, c.loggerValue(), fn)
}
