package config

const (
	defaultUser           = "admin"
	defaultChannel        = 0
	defaultTimeoutSeconds = 60
	defaultOutputDir      = "~/camctl/recordings"
	defaultStream         = "main"
	defaultHistoryPath    = "~/.local/share/camctl/history.db"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Camera: Camera{
			User:           defaultUser,
			Channel:        defaultChannel,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Download: Download{
			OutputDir: defaultOutputDir,
			Stream:    defaultStream,
		},
		History: History{
			Enabled: true,
			Path:    defaultHistoryPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
