package config

import "fmt"

// Config is the root host configuration.
type Config struct {
	Logging LoggingConfig `toml:"logging"`
	Plugins PluginsConfig `toml:"plugins"`
	Broker  BrokerConfig  `toml:"broker"`
}

// LoggingConfig controls the root logger.
type LoggingConfig struct {
	// Level is a zerolog level name: trace, debug, info, warn, error.
	Level string `toml:"level"`

	// Format is "console" or "json".
	Format string `toml:"format"`
}

// PluginsConfig controls plugin discovery.
type PluginsConfig struct {
	// Dir is the root directory scanned for plugin subdirectories.
	Dir string `toml:"dir"`

	// Enabled gates plugin loading entirely.
	Enabled bool `toml:"enabled"`
}

// BrokerConfig controls broker behavior.
type BrokerConfig struct {
	// LogDispatch enables debug logging of registrations.
	LogDispatch bool `toml:"log_dispatch"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Plugins: PluginsConfig{
			Dir:     "plugins",
			Enabled: true,
		},
		Broker: BrokerConfig{
			LogDispatch: false,
		},
	}
}

// Validate checks field values that have a closed set of options.
func (c Config) Validate() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: logging.format %q", ErrInvalidValue, c.Logging.Format)
	}
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level %q", ErrInvalidValue, c.Logging.Level)
	}
	return nil
}
