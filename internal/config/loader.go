package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "PLUGBUS_"

// Load reads configuration from path, layering the TOML file and
// environment overrides over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// File doesn't exist, defaults stand.
		case err != nil:
			return cfg, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overlays PLUGBUS_* environment variables.
// Empty string values count as set.
func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv(EnvPrefix + "LOG_LEVEL"); ok {
		cfg.Logging.Level = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "LOG_FORMAT"); ok {
		cfg.Logging.Format = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "PLUGIN_DIR"); ok {
		cfg.Plugins.Dir = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "PLUGINS_ENABLED"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Plugins.Enabled = b
		}
	}
	if v, ok := os.LookupEnv(EnvPrefix + "LOG_DISPATCH"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Broker.LogDispatch = b
		}
	}
}
