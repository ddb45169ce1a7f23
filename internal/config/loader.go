package config

// This file implements config file and environment loading via viper.
// Precedence, lowest to highest: defaults, config file, environment,
// CLI flag overrides (applied by the caller after Load returns).

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".resmerge"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for resmerge settings.
const envPrefix = "RESMERGE"

// Load loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// A missing config file is not an error; defaults are used.
func Load(configPath string) (Config, error) {
	v := viper.New()

	// Every top-level key needs a default so viper knows it exists;
	// AutomaticEnv only surfaces RESMERGE_* values for known keys.
	v.SetDefault("build_dir", DefaultBuildDir)
	v.SetDefault("color", string(ColorAuto))
	v.SetDefault("skip", false)
	v.SetDefault("dry_run", false)
	v.SetDefault("verbose", false)
	v.SetDefault("log_file", "")

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// An explicit --config path must exist and parse; an absent
		// search-path file just means defaults apply.
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
